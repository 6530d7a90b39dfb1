package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"contract-rag/internal/core/domain"
)

type objectStorageFake struct {
	savedKey string
	saveErr  error
}

func (f *objectStorageFake) Save(_ context.Context, key string, data io.Reader) error {
	f.savedKey = key
	_, _ = io.Copy(io.Discard, data)
	return f.saveErr
}

func (f *objectStorageFake) Path(key string) string {
	return "/uploads/" + key
}

type extractorFake struct {
	pages   []domain.Page
	gotPath string
	err     error
}

func (f *extractorFake) ExtractPages(_ context.Context, path string) ([]domain.Page, error) {
	f.gotPath = path
	if f.err != nil {
		return nil, f.err
	}
	return f.pages, nil
}

type chunkerFake struct {
	chunks []domain.Chunk
}

func (f *chunkerFake) Chunk([]domain.Page) []domain.Chunk {
	return f.chunks
}

type ingestEmbedderFake struct {
	gotTexts []string
	vectors  [][]float32
	err      error
}

func (f *ingestEmbedderFake) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.gotTexts = texts
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors, nil
}

func (f *ingestEmbedderFake) EmbedQuery(context.Context, string) ([]float32, error) {
	return nil, errors.New("not used")
}

func ingestFixtures() (*objectStorageFake, *extractorFake, *chunkerFake, *ingestEmbedderFake, *storeFake) {
	storage := &objectStorageFake{}
	extractor := &extractorFake{pages: []domain.Page{{PageNumber: 0, Sentences: []string{"A."}}}}
	chunker := &chunkerFake{chunks: []domain.Chunk{
		{PageNumber: 0, SentenceChunk: "A."},
		{PageNumber: 0, SentenceChunk: "B."},
	}}
	embedder := &ingestEmbedderFake{vectors: [][]float32{{0.1, 0.2}, {0.3, 0.4}}}
	return storage, extractor, chunker, embedder, &storeFake{}
}

func TestIngestUploadPipeline(t *testing.T) {
	storage, extractor, chunker, embedder, store := ingestFixtures()
	uc := NewIngestDocumentUseCase(storage, extractor, chunker, embedder, store)

	result, err := uc.Upload(context.Background(), "My Contract.pdf", "application/pdf", strings.NewReader("%PDF"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if result.Pages != 1 || result.Chunks != 2 || result.Dimension != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
	if !strings.HasSuffix(storage.savedKey, "_My_Contract.pdf") {
		t.Fatalf("storage key = %q, want sanitized filename suffix", storage.savedKey)
	}
	if extractor.gotPath != "/uploads/"+storage.savedKey {
		t.Fatalf("extractor path = %q", extractor.gotPath)
	}
	if len(embedder.gotTexts) != 2 || embedder.gotTexts[1] != "B." {
		t.Fatalf("embedder texts = %v", embedder.gotTexts)
	}
	if len(store.saved) != 2 {
		t.Fatalf("store must receive every chunk, got %d", len(store.saved))
	}
	if store.saved[0].Embedding == nil || store.saved[1].Embedding[0] != 0.3 {
		t.Fatalf("chunks must carry their vectors, got %+v", store.saved)
	}
}

func TestIngestRejectsNonPDF(t *testing.T) {
	storage, extractor, chunker, embedder, store := ingestFixtures()
	uc := NewIngestDocumentUseCase(storage, extractor, chunker, embedder, store)

	_, err := uc.Upload(context.Background(), "notes.docx", "application/msword", strings.NewReader("x"))
	if !domain.IsKind(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("Upload() error = %v, want ErrUnsupportedFormat", err)
	}
	if storage.savedKey != "" {
		t.Fatalf("nothing may be stored for rejected uploads")
	}
}

func TestIngestAcceptsUppercaseExtension(t *testing.T) {
	storage, extractor, chunker, embedder, store := ingestFixtures()
	uc := NewIngestDocumentUseCase(storage, extractor, chunker, embedder, store)

	if _, err := uc.Upload(context.Background(), "SCAN.PDF", "application/pdf", strings.NewReader("%PDF")); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
}

func TestIngestZeroChunks(t *testing.T) {
	storage, extractor, chunker, embedder, store := ingestFixtures()
	chunker.chunks = nil
	uc := NewIngestDocumentUseCase(storage, extractor, chunker, embedder, store)

	_, err := uc.Upload(context.Background(), "empty.pdf", "application/pdf", strings.NewReader("%PDF"))
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("Upload() error = %v, want ErrInvalidInput", err)
	}
}

func TestIngestVectorCountMismatch(t *testing.T) {
	storage, extractor, chunker, embedder, store := ingestFixtures()
	embedder.vectors = [][]float32{{0.1, 0.2}}
	uc := NewIngestDocumentUseCase(storage, extractor, chunker, embedder, store)

	_, err := uc.Upload(context.Background(), "c.pdf", "application/pdf", strings.NewReader("%PDF"))
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("Upload() error = %v, want ErrInvalidInput", err)
	}
}

func TestIngestEmbedFailureIsTerminal(t *testing.T) {
	storage, extractor, chunker, embedder, store := ingestFixtures()
	embedder.err = domain.WrapError(domain.ErrModelUnavailable, "embed", errors.New("down"))
	uc := NewIngestDocumentUseCase(storage, extractor, chunker, embedder, store)

	_, err := uc.Upload(context.Background(), "c.pdf", "application/pdf", strings.NewReader("%PDF"))
	if !domain.IsKind(err, domain.ErrModelUnavailable) {
		t.Fatalf("Upload() error = %v, want ErrModelUnavailable", err)
	}
	if store.saved != nil {
		t.Fatalf("no partial results may reach the store")
	}
}
