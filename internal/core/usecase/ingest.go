package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"contract-rag/internal/core/domain"
	"contract-rag/internal/core/ports"
)

// IngestDocumentUseCase runs the whole upload pipeline synchronously:
// persist the PDF, extract pages, chunk, embed, overwrite the store. The
// store holds exactly one document; every upload replaces the previous one.
type IngestDocumentUseCase struct {
	storage   ports.ObjectStorage
	extractor ports.PageExtractor
	chunker   ports.Chunker
	embedder  ports.Embedder
	store     ports.EmbeddingStore
}

func NewIngestDocumentUseCase(
	storage ports.ObjectStorage,
	extractor ports.PageExtractor,
	chunker ports.Chunker,
	embedder ports.Embedder,
	store ports.EmbeddingStore,
) *IngestDocumentUseCase {
	return &IngestDocumentUseCase{
		storage:   storage,
		extractor: extractor,
		chunker:   chunker,
		embedder:  embedder,
		store:     store,
	}
}

func (uc *IngestDocumentUseCase) Upload(
	ctx context.Context,
	filename, mimeType string,
	body io.Reader,
) (*domain.IngestResult, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil, domain.WrapError(
			domain.ErrUnsupportedFormat,
			"upload",
			fmt.Errorf("file %q is not a pdf (mime %q)", filename, mimeType),
		)
	}

	storageKey := fmt.Sprintf("%s_%s", uuid.NewString(), sanitizeFilename(filename))
	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return nil, fmt.Errorf("save uploaded pdf: %w", err)
	}

	pages, err := uc.extractor.ExtractPages(ctx, uc.storage.Path(storageKey))
	if err != nil {
		return nil, fmt.Errorf("extract pages: %w", err)
	}
	if len(pages) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract pages", errors.New("document has no pages"))
	}

	chunks := uc.chunker.Chunk(pages)
	if len(chunks) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "chunk document", errors.New("chunking produced zero chunks"))
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.SentenceChunk
	}
	vectors, err := uc.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, domain.WrapError(
			domain.ErrInvalidInput,
			"embed chunks",
			fmt.Errorf("vectors/chunks mismatch: %d/%d", len(vectors), len(chunks)),
		)
	}
	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}

	if err := uc.store.Save(ctx, chunks); err != nil {
		return nil, fmt.Errorf("save embedding store: %w", err)
	}

	return &domain.IngestResult{
		Filename:  filename,
		Pages:     len(pages),
		Chunks:    len(chunks),
		Dimension: len(vectors[0]),
	}, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.pdf"
	}
	return base
}
