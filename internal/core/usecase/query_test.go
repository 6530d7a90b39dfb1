package usecase

import (
	"context"
	"errors"
	"testing"

	"contract-rag/internal/core/domain"
)

type storeFake struct {
	chunks  []domain.Chunk
	vectors [][]float32
	loadErr error
	saved   []domain.Chunk
}

func (f *storeFake) Save(_ context.Context, chunks []domain.Chunk) error {
	f.saved = chunks
	return nil
}

func (f *storeFake) Load(context.Context) ([]domain.Chunk, [][]float32, error) {
	if f.loadErr != nil {
		return nil, nil, f.loadErr
	}
	return f.chunks, f.vectors, nil
}

type embedderFake struct {
	queryVector []float32
	err         error
}

func (f *embedderFake) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{float32(i), 1}
	}
	return out, nil
}

func (f *embedderFake) EmbedQuery(context.Context, string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.queryVector, nil
}

type retrieverFake struct {
	gotK   int
	scores domain.RetrievalScores
	err    error
}

func (f *retrieverFake) Search(_ []float32, _ [][]float32, k int) (domain.RetrievalScores, error) {
	f.gotK = k
	if f.err != nil {
		return domain.RetrievalScores{}, f.err
	}
	return f.scores, nil
}

type answererFake struct {
	gotResults []domain.SimilarityResult
	err        error
}

func (f *answererFake) Answer(_ context.Context, _ string, results []domain.SimilarityResult) (string, error) {
	f.gotResults = results
	if f.err != nil {
		return "", f.err
	}
	return "answer", nil
}

func queryFixtures() (*storeFake, *embedderFake, *retrieverFake, *answererFake) {
	store := &storeFake{
		chunks: []domain.Chunk{
			{PageNumber: 0, SentenceChunk: "chunk zero"},
			{PageNumber: 2, SentenceChunk: "chunk one"},
		},
		vectors: [][]float32{{1, 0}, {0, 1}},
	}
	embedder := &embedderFake{queryVector: []float32{1, 0}}
	retriever := &retrieverFake{
		scores: domain.RetrievalScores{
			Dot: []domain.ScoredIndex{{Index: 1, Score: 0.9}, {Index: 0, Score: 0.4}},
		},
	}
	return store, embedder, retriever, &answererFake{}
}

func TestQueryUseCaseAnswer(t *testing.T) {
	store, embedder, retriever, answerer := queryFixtures()
	uc := NewQueryUseCase(store, embedder, retriever, answerer, 2)

	answer, err := uc.Answer(context.Background(), "what?")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer.Answer != "answer" || answer.Query != "what?" {
		t.Fatalf("unexpected answer %+v", answer)
	}
	if len(answer.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(answer.Sources))
	}
	if answer.Sources[0].SentenceChunk != "chunk one" || answer.Sources[0].PageNumber != 2 {
		t.Fatalf("sources must follow the dot-product ranking, got %+v", answer.Sources[0])
	}
	if answer.Sources[0].Rank != 0 || answer.Sources[1].Rank != 1 {
		t.Fatalf("ranks must be sequential from 0, got %+v", answer.Sources)
	}
}

func TestQueryUseCaseClampsTopKToStoreSize(t *testing.T) {
	store, embedder, retriever, answerer := queryFixtures()
	retriever.scores = domain.RetrievalScores{Dot: []domain.ScoredIndex{{Index: 0, Score: 1}}}
	store.chunks = store.chunks[:1]
	store.vectors = store.vectors[:1]

	uc := NewQueryUseCase(store, embedder, retriever, answerer, 5)
	if _, err := uc.Answer(context.Background(), "q"); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if retriever.gotK != 1 {
		t.Fatalf("expected k clamped to 1, got %d", retriever.gotK)
	}
}

func TestQueryUseCaseStoreNotFound(t *testing.T) {
	store, embedder, retriever, answerer := queryFixtures()
	store.loadErr = domain.WrapError(domain.ErrStoreNotFound, "open embedding store", errors.New("no file"))

	uc := NewQueryUseCase(store, embedder, retriever, answerer, 3)
	_, err := uc.Answer(context.Background(), "q")
	if !domain.IsKind(err, domain.ErrStoreNotFound) {
		t.Fatalf("Answer() error = %v, want ErrStoreNotFound", err)
	}
}

func TestQueryUseCaseEmptyStore(t *testing.T) {
	store, embedder, retriever, answerer := queryFixtures()
	store.chunks = nil
	store.vectors = nil

	uc := NewQueryUseCase(store, embedder, retriever, answerer, 3)
	_, err := uc.Answer(context.Background(), "q")
	if !domain.IsKind(err, domain.ErrStoreNotFound) {
		t.Fatalf("Answer() error = %v, want ErrStoreNotFound", err)
	}
}

func TestQueryUseCaseEmbedError(t *testing.T) {
	store, embedder, retriever, answerer := queryFixtures()
	embedder.err = domain.WrapError(domain.ErrModelUnavailable, "embed", errors.New("down"))

	uc := NewQueryUseCase(store, embedder, retriever, answerer, 3)
	_, err := uc.Answer(context.Background(), "q")
	if !domain.IsKind(err, domain.ErrModelUnavailable) {
		t.Fatalf("Answer() error = %v, want ErrModelUnavailable", err)
	}
}

func TestQueryUseCaseAnswererError(t *testing.T) {
	store, embedder, retriever, answerer := queryFixtures()
	answerer.err = errors.New("generation failed")

	uc := NewQueryUseCase(store, embedder, retriever, answerer, 2)
	if _, err := uc.Answer(context.Background(), "q"); err == nil {
		t.Fatalf("expected error")
	}
}
