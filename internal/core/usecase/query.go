package usecase

import (
	"context"
	"fmt"

	"contract-rag/internal/core/domain"
	"contract-rag/internal/core/ports"
)

const defaultTopK = 3

// QueryUseCase answers a free-text query against the persisted store: load
// the store, embed the query, rank stored vectors, hand the dot-product
// top-k to the answer generator.
type QueryUseCase struct {
	store     ports.EmbeddingStore
	embedder  ports.Embedder
	retriever ports.Retriever
	answerer  ports.AnswerGenerator
	topK      int
}

func NewQueryUseCase(
	store ports.EmbeddingStore,
	embedder ports.Embedder,
	retriever ports.Retriever,
	answerer ports.AnswerGenerator,
	topK int,
) *QueryUseCase {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &QueryUseCase{
		store:     store,
		embedder:  embedder,
		retriever: retriever,
		answerer:  answerer,
		topK:      topK,
	}
}

func (uc *QueryUseCase) Answer(ctx context.Context, query string) (*domain.Answer, error) {
	chunks, vectors, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load embedding store: %w", err)
	}

	if len(vectors) == 0 {
		return nil, domain.WrapError(domain.ErrStoreNotFound, "load embedding store", fmt.Errorf("store holds no chunks"))
	}

	queryVector, err := uc.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	// A small store may hold fewer chunks than the configured top-k; the
	// retriever treats k > N as invalid, so clamp before calling.
	k := uc.topK
	if k > len(vectors) {
		k = len(vectors)
	}
	scores, err := uc.retriever.Search(queryVector, vectors, k)
	if err != nil {
		return nil, fmt.Errorf("search stored vectors: %w", err)
	}

	// The dot-product ranking is the operational default; the other metrics
	// are computed for parity checks and diagnostics.
	results := make([]domain.SimilarityResult, 0, len(scores.Dot))
	for rank, scored := range scores.Dot {
		results = append(results, domain.SimilarityResult{
			Rank:          rank,
			Score:         scored.Score,
			SentenceChunk: chunks[scored.Index].SentenceChunk,
			PageNumber:    chunks[scored.Index].PageNumber,
		})
	}

	answerText, err := uc.answerer.Answer(ctx, query, results)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &domain.Answer{
		Query:   query,
		Answer:  answerText,
		Sources: results,
	}, nil
}
