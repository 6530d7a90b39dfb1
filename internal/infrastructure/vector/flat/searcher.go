// Package flat implements brute-force nearest-neighbor search over the
// in-memory vector matrix loaded from the embedding store. It scores every
// stored vector under three metrics and returns the top-k per metric.
package flat

import (
	"fmt"
	"sort"

	"contract-rag/internal/core/domain"
)

type Searcher struct{}

func NewSearcher() *Searcher {
	return &Searcher{}
}

// Search ranks all stored vectors against the query under dot product,
// cosine similarity and Euclidean similarity. k must be in [1, N]; asking
// for more results than stored vectors is an invalid request.
func (s *Searcher) Search(query []float32, vectors [][]float32, k int) (domain.RetrievalScores, error) {
	n := len(vectors)
	if k <= 0 || k > n {
		return domain.RetrievalScores{}, domain.WrapError(
			domain.ErrInvalidTopK,
			"vector search",
			fmt.Errorf("k=%d with %d stored vectors", k, n),
		)
	}
	for i, v := range vectors {
		if len(v) != len(query) {
			return domain.RetrievalScores{}, domain.WrapError(
				domain.ErrInvalidInput,
				"vector search",
				fmt.Errorf("stored vector %d has dimension %d, query has %d", i, len(v), len(query)),
			)
		}
	}

	dot := make([]float64, n)
	cos := make([]float64, n)
	euc := make([]float64, n)
	queryNorm := norm(query)
	for i, v := range vectors {
		dot[i] = dotProduct(query, v)
		cos[i] = cosineSimilarity(query, v, queryNorm, norm(v))
		euc[i] = euclideanSimilarity(query, v)
	}

	return domain.RetrievalScores{
		Dot:       topK(dot, k),
		Cosine:    topK(cos, k),
		Euclidean: topK(euc, k),
	}, nil
}

// topK selects the k highest scores, ties broken by ascending index so the
// ranking is deterministic.
func topK(scores []float64, k int) []domain.ScoredIndex {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if scores[order[a]] == scores[order[b]] {
			return order[a] < order[b]
		}
		return scores[order[a]] > scores[order[b]]
	})

	out := make([]domain.ScoredIndex, k)
	for rank := 0; rank < k; rank++ {
		out[rank] = domain.ScoredIndex{
			Index: order[rank],
			Score: scores[order[rank]],
		}
	}
	return out
}
