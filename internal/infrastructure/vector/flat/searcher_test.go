package flat

import (
	"math"
	"testing"

	"contract-rag/internal/core/domain"
)

func testVectors() [][]float32 {
	return [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0.9, 0.1, 0},
		{-1, 0, 0},
	}
}

func TestSearchDotProductOrdering(t *testing.T) {
	searcher := NewSearcher()
	scores, err := searcher.Search([]float32{1, 0, 0}, testVectors(), 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if scores.Dot[0].Index != 0 {
		t.Fatalf("top dot index = %d, want 0", scores.Dot[0].Index)
	}
	if scores.Dot[1].Index != 2 {
		t.Fatalf("second dot index = %d, want 2", scores.Dot[1].Index)
	}
	for _, metric := range [][]domain.ScoredIndex{scores.Dot, scores.Cosine, scores.Euclidean} {
		if len(metric) != 3 {
			t.Fatalf("expected 3 results per metric, got %d", len(metric))
		}
		for i := 1; i < len(metric); i++ {
			if metric[i].Score > metric[i-1].Score {
				t.Fatalf("scores must be non-increasing, got %v then %v", metric[i-1].Score, metric[i].Score)
			}
		}
		seen := map[int]bool{}
		for _, si := range metric {
			if seen[si.Index] {
				t.Fatalf("index %d repeated within one metric", si.Index)
			}
			seen[si.Index] = true
		}
	}
}

func TestSearchCosineBounds(t *testing.T) {
	searcher := NewSearcher()
	scores, err := searcher.Search([]float32{0.3, -0.7, 0.2}, testVectors(), 4)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	for _, si := range scores.Cosine {
		if si.Score < -1-1e-9 || si.Score > 1+1e-9 {
			t.Fatalf("cosine score %v out of [-1, 1]", si.Score)
		}
	}
}

func TestSearchEuclideanSelfSimilarity(t *testing.T) {
	searcher := NewSearcher()
	scores, err := searcher.Search([]float32{0, 1, 0}, testVectors(), 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if scores.Euclidean[0].Index != 1 {
		t.Fatalf("euclidean top index = %d, want 1", scores.Euclidean[0].Index)
	}
	if math.Abs(scores.Euclidean[0].Score-1) > 1e-9 {
		t.Fatalf("identical vectors must score 1, got %v", scores.Euclidean[0].Score)
	}
}

func TestSearchTieBreakByIndex(t *testing.T) {
	vectors := [][]float32{
		{1, 0},
		{1, 0},
		{1, 0},
	}
	scores, err := NewSearcher().Search([]float32{1, 0}, vectors, 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	for rank, si := range scores.Dot {
		if si.Index != rank {
			t.Fatalf("tied scores must rank by ascending index, rank %d got index %d", rank, si.Index)
		}
	}
}

func TestSearchInvalidTopK(t *testing.T) {
	searcher := NewSearcher()
	if _, err := searcher.Search([]float32{1, 0, 0}, testVectors(), 5); !domain.IsKind(err, domain.ErrInvalidTopK) {
		t.Fatalf("expected ErrInvalidTopK for k > N, got %v", err)
	}
	if _, err := searcher.Search([]float32{1, 0, 0}, testVectors(), 0); !domain.IsKind(err, domain.ErrInvalidTopK) {
		t.Fatalf("expected ErrInvalidTopK for k = 0, got %v", err)
	}
}

func TestSearchDimensionMismatch(t *testing.T) {
	_, err := NewSearcher().Search([]float32{1, 0}, testVectors(), 1)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCosineNearZeroNormIsFinite(t *testing.T) {
	score := cosineSimilarity([]float32{0, 0}, []float32{0, 0}, 0, 0)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		t.Fatalf("epsilon must keep the cosine finite, got %v", score)
	}
}
