package domain

// ScoredIndex pairs a similarity score with the index of the stored vector
// (and chunk) it belongs to.
type ScoredIndex struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// RetrievalScores holds the top-k ranking under each supported metric,
// most relevant first.
type RetrievalScores struct {
	Dot       []ScoredIndex `json:"dot"`
	Cosine    []ScoredIndex `json:"cosine"`
	Euclidean []ScoredIndex `json:"euclidean"`
}

// SimilarityResult is one retrieved chunk as returned to the caller.
type SimilarityResult struct {
	Rank          int     `json:"rank"`
	Score         float64 `json:"score"`
	SentenceChunk string  `json:"sentence_chunk"`
	PageNumber    int     `json:"page_number"`
}

// Answer is the final response of the query boundary.
type Answer struct {
	Query   string             `json:"query"`
	Answer  string             `json:"answer"`
	Sources []SimilarityResult `json:"sources,omitempty"`
}
