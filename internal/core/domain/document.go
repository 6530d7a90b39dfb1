package domain

// Page is one PDF page after text extraction. Sentences is populated by
// sentence segmentation; the remaining fields are fixed at extraction time.
type Page struct {
	PageNumber       int      `json:"page_number"`
	Text             string   `json:"text"`
	CharCount        int      `json:"char_count"`
	WordCount        int      `json:"word_count"`
	RawSentenceCount int      `json:"raw_sentence_count"`
	TokenCount       int      `json:"token_count"`
	Sentences        []string `json:"sentences,omitempty"`
}

// Chunk is the unit of retrieval and embedding: a group of joined sentences
// from a single page. TokenCount is the chars/4 heuristic, not a real
// tokenizer count. Embedding is nil until the embedding step has run.
type Chunk struct {
	PageNumber    int       `json:"page_number"`
	SentenceChunk string    `json:"sentence_chunk"`
	CharCount     int       `json:"chunk_char_count"`
	WordCount     int       `json:"chunk_word_count"`
	TokenCount    float64   `json:"chunk_token_count"`
	Embedding     []float32 `json:"embedding,omitempty"`
}

// IngestResult summarizes one processed upload.
type IngestResult struct {
	Filename  string `json:"filename"`
	Pages     int    `json:"pages"`
	Chunks    int    `json:"chunks"`
	Dimension int    `json:"dimension"`
}
