package ports

import (
	"context"
	"io"

	"contract-rag/internal/core/domain"
)

// ObjectStorage stores uploaded source documents on disk.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Path(key string) string
}

// PageExtractor turns a stored PDF into ordered per-page records with
// sentences already segmented.
type PageExtractor interface {
	ExtractPages(ctx context.Context, path string) ([]domain.Page, error)
}

// SentenceSplitter segments page text into ordered sentences.
type SentenceSplitter interface {
	Split(text string) []string
}

// Chunker groups page sentences into overlapping chunks. Chunks are emitted
// in page order and, within a page, in sentence order.
type Chunker interface {
	Chunk(pages []domain.Page) []domain.Chunk
}

// Embedder builds vectors for chunk texts and query text. Order of the batch
// result matches the input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// EmbeddingStore persists chunks with their vectors in a single flat file.
// Load returns chunk metadata and the stacked vector matrix in the same
// order: row i of the matrix describes chunk i.
type EmbeddingStore interface {
	Save(ctx context.Context, chunks []domain.Chunk) error
	Load(ctx context.Context) ([]domain.Chunk, [][]float32, error)
}

// Retriever scores a query vector against the stored matrix and returns the
// top-k indices per metric.
type Retriever interface {
	Search(query []float32, vectors [][]float32, k int) (domain.RetrievalScores, error)
}

// AnswerGenerator creates the final user-facing answer from the query and
// the retrieved chunks.
type AnswerGenerator interface {
	Answer(ctx context.Context, query string, results []domain.SimilarityResult) (string, error)
}
