package ports

import (
	"context"
	"io"

	"contract-rag/internal/core/domain"
)

// DocumentIngestor is the inbound contract for the upload pipeline: it runs
// extraction, chunking and embedding synchronously and overwrites the store.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.IngestResult, error)
}

// QueryService is the inbound contract for answering questions against the
// persisted store.
type QueryService interface {
	Answer(ctx context.Context, query string) (*domain.Answer, error)
}
