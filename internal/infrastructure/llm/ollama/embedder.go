package ollama

import (
	"context"
	"fmt"

	"contract-rag/internal/core/domain"
)

type Embedder struct {
	client *Client
}

func NewEmbedder(client *Client) *Embedder {
	return &Embedder{client: client}
}

// Embed returns one vector per input text, in input order. A failed call is
// terminal: there are no partial results.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	request := map[string]any{
		"model": e.client.embedModel,
		"input": texts,
	}

	var response struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	if err := e.client.call(ctx, "embed", "/api/embed", request, &response); err != nil {
		return nil, err
	}
	if len(response.Embeddings) != len(texts) {
		return nil, domain.WrapError(
			domain.ErrModelUnavailable,
			"embed",
			fmt.Errorf("got %d embeddings for %d inputs", len(response.Embeddings), len(texts)),
		)
	}
	return response.Embeddings, nil
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, domain.WrapError(domain.ErrModelUnavailable, "embed query", fmt.Errorf("empty embedding result"))
	}
	return vectors[0], nil
}
