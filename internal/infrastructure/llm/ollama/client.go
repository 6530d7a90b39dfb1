// Package ollama adapts the external embedding and chat models behind an
// Ollama-compatible HTTP API. Model failures surface as
// domain.ErrModelUnavailable; nothing here retries.
package ollama

import (
	"context"
	"net/http"
	"strings"
	"time"

	"contract-rag/internal/core/domain"
	"contract-rag/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	genModel   string
	embedModel string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, genModel, embedModel string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		genModel:   genModel,
		embedModel: embedModel,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		executor:   executor,
	}
}

func (c *Client) call(ctx context.Context, operation, path string, payload any, out any) error {
	fn := func(callCtx context.Context) error {
		return c.postJSON(callCtx, path, payload, out, operation)
	}
	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, operation, fn, classifyModelError)
	} else {
		err = fn(ctx)
	}
	return wrapModelError(operation, err)
}

// wrapModelError marks transport-level and server-side failures as the
// "model unavailable" kind; client errors and context cancellation keep
// their own identity.
func wrapModelError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsKind(err, domain.ErrModelUnavailable) {
		return err
	}
	if resilience.IsCircuitOpen(err) {
		return domain.WrapError(domain.ErrModelUnavailable, operation, err)
	}
	if classifyModelError(err).RecordFailure {
		return domain.WrapError(domain.ErrModelUnavailable, operation, err)
	}
	return err
}
