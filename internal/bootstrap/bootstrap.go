// Package bootstrap wires configuration into the concrete pipeline: local
// object storage, PDF extraction, sentence chunking, Ollama clients, the CSV
// embedding store and the in-memory searcher.
package bootstrap

import (
	"fmt"
	"time"

	"contract-rag/internal/config"
	"contract-rag/internal/core/ports"
	"contract-rag/internal/core/usecase"
	"contract-rag/internal/infrastructure/chunking"
	"contract-rag/internal/infrastructure/extractor/pdfpage"
	"contract-rag/internal/infrastructure/llm/ollama"
	"contract-rag/internal/infrastructure/resilience"
	"contract-rag/internal/infrastructure/sentence"
	"contract-rag/internal/infrastructure/storage/localfs"
	"contract-rag/internal/infrastructure/store/csvstore"
	"contract-rag/internal/infrastructure/vector/flat"
	"contract-rag/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Metrics *metrics.ServerMetrics

	IngestUC ports.DocumentIngestor
	QueryUC  ports.QueryService
}

func New(cfg config.Config) (*App, error) {
	storage, err := localfs.New(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	splitter := sentence.NewSplitter()
	extractor := pdfpage.NewExtractor(splitter)
	chunker := chunking.NewSentenceChunker(cfg.ChunkSize)

	executor := resilience.NewExecutor(resilience.Config{
		CallsPerSecond: cfg.ModelCallsPerSecond,
		CallBurst:      cfg.ModelCallBurst,

		BreakerEnabled:      cfg.BreakerEnabled,
		BreakerMinRequests:  uint32(cfg.BreakerMinRequests),
		BreakerFailureRatio: cfg.BreakerFailureRatio,
		BreakerOpenTimeout:  time.Duration(cfg.BreakerTimeoutSeconds) * time.Second,
	})
	ollamaClient := ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel, executor)
	embedder := ollama.NewEmbedder(ollamaClient)
	answerer := ollama.NewAnswerer(ollamaClient)

	store := csvstore.New(cfg.StorePath)
	searcher := flat.NewSearcher()

	ingestUC := usecase.NewIngestDocumentUseCase(storage, extractor, chunker, embedder, store)
	queryUC := usecase.NewQueryUseCase(store, embedder, searcher, answerer, cfg.RAGTopK)

	return &App{
		Config:  cfg,
		Metrics: metrics.NewServerMetrics("contract-rag-api"),

		IngestUC: ingestUC,
		QueryUC:  queryUC,
	}, nil
}
