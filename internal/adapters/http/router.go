package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"contract-rag/internal/core/domain"
	"contract-rag/internal/core/ports"
	"contract-rag/internal/observability/metrics"
)

type Router struct {
	ingestor ports.DocumentIngestor
	querier  ports.QueryService
	metrics  *metrics.ServerMetrics
}

func NewRouter(
	ingestor ports.DocumentIngestor,
	querier ports.QueryService,
	serverMetrics *metrics.ServerMetrics,
) *Router {
	return &Router{
		ingestor: ingestor,
		querier:  querier,
		metrics:  serverMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.uploadDocument)
	mux.HandleFunc("/v1/rag/query", rt.queryRAG)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = accessLogMiddleware(handler)
	if rt.metrics != nil {
		handler = metricsMiddleware(rt.metrics, handler)
	}
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	start := time.Now()
	result, err := rt.ingestor.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		rt.recordIngest("error", 0, time.Since(start))
		writeError(w, err)
		return
	}

	rt.recordIngest("ok", result.Chunks, time.Since(start))
	writeJSON(w, http.StatusAccepted, result)
}

func (rt *Router) queryRAG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query is required"})
		return
	}

	start := time.Now()
	answer, err := rt.querier.Answer(r.Context(), req.Query)
	if err != nil {
		if domain.IsKind(err, domain.ErrStoreNotFound) && rt.metrics != nil {
			rt.metrics.RecordStoreMissing()
		}
		rt.recordQuery("error", 0, time.Since(start))
		writeError(w, err)
		return
	}

	rt.recordQuery("ok", len(answer.Sources), time.Since(start))
	writeJSON(w, http.StatusOK, answer)
}

func (rt *Router) recordIngest(status string, chunks int, duration time.Duration) {
	if rt.metrics != nil {
		rt.metrics.RecordIngest(status, chunks, duration)
	}
}

func (rt *Router) recordQuery(status string, sources int, duration time.Duration) {
	if rt.metrics != nil {
		rt.metrics.RecordQuery(status, sources, duration)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
