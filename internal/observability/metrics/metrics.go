// Package metrics exposes the service's Prometheus registry: HTTP server
// metrics plus counters and histograms for the ingest and query pipelines.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	ingestTotal    *prometheus.CounterVec
	ingestChunks   prometheus.Histogram
	ingestDuration prometheus.Histogram

	queryTotal        *prometheus.CounterVec
	querySources      prometheus.Histogram
	queryDuration     prometheus.Histogram
	storeMissingTotal prometheus.Counter
}

func NewServerMetrics(service string) *ServerMetrics {
	registry := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": service}

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "contractrag",
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "Total HTTP requests processed.",
			ConstLabels: constLabels,
		},
		[]string{"method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   "contractrag",
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request duration in seconds.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		},
		[]string{"method", "path"},
	)
	requestInFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   "contractrag",
		Subsystem:   "http",
		Name:        "in_flight_requests",
		Help:        "Number of in-flight HTTP requests.",
		ConstLabels: constLabels,
	})
	ingestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "contractrag",
			Subsystem:   "ingest",
			Name:        "documents_total",
			Help:        "Total processed uploads by outcome.",
			ConstLabels: constLabels,
		},
		[]string{"status"},
	)
	ingestChunks := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   "contractrag",
		Subsystem:   "ingest",
		Name:        "chunks",
		Help:        "Distribution of chunks produced per ingested document.",
		Buckets:     []float64{1, 5, 10, 25, 50, 100, 250, 500},
		ConstLabels: constLabels,
	})
	ingestDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   "contractrag",
		Subsystem:   "ingest",
		Name:        "duration_seconds",
		Help:        "Ingest pipeline duration in seconds.",
		Buckets:     prometheus.DefBuckets,
		ConstLabels: constLabels,
	})
	queryTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "contractrag",
			Subsystem:   "rag",
			Name:        "requests_total",
			Help:        "Total RAG query requests by outcome.",
			ConstLabels: constLabels,
		},
		[]string{"status"},
	)
	querySources := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   "contractrag",
		Subsystem:   "rag",
		Name:        "retrieved_chunks",
		Help:        "Distribution of retrieved chunks per answered query.",
		Buckets:     []float64{0, 1, 2, 3, 5, 8, 13},
		ConstLabels: constLabels,
	})
	queryDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   "contractrag",
		Subsystem:   "rag",
		Name:        "duration_seconds",
		Help:        "Query pipeline duration in seconds.",
		Buckets:     prometheus.DefBuckets,
		ConstLabels: constLabels,
	})
	storeMissingTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   "contractrag",
		Subsystem:   "rag",
		Name:        "store_missing_total",
		Help:        "Total queries issued before any document was ingested.",
		ConstLabels: constLabels,
	})

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		ingestTotal,
		ingestChunks,
		ingestDuration,
		queryTotal,
		querySources,
		queryDuration,
		storeMissingTotal,
	)

	return &ServerMetrics{
		registry:          registry,
		requestTotal:      requestTotal,
		requestDuration:   requestDuration,
		requestInFlight:   requestInFlight,
		ingestTotal:       ingestTotal,
		ingestChunks:      ingestChunks,
		ingestDuration:    ingestDuration,
		queryTotal:        queryTotal,
		querySources:      querySources,
		queryDuration:     queryDuration,
		storeMissingTotal: storeMissingTotal,
	}
}

func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *ServerMetrics) RecordRequest(method, path string, status int, duration time.Duration) {
	m.requestTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *ServerMetrics) RequestStarted()  { m.requestInFlight.Inc() }
func (m *ServerMetrics) RequestFinished() { m.requestInFlight.Dec() }

func (m *ServerMetrics) RecordIngest(status string, chunks int, duration time.Duration) {
	m.ingestTotal.WithLabelValues(status).Inc()
	if status == "ok" {
		m.ingestChunks.Observe(float64(chunks))
		m.ingestDuration.Observe(duration.Seconds())
	}
}

func (m *ServerMetrics) RecordQuery(status string, sources int, duration time.Duration) {
	m.queryTotal.WithLabelValues(status).Inc()
	if status == "ok" {
		m.querySources.Observe(float64(sources))
		m.queryDuration.Observe(duration.Seconds())
	}
}

func (m *ServerMetrics) RecordStoreMissing() {
	m.storeMissingTotal.Inc()
}
