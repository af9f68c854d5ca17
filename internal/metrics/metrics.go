// Package metrics owns the Prometheus registry for the service.
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	embedCalls   *prometheus.CounterVec
	embedLatency *prometheus.HistogramVec
	matches      *prometheus.HistogramVec
	catalogJobs  prometheus.Gauge
	sessionFails prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skillmatch",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "skillmatch",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		embedCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skillmatch",
			Name:      "embedding_calls_total",
			Help:      "Embedding provider calls by provider and outcome.",
		}, []string{"provider", "outcome"}),
		embedLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "skillmatch",
			Name:      "embedding_duration_seconds",
			Help:      "Embedding provider latency.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"provider"}),
		matches: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "skillmatch",
			Name:      "results_per_request",
			Help:      "Number of results returned per operation.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 10},
		}, []string{"operation"}),
		catalogJobs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "skillmatch",
			Name:      "catalog_jobs",
			Help:      "Job profiles loaded into the catalog.",
		}),
		sessionFails: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "skillmatch",
			Name:      "session_persist_failures_total",
			Help:      "Match sessions that could not be stored.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.embedCalls,
		m.embedLatency,
		m.matches,
		m.catalogJobs,
		m.sessionFails,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveEmbedding satisfies embedding.Observer.
func (m *Metrics) ObserveEmbedding(provider, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.embedCalls.WithLabelValues(provider, outcome).Inc()
	m.embedLatency.WithLabelValues(provider).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveResults(operation string, n int) {
	if m == nil {
		return
	}
	m.matches.WithLabelValues(operation).Observe(float64(n))
}

func (m *Metrics) SetCatalogJobs(n int) {
	if m == nil {
		return
	}
	m.catalogJobs.Set(float64(n))
}

func (m *Metrics) SessionPersistFailed() {
	if m == nil {
		return
	}
	m.sessionFails.Inc()
}

// RegisterDB exports connection pool stats for the sessions database.
func (m *Metrics) RegisterDB(db *sql.DB) error {
	if m == nil || db == nil {
		return nil
	}
	return m.registry.Register(collectors.NewDBStatsCollector(db, "sessions"))
}
