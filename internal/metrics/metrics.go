package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's prometheus counters. Audit failures must be
// observable here rather than only in logs.
type Metrics struct {
	registry *prometheus.Registry

	AuditSubmitted prometheus.Counter
	AuditCommitted prometheus.Counter
	AuditRetries   prometheus.Counter
	AuditDropped   prometheus.Counter

	Predictions    prometheus.Counter
	FallbackReads  prometheus.Counter
	FallbackMisses prometheus.Counter
}

// New registers all counters on a fresh registry so each test (and each
// serving graph) gets independent state.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		AuditSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fatigue_audit_submitted_total",
			Help: "Audit records handed to the async logger.",
		}),
		AuditCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fatigue_audit_committed_total",
			Help: "Audit records accepted by the sink.",
		}),
		AuditRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fatigue_audit_retries_total",
			Help: "Retried audit write attempts.",
		}),
		AuditDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fatigue_audit_dropped_total",
			Help: "Audit records dropped after exhausting retries or on a full queue.",
		}),
		Predictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fatigue_predictions_total",
			Help: "Successful predictions served.",
		}),
		FallbackReads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fatigue_fallback_reads_total",
			Help: "GET fallback requests served from the last-result cache.",
		}),
		FallbackMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fatigue_fallback_misses_total",
			Help: "GET fallback requests with no prediction available.",
		}),
	}

	registry.MustRegister(
		m.AuditSubmitted,
		m.AuditCommitted,
		m.AuditRetries,
		m.AuditDropped,
		m.Predictions,
		m.FallbackReads,
		m.FallbackMisses,
	)
	return m
}

// Handler exposes the registry for GET /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
