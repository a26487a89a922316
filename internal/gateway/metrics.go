package gateway

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the gateway's Prometheus collectors on a private
// registry so tests can run in parallel without collisions.
type Metrics struct {
	registry *prometheus.Registry

	messages    prometheus.Counter
	emergencies prometheus.Counter
	followups   prometheus.Counter
	errors      prometheus.Counter
	latency     prometheus.Histogram
}

// NewMetrics returns a Metrics with all collectors registered.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		messages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "safespace_messages_total",
			Help: "Inbound chat messages processed.",
		}),
		emergencies: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "safespace_emergencies_total",
			Help: "Messages that triggered the emergency path.",
		}),
		followups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "safespace_followups_total",
			Help: "Replies that included a follow-up question.",
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "safespace_request_errors_total",
			Help: "Requests rejected or failed.",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "safespace_message_duration_seconds",
			Help:    "End-to-end message processing time.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.messages, m.emergencies, m.followups, m.errors, m.latency)
	return m
}

// Handler serves the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
