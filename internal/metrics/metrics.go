// Package metrics exposes Prometheus metrics for the tool registry and the
// trace client.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application. It implements
// tool.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	ToolsRegisteredTotal prometheus.Counter
	ToolExecutionsTotal  *prometheus.CounterVec
	ToolExecutionSeconds *prometheus.HistogramVec
	ToolSearchesTotal    prometheus.Counter
	TraceFetchesTotal    *prometheus.CounterVec
}

// New creates and registers all metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		ToolsRegisteredTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "toolbelt_tools_registered_total",
			Help: "Total number of tools registered",
		}),
		ToolExecutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "toolbelt_tool_executions_total",
				Help: "Total number of tool executions",
			},
			[]string{"tool", "status"},
		),
		ToolExecutionSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "toolbelt_tool_execution_duration_seconds",
				Help:    "Duration of tool executions in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		ToolSearchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "toolbelt_tool_searches_total",
			Help: "Total number of tool searches",
		}),
		TraceFetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "toolbelt_trace_fetches_total",
				Help: "Total number of trace API fetches",
			},
			[]string{"status"},
		),
	}

	registry.MustRegister(
		m.ToolsRegisteredTotal,
		m.ToolExecutionsTotal,
		m.ToolExecutionSeconds,
		m.ToolSearchesTotal,
		m.TraceFetchesTotal,
	)

	return m
}

// ToolRegistered counts a registration.
func (m *Metrics) ToolRegistered(id string) {
	m.ToolsRegisteredTotal.Inc()
}

// ExecutionObserved counts an execution outcome and its duration.
func (m *Metrics) ExecutionObserved(id, status string, d time.Duration) {
	m.ToolExecutionsTotal.WithLabelValues(id, status).Inc()
	m.ToolExecutionSeconds.WithLabelValues(id).Observe(d.Seconds())
}

// SearchObserved counts a search query.
func (m *Metrics) SearchObserved(query string, hits int) {
	m.ToolSearchesTotal.Inc()
}

// TraceFetchObserved counts a trace API fetch by outcome.
func (m *Metrics) TraceFetchObserved(status string) {
	m.TraceFetchesTotal.WithLabelValues(status).Inc()
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
