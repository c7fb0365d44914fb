// Package metrics exposes Prometheus counters for predictions and reports.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application's collectors on a private registry. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	predictions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	reports     *prometheus.CounterVec
	llmCalls    *prometheus.CounterVec
}

// New registers the collectors, plus Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nitro",
			Name:      "predictions_total",
			Help:      "Completed predictions by risk level.",
		}, []string{"level"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nitro",
			Name:      "prediction_failures_total",
			Help:      "Rejected predictions by error kind.",
		}, []string{"kind"}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nitro",
			Name:      "reports_rendered_total",
			Help:      "Rendered HTML reports by kind.",
		}, []string{"kind"}),
		llmCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nitro",
			Name:      "llm_requests_total",
			Help:      "Narrative generation requests by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		m.predictions, m.failures, m.reports, m.llmCalls,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// PredictionDone counts a successful prediction by risk level.
func (m *Metrics) PredictionDone(level string) {
	if m != nil {
		m.predictions.WithLabelValues(level).Inc()
	}
}

// PredictionFailed counts a failed prediction by failure kind.
func (m *Metrics) PredictionFailed(kind string) {
	if m != nil {
		m.failures.WithLabelValues(kind).Inc()
	}
}

// ReportRendered counts a rendered report by kind.
func (m *Metrics) ReportRendered(kind string) {
	if m != nil {
		m.reports.WithLabelValues(kind).Inc()
	}
}

// LLMRequest counts a language model call by outcome.
func (m *Metrics) LLMRequest(outcome string) {
	if m != nil {
		m.llmCalls.WithLabelValues(outcome).Inc()
	}
}
