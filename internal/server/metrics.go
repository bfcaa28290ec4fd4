package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's collectors on a private registry, so several
// servers (one per test) never collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	generations  *prometheus.CounterVec
	genDuration  *prometheus.HistogramVec
}

func newMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aptiz_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aptiz_generations_total",
				Help: "Generation requests by test type and outcome",
			},
			[]string{"test_type", "outcome"},
		),
		genDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aptiz_generation_duration_seconds",
				Help:    "Duration of generation calls",
				Buckets: []float64{1, 2, 5, 10, 20, 40, 80},
			},
			[]string{"test_type"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.generations,
		m.genDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
