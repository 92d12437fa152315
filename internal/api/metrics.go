package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments exposed by the API server.
type Metrics struct {
	registry *prometheus.Registry

	GenerateTotal    *prometheus.CounterVec
	GenerateDuration prometheus.Histogram
	GenerateAttempts prometheus.Histogram
}

// NewMetrics creates a metrics set backed by its own registry so tests
// can run multiple servers without duplicate registration panics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{registry: registry}

	m.GenerateTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "floorplan_generate_total",
			Help: "Total number of layout generation requests",
		},
		[]string{"status"},
	)

	m.GenerateDuration = promauto.With(registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "floorplan_generate_duration_seconds",
			Help:    "Layout generation duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
		},
	)

	m.GenerateAttempts = promauto.With(registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "floorplan_generate_attempts",
			Help:    "Placement attempts consumed per generation request",
			Buckets: []float64{1, 10, 100, 1000, 10000},
		},
	)

	return m
}

// Registry returns the underlying Prometheus registry for the /metrics
// endpoint.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
