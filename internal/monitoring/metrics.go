// Package monitoring collects Prometheus metrics for the navigation core.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. Each instance carries its own
// registry so independent cores (and tests) never fight over metric names.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	NavigationsTotal *prometheus.CounterVec
	FetchDuration    prometheus.Histogram
	TabsOpen         prometheus.Gauge
}

// New creates a metrics collector backed by a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		NavigationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asterix_navigations_total",
				Help: "Total navigations executed, by outcome",
			},
			[]string{"outcome"},
		),
		FetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "asterix_fetch_duration_seconds",
				Help:    "Wall time of one page fetch in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
		),
		TabsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "asterix_tabs_open",
				Help: "Number of tabs currently open",
			},
		),
	}
}

// NavigationDone records one finished navigation attempt.
func (m *Metrics) NavigationDone(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.NavigationsTotal.WithLabelValues(outcome).Inc()
	m.FetchDuration.Observe(duration.Seconds())
}

// TabCreated records a new tab. Tabs are never closed in this core, so the
// gauge only ever rises.
func (m *Metrics) TabCreated() {
	if m == nil {
		return
	}
	m.TabsOpen.Inc()
}

// Gatherer exposes the underlying registry for scraping or inspection.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.registry
}
