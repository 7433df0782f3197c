package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for fetching and rendering.
type Metrics struct {
	FetchDuration prometheus.Histogram
	FetchAttempts prometheus.Counter
	FetchErrors   prometheus.Counter

	RendersTotal  *prometheus.CounterVec // labels: format={html,svg,png}
	CellsRendered prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FetchDuration,
		m.FetchAttempts,
		m.FetchErrors,
		m.RendersTotal,
		m.CellsRendered,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "heatmap",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a dataset fetch including retries.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FetchAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "heatmap",
			Name:      "fetch_attempts_total",
			Help:      "HTTP requests made to the dataset host.",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "heatmap",
			Name:      "fetch_errors_total",
			Help:      "Dataset fetches that failed after all retries.",
		}),
		RendersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heatmap",
			Name:      "renders_total",
			Help:      "Charts rendered by output format.",
		}, []string{"format"}),
		CellsRendered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "heatmap",
			Name:      "cells_rendered",
			Help:      "Grid cells in the most recent render.",
		}),
	}
}
