// Package metrics exposes Prometheus metrics for the indicator server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the indicator server.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal       *prometheus.CounterVec   // labels: status
	BarsPerRequest      prometheus.Histogram
	IndicatorsTotal     *prometheus.CounterVec   // labels: indicator
	IndicatorPoints     *prometheus.CounterVec   // labels: indicator
	IndicatorComputeDur *prometheus.HistogramVec // labels: indicator
}

// New creates the metrics on a private registry so several servers (and
// tests) can coexist in one process.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signals_requests_total",
			Help: "Indicator API requests by response status",
		}, []string{"status"}),
		BarsPerRequest: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "signals_request_bars",
			Help:    "Number of bars submitted per request",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		}),
		IndicatorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signals_indicators_computed_total",
			Help: "Indicator computations by indicator name",
		}, []string{"indicator"}),
		IndicatorPoints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signals_indicator_points_total",
			Help: "Output points produced by indicator name",
		}, []string{"indicator"}),
		IndicatorComputeDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "signals_indicator_compute_seconds",
			Help:    "Time spent computing one indicator",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"indicator"}),
	}

	m.registry.MustRegister(
		m.RequestsTotal,
		m.BarsPerRequest,
		m.IndicatorsTotal,
		m.IndicatorPoints,
		m.IndicatorComputeDur,
		collectors.NewGoCollector(),
	)
	return m
}

// Observe implements engine.Observer.
func (m *Metrics) Observe(name string, points int, elapsed time.Duration) {
	m.IndicatorsTotal.WithLabelValues(name).Inc()
	m.IndicatorPoints.WithLabelValues(name).Add(float64(points))
	m.IndicatorComputeDur.WithLabelValues(name).Observe(elapsed.Seconds())
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
