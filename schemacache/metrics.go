package schemacache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus collectors for one Cache.
type metrics struct {
	lookups         *prometheus.CounterVec
	computations    prometheus.Counter
	failures        prometheus.Counter
	entries         prometheus.Gauge
	computeDuration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		lookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "asynctools",
				Subsystem: "schema_cache",
				Name:      "lookups_total",
				Help:      "Total number of schema cache lookups by result",
			},
			[]string{"result"},
		),
		computations: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "asynctools",
				Subsystem: "schema_cache",
				Name:      "computations_total",
				Help:      "Total number of schema computations started",
			},
		),
		failures: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "asynctools",
				Subsystem: "schema_cache",
				Name:      "compute_failures_total",
				Help:      "Total number of schema computations that failed",
			},
		),
		entries: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "asynctools",
				Subsystem: "schema_cache",
				Name:      "entries",
				Help:      "Number of schemas held by the cache",
			},
		),
		computeDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "asynctools",
				Subsystem: "schema_cache",
				Name:      "compute_duration_seconds",
				Help:      "Schema computation duration in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
		),
	}
}
