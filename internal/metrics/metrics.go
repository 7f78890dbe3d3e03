// Package metrics coding=utf-8
// @Project : molstack
// @File    : metrics.go
//
// Package metrics exposes the counters and histograms the driver loop and
// StackCache update. No HTTP server is started here (out of scope per
// §1); Registry is exported so cmd/molstack can optionally serve it.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	registry = prometheus.NewRegistry()

	StepsExecuted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "molstack_steps_executed_total",
			Help: "Number of workflow steps executed, by runner kind.",
		},
		[]string{"runner"},
	)

	StepDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "molstack_step_duration_seconds",
			Help:    "Wall-clock duration of each executed step, by runner kind.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"runner"},
	)

	MaterializeCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "molstack_materialize_cache_hits_total",
			Help: "Stack materializations served from the StackCache.",
		},
	)

	MaterializeCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "molstack_materialize_cache_misses_total",
			Help: "Stack materializations that required recomputation.",
		},
	)
)

func init() {
	registry.MustRegister(StepsExecuted, StepDuration, MaterializeCacheHits, MaterializeCacheMisses)
}

// Registry returns the Prometheus registry molstack's metrics are
// registered against.
func Registry() *prometheus.Registry {
	return registry
}
