// Package metrics exposes the Scheduler Service's Prometheus surface:
// per-round makespan/mean-flow-time gauges, a generation counter, and a
// round-duration histogram, all registered against a private registry
// so tests can spin up independent instances.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles every collector the service updates once per round.
type Metrics struct {
	registry *prometheus.Registry

	RoundsTotal             prometheus.Counter
	GenerationTotal         prometheus.Counter
	BestFitness             prometheus.Gauge
	RoundMakespan           prometheus.Gauge
	RoundMeanFlow           prometheus.Gauge
	RoundDuration           prometheus.Histogram
	DispatchWrites          prometheus.Counter
	RoundFailures           prometheus.Counter
	InternalInconsistencies prometheus.Counter
}

// New constructs a Metrics bundle registered against a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		RoundsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scheduler_rounds_total",
			Help: "Number of scheduling rounds completed.",
		}),
		GenerationTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scheduler_generations_total",
			Help: "Cumulative number of GA generations evolved across all rounds.",
		}),
		BestFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scheduler_best_fitness",
			Help: "Fitness (negative makespan) of the best chromosome found in the most recent round.",
		}),
		RoundMakespan: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scheduler_round_makespan_seconds",
			Help: "Makespan of the best schedule found in the most recent round.",
		}),
		RoundMeanFlow: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scheduler_round_mean_flow_time_seconds",
			Help: "Mean flow time of the best schedule found in the most recent round.",
		}),
		RoundDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scheduler_round_duration_seconds",
			Help:    "Wall-clock duration of a scheduling round.",
			Buckets: prometheus.DefBuckets,
		}),
		DispatchWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scheduler_dispatch_records_written_total",
			Help: "Number of dispatch records persisted to the gateway.",
		}),
		RoundFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scheduler_round_failures_total",
			Help: "Number of rounds aborted due to an invalid problem or gateway error.",
		}),
		InternalInconsistencies: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scheduler_internal_inconsistencies_total",
			Help: "Number of genes the evaluator dropped as an internal inconsistency (should never be nonzero).",
		}),
	}

	reg.MustRegister(
		m.RoundsTotal, m.GenerationTotal, m.BestFitness,
		m.RoundMakespan, m.RoundMeanFlow, m.RoundDuration,
		m.DispatchWrites, m.RoundFailures, m.InternalInconsistencies,
	)
	return m
}

// Handler returns the HTTP handler serving this bundle's registry in the
// Prometheus text exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
