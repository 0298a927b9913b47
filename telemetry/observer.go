// Package telemetry exports engine progress as Prometheus metrics.
package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lixenwraith/evocore/genetic"
	"github.com/lixenwraith/evocore/random"
)

// Namespace prefixes every metric name
const Namespace = "evocore"

// Observer implements genetic.Observer by updating per-run metrics
type Observer[F random.Numeric] struct {
	generation  *prometheus.GaugeVec
	best        *prometheus.GaugeVec
	mean        *prometheus.GaugeVec
	feasible    *prometheus.GaugeVec
	initialized *prometheus.CounterVec
	rejected    *prometheus.CounterVec
}

var _ genetic.Observer[float64] = (*Observer[float64])(nil)

// NewObserver creates the metrics and registers them with reg
func NewObserver[F random.Numeric](reg prometheus.Registerer) (*Observer[F], error) {
	labels := []string{"run_id"}
	o := &Observer[F]{
		generation: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "engine",
			Name:      "generation",
			Help:      "Index of the most recently completed generation",
		}, labels),
		best: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "engine",
			Name:      "best_objective",
			Help:      "Objective of the best ranked candidate in the current pool",
		}, labels),
		mean: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "engine",
			Name:      "mean_objective",
			Help:      "Mean objective of the current pool",
		}, labels),
		feasible: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "engine",
			Name:      "feasible_ratio",
			Help:      "Fraction of the current pool satisfying every constraint",
		}, labels),
		initialized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "init",
			Name:      "accepted_total",
			Help:      "Candidates accepted into the initial pool",
		}, labels),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "init",
			Name:      "rejected_total",
			Help:      "Candidates discarded by rejection sampling of the initial pool",
		}, labels),
	}

	for _, c := range []prometheus.Collector{o.generation, o.best, o.mean, o.feasible, o.initialized, o.rejected} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("telemetry: register: %w", err)
		}
	}
	return o, nil
}

// Initialized implements genetic.Observer
func (o *Observer[F]) Initialized(runID string, report genetic.Report, stats genetic.PoolStats[F]) {
	o.initialized.WithLabelValues(runID).Add(float64(report.Accepted))
	o.rejected.WithLabelValues(runID).Add(float64(report.Rejected()))
	o.record(runID, 0, stats)
}

// Generation implements genetic.Observer
func (o *Observer[F]) Generation(runID string, generation int, stats genetic.PoolStats[F]) {
	o.record(runID, generation, stats)
}

func (o *Observer[F]) record(runID string, generation int, stats genetic.PoolStats[F]) {
	o.generation.WithLabelValues(runID).Set(float64(generation))
	o.best.WithLabelValues(runID).Set(float64(stats.BestObjective))
	o.mean.WithLabelValues(runID).Set(stats.MeanObjective)
	o.feasible.WithLabelValues(runID).Set(stats.FeasibleFraction())
}
