package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	FileLabel      = "file"
	AlgorithmLabel = "algorithm"
)

// Exporter aggregates run records into a private registry that can be dumped
// in the node exporter textfile format.
type Exporter struct {
	registry *prometheus.Registry

	runs      *prometheus.CounterVec
	solved    *prometheus.CounterVec
	rollouts  *prometheus.CounterVec
	flips     *prometheus.CounterVec
	bestScore *prometheus.GaugeVec
	duration  *prometheus.HistogramVec

	mu   sync.Mutex
	best map[[2]string]float64
}

func NewExporter() *Exporter {
	labels := []string{FileLabel, AlgorithmLabel}
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		best:     make(map[[2]string]float64),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcsat_runs_total",
				Help: "Number of completed search runs",
			},
			labels,
		),
		solved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcsat_solved_runs_total",
				Help: "Number of runs that satisfied every clause",
			},
			labels,
		),
		rollouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcsat_rollouts_total",
				Help: "Number of leaf evaluations",
			},
			labels,
		),
		flips: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcsat_flips_total",
				Help: "Number of local search flips",
			},
			labels,
		),
		bestScore: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mcsat_best_score",
				Help: "Lowest unsatisfied weight found over all runs",
			},
			labels,
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mcsat_run_duration_seconds",
				Help:    "Wall time of one search run",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			labels,
		),
	}
	e.registry.MustRegister(e.runs, e.solved, e.rollouts, e.flips, e.bestScore, e.duration)
	return e
}

// Observe is safe for concurrent use.
func (e *Exporter) Observe(m RunMetric) {
	labels := prometheus.Labels{FileLabel: m.File, AlgorithmLabel: m.Algorithm}

	e.runs.With(labels).Inc()
	if m.Solved {
		e.solved.With(labels).Inc()
	}
	e.rollouts.With(labels).Add(float64(m.Rollouts))
	e.flips.With(labels).Add(float64(m.Flips))
	e.duration.With(labels).Observe(m.Duration.Seconds())

	// Runs of one file may finish in any order, keep the minimum.
	e.mu.Lock()
	defer e.mu.Unlock()
	key := [2]string{m.File, m.Algorithm}
	if best, ok := e.best[key]; !ok || m.Score < best {
		e.best[key] = m.Score
		e.bestScore.With(labels).Set(m.Score)
	}
}

func (e *Exporter) WriteTextfile(path string) error {
	err := prometheus.WriteToTextfile(path, e.registry)
	if err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}
