package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/gridsim/core/metrics"
)

// PromSink records simulation runs in Prometheus metrics.
type PromSink struct {
	runs     *prometheus.CounterVec
	totals   *prometheus.GaugeVec
	storage  prometheus.Histogram
	duration prometheus.Histogram
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "grid_simulation_runs_total",
		Help: "Total number of simulation runs",
	}, []string{"source", "outcome"})
	totals := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "grid_last_run_total_kwh",
		Help: "Series totals of the last successful run",
	}, []string{"series"})
	storage := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "grid_step_storage_kwh",
		Help:    "Energy captured into storage per time step",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "grid_simulation_duration_seconds",
		Help:    "Wall time spent handling a simulation run",
		Buckets: prometheus.DefBuckets,
	})

	var err error
	if runs, err = register(reg, runs); err != nil {
		return nil, err
	}
	if totals, err = register(reg, totals); err != nil {
		return nil, err
	}
	if storage, err = register(reg, storage); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	return &PromSink{runs: runs, totals: totals, storage: storage, duration: duration}, nil
}

// register returns the already registered collector when c was registered before.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordRun counts the run and, on success, updates totals and the per-step histogram.
func (s *PromSink) RecordRun(ev coremetrics.RunEvent) error {
	s.runs.WithLabelValues(ev.Source, ev.Outcome).Inc()
	s.duration.Observe(ev.Duration.Seconds())
	if ev.Outcome != coremetrics.OutcomeOK {
		return nil
	}
	s.totals.WithLabelValues("demand").Set(ev.TotalDemand)
	s.totals.WithLabelValues("generation").Set(ev.TotalGeneration)
	s.totals.WithLabelValues("storage").Set(ev.TotalStorage)
	for _, v := range ev.Storage {
		s.storage.Observe(v)
	}
	return nil
}
