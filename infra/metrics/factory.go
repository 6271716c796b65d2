package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/gridsim/core/logger"
	coremetrics "github.com/kilianp07/gridsim/core/metrics"
)

// NewSink builds the sinks enabled in cfg. It returns a NopSink when none is
// enabled and a MultiSink when several are.
func NewSink(cfg coremetrics.Config, reg prometheus.Registerer, log logger.Logger) (coremetrics.SimulationSink, error) {
	var sinks []coremetrics.SimulationSink
	if cfg.PrometheusEnabled {
		sink, err := NewPromSinkWithRegistry(reg)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, sink)
	}
	if cfg.LogRuns && log != nil {
		sinks = append(sinks, LogSink{Log: log})
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return NewMultiSink(sinks...), nil
	}
}

// LogSink writes every run event to a logger.
type LogSink struct {
	Log logger.Logger
}

func (s LogSink) RecordRun(ev coremetrics.RunEvent) error {
	s.Log.Infow("run recorded", map[string]any{
		"run_id":           ev.RunID,
		"source":           ev.Source,
		"outcome":          ev.Outcome,
		"steps":            ev.Steps,
		"total_demand":     ev.TotalDemand,
		"total_generation": ev.TotalGeneration,
		"total_storage":    ev.TotalStorage,
		"duration_ms":      ev.Duration.Milliseconds(),
	})
	return nil
}
