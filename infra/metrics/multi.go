package metrics

import coremetrics "github.com/kilianp07/gridsim/core/metrics"

// MultiSink fans out run events to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.SimulationSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.SimulationSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordRun(ev coremetrics.RunEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordRun(ev); err != nil {
			return err
		}
	}
	return nil
}
