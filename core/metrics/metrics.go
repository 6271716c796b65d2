package metrics

import "time"

// Run outcomes.
const (
	OutcomeOK              = "ok"
	OutcomeInvalidInput    = "invalid_input"
	OutcomeMalformedUpload = "malformed_upload"
	OutcomeError           = "error"
)

// RunEvent describes one simulation run, successful or not.
type RunEvent struct {
	RunID           string
	Source          string
	Outcome         string
	Steps           int
	TotalDemand     float64
	TotalGeneration float64
	TotalStorage    float64
	// Storage holds the per-step captured energy of a successful run.
	Storage  []float64
	Duration time.Duration
	Time     time.Time
}

// SimulationSink records simulation runs for observability purposes.
type SimulationSink interface {
	RecordRun(ev RunEvent) error
}

// NopSink implements SimulationSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordRun(RunEvent) error { return nil }
