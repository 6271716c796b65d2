package app

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/gridsim/core/grid"
	"github.com/kilianp07/gridsim/core/input"
	coremetrics "github.com/kilianp07/gridsim/core/metrics"
	"github.com/kilianp07/gridsim/core/series"
	"github.com/kilianp07/gridsim/core/summary"
)

// Request carries the inputs of one "Simulate" action.
type Request struct {
	StorageCapacity string
	TimeStep        string
	// Demand overrides the configured demand series.
	Demand []float64
	// Renewable overrides the configured renewable series. Upload wins over it.
	Renewable []float64
	// Upload is an optional CSV renewable series.
	Upload io.Reader
	// RenewableFile names a CSV renewable series on disk. It is read when
	// Upload is nil and counts as an upload.
	RenewableFile string
}

// Report is the outcome of a successful run.
type Report struct {
	ID      string
	Source  series.Source
	Result  grid.Result
	Summary summary.Summary
}

// UserError is a recoverable failure whose message is shown to users.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string { return e.Message }

func (e *UserError) Unwrap() error { return e.Err }

// IsUserError reports whether err should be surfaced to the user rather than
// treated as an internal fault.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}

// UserMessage returns the text to display for err.
func UserMessage(err error) string {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Message
	}
	return "Simulation failed."
}

// Simulate parses the inputs, runs a fresh simulator once and records the run.
// A malformed upload aborts the run; it never falls back to the default series.
func (s *Service) Simulate(req Request) (*Report, error) {
	start := time.Now()
	id := uuid.NewString()
	ev := coremetrics.RunEvent{RunID: id, Source: series.SourceDefault.String(), Time: start}

	rep, err := s.simulate(id, req, &ev)
	ev.Duration = time.Since(start)
	if err != nil {
		if ev.Outcome == "" {
			ev.Outcome = coremetrics.OutcomeError
		}
		s.record(ev)
		s.log.Warnf("run %s rejected: %v", id, errors.Unwrap(err))
		return nil, err
	}
	ev.Outcome = coremetrics.OutcomeOK
	s.record(ev)
	s.log.Infow("simulation completed", map[string]any{
		"run_id":           id,
		"source":           rep.Source.String(),
		"steps":            rep.Result.StepCount(),
		"storage_capacity": rep.Result.Params.StorageCapacity,
		"total_storage":    rep.Summary.TotalStorage,
	})
	return rep, nil
}

func (s *Service) simulate(id string, req Request, ev *coremetrics.RunEvent) (*Report, error) {
	params, err := input.ParseParams(req.StorageCapacity, req.TimeStep)
	if err != nil {
		ev.Outcome = coremetrics.OutcomeInvalidInput
		return nil, &UserError{Message: input.ErrInvalidInput.Error(), Err: err}
	}

	var upload []float64
	switch {
	case req.Upload != nil:
		ev.Source = series.SourceUpload.String()
		upload, err = series.ParseCSV(req.Upload)
	case req.RenewableFile != "":
		ev.Source = series.SourceUpload.String()
		upload, err = series.LoadCSV(req.RenewableFile)
	}
	if err != nil {
		ev.Outcome = coremetrics.OutcomeMalformedUpload
		return nil, &UserError{Message: fmt.Sprintf("Invalid renewable energy data: %v", err), Err: err}
	}
	configured := req.Renewable
	if configured == nil {
		configured = s.cfg.Renewable
	}
	sel := series.Resolve(upload, configured)
	ev.Source = sel.Source.String()

	demand := req.Demand
	if len(demand) == 0 {
		demand = s.cfg.Demand
	}
	sim, err := grid.NewSimulator(demand, sel.Values, params)
	if err != nil {
		ev.Outcome = coremetrics.OutcomeInvalidInput
		return nil, &UserError{Message: fmt.Sprintf("Invalid input: %v", err), Err: err}
	}
	s.log.Debugf("run %s: %d steps, %d renewable values from %s", id, sim.StepCount(), len(sel.Values), sel.Source)

	res := sim.Run()
	sum := summary.Compute(res)
	ev.Steps = res.StepCount()
	ev.TotalDemand = sum.TotalDemand
	ev.TotalGeneration = sum.TotalGeneration
	ev.TotalStorage = sum.TotalStorage
	ev.Storage = res.Storage
	return &Report{ID: id, Source: sel.Source, Result: res, Summary: sum}, nil
}

func (s *Service) record(ev coremetrics.RunEvent) {
	if err := s.sink.RecordRun(ev); err != nil {
		s.log.Errorf("record run %s: %v", ev.RunID, err)
	}
}
