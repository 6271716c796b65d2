// Package summary computes the scalar totals displayed after a run.
package summary

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/gridsim/core/grid"
)

// Summary aggregates the output series of a run.
type Summary struct {
	TotalDemand     float64 `json:"total_demand_kwh"`
	TotalGeneration float64 `json:"total_renewable_generation_kwh"`
	TotalStorage    float64 `json:"total_energy_storage_kwh"`
	PeakDemand      float64 `json:"peak_demand_kw"`
	CaptureSteps    int     `json:"capture_steps"`
}

// Compute sums the demand, generation and storage series of r.
func Compute(r grid.Result) Summary {
	s := Summary{
		TotalDemand:     floats.Sum(r.Demand),
		TotalGeneration: floats.Sum(r.Generation),
		TotalStorage:    floats.Sum(r.Storage),
	}
	if len(r.Demand) > 0 {
		s.PeakDemand = floats.Max(r.Demand)
	}
	for _, v := range r.Storage {
		if v > 0 {
			s.CaptureSteps++
		}
	}
	return s
}

// Lines renders the three totals the way they are shown to users.
func (s Summary) Lines() []string {
	return []string{
		fmt.Sprintf("Total Demand: %.2f kWh", s.TotalDemand),
		fmt.Sprintf("Total Renewable Generation: %.2f kWh", s.TotalGeneration),
		fmt.Sprintf("Total Energy Storage: %.2f kWh", s.TotalStorage),
	}
}
