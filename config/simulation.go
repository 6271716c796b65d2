package config

import (
	"errors"

	"github.com/kilianp07/gridsim/core/input"
	"github.com/kilianp07/gridsim/core/series"
)

// SimulationConfig holds the default inputs offered to users.
type SimulationConfig struct {
	// StorageCapacity and TimeStep are kept as text, like the interactive
	// inputs they pre-fill.
	StorageCapacity string    `json:"storage_capacity"`
	TimeStep        string    `json:"time_step"`
	Demand          []float64 `json:"demand"`
	// Renewable overrides the built-in solar profile when no upload is given.
	Renewable []float64 `json:"renewable"`
}

// SetDefaults applies the reference profile.
func (c *SimulationConfig) SetDefaults() {
	if c.StorageCapacity == "" {
		c.StorageCapacity = input.DefaultStorageCapacity
	}
	if c.TimeStep == "" {
		c.TimeStep = input.DefaultTimeStep
	}
	if len(c.Demand) == 0 {
		c.Demand = series.DefaultDemand()
	}
}

// Validate checks that the default texts parse.
func (c SimulationConfig) Validate() error {
	if _, err := input.ParseParams(c.StorageCapacity, c.TimeStep); err != nil {
		return err
	}
	if len(c.Demand) == 0 {
		return errors.New("demand is required")
	}
	return nil
}
