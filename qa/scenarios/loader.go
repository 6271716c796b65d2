package scenarios

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/gridsim/core/grid"
)

// Expected lists the series a scenario must produce. Empty series are not checked.
type Expected struct {
	Demand       []float64 `yaml:"demand"`
	Generation   []float64 `yaml:"generation"`
	Storage      []float64 `yaml:"storage"`
	TotalStorage *float64  `yaml:"total_storage,omitempty"`
}

type Scenario struct {
	Name            string    `yaml:"name"`
	Description     string    `yaml:"description,omitempty"`
	Demand          []float64 `yaml:"demand"`
	Renewable       []float64 `yaml:"renewable"`
	StorageCapacity float64   `yaml:"storage_capacity"`
	TimeStepHours   float64   `yaml:"time_step_hours,omitempty"`
	Tolerance       float64   `yaml:"tolerance,omitempty"`
	Expected        Expected  `yaml:"expected"`
}

// Params returns the simulation parameters of the scenario.
func (s Scenario) Params() grid.Params {
	return grid.Params{StorageCapacity: s.StorageCapacity, TimeStepHours: s.TimeStepHours}
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = filepath.Base(path)
	}
	if sc.Tolerance == 0 {
		sc.Tolerance = 1e-9
	}
	return &sc, nil
}

// LoadDir loads every *.yaml scenario in dir, sorted by file name.
func LoadDir(dir string) ([]*Scenario, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	out := make([]*Scenario, 0, len(files))
	for _, f := range files {
		sc, err := Load(f)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}
