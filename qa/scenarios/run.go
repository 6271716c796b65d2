package scenarios

import (
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/kilianp07/gridsim/core/grid"
	"github.com/kilianp07/gridsim/core/summary"
)

// RunScenario simulates sc and fails t when an expected series differs or a
// storage bound is violated.
func RunScenario(t testing.TB, sc *Scenario) grid.Result {
	t.Helper()
	res, err := grid.Simulate(sc.Demand, sc.Renewable, sc.Params())
	if err != nil {
		t.Fatalf("scenario %s: %v", sc.Name, err)
	}
	check := func(label string, want, got []float64) {
		if len(want) == 0 {
			return
		}
		if len(want) != len(got) || !floats.EqualApprox(want, got, sc.Tolerance) {
			t.Errorf("scenario %s %s: expected %v, got %v", sc.Name, label, want, got)
		}
	}
	check("demand", sc.Expected.Demand, res.Demand)
	check("generation", sc.Expected.Generation, res.Generation)
	check("storage", sc.Expected.Storage, res.Storage)

	if want := sc.Expected.TotalStorage; want != nil {
		got := summary.Compute(res).TotalStorage
		if !scalar.EqualWithinAbs(*want, got, sc.Tolerance) {
			t.Errorf("scenario %s total storage: expected %v, got %v", sc.Name, *want, got)
		}
	}

	limit := sc.StorageCapacity * grid.RetentionFactor
	for i, v := range res.Storage {
		if v < 0 || (sc.StorageCapacity >= 0 && v > limit+sc.Tolerance) {
			t.Errorf("scenario %s step %d: storage %v outside [0, %v]", sc.Name, i+1, v, limit)
		}
	}
	return res
}
