package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

const tol = 1e-9

func TestRunScenarios(t *testing.T) {
	cases := []struct {
		name       string
		demand     []float64
		renewable  []float64
		capacity   float64
		wantDemand []float64
		wantGen    []float64
		wantStore  []float64
	}{
		{"surplus", []float64{100}, []float64{150}, 50, []float64{147.5}, []float64{150}, []float64{47.5}},
		{"deficit", []float64{100}, []float64{80}, 50, []float64{100}, []float64{80}, []float64{0}},
		{"cyclic", []float64{100, 90}, []float64{150}, 1000, []float64{147.5, 147}, []float64{150, 150}, []float64{47.5, 57}},
		{"zero capacity", []float64{10, 20, 30}, []float64{100, 200}, 0, []float64{10, 20, 30}, []float64{100, 200, 100}, []float64{0, 0, 0}},
		{"negative capacity", []float64{10}, []float64{100}, -5, []float64{10}, []float64{100}, []float64{0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Simulate(tc.demand, tc.renewable, Params{StorageCapacity: tc.capacity, TimeStepHours: 1})
			require.NoError(t, err)
			assert.True(t, floats.EqualApprox(res.Demand, tc.wantDemand, tol), "demand %v", res.Demand)
			assert.True(t, floats.EqualApprox(res.Generation, tc.wantGen, tol), "generation %v", res.Generation)
			assert.True(t, floats.EqualApprox(res.Storage, tc.wantStore, tol), "storage %v", res.Storage)
		})
	}
}

func TestRunInvariants(t *testing.T) {
	demand := []float64{100, 90, 80, 70, 60, 50, 40, 30, 20, 15, 70, 123, 145, 108, 60, 15, 4, 100, 130, 98}
	renewable := []float64{10, 30, 40, 50, 70, 90, 100, 110, 105, 100, 90, 70, 60, 45, 50, 50, 60, 65, 60, 75, 85}
	for _, capacity := range []float64{0, 5, 50, 1000} {
		res, err := Simulate(demand, renewable, Params{StorageCapacity: capacity})
		require.NoError(t, err)
		require.Equal(t, len(demand), res.StepCount())
		require.Len(t, res.Demand, len(demand))
		require.Len(t, res.Generation, len(demand))
		require.Len(t, res.Storage, len(demand))
		for i := range demand {
			assert.Equal(t, i+1, res.TimeSteps[i])
			assert.Equal(t, renewable[i%len(renewable)], res.Generation[i])
			assert.GreaterOrEqual(t, res.Storage[i], 0.0)
			assert.LessOrEqual(t, res.Storage[i], capacity*RetentionFactor+tol)
			if res.Storage[i] > 0 {
				assert.Greater(t, res.Generation[i], demand[i])
			}
			assert.InDelta(t, demand[i]+res.Storage[i], res.Demand[i], tol)
			assert.Equal(t, demand[i], res.OriginalDemand[i])
		}
	}
}

func TestRunDoesNotMutateInputs(t *testing.T) {
	demand := []float64{100, 90}
	renewable := []float64{150}
	sim, err := NewSimulator(demand, renewable, Params{StorageCapacity: 50})
	require.NoError(t, err)
	assert.Equal(t, StateUnrun, sim.State())

	first := sim.Run()
	assert.Equal(t, StateCompleted, sim.State())
	assert.Equal(t, []float64{100, 90}, demand)
	assert.Equal(t, []float64{150}, renewable)

	second := sim.Run()
	assert.Equal(t, first, second)
}

func TestRunDeterministic(t *testing.T) {
	demand := []float64{5, 50, 500}
	renewable := []float64{40, 60}
	a, err := Simulate(demand, renewable, Params{StorageCapacity: 20})
	require.NoError(t, err)
	b, err := Simulate(demand, renewable, Params{StorageCapacity: 20})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNewSimulatorRejectsEmptySeries(t *testing.T) {
	_, err := NewSimulator(nil, []float64{1}, Params{})
	assert.ErrorIs(t, err, ErrEmptyDemand)
	_, err = NewSimulator([]float64{1}, []float64{}, Params{})
	assert.ErrorIs(t, err, ErrEmptyRenewable)
}

func TestSingleStep(t *testing.T) {
	sim, err := NewSimulator([]float64{1}, []float64{2, 3, 4}, Params{StorageCapacity: 10, TimeStepHours: 0.5})
	require.NoError(t, err)
	assert.Equal(t, 1, sim.StepCount())
	assert.Equal(t, 0.5, sim.Params().TimeStepHours)
	res := sim.Run()
	assert.InDelta(t, 0.95, res.Storage[0], tol)
	assert.InDelta(t, 1.95, res.Demand[0], tol)
}

func TestNaNPropagates(t *testing.T) {
	res, err := Simulate([]float64{math.NaN(), 10}, []float64{20, math.NaN()}, Params{StorageCapacity: 50})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(res.Demand[0]))
	assert.Equal(t, 0.0, res.Storage[0])
	assert.True(t, math.IsNaN(res.Generation[1]))
	assert.Equal(t, 0.0, res.Storage[1])
	assert.Equal(t, 10.0, res.Demand[1])
}

func TestNonFiniteCapacityDoesNotCap(t *testing.T) {
	for _, capacity := range []float64{math.NaN(), math.Inf(1)} {
		res, err := Simulate([]float64{10, 40}, []float64{30}, Params{StorageCapacity: capacity})
		require.NoError(t, err)
		assert.Equal(t, []float64{19, 0}, res.Storage, "capacity %v", capacity)
		assert.Equal(t, []float64{29, 40}, res.Demand, "capacity %v", capacity)
	}

	res, err := Simulate([]float64{10}, []float64{30}, Params{StorageCapacity: math.Inf(-1)})
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, res.Storage)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unrun", StateUnrun.String())
	assert.Equal(t, "completed", StateCompleted.String())
	assert.Equal(t, "unknown", State(9).String())
}
