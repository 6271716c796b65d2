package grid

import "errors"

// RetentionFactor is the share of captured energy kept after charging losses.
const RetentionFactor = 0.95

var (
	// ErrEmptyDemand is returned when no demand values are supplied.
	ErrEmptyDemand = errors.New("demand series is empty")
	// ErrEmptyRenewable is returned when the renewable pattern has no values.
	ErrEmptyRenewable = errors.New("renewable series is empty")
)

// Params holds the scalar inputs of a simulation run.
type Params struct {
	// StorageCapacity caps the energy captured into storage in a single step (kWh).
	// A negative capacity disables capture.
	StorageCapacity float64 `json:"storage_capacity"`
	// TimeStepHours is the nominal step duration. It is carried as metadata only.
	TimeStepHours float64 `json:"time_step_hours"`
}

// State is the lifecycle stage of a Simulator.
type State int

const (
	StateUnrun State = iota
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateUnrun:
		return "unrun"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Result holds the series produced by a run. All slices have StepCount entries.
type Result struct {
	TimeSteps      []int     `json:"time_steps"`
	OriginalDemand []float64 `json:"original_demand"`
	Demand         []float64 `json:"demand"`
	Generation     []float64 `json:"renewable_generation"`
	Storage        []float64 `json:"storage_level"`
	Params         Params    `json:"params"`
}

// StepCount returns the number of simulated steps.
func (r Result) StepCount() int { return len(r.TimeSteps) }

// Simulator runs the greedy storage rule over a fixed demand series.
// Inputs are copied at construction so callers may reuse their slices.
type Simulator struct {
	demand    []float64
	renewable []float64
	params    Params
	state     State
}

// NewSimulator validates the series and snapshots them.
func NewSimulator(demand, renewable []float64, p Params) (*Simulator, error) {
	if len(demand) == 0 {
		return nil, ErrEmptyDemand
	}
	if len(renewable) == 0 {
		return nil, ErrEmptyRenewable
	}
	return &Simulator{
		demand:    append([]float64(nil), demand...),
		renewable: append([]float64(nil), renewable...),
		params:    p,
	}, nil
}

// StepCount returns the number of steps a run produces.
func (s *Simulator) StepCount() int { return len(s.demand) }

// Params returns the scalar inputs of the simulator.
func (s *Simulator) Params() Params { return s.params }

// State reports whether Run has been called.
func (s *Simulator) State() State { return s.state }

// Run steps through every time step in order and returns freshly allocated
// output series. The snapshot is never modified, so repeated calls return
// identical results.
func (s *Simulator) Run() Result {
	n := len(s.demand)
	res := Result{
		TimeSteps:      make([]int, n),
		OriginalDemand: append([]float64(nil), s.demand...),
		Demand:         make([]float64, n),
		Generation:     make([]float64, n),
		Storage:        make([]float64, n),
		Params:         s.params,
	}
	for i := 0; i < n; i++ {
		gen, stored := s.step(i)
		res.TimeSteps[i] = i + 1
		res.Generation[i] = gen
		res.Storage[i] = stored
		res.Demand[i] = s.demand[i] + stored
	}
	s.state = StateCompleted
	return res
}

// step returns the generation attributed to step i and the energy retained in
// storage after losses. A NaN surplus captures nothing. A NaN capacity does
// not cap the surplus.
func (s *Simulator) step(i int) (float64, float64) {
	gen := s.renewable[i%len(s.renewable)]
	excess := gen - s.demand[i]
	if !(excess > 0) {
		excess = 0
	}
	captured := excess
	if s.params.StorageCapacity < captured {
		captured = s.params.StorageCapacity
	}
	if captured < 0 {
		captured = 0
	}
	return gen, captured * RetentionFactor
}

// Simulate builds a Simulator and runs it once.
func Simulate(demand, renewable []float64, p Params) (Result, error) {
	sim, err := NewSimulator(demand, renewable, p)
	if err != nil {
		return Result{}, err
	}
	return sim.Run(), nil
}
