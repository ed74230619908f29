package sim

import "math"

// State is a point in a system's state space. For the predator-prey model it
// is [prey, predator].
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is a first-order ODE system dx/dt = f(x, t).
type System interface {
	Derive(x State, t float64) State
	Dim() int
}

// Conserved is implemented by systems with a known first integral; the
// simulator reports its relative drift over a run as an accuracy diagnostic.
type Conserved interface {
	Invariant(x State) float64
}

type Integrator interface {
	Step(sys System, x State, t float64, dt float64) State
}

type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt, tol float64) (State, float64, error)
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Config struct {
	Dt               float64
	Duration         float64
	ClampNonNegative bool
	ValidateState    bool
	Tolerance        float64
	Adaptive         bool
}

func DefaultConfig() Config {
	return Config{
		Dt:               0.01,
		Duration:         10.0,
		ClampNonNegative: true,
		ValidateState:    true,
		Tolerance:        1e-6,
	}
}

// Result holds one completed run. States[i] is the state at Times[i].
// Clamped[i] reports whether any component of States[i] was clamped to zero,
// a documented deviation from the exact continuous solution, not an error.
type Result struct {
	States         []State
	Times          []float64
	Clamped        []bool
	Metrics        map[string]float64
	InvariantDrift float64
	StepsTaken     int
}

func (r *Result) Final() State {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}

// Component extracts the trajectory of one state component, for plotting.
func (r *Result) Component(i int) []float64 {
	out := make([]float64, len(r.States))
	for j, s := range r.States {
		if i < len(s) {
			out[j] = s[i]
		}
	}
	return out
}
