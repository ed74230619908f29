// Package ecology implements the Lotka-Volterra predator-prey model.
//
//	dx/dt = αx − βxy
//	dy/dt = δxy − γy
//
// State: [x, y] where x is prey density and y is predator density.
package ecology

import (
	"context"
	"fmt"
	"math"

	"github.com/alidh/modelab/internal/integrators"
	"github.com/alidh/modelab/internal/sim"
)

// Params are the four rate constants. All must be strictly positive:
// Alpha is prey growth, Beta predation, Delta predator reproduction per prey
// consumed, Gamma predator mortality.
type Params struct {
	Alpha float64
	Beta  float64
	Delta float64
	Gamma float64
}

func (p Params) Validate() error {
	rates := map[string]float64{
		"alpha": p.Alpha,
		"beta":  p.Beta,
		"delta": p.Delta,
		"gamma": p.Gamma,
	}
	for name, v := range rates {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", sim.ErrInvalidParameters, name)
		}
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", sim.ErrInvalidParameters, name, v)
		}
	}
	return nil
}

type LotkaVolterra struct {
	params Params
}

func NewLotkaVolterra(p Params) (*LotkaVolterra, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &LotkaVolterra{params: p}, nil
}

func (lv *LotkaVolterra) Dim() int { return 2 }

func (lv *LotkaVolterra) Derive(s sim.State, _ float64) sim.State {
	x, y := s[0], s[1]
	p := lv.params

	dx := p.Alpha*x - p.Beta*x*y
	dy := p.Delta*x*y - p.Gamma*y

	return sim.State{dx, dy}
}

// Invariant returns V(x,y) = δx − γ·ln x + βy − α·ln y, conserved along exact
// solutions in the open quadrant. Undefined (NaN/Inf) when x or y is zero.
func (lv *LotkaVolterra) Invariant(s sim.State) float64 {
	x, y := s[0], s[1]
	p := lv.params
	return p.Delta*x - p.Gamma*math.Log(x) + p.Beta*y - p.Alpha*math.Log(y)
}

// Equilibrium returns the nontrivial fixed point (γ/δ, α/β).
func (lv *LotkaVolterra) Equilibrium() (float64, float64) {
	return lv.params.Gamma / lv.params.Delta, lv.params.Alpha / lv.params.Beta
}

func (lv *LotkaVolterra) DefaultState() sim.State {
	return sim.State{10.0, 5.0}
}

// GetParams implements sim.Configurable
func (lv *LotkaVolterra) GetParams() map[string]float64 {
	return map[string]float64{
		"alpha": lv.params.Alpha,
		"beta":  lv.params.Beta,
		"delta": lv.params.Delta,
		"gamma": lv.params.Gamma,
	}
}

// SetParam implements sim.Configurable
func (lv *LotkaVolterra) SetParam(name string, value float64) error {
	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s must be positive, got %g", sim.ErrInvalidParameters, name, value)
	}
	switch name {
	case "alpha":
		lv.params.Alpha = value
	case "beta":
		lv.params.Beta = value
	case "delta":
		lv.params.Delta = value
	case "gamma":
		lv.params.Gamma = value
	default:
		return fmt.Errorf("%w: unknown parameter %q", sim.ErrInvalidParameters, name)
	}
	return nil
}

// Simulate integrates the model from (x0, y0) over the given horizon and
// returns the trajectory. A nil integrator selects RK4. Populations pushed
// below zero by discretization error are clamped to zero and flagged on the
// affected samples. All validation happens before the first step. Optional
// metrics are observed at every step and reported on the result.
func Simulate(ctx context.Context, p Params, x0, y0, duration, step float64, integ sim.Integrator, ms ...sim.Metric) (*sim.Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(x0) || math.IsInf(x0, 0) || math.IsNaN(y0) || math.IsInf(y0, 0) {
		return nil, fmt.Errorf("%w: initial populations must be finite", sim.ErrInvalidParameters)
	}
	if x0 < 0 || y0 < 0 {
		return nil, fmt.Errorf("%w: initial populations must be non-negative, got x0=%g y0=%g", sim.ErrInvalidParameters, x0, y0)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %g", sim.ErrInvalidParameters, duration)
	}
	if step <= 0 {
		return nil, fmt.Errorf("%w: step must be positive, got %g", sim.ErrInvalidParameters, step)
	}

	if integ == nil {
		integ = integrators.NewRK4()
	}

	model := &LotkaVolterra{params: p}
	cfg := sim.Config{
		Dt:               step,
		Duration:         duration,
		ClampNonNegative: true,
		ValidateState:    true,
	}

	s := sim.New(model, integ)
	for _, m := range ms {
		s.AddMetric(m)
	}
	return s.Run(ctx, sim.State{x0, y0}, cfg)
}
