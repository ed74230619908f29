package sim

import (
	"context"
	"fmt"
	"math"
)

type Simulator struct {
	sys        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(sys System, integrator Integrator) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates the system from x0 over cfg.Duration with fixed step cfg.Dt
// and returns the full trajectory, N+1 samples including the initial state.
// A non-finite state aborts the run with ErrNotFinite; no partial trajectory
// is returned in that case.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validate(x0, cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		States:  make([]State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Clamped: make([]bool, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)
	result.Clamped = append(result.Clamped, false)

	initialInvariant, hasInvariant := s.invariant(x)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}

		var next State
		stepDt := dt
		if cfg.Adaptive {
			var err error
			next, dt, err = s.adaptiveStep(x, t, stepDt, cfg)
			if err != nil {
				return nil, &StepError{Step: i, Time: t, Wrapped: err}
			}
		} else {
			next = s.integrator.Step(s.sys, x, t, stepDt)
		}

		if cfg.ValidateState && !next.IsValid() {
			return nil, &StepError{Step: i, Time: t, Wrapped: ErrNotFinite}
		}

		clamped := false
		if cfg.ClampNonNegative {
			next, clamped = clampNonNegative(next)
		}

		x = next
		t += stepDt
		result.StepsTaken++

		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
		result.Clamped = append(result.Clamped, clamped)
	}

	// Invariant is undefined on the axes (ln of a zero population), so the
	// drift diagnostic is only reported when both endpoints are finite.
	if hasInvariant {
		final, _ := s.invariant(x)
		if initialInvariant != 0 && !math.IsNaN(initialInvariant) && !math.IsInf(initialInvariant, 0) &&
			!math.IsNaN(final) && !math.IsInf(final, 0) {
			result.InvariantDrift = math.Abs(final-initialInvariant) / math.Abs(initialInvariant)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validate(x0 State, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidParameters, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidParameters, cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive for adaptive stepping", ErrInvalidParameters)
	}
	if len(x0) != s.sys.Dim() {
		return fmt.Errorf("%w: got %d, system wants %d", ErrDimensionMismatch, len(x0), s.sys.Dim())
	}
	if !x0.IsValid() {
		return fmt.Errorf("%w: initial state", ErrNotFinite)
	}
	return nil
}

func (s *Simulator) invariant(x State) (float64, bool) {
	if c, ok := s.sys.(Conserved); ok {
		return c.Invariant(x), true
	}
	return 0, false
}

func (s *Simulator) adaptiveStep(x State, t, dt float64, cfg Config) (State, float64, error) {
	if adaptive, ok := s.integrator.(AdaptiveIntegrator); ok {
		return adaptive.StepAdaptive(s.sys, x, t, dt, cfg.Tolerance)
	}
	return s.integrator.Step(s.sys, x, t, dt), dt, nil
}

// clampNonNegative zeroes components that discretization error pushed below
// zero. Populations cannot be negative, so this trades exactness for
// physical validity; the flag lets callers tell the two apart.
func clampNonNegative(x State) (State, bool) {
	clamped := false
	for i, v := range x {
		if v < 0 {
			x[i] = 0
			clamped = true
		}
	}
	return x, clamped
}
