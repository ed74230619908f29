package sim

import (
	"context"
	"sync"
)

// Sweep runs independent simulations concurrently, one per system. Each run
// gets its own simulator and a fresh integrator from the factory, so nothing
// is shared between goroutines. Results are positional; the first error
// encountered is returned alongside whatever completed.
type Sweep struct {
	systems       []System
	newIntegrator func() Integrator
}

func NewSweep(systems []System, newIntegrator func() Integrator) *Sweep {
	return &Sweep{systems: systems, newIntegrator: newIntegrator}
}

func (sw *Sweep) Run(ctx context.Context, x0 State, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(sw.systems))
	errs := make([]error, len(sw.systems))

	var wg sync.WaitGroup
	for i, sys := range sw.systems {
		wg.Add(1)
		go func(idx int, sys System) {
			defer wg.Done()
			s := New(sys, sw.newIntegrator())
			results[idx], errs[idx] = s.Run(ctx, x0.Clone(), cfg)
		}(i, sys)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}

	return results, nil
}
