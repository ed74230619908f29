package integrators

import (
	"fmt"
	"sort"

	"github.com/alidh/modelab/internal/sim"
)

var factories = map[string]func() sim.Integrator{
	"euler": func() sim.Integrator { return NewEuler() },
	"rk4":   func() sim.Integrator { return NewRK4() },
	"rk45":  func() sim.Integrator { return NewRK45() },
}

// Get returns a fresh integrator by name. Integrators carry scratch buffers,
// so every simulation should use its own instance.
func Get(name string) (sim.Integrator, error) {
	fn, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
