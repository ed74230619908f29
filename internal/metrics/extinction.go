package metrics

import "github.com/alidh/modelab/internal/sim"

// Extinction counts samples where a population sits at or below a floor
// density, the fraction of the run a species spent effectively extinct.
type Extinction struct {
	name    string
	floor   float64
	hits    int
	samples int
}

func NewExtinction(floor float64) *Extinction {
	return &Extinction{
		name:  "extinction",
		floor: floor,
	}
}

func (e *Extinction) Name() string { return e.name }

func (e *Extinction) Observe(x sim.State, t float64) {
	e.samples++
	for _, v := range x {
		if v <= e.floor {
			e.hits++
			break
		}
	}
}

func (e *Extinction) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return float64(e.hits) / float64(e.samples)
}

func (e *Extinction) Reset() {
	e.hits = 0
	e.samples = 0
}
