package analysis

import (
	"math"
	"testing"

	"github.com/alidh/modelab/internal/sim"
)

func sineTrajectory(cycles float64, samples int) *sim.Result {
	r := &sim.Result{
		States: make([]sim.State, samples),
		Times:  make([]float64, samples),
	}
	for i := 0; i < samples; i++ {
		t := cycles * 2 * math.Pi * float64(i) / float64(samples-1)
		r.Times[i] = t
		r.States[i] = sim.State{math.Sin(t)}
	}
	return r
}

func TestDetectOscillationSine(t *testing.T) {
	r := sineTrajectory(3, 3001)
	osc := DetectOscillation(r, 0, 0)

	// Three full sine cycles cross zero six times (endpoints sit on the level).
	if osc.Crossings < 5 || osc.Crossings > 7 {
		t.Errorf("expected ~6 crossings, got %d", osc.Crossings)
	}
	if osc.Peaks != 3 {
		t.Errorf("expected 3 peaks, got %d", osc.Peaks)
	}
	if math.Abs(osc.Period-2*math.Pi) > 0.05 {
		t.Errorf("expected period ~2π, got %f", osc.Period)
	}
}

func TestDetectOscillationMonotonic(t *testing.T) {
	r := &sim.Result{
		States: []sim.State{{1}, {2}, {3}, {4}},
		Times:  []float64{0, 1, 2, 3},
	}

	osc := DetectOscillation(r, 0, 1)
	if osc.Crossings != 0 {
		t.Errorf("monotonic series should not cross, got %d", osc.Crossings)
	}
	if osc.Period != 0 {
		t.Errorf("expected zero period, got %f", osc.Period)
	}
}

func TestDetectOscillationFlat(t *testing.T) {
	r := &sim.Result{
		States: []sim.State{{5}, {5}, {5}},
		Times:  []float64{0, 1, 2},
	}

	osc := DetectOscillation(r, 0, 5)
	if osc.Crossings != 0 || osc.Peaks != 0 {
		t.Errorf("flat series should be quiet, got %+v", osc)
	}
}
