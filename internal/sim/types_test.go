package sim

import (
	"math"
	"testing"
)

func TestStateClone(t *testing.T) {
	s := State{1.0, 2.0}
	c := s.Clone()

	c[0] = 99.0

	if s[0] != 1.0 {
		t.Errorf("clone aliases original: %v", s)
	}
}

func TestStateIsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"finite", State{1.0, -2.0}, true},
		{"empty", State{}, true},
		{"nan", State{1.0, math.NaN()}, false},
		{"pos inf", State{math.Inf(1), 0}, false},
		{"neg inf", State{0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.want {
				t.Errorf("IsValid(%v) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestStateNorm(t *testing.T) {
	s := State{3.0, 4.0}
	if got := s.Norm(); math.Abs(got-5.0) > 1e-12 {
		t.Errorf("expected norm 5, got %f", got)
	}
}

func TestResultAccessors(t *testing.T) {
	r := &Result{
		States: []State{{1, 10}, {2, 20}, {3, 30}},
		Times:  []float64{0, 0.1, 0.2},
	}

	final := r.Final()
	if final[0] != 3 || final[1] != 30 {
		t.Errorf("unexpected final state: %v", final)
	}

	prey := r.Component(0)
	if len(prey) != 3 || prey[2] != 3 {
		t.Errorf("unexpected component series: %v", prey)
	}

	empty := &Result{}
	if empty.Final() != nil {
		t.Error("expected nil final state for empty result")
	}
}
