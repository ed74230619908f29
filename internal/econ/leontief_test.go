package econ

import (
	"errors"
	"math"
	"testing"
)

func TestSolveZeroMatrix(t *testing.T) {
	// No internal demand: production equals external demand exactly.
	A := NewMatrix(3, 3)
	D := Vector{12, 7, 30}

	x, err := Solve(A, D)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	for i := range D {
		if x[i] != D[i] {
			t.Errorf("expected X=D exactly, got %v", x)
		}
	}
}

func TestSolveRoundTrip(t *testing.T) {
	// Economy A from the three-sector demo.
	A := FromRows([][]float64{
		{0.45, 0.35, 0.15},
		{0.15, 0.25, 0.05},
		{0.05, 0.05, 0.25},
	})
	D := Vector{10, 10, 10}

	x, err := Solve(A, D)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	// (I − A)·X must reproduce D.
	leontief := Identity(3).Sub(A)
	got := leontief.MulVec(x)
	for i := range D {
		if math.Abs(got[i]-D[i]) > 1e-9 {
			t.Errorf("round trip failed at %d: got %v, want %v", i, got, D)
		}
	}

	// A plausible economy needs output beyond demand to feed itself.
	for i, v := range x {
		if v < D[i] {
			t.Errorf("sector %d production %f below its demand %f", i, v, D[i])
		}
	}
}

func TestSolveSingularEconomy(t *testing.T) {
	// A = [1.0] makes I − A = [0]: the economy consumes everything it makes.
	A := FromRows([][]float64{{1.0}})
	D := Vector{5}

	if _, err := Solve(A, D); !errors.Is(err, ErrSingular) {
		t.Errorf("expected ErrSingular, got %v", err)
	}
}

func TestSolveDimensionMismatch(t *testing.T) {
	tests := []struct {
		name string
		A    Matrix
		D    Vector
	}{
		{"demand too long", FromRows([][]float64{{0.1, 0.2}, {0.3, 0.4}}), Vector{1, 2, 3}},
		{"demand too short", FromRows([][]float64{{0.1, 0.2}, {0.3, 0.4}}), Vector{1}},
		{"non-square", NewMatrix(2, 3), Vector{1, 2}},
		{"empty", Matrix{}, Vector{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Solve(tt.A, tt.D); !errors.Is(err, ErrDimensionMismatch) {
				t.Errorf("expected ErrDimensionMismatch, got %v", err)
			}
		})
	}
}

func TestSolveRejectsNonFinite(t *testing.T) {
	A := FromRows([][]float64{{math.Inf(1)}})
	if _, err := Solve(A, Vector{1}); !errors.Is(err, ErrNotFinite) {
		t.Errorf("expected ErrNotFinite for bad matrix, got %v", err)
	}

	B := FromRows([][]float64{{0.5}})
	if _, err := Solve(B, Vector{math.NaN()}); !errors.Is(err, ErrNotFinite) {
		t.Errorf("expected ErrNotFinite for bad demand, got %v", err)
	}
}

func TestSolveNegativeProductionIsSignal(t *testing.T) {
	// Column sum above 1: economically invalid, but (I − A) is regular, so the
	// solver returns the (negative) solution rather than an error.
	A := FromRows([][]float64{{1.5}})
	D := Vector{10}

	x, err := Solve(A, D)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if x[0] != -20 {
		t.Errorf("expected -20, got %v", x)
	}
}

func TestEconomyProduction(t *testing.T) {
	economy := Economy{
		Sectors: []Sector{
			{Name: "Mining", Demand: 10},
			{Name: "Lumber", Demand: 10},
			{Name: "Energy", Demand: 10},
		},
		Coefficients: FromRows([][]float64{
			{0.45, 0.35, 0.15},
			{0.15, 0.25, 0.05},
			{0.05, 0.05, 0.25},
		}),
	}

	prods, err := economy.Production()
	if err != nil {
		t.Fatalf("production failed: %v", err)
	}

	if len(prods) != 3 {
		t.Fatalf("expected 3 sectors, got %d", len(prods))
	}
	if prods[0].Sector != "Mining" || prods[2].Sector != "Energy" {
		t.Errorf("sector names out of order: %v", prods)
	}
	for _, p := range prods {
		if p.Output <= 0 {
			t.Errorf("expected positive production for %s, got %f", p.Sector, p.Output)
		}
	}
}

func TestEconomySectorCountMismatch(t *testing.T) {
	economy := Economy{
		Sectors:      []Sector{{Name: "Mining", Demand: 10}},
		Coefficients: NewMatrix(2, 2),
	}

	if _, err := economy.Production(); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}
