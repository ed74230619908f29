package econ

import "fmt"

// Solve computes the production vector X satisfying X = AX + D, i.e.
// (I − A)X = D, for the open input-output model. A is the consumption
// coefficient matrix (A[i][j] is the fraction of sector j's output consumed
// by sector i) and D the external demand per sector.
//
// Entries of X may be negative when A is economically implausible (a column
// sum ≥ 1); that result is returned as-is, it is a signal about the input,
// not a solver failure.
func Solve(A Matrix, D Vector) (Vector, error) {
	if !A.IsSquare() {
		return nil, fmt.Errorf("%w: coefficient matrix must be square, got %dx%d", ErrDimensionMismatch, A.rows, A.cols)
	}
	if len(D) != A.rows {
		return nil, fmt.Errorf("%w: demand has length %d, matrix is %dx%d", ErrDimensionMismatch, len(D), A.rows, A.cols)
	}
	if !A.IsFinite() || !D.IsFinite() {
		return nil, ErrNotFinite
	}

	leontief := Identity(A.rows).Sub(A)

	f, err := Factor(leontief)
	if err != nil {
		return nil, err
	}

	return f.Solve(D)
}

// Sector is one sector of the economy with its external consumer demand.
type Sector struct {
	Name   string  `yaml:"name"`
	Demand float64 `yaml:"demand"`
}

// Economy pairs named sectors with their consumption coefficients.
type Economy struct {
	Sectors      []Sector
	Coefficients Matrix
}

// Production is the equilibrium output of one sector.
type Production struct {
	Sector string
	Output float64
}

func (e Economy) Demand() Vector {
	d := make(Vector, len(e.Sectors))
	for i, s := range e.Sectors {
		d[i] = s.Demand
	}
	return d
}

// Production solves the economy and labels each output with its sector name.
func (e Economy) Production() ([]Production, error) {
	if rows, _ := e.Coefficients.Dims(); rows != len(e.Sectors) {
		return nil, fmt.Errorf("%w: %d sectors, %d coefficient rows", ErrDimensionMismatch, len(e.Sectors), rows)
	}

	x, err := Solve(e.Coefficients, e.Demand())
	if err != nil {
		return nil, err
	}

	out := make([]Production, len(x))
	for i, v := range x {
		out[i] = Production{Sector: e.Sectors[i].Name, Output: v}
	}
	return out, nil
}
