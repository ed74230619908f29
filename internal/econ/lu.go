package econ

import (
	"errors"
	"math"
)

var (
	// ErrDimensionMismatch indicates a non-square matrix or a demand vector
	// whose length does not match the matrix dimension.
	ErrDimensionMismatch = errors.New("econ: dimension mismatch")

	// ErrSingular indicates the system has no unique solution; for the
	// Leontief model this means I − A is (near-)singular.
	ErrSingular = errors.New("econ: singular system")

	// ErrNotFinite indicates a NaN or Inf entry in the inputs.
	ErrNotFinite = errors.New("econ: non-finite entry")
)

// Pivots smaller than pivotTol relative to their row's largest entry are
// treated as zero; an absolute epsilon would misclassify well-scaled small
// systems.
const pivotTol = 1e-12

// LU is a PA = LU factorization with partial pivoting. L is unit lower
// triangular and shares storage with U; perm maps factored rows back to
// original rows.
type LU struct {
	n    int
	lu   Matrix
	perm []int
}

// Factor decomposes m in place. Returns ErrSingular when a pivot falls below
// the relative tolerance, which for the Leontief matrix signals an economy
// with no unique production vector.
func Factor(m Matrix) (*LU, error) {
	if !m.IsSquare() {
		return nil, ErrDimensionMismatch
	}
	if !m.IsFinite() {
		return nil, ErrNotFinite
	}

	n := m.rows
	f := &LU{
		n:    n,
		lu:   NewMatrix(n, n),
		perm: make([]int, n),
	}
	copy(f.lu.data, m.data)

	// Row scale factors for the relative pivot test.
	scale := make([]float64, n)
	for i := 0; i < n; i++ {
		f.perm[i] = i
		big := 0.0
		for j := 0; j < n; j++ {
			if a := math.Abs(f.lu.At(i, j)); a > big {
				big = a
			}
		}
		if big == 0 {
			return nil, ErrSingular
		}
		scale[i] = big
	}

	for k := 0; k < n; k++ {
		// Partial pivoting: pick the row with the largest scaled pivot.
		maxRow := k
		maxVal := math.Abs(f.lu.At(k, k)) / scale[k]
		for i := k + 1; i < n; i++ {
			if v := math.Abs(f.lu.At(i, k)) / scale[i]; v > maxVal {
				maxVal = v
				maxRow = i
			}
		}

		if maxVal <= pivotTol {
			return nil, ErrSingular
		}

		if maxRow != k {
			f.swapRows(k, maxRow)
			scale[k], scale[maxRow] = scale[maxRow], scale[k]
		}

		pivot := f.lu.At(k, k)
		for i := k + 1; i < n; i++ {
			factor := f.lu.At(i, k) / pivot
			f.lu.Set(i, k, factor)
			for j := k + 1; j < n; j++ {
				f.lu.Set(i, j, f.lu.At(i, j)-factor*f.lu.At(k, j))
			}
		}
	}

	return f, nil
}

func (f *LU) swapRows(a, b int) {
	f.perm[a], f.perm[b] = f.perm[b], f.perm[a]
	for j := 0; j < f.n; j++ {
		va, vb := f.lu.At(a, j), f.lu.At(b, j)
		f.lu.Set(a, j, vb)
		f.lu.Set(b, j, va)
	}
}

// Solve returns x with (PA)x = Pb via forward then back substitution.
func (f *LU) Solve(b Vector) (Vector, error) {
	if len(b) != f.n {
		return nil, ErrDimensionMismatch
	}

	// Forward substitution Ly = Pb (unit diagonal).
	y := make(Vector, f.n)
	for i := 0; i < f.n; i++ {
		sum := b[f.perm[i]]
		for j := 0; j < i; j++ {
			sum -= f.lu.At(i, j) * y[j]
		}
		y[i] = sum
	}

	// Back substitution Ux = y.
	x := make(Vector, f.n)
	for i := f.n - 1; i >= 0; i-- {
		sum := y[i]
		for j := i + 1; j < f.n; j++ {
			sum -= f.lu.At(i, j) * x[j]
		}
		x[i] = sum / f.lu.At(i, i)
	}

	return x, nil
}
