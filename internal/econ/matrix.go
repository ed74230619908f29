// Package econ implements the Leontief open input-output model: given an
// economy's inter-sector consumption coefficients A and external demand D,
// it solves (I − A)X = D for the production vector X.
package econ

import "math"

// Matrix is a dense row-major matrix.
type Matrix struct {
	rows, cols int
	data       []float64
}

func NewMatrix(rows, cols int) Matrix {
	return Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// FromRows builds a matrix from row slices. Ragged input yields a zero-size
// matrix, which Solve rejects as a dimension mismatch.
func FromRows(rows [][]float64) Matrix {
	if len(rows) == 0 {
		return Matrix{}
	}
	cols := len(rows[0])
	for _, r := range rows {
		if len(r) != cols {
			return Matrix{}
		}
	}
	m := NewMatrix(len(rows), cols)
	for i, r := range rows {
		copy(m.data[i*cols:(i+1)*cols], r)
	}
	return m
}

func Identity(n int) Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1.0)
	}
	return m
}

func (m Matrix) Dims() (int, int) { return m.rows, m.cols }

func (m Matrix) At(i, j int) float64 {
	return m.data[i*m.cols+j]
}

func (m Matrix) Set(i, j int, v float64) {
	m.data[i*m.cols+j] = v
}

func (m Matrix) IsSquare() bool {
	return m.rows >= 1 && m.rows == m.cols
}

func (m Matrix) IsFinite() bool {
	for _, v := range m.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sub returns m − other. Dimensions must already agree.
func (m Matrix) Sub(other Matrix) Matrix {
	out := NewMatrix(m.rows, m.cols)
	for i := range m.data {
		out.data[i] = m.data[i] - other.data[i]
	}
	return out
}

// MulVec returns m·v. Dimensions must already agree.
func (m Matrix) MulVec(v Vector) Vector {
	out := make(Vector, m.rows)
	for i := 0; i < m.rows; i++ {
		sum := 0.0
		for j := 0; j < m.cols; j++ {
			sum += m.At(i, j) * v[j]
		}
		out[i] = sum
	}
	return out
}

// Vector is a dense column vector.
type Vector []float64

func (v Vector) IsFinite() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}
