// Package qmath provides the dense complex linear-algebra primitives the
// simulation engine is built on: vectors, square matrices, matmul,
// Kronecker product, conjugate transpose, norms, and the two genuinely
// hard numerical routines (Eig, SVD) needed for entanglement and
// time-evolution.
package qmath

import (
	"fmt"
	"math"
)

// Vector is a dense complex column vector.
type Vector []complex128

// Matrix is a dense, row-major square (or rectangular, for SVD input)
// complex matrix.
type Matrix struct {
	Rows, Cols int
	data       []complex128
}

// NewMatrix allocates a zeroed Rows x Cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{Rows: rows, Cols: cols, data: make([]complex128, rows*cols)}
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// FromRows builds a Matrix from a slice of row slices. Panics if rows
// are ragged.
func FromRows(rows [][]complex128) *Matrix {
	m := NewMatrix(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != m.Cols {
			panic("qmath: ragged input to FromRows")
		}
		copy(m.data[i*m.Cols:(i+1)*m.Cols], row)
	}
	return m
}

func (m *Matrix) At(i, j int) complex128 { return m.data[i*m.Cols+j] }
func (m *Matrix) Set(i, j int, v complex128) { m.data[i*m.Cols+j] = v }

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	out := NewMatrix(m.Rows, m.Cols)
	copy(out.data, m.data)
	return out
}

// ConjTranspose returns U†.
func (m *Matrix) ConjTranspose() *Matrix {
	out := NewMatrix(m.Cols, m.Rows)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Set(j, i, cmplxConj(m.At(i, j)))
		}
	}
	return out
}

// Mul returns m * other.
func (m *Matrix) Mul(other *Matrix) *Matrix {
	if m.Cols != other.Rows {
		panic(fmt.Sprintf("qmath: dimension mismatch in Mul: %dx%d * %dx%d", m.Rows, m.Cols, other.Rows, other.Cols))
	}
	out := NewMatrix(m.Rows, other.Cols)
	for i := 0; i < m.Rows; i++ {
		for k := 0; k < m.Cols; k++ {
			a := m.At(i, k)
			if a == 0 {
				continue
			}
			for j := 0; j < other.Cols; j++ {
				out.Set(i, j, out.At(i, j)+a*other.At(k, j))
			}
		}
	}
	return out
}

// MulVector returns m * v.
func (m *Matrix) MulVector(v Vector) Vector {
	if m.Cols != len(v) {
		panic(fmt.Sprintf("qmath: dimension mismatch in MulVector: %dx%d * %d", m.Rows, m.Cols, len(v)))
	}
	out := make(Vector, m.Rows)
	for i := 0; i < m.Rows; i++ {
		var sum complex128
		for j := 0; j < m.Cols; j++ {
			sum += m.At(i, j) * v[j]
		}
		out[i] = sum
	}
	return out
}

// Kron returns the Kronecker product m ⊗ other.
func Kron(m, other *Matrix) *Matrix {
	out := NewMatrix(m.Rows*other.Rows, m.Cols*other.Cols)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			a := m.At(i, j)
			if a == 0 {
				continue
			}
			for p := 0; p < other.Rows; p++ {
				for q := 0; q < other.Cols; q++ {
					out.Set(i*other.Rows+p, j*other.Cols+q, a*other.At(p, q))
				}
			}
		}
	}
	return out
}

// IsUnitary reports whether U·U† = I within tol.
func (m *Matrix) IsUnitary(tol float64) bool {
	if m.Rows != m.Cols {
		return false
	}
	prod := m.Mul(m.ConjTranspose())
	id := Identity(m.Rows)
	for i := 0; i < m.Rows*m.Cols; i++ {
		if cmplxAbs(prod.data[i]-id.data[i]) > tol {
			return false
		}
	}
	return true
}

// IsHermitian reports whether A = A† within tol.
func (m *Matrix) IsHermitian(tol float64) bool {
	if m.Rows != m.Cols {
		return false
	}
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			if cmplxAbs(m.At(i, j)-cmplxConj(m.At(j, i))) > tol {
				return false
			}
		}
	}
	return true
}

// Norm2 returns the L2 (Euclidean) norm of v.
func (v Vector) Norm2() float64 {
	var sum float64
	for _, c := range v {
		sum += real(c)*real(c) + imag(c)*imag(c)
	}
	return math.Sqrt(sum)
}

// Normalize returns v scaled to unit L2 norm. Panics on zero norm.
func (v Vector) Normalize() Vector {
	n := v.Norm2()
	if n == 0 {
		panic("qmath: cannot normalize zero vector")
	}
	out := make(Vector, len(v))
	inv := complex(1/n, 0)
	for i, c := range v {
		out[i] = c * inv
	}
	return out
}

// Inner returns <a|b> = sum conj(a_i) * b_i.
func Inner(a, b Vector) complex128 {
	var sum complex128
	for i := range a {
		sum += cmplxConj(a[i]) * b[i]
	}
	return sum
}

// ColumnInfNorm returns the max absolute value across one column of m.
func (m *Matrix) ColumnInfNorm(col int) float64 {
	max := 0.0
	for i := 0; i < m.Rows; i++ {
		if a := cmplxAbs(m.At(i, col)); a > max {
			max = a
		}
	}
	return max
}

func cmplxAbs(c complex128) float64  { return math.Hypot(real(c), imag(c)) }
func cmplxConj(c complex128) complex128 { return complex(real(c), -imag(c)) }
