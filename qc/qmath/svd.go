package qmath

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SVDResult holds the singular value decomposition A = U * Σ * V†.
type SVDResult struct {
	U      *Matrix
	Values []float64
	V      *Matrix
}

// SVD computes the singular value decomposition of an arbitrary (possibly
// rectangular) complex matrix. It uses the same real-embedding trick as
// Eig: A = B + iC becomes the real matrix [[B,-C],[C,B]], whose singular
// values are those of A doubled, and whose singular vectors recombine
// pairwise into complex singular vectors of A.
func SVD(m *Matrix) SVDResult {
	rows, cols := m.Rows, m.Cols
	embedded := embedGeneral(m)

	var svd mat.SVD
	ok := svd.Factorize(embedded, mat.SVDFull)
	if !ok {
		panic(fmt.Sprintf("qmath: SVD failed to converge for %dx%d matrix", rows, cols))
	}

	values := svd.Values(nil)
	var uFull, vFull mat.Dense
	svd.UTo(&uFull)
	svd.VTo(&vFull)

	k := minInt(rows, cols)
	U := NewMatrix(rows, k)
	V := NewMatrix(cols, k)
	sv := make([]float64, 0, k)

	// The embedded 2r x 2r / 2c x 2c decomposition reproduces every true
	// singular value twice; walk the sorted list and take every other
	// one, recombining the paired (x,y) columns into x+iy.
	col := 0
	for idx := 0; idx < len(values) && col < k; idx += 2 {
		sv = append(sv, values[idx])
		for i := 0; i < rows; i++ {
			x := uFull.At(i, idx)
			y := uFull.At(i+rows, idx)
			U.Set(i, col, complex(x, y))
		}
		for i := 0; i < cols; i++ {
			x := vFull.At(i, idx)
			y := vFull.At(i+cols, idx)
			V.Set(i, col, complex(x, y))
		}
		col++
	}

	return SVDResult{U: U, Values: sv, V: V}
}

// embedGeneral builds the real 2*rows x 2*cols embedding of a general
// complex matrix A = B + iC as [[B,-C],[C,B]].
func embedGeneral(m *Matrix) *mat.Dense {
	rows, cols := m.Rows, m.Cols
	out := mat.NewDense(2*rows, 2*cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			re, im := real(v), imag(v)
			out.Set(i, j, re)
			out.Set(rows+i, cols+j, re)
			out.Set(rows+i, j, im)
			out.Set(i, cols+j, -im)
		}
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
