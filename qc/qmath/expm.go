package qmath

import "math"

// padeCoeffs are the numerator coefficients of the diagonal Padé(6)
// approximant to exp(x); the denominator uses the same coefficients with
// alternating sign.
var padeCoeffs = [7]float64{
	1,
	1.0 / 2,
	5.0 / 44,
	1.0 / 66,
	1.0 / 792,
	1.0 / 15840,
	1.0 / 665280,
}

// Expm computes the matrix exponential exp(A) for an arbitrary square
// complex matrix.
//
// When A is anti-Hermitian (A† = -A, the shape of a generator -iHt for
// Hermitian H and real t) it is diagonalized exactly: write A = -iH with
// H = iA Hermitian, then exp(A) = V diag(exp(-iλ)) V† using the
// eigenvectors/eigenvalues of H. This is the exact path spec.md's
// time-evolution solver relies on for unitary evolution.
//
// Otherwise a scaling-and-squaring Padé(6) approximant is used: A is
// scaled down by a power of two until its norm is small, exp of the
// scaled matrix is approximated by a degree-6 diagonal Padé rational
// function, and the result is squared back up.
func Expm(a *Matrix) *Matrix {
	n := a.Rows
	if a.Cols != n {
		panic("qmath: Expm requires a square matrix")
	}

	if isAntiHermitian(a, 1e-9) {
		h := NewMatrix(n, n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				h.Set(i, j, complex(0, 1)*a.At(i, j))
			}
		}
		pairs := Eig(h)
		v := NewMatrix(n, n)
		for col, p := range pairs {
			for row := 0; row < n; row++ {
				v.Set(row, col, p.Vector[row])
			}
		}
		diag := NewMatrix(n, n)
		for col, p := range pairs {
			phase := complex(math.Cos(-p.Value), math.Sin(-p.Value))
			diag.Set(col, col, phase)
		}
		return v.Mul(diag).Mul(v.ConjTranspose())
	}

	return expmPade(a)
}

func isAntiHermitian(m *Matrix, tol float64) bool {
	n := m.Rows
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if cmplxAbs(m.At(i, j)+cmplxConj(m.At(j, i))) > tol {
				return false
			}
		}
	}
	return true
}

func expmPade(a *Matrix) *Matrix {
	n := a.Rows
	normA := matrixInfNorm(a)

	s := 0
	for normA > 0.5 {
		normA /= 2
		s++
	}
	scaled := scaleMatrix(a, 1.0/math.Pow(2, float64(s)))

	// Term-by-term evaluation of the numerator/denominator polynomials in
	// `scaled` using the diagonal Padé coefficients.
	pow := Identity(n)
	num := scaleMatrix(Identity(n), padeCoeffs[0])
	den := scaleMatrix(Identity(n), padeCoeffs[0])
	for k := 1; k <= 6; k++ {
		pow = pow.Mul(scaled)
		term := scaleMatrix(pow, padeCoeffs[k])
		num = addMatrix(num, term)
		if k%2 == 0 {
			den = addMatrix(den, term)
		} else {
			den = addMatrix(den, scaleMatrix(term, -1))
		}
	}

	result := matrixSolve(den, num)

	for i := 0; i < s; i++ {
		result = result.Mul(result)
	}
	return result
}

func scaleMatrix(m *Matrix, c float64) *Matrix {
	out := NewMatrix(m.Rows, m.Cols)
	for i := range m.data {
		out.data[i] = m.data[i] * complex(c, 0)
	}
	return out
}

func addMatrix(a, b *Matrix) *Matrix {
	out := NewMatrix(a.Rows, a.Cols)
	for i := range a.data {
		out.data[i] = a.data[i] + b.data[i]
	}
	return out
}

func matrixInfNorm(m *Matrix) float64 {
	max := 0.0
	for i := 0; i < m.Rows; i++ {
		var rowSum float64
		for j := 0; j < m.Cols; j++ {
			rowSum += cmplxAbs(m.At(i, j))
		}
		if rowSum > max {
			max = rowSum
		}
	}
	return max
}

// matrixSolve returns den^-1 * num via Gauss-Jordan elimination with
// partial pivoting on the augmented [den | num] system.
func matrixSolve(den, num *Matrix) *Matrix {
	n := den.Rows
	aug := NewMatrix(n, 2*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			aug.Set(i, j, den.At(i, j))
		}
		for j := 0; j < n; j++ {
			aug.Set(i, n+j, num.At(i, j))
		}
	}

	for col := 0; col < n; col++ {
		pivot := col
		best := cmplxAbs(aug.At(col, col))
		for r := col + 1; r < n; r++ {
			if v := cmplxAbs(aug.At(r, col)); v > best {
				best = v
				pivot = r
			}
		}
		if pivot != col {
			for j := 0; j < 2*n; j++ {
				a, b := aug.At(col, j), aug.At(pivot, j)
				aug.Set(col, j, b)
				aug.Set(pivot, j, a)
			}
		}
		pv := aug.At(col, col)
		for j := 0; j < 2*n; j++ {
			aug.Set(col, j, aug.At(col, j)/pv)
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug.At(r, col)
			if factor == 0 {
				continue
			}
			for j := 0; j < 2*n; j++ {
				aug.Set(r, j, aug.At(r, j)-factor*aug.At(col, j))
			}
		}
	}

	out := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Set(i, j, aug.At(i, n+j))
		}
	}
	return out
}
