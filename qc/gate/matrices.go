package gate

import (
	"math"
	"math/cmplx"

	"github.com/kegliz/synthesis/qc/qmath"
)

// Fixed single-qubit unitaries, built once and shared by every accessor
// that needs a numeric matrix instead of just a drawing symbol.
var (
	matI    = qmath.Identity(2)
	matX    = qmath.FromRows([][]complex128{{0, 1}, {1, 0}})
	matY    = qmath.FromRows([][]complex128{{0, -1i}, {1i, 0}})
	matZ    = qmath.FromRows([][]complex128{{1, 0}, {0, -1}})
	matH    = qmath.FromRows([][]complex128{{c1, c1}, {c1, -c1}})
	matS    = qmath.FromRows([][]complex128{{1, 0}, {0, 1i}})
	matSdg  = qmath.FromRows([][]complex128{{1, 0}, {0, -1i}})
	matT    = qmath.FromRows([][]complex128{{1, 0}, {0, cmplx.Exp(1i * math.Pi / 4)}})
	matTdg  = qmath.FromRows([][]complex128{{1, 0}, {0, cmplx.Exp(-1i * math.Pi / 4)}})
	matSX   = qmath.FromRows([][]complex128{{0.5 + 0.5i, 0.5 - 0.5i}, {0.5 - 0.5i, 0.5 + 0.5i}})
	matSXdg = qmath.FromRows([][]complex128{{0.5 - 0.5i, 0.5 + 0.5i}, {0.5 + 0.5i, 0.5 - 0.5i}})
	matSY   = qmath.FromRows([][]complex128{{cSY, -cSY}, {cSY, cSY}})
	matSYdg = qmath.FromRows([][]complex128{{cSYdg, cSYdg}, {-cSYdg, cSYdg}})
	matSWAP = qmath.FromRows([][]complex128{
		{1, 0, 0, 0},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
	})
)

var c1 = complex(1/math.Sqrt2, 0)

// cSY/cSYdg are the (1±i)/2 phase factors that make matSY square to Y:
// ((1+i)/2 * [[1,-1],[1,1]])^2 == [[0,-i],[i,0]]. A real 1/sqrt(2)
// factor (as used for H) squares to [[0,-1],[1,0]], not Y.
var (
	cSY   = complex(0.5, 0.5)
	cSYdg = complex(0.5, -0.5)
)

// I returns the single-qubit identity matrix.
func I() *qmath.Matrix { return matI.Clone() }

// MatrixX returns the Pauli-X matrix. Named to avoid colliding with the
// Gate accessor X().
func MatrixX() *qmath.Matrix { return matX.Clone() }

// MatrixY returns the Pauli-Y matrix.
func MatrixY() *qmath.Matrix { return matY.Clone() }

// MatrixZ returns the Pauli-Z matrix.
func MatrixZ() *qmath.Matrix { return matZ.Clone() }

// MatrixH returns the Hadamard matrix.
func MatrixH() *qmath.Matrix { return matH.Clone() }

// MatrixS returns the phase (S) gate matrix.
func MatrixS() *qmath.Matrix { return matS.Clone() }

// MatrixSdg returns S†.
func MatrixSdg() *qmath.Matrix { return matSdg.Clone() }

// MatrixT returns the T (π/8) gate matrix.
func MatrixT() *qmath.Matrix { return matT.Clone() }

// MatrixTdg returns T†.
func MatrixTdg() *qmath.Matrix { return matTdg.Clone() }

// MatrixSX returns √X.
func MatrixSX() *qmath.Matrix { return matSX.Clone() }

// MatrixSXdg returns (√X)†.
func MatrixSXdg() *qmath.Matrix { return matSXdg.Clone() }

// MatrixSY returns √Y.
func MatrixSY() *qmath.Matrix { return matSY.Clone() }

// MatrixSYdg returns (√Y)†.
func MatrixSYdg() *qmath.Matrix { return matSYdg.Clone() }

// MatrixSWAP returns the two-qubit SWAP matrix.
func MatrixSWAP() *qmath.Matrix { return matSWAP.Clone() }

// Rx returns the single-qubit X-axis rotation by theta radians.
func Rx(theta float64) *qmath.Matrix {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return qmath.FromRows([][]complex128{{c, s}, {s, c}})
}

// Ry returns the single-qubit Y-axis rotation by theta radians.
func Ry(theta float64) *qmath.Matrix {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return qmath.FromRows([][]complex128{{c, -s}, {s, c}})
}

// Rz returns the single-qubit Z-axis rotation by theta radians.
func Rz(theta float64) *qmath.Matrix {
	neg := cmplx.Exp(complex(0, -theta/2))
	pos := cmplx.Exp(complex(0, theta/2))
	return qmath.FromRows([][]complex128{{neg, 0}, {0, pos}})
}

// P returns the phase gate diag(1, e^{i*phi}).
func P(phi float64) *qmath.Matrix {
	return qmath.FromRows([][]complex128{{1, 0}, {0, cmplx.Exp(complex(0, phi))}})
}

// Fractional computes U^p for a single-qubit unitary U and a real
// exponent p, by diagonalizing the 2x2 matrix in closed form (trace/det
// quadratic formula) and raising its eigenvalues — which lie on the unit
// circle — to the power p via their polar angle. Closed form is used
// instead of qmath.Eig because Eig only handles Hermitian matrices and a
// general unitary gate is not Hermitian; a hand 2x2 solve is simpler than
// adding a general non-symmetric eigensolver for this one narrow case.
func Fractional(u *qmath.Matrix, p float64) *qmath.Matrix {
	if u.Rows != 2 || u.Cols != 2 {
		panic("qmath/gate: Fractional only supports single-qubit (2x2) unitaries")
	}
	a, b := u.At(0, 0), u.At(0, 1)
	c, d := u.At(1, 0), u.At(1, 1)

	tr := a + d
	det := a*d - b*c
	disc := cmplx.Sqrt(tr*tr - 4*det)
	l1 := (tr + disc) / 2
	l2 := (tr - disc) / 2

	var v1, v2 [2]complex128
	if cmplxAbsGate(b) > 1e-12 {
		v1 = [2]complex128{b, l1 - a}
		v2 = [2]complex128{b, l2 - a}
	} else if cmplxAbsGate(c) > 1e-12 {
		v1 = [2]complex128{l1 - d, c}
		v2 = [2]complex128{l2 - d, c}
	} else {
		v1 = [2]complex128{1, 0}
		v2 = [2]complex128{0, 1}
	}
	v1 = normalize2(v1)
	v2 = normalize2(v2)

	pow := func(lambda complex128) complex128 {
		r, theta := cmplx.Abs(lambda), cmplx.Phase(lambda)
		return cmplx.Exp(complex(math.Log(r)*p, theta*p))
	}
	d1, d2 := pow(l1), pow(l2)

	v := qmath.FromRows([][]complex128{{v1[0], v2[0]}, {v1[1], v2[1]}})
	diag := qmath.FromRows([][]complex128{{d1, 0}, {0, d2}})
	return v.Mul(diag).Mul(v.ConjTranspose())
}

func cmplxAbsGate(c complex128) float64 { return cmplx.Abs(c) }

func normalize2(v [2]complex128) [2]complex128 {
	n := math.Sqrt(real(v[0])*real(v[0]) + imag(v[0])*imag(v[0]) + real(v[1])*real(v[1]) + imag(v[1])*imag(v[1]))
	if n < 1e-15 {
		return v
	}
	return [2]complex128{v[0] / complex(n, 0), v[1] / complex(n, 0)}
}
