package qmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hadamard() *Matrix {
	c := complex(1/math.Sqrt2, 0)
	return FromRows([][]complex128{
		{c, c},
		{c, -c},
	})
}

func pauliX() *Matrix {
	return FromRows([][]complex128{
		{0, 1},
		{1, 0},
	})
}

func pauliZ() *Matrix {
	return FromRows([][]complex128{
		{1, 0},
		{0, -1},
	})
}

func TestKronDimensions(t *testing.T) {
	a := Identity(2)
	b := pauliX()
	k := Kron(a, b)
	require.Equal(t, 4, k.Rows)
	require.Equal(t, 4, k.Cols)
}

func TestConjTransposeInvolution(t *testing.T) {
	h := hadamard()
	require.True(t, h.IsHermitian(1e-9))
	assert.InDelta(t, 0, cmplxAbs(h.At(0, 1)-h.ConjTranspose().At(1, 0)), 1e-9)
	assert.InDelta(t, 0, cmplxAbs(h.At(0, 1)-h.ConjTranspose().ConjTranspose().At(0, 1)), 1e-9)
}

func TestHadamardIsUnitary(t *testing.T) {
	assert.True(t, hadamard().IsUnitary(1e-9))
}

func TestVectorNormalize(t *testing.T) {
	v := Vector{3, 4}
	n := v.Normalize()
	assert.InDelta(t, 1.0, n.Norm2(), 1e-12)
}

func TestEigPauliZ(t *testing.T) {
	pairs := Eig(pauliZ())
	require.Len(t, pairs, 2)
	assert.InDelta(t, -1, pairs[0].Value, 1e-9)
	assert.InDelta(t, 1, pairs[1].Value, 1e-9)
}

func TestEigReconstructsMatrix(t *testing.T) {
	h := hadamard()
	pairs := Eig(h)
	require.Len(t, pairs, 2)

	reconstructed := NewMatrix(2, 2)
	for _, p := range pairs {
		outer := NewMatrix(2, 2)
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				outer.Set(i, j, p.Vector[i]*cmplxConj(p.Vector[j]))
			}
		}
		scaled := scaleMatrix(outer, p.Value)
		reconstructed = addMatrix(reconstructed, scaled)
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, real(h.At(i, j)), real(reconstructed.At(i, j)), 1e-8)
			assert.InDelta(t, imag(h.At(i, j)), imag(reconstructed.At(i, j)), 1e-8)
		}
	}
}

func TestSVDIdentity(t *testing.T) {
	res := SVD(Identity(2))
	require.Len(t, res.Values, 2)
	for _, v := range res.Values {
		assert.InDelta(t, 1.0, v, 1e-8)
	}
}

func TestSVDSingularValuesNonNegativeSorted(t *testing.T) {
	m := FromRows([][]complex128{
		{complex(1, 1), 0},
		{0, complex(2, 0)},
	})
	res := SVD(m)
	require.Len(t, res.Values, 2)
	for i := 1; i < len(res.Values); i++ {
		assert.GreaterOrEqual(t, res.Values[i-1], res.Values[i]-1e-9)
	}
}

func TestExpmZeroIsIdentity(t *testing.T) {
	zero := NewMatrix(2, 2)
	result := Expm(zero)
	id := Identity(2)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, real(id.data[i]), real(result.data[i]), 1e-6)
		assert.InDelta(t, imag(id.data[i]), imag(result.data[i]), 1e-6)
	}
}

func TestExpmAntiHermitianIsUnitary(t *testing.T) {
	// -i * Z * t is anti-Hermitian for real t; exp of it must be unitary.
	z := pauliZ()
	gen := NewMatrix(2, 2)
	t0 := complex(0, -0.37)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			gen.Set(i, j, t0*z.At(i, j))
		}
	}
	u := Expm(gen)
	assert.True(t, u.IsUnitary(1e-6))
}

func TestExpmPauliZRotationPhases(t *testing.T) {
	z := pauliZ()
	theta := 0.8
	gen := scaleMatrix(z, 0)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			gen.Set(i, j, complex(0, -theta)*z.At(i, j))
		}
	}
	u := Expm(gen)
	assert.InDelta(t, math.Cos(theta), real(u.At(0, 0)), 1e-6)
	assert.InDelta(t, -math.Sin(theta), imag(u.At(0, 0)), 1e-6)
	assert.InDelta(t, math.Cos(theta), real(u.At(1, 1)), 1e-6)
	assert.InDelta(t, math.Sin(theta), imag(u.At(1, 1)), 1e-6)
}
