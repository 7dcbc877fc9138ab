// Package evolve solves iħ ∂ψ/∂t = Hψ for a time-independent Hermitian
// Hamiltonian H, both exactly (via matrix exponential) and as a sampled
// trajectory (via adaptive RK45 integration).
package evolve

import (
	"math"

	"github.com/kegliz/synthesis/qc/qerr"
	"github.com/kegliz/synthesis/qc/qmath"
)

const hermitianTol = 1e-9

// validate checks dim(H) == len(psi) and H ≈ H† to 1e-9.
func validate(h *qmath.Matrix, psi qmath.Vector) error {
	if h.Rows != h.Cols {
		return qerr.New(qerr.InvalidArgument, "evolve: Hamiltonian must be square")
	}
	if h.Rows != len(psi) {
		return qerr.New(qerr.InvalidArgument, "evolve: Hamiltonian dimension %d does not match state dimension %d", h.Rows, len(psi))
	}
	if !h.IsHermitian(hermitianTol) {
		return qerr.New(qerr.InvalidArgument, "evolve: Hamiltonian is not Hermitian within %.0e", hermitianTol)
	}
	return nil
}

// Unitary computes ψ(t) = expm(-iHt/ħ) ψ(0) exactly via the
// eigendecomposition of H (Hermitian ⇒ real eigenvalues, orthonormal
// eigenvectors), applying exp(-iλt/ħ) per eigenmode. ħ is taken as 1 in
// these natural units. Renormalizes at the end to absorb numeric drift.
func Unitary(h *qmath.Matrix, psi qmath.Vector, t float64) (qmath.Vector, error) {
	if err := validate(h, psi); err != nil {
		return nil, err
	}
	pairs := qmath.Eig(h)

	n := len(psi)
	out := make(qmath.Vector, n)
	for _, p := range pairs {
		coeff := qmath.Inner(p.Vector, psi)
		phase := complex(math.Cos(-p.Value*t), math.Sin(-p.Value*t))
		factor := coeff * phase
		for i := 0; i < n; i++ {
			out[i] += factor * p.Vector[i]
		}
	}
	return out.Normalize(), nil
}

// Schrodinger samples ψ(t) at n evenly spaced points over [t0, t1] via
// adaptive RK45 (Dormand-Prince) integration of iħ ψ' = Hψ, renormalizing
// after each sample. Returns the sample times alongside the states.
func Schrodinger(h *qmath.Matrix, psi qmath.Vector, t0, t1 float64, n int) ([]float64, []qmath.Vector, error) {
	if err := validate(h, psi); err != nil {
		return nil, nil, err
	}
	if n < 1 {
		return nil, nil, qerr.New(qerr.InvalidArgument, "evolve: n_points must be >= 1")
	}

	times := make([]float64, n)
	if n == 1 {
		times[0] = t0
	} else {
		step := (t1 - t0) / float64(n-1)
		for i := range times {
			times[i] = t0 + step*float64(i)
		}
	}

	deriv := func(state qmath.Vector) qmath.Vector {
		hPsi := h.MulVector(state)
		out := make(qmath.Vector, len(state))
		for i, v := range hPsi {
			out[i] = complex(0, -1) * v
		}
		return out
	}

	states := make([]qmath.Vector, n)
	current := make(qmath.Vector, len(psi))
	copy(current, psi)
	t := t0
	for i := 0; i < n; i++ {
		if times[i] != t {
			var err error
			current, err = rk45Integrate(deriv, current, t, times[i])
			if err != nil {
				return nil, nil, err
			}
			t = times[i]
		}
		snap := make(qmath.Vector, len(current))
		copy(snap, current)
		states[i] = snap.Normalize()
		current = states[i]
	}
	return times, states, nil
}
