package evolve

import (
	"math"

	"github.com/kegliz/synthesis/qc/qerr"
	"github.com/kegliz/synthesis/qc/qmath"
)

const (
	rtol       = 1e-8
	atol       = 1e-10
	maxRKSteps = 100000
)

// Dormand-Prince RK45 Butcher tableau.
var (
	dpC = [7]float64{0, 1.0 / 5, 3.0 / 10, 4.0 / 5, 8.0 / 9, 1, 1}
	dpA = [7][6]float64{
		{},
		{1.0 / 5},
		{3.0 / 40, 9.0 / 40},
		{44.0 / 45, -56.0 / 15, 32.0 / 9},
		{19372.0 / 6561, -25360.0 / 2187, 64448.0 / 6561, -212.0 / 729},
		{9017.0 / 3168, -355.0 / 33, 46732.0 / 5247, 49.0 / 176, -5103.0 / 18656},
		{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84},
	}
	dpB5 = [7]float64{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84, 0}
	dpB4 = [7]float64{5179.0 / 57600, 0, 7571.0 / 16695, 393.0 / 640, -92097.0 / 339200, 187.0 / 2100, 1.0 / 40}
)

// rk45Integrate advances `y` from t0 to t1 under derivative function f,
// using adaptive Dormand-Prince step-size control targeting rtol/atol.
func rk45Integrate(f func(qmath.Vector) qmath.Vector, y qmath.Vector, t0, t1 float64) (qmath.Vector, error) {
	if t0 == t1 {
		out := make(qmath.Vector, len(y))
		copy(out, y)
		return out, nil
	}

	direction := 1.0
	if t1 < t0 {
		direction = -1.0
	}
	span := math.Abs(t1 - t0)
	h := span / 100
	if h == 0 {
		h = 1e-6
	}

	t := t0
	current := make(qmath.Vector, len(y))
	copy(current, y)

	for steps := 0; steps < maxRKSteps; steps++ {
		remaining := (t1 - t) * direction
		if remaining <= 1e-14 {
			return current, nil
		}
		if h > remaining {
			h = remaining
		}

		next, errEst := dpStep(f, current, h*direction)
		scale := make([]float64, len(current))
		maxRatio := 0.0
		for i := range current {
			sc := atol + rtol*math.Max(cmplxAbs(current[i]), cmplxAbs(next[i]))
			scale[i] = sc
			ratio := cmplxAbs(errEst[i]) / sc
			if ratio > maxRatio {
				maxRatio = ratio
			}
		}

		if maxRatio <= 1 || h < span*1e-12 {
			t += h * direction
			current = next
			if maxRatio == 0 {
				maxRatio = 1e-12
			}
			h *= math.Min(5, math.Max(0.2, 0.9*math.Pow(1/maxRatio, 0.2)))
		} else {
			h *= math.Max(0.1, 0.9*math.Pow(1/maxRatio, 0.25))
		}
	}
	return nil, qerr.New(qerr.Internal, "evolve: RK45 failed to converge within %d steps", maxRKSteps)
}

// dpStep takes one Dormand-Prince step of size h, returning the 5th-order
// estimate and the embedded 4th-5th order error estimate per component.
func dpStep(f func(qmath.Vector) qmath.Vector, y qmath.Vector, h float64) (qmath.Vector, qmath.Vector) {
	n := len(y)
	k := make([]qmath.Vector, 7)
	k[0] = f(y)

	for stage := 1; stage < 7; stage++ {
		yStage := make(qmath.Vector, n)
		copy(yStage, y)
		for j := 0; j < stage; j++ {
			coeff := dpA[stage][j]
			if coeff == 0 {
				continue
			}
			for i := 0; i < n; i++ {
				yStage[i] += complex(h*coeff, 0) * k[j][i]
			}
		}
		k[stage] = f(yStage)
	}

	y5 := make(qmath.Vector, n)
	copy(y5, y)
	errEst := make(qmath.Vector, n)
	for stage := 0; stage < 7; stage++ {
		if dpB5[stage] != 0 {
			for i := 0; i < n; i++ {
				y5[i] += complex(h*dpB5[stage], 0) * k[stage][i]
			}
		}
		diff := dpB5[stage] - dpB4[stage]
		if diff != 0 {
			for i := 0; i < n; i++ {
				errEst[i] += complex(h*diff, 0) * k[stage][i]
			}
		}
	}

	return y5, errEst
}

func cmplxAbs(c complex128) float64 { return math.Hypot(real(c), imag(c)) }
