package engine

import (
	"github.com/kegliz/synthesis/qc/gate"
	"github.com/kegliz/synthesis/qc/qerr"
)

// MeasureAll draws `shots` samples from p_i = |ψ_i|² and returns a
// bitstring -> count histogram. It never collapses ψ. shots=0 returns an
// empty map.
func (e *Engine) MeasureAll(shots int) (map[string]int, error) {
	if err := e.requireInitialized(); err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	if shots <= 0 {
		return counts, nil
	}
	cdf := e.cumulativeDistribution()
	for s := 0; s < shots; s++ {
		i := sampleCDF(cdf, e.rng.Float64())
		counts[bitstring(i, e.n)]++
	}
	return counts, nil
}

func (e *Engine) cumulativeDistribution() []float64 {
	dim := len(e.psi)
	cdf := make([]float64, dim)
	var running float64
	for i, amp := range e.psi {
		running += real(amp)*real(amp) + imag(amp)*imag(amp)
		cdf[i] = running
	}
	return cdf
}

func sampleCDF(cdf []float64, u float64) int {
	lo, hi := 0, len(cdf)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if cdf[mid] < u {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// CollapseTo forces the full register to the basis state at index,
// zeroing every other amplitude and renormalizing. Used by a full-
// register measurement that both samples a shot histogram and collapses
// the engine's state to one concrete outcome.
func (e *Engine) CollapseTo(index int) error {
	if err := e.requireInitialized(); err != nil {
		return err
	}
	if index < 0 || index >= len(e.psi) {
		return qerr.New(qerr.InvalidArgument, "collapse_to: index %d out of range for %d qubits", index, e.n)
	}
	for i := range e.psi {
		if i != index {
			e.psi[i] = 0
		}
	}
	e.psi = e.psi.Normalize()
	e.logGate("MEASURE", -1, -1)
	return nil
}

// MeasureSingle computes p1 = Σ_{bit(i,q)=1} |ψ_i|², draws outcome ∈
// {0,1} with that probability, collapses ψ by zeroing incompatible
// amplitudes and renormalizing, and returns the outcome.
func (e *Engine) MeasureSingle(q int) (int, error) {
	if err := e.requireInitialized(); err != nil {
		return 0, err
	}
	if err := e.validateQubit(q); err != nil {
		return 0, err
	}

	var p1 float64
	for i, amp := range e.psi {
		if bit(i, q) == 1 {
			p1 += real(amp)*real(amp) + imag(amp)*imag(amp)
		}
	}

	outcome := 0
	if e.rng.Float64() < p1 {
		outcome = 1
	}

	for i := range e.psi {
		if bit(i, q) != outcome {
			e.psi[i] = 0
		}
	}
	e.psi = e.psi.Normalize()
	e.logGate("MEASURE", q, -1)
	return outcome, nil
}

// MeasureX measures qubit q in the X basis: rotate with H, then
// MeasureSingle. Per spec.md's Open Question decision, the basis
// rotation is not undone after collapse.
func (e *Engine) MeasureX(q int) (int, error) {
	if err := e.requireInitialized(); err != nil {
		return 0, err
	}
	if err := e.ApplyGate(gate.MatrixH(), q, -1); err != nil {
		return 0, err
	}
	return e.MeasureSingle(q)
}

// MeasureY measures qubit q in the Y basis: rotate with S† then H, then
// MeasureSingle. The basis rotation is not undone after collapse.
func (e *Engine) MeasureY(q int) (int, error) {
	if err := e.requireInitialized(); err != nil {
		return 0, err
	}
	if err := e.ApplyGate(gate.MatrixSdg(), q, -1); err != nil {
		return 0, err
	}
	if err := e.ApplyGate(gate.MatrixH(), q, -1); err != nil {
		return 0, err
	}
	return e.MeasureSingle(q)
}
