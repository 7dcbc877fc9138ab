package engine

import (
	"github.com/kegliz/synthesis/qc/qerr"
	"github.com/kegliz/synthesis/qc/qmath"
)

// ApplyGate applies the 1-qubit unitary u to target, optionally
// controlled on control (pass control=-1 for uncontrolled). Streams over
// index pairs (i, i ^ 2^target) instead of materializing the full
// 2^n x 2^n operator, as spec.md §4.3 requires.
func (e *Engine) ApplyGate(u *qmath.Matrix, target, control int) error {
	if err := e.requireInitialized(); err != nil {
		return err
	}
	if u == nil || u.Rows != 2 || u.Cols != 2 {
		return qerr.New(qerr.InvalidArgument, "apply_gate: gate must be a 2x2 unitary")
	}
	if target < 0 || target >= e.n {
		return qerr.New(qerr.InvalidArgument, "apply_gate: target qubit %d out of range [0,%d)", target, e.n)
	}
	if control != -1 {
		if control < 0 || control >= e.n {
			return qerr.New(qerr.InvalidArgument, "apply_gate: control qubit %d out of range [0,%d)", control, e.n)
		}
		if control == target {
			return qerr.New(qerr.InvalidArgument, "apply_gate: control and target must differ")
		}
	}
	if !u.IsUnitary(unitaryTol) {
		return qerr.New(qerr.InvalidArgument, "apply_gate: matrix is not unitary within %.0e", unitaryTol)
	}

	u00, u01 := u.At(0, 0), u.At(0, 1)
	u10, u11 := u.At(1, 0), u.At(1, 1)

	mask := 1 << uint(target)
	dim := e.dim()
	for i := 0; i < dim; i++ {
		if bit(i, target) != 0 {
			continue
		}
		if control != -1 && bit(i, control) == 0 {
			continue
		}
		i1 := i | mask
		a0, a1 := e.psi[i], e.psi[i1]
		e.psi[i] = u00*a0 + u01*a1
		e.psi[i1] = u10*a0 + u11*a1
	}

	e.renormalizeIfDrifted()
	name := "U"
	e.logGate(name, target, control)
	return nil
}

// Swap exchanges the computational-basis roles of qubits a and b.
func (e *Engine) Swap(a, b int) error {
	if err := e.requireInitialized(); err != nil {
		return err
	}
	if err := e.validateQubit(a); err != nil {
		return err
	}
	if err := e.validateQubit(b); err != nil {
		return err
	}
	if a == b {
		e.logGate("SWAP", a, b)
		return nil
	}
	dim := e.dim()
	for i := 0; i < dim; i++ {
		if bit(i, a) == bit(i, b) {
			continue
		}
		j := i ^ (1 << uint(a)) ^ (1 << uint(b))
		if i < j {
			e.psi[i], e.psi[j] = e.psi[j], e.psi[i]
		}
	}
	e.logGate("SWAP", a, b)
	return nil
}

// CSwap swaps a and b only among basis indices where control bit c is 1
// (the Fredkin gate's index-level semantics).
func (e *Engine) CSwap(c, a, b int) error {
	if err := e.requireInitialized(); err != nil {
		return err
	}
	for _, q := range []int{c, a, b} {
		if err := e.validateQubit(q); err != nil {
			return err
		}
	}
	if a == b {
		e.logGate("CSWAP", a, b)
		return nil
	}
	dim := e.dim()
	for i := 0; i < dim; i++ {
		if bit(i, c) == 0 {
			continue
		}
		if bit(i, a) == bit(i, b) {
			continue
		}
		j := i ^ (1 << uint(a)) ^ (1 << uint(b))
		if i < j {
			e.psi[i], e.psi[j] = e.psi[j], e.psi[i]
		}
	}
	e.logGate("CSWAP", a, b)
	return nil
}

func (e *Engine) validateQubit(q int) error {
	if q < 0 || q >= e.n {
		return qerr.New(qerr.InvalidArgument, "qubit %d out of range [0,%d)", q, e.n)
	}
	return nil
}

// Increment treats qubits (ordered, qubits[0] least significant) as a
// little-endian register and shifts it by +1 mod 2^len(qubits), wrapping.
func (e *Engine) Increment(qubits []int) error {
	return e.shiftRegister(qubits, 1)
}

// Decrement shifts the register by -1 mod 2^len(qubits).
func (e *Engine) Decrement(qubits []int) error {
	return e.shiftRegister(qubits, -1)
}

func (e *Engine) shiftRegister(qubits []int, delta int) error {
	if err := e.requireInitialized(); err != nil {
		return err
	}
	for _, q := range qubits {
		if err := e.validateQubit(q); err != nil {
			return err
		}
	}
	if len(qubits) == 0 {
		return nil
	}
	m := 1 << uint(len(qubits))
	dim := e.dim()
	next := make(qmath.Vector, dim)
	for i := 0; i < dim; i++ {
		r := extractRegister(i, qubits)
		rNext := ((r+delta)%m + m) % m
		j := scatterRegister(i, qubits, rNext)
		next[j] = e.psi[i]
	}
	e.psi = next
	name := "INCREMENT"
	if delta < 0 {
		name = "DECREMENT"
	}
	e.logGate(name, qubits[0], -1)
	return nil
}

// ReverseBits mirrors the register defined by qubits in place: the bit at
// list position j swaps with the bit at position len-1-j.
func (e *Engine) ReverseBits(qubits []int) error {
	if err := e.requireInitialized(); err != nil {
		return err
	}
	for _, q := range qubits {
		if err := e.validateQubit(q); err != nil {
			return err
		}
	}
	if len(qubits) < 2 {
		return nil
	}
	dim := e.dim()
	next := make(qmath.Vector, dim)
	for i := 0; i < dim; i++ {
		r := extractRegister(i, qubits)
		rRev := reverseRegisterBits(r, len(qubits))
		j := scatterRegister(i, qubits, rRev)
		next[j] = e.psi[i]
	}
	e.psi = next
	e.logGate("REVERSE_BITS", qubits[0], -1)
	return nil
}

// extractRegister reads the little-endian integer formed by the bits of
// i at positions qubits[0] (LSB) .. qubits[len-1] (MSB).
func extractRegister(i int, qubits []int) int {
	r := 0
	for pos, q := range qubits {
		if bit(i, q) == 1 {
			r |= 1 << uint(pos)
		}
	}
	return r
}

// scatterRegister returns i with the bits at qubits[] positions replaced
// by register value r (little-endian over the qubits list).
func scatterRegister(i int, qubits []int, r int) int {
	out := i
	for pos, q := range qubits {
		mask := 1 << uint(q)
		if (r>>uint(pos))&1 == 1 {
			out |= mask
		} else {
			out &^= mask
		}
	}
	return out
}

func reverseRegisterBits(r, length int) int {
	out := 0
	for pos := 0; pos < length; pos++ {
		if (r>>uint(pos))&1 == 1 {
			out |= 1 << uint(length-1-pos)
		}
	}
	return out
}
