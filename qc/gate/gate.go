package gate

import (
	"strings"

	"github.com/kegliz/synthesis/qc/qmath"
)

// Gate is the contract each quantum gate must fulfil. It stays close to
// the drawing-oriented shape the circuit/builder/DAG layer was written
// against, with one addition: every catalog entry now also carries its
// numeric unitary so the engine can apply it directly.
type Gate interface {
	Name() string             // canonical name e.g. "H", "CNOT"
	QubitSpan() int            // how many qubits it acts on
	DrawSymbol() string        // single-char/fallback symbol used by renderers
	Targets() []int            // Relative indices of target qubits (within the span)
	Controls() []int           // Relative indices of control qubits (within the span)
	Matrix() *qmath.Matrix      // unitary acting on Targets(); nil for MEASURE
}

// Factory returns an immutable gate by many common aliases.
//
//	g, _ := gate.Factory("cx")  // -> same instance as CNOT()
func Factory(name string) (Gate, error) {
	switch norm(name) {
	case "h":
		return H(), nil
	case "x":
		return X(), nil
	case "s":
		return S(), nil
	case "swap":
		return Swap(), nil
	case "cx", "cnot":
		return CNOT(), nil
	case "cz":
		return CZ(), nil
	case "t", "toffoli", "ccx":
		return Toffoli(), nil
	case "fredkin", "cswap":
		return Fredkin(), nil
	case "m", "measure", "meas":
		return Measure(), nil
	}
	return nil, ErrUnknownGate{name}
}

// ErrUnknownGate is returned by Factory when the label isn't recognised.
type ErrUnknownGate struct{ Name string }

func (e ErrUnknownGate) Error() string { return "qcircuit: unknown gate " + e.Name }

// helpers --------------------------------------------------------------

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
