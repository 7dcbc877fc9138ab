// Command cli is a small terminal demo of the statevector engine: it
// builds a few textbook circuits with qc/builder and runs each one
// straight through qc/engine, printing the measurement histogram.
package main

import (
	"fmt"
	"sort"

	"github.com/kegliz/synthesis/qc/builder"
	"github.com/kegliz/synthesis/qc/circuit"
	"github.com/kegliz/synthesis/qc/engine"
	"github.com/kegliz/synthesis/qc/gate"
	"github.com/kegliz/synthesis/qc/qmath"
)

func main() {
	shots := 1024

	fmt.Println("--- Bell State Simulation ---")
	simulateBellState(shots)
	fmt.Println("\n--- 2-Qubit Grover Simulation (|11>) ---")
	simulateGrover2Qubit(shots)
	fmt.Println("\n--- 3-Qubit Grover Simulation (|111>) ---")
	simulateGrover3Qubit(shots)
}

// simulateBellState prepares the |Φ⁺⟩ Bell state and prints the measured histogram.
func simulateBellState(shots int) {
	b := builder.New(builder.Q(2), builder.C(2))
	b.H(0).CNOT(0, 1).Measure(0, 0).Measure(1, 1)

	c, err := b.BuildCircuit()
	if err != nil {
		fmt.Printf("Error building Bell state circuit: %v\n", err)
		return
	}

	hist, err := run(c, shots)
	if err != nil {
		fmt.Printf("Error running Bell state simulation: %v\n", err)
		return
	}
	pretty(hist, shots)
}

// simulateGrover2Qubit demonstrates one Grover iteration on 2-qubit search space
// amplifying the |11⟩ state.
func simulateGrover2Qubit(shots int) {
	b := builder.New(builder.Q(2), builder.C(2))

	// — initial superposition —
	b.H(0).H(1)

	// — oracle marks |11⟩ by phase flip (controlled-Z) —
	b.CZ(0, 1)

	// — diffusion operator —
	b.H(0).H(1)
	b.X(0).X(1)
	b.CZ(0, 1)
	b.X(0).X(1)
	b.H(0).H(1)

	// — measurement —
	b.Measure(0, 0).Measure(1, 1)

	c, err := b.BuildCircuit()
	if err != nil {
		fmt.Printf("Error building 2-qubit Grover circuit: %v\n", err)
		return
	}

	hist, err := run(c, shots)
	if err != nil {
		fmt.Printf("Error running 2-qubit Grover simulation: %v\n", err)
		return
	}
	pretty(hist, shots)
}

// simulateGrover3Qubit demonstrates one Grover iteration on 3-qubit search space
// amplifying the |111⟩ state.
func simulateGrover3Qubit(shots int) {
	b := builder.New(builder.Q(3), builder.C(3))

	// — initial superposition —
	b.H(0).H(1).H(2)

	// — oracle marks |111⟩ by phase flip (CCZ) —
	b.H(2).Toffoli(0, 1, 2).H(2)

	// — diffusion operator (3 qubits) —
	b.H(0).H(1).H(2)
	b.X(0).X(1).X(2)
	b.H(2).Toffoli(0, 1, 2).H(2)
	b.X(0).X(1).X(2)
	b.H(0).H(1).H(2)

	// — measurement —
	b.Measure(0, 0).Measure(1, 1).Measure(2, 2)

	c, err := b.BuildCircuit()
	if err != nil {
		fmt.Printf("Error building 3-qubit Grover circuit: %v\n", err)
		return
	}

	hist, err := run(c, shots)
	if err != nil {
		fmt.Printf("Error running 3-qubit Grover simulation: %v\n", err)
		return
	}
	pretty(hist, shots)
}

// run resets a fresh engine to c's qubit count, streams every
// operation through it in topological order, and samples shots
// measurements from the final state.
func run(c circuit.Circuit, shots int) (map[string]int, error) {
	eng := engine.New()
	if err := eng.Reset(c.Qubits()); err != nil {
		return nil, err
	}
	for _, op := range c.Operations() {
		if err := applyOperation(eng, op); err != nil {
			return nil, err
		}
	}
	result, err := eng.Compute("probabilities", shots)
	if err != nil {
		return nil, err
	}
	return result.Counts, nil
}

// applyOperation translates one circuit.Operation into engine calls.
// Qubits is in builder declaration order: single-control gates carry
// [control, target], Toffoli carries [c0, c1, target], Fredkin carries
// [control, a, b].
func applyOperation(eng *engine.Engine, op circuit.Operation) error {
	q := op.Qubits
	switch op.G.Name() {
	case "H":
		return eng.ApplyGate(gate.MatrixH(), q[0], -1)
	case "X":
		return eng.ApplyGate(gate.MatrixX(), q[0], -1)
	case "Y":
		return eng.ApplyGate(gate.MatrixY(), q[0], -1)
	case "Z":
		return eng.ApplyGate(gate.MatrixZ(), q[0], -1)
	case "S":
		return eng.ApplyGate(gate.MatrixS(), q[0], -1)
	case "CNOT":
		return eng.ApplyGate(gate.MatrixX(), q[1], q[0])
	case "CZ":
		return eng.ApplyGate(gate.MatrixZ(), q[1], q[0])
	case "SWAP":
		return eng.Swap(q[0], q[1])
	case "TOFFOLI":
		return applyToffoli(eng, q[0], q[1], q[2])
	case "FREDKIN":
		return eng.CSwap(q[0], q[1], q[2])
	case "MEASURE":
		return nil
	default:
		return fmt.Errorf("cli: unsupported gate %q", op.G.Name())
	}
}

// applyToffoli realizes CCX(c0, c1, target) with the standard
// Clifford+T decomposition (Nielsen & Chuang, fig. 4.8), since
// ApplyGate only streams a single control per call.
func applyToffoli(eng *engine.Engine, c0, c1, target int) error {
	steps := []struct {
		u    *qmath.Matrix
		tgt  int
		ctrl int
	}{
		{gate.MatrixH(), target, -1},
		{gate.MatrixX(), target, c1},
		{gate.MatrixTdg(), target, -1},
		{gate.MatrixX(), target, c0},
		{gate.MatrixT(), target, -1},
		{gate.MatrixX(), target, c1},
		{gate.MatrixTdg(), target, -1},
		{gate.MatrixX(), target, c0},
		{gate.MatrixT(), c1, -1},
		{gate.MatrixT(), target, -1},
		{gate.MatrixH(), target, -1},
		{gate.MatrixX(), c1, c0},
		{gate.MatrixT(), c0, -1},
		{gate.MatrixTdg(), c1, -1},
		{gate.MatrixX(), c1, c0},
	}
	for _, s := range steps {
		if err := eng.ApplyGate(s.u, s.tgt, s.ctrl); err != nil {
			return err
		}
	}
	return nil
}

// pretty prints the histogram results in a readable, sorted format
func pretty(hist map[string]int, shots int) {
	keys := make([]string, 0, len(hist))
	for k := range hist {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, state := range keys {
		count := hist[state]
		probability := float64(count) / float64(shots)
		fmt.Printf("State |%s>: %d counts (%.2f%%)\n", state, count, probability*100)
	}
}
