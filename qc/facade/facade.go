// Package facade exposes a thin, plain-data API over the statevector
// engine, the time-evolution solver and the disk-backed state store. It
// is the only legal entry point for the dispatch orchestrator — every
// call takes primitive/struct arguments and returns either a success
// payload or a tagged error, never a panic.
package facade

import (
	"strconv"
	"strings"

	"github.com/kegliz/synthesis/qc/engine"
	"github.com/kegliz/synthesis/qc/evolve"
	"github.com/kegliz/synthesis/qc/gate"
	"github.com/kegliz/synthesis/qc/qerr"
	"github.com/kegliz/synthesis/qc/qmath"
	"github.com/kegliz/synthesis/qc/store"
)

// Facade bundles one Engine with one Store. It is not safe for
// concurrent use on its own — the dispatch orchestrator's single-
// coordinator mutex is what makes that safe in practice.
type Facade struct {
	eng *engine.Engine
	st  *store.Store
}

// New builds a Facade around a fresh Engine and the given Store.
func New(st *store.Store) *Facade {
	return &Facade{eng: engine.New(), st: st}
}

// StatusInfo mirrors the synthesis:status action's result shape.
type StatusInfo struct {
	Initialized      bool
	NumQubits        int
	GateCount        int
	MaxQubits        int
	ResultHistoryLen int
	AutoVisualize    bool
}

// Status reports whether the engine has been reset/set, its size, and
// its declared ceiling. AutoVisualize is always false: there is no
// rendering backend behind this facade for it to toggle.
func (f *Facade) Status() StatusInfo {
	return StatusInfo{
		Initialized:      f.eng.NumQubits() > 0,
		NumQubits:        f.eng.NumQubits(),
		GateCount:        f.eng.GateCount(),
		MaxQubits:        engine.NMax,
		ResultHistoryLen: len(f.eng.ResultLog()),
		AutoVisualize:    false,
	}
}

// TrueStatusInfo mirrors true_synthesis:status's "engine+store status"
// result: the engine's StatusInfo plus the store's budget snapshot.
type TrueStatusInfo struct {
	StatusInfo
	Storage store.BudgetSnapshot
}

// TrueStatus reports engine status alongside the store's disk budget.
func (f *Facade) TrueStatus() (TrueStatusInfo, error) {
	storage, err := f.st.Storage()
	if err != nil {
		return TrueStatusInfo{}, err
	}
	return TrueStatusInfo{StatusInfo: f.Status(), Storage: storage}, nil
}

// Reset initializes the engine to |0...0> over n qubits.
func (f *Facade) Reset(n int) error { return f.eng.Reset(n) }

// Compute takes a named snapshot: probabilities, optional shot counts,
// and (n<=4) the Bloch vector of qubit 0.
func (f *Facade) Compute(mode string, shots int) (engine.ComputeResult, error) {
	return f.eng.Compute(mode, shots)
}

// GetState returns a defensive copy of the current statevector.
func (f *Facade) GetState() (qmath.Vector, error) { return f.eng.State() }

// ApplyGate applies a 2x2 unitary to target, optionally controlled.
func (f *Facade) ApplyGate(u *qmath.Matrix, target, control int) error {
	return f.eng.ApplyGate(u, target, control)
}

// Swap exchanges two qubits' computational-basis roles.
func (f *Facade) Swap(a, b int) error { return f.eng.Swap(a, b) }

// CSwap swaps a and b wherever control bit c is set.
func (f *Facade) CSwap(c, a, b int) error { return f.eng.CSwap(c, a, b) }

// Increment shifts the little-endian register formed by qubits by +1.
func (f *Facade) Increment(qubits []int) error { return f.eng.Increment(qubits) }

// Decrement shifts the little-endian register formed by qubits by -1.
func (f *Facade) Decrement(qubits []int) error { return f.eng.Decrement(qubits) }

// ReverseBits mirrors the register formed by qubits in place.
func (f *Facade) ReverseBits(qubits []int) error { return f.eng.ReverseBits(qubits) }

// Probabilities returns every basis outcome with p > 1e-10.
func (f *Facade) Probabilities() (map[string]float64, error) { return f.eng.Probabilities() }

// Marginals returns per-qubit {p0, p1}.
func (f *Facade) Marginals() ([]engine.BlochMarginal, error) { return f.eng.Marginals() }

// Bloch returns the Bloch-sphere coordinate of qubit q.
func (f *Facade) Bloch(q int) (engine.BlochVector, error) { return f.eng.Bloch(q) }

// BlochAll returns Bloch(q) for every qubit.
func (f *Facade) BlochAll() ([]engine.BlochVector, error) { return f.eng.BlochAll() }

// Entanglement returns the bipartite Schmidt-decomposition summary.
func (f *Facade) Entanglement() (engine.Entanglement, error) { return f.eng.Entanglement() }

// Measure dispatches to MeasureSingle/MeasureX/MeasureY/MeasureAll based
// on basis ("z" (default), "x", "y") and shots (>0 selects the
// non-collapsing MeasureAll histogram over the single-shot collapse).
func (f *Facade) Measure(q int, basis string, shots int) (MeasureResult, error) {
	if shots > 0 {
		counts, err := f.eng.MeasureAll(shots)
		if err != nil {
			return MeasureResult{}, err
		}
		return MeasureResult{Counts: counts}, nil
	}

	var outcome int
	var err error
	switch strings.ToLower(basis) {
	case "", "z":
		outcome, err = f.eng.MeasureSingle(q)
	case "x":
		outcome, err = f.eng.MeasureX(q)
	case "y":
		outcome, err = f.eng.MeasureY(q)
	default:
		return MeasureResult{}, qerr.New(qerr.InvalidArgument, "measure: unknown basis %q", basis)
	}
	if err != nil {
		return MeasureResult{}, err
	}
	return MeasureResult{Outcome: &outcome}, nil
}

// MeasureResult holds either a single collapsed outcome or a
// non-collapsing shot histogram, whichever Measure's arguments selected.
type MeasureResult struct {
	Outcome *int
	Counts  map[string]int
}

// MeasureShotsResult mirrors true_synthesis:measure's result shape: a
// shot histogram, the shot count, and the most frequently sampled
// bitstring.
type MeasureShotsResult struct {
	Counts     map[string]int
	Shots      int
	MostLikely string
}

// MeasureShots samples shots outcomes from the full register without
// mutating the state, then — if collapse is true — forces the engine's
// state to the most frequently sampled outcome.
func (f *Facade) MeasureShots(shots int, collapse bool) (MeasureShotsResult, error) {
	counts, err := f.eng.MeasureAll(shots)
	if err != nil {
		return MeasureShotsResult{}, err
	}
	most := mostLikely(counts)
	if collapse && most != "" {
		idx, err := strconv.ParseInt(most, 2, 64)
		if err != nil {
			return MeasureShotsResult{}, qerr.New(qerr.InvalidArgument, "measure: invalid bitstring %q", most)
		}
		if err := f.eng.CollapseTo(int(idx)); err != nil {
			return MeasureShotsResult{}, err
		}
	}
	return MeasureShotsResult{Counts: counts, Shots: shots, MostLikely: most}, nil
}

// mostLikely returns the bitstring with the highest count, breaking ties
// by lexicographically smallest bitstring for determinism.
func mostLikely(counts map[string]int) string {
	best, bestCount := "", -1
	for k, c := range counts {
		if c > bestCount || (c == bestCount && k < best) {
			best, bestCount = k, c
		}
	}
	return best
}

// SchrodingerCapability is the static descriptor returned in place of
// real evolution by the dispatch surface: a Hamiltonian matrix is too
// heavy to pass through dispatch kwargs. Direct Go callers use
// EvolveSchrodinger instead.
type SchrodingerCapability struct {
	Available     bool
	Description   string
	Engine        string
	Method        string
	MaxQubits     int
	MaxTimeSteps  int
	StorageBacked bool
}

// SchrodingerCapability describes the synthesis:schrodinger capability.
func (f *Facade) SchrodingerCapability() SchrodingerCapability {
	return SchrodingerCapability{
		Available: true,
		Description: "Schrodinger equation solver (evolve_schrodinger). Requires a " +
			"Hamiltonian matrix, which is too heavy to pass through dispatch kwargs. " +
			"Use the engine facade's EvolveSchrodinger directly for full control.",
	}
}

// TrueSchrodingerCapability describes the true_synthesis:schrodinger
// capability, including the store's declared evolution ceilings.
func (f *Facade) TrueSchrodingerCapability() SchrodingerCapability {
	return SchrodingerCapability{
		Available:     true,
		Engine:        "TrueSynthesisEngine",
		Method:        "matrix_exponentiation + eigendecomposition",
		MaxQubits:     f.st.MaxQubits(),
		MaxTimeSteps:  f.st.MaxTimeSteps(),
		StorageBacked: true,
		Description: "Full Schrodinger solver (i*hbar d(psi)/dt = H*psi) via matrix " +
			"exponentiation. Requires a Hermitian Hamiltonian matrix - construct via " +
			"direct facade calls for full control.",
	}
}

// StateInfo mirrors the true_synthesis:state_info action: engine size
// plus the current entanglement summary.
type StateInfo struct {
	NumQubits   int
	GateCount   int
	Entangled   bool
	SchmidtRank int
}

// StateInfo reports the engine's size and entanglement at a glance.
func (f *Facade) StateInfo() (StateInfo, error) {
	ent, err := f.eng.Entanglement()
	if err != nil {
		return StateInfo{}, err
	}
	return StateInfo{
		NumQubits:   f.eng.NumQubits(),
		GateCount:   f.eng.GateCount(),
		Entangled:   ent.IsEntangled,
		SchmidtRank: ent.SchmidtRank,
	}, nil
}

// Initialize resets the engine then installs a named initial state:
// "zero" (default, same as Reset), "one" (|1...1>), "plus" (H on every
// qubit), "minus" (X then H on every qubit), or a literal bitstring like
// "0110".
func (f *Facade) Initialize(n int, initialState string) error {
	if err := f.eng.Reset(n); err != nil {
		return err
	}
	switch strings.ToLower(initialState) {
	case "", "zero":
		return nil
	case "one":
		for q := 0; q < n; q++ {
			if err := f.eng.ApplyGate(gate.MatrixX(), q, -1); err != nil {
				return err
			}
		}
		return nil
	case "plus":
		for q := 0; q < n; q++ {
			if err := f.eng.ApplyGate(gate.MatrixH(), q, -1); err != nil {
				return err
			}
		}
		return nil
	case "minus":
		for q := 0; q < n; q++ {
			if err := f.eng.ApplyGate(gate.MatrixX(), q, -1); err != nil {
				return err
			}
			if err := f.eng.ApplyGate(gate.MatrixH(), q, -1); err != nil {
				return err
			}
		}
		return nil
	default:
		return f.initializeFromBitstring(n, initialState)
	}
}

func (f *Facade) initializeFromBitstring(n int, bits string) error {
	if len(bits) != n {
		return qerr.New(qerr.InvalidArgument, "initialize: bitstring %q does not match num_qubits %d", bits, n)
	}
	index := 0
	for q := 0; q < n; q++ {
		// bits is big-endian (qubit n-1 first), matching the printed
		// bitstring contract.
		c := bits[n-1-q]
		if c == '1' {
			index |= 1 << uint(q)
		} else if c != '0' {
			return qerr.New(qerr.InvalidArgument, "initialize: bitstring %q must contain only 0/1", bits)
		}
	}
	v := make(qmath.Vector, 1<<uint(n))
	v[index] = 1
	return f.eng.SetState(v)
}

// BellState resets to 2 qubits and prepares one of the four Bell pairs,
// selected by pairType: "phi_plus" (default), "phi_minus", "psi_plus",
// "psi_minus".
func (f *Facade) BellState(pairType string) error {
	if err := f.eng.Reset(2); err != nil {
		return err
	}
	if err := f.eng.ApplyGate(gate.MatrixH(), 0, -1); err != nil {
		return err
	}
	if err := f.eng.ApplyGate(gate.MatrixX(), 1, 0); err != nil {
		return err
	}
	switch strings.ToLower(pairType) {
	case "", "phi_plus":
		return nil
	case "phi_minus":
		return f.eng.ApplyGate(gate.MatrixZ(), 0, -1)
	case "psi_plus":
		return f.eng.ApplyGate(gate.MatrixX(), 0, -1)
	case "psi_minus":
		if err := f.eng.ApplyGate(gate.MatrixX(), 0, -1); err != nil {
			return err
		}
		return f.eng.ApplyGate(gate.MatrixZ(), 0, -1)
	default:
		return qerr.New(qerr.InvalidArgument, "bell_state: unknown pair_type %q", pairType)
	}
}

// GHZState resets to n qubits and prepares the n-qubit GHZ state via H
// on qubit 0 followed by a CNOT chain 0->1, 0->2, ..., 0->n-1.
func (f *Facade) GHZState(n int) error {
	if n < 2 {
		return qerr.New(qerr.InvalidArgument, "ghz_state: num_qubits must be >= 2, got %d", n)
	}
	if err := f.eng.Reset(n); err != nil {
		return err
	}
	if err := f.eng.ApplyGate(gate.MatrixH(), 0, -1); err != nil {
		return err
	}
	for q := 1; q < n; q++ {
		if err := f.eng.ApplyGate(gate.MatrixX(), q, 0); err != nil {
			return err
		}
	}
	return nil
}

// EvolveUnitary solves ψ(t) = expm(-iHt) ψ exactly against the current
// state, installing the result as the new current state.
func (f *Facade) EvolveUnitary(h *qmath.Matrix, t float64) (qmath.Vector, error) {
	psi, err := f.eng.State()
	if err != nil {
		return nil, err
	}
	out, err := evolve.Unitary(h, psi, t)
	if err != nil {
		return nil, err
	}
	if err := f.eng.SetState(out); err != nil {
		return nil, err
	}
	return out, nil
}

// EvolveSchrodinger samples the RK45 trajectory between t0 and t1,
// leaving the engine's current state at the final sample.
func (f *Facade) EvolveSchrodinger(h *qmath.Matrix, t0, t1 float64, nPoints int) ([]float64, []qmath.Vector, error) {
	psi, err := f.eng.State()
	if err != nil {
		return nil, nil, err
	}
	times, states, err := evolve.Schrodinger(h, psi, t0, t1, nPoints)
	if err != nil {
		return nil, nil, err
	}
	if len(states) > 0 {
		if err := f.eng.SetState(states[len(states)-1]); err != nil {
			return nil, nil, err
		}
	}
	return times, states, nil
}

// Storage returns the store's budget snapshot.
func (f *Facade) Storage() (store.BudgetSnapshot, error) { return f.st.Storage() }

// ListStates lists every named state, ordered by creation time.
func (f *Facade) ListStates() ([]store.StateMeta, error) { return f.st.ListStates() }

// SaveState persists the engine's current state under name.
func (f *Facade) SaveState(name, description string) error {
	psi, err := f.eng.State()
	if err != nil {
		return err
	}
	return f.st.SaveState(name, psi, description)
}

// LoadState replaces the engine's current state with the named state.
func (f *Facade) LoadState(name string) error {
	psi, n, err := f.st.LoadState(name)
	if err != nil {
		return err
	}
	if n > engine.NMax {
		return qerr.New(qerr.Capacity, "load_state: %q has %d qubits, exceeds engine N_MAX=%d", name, n, engine.NMax)
	}
	return f.eng.SetState(psi)
}

// DeleteState removes a named state, idempotently.
func (f *Facade) DeleteState(name string) (bool, error) { return f.st.DeleteState(name) }
