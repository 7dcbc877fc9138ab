// Package engine implements the single-owned statevector simulation
// core: gate application, measurement, partial trace, Bloch vectors and
// bipartite entanglement for an n-qubit pure state.
package engine

import (
	"math"
	"math/rand"
	"time"

	"github.com/kegliz/synthesis/qc/qerr"
	"github.com/kegliz/synthesis/qc/qmath"
)

// NMax is the hard ceiling on in-memory qubit count. 2^16 amplitudes at
// 16 bytes each is 1 MiB; the working-copy overhead during partial trace
// and evolution keeps total high-water RAM well inside the workbench's
// assumed 8 GB envelope.
const NMax = 16

const (
	gateLogCap   = 100
	resultLogCap = 50
	normTol      = 1e-10
	unitaryTol   = 1e-10
)

// GateLogEntry records one state-mutating operation for debugging and
// tests. It is not part of the correctness contract.
type GateLogEntry struct {
	Name    string
	Target  int
	Control int  // -1 when not controlled
	At      time.Time
}

// ComputeResult is one snapshot pushed by Compute, matching the
// compute-result entity of the data model: an id, the requested mode,
// whether it succeeded, and whatever subset of probabilities/counts/
// bloch applies.
type ComputeResult struct {
	ID            string
	Mode          string
	Success       bool
	Probabilities map[string]float64
	Counts        map[string]int
	Bloch         *BlochVector
	NumQubits     int
	GateCount     int
	TimeMS        float64
	Error         string
}

// BlochVector is a single-qubit Bloch-sphere coordinate.
type BlochVector struct{ X, Y, Z float64 }

// Engine owns exactly one statevector. It is not safe for concurrent use
// by design — spec.md's single-coordinator invariant is enforced one
// layer up, by the dispatch orchestrator's mutex, not inside the engine
// itself.
type Engine struct {
	psi qmath.Vector
	n   int

	gateLog   *ring[GateLogEntry]
	resultLog *ring[ComputeResult]
	gateCount int

	rng *rand.Rand
}

// New constructs an empty, unreset Engine. Every mutating operation
// except Reset/SetState fails with InvalidState until one of those runs.
func New() *Engine {
	return &Engine{
		gateLog:   newRing[GateLogEntry](gateLogCap),
		resultLog: newRing[ComputeResult](resultLogCap),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NumQubits returns the current qubit count, or 0 before the first reset.
func (e *Engine) NumQubits() int { return e.n }

// GateCount returns the number of gate-log entries ever appended
// (not bounded by the ring's capacity).
func (e *Engine) GateCount() int { return e.gateCount }

// Reset initializes ψ = |0…0⟩ for n qubits. Rejects n outside [1, NMax].
func (e *Engine) Reset(n int) error {
	if n < 1 || n > NMax {
		return qerr.New(qerr.Capacity, "reset: num_qubits %d exceeds N_MAX=%d", n, NMax)
	}
	dim := 1 << uint(n)
	psi := make(qmath.Vector, dim)
	psi[0] = 1
	e.psi = psi
	e.n = n
	e.gateLog = newRing[GateLogEntry](gateLogCap)
	e.resultLog = newRing[ComputeResult](resultLogCap)
	e.gateCount = 0
	return nil
}

// SetState installs an arbitrary complex vector of length 2^k, normalizing
// it and setting n = k. Rejects zero-norm input and non-power-of-two
// lengths.
func (e *Engine) SetState(v qmath.Vector) error {
	k := bitLength(len(v))
	if k < 0 || 1<<uint(k) != len(v) {
		return qerr.New(qerr.InvalidArgument, "set_state: length %d is not a power of two", len(v))
	}
	if k < 1 || k > NMax {
		return qerr.New(qerr.Capacity, "set_state: implied num_qubits %d exceeds N_MAX=%d", k, NMax)
	}
	norm := v.Norm2()
	if norm < 1e-15 {
		return qerr.New(qerr.InvalidArgument, "set_state: zero-norm vector")
	}
	psi := make(qmath.Vector, len(v))
	copy(psi, v)
	e.psi = psi.Normalize()
	e.n = k
	e.gateLog = newRing[GateLogEntry](gateLogCap)
	e.resultLog = newRing[ComputeResult](resultLogCap)
	e.gateCount = 0
	return nil
}

// State returns a defensive copy of ψ — callers never receive the
// engine's own backing slice.
func (e *Engine) State() (qmath.Vector, error) {
	if err := e.requireInitialized(); err != nil {
		return nil, err
	}
	out := make(qmath.Vector, len(e.psi))
	copy(out, e.psi)
	return out, nil
}

func (e *Engine) requireInitialized() error {
	if e.n == 0 {
		return qerr.New(qerr.InvalidState, "engine not initialized: call reset or set_state first")
	}
	return nil
}

func (e *Engine) dim() int { return 1 << uint(e.n) }

func bit(i, q int) int { return (i >> uint(q)) & 1 }

// bitLength returns log2(n) for a positive power of two, -1 otherwise.
func bitLength(n int) int {
	if n <= 0 {
		return -1
	}
	k := 0
	for (1 << uint(k)) < n {
		k++
	}
	if 1<<uint(k) != n {
		return -1
	}
	return k
}

// renormalizeIfDrifted renormalizes ψ when its L2 norm has drifted past
// normTol from 1, as mandated by spec.md's statevector invariant.
func (e *Engine) renormalizeIfDrifted() {
	n := e.psi.Norm2()
	if math.Abs(n-1) > normTol {
		e.psi = e.psi.Normalize()
	}
}

func (e *Engine) logGate(name string, target, control int) {
	e.gateLog.push(GateLogEntry{Name: name, Target: target, Control: control, At: time.Now()})
	e.gateCount++
}

// Probabilities returns every basis outcome with p > 1e-10, keyed by a
// big-endian bitstring (qubit n-1 first), matching spec.md's printed
// bitstring contract.
func (e *Engine) Probabilities() (map[string]float64, error) {
	if err := e.requireInitialized(); err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	for i, amp := range e.psi {
		p := real(amp)*real(amp) + imag(amp)*imag(amp)
		if p > 1e-10 {
			out[bitstring(i, e.n)] = p
		}
	}
	return out, nil
}

// bitstring renders basis index i over n qubits big-endian: qubit n-1
// first.
func bitstring(i, n int) string {
	buf := make([]byte, n)
	for q := 0; q < n; q++ {
		if bit(i, n-1-q) == 1 {
			buf[q] = '1'
		} else {
			buf[q] = '0'
		}
	}
	return string(buf)
}

// Marginals returns per-qubit {p0, p1} derived from the partial trace,
// qubit 0 first.
func (e *Engine) Marginals() ([]BlochMarginal, error) {
	if err := e.requireInitialized(); err != nil {
		return nil, err
	}
	out := make([]BlochMarginal, e.n)
	for q := 0; q < e.n; q++ {
		var p1 float64
		for i, amp := range e.psi {
			if bit(i, q) == 1 {
				p1 += real(amp)*real(amp) + imag(amp)*imag(amp)
			}
		}
		out[q] = BlochMarginal{P0: 1 - p1, P1: p1}
	}
	return out, nil
}

// BlochMarginal is the single-qubit {p0, p1} distribution from §4.3's
// marginals() operation.
type BlochMarginal struct{ P0, P1 float64 }

// reducedDensityMatrixSingle computes the 2x2 density matrix of qubit q
// after tracing out every other qubit: ρ[b,b'] = Σ_rest ψ[i(b)] ψ*[i(b')]
// where i(b) is the basis index with qubit q fixed to b and every other
// bit taken from the summation index `rest`. This is spec.md §4.3's
// partial-trace primitive, specialized to a single kept qubit (the only
// shape the engine actually needs, for Bloch vectors).
func (e *Engine) reducedDensityMatrixSingle(q int) *qmath.Matrix {
	rho := qmath.NewMatrix(2, 2)
	for i := 0; i < len(e.psi); i++ {
		if bit(i, q) != 0 {
			continue
		}
		i1 := i | (1 << uint(q))
		a0, a1 := e.psi[i], e.psi[i1]
		rho.Set(0, 0, rho.At(0, 0)+a0*conj(a0))
		rho.Set(1, 1, rho.At(1, 1)+a1*conj(a1))
		rho.Set(0, 1, rho.At(0, 1)+a0*conj(a1))
		rho.Set(1, 0, rho.At(1, 0)+a1*conj(a0))
	}
	return rho
}

func conj(c complex128) complex128 { return complex(real(c), -imag(c)) }

// Bloch returns the Bloch-sphere coordinate of qubit q.
func (e *Engine) Bloch(q int) (BlochVector, error) {
	if err := e.requireInitialized(); err != nil {
		return BlochVector{}, err
	}
	if q < 0 || q >= e.n {
		return BlochVector{}, qerr.New(qerr.InvalidArgument, "bloch: qubit %d out of range [0,%d)", q, e.n)
	}
	rho := e.reducedDensityMatrixSingle(q)
	return BlochVector{
		X: 2 * real(rho.At(0, 1)),
		Y: 2 * imag(rho.At(1, 0)),
		Z: real(rho.At(0, 0)) - real(rho.At(1, 1)),
	}, nil
}

// BlochAll returns Bloch(q) for every qubit.
func (e *Engine) BlochAll() ([]BlochVector, error) {
	if err := e.requireInitialized(); err != nil {
		return nil, err
	}
	out := make([]BlochVector, e.n)
	for q := 0; q < e.n; q++ {
		v, err := e.Bloch(q)
		if err != nil {
			return nil, err
		}
		out[q] = v
	}
	return out, nil
}

// GateLog returns a snapshot of the bounded gate-log ring.
func (e *Engine) GateLog() []GateLogEntry { return e.gateLog.snapshot() }

// ResultLog returns a snapshot of the bounded compute-result ring.
func (e *Engine) ResultLog() []ComputeResult { return e.resultLog.snapshot() }
