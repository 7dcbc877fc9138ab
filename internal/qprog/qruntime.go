package qprog

import (
	"github.com/kegliz/synthesis/qc/engine"
	"github.com/kegliz/synthesis/qc/gate"
	"github.com/kegliz/synthesis/qc/qerr"
	"github.com/kegliz/synthesis/qc/qmath"
)

// GateTarget is the subset of qc/engine.Engine and qc/facade.Facade that
// gate translation needs: a streaming single-control ApplyGate plus the
// two built-in permutation primitives. Both the standalone engine
// runtime and the HTTP layer's shared facade satisfy it.
type GateTarget interface {
	ApplyGate(u *qmath.Matrix, target, control int) error
	Swap(a, b int) error
	CSwap(c, a, b int) error
}

type (
	// RuntimeFactory is a factory of quantum computer runtime.
	RuntimeFactory interface {
		// NewRuntime creates a new quantum computer runtime.
		NewRuntime() Runtime
	}

	// Result is the outcome of running a Program to completion: the
	// final statevector, its basis probabilities, and any classical
	// bits produced by Measurement gates along the way.
	Result struct {
		NumQubits     int
		State         qmath.Vector
		Probabilities map[string]float64
		Classical     map[int]bool
	}

	// Runtime is a quantum computer runtime (simulator or other).
	Runtime interface {
		// Run runs the program.
		Run(p *Program) (*Result, error)
	}
)

// engineRuntimeFactory builds Runtimes backed by the statevector engine.
type engineRuntimeFactory struct{}

// engineRuntime executes a Program against a fresh qc/engine.Engine,
// translating each step's gates into streaming ApplyGate/Swap/Measure
// calls in program order.
type engineRuntime struct{}

var _ RuntimeFactory = (*engineRuntimeFactory)(nil)
var _ Runtime = (*engineRuntime)(nil)

// NewRuntimeFactory creates a new quantum computer runtime factory.
func NewRuntimeFactory() RuntimeFactory {
	return &engineRuntimeFactory{}
}

// NewRuntime creates a new quantum computer runtime.
func (f *engineRuntimeFactory) NewRuntime() Runtime {
	return &engineRuntime{}
}

// Run executes the program's steps in order against a freshly reset
// engine and returns its final state and measurement outcomes.
func (r *engineRuntime) Run(p *Program) (*Result, error) {
	eng := engine.New()
	if err := eng.Reset(p.NumOfQubits); err != nil {
		return nil, err
	}

	classical := make(map[int]bool)
	for _, step := range p.Steps {
		for _, g := range step.Gates {
			if g.Type == Measurement {
				outcome, err := eng.MeasureSingle(g.Targets[0])
				if err != nil {
					return nil, err
				}
				classical[g.Targets[0]] = outcome == 1
				continue
			}
			if _, err := applyUnitary(eng, g); err != nil {
				return nil, err
			}
		}
	}

	probs, err := eng.Probabilities()
	if err != nil {
		return nil, err
	}
	state, err := eng.State()
	if err != nil {
		return nil, err
	}

	return &Result{
		NumQubits:     eng.NumQubits(),
		State:         state,
		Probabilities: probs,
		Classical:     classical,
	}, nil
}

// ApplyToFacade plays every non-measurement gate of p against t in
// program order. It does not reset t first or read back any state —
// callers (the HTTP layer's /api/programs/:id/run handler) reset to
// p.NumOfQubits and take a shot-count snapshot afterwards. Mid-circuit
// Measurement gates are skipped: this path has no classical
// feed-forward, matching qc/builder's DSL, which has none either.
func ApplyToFacade(t GateTarget, p *Program) error {
	for _, step := range p.Steps {
		for _, g := range step.Gates {
			if g.Type == Measurement {
				continue
			}
			if _, err := applyUnitary(t, g); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyUnitary translates one non-measurement wire-format Gate into
// GateTarget calls.
func applyUnitary(t GateTarget, g Gate) (bool, error) {
	switch g.Type {
	case HGate:
		return true, t.ApplyGate(gate.MatrixH(), g.Targets[0], -1)
	case XGate:
		return true, t.ApplyGate(gate.MatrixX(), g.Targets[0], -1)
	case ZGate:
		return true, t.ApplyGate(gate.MatrixZ(), g.Targets[0], -1)
	case SGate:
		return true, t.ApplyGate(gate.MatrixS(), g.Targets[0], -1)
	case CNotGate:
		return true, t.ApplyGate(gate.MatrixX(), g.Targets[0], g.Controls[0])
	case CZGate:
		return true, t.ApplyGate(gate.MatrixZ(), g.Targets[0], g.Controls[0])
	case SwapGate:
		return true, t.Swap(g.Targets[0], g.Targets[1])
	case ToffoliGate:
		return true, applyToffoli(t, g.Controls[0], g.Controls[1], g.Targets[0])
	case FredkinGate:
		return true, t.CSwap(g.Controls[0], g.Targets[0], g.Targets[1])
	default:
		return false, qerr.New(qerr.InvalidArgument, "qprog: unknown gate type %q", g.Type)
	}
}

// applyToffoli realizes CCX(c0, c1, t) with the standard Clifford+T
// decomposition (Nielsen & Chuang, fig. 4.8), since ApplyGate only
// streams a single control per call.
func applyToffoli(t GateTarget, c0, c1, target int) error {
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
		if err := t.ApplyGate(s.u, s.tgt, s.ctrl); err != nil {
			return err
		}
	}
	return nil
}
