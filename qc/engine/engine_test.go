package engine_test

import (
	"math"
	"testing"

	"github.com/kegliz/synthesis/qc/engine"
	"github.com/kegliz/synthesis/qc/gate"
	"github.com/kegliz/synthesis/qc/qerr"
	"github.com/kegliz/synthesis/qc/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumProbs(m map[string]float64) float64 {
	var s float64
	for _, p := range m {
		s += p
	}
	return s
}

func TestResetRejectsOverNMax(t *testing.T) {
	e := engine.New()
	err := e.Reset(engine.NMax + 1)
	require.Error(t, err)
	var tagged interface{ Tag() qerr.Tag }
	require.ErrorAs(t, err, &tagged)
	assert.Equal(t, qerr.Capacity, tagged.Tag())
}

func TestOperationBeforeResetIsInvalidState(t *testing.T) {
	e := engine.New()
	_, err := e.Probabilities()
	require.Error(t, err)
	var tagged interface{ Tag() qerr.Tag }
	require.ErrorAs(t, err, &tagged)
	assert.Equal(t, qerr.InvalidState, tagged.Tag())
}

func TestBellState(t *testing.T) {
	e := engine.New()
	require.NoError(t, e.Reset(2))
	require.NoError(t, e.ApplyGate(gate.MatrixH(), 0, -1))
	require.NoError(t, e.ApplyGate(gate.MatrixX(), 1, 0))

	probs, err := e.Probabilities()
	require.NoError(t, err)
	require.Len(t, probs, 2)
	assert.InDelta(t, 0.5, probs["00"], 1e-9)
	assert.InDelta(t, 0.5, probs["11"], 1e-9)

	ent, err := e.Entanglement()
	require.NoError(t, err)
	assert.Equal(t, 2, ent.SchmidtRank)
	assert.InDelta(t, 1.0, ent.EntropyBits, 1e-6)
	assert.True(t, ent.IsEntangled)
}

func TestGHZState(t *testing.T) {
	e := engine.New()
	require.NoError(t, e.Reset(3))
	require.NoError(t, e.ApplyGate(gate.MatrixH(), 0, -1))
	require.NoError(t, e.ApplyGate(gate.MatrixX(), 1, 0))
	require.NoError(t, e.ApplyGate(gate.MatrixX(), 2, 0))

	probs, err := e.Probabilities()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, probs["000"], 1e-9)
	assert.InDelta(t, 0.5, probs["111"], 1e-9)

	ent, err := e.Entanglement()
	require.NoError(t, err)
	assert.Equal(t, 2, ent.SchmidtRank)
	assert.InDelta(t, 1.0, ent.EntropyBits, 1e-6)
}

func TestSeparablePlusZero(t *testing.T) {
	e := engine.New()
	require.NoError(t, e.Reset(2))
	require.NoError(t, e.ApplyGate(gate.MatrixH(), 0, -1))

	ent, err := e.Entanglement()
	require.NoError(t, err)
	assert.Equal(t, 1, ent.SchmidtRank)
	assert.InDelta(t, 0.0, ent.EntropyBits, 1e-9)
	assert.False(t, ent.IsEntangled)

	b0, err := e.Bloch(0)
	require.NoError(t, err)
	assert.InDelta(t, 1, b0.X, 1e-9)
	assert.InDelta(t, 0, b0.Y, 1e-9)
	assert.InDelta(t, 0, b0.Z, 1e-9)

	b1, err := e.Bloch(1)
	require.NoError(t, err)
	assert.InDelta(t, 0, b1.X, 1e-9)
	assert.InDelta(t, 0, b1.Y, 1e-9)
	assert.InDelta(t, 1, b1.Z, 1e-9)
}

func TestApplyXTwiceIsIdentityUpToPhase(t *testing.T) {
	e := engine.New()
	require.NoError(t, e.Reset(1))
	require.NoError(t, e.ApplyGate(gate.MatrixX(), 0, -1))
	require.NoError(t, e.ApplyGate(gate.MatrixX(), 0, -1))

	probs, err := e.Probabilities()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, probs["0"], 1e-9)
}

func TestApplyHTwiceIsIdentityUpToPhase(t *testing.T) {
	e := engine.New()
	require.NoError(t, e.Reset(1))
	require.NoError(t, e.ApplyGate(gate.MatrixH(), 0, -1))
	require.NoError(t, e.ApplyGate(gate.MatrixH(), 0, -1))

	probs, err := e.Probabilities()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, probs["0"], 1e-9)
}

func TestControlEqualsTargetRejected(t *testing.T) {
	e := engine.New()
	require.NoError(t, e.Reset(2))
	err := e.ApplyGate(gate.MatrixX(), 0, 0)
	require.Error(t, err)
	var tagged interface{ Tag() qerr.Tag }
	require.ErrorAs(t, err, &tagged)
	assert.Equal(t, qerr.InvalidArgument, tagged.Tag())
}

func TestMeasureAllZeroShotsNoCollapse(t *testing.T) {
	e := engine.New()
	require.NoError(t, e.Reset(2))
	require.NoError(t, e.ApplyGate(gate.MatrixH(), 0, -1))

	counts, err := e.MeasureAll(0)
	require.NoError(t, err)
	assert.Empty(t, counts)

	probs, err := e.Probabilities()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, probs["00"], 1e-9)
	assert.InDelta(t, 0.5, probs["01"], 1e-9)
}

func TestMeasureAllDistribution(t *testing.T) {
	e := engine.New()
	require.NoError(t, e.Reset(1))
	require.NoError(t, e.ApplyGate(gate.MatrixH(), 0, -1))

	shots := testutil.DefaultShots
	counts, err := e.MeasureAll(shots)
	require.NoError(t, err)
	total := counts["0"] + counts["1"]
	assert.Equal(t, shots, total)

	testutil.AssertHistogramDistribution(t, counts, map[string]float64{"0": 0.5, "1": 0.5}, shots, testutil.DefaultTolerance)
}

func TestMeasureSingleCollapses(t *testing.T) {
	e := engine.New()
	require.NoError(t, e.Reset(1))
	require.NoError(t, e.ApplyGate(gate.MatrixH(), 0, -1))

	outcome, err := e.MeasureSingle(0)
	require.NoError(t, err)
	probs, err := e.Probabilities()
	require.NoError(t, err)
	if outcome == 0 {
		assert.InDelta(t, 1.0, probs["0"], 1e-9)
	} else {
		assert.InDelta(t, 1.0, probs["1"], 1e-9)
	}
}

func TestProbabilitiesSumToOne(t *testing.T) {
	e := engine.New()
	require.NoError(t, e.Reset(3))
	require.NoError(t, e.ApplyGate(gate.MatrixH(), 0, -1))
	require.NoError(t, e.ApplyGate(gate.MatrixH(), 1, -1))
	require.NoError(t, e.ApplyGate(gate.MatrixH(), 2, -1))

	probs, err := e.Probabilities()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sumProbs(probs), 1e-9)
	for _, p := range probs {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestBlochVectorWithinUnitBall(t *testing.T) {
	e := engine.New()
	require.NoError(t, e.Reset(2))
	require.NoError(t, e.ApplyGate(gate.MatrixH(), 0, -1))
	require.NoError(t, e.ApplyGate(gate.MatrixX(), 1, 0))

	all, err := e.BlochAll()
	require.NoError(t, err)
	for _, b := range all {
		mag := b.X*b.X + b.Y*b.Y + b.Z*b.Z
		assert.LessOrEqual(t, mag, 1+1e-9)
	}
}

func TestGateLogCappedAt100(t *testing.T) {
	e := engine.New()
	require.NoError(t, e.Reset(1))
	for i := 0; i < 250; i++ {
		require.NoError(t, e.ApplyGate(gate.MatrixX(), 0, -1))
	}
	assert.LessOrEqual(t, len(e.GateLog()), 100)
	assert.Equal(t, 250, e.GateCount())
}

func TestResultLogCappedAt50(t *testing.T) {
	e := engine.New()
	require.NoError(t, e.Reset(1))
	for i := 0; i < 75; i++ {
		_, err := e.Compute("status", 0)
		require.NoError(t, err)
	}
	assert.LessOrEqual(t, len(e.ResultLog()), 50)
}

func TestIncrementWraps(t *testing.T) {
	e := engine.New()
	require.NoError(t, e.Reset(2))
	require.NoError(t, e.ApplyGate(gate.MatrixX(), 1, -1)) // |10> -> register value 2 (qubit0=LSB=0,qubit1=MSB=1)

	require.NoError(t, e.Increment([]int{0, 1}))
	probs, err := e.Probabilities()
	require.NoError(t, err)
	// register was 2 (qubit1 set), +1 => 3 => both qubits set => "11"
	assert.InDelta(t, 1.0, probs["11"], 1e-9)

	// 3 + 1 wraps modulo 4 back to 0 => "00"
	require.NoError(t, e.Increment([]int{0, 1}))
	probs, err = e.Probabilities()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, probs["00"], 1e-9)
}

func TestReverseBitsMirrorsRegister(t *testing.T) {
	e := engine.New()
	require.NoError(t, e.Reset(2))
	require.NoError(t, e.ApplyGate(gate.MatrixX(), 0, -1)) // register (q0,q1) = (1,0) => value 1

	require.NoError(t, e.ReverseBits([]int{0, 1}))
	probs, err := e.Probabilities()
	require.NoError(t, err)
	// reversing a 2-bit register value 1 (q0=1,q1=0) swaps the roles: q1=1,q0=0
	assert.InDelta(t, 1.0, probs["10"], 1e-9)
}

func TestSwapExchangesQubits(t *testing.T) {
	e := engine.New()
	require.NoError(t, e.Reset(2))
	require.NoError(t, e.ApplyGate(gate.MatrixX(), 0, -1))
	require.NoError(t, e.Swap(0, 1))

	probs, err := e.Probabilities()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, probs["10"], 1e-9)
}

func TestSetStateRejectsZeroNorm(t *testing.T) {
	e := engine.New()
	err := e.SetState([]complex128{0, 0})
	require.Error(t, err)
}

func TestSetStateNormalizesInput(t *testing.T) {
	e := engine.New()
	require.NoError(t, e.SetState([]complex128{3, 4}))
	probs, err := e.Probabilities()
	require.NoError(t, err)
	assert.InDelta(t, 9.0/25.0, probs["0"], 1e-9)
	assert.InDelta(t, 16.0/25.0, probs["1"], 1e-9)
}

func TestNormInvariantHoldsAfterManyGates(t *testing.T) {
	e := engine.New()
	require.NoError(t, e.Reset(3))
	for i := 0; i < 30; i++ {
		require.NoError(t, e.ApplyGate(gate.MatrixH(), i%3, -1))
	}
	state, err := e.State()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, state.Norm2(), 1e-9)
}

func TestComputeSnapshotIncludesBlochForSmallN(t *testing.T) {
	e := engine.New()
	require.NoError(t, e.Reset(2))
	require.NoError(t, e.ApplyGate(gate.MatrixH(), 0, -1))

	result, err := e.Compute("status", 100)
	require.NoError(t, err)
	require.NotNil(t, result.Bloch)
	assert.NotEmpty(t, result.Counts)
	assert.True(t, math.Abs(sumProbs(result.Probabilities)-1) < 1e-9)
}
