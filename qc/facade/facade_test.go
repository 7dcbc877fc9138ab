package facade_test

import (
	"sort"
	"testing"

	"github.com/kegliz/synthesis/qc/facade"
	"github.com/kegliz/synthesis/qc/gate"
	"github.com/kegliz/synthesis/qc/qmath"
	"github.com/kegliz/synthesis/qc/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFacade(t *testing.T) *facade.Facade {
	t.Helper()
	st, err := store.New(store.Config{RootPath: t.TempDir()})
	require.NoError(t, err)
	return facade.New(st)
}

// reset(2); H on 0; CX control=0 target=1 => Bell state, probabilities
// {"00":0.5,"11":0.5}, schmidt_rank=2, entropy=1.0, entangled=true.
func TestBellStateSeedScenario(t *testing.T) {
	f := newFacade(t)
	require.NoError(t, f.BellState("phi_plus"))

	probs, err := f.Probabilities()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, probs["00"], 1e-9)
	assert.InDelta(t, 0.5, probs["11"], 1e-9)

	ent, err := f.Entanglement()
	require.NoError(t, err)
	assert.Equal(t, 2, ent.SchmidtRank)
	assert.InDelta(t, 1.0, ent.EntropyBits, 1e-9)
	assert.True(t, ent.IsEntangled)
}

// reset(3); H0; CX0->1; CX0->2 => GHZ, probabilities {"000":0.5,"111":0.5}.
func TestGHZStateSeedScenario(t *testing.T) {
	f := newFacade(t)
	require.NoError(t, f.GHZState(3))

	probs, err := f.Probabilities()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, probs["000"], 1e-9)
	assert.InDelta(t, 0.5, probs["111"], 1e-9)

	ent, err := f.Entanglement()
	require.NoError(t, err)
	assert.Equal(t, 2, ent.SchmidtRank)
	assert.InDelta(t, 1.0, ent.EntropyBits, 1e-9)
}

// reset(2); H0 => separable |+0>: schmidt_rank=1, entropy=0,
// bloch(0)~(1,0,0), bloch(1)~(0,0,1).
func TestSeparablePlusZeroSeedScenario(t *testing.T) {
	f := newFacade(t)
	require.NoError(t, f.Reset(2))
	require.NoError(t, f.Initialize(2, "zero"))

	psi, err := f.GetState()
	require.NoError(t, err)
	_ = psi

	require.NoError(t, f.ApplyGate(hadamard(), 0, -1))

	ent, err := f.Entanglement()
	require.NoError(t, err)
	assert.Equal(t, 1, ent.SchmidtRank)
	assert.InDelta(t, 0.0, ent.EntropyBits, 1e-9)
	assert.False(t, ent.IsEntangled)

	b0, err := f.Bloch(0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, b0.X, 1e-9)
	assert.InDelta(t, 0.0, b0.Y, 1e-9)
	assert.InDelta(t, 0.0, b0.Z, 1e-9)

	b1, err := f.Bloch(1)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, b1.X, 1e-9)
	assert.InDelta(t, 0.0, b1.Y, 1e-9)
	assert.InDelta(t, 1.0, b1.Z, 1e-9)
}

// reset(4); H on every qubit; save_state("unif"); reset(1);
// load_state("unif") restores n=4 and a uniform superposition.
func TestSaveLoadRestoresUniformSuperposition(t *testing.T) {
	f := newFacade(t)
	require.NoError(t, f.Reset(4))
	for q := 0; q < 4; q++ {
		require.NoError(t, f.ApplyGate(hadamard(), q, -1))
	}
	require.NoError(t, f.SaveState("unif", "uniform 4-qubit superposition"))

	require.NoError(t, f.Reset(1))

	require.NoError(t, f.LoadState("unif"))
	status := f.Status()
	assert.Equal(t, 4, status.NumQubits)

	probs, err := f.Probabilities()
	require.NoError(t, err)
	assert.Len(t, probs, 16)
	for _, p := range probs {
		assert.InDelta(t, 1.0/16, p, 1e-9)
	}
}

func TestInitializeFromBitstring(t *testing.T) {
	f := newFacade(t)
	require.NoError(t, f.Initialize(2, "10"))
	probs, err := f.Probabilities()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, probs["10"], 1e-9)
}

func TestMeasureAllDoesNotCollapse(t *testing.T) {
	f := newFacade(t)
	require.NoError(t, f.BellState(""))
	res, err := f.Measure(0, "z", 200)
	require.NoError(t, err)
	require.NotNil(t, res.Counts)

	outcomes := make([]string, 0, len(res.Counts))
	for k := range res.Counts {
		outcomes = append(outcomes, k)
	}
	sort.Strings(outcomes)
	assert.Subset(t, []string{"00", "11"}, outcomes)

	probs, err := f.Probabilities()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, probs["00"], 1e-9)
	assert.InDelta(t, 0.5, probs["11"], 1e-9)
}

func hadamard() *qmath.Matrix {
	return gate.MatrixH()
}
