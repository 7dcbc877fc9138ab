package dispatch_test

import (
	"testing"

	"github.com/kegliz/synthesis/qc/dispatch"
	"github.com/kegliz/synthesis/qc/facade"
	"github.com/kegliz/synthesis/qc/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFacadeForRouter(t *testing.T) *facade.Facade {
	t.Helper()
	st, err := store.New(store.Config{RootPath: t.TempDir()})
	require.NoError(t, err)
	return facade.New(st)
}

func TestRouteResetThenCompute(t *testing.T) {
	f := newFacadeForRouter(t)
	_, err := dispatch.Route(f, "synthesis", "reset", map[string]any{"num_qubits": 2})
	require.NoError(t, err)

	data, err := dispatch.Route(f, "synthesis", "compute", map[string]any{"mode": "probabilities"})
	require.NoError(t, err)
	assert.NotNil(t, data)
}

func TestRouteUnknownActionListsValidSet(t *testing.T) {
	_, err := dispatch.Route(newFacadeForRouter(t), "synthesis", "frobnicate", nil)
	require.Error(t, err)
}

func TestRouteNonReservedAgentFails(t *testing.T) {
	_, err := dispatch.Route(newFacadeForRouter(t), "security", "status", nil)
	require.Error(t, err)
}

func TestRouteBellStateAndMeasure(t *testing.T) {
	f := newFacadeForRouter(t)
	_, err := dispatch.Route(f, "true_synthesis", "bell_state", map[string]any{"pair_type": "phi_plus"})
	require.NoError(t, err)

	data, err := dispatch.Route(f, "true_synthesis", "measure", map[string]any{"shots": 50})
	require.NoError(t, err)
	res, ok := data.(facade.MeasureShotsResult)
	require.True(t, ok)
	assert.NotNil(t, res.Counts)
	assert.Equal(t, 50, res.Shots)
	assert.NotEmpty(t, res.MostLikely)
}

func TestRouteSaveLoadDeleteState(t *testing.T) {
	f := newFacadeForRouter(t)
	_, err := dispatch.Route(f, "true_synthesis", "initialize", map[string]any{"num_qubits": 2, "initial_state": "plus"})
	require.NoError(t, err)

	_, err = dispatch.Route(f, "true_synthesis", "save_state", map[string]any{"name": "x"})
	require.NoError(t, err)

	_, err = dispatch.Route(f, "true_synthesis", "load_state", map[string]any{"name": "x"})
	require.NoError(t, err)

	data, err := dispatch.Route(f, "true_synthesis", "delete_state", map[string]any{"name": "x"})
	require.NoError(t, err)
	m, ok := data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, m["deleted"])
}

func TestRouteSaveStateMissingNameFails(t *testing.T) {
	f := newFacadeForRouter(t)
	_, err := dispatch.Route(f, "true_synthesis", "save_state", map[string]any{})
	require.Error(t, err)
}
