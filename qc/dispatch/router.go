package dispatch

import (
	"sort"

	"github.com/kegliz/synthesis/qc/facade"
	"github.com/kegliz/synthesis/qc/qerr"
)

// synthesisActions and trueSynthesisActions are the closed vocabularies
// for the two reserved engine-facade agent names. An action outside
// these sets fails with InvalidArgument listing the valid set.
var synthesisActions = map[string]bool{
	"status": true, "reset": true, "compute": true, "get_state": true, "schrodinger": true,
}

var trueSynthesisActions = map[string]bool{
	"status": true, "storage": true, "list_states": true, "save_state": true,
	"load_state": true, "delete_state": true, "initialize": true, "measure": true,
	"state_info": true, "bell_state": true, "ghz_state": true, "schrodinger": true,
}

// IsReservedAgent reports whether name is one of the two engine-facade
// agent names the router (rather than the external registry) handles.
func IsReservedAgent(name string) bool {
	return name == "synthesis" || name == "true_synthesis"
}

// Route validates kwargs against the closed action vocabulary for the
// named reserved agent and dispatches to the matching facade method.
func Route(f *facade.Facade, agent, action string, kwargs map[string]any) (any, error) {
	switch agent {
	case "synthesis":
		if !synthesisActions[action] {
			return nil, unknownAction(agent, action, synthesisActions)
		}
		return routeSynthesis(f, action, kwargs)
	case "true_synthesis":
		if !trueSynthesisActions[action] {
			return nil, unknownAction(agent, action, trueSynthesisActions)
		}
		return routeTrueSynthesis(f, action, kwargs)
	default:
		return nil, qerr.New(qerr.InvalidArgument, "dispatch: %q is not a reserved engine-facade agent", agent)
	}
}

func unknownAction(agent, action string, valid map[string]bool) error {
	names := make([]string, 0, len(valid))
	for k := range valid {
		names = append(names, k)
	}
	sort.Strings(names)
	return qerr.New(qerr.InvalidArgument, "dispatch: unknown action %q for agent %q, valid actions: %v", action, agent, names)
}

func routeSynthesis(f *facade.Facade, action string, kwargs map[string]any) (any, error) {
	switch action {
	case "status":
		return f.Status(), nil
	case "reset":
		n, err := intArg(kwargs, "num_qubits", 1)
		if err != nil {
			return nil, err
		}
		return nil, f.Reset(n)
	case "compute":
		mode, _ := stringArg(kwargs, "mode", "probabilities")
		shots, err := intArg(kwargs, "shots", 1024)
		if err != nil {
			return nil, err
		}
		return f.Compute(mode, shots)
	case "get_state":
		return f.GetState()
	case "schrodinger":
		return f.SchrodingerCapability(), nil
	}
	panic("unreachable: action already validated against synthesisActions")
}

func routeTrueSynthesis(f *facade.Facade, action string, kwargs map[string]any) (any, error) {
	switch action {
	case "status":
		return f.TrueStatus()
	case "storage":
		return f.Storage()
	case "list_states":
		return f.ListStates()
	case "save_state":
		name, err := requireString(kwargs, "name")
		if err != nil {
			return nil, err
		}
		desc, _ := stringArg(kwargs, "description", "")
		return nil, f.SaveState(name, desc)
	case "load_state":
		name, err := requireString(kwargs, "name")
		if err != nil {
			return nil, err
		}
		return nil, f.LoadState(name)
	case "delete_state":
		name, err := requireString(kwargs, "name")
		if err != nil {
			return nil, err
		}
		existed, err := f.DeleteState(name)
		return map[string]any{"deleted": existed}, err
	case "initialize":
		n, err := intArg(kwargs, "num_qubits", 1)
		if err != nil {
			return nil, err
		}
		initial, _ := stringArg(kwargs, "initial_state", "zero")
		return nil, f.Initialize(n, initial)
	case "measure":
		shots, err := intArg(kwargs, "shots", 1024)
		if err != nil {
			return nil, err
		}
		collapse, err := boolArg(kwargs, "collapse", true)
		if err != nil {
			return nil, err
		}
		return f.MeasureShots(shots, collapse)
	case "state_info":
		return f.StateInfo()
	case "bell_state":
		pairType, _ := stringArg(kwargs, "pair_type", "phi_plus")
		return nil, f.BellState(pairType)
	case "ghz_state":
		n, err := intArg(kwargs, "num_qubits", 3)
		if err != nil {
			return nil, err
		}
		return nil, f.GHZState(n)
	case "schrodinger":
		return f.TrueSchrodingerCapability(), nil
	}
	panic("unreachable: action already validated against trueSynthesisActions")
}

// ---- kwargs extraction -------------------------------------------------

func intArg(kwargs map[string]any, key string, def int) (int, error) {
	v, ok := kwargs[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, qerr.New(qerr.InvalidArgument, "dispatch: argument %q must be an integer, got %T", key, v)
	}
}

func boolArg(kwargs map[string]any, key string, def bool) (bool, error) {
	v, ok := kwargs[key]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, qerr.New(qerr.InvalidArgument, "dispatch: argument %q must be a boolean, got %T", key, v)
	}
	return b, nil
}

func stringArg(kwargs map[string]any, key string, def string) (string, error) {
	v, ok := kwargs[key]
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", qerr.New(qerr.InvalidArgument, "dispatch: argument %q must be a string, got %T", key, v)
	}
	return s, nil
}

func requireString(kwargs map[string]any, key string) (string, error) {
	v, ok := kwargs[key]
	if !ok {
		return "", qerr.New(qerr.InvalidArgument, "dispatch: missing required argument %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", qerr.New(qerr.InvalidArgument, "dispatch: argument %q must be a string, got %T", key, v)
	}
	return s, nil
}
