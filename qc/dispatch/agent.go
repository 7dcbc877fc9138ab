package dispatch

import "github.com/kegliz/synthesis/qc/qerr"

// ExternalAgent is anything dispatchable that is not one of the two
// reserved engine-facade names. Real deployments would back this with
// provider adapters, hardware probes, and the like; per spec.md's
// Non-goals those live outside this workbench, so only illustrative
// stubs are registered here.
type ExternalAgent interface {
	Dispatch(action string, kwargs map[string]any) (any, error)
}

// Registry looks up an ExternalAgent by name.
type Registry interface {
	Lookup(name string) (ExternalAgent, bool)
}

// StubRegistry is a fixed, in-memory registry of illustrative external
// agents that return static capability metadata only — no real
// networked hardware execution, consistent with spec.md's Non-goals.
type StubRegistry struct {
	agents map[string]ExternalAgent
}

// NewStubRegistry builds the default registry: security, telemetry and
// hardware stub agents.
func NewStubRegistry() *StubRegistry {
	return &StubRegistry{
		agents: map[string]ExternalAgent{
			"security":  capabilityAgent{name: "security", capabilities: []string{"status"}},
			"telemetry": capabilityAgent{name: "telemetry", capabilities: []string{"status"}},
			"hardware":  capabilityAgent{name: "hardware", capabilities: []string{"status"}},
		},
	}
}

// Lookup implements Registry.
func (r *StubRegistry) Lookup(name string) (ExternalAgent, bool) {
	a, ok := r.agents[name]
	return a, ok
}

// capabilityAgent answers "status" with static metadata and rejects
// everything else — it exists to give the dispatch path a non-reserved
// agent to exercise, not to simulate real external functionality.
type capabilityAgent struct {
	name         string
	capabilities []string
}

func (a capabilityAgent) Dispatch(action string, kwargs map[string]any) (any, error) {
	if action != "status" {
		return nil, qerr.New(qerr.InvalidArgument, "dispatch: agent %q only supports action \"status\", got %q", a.name, action)
	}
	return map[string]any{
		"agent":        a.name,
		"capabilities": a.capabilities,
		"available":    false,
	}, nil
}
