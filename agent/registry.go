package agent

import "fmt"

// Registry maps agent identifiers to Agent instances. It is populated during
// startup and read-only afterwards, so lookups need no locking. Registration
// order is preserved for deterministic iteration.
type Registry struct {
	agents map[string]Agent
	order  []string
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{agents: make(map[string]Agent)}
}

// Register adds an agent under its name. Duplicate names are rejected.
func (r *Registry) Register(a Agent) error {
	name := a.Name()
	if name == "" {
		return fmt.Errorf("agent has empty name")
	}
	if _, exists := r.agents[name]; exists {
		return fmt.Errorf("agent %q already registered", name)
	}
	r.agents[name] = a
	r.order = append(r.order, name)
	return nil
}

// Get returns the agent registered under name.
func (r *Registry) Get(name string) (Agent, bool) {
	a, ok := r.agents[name]
	return a, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.agents[name]
	return ok
}

// Names returns all registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len reports the number of registered agents.
func (r *Registry) Len() int { return len(r.order) }
