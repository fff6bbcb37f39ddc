package workflow

import (
	"fmt"

	"github.com/crenwick/loom/agent"
)

// Registry maps workflow names to validated Specs. It is populated once at
// startup and read-only afterwards, so lookups need no locking. Registration
// order is preserved and determines the fallback returned by First.
type Registry struct {
	agents *agent.Registry
	specs  map[string]Spec
	order  []string
}

// NewRegistry creates an empty workflow registry that validates registered
// specs against the given agent registry.
func NewRegistry(agents *agent.Registry) *Registry {
	return &Registry{
		agents: agents,
		specs:  make(map[string]Spec),
	}
}

// Register adds specs, validating each one eagerly. Names must be unique and
// non-empty, and every agent id a spec references must already be registered.
// Registration stops at the first invalid spec.
func (r *Registry) Register(specs ...Spec) error {
	for _, spec := range specs {
		name := spec.Name()
		if name == "" {
			return fmt.Errorf("workflow name must not be empty")
		}
		if _, exists := r.specs[name]; exists {
			return fmt.Errorf("workflow %q already registered", name)
		}
		if err := spec.Validate(r.agents); err != nil {
			return fmt.Errorf("workflow %q: %w", name, err)
		}
		r.specs[name] = spec
		r.order = append(r.order, name)
	}
	return nil
}

// Get returns the spec registered under name.
func (r *Registry) Get(name string) (Spec, bool) {
	spec, ok := r.specs[name]
	return spec, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.specs[name]
	return ok
}

// First returns the earliest registered spec, or false when the registry is
// empty. It is the deterministic last-resort fallback for dispatching.
func (r *Registry) First() (Spec, bool) {
	if len(r.order) == 0 {
		return nil, false
	}
	return r.specs[r.order[0]], true
}

// Names returns all workflow names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of registered workflows.
func (r *Registry) Len() int { return len(r.specs) }
