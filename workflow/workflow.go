package workflow

import (
	"context"
	"fmt"

	"github.com/crenwick/loom/agent"
)

// Pattern identifies one of the supported composition patterns.
type Pattern string

// Supported patterns.
const (
	PatternChain     Pattern = "chain"
	PatternParallel  Pattern = "parallel"
	PatternRouter    Pattern = "router"
	PatternPlanner   Pattern = "planner"
	PatternEvaluator Pattern = "evaluator"
)

// Spec is a named, immutable workflow description. Specs are validated once
// against the agent registry when registered and never mutated afterwards,
// so Execute may assume every referenced agent id resolves.
type Spec interface {
	// Name returns the workflow's unique registry name.
	Name() string

	// Pattern returns the composition pattern this spec implements.
	Pattern() Pattern

	// Validate checks the spec's structural invariants and that every
	// referenced agent id is registered.
	Validate(agents *agent.Registry) error

	// Execute runs the pattern over the input. Agent failures surface as
	// an *ExecutionError; budget exhaustion in the loop-based patterns is
	// a soft termination reported through the Outcome, not an error.
	Execute(ctx context.Context, agents *agent.Registry, input string) (*Outcome, error)
}

// Outcome is the successful result of a workflow execution. Text is always
// set; the remaining fields are populated by the loop-based patterns.
type Outcome struct {
	// Text is the workflow's output.
	Text string

	// Verdict is the latest reviewer response (Planner only).
	Verdict string

	// Approved reports whether the reviewer accepted the result before the
	// iteration budget ran out (Planner only).
	Approved bool

	// Rating is the final evaluator rating (Evaluator only).
	Rating Rating

	// Attempts counts full iterations (Planner) or generation attempts
	// (Evaluator) performed.
	Attempts int
}

// resolve looks up an agent id, wrapping the miss in a descriptive error.
// Registration-time validation makes a miss here a programming error, but
// executors still fail cleanly instead of panicking.
func resolve(agents *agent.Registry, id string) (agent.Agent, error) {
	ag, ok := agents.Get(id)
	if !ok {
		return nil, fmt.Errorf("agent %q not registered", id)
	}
	return ag, nil
}

// requireAgents validates that every id is registered.
func requireAgents(agents *agent.Registry, ids ...string) error {
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("empty agent id")
		}
		if !agents.Has(id) {
			return fmt.Errorf("agent %q not registered", id)
		}
	}
	return nil
}
