package agent

import (
	"context"
	"errors"
	"fmt"
)

// Agent is the core capability unit: it accepts text, produces text, and may
// fail. Implementations must be safe for concurrent use; a single agent can
// serve many requests at once.
type Agent interface {
	// Name returns the unique identifier for this agent.
	Name() string

	// Process runs the capability on the input and returns its output.
	// Blocking work (model calls, tool calls) must respect ctx.
	Process(ctx context.Context, input string) (string, error)
}

// Describer is an optional discovery interface kept separate from the hot
// path. Surfaces like the agent card use it when present.
type Describer interface {
	Describe() Description
}

// Description carries discovery metadata about an agent.
type Description struct {
	Name  string   `json:"name"`
	Role  string   `json:"role"`  // Short summary of what the agent does
	Model string   `json:"model"` // Backing model name, if any
	Tools []string `json:"tools,omitempty"`
}

// Error reports a failed agent invocation, carrying the agent id and the
// upstream cause.
type Error struct {
	AgentID string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("agent %s failed: %v", e.AgentID, e.Err)
}

// Unwrap exposes the upstream cause for errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }

// WrapError tags err with the failing agent id. Errors already tagged are
// returned unchanged so nesting invocations don't stack tags.
func WrapError(agentID string, err error) error {
	if err == nil {
		return nil
	}
	var agentErr *Error
	if errors.As(err, &agentErr) {
		return err
	}
	return &Error{AgentID: agentID, Err: err}
}
