// Package tool implements the function calling subsystem that lets agents
// invoke structured capabilities (HTTP fetches, filesystem access,
// computations) with validated arguments and consistent error handling.
package tool

import (
	"context"
	"fmt"
)

// Tool defines the interface for extending agent capabilities with external
// functions.
//
// Tool implementations should:
//   - Provide clear, descriptive names and descriptions
//   - Define a proper JSON schema for parameters
//   - Handle errors gracefully
//   - Be safe for concurrent use
type Tool interface {
	// Name returns the unique identifier for this tool
	// (snake_case recommended).
	Name() string

	// Description returns a human-readable description of what this tool
	// does. It is provided to the model to help it decide when to call the
	// tool.
	Description() string

	// Parameters returns a JSON schema describing the expected input format.
	Parameters() map[string]any

	// Call executes the tool with arguments parsed from the model's JSON
	// payload.
	Call(ctx context.Context, args map[string]any) (any, error)
}

// Error represents a failure during tool execution, categorized by code so
// callers can distinguish bad arguments from runtime failures.
type Error struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("tool %s failed [%s]: %s", e.Tool, e.Code, e.Message)
}

// Error codes used by the built-in tools.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeExecution  = "EXECUTION_ERROR"
)

// stringArg extracts a required string argument from the parsed payload.
func stringArg(tool string, args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", &Error{Tool: tool, Code: CodeValidation, Message: fmt.Sprintf("missing required argument %q", key)}
	}
	s, ok := v.(string)
	if !ok {
		return "", &Error{Tool: tool, Code: CodeValidation, Message: fmt.Sprintf("argument %q must be a string", key)}
	}
	return s, nil
}
