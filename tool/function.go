package tool

import (
	"context"
	"fmt"
)

// FunctionTool is a generic adapter that exposes a plain Go function as a
// tool.
//
// Responsibilities:
//   - Holds a lightweight JSON-Schema-like parameter specification
//   - Checks required arguments before execution
//   - Normalizes error handling so callers receive *Error with consistent
//     codes (custom codes are preserved if the function returns *Error
//     directly)
//
// A FunctionTool has no internal mutable state after construction and is safe
// for concurrent use by multiple goroutines.
type FunctionTool struct {
	name        string
	description string
	parameters  map[string]any
	fn          func(ctx context.Context, args map[string]any) (any, error)
}

// NewFunctionTool constructs a FunctionTool from an explicit schema and
// function.
//
// Example:
//
//	sumTool := NewFunctionTool(
//	  "calculate_sum",
//	  "Calculate the sum of two numbers",
//	  map[string]any{
//	    "type": "object",
//	    "properties": map[string]any{
//	      "a": map[string]any{"type": "number"},
//	      "b": map[string]any{"type": "number"},
//	    },
//	    "required": []string{"a", "b"},
//	  },
//	  func(ctx context.Context, args map[string]any) (any, error) {
//	    return args["a"].(float64) + args["b"].(float64), nil
//	  },
//	)
func NewFunctionTool(
	name, description string,
	parameters map[string]any,
	fn func(ctx context.Context, args map[string]any) (any, error),
) *FunctionTool {
	return &FunctionTool{
		name:        name,
		description: description,
		parameters:  parameters,
		fn:          fn,
	}
}

// Name implements Tool.
func (t *FunctionTool) Name() string { return t.name }

// Description implements Tool.
func (t *FunctionTool) Description() string { return t.description }

// Parameters implements Tool.
func (t *FunctionTool) Parameters() map[string]any { return t.parameters }

// Call implements Tool. Missing required arguments yield a validation error
// without invoking the wrapped function.
func (t *FunctionTool) Call(ctx context.Context, args map[string]any) (any, error) {
	if err := t.checkRequired(args); err != nil {
		return nil, err
	}

	result, err := t.fn(ctx, args)
	if err != nil {
		if toolErr, ok := err.(*Error); ok {
			return nil, toolErr
		}
		return nil, &Error{Tool: t.name, Code: CodeExecution, Message: err.Error()}
	}
	return result, nil
}

func (t *FunctionTool) checkRequired(args map[string]any) error {
	required, ok := t.parameters["required"]
	if !ok {
		return nil
	}

	var keys []string
	switch req := required.(type) {
	case []string:
		keys = req
	case []any:
		for _, r := range req {
			if s, ok := r.(string); ok {
				keys = append(keys, s)
			}
		}
	}

	for _, key := range keys {
		if _, ok := args[key]; !ok {
			return &Error{
				Tool:    t.name,
				Code:    CodeValidation,
				Message: fmt.Sprintf("missing required argument %q", key),
			}
		}
	}
	return nil
}
