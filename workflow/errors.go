package workflow

import (
	"errors"
	"fmt"
)

// ErrUnsupportedOperation is returned for operations the orchestration core
// deliberately does not implement, such as cancelling an in-flight execution.
var ErrUnsupportedOperation = errors.New("operation not supported")

// UnknownWorkflowError indicates a lookup for a workflow name that is not
// registered. The dispatcher recovers from it by falling back to the default
// workflow; it only surfaces when no fallback exists.
type UnknownWorkflowError struct {
	Name string
}

func (e *UnknownWorkflowError) Error() string {
	return fmt.Sprintf("unknown workflow %q", e.Name)
}

// ExecutionError reports that a workflow executor aborted. Stage pinpoints
// where inside the pattern the failure happened (stage index, iteration and
// phase, or refinement and role).
type ExecutionError struct {
	Workflow string
	Stage    string
	Err      error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("workflow %q failed at %s: %v", e.Workflow, e.Stage, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
