// Package dispatch resolves inbound messages to workflows and executes them.
//
// The Dispatcher is the single point where executor failures are caught and
// converted into caller-visible results; no failure escapes it as a crash of
// the serving process.
package dispatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/crenwick/loom/agent"
	"github.com/crenwick/loom/internal/util"
	"github.com/crenwick/loom/logging"
	"github.com/crenwick/loom/runtime"
	"github.com/crenwick/loom/workflow"
)

// messagePrefix marks an inbound message that names its target workflow.
const messagePrefix = "workflow:"

// Request is a parsed inbound message. Workflow is empty when the message
// carried no routing prefix.
type Request struct {
	Workflow string
	Message  string
}

// ParseMessage applies the "workflow:<name>|<rest>" routing convention. A
// message without the prefix, or with the prefix but no separator, targets
// the default workflow with the whole message as input.
func ParseMessage(message string) Request {
	trimmed := strings.TrimSpace(message)
	if strings.HasPrefix(trimmed, messagePrefix) {
		if head, rest, ok := strings.Cut(trimmed, "|"); ok {
			return Request{
				Workflow: strings.TrimSpace(strings.TrimPrefix(head, messagePrefix)),
				Message:  strings.TrimSpace(rest),
			}
		}
	}
	return Request{Message: trimmed}
}

// Result is the outcome of a dispatched execution. Err is non-nil for
// failures; Workflow names the workflow that ran (or was resolved) either
// way.
type Result struct {
	Workflow string
	Text     string
	Err      error
}

// Failed reports whether the execution failed.
func (r Result) Failed() bool { return r.Err != nil }

// ErrorText renders a failure in the caller-visible form.
func (r Result) ErrorText() string {
	return fmt.Sprintf("Error in %s: %v", r.Workflow, r.Err)
}

// Options configures a Dispatcher.
type Options struct {
	// DefaultWorkflow receives messages without a routing prefix and
	// messages naming an unknown workflow. When empty or itself unknown,
	// the earliest registered workflow is the fallback.
	DefaultWorkflow string
	// Logger for per-dispatch diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Dispatcher routes messages to registered workflows. It starts the shared
// runtime lazily on the first dispatch and guarantees executor failures are
// returned as Results rather than propagated.
type Dispatcher struct {
	agents    *agent.Registry
	workflows *workflow.Registry
	rt        *runtime.Runtime
	defaultWf string
	logger    logging.Logger
}

// New creates a Dispatcher over the given registries and runtime.
func New(agents *agent.Registry, workflows *workflow.Registry, rt *runtime.Runtime, optFns ...func(o *Options)) *Dispatcher {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Dispatcher{
		agents:    agents,
		workflows: workflows,
		rt:        rt,
		defaultWf: opts.DefaultWorkflow,
		logger:    opts.Logger,
	}
}

// Execute parses the message, resolves its workflow and runs it. The runtime
// is started on first use; Start is race-free and idempotent so concurrent
// first dispatches share one runtime.
func (d *Dispatcher) Execute(ctx context.Context, message string) Result {
	req := ParseMessage(message)

	spec, err := d.resolve(req.Workflow)
	if err != nil {
		return Result{Workflow: req.Workflow, Err: err}
	}

	if err := d.rt.Start(ctx); err != nil {
		return Result{Workflow: spec.Name(), Err: err}
	}

	start := time.Now()
	dispatchID := util.NewID()
	d.logger.Info("dispatching",
		"dispatch_id", dispatchID, "workflow", spec.Name(), "pattern", string(spec.Pattern()))

	outcome, err := spec.Execute(ctx, d.agents, req.Message)
	if err != nil {
		d.logger.Warn("workflow failed",
			"dispatch_id", dispatchID, "workflow", spec.Name(), "error", err, "duration", time.Since(start))
		return Result{Workflow: spec.Name(), Err: err}
	}

	d.logger.Info("workflow completed",
		"dispatch_id", dispatchID, "workflow", spec.Name(), "duration", time.Since(start))
	return Result{Workflow: spec.Name(), Text: outcome.Text}
}

// Cancel always fails: mid-flight cancellation of executors is not
// implemented, and a silent no-op would mislead the caller.
func (d *Dispatcher) Cancel(ctx context.Context) error {
	return fmt.Errorf("cancel: %w", workflow.ErrUnsupportedOperation)
}

// DefaultWorkflow returns the name of the workflow unrouted messages
// resolve to.
func (d *Dispatcher) DefaultWorkflow() (workflow.Spec, error) {
	return d.resolve("")
}

// resolve maps a requested workflow name to a registered spec: the name
// itself if registered, else the configured default, else the earliest
// registered workflow. An empty registry is the only unrecoverable case.
func (d *Dispatcher) resolve(name string) (workflow.Spec, error) {
	if name != "" {
		if spec, ok := d.workflows.Get(name); ok {
			return spec, nil
		}
		d.logger.Warn("unknown workflow requested, falling back", "workflow", name, "default", d.defaultWf)
	}
	if d.defaultWf != "" {
		if spec, ok := d.workflows.Get(d.defaultWf); ok {
			return spec, nil
		}
	}
	if spec, ok := d.workflows.First(); ok {
		return spec, nil
	}
	if name == "" {
		name = d.defaultWf
	}
	return nil, &workflow.UnknownWorkflowError{Name: name}
}
