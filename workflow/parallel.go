package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/crenwick/loom/agent"
	"github.com/crenwick/loom/logging"
)

// ParallelOptions configures a Parallel.
type ParallelOptions struct {
	// Logger for fan-out diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Parallel fans the input out to all fan-out agents concurrently, joins on
// a barrier, then feeds the aggregated outputs to the fan-in agent. The
// barrier is fail fast: the first failure cancels the remaining in-flight
// invocations and the fan-in agent is not invoked.
//
// Aggregation is deterministic regardless of completion order: outputs are
// assembled in declared fan-out order, each labeled with its producing agent
// id so the fan-in agent can attribute them.
type Parallel struct {
	name   string
	fanOut []string
	fanIn  string
	logger logging.Logger
}

// NewParallel creates a fan-out/fan-in workflow.
func NewParallel(name string, fanOut []string, fanIn string, optFns ...func(o *ParallelOptions)) *Parallel {
	opts := ParallelOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Parallel{
		name:   name,
		fanOut: append([]string(nil), fanOut...),
		fanIn:  fanIn,
		logger: opts.Logger,
	}
}

// Name implements Spec.
func (p *Parallel) Name() string { return p.name }

// Pattern implements Spec.
func (p *Parallel) Pattern() Pattern { return PatternParallel }

// Validate implements Spec.
func (p *Parallel) Validate(agents *agent.Registry) error {
	if len(p.fanOut) == 0 {
		return fmt.Errorf("fan-out must not be empty")
	}
	seen := make(map[string]struct{}, len(p.fanOut))
	for _, id := range p.fanOut {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate fan-out agent %q", id)
		}
		seen[id] = struct{}{}
	}
	if p.fanIn == "" {
		return fmt.Errorf("fan-in agent must be set")
	}
	return requireAgents(agents, append(append([]string(nil), p.fanOut...), p.fanIn)...)
}

// Execute implements Spec.
func (p *Parallel) Execute(ctx context.Context, agents *agent.Registry, input string) (*Outcome, error) {
	results := make([]string, len(p.fanOut))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range p.fanOut {
		g.Go(func() error {
			ag, err := resolve(agents, id)
			if err != nil {
				return &ExecutionError{Workflow: p.name, Stage: fmt.Sprintf("fan-out (%s)", id), Err: err}
			}
			out, err := ag.Process(gctx, input)
			if err != nil {
				return &ExecutionError{Workflow: p.name, Stage: fmt.Sprintf("fan-out (%s)", id), Err: err}
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var execErr *ExecutionError
		if errors.As(err, &execErr) {
			return nil, err
		}
		return nil, &ExecutionError{Workflow: p.name, Stage: "fan-out", Err: err}
	}

	p.logger.Debug("fan-out complete", "workflow", p.name, "branches", len(p.fanOut))

	fanIn, err := resolve(agents, p.fanIn)
	if err != nil {
		return nil, &ExecutionError{Workflow: p.name, Stage: fmt.Sprintf("fan-in (%s)", p.fanIn), Err: err}
	}
	out, err := fanIn.Process(ctx, p.aggregate(results))
	if err != nil {
		return nil, &ExecutionError{Workflow: p.name, Stage: fmt.Sprintf("fan-in (%s)", p.fanIn), Err: err}
	}
	return &Outcome{Text: out}, nil
}

// aggregate assembles the fan-out outputs in declared order, labeling each
// with its producing agent id.
func (p *Parallel) aggregate(results []string) string {
	var b strings.Builder
	for i, id := range p.fanOut {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%s]\n%s", id, results[i])
	}
	return b.String()
}
