package workflow

import (
	"context"
	"fmt"

	"github.com/crenwick/loom/agent"
	"github.com/crenwick/loom/logging"
)

// ChainOptions configures a Chain.
type ChainOptions struct {
	// Logger for per-stage diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Chain runs its agents strictly in sequence, feeding each agent's output to
// the next. The first failing stage aborts the chain; later stages are never
// invoked.
type Chain struct {
	name     string
	sequence []string
	logger   logging.Logger
}

// NewChain creates a sequential workflow over the given agent ids.
func NewChain(name string, sequence []string, optFns ...func(o *ChainOptions)) *Chain {
	opts := ChainOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Chain{
		name:     name,
		sequence: append([]string(nil), sequence...),
		logger:   opts.Logger,
	}
}

// Name implements Spec.
func (c *Chain) Name() string { return c.name }

// Pattern implements Spec.
func (c *Chain) Pattern() Pattern { return PatternChain }

// Validate implements Spec.
func (c *Chain) Validate(agents *agent.Registry) error {
	if len(c.sequence) == 0 {
		return fmt.Errorf("sequence must not be empty")
	}
	return requireAgents(agents, c.sequence...)
}

// Execute implements Spec.
func (c *Chain) Execute(ctx context.Context, agents *agent.Registry, input string) (*Outcome, error) {
	text := input
	for i, id := range c.sequence {
		ag, err := resolve(agents, id)
		if err != nil {
			return nil, &ExecutionError{Workflow: c.name, Stage: chainStage(i, id), Err: err}
		}

		c.logger.Debug("chain stage starting", "workflow", c.name, "stage", i+1, "agent", id)
		out, err := ag.Process(ctx, text)
		if err != nil {
			return nil, &ExecutionError{Workflow: c.name, Stage: chainStage(i, id), Err: err}
		}
		text = out
	}
	return &Outcome{Text: text}, nil
}

func chainStage(i int, id string) string {
	return fmt.Sprintf("stage %d (%s)", i+1, id)
}
