package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/crenwick/loom/agent"
	"github.com/crenwick/loom/logging"
)

// ApprovalToken is the marker the reviewer leads with to signal completion.
const ApprovalToken = "APPROVED"

// PlannerOptions configures a Planner.
type PlannerOptions struct {
	// MaxIterations bounds the plan/execute/review loop. Defaults to 3.
	MaxIterations int
	// Logger for per-iteration diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Planner runs an iterative plan/execute/review loop. Each iteration the
// planner agent decomposes the task (folding in reviewer feedback from the
// previous round), the executor agent performs the planned step, and the
// reviewer agent assesses the result. The loop ends when the reviewer
// approves or when the iteration budget is spent; exhaustion is a soft
// termination that returns the latest artifact and verdict, not a failure.
type Planner struct {
	name          string
	planner       string
	executor      string
	reviewer      string
	maxIterations int
	logger        logging.Logger
}

// NewPlanner creates an iterative planning workflow over three agent roles.
func NewPlanner(name, planner, executor, reviewer string, optFns ...func(o *PlannerOptions)) *Planner {
	opts := PlannerOptions{
		MaxIterations: 3,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Planner{
		name:          name,
		planner:       planner,
		executor:      executor,
		reviewer:      reviewer,
		maxIterations: opts.MaxIterations,
		logger:        opts.Logger,
	}
}

// Name implements Spec.
func (p *Planner) Name() string { return p.name }

// Pattern implements Spec.
func (p *Planner) Pattern() Pattern { return PatternPlanner }

// Validate implements Spec.
func (p *Planner) Validate(agents *agent.Registry) error {
	if p.maxIterations < 1 {
		return fmt.Errorf("max iterations must be at least 1, got %d", p.maxIterations)
	}
	return requireAgents(agents, p.planner, p.executor, p.reviewer)
}

// Execute implements Spec.
func (p *Planner) Execute(ctx context.Context, agents *agent.Registry, input string) (*Outcome, error) {
	plannerAg, err := resolve(agents, p.planner)
	if err != nil {
		return nil, &ExecutionError{Workflow: p.name, Stage: "iteration 1 (plan)", Err: err}
	}
	executorAg, err := resolve(agents, p.executor)
	if err != nil {
		return nil, &ExecutionError{Workflow: p.name, Stage: "iteration 1 (execute)", Err: err}
	}
	reviewerAg, err := resolve(agents, p.reviewer)
	if err != nil {
		return nil, &ExecutionError{Workflow: p.name, Stage: "iteration 1 (review)", Err: err}
	}

	var artifact, verdict, feedback string
	for iter := 1; iter <= p.maxIterations; iter++ {
		plan, err := plannerAg.Process(ctx, p.planInput(input, feedback))
		if err != nil {
			return nil, &ExecutionError{Workflow: p.name, Stage: plannerStage(iter, "plan"), Err: err}
		}

		artifact, err = executorAg.Process(ctx, fmt.Sprintf("Task:\n%s\n\nPlanned step:\n%s", input, plan))
		if err != nil {
			return nil, &ExecutionError{Workflow: p.name, Stage: plannerStage(iter, "execute"), Err: err}
		}

		verdict, err = reviewerAg.Process(ctx, fmt.Sprintf(
			"Requirement:\n%s\n\nWork produced:\n%s\n\nBegin your reply with %s if the work satisfies the requirement. Otherwise give concrete feedback for the next planning round.",
			input, artifact, ApprovalToken))
		if err != nil {
			return nil, &ExecutionError{Workflow: p.name, Stage: plannerStage(iter, "review"), Err: err}
		}

		if approved(verdict) {
			p.logger.Debug("reviewer approved", "workflow", p.name, "iteration", iter)
			return &Outcome{Text: artifact, Verdict: verdict, Approved: true, Attempts: iter}, nil
		}
		feedback = verdict
	}

	p.logger.Debug("iteration budget spent", "workflow", p.name, "iterations", p.maxIterations)
	return &Outcome{Text: artifact, Verdict: verdict, Attempts: p.maxIterations}, nil
}

func (p *Planner) planInput(input, feedback string) string {
	if feedback == "" {
		return input
	}
	return fmt.Sprintf("%s\n\nReviewer feedback from the previous iteration:\n%s", input, feedback)
}

func plannerStage(iter int, phase string) string {
	return fmt.Sprintf("iteration %d (%s)", iter, phase)
}

func approved(verdict string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(verdict)), ApprovalToken)
}
