package workflow

import (
	"context"
	"fmt"

	"github.com/crenwick/loom/agent"
	"github.com/crenwick/loom/logging"
)

// EvaluatorOptions configures an Evaluator.
type EvaluatorOptions struct {
	// MinRating is the rating at which a candidate is accepted. Defaults to
	// RatingExcellent.
	MinRating Rating
	// MaxRefinements bounds how many times a rejected candidate may be
	// regenerated, so the generator runs at most MaxRefinements+1 times.
	// Defaults to 3.
	MaxRefinements int
	// Logger for per-attempt diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Evaluator runs a generate/evaluate/refine loop. The generator produces a
// candidate, the evaluator rates it on the ordinal Rating scale with
// feedback, and the candidate is accepted once its rating reaches the
// threshold. Spending the refinement budget returns the last candidate with
// its sub-threshold rating as a soft termination, not a failure.
type Evaluator struct {
	name           string
	generator      string
	evaluator      string
	minRating      Rating
	maxRefinements int
	logger         logging.Logger
}

// NewEvaluator creates a generate/evaluate/refine workflow.
func NewEvaluator(name, generator, evaluator string, optFns ...func(o *EvaluatorOptions)) *Evaluator {
	opts := EvaluatorOptions{
		MinRating:      RatingExcellent,
		MaxRefinements: 3,
		Logger:         logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Evaluator{
		name:           name,
		generator:      generator,
		evaluator:      evaluator,
		minRating:      opts.MinRating,
		maxRefinements: opts.MaxRefinements,
		logger:         opts.Logger,
	}
}

// Name implements Spec.
func (e *Evaluator) Name() string { return e.name }

// Pattern implements Spec.
func (e *Evaluator) Pattern() Pattern { return PatternEvaluator }

// Validate implements Spec.
func (e *Evaluator) Validate(agents *agent.Registry) error {
	if e.maxRefinements < 0 {
		return fmt.Errorf("max refinements must not be negative, got %d", e.maxRefinements)
	}
	if e.minRating < RatingPoor || e.minRating > RatingExcellent {
		return fmt.Errorf("invalid minimum rating %d", e.minRating)
	}
	return requireAgents(agents, e.generator, e.evaluator)
}

// Execute implements Spec.
func (e *Evaluator) Execute(ctx context.Context, agents *agent.Registry, input string) (*Outcome, error) {
	generatorAg, err := resolve(agents, e.generator)
	if err != nil {
		return nil, &ExecutionError{Workflow: e.name, Stage: "refinement 0 (generator)", Err: err}
	}
	evaluatorAg, err := resolve(agents, e.evaluator)
	if err != nil {
		return nil, &ExecutionError{Workflow: e.name, Stage: "refinement 0 (evaluator)", Err: err}
	}

	genInput := input
	for refinement := 0; ; refinement++ {
		candidate, err := generatorAg.Process(ctx, genInput)
		if err != nil {
			return nil, &ExecutionError{Workflow: e.name, Stage: evaluatorStage(refinement, "generator"), Err: err}
		}

		feedback, err := evaluatorAg.Process(ctx, fmt.Sprintf(
			"Original request:\n%s\n\nCandidate response:\n%s\n\nRate the candidate as EXCELLENT, GOOD, FAIR or POOR and give specific feedback.",
			input, candidate))
		if err != nil {
			return nil, &ExecutionError{Workflow: e.name, Stage: evaluatorStage(refinement, "evaluator"), Err: err}
		}

		rating := ExtractRating(feedback)
		if rating >= e.minRating {
			e.logger.Debug("candidate accepted",
				"workflow", e.name, "rating", rating.String(), "attempts", refinement+1)
			return &Outcome{Text: candidate, Rating: rating, Attempts: refinement + 1}, nil
		}
		if refinement >= e.maxRefinements {
			e.logger.Debug("refinement budget spent",
				"workflow", e.name, "rating", rating.String(), "attempts", refinement+1)
			return &Outcome{Text: candidate, Rating: rating, Attempts: refinement + 1}, nil
		}

		genInput = fmt.Sprintf("%s\n\nYour previous response was rated %s. Revise it using this feedback:\n%s",
			input, rating, feedback)
	}
}

func evaluatorStage(refinement int, role string) string {
	return fmt.Sprintf("refinement %d (%s)", refinement, role)
}
