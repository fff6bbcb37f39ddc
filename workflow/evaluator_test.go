package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ratingSequence returns an evaluator agent that emits the given ratings in
// order, then repeats the last one.
func ratingSequence(name string, ratings ...string) *fakeAgent {
	n := 0
	return &fakeAgent{
		name: name,
		fn: func(ctx context.Context, input string) (string, error) {
			r := ratings[min(n, len(ratings)-1)]
			n++
			return "Rating: " + r + ". Tighten the opening paragraph.", nil
		},
	}
}

func TestEvaluator_AcceptsOnThreshold(t *testing.T) {
	gen := echoAgent("gen")
	eval := ratingSequence("eval", "FAIR", "EXCELLENT")
	agents := newAgents(t, gen, eval)

	wf := NewEvaluator("refine", "gen", "eval", func(o *EvaluatorOptions) {
		o.MinRating = RatingExcellent
		o.MaxRefinements = 3
	})
	require.NoError(t, wf.Validate(agents))

	outcome, err := wf.Execute(context.Background(), agents, "write a post")
	require.NoError(t, err)
	assert.Equal(t, RatingExcellent, outcome.Rating)
	assert.Equal(t, 2, outcome.Attempts)
	assert.Equal(t, 2, gen.callCount(), "no further calls after an accepted rating")
	assert.Equal(t, 2, eval.callCount())
}

func TestEvaluator_CallBudget(t *testing.T) {
	gen := echoAgent("gen")
	eval := ratingSequence("eval", "POOR")
	agents := newAgents(t, gen, eval)

	wf := NewEvaluator("refine", "gen", "eval", func(o *EvaluatorOptions) {
		o.MinRating = RatingExcellent
		o.MaxRefinements = 2
	})

	outcome, err := wf.Execute(context.Background(), agents, "write a post")
	require.NoError(t, err, "budget exhaustion must not be an error")
	assert.Equal(t, RatingPoor, outcome.Rating)
	assert.Equal(t, 3, outcome.Attempts)
	assert.Equal(t, 3, gen.callCount(), "maxRefinements=2 allows at most 3 generator calls")
	assert.Equal(t, 3, eval.callCount())
}

func TestEvaluator_FirstCallAcceptable(t *testing.T) {
	gen := echoAgent("gen")
	eval := ratingSequence("eval", "GOOD")
	agents := newAgents(t, gen, eval)

	wf := NewEvaluator("refine", "gen", "eval", func(o *EvaluatorOptions) {
		o.MinRating = RatingGood
	})

	outcome, err := wf.Execute(context.Background(), agents, "write a post")
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Attempts)
	assert.Equal(t, 1, gen.callCount())
}

func TestEvaluator_FeedbackFoldsIntoNextGeneration(t *testing.T) {
	gen := echoAgent("gen")
	eval := ratingSequence("eval", "FAIR", "EXCELLENT")
	agents := newAgents(t, gen, eval)

	wf := NewEvaluator("refine", "gen", "eval")

	_, err := wf.Execute(context.Background(), agents, "write a post")
	require.NoError(t, err)
	assert.Contains(t, gen.lastCall(), "rated FAIR")
	assert.Contains(t, gen.lastCall(), "Tighten the opening paragraph.")
}

func TestEvaluator_ZeroRefinementsSingleAttempt(t *testing.T) {
	gen := echoAgent("gen")
	eval := ratingSequence("eval", "POOR")
	agents := newAgents(t, gen, eval)

	wf := NewEvaluator("refine", "gen", "eval", func(o *EvaluatorOptions) {
		o.MaxRefinements = 0
	})

	outcome, err := wf.Execute(context.Background(), agents, "write a post")
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Attempts)
	assert.Equal(t, RatingPoor, outcome.Rating)
}

func TestEvaluator_GeneratorFailureAborts(t *testing.T) {
	gen := failingAgent("gen", "boom")
	eval := ratingSequence("eval", "GOOD")
	agents := newAgents(t, gen, eval)

	wf := NewEvaluator("refine", "gen", "eval")

	_, err := wf.Execute(context.Background(), agents, "write a post")
	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "refinement 0 (generator)", execErr.Stage)
	assert.Equal(t, 0, eval.callCount())
}

func TestEvaluator_ValidateNegativeRefinements(t *testing.T) {
	agents := newAgents(t, echoAgent("gen"), echoAgent("eval"))
	wf := NewEvaluator("refine", "gen", "eval", func(o *EvaluatorOptions) {
		o.MaxRefinements = -1
	})
	assert.ErrorContains(t, wf.Validate(agents), "must not be negative")
}
