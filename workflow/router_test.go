package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_RoutesToPickedCandidate(t *testing.T) {
	classifier := replyAgent("classifier", "web")
	code := echoAgent("code")
	web := echoAgent("web")
	agents := newAgents(t, classifier, code, web)

	router := NewRouter("route", []string{"code", "web"}, "classifier")
	require.NoError(t, router.Validate(agents))

	outcome, err := router.Execute(context.Background(), agents, "look this up")
	require.NoError(t, err)
	assert.Equal(t, "web(look this up)", outcome.Text)
	assert.Equal(t, 0, code.callCount(), "exactly one candidate runs per call")
	assert.Equal(t, "look this up", web.lastCall(), "candidate receives the original input")
}

func TestRouter_NoisyPickMatchesBySubstring(t *testing.T) {
	classifier := replyAgent("classifier", "I would pick the `web` agent for this.")
	code := echoAgent("code")
	web := echoAgent("web")
	agents := newAgents(t, classifier, code, web)

	router := NewRouter("route", []string{"code", "web"}, "classifier")

	outcome, err := router.Execute(context.Background(), agents, "look this up")
	require.NoError(t, err)
	assert.Equal(t, "web(look this up)", outcome.Text)
}

func TestRouter_UnknownPickFallsBackToFirst(t *testing.T) {
	classifier := replyAgent("classifier", "nonexistent_agent")
	code := echoAgent("code")
	web := echoAgent("web")
	agents := newAgents(t, classifier, code, web)

	router := NewRouter("route", []string{"code", "web"}, "classifier")

	outcome, err := router.Execute(context.Background(), agents, "hm")
	require.NoError(t, err)
	assert.Equal(t, "code(hm)", outcome.Text)
	assert.Equal(t, 0, web.callCount())
}

func TestRouter_ClassifierFailure(t *testing.T) {
	classifier := failingAgent("classifier", "boom")
	code := echoAgent("code")
	agents := newAgents(t, classifier, code)

	router := NewRouter("route", []string{"code"}, "classifier")

	_, err := router.Execute(context.Background(), agents, "hm")
	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "classify", execErr.Stage)
	assert.Equal(t, 0, code.callCount())
}

func TestRouter_ValidateNoCandidates(t *testing.T) {
	agents := newAgents(t, echoAgent("classifier"))
	err := NewRouter("route", nil, "classifier").Validate(agents)
	assert.ErrorContains(t, err, "candidates must not be empty")
}

func TestRouter_ClassificationPromptListsCandidates(t *testing.T) {
	classifier := replyAgent("classifier", "code")
	code := echoAgent("code")
	web := echoAgent("web")
	agents := newAgents(t, classifier, code, web)

	router := NewRouter("route", []string{"code", "web"}, "classifier")

	_, err := router.Execute(context.Background(), agents, "review my diff")
	require.NoError(t, err)
	prompt := classifier.lastCall()
	assert.Contains(t, prompt, "- code")
	assert.Contains(t, prompt, "- web")
	assert.Contains(t, prompt, "Request: review my diff")
}
