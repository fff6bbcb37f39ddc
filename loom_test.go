package loom

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crenwick/loom/config"
)

// mockConfig returns the default setup with every agent on the mock model so
// no network is involved.
func mockConfig() *config.Config {
	cfg := config.Default()
	cfg.DefaultModel = "mock:test"
	for i := range cfg.Agents {
		cfg.Agents[i].Model = "mock:test"
	}
	for i := range cfg.Workflows {
		if cfg.Workflows[i].Type == config.TypeRouter {
			cfg.Workflows[i].Model = "mock:test"
		}
	}
	return cfg
}

func TestNew_WiresDefaultConfig(t *testing.T) {
	app, err := New(mockConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	// 15 configured agents plus the synthesized router classifier.
	assert.Equal(t, 16, app.Agents.Len())
	assert.True(t, app.Agents.Has("router_workflow_classifier"))

	assert.Equal(t, 6, app.Workflows.Len())
	assert.Equal(t, []string{
		"chaining_workflow",
		"parallel_workflow",
		"router_workflow",
		"orchestrator_workflow",
		"evaluator_optimizer_workflow",
		"human_input_workflow",
	}, app.Workflows.Names())
}

func TestNew_RejectsUnknownToolSuite(t *testing.T) {
	cfg := mockConfig()
	cfg.Agents[0].Tools = []string{"teleport"}

	_, err := New(cfg)
	assert.ErrorContains(t, err, `unknown tool suite "teleport"`)
}

func TestApp_DispatchesEndToEnd(t *testing.T) {
	app, err := New(mockConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.False(t, app.Runtime.Started())

	res := app.Dispatcher.Execute(context.Background(), "workflow:human_input_workflow|hi there")
	require.False(t, res.Failed(), "dispatch failed: %v", res.Err)
	assert.Equal(t, "human_input_workflow", res.Workflow)
	assert.Equal(t, "Mock response to: hi there", res.Text)

	assert.True(t, app.Runtime.Started(), "runtime starts on first dispatch")
}

func TestApp_UnknownWorkflowFallsBackToDefault(t *testing.T) {
	app, err := New(mockConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	res := app.Dispatcher.Execute(context.Background(), "workflow:nope|hello")
	require.False(t, res.Failed(), "dispatch failed: %v", res.Err)
	assert.Equal(t, "router_workflow", res.Workflow)
}
