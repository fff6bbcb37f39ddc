package client

import (
	"testing"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	assert.Equal(t, "workflow:router_workflow|What is 2+2?",
		buildMessage("router_workflow", "What is 2+2?"))
	assert.Equal(t, "hello", buildMessage("", "hello"))
}

func TestTaskText_Artifacts(t *testing.T) {
	task := &a2a.Task{
		Status: a2a.TaskStatus{State: a2a.TaskStateCompleted},
		Artifacts: []*a2a.Artifact{
			{Parts: []a2a.Part{a2a.TextPart{Text: "part one "}}},
			{Parts: []a2a.Part{a2a.TextPart{Text: "part two"}}},
		},
	}
	text, err := taskText(task)
	require.NoError(t, err)
	assert.Equal(t, "part one part two", text)
}

func TestTaskText_Failed(t *testing.T) {
	task := &a2a.Task{
		Status: a2a.TaskStatus{
			State:   a2a.TaskStateFailed,
			Message: a2a.NewMessage(a2a.MessageRoleAgent, a2a.TextPart{Text: "Error in router_workflow: boom"}),
		},
	}
	_, err := taskText(task)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error in router_workflow: boom")
}

func TestPartsText(t *testing.T) {
	parts := []a2a.Part{
		a2a.TextPart{Text: "a"},
		a2a.TextPart{Text: "b"},
	}
	assert.Equal(t, "ab", partsText(parts))
}

func TestParseChoice(t *testing.T) {
	assert.Equal(t, 0, parseChoice("", 6))
	assert.Equal(t, 0, parseChoice("nope", 6))
	assert.Equal(t, 0, parseChoice("7", 6))
	assert.Equal(t, 2, parseChoice("3", 6))
	assert.Equal(t, 5, parseChoice(" 6 ", 6))
}
