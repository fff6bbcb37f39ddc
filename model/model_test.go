package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockModel_CannedResponse(t *testing.T) {
	m := NewMockModel("mock-1", "mock")
	m.AddResponse("ping", "pong")

	resp, err := m.Complete(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Text: "ping"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "pong", resp.Text)
	assert.Equal(t, "stop", resp.FinishReason)
}

func TestMockModel_Fallback(t *testing.T) {
	m := NewMockModel("mock-1", "mock")

	resp, err := m.Complete(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Text: "anything"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Mock response to: anything", resp.Text)
}

func TestMockModel_ScriptTakesPrecedence(t *testing.T) {
	m := NewMockModel("mock-1", "mock")
	m.AddResponse("ping", "pong")
	m.Enqueue(Response{Text: "scripted"})

	first, err := m.Complete(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Text: "ping"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "scripted", first.Text)

	second, err := m.Complete(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Text: "ping"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "pong", second.Text)
	assert.Equal(t, 2, m.Calls())
}

func TestMockModel_ContextCanceled(t *testing.T) {
	m := NewMockModel("mock-1", "mock")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Complete(ctx, Request{
		Messages: []Message{{Role: RoleUser, Text: "ping"}},
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, m.Calls())
}

func TestMockModel_Info(t *testing.T) {
	m := NewMockModel("mock-1", "mock")
	info := m.Info()
	assert.Equal(t, "mock-1", info.Name)
	assert.Equal(t, "mock", info.Provider)
	assert.True(t, info.SupportsTools)
}
