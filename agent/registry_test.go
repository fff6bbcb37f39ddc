package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticAgent struct {
	name string
}

func (s *staticAgent) Name() string { return s.name }

func (s *staticAgent) Process(ctx context.Context, input string) (string, error) {
	return input, nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(&staticAgent{name: "summarizer"}))
	require.NoError(t, reg.Register(&staticAgent{name: "writer"}))

	a, ok := reg.Get("summarizer")
	assert.True(t, ok)
	assert.Equal(t, "summarizer", a.Name())

	_, ok = reg.Get("missing")
	assert.False(t, ok)
	assert.True(t, reg.Has("writer"))
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(&staticAgent{name: "summarizer"}))
	err := reg.Register(&staticAgent{name: "summarizer"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistry_RejectsEmptyName(t *testing.T) {
	reg := NewRegistry()
	assert.Error(t, reg.Register(&staticAgent{name: ""}))
}

func TestRegistry_NamesPreserveOrder(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"c", "a", "b"} {
		require.NoError(t, reg.Register(&staticAgent{name: name}))
	}

	assert.Equal(t, []string{"c", "a", "b"}, reg.Names())
}

func TestWrapError(t *testing.T) {
	base := assert.AnError
	wrapped := WrapError("proofreader", base)

	var agentErr *Error
	require.ErrorAs(t, wrapped, &agentErr)
	assert.Equal(t, "proofreader", agentErr.AgentID)
	assert.ErrorIs(t, wrapped, base)

	// An already-tagged error keeps its original agent id.
	rewrapped := WrapError("fact_checker", wrapped)
	require.ErrorAs(t, rewrapped, &agentErr)
	assert.Equal(t, "proofreader", agentErr.AgentID)

	assert.Nil(t, WrapError("x", nil))
}
