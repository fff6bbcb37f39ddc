package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	agents := newAgents(t, echoAgent("a"), echoAgent("b"))
	reg := NewRegistry(agents)

	require.NoError(t, reg.Register(
		NewChain("first", []string{"a"}),
		NewChain("second", []string{"b"}),
	))

	assert.Equal(t, 2, reg.Len())
	assert.True(t, reg.Has("first"))
	assert.Equal(t, []string{"first", "second"}, reg.Names())

	spec, ok := reg.Get("second")
	require.True(t, ok)
	assert.Equal(t, "second", spec.Name())
}

func TestRegistry_FirstFollowsRegistrationOrder(t *testing.T) {
	agents := newAgents(t, echoAgent("a"))
	reg := NewRegistry(agents)

	_, ok := reg.First()
	assert.False(t, ok)

	require.NoError(t, reg.Register(
		NewChain("zeta", []string{"a"}),
		NewChain("alpha", []string{"a"}),
	))

	first, ok := reg.First()
	require.True(t, ok)
	assert.Equal(t, "zeta", first.Name())
}

func TestRegistry_RejectsDuplicateName(t *testing.T) {
	agents := newAgents(t, echoAgent("a"))
	reg := NewRegistry(agents)

	require.NoError(t, reg.Register(NewChain("dup", []string{"a"})))
	err := reg.Register(NewChain("dup", []string{"a"}))
	assert.ErrorContains(t, err, `workflow "dup" already registered`)
}

func TestRegistry_ValidatesEagerly(t *testing.T) {
	agents := newAgents(t, echoAgent("a"))
	reg := NewRegistry(agents)

	err := reg.Register(NewChain("broken", []string{"a", "ghost"}))
	assert.ErrorContains(t, err, `workflow "broken"`)
	assert.ErrorContains(t, err, `agent "ghost" not registered`)
	assert.False(t, reg.Has("broken"))
}

func TestRegistry_RejectsEmptyName(t *testing.T) {
	agents := newAgents(t, echoAgent("a"))
	reg := NewRegistry(agents)
	err := reg.Register(NewChain("", []string{"a"}))
	assert.ErrorContains(t, err, "name must not be empty")
}
