package workflow

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crenwick/loom/agent"
)

// fakeAgent is a scriptable test agent that records its invocations.
type fakeAgent struct {
	name string
	fn   func(ctx context.Context, input string) (string, error)

	mu    sync.Mutex
	calls []string
}

func (f *fakeAgent) Name() string { return f.name }

func (f *fakeAgent) Process(ctx context.Context, input string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, input)
	f.mu.Unlock()
	if f.fn != nil {
		return f.fn(ctx, input)
	}
	return fmt.Sprintf("%s(%s)", f.name, input), nil
}

func (f *fakeAgent) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeAgent) lastCall() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}

// echoAgent returns a fakeAgent wrapping the input in "name(input)".
func echoAgent(name string) *fakeAgent {
	return &fakeAgent{name: name}
}

// failingAgent always fails with the given message.
func failingAgent(name, msg string) *fakeAgent {
	return &fakeAgent{
		name: name,
		fn: func(ctx context.Context, input string) (string, error) {
			return "", fmt.Errorf("%s", msg)
		},
	}
}

// replyAgent always answers with a fixed string.
func replyAgent(name, reply string) *fakeAgent {
	return &fakeAgent{
		name: name,
		fn: func(ctx context.Context, input string) (string, error) {
			return reply, nil
		},
	}
}

func newAgents(t *testing.T, agents ...agent.Agent) *agent.Registry {
	t.Helper()
	reg := agent.NewRegistry()
	for _, a := range agents {
		require.NoError(t, reg.Register(a))
	}
	return reg
}
