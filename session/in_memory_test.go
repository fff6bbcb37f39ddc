package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crenwick/loom/model"
)

func TestInMemoryStore_AppendAndHistory(t *testing.T) {
	store := NewInMemoryStore(0)

	store.Append("gen", model.Message{Role: model.RoleUser, Text: "hello"})
	store.Append("gen", model.Message{Role: model.RoleAssistant, Text: "hi"})

	history := store.History("gen")
	assert.Len(t, history, 2)
	assert.Equal(t, "hello", history[0].Text)
	assert.Equal(t, "hi", history[1].Text)
}

func TestInMemoryStore_HistoryIsCopy(t *testing.T) {
	store := NewInMemoryStore(0)
	store.Append("gen", model.Message{Role: model.RoleUser, Text: "original"})

	history := store.History("gen")
	history[0].Text = "mutated"

	assert.Equal(t, "original", store.History("gen")[0].Text)
}

func TestInMemoryStore_TrimsToMaxTurns(t *testing.T) {
	store := NewInMemoryStore(3)

	for i := 0; i < 5; i++ {
		store.Append("gen", model.Message{Role: model.RoleUser, Text: fmt.Sprintf("turn %d", i)})
	}

	history := store.History("gen")
	assert.Len(t, history, 3)
	assert.Equal(t, "turn 2", history[0].Text)
	assert.Equal(t, "turn 4", history[2].Text)
}

func TestInMemoryStore_Clear(t *testing.T) {
	store := NewInMemoryStore(0)
	store.Append("gen", model.Message{Role: model.RoleUser, Text: "hello"})

	store.Clear("gen")

	assert.Empty(t, store.History("gen"))
	assert.Zero(t, store.Len("gen"))
}

func TestInMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewInMemoryStore(0)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("agent-%d", n%3)
			store.Append(key, model.Message{Role: model.RoleUser, Text: "x"})
			_ = store.History(key)
		}(i)
	}
	wg.Wait()

	total := store.Len("agent-0") + store.Len("agent-1") + store.Len("agent-2")
	assert.Equal(t, 10, total)
}
