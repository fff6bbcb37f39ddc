package session

import (
	"sync"

	"github.com/crenwick/loom/model"
)

// InMemoryStore is a volatile conversation store keeping message history in
// a process local map. It is safe for concurrent access and best suited for
// tests or ephemeral demo servers. Returned histories are copies to prevent
// external mutation of internal state.
type InMemoryStore struct {
	mu       sync.RWMutex
	maxTurns int
	history  map[string][]model.Message
}

// NewInMemoryStore constructs an empty in-memory store. maxTurns bounds the
// number of retained messages per key; zero means unbounded.
func NewInMemoryStore(maxTurns int) *InMemoryStore {
	return &InMemoryStore{
		maxTurns: maxTurns,
		history:  make(map[string][]model.Message),
	}
}

// History returns a copy of the stored messages for key, oldest first.
func (s *InMemoryStore) History(key string) []model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.history[key]
	out := make([]model.Message, len(msgs))
	copy(out, msgs)
	return out
}

// Append adds messages to the history for key, trimming the oldest entries
// once the configured bound is exceeded.
func (s *InMemoryStore) Append(key string, msgs ...model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := append(s.history[key], msgs...)
	if s.maxTurns > 0 && len(h) > s.maxTurns {
		h = h[len(h)-s.maxTurns:]
	}
	s.history[key] = h
}

// Clear removes the history for key.
func (s *InMemoryStore) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.history, key)
}

// Len reports the number of stored messages for key.
func (s *InMemoryStore) Len(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history[key])
}
