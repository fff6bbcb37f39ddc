package util

import "github.com/google/uuid"

// NewID returns a random unique identifier for invocations and sessions.
func NewID() string { return uuid.NewString() }
