// Package session provides conversation history storage for agents that keep
// context across calls. The runtime owns a single Store; agents configured
// with history append their turns under their own key.
package session
