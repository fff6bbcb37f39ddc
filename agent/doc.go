// Package agent contains the agent capability abstraction and its first-class
// implementations. The package focuses on three concerns:
//
//  1. The minimal Agent interface (text in, text out) plus the optional
//     Describer interface for discovery surfaces
//  2. The Registry, an immutable-after-startup name index that workflow
//     specs are validated against
//  3. ModelAgent, the language-model-backed implementation with tool calling
//     and optional conversation history
//
// Design principles:
//   - No hidden global state; the shared runtime is wired in explicitly
//   - The hot path interface stays minimal so composition code never needs
//     to know what backs an agent
//   - Failures are explicit *Error values carrying the failing agent id
package agent
