// Package model defines the normalized language-model abstraction used by
// agents: a Request/Response pair, a minimal Model interface and a
// deterministic MockModel for tests and offline runs. Provider adapters live
// in the anthropic and openai subpackages.
package model
