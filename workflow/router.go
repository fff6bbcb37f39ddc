package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/crenwick/loom/agent"
	"github.com/crenwick/loom/logging"
)

// RouterOptions configures a Router.
type RouterOptions struct {
	// Logger for classification diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Router delegates each request to exactly one candidate agent. A classifier
// agent picks the candidate from the input; a pick that is not one of the
// declared candidates falls back deterministically to the first declared
// candidate. The selected candidate receives the original, unmodified input.
type Router struct {
	name       string
	candidates []string
	classifier string
	logger     logging.Logger
}

// NewRouter creates a routing workflow. classifier is the agent id consulted
// to select among candidates.
func NewRouter(name string, candidates []string, classifier string, optFns ...func(o *RouterOptions)) *Router {
	opts := RouterOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Router{
		name:       name,
		candidates: append([]string(nil), candidates...),
		classifier: classifier,
		logger:     opts.Logger,
	}
}

// Name implements Spec.
func (r *Router) Name() string { return r.name }

// Pattern implements Spec.
func (r *Router) Pattern() Pattern { return PatternRouter }

// Validate implements Spec.
func (r *Router) Validate(agents *agent.Registry) error {
	if len(r.candidates) == 0 {
		return fmt.Errorf("candidates must not be empty")
	}
	if r.classifier == "" {
		return fmt.Errorf("classifier agent must be set")
	}
	return requireAgents(agents, append(append([]string(nil), r.candidates...), r.classifier)...)
}

// Execute implements Spec.
func (r *Router) Execute(ctx context.Context, agents *agent.Registry, input string) (*Outcome, error) {
	classifier, err := resolve(agents, r.classifier)
	if err != nil {
		return nil, &ExecutionError{Workflow: r.name, Stage: "classify", Err: err}
	}

	pick, err := classifier.Process(ctx, r.classificationPrompt(agents, input))
	if err != nil {
		return nil, &ExecutionError{Workflow: r.name, Stage: "classify", Err: err}
	}

	selected := r.selectCandidate(pick)
	r.logger.Debug("routed request", "workflow", r.name, "agent", selected)

	candidate, err := resolve(agents, selected)
	if err != nil {
		return nil, &ExecutionError{Workflow: r.name, Stage: fmt.Sprintf("candidate (%s)", selected), Err: err}
	}
	out, err := candidate.Process(ctx, input)
	if err != nil {
		return nil, &ExecutionError{Workflow: r.name, Stage: fmt.Sprintf("candidate (%s)", selected), Err: err}
	}
	return &Outcome{Text: out}, nil
}

// classificationPrompt lists the candidates, with their roles when the agent
// describes itself, and asks the classifier for a single agent id.
func (r *Router) classificationPrompt(agents *agent.Registry, input string) string {
	var b strings.Builder
	b.WriteString("Select the single best agent for the request below. Reply with exactly one agent id from the list, nothing else.\n\nAgents:\n")
	for _, id := range r.candidates {
		fmt.Fprintf(&b, "- %s", id)
		if ag, ok := agents.Get(id); ok {
			if d, ok := ag.(agent.Describer); ok {
				if role := d.Describe().Role; role != "" {
					fmt.Fprintf(&b, ": %s", role)
				}
			}
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nRequest: %s", input)
	return b.String()
}

// selectCandidate maps the classifier's reply onto a declared candidate. An
// exact id match wins; otherwise the first candidate whose id appears in the
// reply is used; otherwise the first declared candidate is the fallback.
func (r *Router) selectCandidate(pick string) string {
	trimmed := strings.ToLower(strings.TrimSpace(pick))
	for _, id := range r.candidates {
		if trimmed == strings.ToLower(id) {
			return id
		}
	}
	for _, id := range r.candidates {
		if strings.Contains(trimmed, strings.ToLower(id)) {
			return id
		}
	}
	return r.candidates[0]
}
