package server

import (
	"fmt"

	"github.com/a2aproject/a2a-go/a2a"

	"github.com/crenwick/loom/config"
	"github.com/crenwick/loom/workflow"
)

// patternDescriptions summarize each pattern for the published skills.
var patternDescriptions = map[workflow.Pattern]string{
	workflow.PatternChain:     "Sequential: each agent's output feeds the next",
	workflow.PatternParallel:  "Fan-out/fan-in: concurrent agents, aggregated synthesis",
	workflow.PatternRouter:    "Routing: a classifier delegates to the best agent",
	workflow.PatternPlanner:   "Orchestration: iterative plan, execute, review",
	workflow.PatternEvaluator: "Refinement: generate, evaluate, refine until acceptable",
}

// BuildAgentCard assembles the card served at
// /.well-known/agent-card.json: one skill per registered workflow, text
// input/output, JSON-RPC as the preferred transport.
func BuildAgentCard(cfg config.ServerConfig, workflows *workflow.Registry, defaultWorkflow string) *a2a.AgentCard {
	skills := make([]a2a.AgentSkill, 0, workflows.Len())
	for _, name := range workflows.Names() {
		spec, _ := workflows.Get(name)
		skill := a2a.AgentSkill{
			ID:          name,
			Name:        name,
			Description: patternDescriptions[spec.Pattern()],
			Tags:        []string{string(spec.Pattern()), "workflow"},
			Examples: []string{
				fmt.Sprintf("workflow:%s|your message", name),
			},
		}
		if name == defaultWorkflow {
			skill.Tags = append(skill.Tags, "default")
			skill.Examples = append(skill.Examples, "your message")
		}
		skills = append(skills, skill)
	}

	description := cfg.Description
	if description == "" {
		description = fmt.Sprintf(
			"Multi-workflow agent server. Route with 'workflow:<name>|message'; unrouted messages go to %s.",
			defaultWorkflow)
	}

	return &a2a.AgentCard{
		Name:               cfg.Name,
		Description:        description,
		URL:                cfg.BaseURL(),
		Version:            cfg.Version,
		ProtocolVersion:    "1.0",
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text"},
		Skills:             skills,
		Capabilities: a2a.AgentCapabilities{
			Streaming:              false,
			PushNotifications:      false,
			StateTransitionHistory: false,
		},
		PreferredTransport: a2a.TransportProtocolJSONRPC,
	}
}
