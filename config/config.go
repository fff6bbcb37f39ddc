// Package config declares the static server, agent and workflow
// configuration and loads it from YAML with environment expansion. All
// composition is declared once at startup; there is no runtime
// reconfiguration.
package config

import (
	"fmt"
	"strings"

	"github.com/crenwick/loom/workflow"
)

// Workflow type tags used in configuration files.
const (
	TypeChain     = "chain"
	TypeParallel  = "parallel"
	TypeRouter    = "router"
	TypePlanner   = "planner"
	TypeEvaluator = "evaluator"
)

// Config is the root configuration.
type Config struct {
	Server          ServerConfig     `yaml:"server"`
	Logging         LoggingConfig    `yaml:"logging"`
	DefaultModel    string           `yaml:"default_model"`
	DefaultWorkflow string           `yaml:"default_workflow"`
	Workspace       string           `yaml:"workspace"`
	Agents          []AgentConfig    `yaml:"agents"`
	Workflows       []WorkflowConfig `yaml:"workflows"`
}

// ServerConfig holds the listen address and published metadata.
type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
}

// BaseURL returns the externally reachable base URL for the agent card.
func (s ServerConfig) BaseURL() string {
	host := s.Host
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d/", host, s.Port)
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig selects log verbosity and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AgentConfig declares one agent. Model is a provider-prefixed model id
// ("anthropic:<model>", "openai:<model>" or "mock:<name>"); when empty the
// top-level default model applies. Tools names builtin tool suites granted
// to the agent ("fetch", "filesystem").
type AgentConfig struct {
	Name        string   `yaml:"name"`
	Instruction string   `yaml:"instruction"`
	Model       string   `yaml:"model"`
	Tools       []string `yaml:"tools"`
	UseHistory  bool     `yaml:"use_history"`
}

// WorkflowConfig declares one workflow. Type selects the pattern; the other
// fields apply per type.
type WorkflowConfig struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	// chain
	Sequence []string `yaml:"sequence"`

	// parallel
	FanOut []string `yaml:"fan_out"`
	FanIn  string   `yaml:"fan_in"`

	// router; Model is the classifier's provider-prefixed model id.
	Candidates []string `yaml:"candidates"`
	Model      string   `yaml:"model"`

	// planner
	Planner       string `yaml:"planner"`
	Executor      string `yaml:"executor"`
	Reviewer      string `yaml:"reviewer"`
	MaxIterations int    `yaml:"max_iterations"`

	// evaluator
	Generator      string `yaml:"generator"`
	Evaluator      string `yaml:"evaluator"`
	MinRating      string `yaml:"min_rating"`
	MaxRefinements *int   `yaml:"max_refinements"`
}

// SetDefaults fills unset fields with working defaults.
func (c *Config) SetDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 9999
	}
	if c.Server.Name == "" {
		c.Server.Name = "Multi-Workflow Agent Server"
	}
	if c.Server.Version == "" {
		c.Server.Version = "1.0.0"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.DefaultModel == "" {
		c.DefaultModel = "anthropic:claude-3-5-sonnet-20241022"
	}
	if c.Workspace == "" {
		c.Workspace = "."
	}
	for i := range c.Workflows {
		wf := &c.Workflows[i]
		if wf.Type == TypePlanner && wf.MaxIterations == 0 {
			wf.MaxIterations = 3
		}
		if wf.Type == TypeEvaluator {
			if wf.MinRating == "" {
				wf.MinRating = "EXCELLENT"
			}
			if wf.MaxRefinements == nil {
				n := 3
				wf.MaxRefinements = &n
			}
		}
	}
}

// Validate checks structural consistency before any registry is built.
// Agent-id references inside workflows are validated again by the workflow
// registry; checking here gives errors that point at the config file.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server: invalid port %d", c.Server.Port)
	}
	if len(c.Agents) == 0 {
		return fmt.Errorf("at least one agent must be configured")
	}
	if len(c.Workflows) == 0 {
		return fmt.Errorf("at least one workflow must be configured")
	}

	agentNames := make(map[string]struct{}, len(c.Agents))
	for i, a := range c.Agents {
		if a.Name == "" {
			return fmt.Errorf("agents[%d]: name must not be empty", i)
		}
		if _, dup := agentNames[a.Name]; dup {
			return fmt.Errorf("agents: duplicate name %q", a.Name)
		}
		agentNames[a.Name] = struct{}{}
		if err := validateModelRef(a.Model); err != nil {
			return fmt.Errorf("agent %q: %w", a.Name, err)
		}
	}

	wfNames := make(map[string]struct{}, len(c.Workflows))
	for i, wf := range c.Workflows {
		if wf.Name == "" {
			return fmt.Errorf("workflows[%d]: name must not be empty", i)
		}
		if _, dup := wfNames[wf.Name]; dup {
			return fmt.Errorf("workflows: duplicate name %q", wf.Name)
		}
		wfNames[wf.Name] = struct{}{}
		if err := wf.validate(agentNames); err != nil {
			return fmt.Errorf("workflow %q: %w", wf.Name, err)
		}
	}

	if c.DefaultWorkflow != "" {
		if _, ok := wfNames[c.DefaultWorkflow]; !ok {
			return fmt.Errorf("default workflow %q is not configured", c.DefaultWorkflow)
		}
	}
	return nil
}

func (wf *WorkflowConfig) validate(agents map[string]struct{}) error {
	ref := func(field, id string) error {
		if id == "" {
			return fmt.Errorf("%s must be set", field)
		}
		if _, ok := agents[id]; !ok {
			return fmt.Errorf("%s references unknown agent %q", field, id)
		}
		return nil
	}
	refs := func(field string, ids []string) error {
		if len(ids) == 0 {
			return fmt.Errorf("%s must not be empty", field)
		}
		for _, id := range ids {
			if err := ref(field, id); err != nil {
				return err
			}
		}
		return nil
	}

	switch wf.Type {
	case TypeChain:
		return refs("sequence", wf.Sequence)
	case TypeParallel:
		if err := refs("fan_out", wf.FanOut); err != nil {
			return err
		}
		return ref("fan_in", wf.FanIn)
	case TypeRouter:
		if err := refs("candidates", wf.Candidates); err != nil {
			return err
		}
		return validateModelRef(wf.Model)
	case TypePlanner:
		if wf.MaxIterations < 1 {
			return fmt.Errorf("max_iterations must be at least 1")
		}
		for _, r := range []struct{ field, id string }{
			{"planner", wf.Planner}, {"executor", wf.Executor}, {"reviewer", wf.Reviewer},
		} {
			if err := ref(r.field, r.id); err != nil {
				return err
			}
		}
		return nil
	case TypeEvaluator:
		if _, ok := workflow.ParseRating(wf.MinRating); !ok {
			return fmt.Errorf("invalid min_rating %q", wf.MinRating)
		}
		if wf.MaxRefinements != nil && *wf.MaxRefinements < 0 {
			return fmt.Errorf("max_refinements must not be negative")
		}
		if err := ref("generator", wf.Generator); err != nil {
			return err
		}
		return ref("evaluator", wf.Evaluator)
	default:
		return fmt.Errorf("unknown workflow type %q", wf.Type)
	}
}

// validateModelRef checks the provider prefix of a model reference. Empty
// references are allowed; the default model applies.
func validateModelRef(ref string) error {
	if ref == "" {
		return nil
	}
	provider, _, ok := strings.Cut(ref, ":")
	if !ok {
		return fmt.Errorf("model %q must be provider-prefixed (anthropic:, openai: or mock:)", ref)
	}
	switch provider {
	case "anthropic", "openai", "mock":
		return nil
	default:
		return fmt.Errorf("unknown model provider %q", provider)
	}
}
