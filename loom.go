// Package loom assembles agents, workflows, a shared runtime and a
// dispatcher from declarative configuration. It is the composition root used
// by the server and the CLI; the subpackages stay independent of it.
package loom

import (
	"fmt"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/crenwick/loom/agent"
	"github.com/crenwick/loom/config"
	"github.com/crenwick/loom/dispatch"
	"github.com/crenwick/loom/logging"
	"github.com/crenwick/loom/model"
	anthropicmodel "github.com/crenwick/loom/model/anthropic"
	openaimodel "github.com/crenwick/loom/model/openai"
	"github.com/crenwick/loom/runtime"
	"github.com/crenwick/loom/tool"
	"github.com/crenwick/loom/workflow"
)

// Options configures App construction.
type Options struct {
	// Logger used across all components. Defaults to NoOpLogger.
	Logger logging.Logger
}

// App is a fully wired orchestration core: registries, runtime and
// dispatcher built from one Config. The runtime starts lazily on the first
// dispatched message; Close tears it down.
type App struct {
	Config     *config.Config
	Agents     *agent.Registry
	Workflows  *workflow.Registry
	Runtime    *runtime.Runtime
	Dispatcher *dispatch.Dispatcher

	logger logging.Logger
}

// New builds an App from configuration. All agents and workflows are
// constructed and validated eagerly; a config that references unknown
// agents, tools or model providers fails here, not at request time.
func New(cfg *config.Config, optFns ...func(o *Options)) (*App, error) {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	logger := opts.Logger

	rt := runtime.New(func(o *runtime.Options) {
		o.Logger = logger
	})

	suites := tool.Suites(cfg.Workspace)
	models := make(map[string]model.Model)

	agents := agent.NewRegistry()
	for _, ac := range cfg.Agents {
		llm, err := resolveModel(models, ac.Model, cfg.DefaultModel)
		if err != nil {
			return nil, fmt.Errorf("agent %q: %w", ac.Name, err)
		}
		tools, err := collectTools(suites, ac.Tools)
		if err != nil {
			return nil, fmt.Errorf("agent %q: %w", ac.Name, err)
		}

		ag := agent.NewModelAgent(ac.Name, ac.Instruction, llm, rt, func(o *agent.ModelAgentOptions) {
			o.Tools = tools
			o.KeepHistory = ac.UseHistory
			o.Logger = logger
		})
		if err := agents.Register(ag); err != nil {
			return nil, err
		}
	}

	workflows := workflow.NewRegistry(agents)
	for _, wc := range cfg.Workflows {
		spec, err := buildWorkflow(wc, cfg, agents, models, rt, logger)
		if err != nil {
			return nil, err
		}
		if err := workflows.Register(spec); err != nil {
			return nil, err
		}
	}

	dispatcher := dispatch.New(agents, workflows, rt, func(o *dispatch.Options) {
		o.DefaultWorkflow = cfg.DefaultWorkflow
		o.Logger = logger
	})

	return &App{
		Config:     cfg,
		Agents:     agents,
		Workflows:  workflows,
		Runtime:    rt,
		Dispatcher: dispatcher,
		logger:     logger,
	}, nil
}

// Close shuts the runtime down, draining in-flight invocations.
func (a *App) Close() error {
	return a.Runtime.Close()
}

// buildWorkflow maps one WorkflowConfig onto a workflow.Spec. Router
// workflows synthesize their classifier as a regular registered agent so
// registry validation covers it.
func buildWorkflow(
	wc config.WorkflowConfig,
	cfg *config.Config,
	agents *agent.Registry,
	models map[string]model.Model,
	rt *runtime.Runtime,
	logger logging.Logger,
) (workflow.Spec, error) {
	switch wc.Type {
	case config.TypeChain:
		return workflow.NewChain(wc.Name, wc.Sequence, func(o *workflow.ChainOptions) {
			o.Logger = logger
		}), nil

	case config.TypeParallel:
		return workflow.NewParallel(wc.Name, wc.FanOut, wc.FanIn, func(o *workflow.ParallelOptions) {
			o.Logger = logger
		}), nil

	case config.TypeRouter:
		classifier := wc.Name + "_classifier"
		llm, err := resolveModel(models, wc.Model, cfg.DefaultModel)
		if err != nil {
			return nil, fmt.Errorf("workflow %q: %w", wc.Name, err)
		}
		ag := agent.NewModelAgent(classifier,
			"You classify requests. Reply with exactly one agent id from the offered list, nothing else.",
			llm, rt, func(o *agent.ModelAgentOptions) {
				o.Logger = logger
			})
		if err := agents.Register(ag); err != nil {
			return nil, fmt.Errorf("workflow %q: %w", wc.Name, err)
		}
		return workflow.NewRouter(wc.Name, wc.Candidates, classifier, func(o *workflow.RouterOptions) {
			o.Logger = logger
		}), nil

	case config.TypePlanner:
		return workflow.NewPlanner(wc.Name, wc.Planner, wc.Executor, wc.Reviewer, func(o *workflow.PlannerOptions) {
			o.MaxIterations = wc.MaxIterations
			o.Logger = logger
		}), nil

	case config.TypeEvaluator:
		minRating, ok := workflow.ParseRating(wc.MinRating)
		if !ok {
			return nil, fmt.Errorf("workflow %q: invalid min_rating %q", wc.Name, wc.MinRating)
		}
		return workflow.NewEvaluator(wc.Name, wc.Generator, wc.Evaluator, func(o *workflow.EvaluatorOptions) {
			o.MinRating = minRating
			if wc.MaxRefinements != nil {
				o.MaxRefinements = *wc.MaxRefinements
			}
			o.Logger = logger
		}), nil

	default:
		return nil, fmt.Errorf("workflow %q: unknown type %q", wc.Name, wc.Type)
	}
}

// resolveModel returns the model for a provider-prefixed reference, creating
// it on first use. Agents sharing a reference share one client.
func resolveModel(cache map[string]model.Model, ref, fallback string) (model.Model, error) {
	if ref == "" {
		ref = fallback
	}
	if m, ok := cache[ref]; ok {
		return m, nil
	}

	provider, name, ok := strings.Cut(ref, ":")
	if !ok {
		return nil, fmt.Errorf("model %q must be provider-prefixed", ref)
	}

	var m model.Model
	switch provider {
	case "anthropic":
		m = anthropicmodel.NewModel(func(o *anthropicmodel.Options) {
			o.Model = anthropicsdk.Model(name)
		})
	case "openai":
		m = openaimodel.NewModel(func(o *openaimodel.Options) {
			o.Model = name
		})
	case "mock":
		m = model.NewMockModel(name, "mock")
	default:
		return nil, fmt.Errorf("unknown model provider %q", provider)
	}
	cache[ref] = m
	return m, nil
}

// collectTools flattens the named tool suites for one agent.
func collectTools(suites map[string][]tool.Tool, names []string) ([]tool.Tool, error) {
	var tools []tool.Tool
	for _, name := range names {
		suite, ok := suites[name]
		if !ok {
			return nil, fmt.Errorf("unknown tool suite %q", name)
		}
		tools = append(tools, suite...)
	}
	return tools, nil
}
