package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/crenwick/loom/logging"
	"github.com/crenwick/loom/model"
	"github.com/crenwick/loom/runtime"
	"github.com/crenwick/loom/tool"
)

// ModelAgentOptions configures a ModelAgent instance. Use functional options
// with NewModelAgent to override defaults.
type ModelAgentOptions struct {
	// Tools available to the model for function calling, keyed by name.
	Tools []tool.Tool
	// KeepHistory persists conversation turns in the runtime session store
	// so later calls see earlier context.
	KeepHistory bool
	// MaxToolRounds bounds the completion/tool-execution loop per call.
	MaxToolRounds int
	// Logger for per-call diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// ModelAgent is the language-model-backed Agent implementation. Each Process
// call builds a normalized request from the instruction, any stored history
// and the input, then loops between the model and its tools until the model
// produces a plain text answer.
type ModelAgent struct {
	name          string
	instruction   string
	llm           model.Model
	rt            *runtime.Runtime
	tools         map[string]tool.Tool
	toolOrder     []string
	keepHistory   bool
	maxToolRounds int
	logger        logging.Logger
}

// NewModelAgent creates a model-backed agent. The runtime is consulted per
// call for invocation tracking and, when history is enabled, conversation
// storage.
func NewModelAgent(
	name, instruction string,
	llm model.Model,
	rt *runtime.Runtime,
	optFns ...func(o *ModelAgentOptions),
) *ModelAgent {
	opts := ModelAgentOptions{
		MaxToolRounds: 8,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	tools := make(map[string]tool.Tool, len(opts.Tools))
	var order []string
	for _, t := range opts.Tools {
		if _, dup := tools[t.Name()]; dup {
			continue
		}
		tools[t.Name()] = t
		order = append(order, t.Name())
	}
	sort.Strings(order)

	return &ModelAgent{
		name:          name,
		instruction:   instruction,
		llm:           llm,
		rt:            rt,
		tools:         tools,
		toolOrder:     order,
		keepHistory:   opts.KeepHistory,
		maxToolRounds: opts.MaxToolRounds,
		logger:        opts.Logger,
	}
}

// Name implements Agent.
func (a *ModelAgent) Name() string { return a.name }

// Describe implements Describer.
func (a *ModelAgent) Describe() Description {
	return Description{
		Name:  a.name,
		Role:  a.instruction,
		Model: a.llm.Info().Name,
		Tools: append([]string(nil), a.toolOrder...),
	}
}

// Process implements Agent.
func (a *ModelAgent) Process(ctx context.Context, input string) (string, error) {
	done, err := a.rt.Track()
	if err != nil {
		return "", WrapError(a.name, err)
	}
	defer done()

	messages, err := a.startingMessages()
	if err != nil {
		return "", WrapError(a.name, err)
	}
	messages = append(messages, model.Message{Role: model.RoleUser, Text: input})

	req := model.Request{
		Instructions: a.instruction,
		Tools:        a.toolDefinitions(),
	}

	start := time.Now()
	for round := 0; ; round++ {
		req.Messages = messages

		resp, err := a.llm.Complete(ctx, req)
		if err != nil {
			return "", WrapError(a.name, err)
		}

		if len(resp.ToolCalls) == 0 {
			a.logger.Debug("agent completed",
				"agent", a.name, "rounds", round+1, "duration", time.Since(start))
			a.saveHistory(input, resp.Text)
			return resp.Text, nil
		}

		if round >= a.maxToolRounds {
			return "", WrapError(a.name, fmt.Errorf("tool loop exceeded %d rounds", a.maxToolRounds))
		}

		messages = append(messages, model.Message{
			Role:      model.RoleAssistant,
			Text:      resp.Text,
			ToolCalls: resp.ToolCalls,
		})
		results, err := a.executeToolCalls(ctx, resp.ToolCalls)
		if err != nil {
			return "", WrapError(a.name, err)
		}
		messages = append(messages, model.Message{Role: model.RoleTool, ToolResults: results})
	}
}

// startingMessages returns stored history when enabled, or an empty slate.
func (a *ModelAgent) startingMessages() ([]model.Message, error) {
	if !a.keepHistory {
		return nil, nil
	}
	sessions, err := a.rt.Sessions()
	if err != nil {
		return nil, err
	}
	return sessions.History(a.name), nil
}

func (a *ModelAgent) saveHistory(input, output string) {
	if !a.keepHistory {
		return
	}
	sessions, err := a.rt.Sessions()
	if err != nil {
		return
	}
	sessions.Append(a.name,
		model.Message{Role: model.RoleUser, Text: input},
		model.Message{Role: model.RoleAssistant, Text: output},
	)
}

func (a *ModelAgent) toolDefinitions() []model.ToolDefinition {
	if len(a.toolOrder) == 0 {
		return nil
	}
	defs := make([]model.ToolDefinition, 0, len(a.toolOrder))
	for _, name := range a.toolOrder {
		t := a.tools[name]
		defs = append(defs, model.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return defs
}

// executeToolCalls runs the requested tools sequentially. Tool failures are
// reported back to the model as error results rather than aborting the call;
// only an unknown tool aborts, since the model cannot recover from it.
func (a *ModelAgent) executeToolCalls(ctx context.Context, calls []model.ToolCall) ([]model.ToolResult, error) {
	results := make([]model.ToolResult, 0, len(calls))
	for _, call := range calls {
		t, ok := a.tools[call.Name]
		if !ok {
			return nil, fmt.Errorf("model requested unknown tool %q", call.Name)
		}

		var args map[string]any
		if call.Arguments != "" {
			if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
				results = append(results, model.ToolResult{
					ID: call.ID, Name: call.Name,
					Content: fmt.Sprintf("invalid arguments: %v", err),
					IsError: true,
				})
				continue
			}
		}

		start := time.Now()
		out, err := t.Call(ctx, args)
		if err != nil {
			a.logger.Warn("tool failed",
				"agent", a.name, "tool", call.Name, "error", err, "duration", time.Since(start))
			results = append(results, model.ToolResult{
				ID: call.ID, Name: call.Name, Content: err.Error(), IsError: true,
			})
			continue
		}
		a.logger.Debug("tool completed",
			"agent", a.name, "tool", call.Name, "duration", time.Since(start))

		results = append(results, model.ToolResult{
			ID: call.ID, Name: call.Name, Content: fmt.Sprintf("%v", out),
		})
	}
	return results, nil
}
