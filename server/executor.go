// Package server exposes the dispatcher over the A2A protocol: an
// a2asrv.AgentExecutor bridge, the published agent card, and an HTTP server
// carrying the JSON-RPC endpoint.
package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"
	"github.com/a2aproject/a2a-go/a2asrv/eventqueue"

	"github.com/crenwick/loom/dispatch"
	"github.com/crenwick/loom/logging"
)

// ExecutorOptions configures an Executor.
type ExecutorOptions struct {
	// Logger for request diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Executor implements a2asrv.AgentExecutor over the workflow dispatcher.
//
// Event translation:
//   - inbound message text feeds the dispatcher unchanged, so the
//     "workflow:<name>|<rest>" routing convention applies
//   - before dispatch: TaskStatusUpdateEvent with TaskStateWorking
//   - on success: one artifact with the workflow output, then
//     TaskStateCompleted
//   - on failure: TaskStateFailed with an "Error in <workflow>: <cause>"
//     status message
type Executor struct {
	dispatcher *dispatch.Dispatcher
	logger     logging.Logger
}

// NewExecutor creates an A2A executor over the dispatcher.
func NewExecutor(d *dispatch.Dispatcher, optFns ...func(o *ExecutorOptions)) *Executor {
	opts := ExecutorOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Executor{dispatcher: d, logger: opts.Logger}
}

// Execute implements a2asrv.AgentExecutor.
func (e *Executor) Execute(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue) error {
	if reqCtx.Message == nil {
		return fmt.Errorf("message not provided")
	}

	input := strings.TrimSpace(userInput(reqCtx.Message))
	if input == "" {
		e.logger.Debug("ignoring empty message", "task", reqCtx.TaskID)
		return nil
	}

	working := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateWorking, nil)
	if err := queue.Write(ctx, working); err != nil {
		return fmt.Errorf("write working event: %w", err)
	}

	res := e.dispatcher.Execute(ctx, input)
	if res.Failed() {
		msg := a2a.NewMessageForTask(a2a.MessageRoleAgent, reqCtx, a2a.TextPart{Text: res.ErrorText()})
		failed := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateFailed, msg)
		failed.Final = true
		return queue.Write(ctx, failed)
	}

	artifact := a2a.NewArtifactEvent(reqCtx, a2a.TextPart{Text: res.Text})
	if err := queue.Write(ctx, artifact); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	closing := a2a.NewArtifactUpdateEvent(reqCtx, artifact.Artifact.ID)
	closing.LastChunk = true
	if err := queue.Write(ctx, closing); err != nil {
		return fmt.Errorf("close artifact: %w", err)
	}

	completed := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateCompleted, nil)
	completed.Final = true
	return queue.Write(ctx, completed)
}

// Cancel implements a2asrv.AgentExecutor. Mid-flight cancellation is not
// supported; the call always fails rather than silently succeeding.
func (e *Executor) Cancel(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue) error {
	return e.dispatcher.Cancel(ctx)
}

// userInput concatenates the text parts of an inbound message.
func userInput(msg *a2a.Message) string {
	var b strings.Builder
	for _, part := range msg.Parts {
		if tp, ok := part.(a2a.TextPart); ok {
			b.WriteString(tp.Text)
		}
	}
	return b.String()
}
