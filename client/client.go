// Package client is the calling side of the multi-workflow server: an A2A
// client wrapper plus the scripted test battery and the interactive chat
// loop used by the CLI.
package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2aclient"
	"github.com/a2aproject/a2a-go/a2aclient/agentcard"

	"github.com/crenwick/loom/logging"
)

// Options configures a Client.
type Options struct {
	// Logger for request diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Client talks to a multi-workflow server over A2A JSON-RPC.
type Client struct {
	client *a2aclient.Client
	card   *a2a.AgentCard
	logger logging.Logger
}

// Dial resolves the server's agent card and connects.
func Dial(ctx context.Context, url string, optFns ...func(o *Options)) (*Client, error) {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	card, err := agentcard.DefaultResolver.Resolve(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("resolve agent card: %w", err)
	}
	cl, err := a2aclient.NewFromCard(ctx, card)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	return &Client{client: cl, card: card, logger: opts.Logger}, nil
}

// Card returns the resolved agent card.
func (c *Client) Card() *a2a.AgentCard { return c.card }

// WorkflowNames lists the workflow ids the server advertises as skills.
func (c *Client) WorkflowNames() []string {
	names := make([]string, 0, len(c.card.Skills))
	for _, skill := range c.card.Skills {
		names = append(names, skill.ID)
	}
	return names
}

// Send routes a message to the named workflow and returns the text response.
// An empty workflow name sends the message unrouted, leaving workflow
// selection to the server's default.
func (c *Client) Send(ctx context.Context, workflowName, message string) (string, error) {
	msg := a2a.NewMessage(a2a.MessageRoleUser, a2a.TextPart{Text: buildMessage(workflowName, message)})

	result, err := c.client.SendMessage(ctx, &a2a.MessageSendParams{Message: msg})
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}

	switch r := result.(type) {
	case *a2a.Message:
		return partsText(r.Parts), nil
	case *a2a.Task:
		return taskText(r)
	default:
		return "", fmt.Errorf("unexpected response type %T", result)
	}
}

// buildMessage applies the server's routing convention.
func buildMessage(workflowName, message string) string {
	if workflowName == "" {
		return message
	}
	return fmt.Sprintf("workflow:%s|%s", workflowName, message)
}

// taskText extracts the response text from a completed task, or the failure
// cause from a failed one.
func taskText(task *a2a.Task) (string, error) {
	if task.Status.State == a2a.TaskStateFailed {
		cause := "unknown cause"
		if task.Status.Message != nil {
			cause = partsText(task.Status.Message.Parts)
		}
		return "", fmt.Errorf("task failed: %s", cause)
	}

	var b strings.Builder
	for _, artifact := range task.Artifacts {
		b.WriteString(partsText(artifact.Parts))
	}
	if b.Len() == 0 && task.Status.Message != nil {
		return partsText(task.Status.Message.Parts), nil
	}
	return b.String(), nil
}

func partsText(parts []a2a.Part) string {
	var b strings.Builder
	for _, part := range parts {
		if tp, ok := part.(a2a.TextPart); ok {
			b.WriteString(tp.Text)
		}
	}
	return b.String()
}
