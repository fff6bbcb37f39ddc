package client

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/crenwick/loom/internal/util"
)

// batteryPacing is the delay between battery requests.
const batteryPacing = time.Second

// batteryCase is one scripted request in the test battery.
type batteryCase struct {
	Workflow    string
	Message     string
	Description string
}

// batteryCases exercises one workflow per composition pattern.
var batteryCases = []batteryCase{
	{
		Workflow:    "router_workflow",
		Message:     "What are the top 5 programming languages in 2024?",
		Description: "ROUTER: smart routing to the best agent",
	},
	{
		Workflow:    "chaining_workflow",
		Message:     "https://fast-agent.ai",
		Description: "CHAINING: fetch, summarize, create social post",
	},
	{
		Workflow:    "parallel_workflow",
		Message:     "The quick brown fox jumps over the lazy dog.",
		Description: "PARALLEL: proofread, fact-check and style in parallel",
	},
	{
		Workflow:    "orchestrator_workflow",
		Message:     "Write a 100-word article about AI and save it to /tmp/article.txt",
		Description: "ORCHESTRATOR: plan, execute, review iteratively",
	},
	{
		Workflow:    "evaluator_optimizer_workflow",
		Message:     "Write a compelling mission statement for an AI startup",
		Description: "EVALUATOR-OPTIMIZER: generate, evaluate, refine",
	},
}

// RunBattery sends the scripted test requests with pacing between calls and
// writes truncated responses to out. Failures are reported inline and do not
// stop the remaining cases.
func RunBattery(ctx context.Context, c *Client, out io.Writer) error {
	header := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgYellow)
	errText := color.New(color.FgRed)

	header.Fprintln(out, "Multi-Workflow Server Test Battery")
	fmt.Fprintln(out)

	for i, tc := range batteryCases {
		if i > 0 {
			select {
			case <-time.After(batteryPacing):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		label.Fprintln(out, tc.Description)
		fmt.Fprintf(out, "Message: %s\n", tc.Message)

		response, err := c.Send(ctx, tc.Workflow, tc.Message)
		if err != nil {
			errText.Fprintf(out, "Error: %v\n\n", err)
			continue
		}
		fmt.Fprintf(out, "Response: %s\n\n", util.Truncate(response, 200))
	}

	header.Fprintln(out, "Test battery complete")
	return nil
}
