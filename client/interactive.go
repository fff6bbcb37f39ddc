package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// stockWorkflows is the menu shown when the server's card advertises no
// skills.
var stockWorkflows = []string{
	"router_workflow",
	"chaining_workflow",
	"parallel_workflow",
	"orchestrator_workflow",
	"evaluator_optimizer_workflow",
	"human_input_workflow",
}

// Interactive runs a turn-by-turn conversation: the operator picks a
// workflow from an enumerated menu, then exchanges messages until "quit" or
// "exit".
func Interactive(ctx context.Context, c *Client, in io.Reader, out io.Writer) error {
	header := color.New(color.FgCyan, color.Bold)
	agentText := color.New(color.FgGreen)
	errText := color.New(color.FgRed)

	workflows := c.WorkflowNames()
	if len(workflows) == 0 {
		workflows = stockWorkflows
	}

	header.Fprintln(out, "Available workflows:")
	for i, wf := range workflows {
		fmt.Fprintf(out, "  %d. %s\n", i+1, wf)
	}
	fmt.Fprintf(out, "\nSelect workflow (1-%d, default 1): ", len(workflows))

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return scanner.Err()
	}
	selected := workflows[parseChoice(scanner.Text(), len(workflows))]

	fmt.Fprintf(out, "\nUsing: %s\nType 'quit' to exit\n\n", selected)

	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		message := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(message) {
		case "quit", "exit":
			return nil
		case "":
			continue
		}

		fmt.Fprintln(out, "Agent is thinking...")
		response, err := c.Send(ctx, selected, message)
		if err != nil {
			errText.Fprintf(out, "Error: %v\n\n", err)
			continue
		}
		agentText.Fprintf(out, "\nAgent: %s\n\n", response)
	}
}

// parseChoice maps a menu reply onto a zero-based index, defaulting to the
// first entry on anything unparseable or out of range.
func parseChoice(reply string, n int) int {
	choice, err := strconv.Atoi(strings.TrimSpace(reply))
	if err != nil || choice < 1 || choice > n {
		return 0
	}
	return choice - 1
}
