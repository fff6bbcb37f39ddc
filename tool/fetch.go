package tool

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxFetchBytes bounds the response body read by the fetch tool so a single
// page cannot blow up a model prompt.
const maxFetchBytes = 256 * 1024

// FetchTool retrieves the contents of a URL over HTTP GET. It backs the
// "fetch" capability granted to research and summarization agents.
type FetchTool struct {
	client *http.Client
}

// NewFetchTool constructs a FetchTool with a bounded request timeout.
func NewFetchTool() *FetchTool {
	return &FetchTool{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Name implements Tool.
func (t *FetchTool) Name() string { return "fetch" }

// Description implements Tool.
func (t *FetchTool) Description() string {
	return "Fetch the contents of a URL via HTTP GET and return the response body as text."
}

// Parameters implements Tool.
func (t *FetchTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": map[string]any{
				"type":        "string",
				"description": "The http(s) URL to fetch",
			},
		},
		"required": []string{"url"},
	}
}

// Call implements Tool.
func (t *FetchTool) Call(ctx context.Context, args map[string]any) (any, error) {
	url, err := stringArg(t.Name(), args, "url")
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, &Error{
			Tool:    t.Name(),
			Code:    CodeValidation,
			Message: fmt.Sprintf("unsupported URL scheme in %q", url),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Tool: t.Name(), Code: CodeValidation, Message: err.Error()}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &Error{Tool: t.Name(), Code: CodeExecution, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &Error{
			Tool:    t.Name(),
			Code:    CodeExecution,
			Message: fmt.Sprintf("GET %s returned status %d", url, resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, &Error{Tool: t.Name(), Code: CodeExecution, Message: err.Error()}
	}
	return string(body), nil
}
