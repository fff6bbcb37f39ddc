package tool

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionTool_Call(t *testing.T) {
	sum := NewFunctionTool(
		"calculate_sum",
		"Calculate the sum of two numbers",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"a": map[string]any{"type": "number"},
				"b": map[string]any{"type": "number"},
			},
			"required": []string{"a", "b"},
		},
		func(ctx context.Context, args map[string]any) (any, error) {
			return args["a"].(float64) + args["b"].(float64), nil
		},
	)

	result, err := sum.Call(context.Background(), map[string]any{"a": 2.0, "b": 3.0})
	assert.NoError(t, err)
	assert.Equal(t, 5.0, result)
}

func TestFunctionTool_MissingRequiredArgument(t *testing.T) {
	echo := NewFunctionTool(
		"echo",
		"Echo the input",
		map[string]any{
			"type":     "object",
			"required": []string{"text"},
		},
		func(ctx context.Context, args map[string]any) (any, error) {
			return args["text"], nil
		},
	)

	_, err := echo.Call(context.Background(), map[string]any{})

	var toolErr *Error
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, CodeValidation, toolErr.Code)
	assert.Equal(t, "echo", toolErr.Tool)
}

func TestFunctionTool_WrapsExecutionError(t *testing.T) {
	failing := NewFunctionTool(
		"boom",
		"Always fails",
		map[string]any{"type": "object"},
		func(ctx context.Context, args map[string]any) (any, error) {
			return nil, errors.New("kaput")
		},
	)

	_, err := failing.Call(context.Background(), nil)

	var toolErr *Error
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, CodeExecution, toolErr.Code)
	assert.Contains(t, toolErr.Message, "kaput")
}

func TestFetchTool_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "page body")
	}))
	defer srv.Close()

	fetch := NewFetchTool()
	result, err := fetch.Call(context.Background(), map[string]any{"url": srv.URL})

	require.NoError(t, err)
	assert.Equal(t, "page body", result)
}

func TestFetchTool_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	fetch := NewFetchTool()
	_, err := fetch.Call(context.Background(), map[string]any{"url": srv.URL})

	var toolErr *Error
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, CodeExecution, toolErr.Code)
}

func TestFetchTool_RejectsNonHTTPScheme(t *testing.T) {
	fetch := NewFetchTool()
	_, err := fetch.Call(context.Background(), map[string]any{"url": "file:///etc/passwd"})

	var toolErr *Error
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, CodeValidation, toolErr.Code)
}

func TestFilesystemTools_RoundTrip(t *testing.T) {
	root := t.TempDir()
	write := NewWriteFileTool(root)
	read := NewReadFileTool(root)
	list := NewListDirectoryTool(root)

	_, err := write.Call(context.Background(), map[string]any{
		"path":    "notes/article.txt",
		"content": "AI article",
	})
	require.NoError(t, err)

	content, err := read.Call(context.Background(), map[string]any{"path": "notes/article.txt"})
	require.NoError(t, err)
	assert.Equal(t, "AI article", content)

	entries, err := list.Call(context.Background(), map[string]any{"path": "notes"})
	require.NoError(t, err)
	assert.Equal(t, "article.txt", entries)
}

func TestFilesystemTools_ConfinedToRoot(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(filepath.Dir(root), "outside.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o644))

	read := NewReadFileTool(root)
	// Path traversal is flattened inside the root rather than escaping it.
	_, err := read.Call(context.Background(), map[string]any{"path": "../outside.txt"})
	assert.Error(t, err)
}

func TestSuites(t *testing.T) {
	suites := Suites(t.TempDir())

	assert.Len(t, suites["fetch"], 1)
	assert.Len(t, suites["filesystem"], 3)
	assert.Equal(t, "fetch", suites["fetch"][0].Name())
}
