package tool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxReadBytes bounds file reads the same way fetch bounds response bodies.
const maxReadBytes = 256 * 1024

// resolvePath confines a user-supplied path to the tool's root directory.
// Cleaning the path against "/" strips any ".." traversal before joining, so
// the result always stays under root.
func resolvePath(toolName, root, p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", &Error{
			Tool:    toolName,
			Code:    CodeValidation,
			Message: "path must not be empty",
		}
	}
	return filepath.Join(filepath.Clean(root), filepath.Clean("/"+p)), nil
}

// NewReadFileTool returns a tool that reads a text file under root.
func NewReadFileTool(root string) *FunctionTool {
	return NewFunctionTool(
		"read_file",
		"Read a text file from the workspace and return its contents.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Path of the file, relative to the workspace root",
				},
			},
			"required": []string{"path"},
		},
		func(ctx context.Context, args map[string]any) (any, error) {
			p, err := stringArg("read_file", args, "path")
			if err != nil {
				return nil, err
			}
			resolved, err := resolvePath("read_file", root, p)
			if err != nil {
				return nil, err
			}
			data, err := os.ReadFile(resolved)
			if err != nil {
				return nil, err
			}
			if len(data) > maxReadBytes {
				data = data[:maxReadBytes]
			}
			return string(data), nil
		},
	)
}

// NewWriteFileTool returns a tool that writes a text file under root,
// creating parent directories as needed.
func NewWriteFileTool(root string) *FunctionTool {
	return NewFunctionTool(
		"write_file",
		"Write text content to a file in the workspace, replacing any existing contents.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Path of the file, relative to the workspace root",
				},
				"content": map[string]any{
					"type":        "string",
					"description": "Full text content to write",
				},
			},
			"required": []string{"path", "content"},
		},
		func(ctx context.Context, args map[string]any) (any, error) {
			p, err := stringArg("write_file", args, "path")
			if err != nil {
				return nil, err
			}
			content, err := stringArg("write_file", args, "content")
			if err != nil {
				return nil, err
			}
			resolved, err := resolvePath("write_file", root, p)
			if err != nil {
				return nil, err
			}
			if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
				return nil, err
			}
			if err := os.WriteFile(resolved, []byte(content), 0o644); err != nil {
				return nil, err
			}
			return fmt.Sprintf("wrote %d bytes to %s", len(content), p), nil
		},
	)
}

// NewListDirectoryTool returns a tool that lists directory entries under
// root.
func NewListDirectoryTool(root string) *FunctionTool {
	return NewFunctionTool(
		"list_directory",
		"List the entries of a directory in the workspace.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Directory path, relative to the workspace root",
				},
			},
			"required": []string{"path"},
		},
		func(ctx context.Context, args map[string]any) (any, error) {
			p, err := stringArg("list_directory", args, "path")
			if err != nil {
				return nil, err
			}
			resolved, err := resolvePath("list_directory", root, p)
			if err != nil {
				return nil, err
			}
			entries, err := os.ReadDir(resolved)
			if err != nil {
				return nil, err
			}
			names := make([]string, 0, len(entries))
			for _, e := range entries {
				name := e.Name()
				if e.IsDir() {
					name += "/"
				}
				names = append(names, name)
			}
			return strings.Join(names, "\n"), nil
		},
	)
}

// Suites groups the built-in tools under the capability names used in agent
// configuration: "fetch" and "filesystem".
func Suites(workspaceRoot string) map[string][]Tool {
	return map[string][]Tool{
		"fetch": {NewFetchTool()},
		"filesystem": {
			NewReadFileTool(workspaceRoot),
			NewWriteFileTool(workspaceRoot),
			NewListDirectoryTool(workspaceRoot),
		},
	}
}
