// Package inspect runs the gst-inspect-1.0 introspection tool and
// captures its standard output as UTF-8 text.
package inspect

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultPath is the binary looked up on PATH when no explicit tool
// path is configured.
const DefaultPath = "gst-inspect-1.0"

// ToolError reports a failed invocation: the process could not be
// started or exited with a non-zero status.
type ToolError struct {
	Path string
	Args []string
	Err  error
}

func (e *ToolError) Error() string {
	if len(e.Args) == 0 {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Path, strings.Join(e.Args, " "), e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// Tool invokes gst-inspect-1.0. Each invocation is a blocking child
// process whose stdout is fully drained and which is always reaped.
type Tool struct {
	path string
}

// New creates a Tool for the given binary path; empty means DefaultPath.
func New(path string) *Tool {
	if path == "" {
		path = DefaultPath
	}
	return &Tool{path: path}
}

// Path returns the configured binary path.
func (t *Tool) Path() string { return t.path }

// Listing runs the tool with no arguments and returns the summary
// listing, one plugin:feature[:description] line per feature.
func (t *Tool) Listing(ctx context.Context) (string, error) {
	return t.run(ctx)
}

// FeatureDetail runs the tool with the feature or type-finder name as
// its single argument and returns the report verbatim.
func (t *Tool) FeatureDetail(ctx context.Context, name string) (string, error) {
	return t.run(ctx, name)
}

// PluginDetail runs the tool with --plugin and returns the report verbatim.
func (t *Tool) PluginDetail(ctx context.Context, name string) (string, error) {
	return t.run(ctx, "--plugin", name)
}

func (t *Tool) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, t.path, args...)
	out, err := cmd.Output()
	if err != nil {
		return "", &ToolError{Path: t.path, Args: args, Err: err}
	}
	return string(out), nil
}
