// Package linter runs a markdown linter over a batch of files and
// classifies the outcome of each invocation.
//
// The external tool is an opaque collaborator: mdsweep only relies on its
// exit code and combined output text. The Runner interface isolates the
// subprocess boundary so batch logic is tested against fakes.
package linter

import (
	"context"
	"os/exec"
	"time"
)

// Mode selects between report-only and in-place-fix invocations.
type Mode string

const (
	// ModeScan reports violations without touching files.
	ModeScan Mode = "scan"
	// ModeFix rewrites files in place to correct fixable violations.
	ModeFix Mode = "fix"
)

// Result captures the outcome of a single linter invocation.
type Result struct {
	Output   string
	ExitCode int
	Duration time.Duration
}

// Runner executes a linter against one file.
type Runner interface {
	Run(ctx context.Context, path string) (*Result, error)
}

// ToolRunner invokes an external markdown linter binary per file.
type ToolRunner struct {
	// ToolPath is the executable name or path (e.g., "markdownlint").
	ToolPath string
	// Mode is passed to the tool as its first argument.
	Mode Mode
	// DisabledRules are rule codes suppressed via the tool's --disable flag.
	DisabledRules []string
	// Dir is the working directory for invocations; file paths are
	// resolved relative to it. Empty means the process working directory.
	Dir string
}

// NewToolRunner creates a ToolRunner for the given binary and mode.
func NewToolRunner(toolPath string, mode Mode, disabledRules []string) *ToolRunner {
	return &ToolRunner{
		ToolPath:      toolPath,
		Mode:          mode,
		DisabledRules: disabledRules,
	}
}

// BuildCommandArgs constructs the argument list for one invocation.
// Layout: <mode> [--disable <codes...> --] <path>
func (tr *ToolRunner) BuildCommandArgs(path string) []string {
	args := []string{string(tr.Mode)}

	if len(tr.DisabledRules) > 0 {
		args = append(args, "--disable")
		args = append(args, tr.DisabledRules...)
		args = append(args, "--")
	}

	args = append(args, path)
	return args
}

// Run executes the external tool against path, honoring ctx for
// cancellation and timeouts. A non-zero exit code is not an error here;
// classification happens downstream. The returned error covers failures
// to run the tool at all (missing binary, permission problems).
func (tr *ToolRunner) Run(ctx context.Context, path string) (*Result, error) {
	startTime := time.Now()

	cmd := exec.CommandContext(ctx, tr.ToolPath, tr.BuildCommandArgs(path)...)
	cmd.Dir = tr.Dir
	output, err := cmd.CombinedOutput()

	result := &Result{
		Output:   string(output),
		Duration: time.Since(startTime),
	}

	if err != nil {
		// A killed subprocess surfaces as an ExitError; report the
		// context error instead so callers see the timeout as such.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}

	return result, nil
}

// LookPath reports whether the tool binary can be resolved on PATH.
func (tr *ToolRunner) LookPath() bool {
	_, err := exec.LookPath(tr.ToolPath)
	return err == nil
}
