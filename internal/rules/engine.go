// Package rules implements a small built-in markdown lint engine.
//
// The engine covers a subset of the common md-style rules so mdsweep can
// run without the external linter installed. Rule codes match the external
// tool's codes, so the same disabled-rule configuration applies to both.
package rules

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/harrison/mdsweep/internal/linter"
)

// Violation is a single rule hit within a file.
type Violation struct {
	Line    int    // 1-based line number
	Rule    string // Rule code, e.g. "MD009"
	Message string
}

// Options configures the engine.
type Options struct {
	// DisabledRules are rule codes to suppress (same codes the external
	// tool accepts).
	DisabledRules []string
	// LineLength enables MD013 when > 0.
	LineLength int
	// Mode selects scan or fix behavior.
	Mode linter.Mode
	// Root is the directory file paths are resolved against. Empty means
	// the process working directory.
	Root string
}

// Engine checks markdown files against the built-in rule set. It
// implements linter.Runner so the batch layer treats it exactly like the
// external tool.
type Engine struct {
	disabled   map[string]bool
	lineLength int
	mode       linter.Mode
	root       string
}

// NewEngine creates an Engine from options.
func NewEngine(opts Options) *Engine {
	disabled := make(map[string]bool)
	for _, rule := range opts.DisabledRules {
		disabled[strings.ToUpper(strings.TrimSpace(rule))] = true
	}
	return &Engine{
		disabled:   disabled,
		lineLength: opts.LineLength,
		mode:       opts.Mode,
		root:       opts.Root,
	}
}

// Run checks (and in fix mode rewrites) one file. Violations are reported
// in the tool's "path:line code message" format with exit code 1; a clean
// file yields exit code 0. I/O problems reading the file are returned as
// errors, which the batch layer records as tool-error skips.
func (e *Engine) Run(ctx context.Context, path string) (*linter.Result, error) {
	startTime := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fullPath := path
	if e.root != "" {
		fullPath = filepath.Join(e.root, path)
	}

	source, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if e.mode == linter.ModeFix {
		fixed := ApplyFixes(source, e.disabled)
		if !equalBytes(fixed, source) {
			if err := writeFixed(fullPath, fixed); err != nil {
				return nil, fmt.Errorf("failed to rewrite %s: %w", path, err)
			}
			source = fixed
		}
	}

	violations := e.Check(source)

	result := &linter.Result{Duration: time.Since(startTime)}
	if len(violations) > 0 {
		var sb strings.Builder
		for _, v := range violations {
			sb.WriteString(fmt.Sprintf("%s:%d %s %s\n", path, v.Line, v.Rule, v.Message))
		}
		result.Output = sb.String()
		result.ExitCode = 1
	}

	return result, nil
}

// Check runs all enabled rules against source and returns violations
// sorted by line number.
func (e *Engine) Check(source []byte) []Violation {
	var violations []Violation

	checks := []struct {
		rule string
		fn   func([]byte) []Violation
	}{
		{"MD001", checkHeadingIncrement},
		{"MD009", checkTrailingWhitespace},
		{"MD012", checkConsecutiveBlanks},
		{"MD041", checkFirstLineHeading},
		{"MD047", checkFinalNewline},
	}

	for _, c := range checks {
		if e.disabled[c.rule] {
			continue
		}
		violations = append(violations, c.fn(source)...)
	}

	if e.lineLength > 0 && !e.disabled["MD013"] {
		violations = append(violations, checkLineLength(source, e.lineLength)...)
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].Line != violations[j].Line {
			return violations[i].Line < violations[j].Line
		}
		return violations[i].Rule < violations[j].Rule
	})

	return violations
}

func equalBytes(a, b []byte) bool {
	return string(a) == string(b)
}
