// Package ignore derives path-exclusion patterns from a .gitignore file.
//
// This is deliberately not a full gitignore implementation. Only two line
// shapes produce patterns: entries with a trailing slash, and bare entries
// with no wildcard characters and no file extension (treated as directory
// names). Negation, anchoring, and nested .gitignore files are not supported.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ToolingPattern is always present in the pattern list, whether or not a
// .gitignore exists. It keeps agent scratch directories out of lint runs.
const ToolingPattern = "**/.claude/**"

// LoadPatterns reads a .gitignore file and derives exclusion patterns from it.
// A missing file is not an error; the result still contains ToolingPattern.
func LoadPatterns(path string) ([]string, error) {
	patterns := []string{ToolingPattern}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return patterns, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if p, ok := patternFromLine(line); ok {
			patterns = append(patterns, p)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return patterns, nil
}

// patternFromLine converts a single .gitignore line into an exclusion pattern.
// Returns false for lines this tool does not act on.
func patternFromLine(line string) (string, bool) {
	if line == "" || strings.HasPrefix(line, "#") {
		return "", false
	}

	// Trailing slash marks a directory entry.
	if strings.HasSuffix(line, "/") {
		name := strings.TrimSuffix(line, "/")
		if name == "" {
			return "", false
		}
		return dirPattern(name), true
	}

	// Heuristic: no wildcards and no extension, assume a directory name.
	// An entry like "LICENSE" gets misread as a directory here; matching it
	// against file paths is harmless since directories of that name are the
	// only thing the pattern can hit.
	if !strings.ContainsAny(line, "*?[") && filepath.Ext(line) == "" {
		return dirPattern(line), true
	}

	return "", false
}

// dirPattern builds a pattern matching the named directory at any depth.
func dirPattern(name string) string {
	return "**/" + strings.Trim(name, "/") + "/**"
}

// Matches reports whether path matches any of the exclusion patterns.
// Paths are slash-normalized and made relative-looking before matching so
// both "./docs/x.md" and "docs\x.md" behave the same.
func Matches(path string, patterns []string) bool {
	normalized := normalize(path)
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, normalized); err == nil && ok {
			return true
		}
	}
	return false
}

// Filter returns the subset of paths matching none of the patterns,
// preserving order.
func Filter(paths []string, patterns []string) []string {
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if !Matches(p, patterns) {
			kept = append(kept, p)
		}
	}
	return kept
}

func normalize(path string) string {
	// filepath.ToSlash is a no-op on Unix, so rewrite backslashes directly.
	p := strings.ReplaceAll(path, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	return p
}
