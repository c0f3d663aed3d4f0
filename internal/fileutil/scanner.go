package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harrison/mdsweep/internal/ignore"
)

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Extensions is a list of file extensions to include (e.g., ".md")
	Extensions []string
	// ExcludePatterns is a list of doublestar glob patterns; any file or
	// directory whose root-relative path matches one is dropped
	ExcludePatterns []string
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains the root-relative, slash-separated paths of all
	// matched files, sorted for deterministic output
	Files []string
	// Errors contains any non-fatal errors encountered during scanning
	Errors []error
}

// ScanDirectory walks a directory tree for files matching the provided
// options. Directories matching an exclusion pattern are pruned so their
// contents are never visited. Non-fatal errors (unreadable subdirectories)
// are collected and the walk continues.
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	result := &ScanResult{
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}

	// Extension map for fast case-insensitive lookup
	extMap := make(map[string]bool)
	for _, ext := range opts.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extMap[strings.ToLower(ext)] = true
	}

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil // Continue walking
		}

		// Skip the root directory itself
		if path == dir {
			return nil
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to resolve path %s: %w", path, relErr))
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			// Prune excluded directories entirely
			if ignore.Matches(rel, opts.ExcludePatterns) {
				return filepath.SkipDir
			}
			return nil
		}

		if len(extMap) > 0 {
			ext := strings.ToLower(filepath.Ext(d.Name()))
			if !extMap[ext] {
				return nil
			}
		}

		if ignore.Matches(rel, opts.ExcludePatterns) {
			return nil
		}

		result.Files = append(result.Files, rel)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	// Sort files for consistent output
	sort.Strings(result.Files)

	return result, nil
}

// ScanMarkdown is a convenience wrapper that scans dir for markdown files,
// applying the given exclusion patterns.
func ScanMarkdown(dir string, excludePatterns []string) (*ScanResult, error) {
	return ScanDirectory(dir, ScanOptions{
		Extensions:      []string{".md"},
		ExcludePatterns: excludePatterns,
	})
}
