// Package fileutil provides directory scanning for lint candidates.
//
// The scanner centralizes file discovery for mdsweep: recursive traversal
// with case-insensitive extension filtering, glob-based exclusion (patterns
// come from internal/ignore), and error-tolerant walking that collects
// non-fatal errors instead of aborting.
//
// # Usage
//
// Markdown discovery with exclusions:
//
//	patterns, _ := ignore.LoadPatterns(".gitignore")
//	result, err := fileutil.ScanMarkdown(".", patterns)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, file := range result.Files {
//	    fmt.Println(file)
//	}
//
// General scanning:
//
//	result, err := fileutil.ScanDirectory("/path/to/docs", fileutil.ScanOptions{
//	    Extensions:      []string{".md", ".markdown"},
//	    ExcludePatterns: []string{"**/node_modules/**"},
//	})
//
// # Behavior notes
//
// Returned paths are relative to the scanned root and slash-separated on
// every platform; this keeps pattern matching and report output stable
// across OSes. Output is sorted alphabetically for deterministic runs.
//
// Directories matching an exclusion pattern are pruned, so a large
// node_modules tree costs nothing beyond one stat. Unreadable
// subdirectories are reported through ScanResult.Errors and do not stop
// the walk; only a missing or non-directory root is a fatal error.
package fileutil
