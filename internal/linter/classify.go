package linter

import "strings"

// Outcome classifies a single file's lint invocation.
type Outcome int

const (
	// OutcomePassed means the tool exited zero.
	OutcomePassed Outcome = iota
	// OutcomeFailed means the tool reported genuine lint violations.
	OutcomeFailed
	// OutcomeSkipped means the tool crashed internally; the file was not
	// actually evaluated and the run is not failed on its account.
	OutcomeSkipped
)

// String returns the string representation of Outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomePassed:
		return "passed"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// DefaultCrashMarkers are output substrings that identify an internal tool
// crash rather than a reported violation. Exception-type names from the
// runtimes markdown linters are commonly written in.
var DefaultCrashMarkers = []string{
	"Traceback (most recent call last)",
	"Unhandled exception",
	"TypeError:",
	"ReferenceError:",
	"Cannot read properties",
	"panic:",
}

// Classify maps an invocation result to an outcome. A zero exit code always
// passes. A non-zero exit code is a genuine failure unless the captured
// output contains one of the crash markers, in which case the tool itself
// broke and the file is skipped.
func Classify(res *Result, crashMarkers []string) Outcome {
	if res.ExitCode == 0 {
		return OutcomePassed
	}

	for _, marker := range crashMarkers {
		if marker != "" && strings.Contains(res.Output, marker) {
			return OutcomeSkipped
		}
	}

	return OutcomeFailed
}
