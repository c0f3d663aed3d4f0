package rules

import (
	"strings"

	"github.com/harrison/mdsweep/internal/filelock"
)

// ApplyFixes rewrites the fixable subset of violations in source and
// returns the corrected content. Fixable rules: MD009 (trailing
// whitespace), MD012 (consecutive blank lines), MD047 (final newline).
// Disabled rules are left untouched. Structural rules (MD001, MD041)
// cannot be fixed mechanically and are only reported.
func ApplyFixes(source []byte, disabled map[string]bool) []byte {
	if len(source) == 0 {
		return source
	}

	lines := splitLines(source)

	if !disabled["MD009"] {
		for i, line := range lines {
			lines[i] = strings.TrimRight(line, " \t")
		}
	}

	if !disabled["MD012"] {
		collapsed := make([]string, 0, len(lines))
		blanks := 0
		for _, line := range lines {
			if strings.TrimSpace(line) == "" {
				blanks++
				if blanks > 1 {
					continue
				}
				// Preserve the first blank of a run as empty
				line = ""
			} else {
				blanks = 0
			}
			collapsed = append(collapsed, line)
		}
		lines = collapsed
	}

	out := strings.Join(lines, "\n")

	if !disabled["MD047"] {
		out = strings.TrimRight(out, "\n") + "\n"
	} else if strings.HasSuffix(string(source), "\n") {
		out += "\n"
	}

	return []byte(out)
}

// writeFixed persists corrected content atomically so an interrupted fix
// run never leaves a half-written markdown file behind.
func writeFixed(path string, data []byte) error {
	return filelock.AtomicWrite(path, data)
}
