package cmd

import (
	"github.com/harrison/mdsweep/internal/linter"
	"github.com/spf13/cobra"
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [directory]",
		Short: "Lint markdown files without modifying them",
		Long: `Scan discovers markdown files under the directory (default: current
directory), filters them through .gitignore-derived exclusion patterns, and
reports lint violations without modifying any file.

Exit code 0 means every checked file passed; exit code 1 means at least one
file has genuine lint violations. Files the linter itself crashed on are
reported as skipped and do not affect the exit code.

Examples:
  mdsweep scan
  mdsweep scan docs/
  mdsweep scan --disable MD013,MD033 docs/
  mdsweep scan --engine builtin --verbose
  mdsweep scan --exclude '**/drafts/**' docs/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, linter.ModeScan)
		},
	}

	addLintFlags(cmd)

	return cmd
}
