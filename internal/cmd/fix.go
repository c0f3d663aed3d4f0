package cmd

import (
	"github.com/harrison/mdsweep/internal/linter"
	"github.com/spf13/cobra"
)

// NewFixCommand creates the fix command
func NewFixCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [directory]",
		Short: "Lint markdown files and rewrite fixable violations in place",
		Long: `Fix runs the linter in fix mode: fixable violations are corrected by
rewriting the file in place, and remaining violations are reported.

A run lock under .mdsweep/ prevents two concurrent fix runs from rewriting
the same tree. Classification matches scan: genuine lint failures set exit
code 1, tool-internal crashes skip the file without failing the run, and
every file is attempted even after earlier failures.

Examples:
  mdsweep fix
  mdsweep fix docs/
  mdsweep fix --engine builtin docs/
  mdsweep fix --timeout 30s --verbose`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, linter.ModeFix)
		},
	}

	addLintFlags(cmd)

	return cmd
}
