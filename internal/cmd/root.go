package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for mdsweep
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mdsweep",
		Short: "Markdown lint batch runner",
		Long: `mdsweep discovers markdown files under a directory tree, filters them
through .gitignore-derived exclusion patterns, and lints each file with an
external markdown linter or the built-in rule engine.

Genuine lint violations fail the run (exit code 1). Files the linter itself
crashed on are skipped and reported separately without failing the run.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewFixCommand())
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
