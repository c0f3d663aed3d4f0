package cmd

import (
	"fmt"
	"os"

	"github.com/harrison/mdsweep/internal/logger"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [directory]",
		Short: "Print the markdown files a lint run would process",
		Long: `List performs discovery and filtering only: it prints the markdown
files that scan or fix would pass to the linter, one per line, after
applying .gitignore-derived and configured exclusion patterns.

Examples:
  mdsweep list
  mdsweep list docs/
  mdsweep list --exclude '**/archive/**'`,
		Args: cobra.MaximumNArgs(1),
		RunE: listCommand,
	}

	cmd.Flags().String("config", "", "Path to config file (default: <dir>/.mdsweep/config.yaml)")
	cmd.Flags().String("gitignore", "", "Path to .gitignore (default: <dir>/.gitignore)")
	cmd.Flags().StringArray("exclude", nil, "Extra exclusion pattern (repeatable)")

	return cmd
}

// listCommand implements the list command logic
func listCommand(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	cfg, err := loadMergedConfig(cmd, dir)
	if err != nil {
		return err
	}

	// Discovery diagnostics go to stderr so stdout stays a clean file list
	log := logger.NewConsoleLogger(os.Stderr, "warn")

	files, err := discoverFiles(cmd, dir, cfg, log)
	if err != nil {
		return err
	}

	for _, file := range files {
		fmt.Fprintln(cmd.OutOrStdout(), file)
	}

	return nil
}
