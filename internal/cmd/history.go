package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/harrison/mdsweep/internal/config"
	"github.com/harrison/mdsweep/internal/history"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [directory]",
		Short: "Show recent lint runs",
		Long: `History lists recent lint runs recorded in the run-history database
(.mdsweep/history.db by default), newest first.

Examples:
  mdsweep history
  mdsweep history docs/
  mdsweep history --limit 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: historyCommand,
	}

	cmd.Flags().String("config", "", "Path to config file (default: <dir>/.mdsweep/config.yaml)")
	cmd.Flags().Int("limit", 20, "Maximum number of runs to show")

	return cmd
}

// historyCommand implements the history command logic
func historyCommand(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
	} else {
		cfg, err = config.LoadConfigFromDir(dir)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbPath := cfg.History.DBPath
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(dir, dbPath)
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to read run history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-4s %-7s files=%-4d passed=%-4d failed=%-4d skipped=%-4d %s\n",
			run.CreatedAt.Format(time.DateTime), run.Mode, run.Engine,
			run.TotalFiles, run.Passed, run.Failed, run.Skipped,
			run.Duration.Round(time.Millisecond))
		for _, path := range run.FailedPaths {
			fmt.Fprintf(cmd.OutOrStdout(), "    failed:  %s\n", path)
		}
		for _, path := range run.SkippedPaths {
			fmt.Fprintf(cmd.OutOrStdout(), "    skipped: %s\n", path)
		}
	}

	return nil
}
