package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harrison/mdsweep/internal/config"
	"github.com/harrison/mdsweep/internal/filelock"
	"github.com/harrison/mdsweep/internal/fileutil"
	"github.com/harrison/mdsweep/internal/history"
	"github.com/harrison/mdsweep/internal/ignore"
	"github.com/harrison/mdsweep/internal/linter"
	"github.com/harrison/mdsweep/internal/logger"
	"github.com/harrison/mdsweep/internal/rules"
	"github.com/spf13/cobra"
)

// addLintFlags registers the flags shared by scan and fix.
func addLintFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: <dir>/.mdsweep/config.yaml)")
	cmd.Flags().String("gitignore", "", "Path to .gitignore (default: <dir>/.gitignore)")
	cmd.Flags().StringArray("exclude", nil, "Extra exclusion pattern (repeatable)")
	cmd.Flags().StringSlice("disable", nil, "Rule codes to disable (overrides config)")
	cmd.Flags().String("engine", "", "Lint engine: auto, tool, or builtin")
	cmd.Flags().String("timeout", "", "Per-file timeout (e.g., 30s, 2m; 0 disables)")
	cmd.Flags().Bool("verbose", false, "Show per-file results")
	cmd.Flags().Bool("no-history", false, "Do not record this run in history")
}

// loadMergedConfig loads configuration for dir and applies flag overrides.
func loadMergedConfig(cmd *cobra.Command, dir string) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	// Build flag pointers for merge (only values the user set)
	var enginePtr *string
	if cmd.Flags().Changed("engine") {
		engine, _ := cmd.Flags().GetString("engine")
		enginePtr = &engine
	}

	var timeoutPtr *time.Duration
	if cmd.Flags().Changed("timeout") {
		timeoutStr, _ := cmd.Flags().GetString("timeout")
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout format %q: %w", timeoutStr, err)
		}
		timeoutPtr = &timeout
	}

	var disabledRules []string
	if cmd.Flags().Changed("disable") {
		disabledRules, _ = cmd.Flags().GetStringSlice("disable")
	}

	extraExcludes, _ := cmd.Flags().GetStringArray("exclude")

	var noHistoryPtr *bool
	if cmd.Flags().Changed("no-history") {
		noHistory, _ := cmd.Flags().GetBool("no-history")
		noHistoryPtr = &noHistory
	}

	cfg.MergeWithFlags(enginePtr, timeoutPtr, disabledRules, extraExcludes, noHistoryPtr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// discoverFiles loads exclusion patterns and scans dir for markdown files.
func discoverFiles(cmd *cobra.Command, dir string, cfg *config.Config, log *logger.ConsoleLogger) ([]string, error) {
	gitignorePath, _ := cmd.Flags().GetString("gitignore")
	if gitignorePath == "" {
		gitignorePath = filepath.Join(dir, ".gitignore")
	}

	patterns, err := ignore.LoadPatterns(gitignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load gitignore patterns: %w", err)
	}
	patterns = append(patterns, cfg.Exclude...)

	log.LogDebug(fmt.Sprintf("using %d exclusion pattern(s)", len(patterns)))

	result, err := fileutil.ScanMarkdown(dir, patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	for _, scanErr := range result.Errors {
		log.LogWarn(scanErr.Error())
	}

	return result.Files, nil
}

// selectRunner picks the lint engine per config. With "auto", the external
// tool wins when its binary resolves on PATH.
func selectRunner(cfg *config.Config, mode linter.Mode, dir string) (linter.Runner, string) {
	tool := linter.NewToolRunner(cfg.LinterPath, mode, cfg.DisabledRules)
	tool.Dir = dir

	switch cfg.Engine {
	case "tool":
		return tool, "tool"
	case "builtin":
		return newBuiltinEngine(cfg, mode, dir), "builtin"
	default: // auto
		if tool.LookPath() {
			return tool, "tool"
		}
		return newBuiltinEngine(cfg, mode, dir), "builtin"
	}
}

func newBuiltinEngine(cfg *config.Config, mode linter.Mode, dir string) *rules.Engine {
	return rules.NewEngine(rules.Options{
		DisabledRules: cfg.DisabledRules,
		LineLength:    cfg.LineLength,
		Mode:          mode,
		Root:          dir,
	})
}

// runLint implements the shared scan/fix flow: discover, filter, lint each
// file once, summarize, record history, and propagate genuine failures.
func runLint(cmd *cobra.Command, args []string, mode linter.Mode) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	cfg, err := loadMergedConfig(cmd, dir)
	if err != nil {
		return err
	}

	logLevel := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logLevel = "debug"
	}
	log := logger.NewConsoleLogger(os.Stdout, logLevel)

	files, err := discoverFiles(cmd, dir, cfg, log)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		log.LogInfo("no markdown files to lint")
		return nil
	}
	log.LogInfo(fmt.Sprintf("linting %d markdown file(s) in %s", len(files), dir))

	// Fix mode rewrites files; hold the run lock so two fix runs cannot
	// race on the same tree
	if mode == linter.ModeFix {
		lock := filelock.NewRunLock(filepath.Join(dir, ".mdsweep", "run.lock"))
		if err := lock.Acquire(); err != nil {
			return err
		}
		defer lock.Release()
	}

	runner, engineName := selectRunner(cfg, mode, dir)
	log.LogDebug(fmt.Sprintf("using %s engine", engineName))

	batch := linter.NewBatch(runner, cfg.CrashMarkers, cfg.Timeout, log)
	result, batchErr := batch.Process(cmd.Context(), files)

	log.LogSummary(logger.Summary{
		Mode:         string(mode),
		Engine:       engineName,
		Total:        result.Total,
		Passed:       result.Passed,
		Failed:       result.Failed,
		Skipped:      result.Skipped,
		Duration:     result.Duration,
		FailedPaths:  result.FailedPaths,
		SkippedPaths: result.SkippedPaths,
	})

	if cfg.History.Enabled {
		recordHistory(cmd.Context(), dir, cfg, mode, engineName, result, log)
	}

	if batchErr != nil {
		if linter.IsBatchError(batchErr) {
			return fmt.Errorf("%d file(s) failed lint", result.Failed)
		}
		return batchErr
	}

	return nil
}

// recordHistory persists the run record. Failures here warn but never
// change the run's outcome.
func recordHistory(ctx context.Context, dir string, cfg *config.Config, mode linter.Mode, engineName string, result *linter.BatchResult, log *logger.ConsoleLogger) {
	dbPath := cfg.History.DBPath
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(dir, dbPath)
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		log.LogWarn(fmt.Sprintf("failed to open history store: %v", err))
		return
	}
	defer store.Close()

	run := &history.Run{
		Mode:         string(mode),
		Engine:       engineName,
		Root:         dir,
		TotalFiles:   result.Total,
		Passed:       result.Passed,
		Failed:       result.Failed,
		Skipped:      result.Skipped,
		FailedPaths:  result.FailedPaths,
		SkippedPaths: result.SkippedPaths,
		Duration:     result.Duration,
	}
	if err := store.RecordRun(ctx, run); err != nil {
		log.LogWarn(fmt.Sprintf("failed to record run history: %v", err))
		return
	}

	if err := store.Prune(ctx, cfg.History.KeepRuns); err != nil {
		log.LogWarn(fmt.Sprintf("failed to prune run history: %v", err))
	}
}
