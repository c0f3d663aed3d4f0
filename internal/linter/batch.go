package linter

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Logger receives progress messages during batch processing. The logger
// package provides console and no-op implementations.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
}

// FileResult records the outcome for one file.
type FileResult struct {
	Path    string
	Outcome Outcome
	Result  *Result // Raw invocation result, nil when the tool never ran
	Err     error   // Invocation-level error (tool missing, timeout), if any
}

// BatchResult aggregates a full run over the filtered file list.
type BatchResult struct {
	Results      []FileResult
	Total        int
	Passed       int
	Failed       int
	Skipped      int
	FailedPaths  []string
	SkippedPaths []string
	Duration     time.Duration
}

// Batch processes files sequentially through a Runner, one subprocess at a
// time, classifying each result. Failures never stop the batch; every file
// is attempted exactly once.
type Batch struct {
	runner       Runner
	crashMarkers []string
	timeout      time.Duration // Per-file limit, 0 disables
	log          Logger
}

// nopLogger discards all messages. It backs NewBatch's nil-logger fallback.
type nopLogger struct{}

func (nopLogger) LogDebug(message string) {}
func (nopLogger) LogInfo(message string)  {}
func (nopLogger) LogWarn(message string)  {}
func (nopLogger) LogError(message string) {}

// NewBatch creates a batch processor. A nil crashMarkers slice falls back
// to DefaultCrashMarkers, and a nil log to a no-op logger.
func NewBatch(runner Runner, crashMarkers []string, timeout time.Duration, log Logger) *Batch {
	if crashMarkers == nil {
		crashMarkers = DefaultCrashMarkers
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Batch{
		runner:       runner,
		crashMarkers: crashMarkers,
		timeout:      timeout,
		log:          log,
	}
}

// Process lints every file in order. The returned BatchResult is always
// populated; the error is a *BatchError when genuine lint failures were
// recorded, or a context error if the run was cancelled between files.
// Tool-internal crashes and timeouts are recorded as skips and never
// contribute to the error.
func (b *Batch) Process(ctx context.Context, files []string) (*BatchResult, error) {
	startTime := time.Now()

	result := &BatchResult{
		Results: make([]FileResult, 0, len(files)),
		Total:   len(files),
	}
	batchErr := NewBatchError(len(files))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			result.Duration = time.Since(startTime)
			return result, fmt.Errorf("run cancelled: %w", err)
		}

		fr := b.processFile(ctx, path)
		result.Results = append(result.Results, fr)

		switch fr.Outcome {
		case OutcomePassed:
			result.Passed++
			b.log.LogDebug(fmt.Sprintf("%s: passed", path))
		case OutcomeFailed:
			result.Failed++
			result.FailedPaths = append(result.FailedPaths, path)
			batchErr.AddFile(NewFileError(path, "lint violations reported", fr.Err))
			b.log.LogDebug(fmt.Sprintf("%s: failed (exit %d)", path, fr.Result.ExitCode))
		case OutcomeSkipped:
			result.Skipped++
			result.SkippedPaths = append(result.SkippedPaths, path)
			b.log.LogWarn(fmt.Sprintf("%s: skipped due to tool error", path))
		}
	}

	result.Duration = time.Since(startTime)

	if result.Failed > 0 {
		return result, batchErr
	}
	return result, nil
}

// processFile runs the linter on one path and classifies the outcome.
func (b *Batch) processFile(ctx context.Context, path string) FileResult {
	runCtx := ctx
	if b.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	res, err := b.runner.Run(runCtx, path)
	if err != nil {
		// A hung or unrunnable tool is a tool problem, not a lint
		// violation; record the file as skipped.
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return FileResult{
				Path:    path,
				Outcome: OutcomeSkipped,
				Result:  res,
				Err:     NewTimeoutError(path, b.timeout),
			}
		}
		return FileResult{
			Path:    path,
			Outcome: OutcomeSkipped,
			Result:  res,
			Err:     fmt.Errorf("failed to invoke linter: %w", err),
		}
	}

	return FileResult{
		Path:    path,
		Outcome: Classify(res, b.crashMarkers),
		Result:  res,
	}
}
