package linter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner returns scripted results per path and records invocations.
type fakeRunner struct {
	results map[string]*Result
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) Run(ctx context.Context, path string) (*Result, error) {
	f.calls = append(f.calls, path)
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	if res, ok := f.results[path]; ok {
		return res, nil
	}
	return &Result{}, nil
}

// noopLogger satisfies Logger without output.
type noopLogger struct{}

func (noopLogger) LogDebug(string) {}
func (noopLogger) LogInfo(string)  {}
func (noopLogger) LogWarn(string)  {}
func (noopLogger) LogError(string) {}

func TestBatchProcessAllPass(t *testing.T) {
	runner := &fakeRunner{}
	batch := NewBatch(runner, nil, 0, noopLogger{})

	files := []string{"a.md", "b.md", "c.md"}
	result, err := batch.Process(context.Background(), files)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.Passed)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, files, runner.calls)
}

func TestBatchProcessGenuineFailure(t *testing.T) {
	runner := &fakeRunner{
		results: map[string]*Result{
			"bad.md": {ExitCode: 1, Output: "bad.md:1 MD041 first line should be a top-level heading"},
		},
	}
	batch := NewBatch(runner, nil, 0, noopLogger{})

	result, err := batch.Process(context.Background(), []string{"ok.md", "bad.md", "also-ok.md"})

	require.Error(t, err)
	assert.True(t, IsBatchError(err))

	var batchErr *BatchError
	require.True(t, errors.As(err, &batchErr))
	require.Len(t, batchErr.FileErrors, 1)
	assert.Equal(t, "bad.md", batchErr.FileErrors[0].Path)

	assert.Equal(t, []string{"bad.md"}, result.FailedPaths)
	assert.Equal(t, 2, result.Passed)
	// Failure must not stop the batch
	assert.Equal(t, []string{"ok.md", "bad.md", "also-ok.md"}, runner.calls)
}

func TestBatchProcessCrashMarkerSkips(t *testing.T) {
	runner := &fakeRunner{
		results: map[string]*Result{
			"crash.md": {ExitCode: 1, Output: "Unhandled exception in rule engine"},
		},
	}
	batch := NewBatch(runner, nil, 0, noopLogger{})

	result, err := batch.Process(context.Background(), []string{"crash.md", "ok.md"})

	// A tool-internal crash alone never fails the run
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, []string{"crash.md"}, result.SkippedPaths)
	assert.Equal(t, 1, result.Passed)
	assert.Empty(t, result.FailedPaths)
}

func TestBatchProcessMixedFailureAndSkip(t *testing.T) {
	runner := &fakeRunner{
		results: map[string]*Result{
			"crash.md": {ExitCode: 1, Output: "Traceback (most recent call last):"},
			"bad.md":   {ExitCode: 1, Output: "bad.md:9 MD012 multiple consecutive blank lines"},
		},
	}
	batch := NewBatch(runner, nil, 0, noopLogger{})

	result, err := batch.Process(context.Background(), []string{"crash.md", "bad.md", "ok.md"})

	require.Error(t, err)
	assert.Equal(t, []string{"bad.md"}, result.FailedPaths)
	assert.Equal(t, []string{"crash.md"}, result.SkippedPaths)
	assert.Equal(t, 1, result.Passed)
	assert.Len(t, runner.calls, 3)
}

func TestBatchProcessInvocationErrorSkips(t *testing.T) {
	runner := &fakeRunner{
		errs: map[string]error{
			"a.md": errors.New("exec: \"markdownlint\": executable file not found in $PATH"),
		},
	}
	batch := NewBatch(runner, nil, 0, noopLogger{})

	result, err := batch.Process(context.Background(), []string{"a.md", "b.md"})

	require.NoError(t, err)
	assert.Equal(t, []string{"a.md"}, result.SkippedPaths)
	assert.Equal(t, 1, result.Passed)
	require.Len(t, result.Results, 2)
	assert.Error(t, result.Results[0].Err)
}

func TestBatchProcessCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &fakeRunner{}
	batch := NewBatch(runner, nil, 0, noopLogger{})

	_, err := batch.Process(ctx, []string{"a.md"})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, runner.calls)
}

func TestBatchCustomCrashMarkers(t *testing.T) {
	runner := &fakeRunner{
		results: map[string]*Result{
			"a.md": {ExitCode: 3, Output: "boom: internal assertion"},
		},
	}
	batch := NewBatch(runner, []string{"boom:"}, 0, noopLogger{})

	result, err := batch.Process(context.Background(), []string{"a.md"})

	require.NoError(t, err)
	assert.Equal(t, []string{"a.md"}, result.SkippedPaths)
}

func TestBatchDefaultMarkersWhenNil(t *testing.T) {
	batch := NewBatch(&fakeRunner{}, nil, time.Second, noopLogger{})
	assert.Equal(t, DefaultCrashMarkers, batch.crashMarkers)
}

func TestBatchNilLoggerFallsBackToNoOp(t *testing.T) {
	runner := &fakeRunner{
		results: map[string]*Result{
			"bad.md": {ExitCode: 1, Output: "bad.md:1 MD047 file should end with a single newline"},
		},
	}
	batch := NewBatch(runner, nil, 0, nil)

	result, err := batch.Process(context.Background(), []string{"ok.md", "bad.md"})

	require.Error(t, err)
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, []string{"bad.md"}, result.FailedPaths)
}
