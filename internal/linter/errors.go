package linter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// FileError represents a problem linting a single file.
type FileError struct {
	Path      string    // File that failed
	Message   string    // Human-readable error message
	Err       error     // Underlying error (optional)
	Timestamp time.Time // When the error occurred
}

// NewFileError creates a new FileError with the current timestamp.
func NewFileError(path, msg string, err error) *FileError {
	return &FileError{
		Path:      path,
		Message:   msg,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// Error implements the error interface for FileError.
func (e *FileError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("lint %s: %s", e.Path, e.Message))
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying error for error wrapping support.
func (e *FileError) Unwrap() error {
	return e.Err
}

// BatchError aggregates the genuine lint failures of one run.
type BatchError struct {
	FileErrors []*FileError // Individual file failures
	TotalFiles int          // Total number of files attempted
}

// NewBatchError creates an empty BatchError.
func NewBatchError(totalFiles int) *BatchError {
	return &BatchError{
		FileErrors: []*FileError{},
		TotalFiles: totalFiles,
	}
}

// AddFile records one genuine failure.
func (e *BatchError) AddFile(fileErr *FileError) {
	e.FileErrors = append(e.FileErrors, fileErr)
}

// Error implements the error interface for BatchError.
func (e *BatchError) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("lint failed: %d/%d files have violations",
		len(e.FileErrors), e.TotalFiles))

	if len(e.FileErrors) > 0 {
		sb.WriteString(":")
		for _, fileErr := range e.FileErrors {
			sb.WriteString(fmt.Sprintf("\n  - %s", fileErr.Error()))
		}
	}

	return sb.String()
}

// Unwrap returns the file errors so errors.Is and errors.As can traverse
// the chain.
func (e *BatchError) Unwrap() []error {
	if len(e.FileErrors) == 0 {
		return nil
	}

	errs := make([]error, len(e.FileErrors))
	for i, fileErr := range e.FileErrors {
		errs[i] = fileErr
	}
	return errs
}

// TimeoutError represents a per-file timeout during linting.
type TimeoutError struct {
	Path            string        // File whose invocation timed out
	TimeoutDuration time.Duration // Configured limit
	Timestamp       time.Time     // When the timeout occurred
}

// NewTimeoutError creates a new TimeoutError with the current timestamp.
func NewTimeoutError(path string, duration time.Duration) *TimeoutError {
	return &TimeoutError{
		Path:            path,
		TimeoutDuration: duration,
		Timestamp:       time.Now(),
	}
}

// Error implements the error interface for TimeoutError.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("lint %s: timeout after %v", e.Path, e.TimeoutDuration)
}

// Unwrap returns context.DeadlineExceeded to support error wrapping.
func (e *TimeoutError) Unwrap() error {
	return context.DeadlineExceeded
}

// IsFileError checks if the error is or wraps a FileError.
func IsFileError(err error) bool {
	if err == nil {
		return false
	}
	var fe *FileError
	return errors.As(err, &fe)
}

// IsTimeoutError checks if the error is or wraps a TimeoutError or
// context.DeadlineExceeded.
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}

	var te *TimeoutError
	if errors.As(err, &te) {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded)
}

// IsBatchError checks if the error is or wraps a BatchError.
func IsBatchError(err error) bool {
	if err == nil {
		return false
	}
	var be *BatchError
	return errors.As(err, &be)
}
