// Package filelock provides the fix-run lock and atomic file rewrites.
//
// Fix mode mutates markdown files in place; the run lock keeps two
// concurrent fix runs from rewriting the same tree, and atomic writes keep
// readers from ever observing a half-written file.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// RunLock guards a working tree against concurrent fix runs. Scan runs do
// not take the lock since they never write.
type RunLock struct {
	flock *flock.Flock
	path  string
}

// NewRunLock creates a run lock backed by a lock file at path. Parent
// directories are created on Acquire.
func NewRunLock(path string) *RunLock {
	return &RunLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Acquire attempts to take the lock without blocking. Returns an error if
// another run holds it or the lock file cannot be created.
func (rl *RunLock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(rl.path), 0755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	acquired, err := rl.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", rl.path, err)
	}
	if !acquired {
		return fmt.Errorf("another fix run holds the lock at %s", rl.path)
	}
	return nil
}

// Release releases the lock.
func (rl *RunLock) Release() error {
	if err := rl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", rl.path, err)
	}
	return nil
}

// AtomicWrite writes data to a file atomically using a temp file and rename
// strategy. The temp file lives in the target's directory so the final
// rename stays on one filesystem.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	// Rename is atomic within one filesystem
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	tempFile = nil

	return nil
}
