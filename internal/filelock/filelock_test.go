package filelock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLockAcquireRelease(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), ".mdsweep", "run.lock")

	lock := NewRunLock(lockPath)
	require.NoError(t, lock.Acquire())
	require.NoError(t, lock.Release())

	// Reacquirable after release
	require.NoError(t, lock.Acquire())
	require.NoError(t, lock.Release())
}

func TestRunLockConflict(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "run.lock")

	first := NewRunLock(lockPath)
	require.NoError(t, first.Acquire())
	defer first.Release()

	second := NewRunLock(lockPath)
	err := second.Acquire()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "another fix run holds the lock")
}

func TestRunLockCreatesParentDirectory(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "deep", "nested", "run.lock")

	lock := NewRunLock(lockPath)
	require.NoError(t, lock.Acquire())
	defer lock.Release()

	_, err := os.Stat(filepath.Dir(lockPath))
	assert.NoError(t, err)
}

func TestAtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")

	require.NoError(t, AtomicWrite(path, []byte("# Title\n")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n", string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestAtomicWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("old content\n"), 0644))

	require.NoError(t, AtomicWrite(path, []byte("new content\n")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new content\n", string(content))
}

func TestAtomicWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")

	require.NoError(t, AtomicWrite(path, []byte("content\n")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "doc.md", entries[0].Name())
}

func TestAtomicWriteCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dir", "doc.md")

	require.NoError(t, AtomicWrite(path, []byte("content\n")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content\n", string(content))
}
