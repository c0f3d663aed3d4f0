package linter

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFileErrorFormatting(t *testing.T) {
	base := errors.New("exit status 1")
	fe := NewFileError("docs/guide.md", "lint violations reported", base)

	assert.Equal(t, "lint docs/guide.md: lint violations reported: exit status 1", fe.Error())
	assert.ErrorIs(t, fe, base)
	assert.False(t, fe.Timestamp.IsZero())
}

func TestFileErrorWithoutUnderlying(t *testing.T) {
	fe := NewFileError("a.md", "lint violations reported", nil)
	assert.Equal(t, "lint a.md: lint violations reported", fe.Error())
}

func TestBatchErrorAggregation(t *testing.T) {
	be := NewBatchError(5)
	be.AddFile(NewFileError("a.md", "lint violations reported", nil))
	be.AddFile(NewFileError("b.md", "lint violations reported", nil))

	msg := be.Error()
	assert.Contains(t, msg, "2/5 files have violations")
	assert.Contains(t, msg, "a.md")
	assert.Contains(t, msg, "b.md")

	var fe *FileError
	assert.True(t, errors.As(be, &fe))
}

func TestTimeoutError(t *testing.T) {
	te := NewTimeoutError("slow.md", 30*time.Second)

	assert.Equal(t, "lint slow.md: timeout after 30s", te.Error())
	assert.ErrorIs(t, te, context.DeadlineExceeded)
	assert.True(t, IsTimeoutError(te))
	assert.True(t, IsTimeoutError(fmt.Errorf("wrapped: %w", te)))
	assert.True(t, IsTimeoutError(context.DeadlineExceeded))
	assert.False(t, IsTimeoutError(errors.New("other")))
	assert.False(t, IsTimeoutError(nil))
}

func TestErrorPredicates(t *testing.T) {
	fe := NewFileError("a.md", "msg", nil)
	be := NewBatchError(1)
	be.AddFile(fe)

	assert.True(t, IsFileError(fe))
	assert.True(t, IsFileError(fmt.Errorf("wrapped: %w", fe)))
	assert.True(t, IsFileError(be)) // traverses Unwrap() []error
	assert.False(t, IsFileError(nil))

	assert.True(t, IsBatchError(be))
	assert.True(t, IsBatchError(fmt.Errorf("wrapped: %w", be)))
	assert.False(t, IsBatchError(fe))
	assert.False(t, IsBatchError(nil))
}

func TestBuildCommandArgs(t *testing.T) {
	tr := NewToolRunner("markdownlint", ModeFix, []string{"MD013", "MD033"})

	args := tr.BuildCommandArgs("docs/guide.md")
	assert.Equal(t, []string{"fix", "--disable", "MD013", "MD033", "--", "docs/guide.md"}, args)
}

func TestBuildCommandArgsNoDisabledRules(t *testing.T) {
	tr := NewToolRunner("markdownlint", ModeScan, nil)

	args := tr.BuildCommandArgs("README.md")
	assert.Equal(t, []string{"scan", "README.md"}, args)
}
