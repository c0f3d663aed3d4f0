package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		name        string
		logLevel    string
		logFn       func(*ConsoleLogger)
		wantLogged  bool
		wantContain string
	}{
		{
			name:        "info message at info level",
			logLevel:    "info",
			logFn:       func(cl *ConsoleLogger) { cl.LogInfo("hello") },
			wantLogged:  true,
			wantContain: "[INFO] hello",
		},
		{
			name:       "debug message filtered at info level",
			logLevel:   "info",
			logFn:      func(cl *ConsoleLogger) { cl.LogDebug("hidden") },
			wantLogged: false,
		},
		{
			name:        "debug message at debug level",
			logLevel:    "debug",
			logFn:       func(cl *ConsoleLogger) { cl.LogDebug("visible") },
			wantLogged:  true,
			wantContain: "[DEBUG] visible",
		},
		{
			name:        "trace message at trace level",
			logLevel:    "trace",
			logFn:       func(cl *ConsoleLogger) { cl.LogTrace("deep") },
			wantLogged:  true,
			wantContain: "[TRACE] deep",
		},
		{
			name:        "warn message at error level filtered",
			logLevel:    "error",
			logFn:       func(cl *ConsoleLogger) { cl.LogWarn("hidden") },
			wantLogged:  false,
		},
		{
			name:        "error message always shown",
			logLevel:    "error",
			logFn:       func(cl *ConsoleLogger) { cl.LogError("bad") },
			wantLogged:  true,
			wantContain: "[ERROR] bad",
		},
		{
			name:        "invalid level defaults to info",
			logLevel:    "shouting",
			logFn:       func(cl *ConsoleLogger) { cl.LogInfo("hello") },
			wantLogged:  true,
			wantContain: "[INFO] hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cl := NewConsoleLogger(&buf, tt.logLevel)

			tt.logFn(cl)

			if tt.wantLogged {
				assert.Contains(t, buf.String(), tt.wantContain)
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestConsoleLoggerNilWriter(t *testing.T) {
	cl := NewConsoleLogger(nil, "info")

	// Must not panic
	cl.LogInfo("dropped")
	cl.LogSummary(Summary{Total: 1})
}

func TestConsoleLoggerTimestampFormat(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	cl.LogInfo("message")

	// Line shape: [HH:MM:SS] [INFO] message
	line := strings.TrimSpace(buf.String())
	assert.Regexp(t, `^\[\d{2}:\d{2}:\d{2}\] \[INFO\] message$`, line)
}

func TestConsoleLoggerNoColorForBuffer(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	assert.False(t, cl.colorOutput)

	cl.LogError("plain")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestLogSummary(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	cl.LogSummary(Summary{
		Mode:         "fix",
		Engine:       "tool",
		Total:        10,
		Passed:       7,
		Failed:       2,
		Skipped:      1,
		Duration:     95 * time.Second,
		FailedPaths:  []string{"docs/a.md", "docs/b.md"},
		SkippedPaths: []string{"docs/crash.md"},
	})

	out := buf.String()
	assert.Contains(t, out, "=== Lint Summary (fix, tool engine) ===")
	assert.Contains(t, out, "Files checked: 10")
	assert.Contains(t, out, "Passed: 7")
	assert.Contains(t, out, "Failed: 2")
	assert.Contains(t, out, "Skipped (tool errors): 1")
	assert.Contains(t, out, "Duration: 1m35s")
	assert.Contains(t, out, "Files with violations:")
	assert.Contains(t, out, "docs/a.md")
	assert.Contains(t, out, "docs/b.md")
	assert.Contains(t, out, "Files skipped (tool errors):")
	assert.Contains(t, out, "docs/crash.md")
}

func TestLogSummaryCleanRunOmitsLists(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	cl.LogSummary(Summary{Mode: "scan", Engine: "builtin", Total: 3, Passed: 3})

	out := buf.String()
	assert.Contains(t, out, "Passed: 3")
	assert.NotContains(t, out, "Files with violations")
	assert.NotContains(t, out, "Files skipped (tool errors):\n")
}

func TestLogSummaryFilteredBelowInfo(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "error")

	cl.LogSummary(Summary{Total: 5})
	assert.Empty(t, buf.String())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Second, "5s"},
		{90 * time.Second, "1m30s"},
		{2 * time.Minute, "2m"},
		{time.Hour, "1h"},
		{time.Hour + 15*time.Minute, "1h15m"},
		{time.Hour + 15*time.Minute + 5*time.Second, "1h15m5s"},
		{500 * time.Millisecond, "0s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d), "duration %v", tt.d)
	}
}

func TestNoOpLogger(t *testing.T) {
	n := NewNoOpLogger()

	// Must not panic
	n.LogTrace("a")
	n.LogDebug("b")
	n.LogInfo("c")
	n.LogWarn("d")
	n.LogError("e")
	n.LogSummary(Summary{})
}
