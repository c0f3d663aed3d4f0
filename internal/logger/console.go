// Package logger provides leveled console logging and run summaries for
// mdsweep. Output is timestamp-prefixed, thread-safe, and colorized when
// writing to a TTY.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// Summary describes the outcome of one lint run for reporting.
type Summary struct {
	Mode         string // "scan" or "fix"
	Engine       string // "tool" or "builtin"
	Total        int
	Passed       int
	Failed       int
	Skipped      int
	Duration     time.Duration
	FailedPaths  []string
	SkippedPaths []string
}

// ConsoleLogger logs messages to a writer with [HH:MM:SS] timestamps and
// level filtering. Color output is enabled automatically when the writer
// is a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided
// io.Writer. If writer is nil, messages are silently discarded.
// logLevel determines the minimum level for messages to be output; empty
// or invalid levels default to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}

	if f, ok := w.(*os.File); ok && (w == os.Stdout || w == os.Stderr) {
		// color.NoColor honors the NO_COLOR convention
		return isatty.IsTerminal(f.Fd()) && !color.NoColor
	}

	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates
// it, defaulting to "info".
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if validLevels[normalized] {
		return normalized
	}

	return "info" // Default level
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo // Default to info if unknown
	}
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel logs a message at the specified level if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}

	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string

	if cl.colorOutput {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, colorizeLevel(level), message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

// colorizeLevel formats a level tag with its ANSI color.
func colorizeLevel(level string) string {
	switch strings.ToUpper(level) {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(level)
	case "INFO":
		return color.New(color.FgBlue).Sprint(level)
	case "WARN":
		return color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		return color.New(color.FgRed).Sprint(level)
	default:
		return level
	}
}

// LogSummary logs the end-of-run summary at INFO level: totals, then the
// failing paths in red and the skipped paths in yellow.
func (cl *ConsoleLogger) LogSummary(s Summary) {
	if cl.writer == nil {
		return
	}

	if !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	durationStr := formatDuration(s.Duration)

	var output string

	if cl.colorOutput {
		header := color.New(color.Bold).Sprintf("=== Lint Summary (%s, %s engine) ===", s.Mode, s.Engine)
		output = fmt.Sprintf("[%s] %s\n", ts, header)
		output += fmt.Sprintf("[%s] Files checked: %d\n", ts, s.Total)

		passedText := color.New(color.FgGreen).Sprintf("Passed: %d", s.Passed)
		output += fmt.Sprintf("[%s] %s\n", ts, passedText)

		if s.Failed > 0 {
			failedText := color.New(color.FgRed).Sprintf("Failed: %d", s.Failed)
			output += fmt.Sprintf("[%s] %s\n", ts, failedText)
		} else {
			output += fmt.Sprintf("[%s] Failed: %d\n", ts, s.Failed)
		}

		if s.Skipped > 0 {
			skippedText := color.New(color.FgYellow).Sprintf("Skipped (tool errors): %d", s.Skipped)
			output += fmt.Sprintf("[%s] %s\n", ts, skippedText)
		} else {
			output += fmt.Sprintf("[%s] Skipped (tool errors): %d\n", ts, s.Skipped)
		}

		output += fmt.Sprintf("[%s] Duration: %s\n", ts, durationStr)

		if len(s.FailedPaths) > 0 {
			failedHeader := color.New(color.FgRed).Sprint("Files with violations:")
			output += fmt.Sprintf("[%s] %s\n", ts, failedHeader)
			for _, path := range s.FailedPaths {
				output += fmt.Sprintf("[%s]   - %s\n", ts, color.New(color.FgRed).Sprint(path))
			}
		}

		if len(s.SkippedPaths) > 0 {
			skippedHeader := color.New(color.FgYellow).Sprint("Files skipped (tool errors):")
			output += fmt.Sprintf("[%s] %s\n", ts, skippedHeader)
			for _, path := range s.SkippedPaths {
				output += fmt.Sprintf("[%s]   - %s\n", ts, color.New(color.FgYellow).Sprint(path))
			}
		}
	} else {
		output = fmt.Sprintf("[%s] === Lint Summary (%s, %s engine) ===\n", ts, s.Mode, s.Engine)
		output += fmt.Sprintf("[%s] Files checked: %d\n", ts, s.Total)
		output += fmt.Sprintf("[%s] Passed: %d\n", ts, s.Passed)
		output += fmt.Sprintf("[%s] Failed: %d\n", ts, s.Failed)
		output += fmt.Sprintf("[%s] Skipped (tool errors): %d\n", ts, s.Skipped)
		output += fmt.Sprintf("[%s] Duration: %s\n", ts, durationStr)

		if len(s.FailedPaths) > 0 {
			output += fmt.Sprintf("[%s] Files with violations:\n", ts)
			for _, path := range s.FailedPaths {
				output += fmt.Sprintf("[%s]   - %s\n", ts, path)
			}
		}

		if len(s.SkippedPaths) > 0 {
			output += fmt.Sprintf("[%s] Files skipped (tool errors):\n", ts)
			for _, path := range s.SkippedPaths {
				output += fmt.Sprintf("[%s]   - %s\n", ts, path)
			}
		}
	}

	cl.writer.Write([]byte(output))
}

// timestamp returns the current time formatted as HH:MM:SS.
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "5s", "1m30s", "2h15m"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		remainder := d % time.Hour
		if remainder == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		minutes := remainder / time.Minute
		remainder = remainder % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	case d >= time.Minute:
		minutes := d / time.Minute
		remainder := d % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	}
}

// NoOpLogger discards all log messages. Useful for tests.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// LogTrace is a no-op implementation.
func (n *NoOpLogger) LogTrace(message string) {}

// LogDebug is a no-op implementation.
func (n *NoOpLogger) LogDebug(message string) {}

// LogInfo is a no-op implementation.
func (n *NoOpLogger) LogInfo(message string) {}

// LogWarn is a no-op implementation.
func (n *NoOpLogger) LogWarn(message string) {}

// LogError is a no-op implementation.
func (n *NoOpLogger) LogError(message string) {}

// LogSummary is a no-op implementation.
func (n *NoOpLogger) LogSummary(s Summary) {}
