// Package output provides the CLI's structured logging, progress
// reporting, exit-code policy, and startup banner. Grounded in the
// teacher's output package: one Logger with a verbosity gate, an
// optional terminal progress bar, and named operation timings.
package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// VerbosityLevel controls which categories of log line a Logger emits.
type VerbosityLevel int

const (
	// VerbosityQuiet suppresses everything but warnings and errors.
	VerbosityQuiet VerbosityLevel = iota
	// VerbosityNormal is the default: warnings, errors, and final results.
	VerbosityNormal
	// VerbosityVerbose additionally shows progress and statistics lines.
	VerbosityVerbose
	// VerbosityDebug additionally shows elapsed-time-prefixed diagnostics.
	VerbosityDebug
)

// Logger provides structured logging with verbosity control.
type Logger struct {
	verbosity    VerbosityLevel
	writer       io.Writer
	startTime    time.Time
	timings      map[string]time.Duration
	isTTY        bool
	progressBar  *progressbar.ProgressBar
	showProgress bool
}

// NewLogger creates a logger with the specified verbosity.
// Output goes to stderr to keep stdout clean for rendered call trees.
func NewLogger(verbosity VerbosityLevel) *Logger {
	writer := os.Stderr
	isTTY := IsTTY(writer)
	return &Logger{
		verbosity:    verbosity,
		writer:       writer,
		startTime:    time.Now(),
		timings:      make(map[string]time.Duration),
		isTTY:        isTTY,
		showProgress: isTTY,
	}
}

// NewLoggerWithWriter creates a logger with a custom output writer.
// Primarily used for testing.
func NewLoggerWithWriter(verbosity VerbosityLevel, w io.Writer) *Logger {
	isTTY := IsTTY(w)
	return &Logger{
		verbosity:    verbosity,
		writer:       w,
		startTime:    time.Now(),
		timings:      make(map[string]time.Duration),
		isTTY:        isTTY,
		showProgress: isTTY,
	}
}

// Progress logs a single progress line (shown in verbose and debug modes).
// This is the method functiondb.ProgressSink, cache.ProgressSink, and
// calltree.ProgressSink all expect, so a *Logger can be passed directly
// wherever those packages accept a sink.
func (l *Logger) Progress(msg string) {
	if l.verbosity >= VerbosityVerbose {
		fmt.Fprintln(l.writer, msg)
	}
}

// Progressf is the printf-style form of Progress, for call sites that
// build their own message, e.g. "parsing communication.c".
func (l *Logger) Progressf(format string, args ...interface{}) {
	if l.verbosity >= VerbosityVerbose {
		fmt.Fprintf(l.writer, format+"\n", args...)
	}
}

// Statistic logs statistics (shown in verbose and debug modes).
// Use for counts like "function database built: 842 functions, 3 errors".
func (l *Logger) Statistic(format string, args ...interface{}) {
	if l.verbosity >= VerbosityVerbose {
		fmt.Fprintf(l.writer, format+"\n", args...)
	}
}

// Debug logs debug diagnostics (shown only in debug mode).
// Includes an elapsed-time prefix for performance analysis.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.verbosity >= VerbosityDebug {
		elapsed := time.Since(l.startTime)
		prefix := formatDuration(elapsed)
		fmt.Fprintf(l.writer, "[%s] %s\n", prefix, fmt.Sprintf(format, args...))
	}
}

// Warning logs warnings (always shown).
func (l *Logger) Warning(format string, args ...interface{}) {
	fmt.Fprintf(l.writer, "Warning: %s\n", fmt.Sprintf(format, args...))
}

// Error logs errors (always shown).
func (l *Logger) Error(format string, args ...interface{}) {
	fmt.Fprintf(l.writer, "Error: %s\n", fmt.Sprintf(format, args...))
}

// StartTiming begins timing a named operation, e.g. "build", "trace".
func (l *Logger) StartTiming(name string) func() {
	start := time.Now()
	return func() {
		l.timings[name] = time.Since(start)
	}
}

// GetTiming returns the duration for a named operation.
func (l *Logger) GetTiming(name string) time.Duration {
	return l.timings[name]
}

// GetAllTimings returns all recorded timings.
func (l *Logger) GetAllTimings() map[string]time.Duration {
	result := make(map[string]time.Duration)
	for k, v := range l.timings {
		result[k] = v
	}
	return result
}

// PrintTimingSummary prints all timings (verbose mode only).
func (l *Logger) PrintTimingSummary() {
	if l.verbosity < VerbosityVerbose {
		return
	}
	fmt.Fprintln(l.writer, "\nTiming Summary:")
	for name, duration := range l.timings {
		fmt.Fprintf(l.writer, "  %s: %s\n", name, duration.Round(time.Millisecond))
	}
}

// formatDuration formats duration as MM:SS.mmm.
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis)
}

// Verbosity returns the current verbosity level.
func (l *Logger) Verbosity() VerbosityLevel {
	return l.verbosity
}

// IsVerbose returns true if verbose or debug mode is enabled.
func (l *Logger) IsVerbose() bool {
	return l.verbosity >= VerbosityVerbose
}

// IsDebug returns true if debug mode is enabled.
func (l *Logger) IsDebug() bool {
	return l.verbosity >= VerbosityDebug
}

// IsTTY returns true if the logger's output is connected to a terminal.
func (l *Logger) IsTTY() bool {
	return l.isTTY
}

// GetWriter returns the logger's output writer.
func (l *Logger) GetWriter() io.Writer {
	return l.writer
}

// StartProgress creates and displays a progress bar.
// For indeterminate operations (total = -1), shows a spinner; for
// determinate operations (total > 0), shows a percentage bar. When progress
// is disabled or the writer is not a TTY, it logs a "<description>..."
// line through Progressf instead (shown only in verbose or debug mode).
func (l *Logger) StartProgress(description string, total int) error {
	if !l.showProgress || !l.isTTY {
		l.Progressf("%s...", description)
		return nil
	}

	if l.progressBar != nil {
		_ = l.progressBar.Finish()
	}

	if total < 0 {
		l.progressBar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription(description),
			progressbar.OptionSetWriter(l.writer),
			progressbar.OptionSetWidth(40),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintf(l.writer, "\n")
			}),
		)
	} else {
		l.progressBar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription(description),
			progressbar.OptionSetWriter(l.writer),
			progressbar.OptionSetWidth(40),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintf(l.writer, "\n")
			}),
			progressbar.OptionSetRenderBlankState(true),
		)
	}

	return nil
}

// UpdateProgress increments the progress bar by delta.
func (l *Logger) UpdateProgress(delta int) error {
	if !l.showProgress || !l.isTTY || l.progressBar == nil {
		return nil
	}
	return l.progressBar.Add(delta)
}

// FinishProgress completes and clears the progress bar.
func (l *Logger) FinishProgress() error {
	if !l.showProgress || !l.isTTY || l.progressBar == nil {
		return nil
	}
	err := l.progressBar.Finish()
	l.progressBar = nil
	return err
}

// SetProgressDescription updates the progress bar description.
func (l *Logger) SetProgressDescription(description string) {
	if !l.showProgress || !l.isTTY || l.progressBar == nil {
		return
	}
	l.progressBar.Describe(description)
}

// IsProgressEnabled returns true if progress bars are enabled.
func (l *Logger) IsProgressEnabled() bool {
	return l.showProgress && l.isTTY
}
