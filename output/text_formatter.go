package output

import (
	"fmt"
	"io"
	"os"

	"github.com/melodypapa/autosar-calltree/model"
)

// TextFormatter formats an AnalysisResult as a human-readable summary.
// The call tree itself is rendered by render/sequence or render/uml; this
// formatter prints only the run's headline, statistics and cycles.
type TextFormatter struct {
	writer io.Writer
	logger *Logger
}

// NewTextFormatter creates a text formatter.
func NewTextFormatter(logger *Logger) *TextFormatter {
	return &TextFormatter{writer: os.Stdout, logger: logger}
}

// NewTextFormatterWithWriter creates a formatter with a custom writer (for testing).
func NewTextFormatterWithWriter(w io.Writer, logger *Logger) *TextFormatter {
	tf := NewTextFormatter(logger)
	tf.writer = w
	return tf
}

// Format prints result's headline, its statistics when the logger is nil or
// in verbose mode, and any detected cycles.
func (f *TextFormatter) Format(result *model.AnalysisResult) error {
	if !result.Succeeded() {
		f.writeFailure(result)
		return nil
	}

	f.writeHeadline(result)

	if f.logger == nil || f.logger.IsVerbose() {
		f.writeStatistics(result.Statistics)
	}
	if len(result.Cycles) > 0 {
		f.writeCycles(result.Cycles)
	}

	return nil
}

func (f *TextFormatter) writeFailure(result *model.AnalysisResult) {
	fmt.Fprintf(f.writer, "no call tree for %q\n", result.RootName)
	for _, msg := range result.Errors {
		fmt.Fprintf(f.writer, "  error: %s\n", msg)
	}
}

func (f *TextFormatter) writeHeadline(result *model.AnalysisResult) {
	fmt.Fprintf(f.writer, "%s: %d nodes, %d unique functions, %d cycles\n",
		result.RootName, result.Statistics.TotalNodes, result.Statistics.UniqueFunctions, result.Statistics.CyclesFound)
}

func (f *TextFormatter) writeStatistics(stats model.AnalysisStatistics) {
	fmt.Fprintln(f.writer, "Statistics:")
	fmt.Fprintf(f.writer, "  max depth reached: %d\n", stats.MaxDepthReached)
	fmt.Fprintf(f.writer, "  total calls: %d\n", stats.TotalCalls)
	fmt.Fprintf(f.writer, "  static functions: %d\n", stats.StaticFunctions)
	fmt.Fprintf(f.writer, "  RTE functions: %d\n", stats.RTEFunctions)
	fmt.Fprintf(f.writer, "  AUTOSAR functions: %d\n", stats.AutosarFunctions)
	fmt.Fprintln(f.writer)
}

func (f *TextFormatter) writeCycles(cycles []model.CircularDependency) {
	fmt.Fprintln(f.writer, "Circular dependencies:")
	for _, c := range cycles {
		fmt.Fprintf(f.writer, "  %s (depth %d)\n", joinArrow(c.Names), c.Depth)
	}
	fmt.Fprintln(f.writer)
}

func joinArrow(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " -> "
		}
		out += n
	}
	return out
}
