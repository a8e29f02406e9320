package output

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/melodypapa/autosar-calltree/model"
)

// CSVFormatter formats a function database's entries as CSV, one row per
// FunctionInfo, for spreadsheet-driven review of a scanned source tree.
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a CSV formatter writing to stdout.
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{writer: os.Stdout}
}

// NewCSVFormatterWithWriter creates a formatter with a custom writer (for testing).
func NewCSVFormatterWithWriter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// CSVHeaders returns the CSV column headers.
func CSVHeaders() []string {
	return []string{
		"name",
		"qualified_name",
		"file",
		"line",
		"kind",
		"static",
		"return_type",
		"memory_class",
		"sw_module",
		"calls",
	}
}

// Format writes one row per FunctionInfo in infos.
func (f *CSVFormatter) Format(infos []*model.FunctionInfo) error {
	w := csv.NewWriter(f.writer)
	defer w.Flush()

	if err := w.Write(CSVHeaders()); err != nil {
		return err
	}

	for _, info := range infos {
		if err := w.Write(f.buildRow(info)); err != nil {
			return err
		}
	}

	return w.Error()
}

func (f *CSVFormatter) buildRow(info *model.FunctionInfo) []string {
	qualified := ""
	if info.HasQualified {
		qualified = info.QualifiedName
	}
	swModule := ""
	if info.HasSWModule {
		swModule = info.SWModule
	}

	return []string{
		info.Name,
		qualified,
		info.FilePath,
		strconv.Itoa(info.LineNumber),
		info.Kind.String(),
		strconv.FormatBool(info.IsStatic),
		info.ReturnType,
		info.MemoryClass,
		swModule,
		strconv.Itoa(len(info.Calls)),
	}
}
