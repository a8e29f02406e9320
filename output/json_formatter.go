package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/melodypapa/autosar-calltree/model"
)

// JSONFormatter formats an AnalysisResult as JSON.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a JSON formatter writing to stdout.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{writer: os.Stdout}
}

// NewJSONFormatterWithWriter creates a formatter with a custom writer (for testing).
func NewJSONFormatterWithWriter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// JSONOutput represents the complete JSON output structure.
type JSONOutput struct {
	Tool       JSONTool                 `json:"tool"`
	Run        JSONRun                  `json:"run"`
	Root       *JSONNode                `json:"root,omitempty"`
	Statistics model.AnalysisStatistics `json:"statistics"`
	Cycles     []JSONCycle              `json:"cycles,omitempty"`
	Errors     []string                 `json:"errors,omitempty"`
}

// JSONTool contains tool metadata.
type JSONTool struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// JSONRun contains metadata about one build+trace run.
type JSONRun struct {
	StartFunction string `json:"start_function"`
	SourceDir     string `json:"source_dir,omitempty"`
	MaxDepth      int    `json:"max_depth"`
	Timestamp     string `json:"timestamp"`
}

// JSONNode is one call-tree node's JSON representation.
type JSONNode struct {
	Name              string      `json:"name"`
	QualifiedName     string      `json:"qualified_name,omitempty"` //nolint:tagliatelle
	FilePath          string      `json:"file,omitempty"`
	Depth             int         `json:"depth"`
	IsRecursive       bool        `json:"recursive,omitempty"`
	IsTruncated       bool        `json:"truncated,omitempty"`
	IsOptional        bool        `json:"optional,omitempty"`
	ConditionText     string      `json:"condition,omitempty"`
	IsLoop            bool        `json:"loop,omitempty"`
	LoopConditionText string      `json:"loop_condition,omitempty"` //nolint:tagliatelle
	Children          []*JSONNode `json:"children,omitempty"`
}

// JSONCycle is one detected circular dependency.
type JSONCycle struct {
	Names []string `json:"names"`
	Depth int      `json:"depth"`
}

// Format writes result as indented JSON.
func (f *JSONFormatter) Format(result *model.AnalysisResult, version string) error {
	output := f.buildOutput(result, version)

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func (f *JSONFormatter) buildOutput(result *model.AnalysisResult, version string) JSONOutput {
	if version == "" {
		version = "unknown"
	}

	output := JSONOutput{
		Tool: JSONTool{Name: "autosar-calltree", Version: version},
		Run: JSONRun{
			StartFunction: result.RootName,
			SourceDir:     result.SourceDir,
			MaxDepth:      result.MaxDepthLimit,
			Timestamp:     result.Timestamp,
		},
		Statistics: result.Statistics,
		Errors:     result.Errors,
	}

	if result.Succeeded() {
		output.Root = convertJSONNode(result.Root)
	}
	for _, cycle := range result.Cycles {
		output.Cycles = append(output.Cycles, JSONCycle{Names: cycle.Names, Depth: cycle.Depth})
	}

	return output
}

func convertJSONNode(node *model.CallTreeNode) *JSONNode {
	n := &JSONNode{
		Name:              node.Function.Name,
		QualifiedName:     node.QualifiedName(),
		FilePath:          node.Function.FilePath,
		Depth:             node.Depth,
		IsRecursive:       node.IsRecursive,
		IsTruncated:       node.IsTruncated,
		IsOptional:        node.IsOptional,
		ConditionText:     node.ConditionText,
		IsLoop:            node.IsLoop,
		LoopConditionText: node.LoopConditionText,
	}
	for _, child := range node.Children {
		n.Children = append(n.Children, convertJSONNode(child))
	}
	return n
}
