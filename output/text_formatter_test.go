package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/melodypapa/autosar-calltree/model"
)

func TestNewTextFormatter(t *testing.T) {
	tf := NewTextFormatter(nil)
	if tf == nil {
		t.Fatal("expected non-nil formatter")
	}
}

func TestTextFormatterFailure(t *testing.T) {
	var buf bytes.Buffer
	tf := NewTextFormatterWithWriter(&buf, nil)

	result := &model.AnalysisResult{RootName: "Missing", Errors: []string{"start function not found"}}
	if err := tf.Format(result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Missing") {
		t.Errorf("expected root name, got: %s", output)
	}
	if !strings.Contains(output, "start function not found") {
		t.Errorf("expected error message, got: %s", output)
	}
}

func TestTextFormatterHeadline(t *testing.T) {
	var buf bytes.Buffer
	tf := NewTextFormatterWithWriter(&buf, nil)

	result := &model.AnalysisResult{
		RootName: "Demo",
		Root:     &model.CallTreeNode{Function: &model.FunctionInfo{Name: "Demo"}},
		Statistics: model.AnalysisStatistics{
			TotalNodes: 3, UniqueFunctions: 3, CyclesFound: 0,
		},
	}
	if err := tf.Format(result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Demo: 3 nodes, 3 unique functions, 0 cycles") {
		t.Errorf("expected headline, got: %s", output)
	}
}

func TestTextFormatterVerboseShowsStatistics(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(VerbosityVerbose, &bytes.Buffer{})
	tf := NewTextFormatterWithWriter(&buf, logger)

	result := &model.AnalysisResult{
		RootName:   "Demo",
		Root:       &model.CallTreeNode{Function: &model.FunctionInfo{Name: "Demo"}},
		Statistics: model.AnalysisStatistics{MaxDepthReached: 4, TotalCalls: 10, StaticFunctions: 2, RTEFunctions: 1, AutosarFunctions: 6},
	}
	if err := tf.Format(result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Statistics:") {
		t.Errorf("expected statistics block, got: %s", output)
	}
	if !strings.Contains(output, "max depth reached: 4") {
		t.Errorf("expected max depth line, got: %s", output)
	}
}

func TestTextFormatterQuietHidesStatistics(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(VerbosityQuiet, &bytes.Buffer{})
	tf := NewTextFormatterWithWriter(&buf, logger)

	result := &model.AnalysisResult{
		RootName:   "Demo",
		Root:       &model.CallTreeNode{Function: &model.FunctionInfo{Name: "Demo"}},
		Statistics: model.AnalysisStatistics{MaxDepthReached: 4},
	}
	if err := tf.Format(result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(buf.String(), "Statistics:") {
		t.Errorf("expected no statistics block in quiet mode, got: %s", buf.String())
	}
}

func TestTextFormatterCycles(t *testing.T) {
	var buf bytes.Buffer
	tf := NewTextFormatterWithWriter(&buf, nil)

	result := &model.AnalysisResult{
		RootName: "Demo",
		Root:     &model.CallTreeNode{Function: &model.FunctionInfo{Name: "Demo"}},
		Cycles:   []model.CircularDependency{{Names: []string{"Demo", "Demo"}, Depth: 1}},
	}
	if err := tf.Format(result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Circular dependencies:") {
		t.Errorf("expected cycles section, got: %s", output)
	}
	if !strings.Contains(output, "Demo -> Demo (depth 1)") {
		t.Errorf("expected cycle line, got: %s", output)
	}
}

func TestJoinArrow(t *testing.T) {
	tests := []struct {
		names    []string
		expected string
	}{
		{nil, ""},
		{[]string{"A"}, "A"},
		{[]string{"A", "B", "A"}, "A -> B -> A"},
	}

	for _, tt := range tests {
		got := joinArrow(tt.names)
		if got != tt.expected {
			t.Errorf("joinArrow(%v): got %q, want %q", tt.names, got, tt.expected)
		}
	}
}
