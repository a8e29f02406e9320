// Package sequence renders an AnalysisResult as a plain-text sequence
// diagram: one "Caller ->> Callee" arrow per edge, indented by depth, with
// conditional/loop annotations inline. Grounded in the teacher's
// output/text_formatter.go (one renderer per output format, each
// consuming the same result shape).
package sequence

import (
	"fmt"
	"strings"

	"github.com/melodypapa/autosar-calltree/model"
)

// Render produces the sequence-diagram text for result. A failed result
// (no root) renders a single explanatory line.
func Render(result *model.AnalysisResult) string {
	if !result.Succeeded() {
		return fmt.Sprintf("no call tree: %s\n", strings.Join(result.Errors, "; "))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "sequenceDiagram: %s\n", result.RootName)
	writeNode(&b, result.Root, nil)
	fmt.Fprintf(&b, "\n%d nodes, %d unique functions, %d cycles\n",
		result.Statistics.TotalNodes, result.Statistics.UniqueFunctions, result.Statistics.CyclesFound)
	return b.String()
}

func writeNode(b *strings.Builder, node *model.CallTreeNode, caller *model.CallTreeNode) {
	indent := strings.Repeat("  ", node.Depth)
	if caller != nil {
		fmt.Fprintf(b, "%s%s ->> %s: %s\n", indent, caller.QualifiedName(), node.QualifiedName(), annotate(node))
	} else {
		fmt.Fprintf(b, "%sparticipant %s\n", indent, node.QualifiedName())
	}

	if node.IsRecursive {
		fmt.Fprintf(b, "%s  note right of %s: recursive call, not expanded\n", indent, node.QualifiedName())
		return
	}
	if node.IsTruncated {
		fmt.Fprintf(b, "%s  note right of %s: depth limit reached\n", indent, node.QualifiedName())
	}

	for _, child := range node.Children {
		writeNode(b, child, node)
	}
}

func annotate(node *model.CallTreeNode) string {
	var parts []string
	if node.HasCondition {
		parts = append(parts, fmt.Sprintf("if (%s)", node.ConditionText))
	}
	if node.HasLoopCondition {
		parts = append(parts, fmt.Sprintf("loop (%s)", node.LoopConditionText))
	}
	if len(parts) == 0 {
		return "call"
	}
	return strings.Join(parts, ", ")
}
