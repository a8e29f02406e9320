// Package uml renders an AnalysisResult as a UML XML call-tree document.
// Grounded in the teacher's output/json_formatter.go and
// output/sarif_formatter.go (one struct tree per format, marshaled through
// the standard library's encoder for that format).
package uml

import (
	"encoding/xml"
	"fmt"

	"github.com/melodypapa/autosar-calltree/model"
)

// Document is the XML root element for a rendered call tree.
type Document struct {
	XMLName xml.Name `xml:"callTree"`
	Root    string   `xml:"root,attr"`
	Node    *Node    `xml:"node,omitempty"`
	Errors  []string `xml:"error,omitempty"`
}

// Node is one call-tree node's XML representation.
type Node struct {
	Name              string  `xml:"name,attr"`
	QualifiedName     string  `xml:"qualifiedName,attr"`
	FilePath          string  `xml:"filePath,attr"`
	Depth             int     `xml:"depth,attr"`
	IsRecursive       bool    `xml:"recursive,attr,omitempty"`
	IsTruncated       bool    `xml:"truncated,attr,omitempty"`
	IsOptional        bool    `xml:"optional,attr,omitempty"`
	ConditionText     string  `xml:"condition,attr,omitempty"`
	IsLoop            bool    `xml:"loop,attr,omitempty"`
	LoopConditionText string  `xml:"loopCondition,attr,omitempty"`
	Children          []*Node `xml:"node,omitempty"`
}

// Render produces the UML XML document for result, pretty-printed with a
// two-space indent.
func Render(result *model.AnalysisResult) (string, error) {
	doc := Document{Root: result.RootName}
	if !result.Succeeded() {
		doc.Errors = result.Errors
	} else {
		doc.Node = convert(result.Root)
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("render/uml: marshal: %w", err)
	}
	return xml.Header + string(out) + "\n", nil
}

func convert(node *model.CallTreeNode) *Node {
	n := &Node{
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
		n.Children = append(n.Children, convert(child))
	}
	return n
}
