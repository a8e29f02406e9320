package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/melodypapa/autosar-calltree/model"
)

func TestRenderFailedResult(t *testing.T) {
	result := &model.AnalysisResult{RootName: "Missing", Errors: []string{"start function not found"}}
	out := Render(result)
	assert.Contains(t, out, "no call tree")
	assert.Contains(t, out, "start function not found")
}

func TestRenderSimpleTree(t *testing.T) {
	child := &model.CallTreeNode{
		Function:      &model.FunctionInfo{Name: "Child", QualifiedName: "demo::Child", HasQualified: true},
		Depth:         1,
		HasCondition:  true,
		ConditionText: "ready == 1",
	}
	root := &model.CallTreeNode{
		Function: &model.FunctionInfo{Name: "Root", QualifiedName: "demo::Root", HasQualified: true},
		Depth:    0,
		Children: []*model.CallTreeNode{child},
	}
	result := &model.AnalysisResult{
		RootName: "Root",
		Root:     root,
		Statistics: model.AnalysisStatistics{
			TotalNodes: 2, UniqueFunctions: 2,
		},
	}

	out := Render(result)
	assert.Contains(t, out, "demo::Root")
	assert.Contains(t, out, "demo::Child")
	assert.Contains(t, out, "ready == 1")
}
