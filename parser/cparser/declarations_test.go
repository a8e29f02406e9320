package cparser

import (
	"testing"

	"github.com/melodypapa/autosar-calltree/model"
	"github.com/stretchr/testify/assert"
)

func TestParseSimpleDefinition(t *testing.T) {
	src := "void DoWork(uint8 x)\n{\n    Helper(x);\n}\n"
	fns := Parse("plain.c", src)
	if assert.Len(t, fns, 1) {
		f := fns[0]
		assert.Equal(t, "DoWork", f.Name)
		assert.Equal(t, "void", f.ReturnType)
		assert.Equal(t, model.TraditionalC, f.Kind)
		if assert.Len(t, f.Parameters, 1) {
			assert.Equal(t, "x", f.Parameters[0].Name)
			assert.Equal(t, "uint8", f.Parameters[0].BaseType)
		}
		if assert.Len(t, f.Calls, 1) {
			assert.Equal(t, "Helper", f.Calls[0].CalleeName)
		}
	}
}

func TestParseStaticDefinition(t *testing.T) {
	src := "static int Sum(int a, int b)\n{\n    return a + b;\n}\n"
	fns := Parse("plain.c", src)
	if assert.Len(t, fns, 1) {
		assert.True(t, fns[0].IsStatic)
		assert.Equal(t, "int", fns[0].ReturnType)
	}
}

func TestParseSkipsPrototypes(t *testing.T) {
	src := "void Forward(void);\n"
	fns := Parse("plain.c", src)
	assert.Empty(t, fns)
}

func TestParseSkipsControlStatementsShapedLikeCalls(t *testing.T) {
	src := "void Demo(void)\n{\n    if (x)\n    {\n        Work();\n    }\n}\n"
	fns := Parse("plain.c", src)
	if assert.Len(t, fns, 1) {
		if assert.Len(t, fns[0].Calls, 1) {
			assert.Equal(t, "Work", fns[0].Calls[0].CalleeName)
			assert.True(t, fns[0].Calls[0].IsConditional)
			assert.Equal(t, "x", fns[0].Calls[0].ConditionText)
		}
	}
}

func TestParseVoidParameterListIsEmpty(t *testing.T) {
	src := "void Init(void)\n{\n}\n"
	fns := Parse("plain.c", src)
	if assert.Len(t, fns, 1) {
		assert.Empty(t, fns[0].Parameters)
	}
}

func TestParseIgnoresMacroHeaderShape(t *testing.T) {
	src := "FUNC(void, RTE_CODE) Demo(void)\n{\n}\n"
	fns := Parse("demo.c", src)
	assert.Empty(t, fns)
}
