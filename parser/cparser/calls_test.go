package cparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCallsPlain(t *testing.T) {
	calls := ExtractCalls("Foo(); Bar();")
	if assert.Len(t, calls, 2) {
		assert.Equal(t, "Foo", calls[0].CalleeName)
		assert.Equal(t, "Bar", calls[1].CalleeName)
		assert.False(t, calls[0].IsConditional)
		assert.False(t, calls[0].IsLoop)
	}
}

func TestExtractCallsConditional(t *testing.T) {
	body := `
    if (ready == 1)
    {
        DoWork();
    }
    else
    {
        DoFallback();
    }
`
	calls := ExtractCalls(body)
	if assert.Len(t, calls, 2) {
		assert.Equal(t, "DoWork", calls[0].CalleeName)
		assert.True(t, calls[0].IsConditional)
		assert.Equal(t, "ready == 1", calls[0].ConditionText)

		assert.Equal(t, "DoFallback", calls[1].CalleeName)
		assert.True(t, calls[1].IsConditional)
	}
}

func TestExtractCallsLoop(t *testing.T) {
	body := `
    for (i = 0; i < 10; i++)
    {
        Tick();
    }
`
	calls := ExtractCalls(body)
	if assert.Len(t, calls, 1) {
		assert.Equal(t, "Tick", calls[0].CalleeName)
		assert.True(t, calls[0].IsLoop)
		assert.Equal(t, "i = 0; i < 10; i++", calls[0].LoopConditionText)
	}
}

func TestExtractCallsWhileLoopSingleStatement(t *testing.T) {
	body := "while (IsReady)\n        Poll();\n"
	calls := ExtractCalls(body)
	if assert.Len(t, calls, 1) {
		assert.Equal(t, "Poll", calls[0].CalleeName)
		assert.True(t, calls[0].IsLoop)
		assert.Equal(t, "IsReady", calls[0].LoopConditionText)
	}
}

func TestExtractCallsDoWhile(t *testing.T) {
	body := `
    do
    {
        Sample();
    } while (count < 5);
`
	calls := ExtractCalls(body)
	if assert.Len(t, calls, 1) {
		assert.Equal(t, "Sample", calls[0].CalleeName)
		assert.True(t, calls[0].IsLoop)
		assert.Equal(t, "count < 5", calls[0].LoopConditionText)
	}
}

func TestExtractCallsNestedConditionAndLoop(t *testing.T) {
	body := `
    for (i = 0; i < n; i++)
    {
        if (i == 0)
        {
            Reset();
        }
    }
`
	calls := ExtractCalls(body)
	if assert.Len(t, calls, 1) {
		assert.Equal(t, "Reset", calls[0].CalleeName)
		assert.True(t, calls[0].IsLoop)
		assert.True(t, calls[0].IsConditional)
	}
}

func TestExtractCallsBracedElseIfChainDoesNotLeakFrame(t *testing.T) {
	body := `
    if (a)
    {
        f1();
    }
    else if (b)
    {
        f2();
    }
    g();
`
	calls := ExtractCalls(body)
	if assert.Len(t, calls, 3) {
		assert.Equal(t, "f1", calls[0].CalleeName)
		assert.True(t, calls[0].IsConditional)

		assert.Equal(t, "f2", calls[1].CalleeName)
		assert.True(t, calls[1].IsConditional)
		assert.Equal(t, "b", calls[1].ConditionText)

		assert.Equal(t, "g", calls[2].CalleeName)
		assert.False(t, calls[2].IsConditional, "statement after an else-if chain must not inherit a stray conditional frame")
	}
}

func TestExtractCallsIgnoresSizeofAndReturn(t *testing.T) {
	calls := ExtractCalls("uint8 n = sizeof(buf); return (n);")
	assert.Empty(t, calls)
}

func TestFindBodyDetectsPrototype(t *testing.T) {
	_, _, ok := FindBody("void Forward(void);\n", 0)
	assert.False(t, ok)
}

func TestFindBodyDetectsDefinition(t *testing.T) {
	src := "\n{\n    Work();\n}\n"
	start, end, ok := FindBody(src, 0)
	if assert.True(t, ok) {
		assert.Equal(t, "\n    Work();\n", src[start:end])
	}
}
