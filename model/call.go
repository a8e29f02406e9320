package model

// FunctionCall is a call site discovered inside a function body, annotated
// with the conditional/loop context it was found in. A call can be both
// conditional and inside a loop at the same time.
type FunctionCall struct {
	CalleeName        string
	IsConditional     bool
	ConditionText     string
	IsLoop            bool
	LoopConditionText string
}
