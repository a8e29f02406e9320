package model

// AnalysisStatistics are the eight non-negative counters reported alongside
// an AnalysisResult.
type AnalysisStatistics struct {
	TotalNodes       int
	UniqueFunctions  int
	MaxDepthReached  int
	TotalCalls       int
	StaticFunctions  int
	RTEFunctions     int
	AutosarFunctions int
	CyclesFound      int
}
