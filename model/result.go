package model

// AnalysisResult is the output of one call-tree build: a root name, an
// optional tree (absent on failure), statistics, any detected cycles, and
// any error strings collected along the way.
type AnalysisResult struct {
	RootName string
	Root     *CallTreeNode

	Statistics AnalysisStatistics
	Cycles     []CircularDependency
	Errors     []string

	Timestamp     string
	SourceDir     string
	HasSourceDir  bool
	MaxDepthLimit int
}

// Succeeded reports whether a tree was produced.
func (r *AnalysisResult) Succeeded() bool {
	return r.Root != nil
}
