package calltree

import "github.com/melodypapa/autosar-calltree/model"

// computeStatistics walks the finished tree once to produce the eight
// AnalysisStatistics counters (spec §4.6 step 5). static_count, rte_count,
// and autosar_count are counted over the unique FunctionInfos appearing in
// the tree, not over every node (a function visited from two call sites
// counts once).
func (b *Builder) computeStatistics(root *model.CallTreeNode) model.AnalysisStatistics {
	stats := model.AnalysisStatistics{
		CyclesFound:     len(b.cycles),
		UniqueFunctions: len(b.uniqueFns),
	}

	maxDepth := 0
	var walk func(n *model.CallTreeNode)
	walk = func(n *model.CallTreeNode) {
		stats.TotalNodes++
		stats.TotalCalls += len(n.Children)
		if n.Depth > maxDepth {
			maxDepth = n.Depth
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	stats.MaxDepthReached = maxDepth

	for _, fn := range b.uniqueFns {
		if fn.IsStatic {
			stats.StaticFunctions++
		}
		if fn.IsRTE() {
			stats.RTEFunctions++
		}
		if fn.Kind.IsAutosar() {
			stats.AutosarFunctions++
		}
	}

	return stats
}
