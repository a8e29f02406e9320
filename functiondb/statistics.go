package functiondb

// Statistics summarizes one build (spec §4.4 statistics operation).
type Statistics struct {
	FilesScanned   int
	FunctionsFound int
	UniqueNames    int
	StaticCount    int
	ParseErrors    []string
	PerModuleCount map[string]int
}

// Statistics computes a fresh snapshot from the current indexes.
func (db *FunctionDatabase) Statistics() Statistics {
	functionsFound := 0
	staticCount := 0
	for _, defs := range db.byFile {
		functionsFound += len(defs)
		for _, d := range defs {
			if d.IsStatic {
				staticCount++
			}
		}
	}

	perModule := make(map[string]int, len(db.perModuleCount))
	for k, v := range db.perModuleCount {
		perModule[k] = v
	}

	return Statistics{
		FilesScanned:   db.filesScanned,
		FunctionsFound: functionsFound,
		UniqueNames:    len(db.byName),
		StaticCount:    staticCount,
		ParseErrors:    append([]string(nil), db.parseErrors...),
		PerModuleCount: perModule,
	}
}

// ClearCache drops the in-memory resolver memoization cache. It has no
// effect on the indexes themselves; it's distinct from the on-disk
// persistent cache managed by package cache.
func (db *FunctionDatabase) ClearCache() {
	db.resolverCache.Purge()
}
