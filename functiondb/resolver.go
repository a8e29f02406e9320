package functiondb

import (
	"strings"

	"github.com/melodypapa/autosar-calltree/model"
)

// Resolve applies the smart-resolver filter chain (spec §4.4.2) to pick the
// single most likely implementation of name, optionally narrowed by the
// file the call was made from. Results are memoized in an LRU cache keyed
// on (name, caller_file), since the call-tree builder re-resolves the same
// pair across sibling branches.
func (db *FunctionDatabase) Resolve(name, callerFile string) (*model.FunctionInfo, bool) {
	key := resolverKey{name: name, callerFile: callerFile}
	if cached, ok := db.resolverCache.Get(key); ok {
		return cached.info, cached.found
	}

	info, found := db.resolve(name, callerFile)
	db.resolverCache.Add(key, resolverResult{info: info, found: found})
	return info, found
}

func (db *FunctionDatabase) resolve(name, callerFile string) (*model.FunctionInfo, bool) {
	// 1. Candidate set.
	set := db.byName[name]
	if len(set) == 0 {
		return nil, false
	}
	if len(set) == 1 {
		return set[0], true
	}

	// 2. Implementation preference: definitions with a non-empty body.
	if impl := filterFunctions(set, func(c *model.FunctionInfo) bool { return len(c.Calls) > 0 }); len(impl) > 0 {
		set = impl
	}
	if len(set) == 1 {
		return set[0], true
	}

	// 3. Filename heuristic: basename starts with name's underscore prefix
	// (case-insensitively), or equals name.lower().
	prefix := strings.ToLower(name)
	if idx := strings.IndexByte(name, '_'); idx > 0 {
		prefix = strings.ToLower(name[:idx])
	}
	if matching := filterFunctions(set, func(c *model.FunctionInfo) bool {
		stem := strings.ToLower(fileStem(c.FilePath))
		return strings.HasPrefix(stem, prefix) || stem == strings.ToLower(name)
	}); len(matching) > 0 {
		set = matching
	}
	if len(set) == 1 {
		return set[0], true
	}

	// 4. Cross-module avoidance.
	if callerFile != "" {
		hasOther := false
		for _, c := range set {
			if c.FilePath != callerFile {
				hasOther = true
				break
			}
		}
		if hasOther {
			set = filterFunctions(set, func(c *model.FunctionInfo) bool { return c.FilePath != callerFile })
		}
	}
	if len(set) == 1 {
		return set[0], true
	}

	// 5. Module preference.
	if withMod := filterFunctions(set, func(c *model.FunctionInfo) bool { return c.HasSWModule }); len(withMod) > 0 {
		set = withMod
	}
	if len(set) == 1 {
		return set[0], true
	}

	// 6. Deterministic tie-break: lexicographically smallest file_path.
	best := set[0]
	for _, c := range set[1:] {
		if c.FilePath < best.FilePath {
			best = c
		}
	}
	return best, true
}

func filterFunctions(set []*model.FunctionInfo, keep func(*model.FunctionInfo) bool) []*model.FunctionInfo {
	var out []*model.FunctionInfo
	for _, c := range set {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// fileStem returns the basename of path without its extension.
func fileStem(path string) string {
	base := path
	if idx := strings.LastIndexAny(base, `/\`); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndexByte(base, '.'); idx > 0 {
		base = base[:idx]
	}
	return base
}
