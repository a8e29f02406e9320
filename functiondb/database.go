// Package functiondb implements the function database: three synchronized
// indexes over every function definition discovered in a source tree, and
// the smart resolver that disambiguates multiply-defined symbols (spec
// §4.4).
package functiondb

import (
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/melodypapa/autosar-calltree/model"
	"github.com/melodypapa/autosar-calltree/modulemap"
)

// resolverCacheSize bounds the smart resolver's memoization cache. Call
// trees frequently re-resolve the same (name, caller_file) pair across
// sibling branches, so a modest LRU avoids repeating the filter chain for
// every occurrence without letting it grow unbounded.
const resolverCacheSize = 4096

// FunctionDatabase holds every function definition found while building,
// indexed three ways (spec §4.4.1), plus the optional module mapper
// assignment and per-build statistics.
type FunctionDatabase struct {
	byName      map[string][]*model.FunctionInfo
	byQualified map[string]*model.FunctionInfo
	byFile      map[string][]*model.FunctionInfo

	mapper         *modulemap.Mapper
	perModuleCount map[string]int

	filesScanned int
	parseErrors  []string

	resolverCache *lru.Cache[resolverKey, resolverResult]
}

type resolverKey struct {
	name       string
	callerFile string
}

type resolverResult struct {
	info  *model.FunctionInfo
	found bool
}

// New constructs an empty database. Attach a module mapper with
// SetMapper before the first call to add, or module assignment will be
// skipped for every entry already inserted.
func New() *FunctionDatabase {
	cache, _ := lru.New[resolverKey, resolverResult](resolverCacheSize)
	return &FunctionDatabase{
		byName:         make(map[string][]*model.FunctionInfo),
		byQualified:    make(map[string]*model.FunctionInfo),
		byFile:         make(map[string][]*model.FunctionInfo),
		perModuleCount: make(map[string]int),
		resolverCache:  cache,
	}
}

// SetMapper attaches a module mapper. It does not retroactively assign
// sw_module to already-inserted entries.
func (db *FunctionDatabase) SetMapper(m *modulemap.Mapper) {
	db.mapper = m
}

// add inserts info into all three indexes, assigning info.SWModule from
// the attached mapper (if any) beforehand (spec §4.4.3). It invalidates
// the resolver cache, since a new candidate can change a prior resolution.
func (db *FunctionDatabase) add(info model.FunctionInfo) {
	if db.mapper != nil {
		if label, ok := db.mapper.Lookup(info.FilePath); ok {
			info.SWModule = label
			info.HasSWModule = true
			db.perModuleCount[label]++
		}
	}

	stored := info
	ptr := &stored

	db.byName[ptr.Name] = append(db.byName[ptr.Name], ptr)
	db.byFile[ptr.FilePath] = append(db.byFile[ptr.FilePath], ptr)
	if ptr.HasQualified {
		db.byQualified[ptr.QualifiedName] = ptr
	}

	db.resolverCache.Purge()
}

// FilesDefiningFunc returns the file path of every definition registered
// under name, in by_name order. Used to warn about ambiguous start symbols
// (spec §4.6 step 2) without exposing the raw by_name index.
func (db *FunctionDatabase) FilesDefiningFunc(name string) []string {
	defs := db.byName[name]
	files := make([]string, len(defs))
	for i, d := range defs {
		files[i] = d.FilePath
	}
	return files
}

// LookupQualified returns the unique definition registered under a
// qualified name, if any.
func (db *FunctionDatabase) LookupQualified(qualifiedName string) (*model.FunctionInfo, bool) {
	info, ok := db.byQualified[qualifiedName]
	return info, ok
}

// FunctionsInFile returns every definition found in the given file path, in
// insertion order.
func (db *FunctionDatabase) FunctionsInFile(path string) []*model.FunctionInfo {
	return db.byFile[path]
}

// AllFunctionNames returns every distinct function name, sorted.
func (db *FunctionDatabase) AllFunctionNames() []string {
	names := make([]string, 0, len(db.byName))
	for name := range db.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Search returns every definition whose name contains pattern, matched
// case-insensitively, sorted by (name, file_path, line_number) for
// deterministic output.
func (db *FunctionDatabase) Search(pattern string) []*model.FunctionInfo {
	needle := strings.ToLower(pattern)
	var out []*model.FunctionInfo
	for name, defs := range db.byName {
		if !strings.Contains(strings.ToLower(name), needle) {
			continue
		}
		out = append(out, defs...)
	}
	sortFunctionInfos(out)
	return out
}

func sortFunctionInfos(infos []*model.FunctionInfo) {
	sort.Slice(infos, func(i, j int) bool {
		a, b := infos[i], infos[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		return a.LineNumber < b.LineNumber
	})
}
