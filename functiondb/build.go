package functiondb

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/melodypapa/autosar-calltree/model"
	"github.com/melodypapa/autosar-calltree/parser/autosar"
	"github.com/melodypapa/autosar-calltree/parser/cparser"
)

// ProgressSink receives verbose progress lines during a build. Callers
// that don't need progress reporting can pass nil.
type ProgressSink interface {
	Progress(msg string)
}

// ParseError records a recoverable per-file failure encountered while
// building the database; a build never aborts on one.
type ParseError struct {
	FilePath string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.FilePath, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// BuildOptions configures a single Build call.
type BuildOptions struct {
	Verbose bool
	Sink    ProgressSink
}

// Build scans sourceDir recursively for *.c files, parses each with both
// the AUTOSAR macro parser and the plain-C parser, and populates a fresh
// FunctionDatabase (spec §4.4, build operation). A per-file parse failure
// is recorded in ParseErrors and does not abort the build.
func Build(sourceDir string, opts BuildOptions) (*FunctionDatabase, error) {
	files, err := DiscoverSourceFiles(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("functiondb: discover source files: %w", err)
	}

	db := New()
	for _, path := range files {
		db.filesScanned++
		if opts.Verbose && opts.Sink != nil {
			opts.Sink.Progress(fmt.Sprintf("parsing %s", path))
		}

		data, err := os.ReadFile(path)
		if err != nil {
			db.parseErrors = append(db.parseErrors, (&ParseError{FilePath: path, Err: err}).Error())
			continue
		}

		infos := parseFile(path, string(data))
		for _, info := range infos {
			assignQualifiedName(&info)
			db.add(info)
		}
	}

	return db, nil
}

// parseFile runs both parsers and merges their output per the
// progressive-enhancement contract (spec §4.3.5): every AUTOSAR finding is
// kept, and the plain-C parser's additional findings are kept only when
// their (name, line) pair wasn't already produced by the AUTOSAR parser.
// Results are sorted by line number for deterministic insertion order.
func parseFile(path, src string) []model.FunctionInfo {
	autosarFns := autosar.Parse(path, src)
	cFns := cparser.Parse(path, src)

	seen := make(map[declKey]bool, len(autosarFns))
	for _, f := range autosarFns {
		seen[declKey{f.Name, f.LineNumber}] = true
	}

	merged := make([]model.FunctionInfo, 0, len(autosarFns)+len(cFns))
	merged = append(merged, autosarFns...)
	for _, f := range cFns {
		k := declKey{f.Name, f.LineNumber}
		if seen[k] {
			continue
		}
		seen[k] = true
		merged = append(merged, f)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].LineNumber < merged[j].LineNumber
	})
	return merged
}

type declKey struct {
	name string
	line int
}

// assignQualifiedName sets info.QualifiedName to "<stem(file_path)>::<name>",
// the cycle-detection key from spec §4.6, which also doubles as the
// by_qualified index key.
func assignQualifiedName(info *model.FunctionInfo) {
	info.QualifiedName = fileStem(info.FilePath) + "::" + info.Name
	info.HasQualified = true
}

// DiscoverSourceFiles recursively finds every *.c file under root, sorted
// for deterministic scan order. Exported so callers validating a cached
// snapshot (cache.Load) can run the same file-discovery step Build uses,
// rather than trusting a path set recorded in the cache itself.
func DiscoverSourceFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".c") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
