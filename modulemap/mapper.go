package modulemap

import (
	"path/filepath"
)

// compiledPattern pairs a shell-style glob with its module label; patterns
// are matched against the basename only.
type compiledPattern struct {
	pattern string
	label   string
}

// Mapper resolves a source file path to a module label. It caches results
// by basename, including negative results, so repeated lookups for files
// sharing a basename (e.g. during cache reload) don't re-run pattern
// matching.
type Mapper struct {
	fileMappings map[string]string
	patterns     []compiledPattern
	defaultLabel string
	hasDefault   bool

	cache map[string]resolved
}

type resolved struct {
	label string
	ok    bool
}

// New constructs a Mapper from a validated Config. Callers must call
// Config.Validate first; New does not re-validate.
func New(cfg Config) *Mapper {
	m := &Mapper{
		fileMappings: make(map[string]string, len(cfg.FileMappings)),
		defaultLabel: cfg.DefaultModule,
		hasDefault:   cfg.HasDefaultModule,
		cache:        make(map[string]resolved),
	}
	for basename, label := range cfg.FileMappings {
		m.fileMappings[basename] = label
	}
	for _, pm := range cfg.PatternMappings {
		m.patterns = append(m.patterns, compiledPattern{pattern: pm.Pattern, label: pm.Label})
	}
	return m
}

// Lookup resolves an absolute or relative file path to a module label,
// applying the deterministic resolution order from spec §4.1:
//  1. exact basename lookup in file_mappings
//  2. first matching pattern_mappings entry, in declaration order
//  3. default_module
//  4. no module
func (m *Mapper) Lookup(path string) (string, bool) {
	basename := filepath.Base(path)

	if cached, ok := m.cache[basename]; ok {
		return cached.label, cached.ok
	}

	label, ok := m.resolve(basename)
	m.cache[basename] = resolved{label: label, ok: ok}
	return label, ok
}

func (m *Mapper) resolve(basename string) (string, bool) {
	if label, ok := m.fileMappings[basename]; ok {
		return label, true
	}

	for _, p := range m.patterns {
		if matched, _ := filepath.Match(p.pattern, basename); matched {
			return p.label, true
		}
	}

	if m.hasDefault {
		return m.defaultLabel, true
	}

	return "", false
}
