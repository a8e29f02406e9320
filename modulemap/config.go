// Package modulemap resolves a source file path to an architecture-level
// module label, via an exact-basename map, ordered glob patterns, and an
// optional default.
package modulemap

import "fmt"

// Config is the schema the mapper is constructed from. The loader that
// decodes this from YAML lives outside this package (internal/config);
// this package only defines the shape and validates it.
type Config struct {
	Version         string            `yaml:"version"`
	FileMappings    map[string]string `yaml:"file_mappings"`
	PatternMappings []PatternMapping  `yaml:"-"` // populated by internal/config to preserve order

	DefaultModule    string `yaml:"default_module"`
	HasDefaultModule bool   `yaml:"-"`
}

// PatternMapping is one (glob pattern, module label) pair. PatternMappings
// is a slice rather than a map so declaration order — which determines
// first-match precedence — survives YAML decoding.
type PatternMapping struct {
	Pattern string
	Label   string
}

// SupportedVersion is the only version value this package currently
// recognizes.
const SupportedVersion = "1.0"

// Validate checks the schema invariants from spec §4.1: the version must be
// "1.0", every label must be non-empty after trimming, and every pattern
// must be non-empty.
func (c *Config) Validate() error {
	if c.Version != SupportedVersion {
		return fmt.Errorf("modulemap: unsupported version %q (want %q)", c.Version, SupportedVersion)
	}

	for basename, label := range c.FileMappings {
		if trim(basename) == "" {
			return fmt.Errorf("modulemap: file_mappings has an empty basename")
		}
		if trim(label) == "" {
			return fmt.Errorf("modulemap: file_mappings[%q] has an empty label", basename)
		}
	}

	for _, pm := range c.PatternMappings {
		if trim(pm.Pattern) == "" {
			return fmt.Errorf("modulemap: pattern_mappings has an empty pattern")
		}
		if trim(pm.Label) == "" {
			return fmt.Errorf("modulemap: pattern_mappings[%q] has an empty label", pm.Pattern)
		}
	}

	if c.HasDefaultModule && trim(c.DefaultModule) == "" {
		return fmt.Errorf("modulemap: default_module is empty")
	}

	return nil
}

func trim(s string) string {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
