// Package config loads the module-mapping YAML document described in
// spec.md §6 into a modulemap.Config. This is the "external loader" the
// core spec calls out: it fixes only the shape, not the resolution
// behavior, which lives in package modulemap.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/melodypapa/autosar-calltree/modulemap"
)

// Load reads and decodes a module-mapping YAML file, validating it before
// returning. pattern_mappings is decoded by hand from the raw yaml.Node so
// that declaration order — which determines first-match precedence — is
// preserved; a plain map[string]string would lose it.
func Load(path string) (modulemap.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return modulemap.Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a module-mapping YAML document already read into memory.
func Parse(data []byte) (modulemap.Config, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return modulemap.Config{}, fmt.Errorf("config: parsing yaml: %w", err)
	}

	var doc *yaml.Node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		doc = root.Content[0]
	} else {
		doc = &root
	}
	if doc == nil || doc.Kind != yaml.MappingNode {
		return modulemap.Config{}, fmt.Errorf("config: expected a top-level mapping")
	}

	var cfg modulemap.Config

	for i := 0; i+1 < len(doc.Content); i += 2 {
		key := doc.Content[i].Value
		val := doc.Content[i+1]

		switch key {
		case "version":
			cfg.Version = val.Value

		case "file_mappings":
			cfg.FileMappings = make(map[string]string)
			if val.Kind == yaml.MappingNode {
				for j := 0; j+1 < len(val.Content); j += 2 {
					cfg.FileMappings[val.Content[j].Value] = val.Content[j+1].Value
				}
			}

		case "pattern_mappings":
			if val.Kind == yaml.MappingNode {
				for j := 0; j+1 < len(val.Content); j += 2 {
					cfg.PatternMappings = append(cfg.PatternMappings, modulemap.PatternMapping{
						Pattern: val.Content[j].Value,
						Label:   val.Content[j+1].Value,
					})
				}
			}

		case "default_module":
			cfg.DefaultModule = val.Value
			cfg.HasDefaultModule = true
		}
	}

	if err := cfg.Validate(); err != nil {
		return modulemap.Config{}, err
	}
	return cfg, nil
}
