package modulemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	t.Run("valid minimal config", func(t *testing.T) {
		cfg := Config{Version: "1.0"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing version", func(t *testing.T) {
		cfg := Config{}
		assert.Error(t, cfg.Validate())
	})

	t.Run("unsupported version", func(t *testing.T) {
		cfg := Config{Version: "2.0"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty file mapping label", func(t *testing.T) {
		cfg := Config{Version: "1.0", FileMappings: map[string]string{"demo.c": "  "}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty pattern", func(t *testing.T) {
		cfg := Config{Version: "1.0", PatternMappings: []PatternMapping{{Pattern: "", Label: "HW"}}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty default module", func(t *testing.T) {
		cfg := Config{Version: "1.0", DefaultModule: "   ", HasDefaultModule: true}
		assert.Error(t, cfg.Validate())
	})
}

func TestMapperResolutionOrder(t *testing.T) {
	cfg := Config{
		Version:      "1.0",
		FileMappings: map[string]string{"demo.c": "DemoModule"},
		PatternMappings: []PatternMapping{
			{Pattern: "hw_*.c", Label: "HW"},
			{Pattern: "sw_*.c", Label: "SW"},
		},
		DefaultModule:    "Other",
		HasDefaultModule: true,
	}
	m := New(cfg)

	t.Run("exact file mapping wins", func(t *testing.T) {
		label, ok := m.Lookup("/src/demo.c")
		assert.True(t, ok)
		assert.Equal(t, "DemoModule", label)
	})

	t.Run("first matching pattern wins", func(t *testing.T) {
		label, ok := m.Lookup("/src/hw_adc.c")
		assert.True(t, ok)
		assert.Equal(t, "HW", label)
	})

	t.Run("second pattern matches when first does not", func(t *testing.T) {
		label, ok := m.Lookup("/src/sw_stack.c")
		assert.True(t, ok)
		assert.Equal(t, "SW", label)
	})

	t.Run("default module when nothing else matches", func(t *testing.T) {
		label, ok := m.Lookup("/src/util.c")
		assert.True(t, ok)
		assert.Equal(t, "Other", label)
	})

	t.Run("negative result is cached", func(t *testing.T) {
		noDefault := New(Config{Version: "1.0"})
		_, ok := noDefault.Lookup("/src/anything.c")
		assert.False(t, ok)
		// second call exercises the cache path
		_, ok = noDefault.Lookup("/src/anything.c")
		assert.False(t, ok)
	})
}

func TestMapperPatternDeclarationOrder(t *testing.T) {
	// A later, more specific pattern should lose to an earlier, broader one
	// since resolution is first-match-wins in declaration order.
	cfg := Config{
		Version: "1.0",
		PatternMappings: []PatternMapping{
			{Pattern: "*.c", Label: "Catchall"},
			{Pattern: "hw_*.c", Label: "HW"},
		},
	}
	m := New(cfg)

	label, ok := m.Lookup("hw_adc.c")
	assert.True(t, ok)
	assert.Equal(t, "Catchall", label)
}
