package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestDefaultValues(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "*", cfg.Engine.FieldDelimiter)
	assert.True(t, cfg.Engine.WeakStartRequiresAlphabetic)
	assert.Equal(t, 5.0, cfg.Arbiter.StrongCommonness)
	assert.Equal(t, 4.5, cfg.Arbiter.ModerateCommonness)
	assert.Equal(t, 3, cfg.Arbiter.MaxHeadwordTokens)
	assert.Equal(t, 10, cfg.OrderValidator.ResyncThreshold)
	assert.True(t, cfg.Repair.PrefixRepair)
	assert.Equal(t, "Phr", cfg.Repair.PhrasePOS)
	assert.Contains(t, cfg.Vocab.POS, "N")
	assert.Equal(t, "Su", cfg.Vocab.RegionAliases["S"])
	assert.Equal(t, "Adv", cfg.Vocab.POSAliases["Ady"])
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
engine:
  field_delimiter: "|"
  max_concurrent_pages: 2
arbiter:
  strong_commonness: 5.5
repair:
  prefix_repair: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "|", cfg.Engine.FieldDelimiter)
	assert.Equal(t, 2, cfg.Engine.MaxConcurrentPages)
	assert.Equal(t, 5.5, cfg.Arbiter.StrongCommonness)
	assert.False(t, cfg.Repair.PrefixRepair)
	// Untouched keys keep their defaults.
	assert.Equal(t, 10, cfg.OrderValidator.ResyncThreshold)
	assert.True(t, cfg.Engine.WeakStartRequiresAlphabetic)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BEJADICT_DELIMITER", "|")
	t.Setenv("BEJADICT_MAX_PAGES", "8")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "|", cfg.Engine.FieldDelimiter)
	assert.Equal(t, 8, cfg.Engine.MaxConcurrentPages)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"multi-rune delimiter", func(c *Config) { c.Engine.FieldDelimiter = "**" }},
		{"empty delimiter", func(c *Config) { c.Engine.FieldDelimiter = "" }},
		{"zero concurrency", func(c *Config) { c.Engine.MaxConcurrentPages = 0 }},
		{"inverted thresholds", func(c *Config) { c.Arbiter.ModerateCommonness = 6.0 }},
		{"zero headword tokens", func(c *Config) { c.Arbiter.MaxHeadwordTokens = 0 }},
		{"zero resync threshold", func(c *Config) { c.OrderValidator.ResyncThreshold = 0 }},
		{"no regions", func(c *Config) { c.Vocab.Regions = nil }},
		{"bad shape regex", func(c *Config) { c.Arbiter.HeadwordShape = "[" }},
		{"bad orthographic regex", func(c *Config) { c.Arbiter.OrthographicPatterns = []string{"("} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
