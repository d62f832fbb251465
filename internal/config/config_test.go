package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 80, cfg.Layout.TabletMinWidth)
	assert.Equal(t, 120, cfg.Layout.DesktopMinWidth)
	assert.Equal(t, 160, cfg.Layout.XLMinWidth)
	assert.Equal(t, "prism-dark", cfg.Layout.CurrentTheme)
	assert.Equal(t, "q", cfg.Keys.Quit)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server":{"base_url":"http://mail.local:9000"}}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://mail.local:9000", cfg.Server.BaseURL)
	// everything the file does not set stays at its default
	assert.Equal(t, 25, cfg.Layout.ListMinPercent)
	assert.Equal(t, "c", cfg.Keys.Compose)
}

func TestLoadConfig_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate_RejectsBadLayouts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"equal breakpoints", func(c *Config) { c.Layout.DesktopMinWidth = c.Layout.TabletMinWidth }},
		{"reversed breakpoints", func(c *Config) { c.Layout.XLMinWidth = 100 }},
		{"zero list min", func(c *Config) { c.Layout.ListMinPercent = 0 }},
		{"list min above max", func(c *Config) { c.Layout.ListMinPercent = 70 }},
		{"viewer max above 100", func(c *Config) { c.Layout.ViewerMaxPercent = 120 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.Server.BaseURL = "http://mail.local:8080"
	cfg.Layout.CurrentTheme = "solarized"

	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_GetRequestTimeout(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 30*time.Second, cfg.GetRequestTimeout())

	cfg.Server.Timeout = "5s"
	assert.Equal(t, 5*time.Second, cfg.GetRequestTimeout())

	cfg.Server.Timeout = "not a duration"
	assert.Equal(t, 30*time.Second, cfg.GetRequestTimeout())
}

func TestConfig_PersistDebounce(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 200*time.Millisecond, cfg.PersistDebounce())

	cfg.Layout.PersistDebounceMs = 500
	assert.Equal(t, 500*time.Millisecond, cfg.PersistDebounce())

	cfg.Layout.PersistDebounceMs = 0
	assert.Equal(t, 200*time.Millisecond, cfg.PersistDebounce())
}
