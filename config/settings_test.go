package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("GROVE_HOOKS_CACHE_DIR", "")
	t.Setenv("GROVE_HOOKS_COLOR", "")
	t.Setenv("GROVE_HOOKS_LOG_LEVEL", "")

	settings, err := LoadSettings()
	require.NoError(t, err)

	assert.NotEmpty(t, settings.CacheDir)
	assert.Equal(t, "auto", settings.Color)
	assert.Equal(t, "info", settings.LogLevel)
}

func TestLoadSettingsFile(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)
	t.Setenv("GROVE_HOOKS_CACHE_DIR", "")
	t.Setenv("GROVE_HOOKS_COLOR", "")
	t.Setenv("GROVE_HOOKS_LOG_LEVEL", "")

	dir := filepath.Join(configDir, "grove-hooks")
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := `cache_dir = "/tmp/hook-cache"
color = "never"
log_level = "debug"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.toml"), []byte(content), 0644))

	settings, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/hook-cache", settings.CacheDir)
	assert.Equal(t, "never", settings.Color)
	assert.Equal(t, "debug", settings.LogLevel)
}

func TestLoadSettingsEnvOverrides(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)

	dir := filepath.Join(configDir, "grove-hooks")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.toml"), []byte(`color = "never"`), 0644))

	t.Setenv("GROVE_HOOKS_COLOR", "always")
	t.Setenv("GROVE_HOOKS_CACHE_DIR", "/tmp/env-cache")

	settings, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, "always", settings.Color)
	assert.Equal(t, "/tmp/env-cache", settings.CacheDir)
}

func TestLoadSettingsInvalidColor(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GROVE_HOOKS_COLOR", "rainbow")

	_, err := LoadSettings()
	assert.Error(t, err)
}

func TestLoadSettingsBadTOML(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)
	t.Setenv("GROVE_HOOKS_COLOR", "")

	dir := filepath.Join(configDir, "grove-hooks")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.toml"), []byte("cache_dir = [broken"), 0644))

	_, err := LoadSettings()
	assert.Error(t, err)
}
