package config

import (
	"os"
	"path/filepath"

	"github.com/grovetools/hooks/errors"
	toml "github.com/pelletier/go-toml/v2"
)

// Settings holds machine-level tool settings, as opposed to the
// per-repository manifest. They live in
// $XDG_CONFIG_HOME/grove-hooks/settings.toml.
type Settings struct {
	// CacheDir is where pinned hook repositories are cloned.
	CacheDir string `toml:"cache_dir"`

	// Color controls styled output: "auto" (default), "always", or "never".
	Color string `toml:"color"`

	// LogLevel is the minimum log level ("debug", "info", "warn", "error").
	LogLevel string `toml:"log_level"`
}

// SetDefaults fills unset settings with their defaults.
func (s *Settings) SetDefaults() {
	if s.CacheDir == "" {
		s.CacheDir = defaultCacheDir()
	}
	if s.Color == "" {
		s.Color = "auto"
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
}

// LoadSettings reads the settings file if present and applies
// environment overrides. A missing file is not an error.
func LoadSettings() (*Settings, error) {
	settings := &Settings{}

	path := settingsPath()
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := toml.Unmarshal(data, settings); err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse settings file").
					WithDetail("path", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read settings file").
				WithDetail("path", path)
		}
	}

	// Environment overrides
	if v := os.Getenv("GROVE_HOOKS_CACHE_DIR"); v != "" {
		settings.CacheDir = v
	}
	if v := os.Getenv("GROVE_HOOKS_COLOR"); v != "" {
		settings.Color = v
	}
	if v := os.Getenv("GROVE_HOOKS_LOG_LEVEL"); v != "" {
		settings.LogLevel = v
	}

	settings.CacheDir = expandPath(settings.CacheDir)
	settings.SetDefaults()

	switch settings.Color {
	case "", "auto", "always", "never":
	default:
		return nil, errors.New(errors.ErrCodeConfigValidation, "color must be one of: auto, always, never").
			WithDetail("color", settings.Color)
	}

	return settings, nil
}

// settingsPath returns the settings file location under the XDG config dir.
func settingsPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "grove-hooks", "settings.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "grove-hooks", "settings.toml")
	}

	return ""
}

// defaultCacheDir returns the hook repository cache location under the
// XDG cache dir.
func defaultCacheDir() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "grove-hooks")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".cache", "grove-hooks")
	}

	return ".grove-hooks-cache"
}

// expandPath expands tilde and environment variables in file paths.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return os.ExpandEnv(path)
}
