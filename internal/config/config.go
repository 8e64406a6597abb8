// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for devkit.
//
// Supports TOML configuration with sensible defaults and environment variable
// overrides.
//
// Configuration sources (in order of precedence):
//   - Environment variables (GEMINI_API_KEY, DEVKIT_MODEL)
//   - ~/.devkit/config.toml
//   - Built-in defaults
package config

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete devkit configuration.
type Config struct {
	// API contains generative API settings.
	API APIConfig `toml:"api"`

	// UI contains interface settings.
	UI UIConfig `toml:"ui"`
}

// APIConfig contains Gemini API configuration.
type APIConfig struct {
	// Key is the Gemini API key. Overridden by GEMINI_API_KEY.
	Key string `toml:"key"`
	// Model is the model identifier used for all features.
	Model string `toml:"model"`
	// BaseURL overrides the API endpoint (primarily for testing).
	BaseURL string `toml:"base_url"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// WordWrap is the markdown rendering width.
	WordWrap int `toml:"word_wrap"`
	// TransitionMillis is the view fade duration in milliseconds.
	TransitionMillis int `toml:"transition_millis"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrMissingAPIKey indicates no API key was found in the config file or the
// environment. The TUI starts with the workspace disabled when this is the
// only load error.
var ErrMissingAPIKey = errors.New("API key not configured (set GEMINI_API_KEY or api.key in ~/.devkit/config.toml)")

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Model: "gemini-2.5-flash",
		},
		UI: UIConfig{
			WordWrap:         80,
			TransitionMillis: 150,
		},
	}
}

// =============================================================================
// LOADING
// =============================================================================

var (
	globalMu  sync.RWMutex
	globalCfg *Config
)

// Dir returns the devkit configuration directory (~/.devkit).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".devkit"
	}
	return filepath.Join(home, ".devkit")
}

// Path returns the configuration file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the configuration from disk, applies environment overrides, and
// validates the result. A missing config file is not an error; a missing API
// key is reported as ErrMissingAPIKey alongside the otherwise-usable config.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile loads configuration from an explicit path. Used by Load and tests.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	cfg.normalize()

	if strings.TrimSpace(cfg.API.Key) == "" {
		return cfg, ErrMissingAPIKey
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variables over file values.
func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.API.Key = strings.TrimSpace(key)
	}
	if model := os.Getenv("DEVKIT_MODEL"); model != "" {
		cfg.API.Model = strings.TrimSpace(model)
	}
}

// normalize clamps out-of-range values to usable defaults.
func (c *Config) normalize() {
	if c.API.Model == "" {
		c.API.Model = Default().API.Model
	}
	if c.UI.WordWrap < 40 || c.UI.WordWrap > 200 {
		c.UI.WordWrap = Default().UI.WordWrap
	}
	if c.UI.TransitionMillis < 0 || c.UI.TransitionMillis > 1000 {
		c.UI.TransitionMillis = Default().UI.TransitionMillis
	}
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

// SetGlobal stores the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = cfg
}

// Global returns the process-wide configuration, or defaults if none was set.
func Global() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalCfg == nil {
		return Default()
	}
	return globalCfg
}

// =============================================================================
// DEBUG LOGGING
// =============================================================================

// OpenDebugLog redirects the standard logger to ~/.devkit/debug.log so that
// diagnostics never corrupt the TUI. Returns a closer for the log file; on
// failure, logging is discarded.
func OpenDebugLog() io.Closer {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil)
	}
	f, err := os.OpenFile(filepath.Join(Dir(), "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil)
	}
	log.SetOutput(f)
	return f
}
