// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DEVKIT_MODEL", "")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.ErrorIs(t, err, ErrMissingAPIKey)
	require.NotNil(t, cfg)
	assert.Equal(t, "gemini-2.5-flash", cfg.API.Model)
	assert.Equal(t, 80, cfg.UI.WordWrap)
	assert.Equal(t, 150, cfg.UI.TransitionMillis)
}

func TestLoadFileParsesTOML(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DEVKIT_MODEL", "")

	path := writeConfig(t, `
[api]
key = "file-key"
model = "gemini-2.5-pro"

[ui]
word_wrap = 100
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.API.Key)
	assert.Equal(t, "gemini-2.5-pro", cfg.API.Model)
	assert.Equal(t, 100, cfg.UI.WordWrap)
}

func TestLoadFileEnvOverridesFile(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DEVKIT_MODEL", "env-model")

	path := writeConfig(t, `
[api]
key = "file-key"
model = "file-model"
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.API.Key)
	assert.Equal(t, "env-model", cfg.API.Model)
}

func TestLoadFileRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, "this is not toml [[[")
	cfg, err := LoadFile(path)
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestNormalizeClampsOutOfRange(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("DEVKIT_MODEL", "")

	path := writeConfig(t, `
[ui]
word_wrap = 5
transition_millis = 99999
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.UI.WordWrap)
	assert.Equal(t, 150, cfg.UI.TransitionMillis)
}

func TestGlobalFallsBackToDefaults(t *testing.T) {
	SetGlobal(nil)
	cfg := Global()
	require.NotNil(t, cfg)
	assert.Equal(t, 80, cfg.UI.WordWrap)

	custom := Default()
	custom.API.Model = "custom"
	SetGlobal(custom)
	assert.Equal(t, "custom", Global().API.Model)
	SetGlobal(nil)
}
