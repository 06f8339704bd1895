package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "ember", cfg.Title)
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
	assert.True(t, cfg.VSync)
	assert.Equal(t, 10000, cfg.MaxQuads)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
title = "demo"
width = 640
vsync = false
clear_color = [0.0, 0.0, 0.0, 1.0]
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Title)
	assert.Equal(t, 640, cfg.Width)
	assert.False(t, cfg.VSync)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, cfg.ClearColor)

	// Absent keys keep their defaults.
	assert.Equal(t, 720, cfg.Height)
	assert.Equal(t, 10000, cfg.MaxQuads)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Equal(t, DefaultConfig(), cfg, "errors still hand back usable defaults")
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("width = ["), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}
