package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Canvas.Width)
	assert.Equal(t, 400, cfg.Canvas.Height)
	assert.Equal(t, "subway-stations.geojson", cfg.Data.Stations)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sketchbook.yaml")
	body := "canvas:\n  width: 640\nfps: 20\ndata:\n  base_url: http://example.test/data/\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("SKETCHBOOK_FPS", "45")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Canvas.Width)
	assert.Equal(t, 400, cfg.Canvas.Height, "unset keys keep defaults")
	assert.Equal(t, 45, cfg.FPS, "environment wins over file")
	assert.Equal(t, "http://example.test/data/", cfg.Data.BaseURL)
}

func TestLoadScene(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Scene.Floor, "the floor is on by default")

	path := filepath.Join(t.TempDir(), "sketchbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scene:\n  floor: false\n"), 0o644))
	t.Setenv("SKETCHBOOK_SCENE_GRAVITY", "0.02")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Scene.Floor)
	assert.Equal(t, 0.02, cfg.Scene.Gravity)

	t.Setenv("SKETCHBOOK_SCENE_FLOOR", "true")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Scene.Floor, "environment wins over file")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Canvas.Width = 0 }},
		{"fps", func(c *Config) { c.FPS = 0 }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"camera scale", func(c *Config) { c.Camera.PixelsPerCellY = -1 }},
		{"gravity", func(c *Config) { c.Scene.Gravity = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}
