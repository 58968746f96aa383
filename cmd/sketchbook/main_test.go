package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchbook/internal/sketch"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SKETCHBOOK_LOG_PATH", filepath.Join(dir, "test.log"))
	t.Setenv("SKETCHBOOK_DATA_DIR", dir)
	t.Setenv("SKETCHBOOK_SEED", "3")
	cmd := rootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func TestRender(t *testing.T) {
	out := t.TempDir()
	tests := []struct {
		args []string
		file string
	}{
		{[]string{"render", "circle", "--frames", "2", "--out", filepath.Join(out, "circle.png")}, "circle.png"},
		{[]string{"render", "stream", "--frames", "1", "-o", filepath.Join(out, "stream.png")}, "stream.png"},
		{[]string{"render", "scatter", "--engine", "chart", "-o", filepath.Join(out, "scatter.png")}, "scatter.png"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			require.NoError(t, run(t, tt.args...))
			b, err := os.ReadFile(filepath.Join(out, tt.file))
			require.NoError(t, err)
			assert.Equal(t, "\x89PNG", string(b[:4]))
		})
	}
}

func TestRenderErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x.png")
	assert.ErrorIs(t, run(t, "render", "nope", "-o", out), sketch.ErrUnknownSketch)
	assert.ErrorContains(t, run(t, "render", "gradient", "--engine", "chart", "-o", out), "no chart view")
	assert.ErrorContains(t, run(t, "render", "gradient", "--engine", "svg", "-o", out), "unknown engine")
	assert.Error(t, run(t, "render"))
	assert.ErrorContains(t, run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "render", "circle"), "read config")
}
