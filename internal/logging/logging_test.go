package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchbook/internal/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	log, err := New(config.Log{Path: path, Level: "debug"})
	require.NoError(t, err)
	log.Info("fallback")
	_ = log.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"fallback"`)
}

func TestNewRejectsLevel(t *testing.T) {
	_, err := New(config.Log{Path: "stderr", Level: "chatty"})
	assert.Error(t, err)
}
