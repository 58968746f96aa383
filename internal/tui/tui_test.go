package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchbook/internal/config"
	"sketchbook/internal/logging"
	"sketchbook/internal/sketch"
)

func newModel(t *testing.T, name string) Model {
	t.Helper()
	cfg := config.Default()
	cfg.Data.Dir = t.TempDir()
	cfg.Seed = 11
	m, err := New(context.Background(), cfg, logging.Nop(), name)
	require.NoError(t, err)
	return send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mapOf(t *testing.T, m Model) *sketch.MapSketch {
	t.Helper()
	ms, ok := m.Sketch().(*sketch.MapSketch)
	require.True(t, ok, "running %s", m.Sketch().Name())
	return ms
}

func TestNewRejectsUnknownSketch(t *testing.T) {
	_, err := New(context.Background(), config.Default(), logging.Nop(), "nope")
	assert.ErrorIs(t, err, sketch.ErrUnknownSketch)
}

func TestLoadFallsBackAndDropsStale(t *testing.T) {
	m := newModel(t, "map")
	cmd := m.fetch()
	require.NotNil(t, cmd)
	m = send(t, m, cmd())
	assert.True(t, strings.HasPrefix(m.Status(), "load error:"), m.Status())
	assert.Len(t, mapOf(t, m).Map().Stations(), 10)

	stale := m.fetch()
	m = send(t, m, key("]"))
	assert.Equal(t, "scene", m.Sketch().Name())
	status := m.Status()
	m = send(t, m, stale())
	assert.Equal(t, status, m.Status(), "a load for a replaced sketch is dropped")
}

func TestTickAdvancesClock(t *testing.T) {
	m := newModel(t, "bouncing")
	at := time.Unix(100, 0)
	next, cmd := m.Update(tickMsg(at))
	assert.NotNil(t, cmd)
	assert.Equal(t, at, next.(Model).now)
	assert.NotEmpty(t, next.(Model).screen)
}

func TestSketchKeys(t *testing.T) {
	m := newModel(t, "scene")
	m = send(t, m, key(" "))
	assert.Equal(t, "12 spheres", m.Status())

	m = send(t, m, key("["))
	assert.Equal(t, "map", m.Sketch().Name())
	m = send(t, m, key("c"))
	assert.Equal(t, "overlays cleared", m.Status())
}

func TestPasteWKTOverlaysMap(t *testing.T) {
	m := newModel(t, "gradient")
	m = send(t, m, key("p"))
	require.True(t, m.pasteMode)
	m.ta.SetValue("POLYGON ((0 0, 4 0, 4 4, 0 0))")
	m = send(t, m, key("enter"))
	assert.False(t, m.pasteMode)
	assert.Equal(t, "rendered WKT  counts: pts=0 ls=0 poly=1", m.Status())
	layers := mapOf(t, m).Map().Layers()
	require.Len(t, layers, 1)
	assert.Equal(t, "wkt", layers[0].Name)

	m = send(t, m, key("a"))
	require.True(t, m.showAttrs)
	assert.Len(t, m.tbl.Columns(), 6)
	assert.Len(t, m.tbl.Rows(), 1)
}

func TestLoadPathAddsLayer(t *testing.T) {
	m := newModel(t, "map")
	p := filepath.Join(t.TempDir(), "shops.csv")
	require.NoError(t, os.WriteFile(p, []byte("name,lat,lon\na,40.7,-74.0\nb,40.8,-73.9\n"), 0o644))
	m.loadPath(p)
	assert.Equal(t, "loaded: shops.csv  counts: pts=2 ls=0 poly=0", m.Status())

	m = send(t, m, key("a"))
	require.True(t, m.showAttrs)
	assert.Len(t, m.tbl.Rows(), 2)

	m.loadPath(filepath.Join(t.TempDir(), "missing.kml"))
	assert.True(t, strings.HasPrefix(m.Status(), "load error:"))
}

func TestMouseDragPansMap(t *testing.T) {
	m := newModel(t, "map")
	before := mapOf(t, m).Map().View.Lon
	ox, oy, _, _ := m.layout()
	m = send(t, m, tea.MouseMsg{X: ox + 20, Y: oy + 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = send(t, m, tea.MouseMsg{X: ox + 40, Y: oy + 10, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = send(t, m, tea.MouseMsg{X: ox + 40, Y: oy + 10, Action: tea.MouseActionRelease})
	assert.Less(t, mapOf(t, m).Map().View.Lon, before)
	assert.Contains(t, m.coords(), "lon=")
}

func TestView(t *testing.T) {
	m := newModel(t, "network")
	out := m.View()
	assert.Contains(t, out, "sketchbook")
	assert.Contains(t, out, "r rebuild")

	m = send(t, m, key("tab"))
	assert.False(t, m.showSidebar)
	ox, _, w, _ := m.layout()
	assert.Equal(t, 0, ox)
	assert.Equal(t, 120, w)
}
