package sketch

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchbook/internal/camera"
	"sketchbook/internal/config"
	"sketchbook/internal/fetch"
	"sketchbook/internal/geom"
	"sketchbook/internal/logging"
	"sketchbook/internal/render"
)

var t0 = time.Unix(1700000000, 0)

func testEnv(t *testing.T) Env {
	cfg := config.Default()
	cfg.Data.Dir = t.TempDir()
	return Env{
		Config: cfg,
		Log:    logging.Nop(),
		Source: fetch.New(cfg.Data, logging.Nop()),
		Rand:   rand.New(rand.NewSource(7)),
		Now:    t0,
	}
}

func build(t *testing.T, name string) Sketch {
	t.Helper()
	s, err := New(name, testEnv(t))
	require.NoError(t, err)
	return s
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"gradient", "bouncing", "circle", "network", "stream", "scatter", "map", "scene"}, Names())
	assert.NotEmpty(t, About("map"))
	assert.Empty(t, About("nope"))

	_, err := New("nope", testEnv(t))
	assert.ErrorIs(t, err, ErrUnknownSketch)

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s := build(t, name)
			assert.Equal(t, name, s.Name())
			w, h := s.Size()
			assert.Positive(t, w)
			assert.Positive(t, h)
			Step(context.Background(), s, 10, 30, t0, logging.Nop())
			f := s.Frame(t0.Add(3 * time.Second))
			assert.Equal(t, w, f.Width)
			assert.NotEmpty(t, f.Shapes)
		})
	}
}

func TestGradientFrame(t *testing.T) {
	f := build(t, "gradient").Frame(t0)
	// 50 dots for each of the ten links, then the eleven circles
	assert.Len(t, f.Shapes, 10*gradientSteps+11)
}

func TestBouncingMoves(t *testing.T) {
	s := build(t, "bouncing").(*bouncing)
	before := s.b.Points()[0]
	s.Tick(t0)
	after := s.b.Points()[0]
	assert.NotEqual(t, before.X, after.X)
}

func TestStreamFallsBack(t *testing.T) {
	s := build(t, "stream")
	err := Load(context.Background(), s, t0)
	assert.ErrorIs(t, err, fetch.ErrNotFound)

	f := s.Frame(t0.Add(2 * time.Second))
	// six layers and six year labels
	assert.Len(t, f.Shapes, 12)

	kh := s.(KeyHandler)
	status, ok := kh.Key("o", t0)
	require.True(t, ok)
	assert.Equal(t, "offset: silhouette", status)
	status, _ = kh.Key("o", t0)
	assert.Equal(t, "offset: wiggle", status)
	_, ok = kh.Key("q", t0)
	assert.False(t, ok)
}

func TestNetworkHover(t *testing.T) {
	s := build(t, "network")
	p := s.(Pointer)
	now := t0.Add(3 * time.Second)
	p.PointerMove(400, 100, now)
	lines := s.(Inspector).Inspect()
	require.Len(t, lines, 3)
	assert.Equal(t, "Human", lines[0])

	p.PointerMove(5, 5, now)
	assert.Empty(t, s.(Inspector).Inspect())
}

func TestScatterRebind(t *testing.T) {
	s := build(t, "scatter")
	status, ok := s.(KeyHandler).Key("r", t0.Add(time.Second))
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(status, "rebound:"), status)
	assert.NotEmpty(t, s.(Charter).Chart().Marks)
}

func TestMapClickOpensPopup(t *testing.T) {
	s := build(t, "map").(*MapSketch)
	err := Load(context.Background(), s, t0)
	assert.ErrorIs(t, err, fetch.ErrNotFound)
	require.Len(t, s.Map().Stations(), len(geom.FallbackStations()))

	st := s.Map().Stations()[0]
	x, y := s.Map().View.Project(st.Lon, st.Lat)
	s.PointerMove(x, y, t0)
	assert.True(t, s.Pointing())

	s.PointerDown(camera.ButtonPrimary, x, y, t0)
	s.PointerUp(t0)
	lines := s.Inspect()
	require.NotEmpty(t, lines)
	assert.Equal(t, "Times Sq - 42nd St", lines[0])

	status, ok := s.Key("x", t0)
	require.True(t, ok)
	assert.Equal(t, "popup closed", status)
	assert.Empty(t, s.Inspect())
}

func TestMapDragPans(t *testing.T) {
	s := build(t, "map").(*MapSketch)
	_ = Load(context.Background(), s, t0)
	lon := s.Map().View.Lon
	s.PointerDown(camera.ButtonPrimary, 100, 100, t0)
	s.PointerMove(140, 100, t0)
	s.PointerUp(t0)
	assert.Less(t, s.Map().View.Lon, lon, "dragging right moves the view west")
	_, open := s.Map().Popup()
	assert.False(t, open, "a drag is not a click")

	zoom := s.Map().View.Zoom
	s.Wheel(0, -1, false, t0)
	assert.Equal(t, zoom+wheelZoom, s.Map().View.Zoom)
}

func TestSceneCamera(t *testing.T) {
	s := build(t, "scene").(*sceneSketch)
	assert.Equal(t, 11, s.sys.Len())

	s.Wheel(0, 1, true, t0)
	s.Tick(t0)
	assert.InDelta(t, 8.05, s.cam.State().Radius, 1e-9)

	status, ok := s.Key(" ", t0)
	require.True(t, ok)
	assert.Equal(t, "12 spheres", status)
	for i := 0; i < 30; i++ {
		status, _ = s.Key("space", t0)
	}
	assert.Equal(t, "sphere limit reached", status)

	f := s.Frame(t0)
	lines, discs := 0, 0
	for _, sh := range f.Shapes {
		switch sh.(type) {
		case render.Line:
			lines++
		case render.Circle:
			discs++
		}
	}
	assert.Positive(t, lines)
	assert.Equal(t, s.sys.Len(), discs)
}

func TestSceneWithoutFloorDrains(t *testing.T) {
	env := testEnv(t)
	env.Config.Scene.Floor = false
	env.Config.Scene.Gravity = 0.01
	sk, err := New("scene", env)
	require.NoError(t, err)
	s := sk.(*sceneSketch)
	require.Equal(t, 11, s.sys.Len())
	for i := 0; i < 1000 && s.sys.Len() > 0; i++ {
		s.Tick(t0)
	}
	assert.Zero(t, s.sys.Len())

	s = build(t, "scene").(*sceneSketch)
	for i := 0; i < 200; i++ {
		s.Tick(t0)
	}
	assert.Equal(t, 11, s.sys.Len(), "the default floor keeps every sphere")
}

func TestTables(t *testing.T) {
	s := build(t, "scatter")
	cols, rows := s.(Tabler).Table()
	assert.Equal(t, []string{"id", "x", "y", "category", "magnitude"}, cols)
	assert.Len(t, rows, sampleRecords)

	s = build(t, "stream")
	_ = Load(context.Background(), s, t0)
	cols, rows = s.(Tabler).Table()
	assert.Equal(t, "provider", cols[0])
	assert.Len(t, cols, 7)
	assert.Len(t, rows, 6)

	ms := build(t, "map").(*MapSketch)
	_ = Load(context.Background(), ms, t0)
	cols, rows = ms.Table()
	assert.Equal(t, []string{"lon", "lat"}, cols[:2])
	assert.Len(t, rows, len(geom.FallbackStations()))
}
