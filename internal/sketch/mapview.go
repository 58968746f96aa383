package sketch

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"sketchbook/internal/camera"
	"sketchbook/internal/geom"
	"sketchbook/internal/render"
)

const (
	mapWidth  = 800
	mapHeight = 600
	// pointer slop for station hits, in surface pixels
	mapSlop   = 6
	wheelZoom = 0.5
	keyPan    = 50
	// a press that moves less than this is a click
	clickTravel = 3
)

// MapSketch shows subway stations and any overlay layers the viewer adds.
type MapSketch struct {
	base
	env Env
	m   *geom.Map

	dragging     bool
	downX, downY float64
	lastX, lastY float64
	travel       float64
}

func newMap(env Env) (Sketch, error) {
	return &MapSketch{
		base:  base{name: "map", w: mapWidth, h: mapHeight},
		env:   env,
		m:     geom.NewMap(mapWidth, mapHeight),
		lastX: mapWidth / 2,
		lastY: mapHeight / 2,
	}, nil
}

// Map exposes the overlay map so layers can be added from files or text.
func (s *MapSketch) Map() *geom.Map { return s.m }

func (s *MapSketch) Frame(time.Time) *render.Frame { return s.m.Frame() }

func (s *MapSketch) Fetch(ctx context.Context) (func(time.Time), error) {
	name := s.env.Config.Data.Stations
	st, err := geom.LoadStations(ctx, s.env.Source, name)
	if err != nil {
		s.env.Log.Error("loading subway stations", zap.String("file", name), zap.Error(err))
	}
	return func(time.Time) {
		s.m.SetStations(st)
		s.env.Log.Info("stations drawn", zap.Int("count", len(st)), zap.Float64("zoom", s.m.View.Zoom))
	}, err
}

func (s *MapSketch) PointerDown(b camera.Button, x, y float64, _ time.Time) {
	if b != camera.ButtonPrimary {
		return
	}
	s.dragging = true
	s.downX, s.downY, s.lastX, s.lastY, s.travel = x, y, x, y, 0
}

func (s *MapSketch) PointerMove(x, y float64, _ time.Time) {
	if s.dragging {
		s.m.Pan(x-s.lastX, y-s.lastY)
		s.travel += math.Abs(x-s.lastX) + math.Abs(y-s.lastY)
	} else {
		s.m.Hover(x, y, mapSlop)
	}
	s.lastX, s.lastY = x, y
}

func (s *MapSketch) PointerUp(time.Time) {
	if !s.dragging {
		return
	}
	s.dragging = false
	if s.travel < clickTravel {
		s.m.Click(s.downX, s.downY, mapSlop)
	}
}

// Wheel zooms around the pointer; scrolling up zooms in.
func (s *MapSketch) Wheel(_, dy float64, _ bool, _ time.Time) {
	delta := wheelZoom
	if dy > 0 {
		delta = -wheelZoom
	}
	s.m.ZoomAt(delta, s.lastX, s.lastY)
}

func (s *MapSketch) Key(key string, _ time.Time) (string, bool) {
	cx, cy := s.w/2, s.h/2
	switch key {
	case "+", "=":
		s.m.ZoomAt(wheelZoom, cx, cy)
	case "-":
		s.m.ZoomAt(-wheelZoom, cx, cy)
	case "up":
		s.m.Pan(0, keyPan)
	case "down":
		s.m.Pan(0, -keyPan)
	case "left":
		s.m.Pan(keyPan, 0)
	case "right":
		s.m.Pan(-keyPan, 0)
	case "x":
		s.m.ClosePopup()
		return "popup closed", true
	case "c":
		s.m.ClearLayers()
		return "overlays cleared", true
	default:
		return "", false
	}
	return "", true
}

func (s *MapSketch) Keys() string { return "+/- zoom  arrows pan  x close popup  c clear overlays" }

// Pointing reports whether the pointer is over a station.
func (s *MapSketch) Pointing() bool {
	_, ok := s.m.Hovered()
	return ok
}

func (s *MapSketch) Table() ([]string, [][]string) { return s.m.Table() }

func (s *MapSketch) Inspect() []string {
	p, ok := s.m.Popup()
	if !ok {
		return nil
	}
	out := []string{p.Name}
	if len(p.Lines) > 0 {
		out = append(out, "Lines: "+strings.Join(p.Lines, " "))
	}
	return out
}
