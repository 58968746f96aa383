package geom

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"sketchbook/internal/render"
	"sketchbook/internal/scale"
)

const (
	fitPadding     = 50
	fitMaxZoom     = 13
	layerMaxZoom   = 18
	scaleBarWidth  = 80
	stationOpacity = 0.8
	stationStroke  = 1
)

// stationRadius interpolates the circle radius by zoom.
var stationRadius = scale.NewPiecewise(
	scale.Stop{In: 10, Out: 3},
	scale.Stop{In: 15, Out: 6},
	scale.Stop{In: 18, Out: 10},
)

func StationRadius(zoom float64) float64 { return stationRadius.At(zoom) }

var (
	layerColor = scale.MustHex("#4C9AFF")
	white      = colorful.Color{R: 1, G: 1, B: 1}
	background = scale.MustHex("#1A1A1A")
)

// Layer is an overlay loaded from a file or pasted text.
type Layer struct {
	Name string
	Data Data
}

// Map draws the station circles and any overlay layers through a viewport
// and tracks the hovered station and the open popup.
type Map struct {
	View     Viewport
	stations []Station
	layers   []Layer
	hovered  int
	popup    int
}

func NewMap(w, h float64) *Map {
	return &Map{View: NewViewport(w, h), hovered: -1, popup: -1}
}

// SetStations replaces the station set and fits the view around it.
func (m *Map) SetStations(st []Station) {
	m.stations = st
	m.hovered, m.popup = -1, -1
	// an overlay already placed keeps the view
	if len(st) == 0 || len(m.layers) > 0 {
		return
	}
	var d Data
	for _, s := range st {
		d.extend([2]float64{s.Lon, s.Lat})
	}
	m.View.FitBounds(d.BBox, fitPadding, fitMaxZoom)
}

func (m *Map) Stations() []Station { return m.stations }
func (m *Map) Layers() []Layer     { return m.layers }

// AddLayer draws d over the stations and fits the view to it.
func (m *Map) AddLayer(name string, d Data) {
	m.layers = append(m.layers, Layer{Name: name, Data: d})
	m.View.FitBounds(d.BBox, fitPadding, layerMaxZoom)
}

func (m *Map) ClearLayers() { m.layers = nil }

// Table returns the attributes of the newest layer, or a one-row summary
// when it has none. Without layers it lists the stations.
func (m *Map) Table() ([]string, [][]string) {
	if len(m.layers) == 0 {
		return StationTable(m.stations)
	}
	l := m.layers[len(m.layers)-1]
	if len(l.Data.Columns) > 0 {
		return l.Data.Columns, l.Data.Rows
	}
	cols := []string{"name", "bbox", "points", "lines", "polygons"}
	row := []string{l.Name, l.Data.BBox.String(), fmt.Sprint(len(l.Data.Points)), fmt.Sprint(len(l.Data.Lines)), fmt.Sprint(len(l.Data.Polygons))}
	return cols, [][]string{row}
}

func (m *Map) Resize(w, h float64) { m.View.Width, m.View.Height = w, h }

// StationAt returns the index of the station drawn closest to (x, y) when
// the point falls within its circle widened by slop pixels.
func (m *Map) StationAt(x, y, slop float64) (int, bool) {
	r := StationRadius(m.View.Zoom) + stationStroke + slop
	best, bestD := -1, math.Inf(1)
	for i, s := range m.stations {
		sx, sy := m.View.Project(s.Lon, s.Lat)
		if d := math.Hypot(sx-x, sy-y); d <= r && d < bestD {
			best, bestD = i, d
		}
	}
	return best, best >= 0
}

// Hover records the station under the pointer and reports whether there is
// one, for the pointer indicator.
func (m *Map) Hover(x, y, slop float64) bool {
	i, ok := m.StationAt(x, y, slop)
	m.hovered = i
	return ok
}

func (m *Map) Hovered() (Station, bool) {
	if m.hovered < 0 || m.hovered >= len(m.stations) {
		return Station{}, false
	}
	return m.stations[m.hovered], true
}

// Click closes any open popup and opens one for the station under (x, y).
func (m *Map) Click(x, y, slop float64) (Popup, bool) {
	m.popup = -1
	i, ok := m.StationAt(x, y, slop)
	if !ok {
		return Popup{}, false
	}
	m.popup = i
	return m.stations[i].Popup(), true
}

func (m *Map) Popup() (Popup, bool) {
	if m.popup < 0 || m.popup >= len(m.stations) {
		return Popup{}, false
	}
	return m.stations[m.popup].Popup(), true
}

func (m *Map) ClosePopup() { m.popup = -1 }

func (m *Map) Pan(dx, dy float64)         { m.View.Pan(dx, dy) }
func (m *Map) ZoomAt(delta, x, y float64) { m.View.ZoomAt(delta, x, y) }

func (m *Map) project(pt [2]float64) render.Pt {
	x, y := m.View.Project(pt[0], pt[1])
	return render.Pt{X: x, Y: y}
}

func (m *Map) ring(pts [][2]float64) []render.Pt {
	out := make([]render.Pt, len(pts))
	for i, p := range pts {
		out[i] = m.project(p)
	}
	return out
}

func (m *Map) Frame() *render.Frame {
	f := render.NewFrame(m.View.Width, m.View.Height, background)
	for _, l := range m.layers {
		for _, poly := range l.Data.Polygons {
			for i, r := range poly {
				pts := m.ring(r)
				if i == 0 {
					f.Add(render.Path{Points: pts, From: layerColor, To: layerColor, Alpha: 0.3, Closed: true, Fill: true})
				}
				f.Add(render.Path{Points: pts, From: layerColor, To: layerColor, Alpha: 1, Width: 1, Closed: true})
			}
		}
		for _, ls := range l.Data.Lines {
			f.Add(render.Path{Points: m.ring(ls), From: layerColor, To: layerColor, Alpha: 1, Width: 1})
		}
		for _, p := range l.Data.Points {
			pt := m.project(p)
			f.Add(render.Circle{X: pt.X, Y: pt.Y, R: 2, Fill: layerColor, Alpha: 1})
		}
	}

	r := StationRadius(m.View.Zoom)
	for _, s := range m.stations {
		x, y := m.View.Project(s.Lon, s.Lat)
		f.Add(render.Circle{X: x, Y: y, R: r, Fill: s.Color(), Alpha: stationOpacity, Stroke: &white, StrokeWidth: stationStroke})
	}

	bar := m.View.ScaleBar(scaleBarWidth)
	if bar.Width > 0 {
		x0, y0 := 10.0, m.View.Height-10
		f.Add(
			render.Line{X0: x0, Y0: y0, X1: x0 + bar.Width, Y1: y0, From: white, To: white, Alpha: 1, Width: 1},
			render.Text{X: x0 + bar.Width/2, Y: y0 - 10, Text: bar.Label, Color: white, Alpha: 1, Size: 10},
		)
	}
	return f
}
