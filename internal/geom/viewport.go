package geom

import (
	"fmt"
	"math"
)

const (
	tileSize           = 512
	earthCircumference = 2 * math.Pi * 6378137
	maxLatitude        = 85.051129

	MinZoom = 0
	MaxZoom = 22
)

// Viewport is a web-mercator camera: the lon/lat under the center of a
// Width x Height pixel surface at a fractional zoom.
type Viewport struct {
	Lon, Lat      float64
	Zoom          float64
	Width, Height float64
}

// NewViewport centers on lower Manhattan.
func NewViewport(w, h float64) Viewport {
	return Viewport{Lon: -74.006, Lat: 40.7128, Zoom: 11, Width: w, Height: h}
}

func worldSize(zoom float64) float64 { return tileSize * math.Exp2(zoom) }

// mercX and mercY map lon/lat into the unit square, y growing south.
func mercX(lon float64) float64 { return (lon + 180) / 360 }

func mercY(lat float64) float64 {
	lat = math.Max(-maxLatitude, math.Min(maxLatitude, lat))
	phi := lat * math.Pi / 180
	return (1 - math.Log(math.Tan(math.Pi/4+phi/2))/math.Pi) / 2
}

func unmerc(x, y float64) (lon, lat float64) {
	return x*360 - 180, math.Atan(math.Sinh(math.Pi*(1-2*y))) * 180 / math.Pi
}

// Project maps lon/lat to surface pixels.
func (v Viewport) Project(lon, lat float64) (x, y float64) {
	ws := worldSize(v.Zoom)
	return (mercX(lon)-mercX(v.Lon))*ws + v.Width/2, (mercY(lat)-mercY(v.Lat))*ws + v.Height/2
}

// Unproject maps surface pixels back to lon/lat.
func (v Viewport) Unproject(x, y float64) (lon, lat float64) {
	ws := worldSize(v.Zoom)
	return unmerc(mercX(v.Lon)+(x-v.Width/2)/ws, mercY(v.Lat)+(y-v.Height/2)/ws)
}

// Pan drags the map content by dx, dy pixels.
func (v *Viewport) Pan(dx, dy float64) {
	v.Lon, v.Lat = v.Unproject(v.Width/2-dx, v.Height/2-dy)
}

// ZoomAt changes the zoom by delta while keeping the point under (x, y)
// fixed on screen.
func (v *Viewport) ZoomAt(delta, x, y float64) {
	lon, lat := v.Unproject(x, y)
	v.Zoom = math.Max(MinZoom, math.Min(MaxZoom, v.Zoom+delta))
	ws := worldSize(v.Zoom)
	v.Lon, v.Lat = unmerc(mercX(lon)-(x-v.Width/2)/ws, mercY(lat)-(y-v.Height/2)/ws)
}

// FitBounds centers b and picks the largest zoom, up to maxZoom, that keeps
// it inside the surface less padding on every side.
func (v *Viewport) FitBounds(b BBox, padding, maxZoom float64) {
	x0, x1 := mercX(b.MinX), mercX(b.MaxX)
	y0, y1 := mercY(b.MaxY), mercY(b.MinY)
	v.Lon, v.Lat = unmerc((x0+x1)/2, (y0+y1)/2)

	availW, availH := v.Width-2*padding, v.Height-2*padding
	if availW <= 0 || availH <= 0 {
		return
	}
	zx := math.Log2(availW / ((x1 - x0) * tileSize))
	zy := math.Log2(availH / ((y1 - y0) * tileSize))
	v.Zoom = math.Max(MinZoom, math.Min(maxZoom, math.Min(zx, zy)))
}

// MetersPerPixel is the ground resolution at the center latitude.
func (v Viewport) MetersPerPixel() float64 {
	return earthCircumference * math.Cos(v.Lat*math.Pi/180) / worldSize(v.Zoom)
}

// ScaleBar is a metric ruler: a round distance and the pixels it spans.
type ScaleBar struct {
	Width float64
	Label string
}

// ScaleBar returns the longest round distance that fits in maxWidth pixels,
// switching to kilometers from 1000 m on.
func (v Viewport) ScaleBar(maxWidth float64) ScaleBar {
	dist, unit := v.MetersPerPixel()*maxWidth, "m"
	if dist >= 1000 {
		dist, unit = dist/1000, "km"
	}
	if dist <= 0 || math.IsNaN(dist) {
		return ScaleBar{}
	}
	r := roundNum(dist)
	return ScaleBar{Width: maxWidth * r / dist, Label: fmt.Sprintf("%g %s", r, unit)}
}

func roundNum(n float64) float64 {
	if n < 1 {
		m := math.Pow(10, math.Ceil(-math.Log10(n)))
		return math.Round(n*m) / m
	}
	pow10 := math.Pow(10, math.Floor(math.Log10(n)))
	d := n / pow10
	switch {
	case d >= 10:
		d = 10
	case d >= 5:
		d = 5
	case d >= 3:
		d = 3
	case d >= 2:
		d = 2
	default:
		d = 1
	}
	return pow10 * d
}
