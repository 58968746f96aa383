// Package geom decodes map overlays (GeoJSON, CSV, KML, WKT and subway
// station collections) and projects them through a web-mercator viewport.
package geom

import (
	"errors"
	"fmt"
)

// ErrNoGeometry is returned when a source decodes cleanly but holds nothing
// drawable.
var ErrNoGeometry = errors.New("geom: no geometry found")

// BBox is a lon/lat extent.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

func (b BBox) Center() (lon, lat float64) { return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2 }

func (b BBox) String() string {
	return fmt.Sprintf("[%.5f,%.5f,%.5f,%.5f]", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// Data is a minimal geometry container for rendering
type Data struct {
	Points   [][2]float64
	Lines    [][][2]float64
	Polygons [][][][2]float64 // polygons with rings (first outer, following holes)
	BBox     BBox

	// Columns and Rows hold per-feature attributes when the source has any.
	Columns []string
	Rows    [][]string

	seen bool
}

func (d *Data) extend(pt [2]float64) {
	if !d.seen {
		d.BBox = BBox{MinX: pt[0], MinY: pt[1], MaxX: pt[0], MaxY: pt[1]}
		d.seen = true
		return
	}
	d.BBox.MinX = min(d.BBox.MinX, pt[0])
	d.BBox.MinY = min(d.BBox.MinY, pt[1])
	d.BBox.MaxX = max(d.BBox.MaxX, pt[0])
	d.BBox.MaxY = max(d.BBox.MaxY, pt[1])
}

func (d *Data) addPoint(pt [2]float64) {
	d.Points = append(d.Points, pt)
	d.extend(pt)
}

func (d *Data) addLine(ls [][2]float64) {
	if len(ls) == 0 {
		return
	}
	d.Lines = append(d.Lines, ls)
	for _, p := range ls {
		d.extend(p)
	}
}

func (d *Data) addPolygon(poly [][][2]float64) {
	if len(poly) == 0 {
		return
	}
	d.Polygons = append(d.Polygons, poly)
	for _, ring := range poly {
		for _, p := range ring {
			d.extend(p)
		}
	}
}

// Empty reports whether d holds no geometry at all.
func (d Data) Empty() bool { return len(d.Points)+len(d.Lines)+len(d.Polygons) == 0 }

func (d Data) Counts() string {
	return fmt.Sprintf("pts=%d ls=%d poly=%d", len(d.Points), len(d.Lines), len(d.Polygons))
}
