// Package render turns the visual primitives a sketch emits into terminal
// output or PNG images.
package render

import colorful "github.com/lucasb-eyer/go-colorful"

// Pt is a position in surface pixels.
type Pt struct{ X, Y float64 }

// Shape is one drawable primitive. Shapes are painted in the order they are
// added to a Frame. Alpha is opacity in [0, 1]; a zero Alpha draws nothing.
type Shape interface{ bounds() (x0, y0, x1, y1 float64) }

// Circle is a filled disc with an optional outline.
type Circle struct {
	X, Y, R     float64
	Fill        colorful.Color
	Alpha       float64
	Stroke      *colorful.Color
	StrokeWidth float64
}

// Line is a straight stroke. When To differs from From the color runs as a
// linear gradient from start to end.
type Line struct {
	X0, Y0, X1, Y1 float64
	From, To       colorful.Color
	Alpha          float64
	Width          float64
}

// Path is a polyline stroked with a gradient between its end points, or
// filled when Fill is set.
type Path struct {
	Points   []Pt
	From, To colorful.Color
	Alpha    float64
	Width    float64
	Closed   bool
	Fill     bool
}

// Text is a label centered on its position.
type Text struct {
	X, Y  float64
	Text  string
	Color colorful.Color
	Alpha float64
	Size  float64
}

func (c Circle) bounds() (float64, float64, float64, float64) {
	return c.X - c.R, c.Y - c.R, c.X + c.R, c.Y + c.R
}

func (l Line) bounds() (float64, float64, float64, float64) {
	return min(l.X0, l.X1), min(l.Y0, l.Y1), max(l.X0, l.X1), max(l.Y0, l.Y1)
}

func (p Path) bounds() (float64, float64, float64, float64) {
	if len(p.Points) == 0 {
		return 0, 0, 0, 0
	}
	x0, y0, x1, y1 := p.Points[0].X, p.Points[0].Y, p.Points[0].X, p.Points[0].Y
	for _, q := range p.Points[1:] {
		x0, y0 = min(x0, q.X), min(y0, q.Y)
		x1, y1 = max(x1, q.X), max(y1, q.Y)
	}
	return x0, y0, x1, y1
}

func (t Text) bounds() (float64, float64, float64, float64) { return t.X, t.Y, t.X, t.Y }

// opaque reports whether s has any visible opacity.
func opaque(s Shape) bool {
	switch s := s.(type) {
	case Circle:
		return s.Alpha > 0
	case Line:
		return s.Alpha > 0
	case Path:
		return s.Alpha > 0
	case Text:
		return s.Alpha > 0
	}
	return false
}

// Frame is everything a sketch draws for one tick.
type Frame struct {
	Width, Height float64
	Background    colorful.Color
	Shapes        []Shape
}

func NewFrame(w, h float64, bg colorful.Color) *Frame {
	return &Frame{Width: w, Height: h, Background: bg}
}

func (f *Frame) Add(s ...Shape) { f.Shapes = append(f.Shapes, s...) }

// Visible reports how many shapes intersect the surface.
func (f *Frame) Visible() int {
	n := 0
	for _, s := range f.Shapes {
		x0, y0, x1, y1 := s.bounds()
		if x1 >= 0 && y1 >= 0 && x0 <= f.Width && y0 <= f.Height {
			n++
		}
	}
	return n
}

// Black is the background of every sketch but the map.
var Black = colorful.Color{}
