package render

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	fontErr    error
)

func labelFace(size float64) (text.Face, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewFontSource(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fontErr
	}
	return fontSource.Face(size), nil
}

func rgba(c colorful.Color, alpha float64) gg.RGBA {
	alpha = math.Max(0, math.Min(alpha, 1))
	c = c.Clamped()
	return gg.RGBA2(c.R, c.G, c.B, alpha)
}

func setColor(dc *gg.Context, c colorful.Color, alpha float64) {
	p := rgba(c, alpha)
	dc.SetRGBA(p.R, p.G, p.B, p.A)
}

// Image paints f onto a new gg context at the frame's size.
func Image(f *Frame) (*gg.Context, error) {
	w, h := int(f.Width), int(f.Height)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render: invalid frame size %dx%d", w, h)
	}
	dc := gg.NewContext(w, h)
	bg := f.Background.Clamped()
	dc.ClearWithColor(gg.RGB(bg.R, bg.G, bg.B))
	for _, s := range f.Shapes {
		if !opaque(s) {
			continue
		}
		var err error
		switch s := s.(type) {
		case Circle:
			err = drawCircle(dc, s)
		case Line:
			err = drawGradient(dc, []Pt{{s.X0, s.Y0}, {s.X1, s.Y1}}, s.From, s.To, s.Alpha, s.Width, false)
		case Path:
			if s.Fill {
				err = fillPath(dc, s)
			} else {
				err = drawGradient(dc, s.Points, s.From, s.To, s.Alpha, s.Width, s.Closed)
			}
		case Text:
			err = drawText(dc, s)
		}
		if err != nil {
			return nil, err
		}
	}
	return dc, nil
}

func drawCircle(dc *gg.Context, s Circle) error {
	setColor(dc, s.Fill, s.Alpha)
	dc.DrawCircle(s.X, s.Y, s.R)
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("fill circle: %w", err)
	}
	if s.Stroke == nil || s.StrokeWidth <= 0 {
		return nil
	}
	setColor(dc, *s.Stroke, s.Alpha)
	dc.SetLineWidth(s.StrokeWidth)
	dc.DrawCircle(s.X, s.Y, s.R)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("stroke circle: %w", err)
	}
	return nil
}

func drawGradient(dc *gg.Context, pts []Pt, from, to colorful.Color, alpha, width float64, closed bool) error {
	if len(pts) < 2 {
		return nil
	}
	first, last := pts[0], pts[len(pts)-1]
	if from == to || (first.X == last.X && first.Y == last.Y) {
		setColor(dc, from, alpha)
	} else {
		dc.SetStrokeBrush(gg.NewLinearGradientBrush(first.X, first.Y, last.X, last.Y).
			AddColorStop(0, rgba(from, alpha)).
			AddColorStop(1, rgba(to, alpha)))
	}
	if width <= 0 {
		width = 1
	}
	dc.SetLineWidth(width)
	dc.MoveTo(first.X, first.Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	if closed {
		dc.ClosePath()
	}
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("stroke path: %w", err)
	}
	return nil
}

func fillPath(dc *gg.Context, p Path) error {
	if len(p.Points) < 3 {
		return nil
	}
	setColor(dc, p.From, p.Alpha)
	dc.MoveTo(p.Points[0].X, p.Points[0].Y)
	for _, q := range p.Points[1:] {
		dc.LineTo(q.X, q.Y)
	}
	dc.ClosePath()
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("fill path: %w", err)
	}
	return nil
}

func drawText(dc *gg.Context, t Text) error {
	size := t.Size
	if size <= 0 {
		size = 10
	}
	face, err := labelFace(size)
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	dc.SetFont(face)
	setColor(dc, t.Color, t.Alpha)
	dc.DrawStringAnchored(t.Text, t.X, t.Y, 0.5, 0.5)
	return nil
}

// WritePNG encodes f as a PNG image.
func WritePNG(w io.Writer, f *Frame) error {
	dc, err := Image(f)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes f to path as a PNG image.
func SavePNG(path string, f *Frame) error {
	dc, err := Image(f)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png %s: %w", path, err)
	}
	return nil
}
