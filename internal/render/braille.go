package render

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Canvas rasterizes frames onto braille cells: each terminal cell holds a
// 2x4 grid of micro-pixels and the color of the last shape that touched it.
type Canvas struct {
	w, h   int // in cells
	m      [][]uint8
	col    [][]colorful.Color
	text   [][]rune
	bg     colorful.Color
	scale  float64
	ox, oy float64
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{w: max(cols, 1), h: max(rows, 1)}
	c.m = make([][]uint8, c.h)
	c.col = make([][]colorful.Color, c.h)
	c.text = make([][]rune, c.h)
	for i := range c.m {
		c.m[i] = make([]uint8, c.w)
		c.col[i] = make([]colorful.Color, c.w)
		c.text[i] = make([]rune, c.w)
	}
	return c
}

func (c *Canvas) Size() (cols, rows int) { return c.w, c.h }

// fit maps a w x h surface onto the micro grid with a uniform scale,
// centered.
func (c *Canvas) fit(w, h float64) {
	mw, mh := float64(c.w*2), float64(c.h*4)
	if w <= 0 || h <= 0 {
		c.scale, c.ox, c.oy = 1, 0, 0
		return
	}
	c.scale = math.Min(mw/w, mh/h)
	c.ox = (mw - w*c.scale) / 2
	c.oy = (mh - h*c.scale) / 2
}

// ToSurface converts a cell coordinate to surface pixels of the last drawn
// frame.
func (c *Canvas) ToSurface(cx, cy int) (float64, float64) {
	if c.scale == 0 {
		return 0, 0
	}
	mx := float64(cx*2) + 1
	my := float64(cy*4) + 2
	return (mx - c.ox) / c.scale, (my - c.oy) / c.scale
}

// PixelsPerCell is how many surface pixels one terminal cell spans.
func (c *Canvas) PixelsPerCell() (float64, float64) {
	if c.scale == 0 {
		return 1, 1
	}
	return 2 / c.scale, 4 / c.scale
}

func (c *Canvas) micro(x, y float64) (int, int) {
	return int(math.Round(x*c.scale + c.ox)), int(math.Round(y*c.scale + c.oy))
}

// Draw clears the canvas and paints every shape of f.
func (c *Canvas) Draw(f *Frame) {
	c.fit(f.Width, f.Height)
	c.bg = f.Background
	for y := range c.m {
		for x := range c.m[y] {
			c.m[y][x] = 0
			c.text[y][x] = 0
		}
	}
	for _, s := range f.Shapes {
		if !opaque(s) {
			continue
		}
		switch s := s.(type) {
		case Circle:
			c.circle(s)
		case Line:
			c.line(s)
		case Path:
			c.path(s)
		case Text:
			c.label(s)
		}
	}
}

func (c *Canvas) tint(col colorful.Color, alpha float64) colorful.Color {
	if alpha >= 1 {
		return col
	}
	return c.bg.BlendRgb(col, alpha).Clamped()
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (c *Canvas) setPixel(mx, my int, col colorful.Color) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= c.h || cx >= c.w {
		return
	}
	c.m[cy][cx] |= brailleBit(rx, ry)
	c.col[cy][cx] = col
}

func brailleBit(rx, ry int) uint8 {
	if ry == 3 {
		if rx == 0 {
			return 0x40
		}
		return 0x80
	}
	if rx == 0 {
		return 1 << ry
	}
	return 0x08 << ry
}

func (c *Canvas) circle(s Circle) {
	fill := c.tint(s.Fill, s.Alpha)
	mx, my := c.micro(s.X, s.Y)
	r := s.R * c.scale
	ri := int(math.Ceil(r))
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if float64(dx*dx+dy*dy) <= r*r {
				c.setPixel(mx+dx, my+dy, fill)
			}
		}
	}
	if s.Stroke == nil || s.StrokeWidth <= 0 {
		return
	}
	stroke := c.tint(*s.Stroke, s.Alpha)
	steps := max(8, int(2*math.Pi*r))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.setPixel(mx+int(math.Round(math.Cos(a)*r)), my+int(math.Round(math.Sin(a)*r)), stroke)
	}
}

func (c *Canvas) line(l Line) {
	x0, y0 := c.micro(l.X0, l.Y0)
	x1, y1 := c.micro(l.X1, l.Y1)
	c.drawLineMicro(x0, y0, x1, y1, c.tint(l.From, l.Alpha), c.tint(l.To, l.Alpha))
}

// drawLineMicro draws a line on the microgrid using Bresenham, blending
// from one color to the other.
func (c *Canvas) drawLineMicro(x0, y0, x1, y1 int, from, to colorful.Color) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	n := max(dx, -dy)
	err := dx + dy
	for i := 0; ; i++ {
		t := 0.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		c.setPixel(x0, y0, from.BlendRgb(to, math.Min(t, 1)))
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) path(p Path) {
	if len(p.Points) < 2 {
		return
	}
	from, to := c.tint(p.From, p.Alpha), c.tint(p.To, p.Alpha)
	pts := make([][2]int, len(p.Points))
	for i, q := range p.Points {
		x, y := c.micro(q.X, q.Y)
		pts[i] = [2]int{x, y}
	}
	if p.Fill {
		c.fillMicro(pts, from)
		return
	}
	segs := len(pts) - 1
	if p.Closed {
		segs++
	}
	for i := 0; i < segs; i++ {
		a, b := pts[i], pts[(i+1)%len(pts)]
		ca := from.BlendRgb(to, float64(i)/float64(segs))
		cb := from.BlendRgb(to, float64(i+1)/float64(segs))
		c.drawLineMicro(a[0], a[1], b[0], b[1], ca, cb)
	}
}

// fillMicro fills a ring with the even-odd rule, one micro scanline at a
// time.
func (c *Canvas) fillMicro(ring [][2]int, col colorful.Color) {
	hMic := c.h * 4
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for i := 0; i < len(ring); i++ {
			a := ring[i]
			b := ring[(i+1)%len(ring)]
			if a[1] == b[1] {
				continue
			}
			y0, y1 := a[1], b[1]
			x0, x1 := a[0], b[0]
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= xs[i+1]; xMic++ {
				c.setPixel(xMic, yMic, col)
			}
		}
	}
}

func (c *Canvas) label(t Text) {
	if t.Alpha < 0.1 || t.Text == "" {
		return
	}
	mx, my := c.micro(t.X, t.Y)
	cy := my / 4
	runes := []rune(t.Text)
	cx := mx/2 - len(runes)/2
	if cy < 0 || cy >= c.h {
		return
	}
	col := c.tint(t.Color, t.Alpha)
	for i, r := range runes {
		x := cx + i
		if x < 0 || x >= c.w {
			continue
		}
		c.text[cy][x] = r
		c.col[cy][x] = col
	}
}

// Lines returns the canvas as styled terminal rows.
func (c *Canvas) Lines() []string {
	styles := map[string]lipgloss.Style{}
	styleFor := func(col colorful.Color) lipgloss.Style {
		hex := col.Clamped().Hex()
		st, ok := styles[hex]
		if !ok {
			st = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
			styles[hex] = st
		}
		return st
	}
	out := make([]string, c.h)
	var sb strings.Builder
	for y := 0; y < c.h; y++ {
		sb.Reset()
		for x := 0; x < c.w; x++ {
			switch {
			case c.text[y][x] != 0:
				sb.WriteString(styleFor(c.col[y][x]).Bold(true).Render(string(c.text[y][x])))
			case c.m[y][x] != 0:
				sb.WriteString(styleFor(c.col[y][x]).Render(string(rune(0x2800 + int(c.m[y][x])))))
			default:
				sb.WriteByte(' ')
			}
		}
		out[y] = sb.String()
	}
	return out
}

func (c *Canvas) String() string { return strings.Join(c.Lines(), "\n") }

// Mask returns the raw braille bits of a cell, for tests.
func (c *Canvas) Mask(cx, cy int) uint8 {
	if cx < 0 || cy < 0 || cx >= c.w || cy >= c.h {
		return 0
	}
	return c.m[cy][cx]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
