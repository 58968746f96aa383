package render

import (
	"bytes"
	"path/filepath"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func red() colorful.Color { return colorful.Color{R: 1} }

func TestBrailleBits(t *testing.T) {
	tests := []struct {
		rx, ry int
		want   uint8
	}{
		{0, 0, 0x01}, {0, 1, 0x02}, {0, 2, 0x04}, {0, 3, 0x40},
		{1, 0, 0x08}, {1, 1, 0x10}, {1, 2, 0x20}, {1, 3, 0x80},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, brailleBit(tt.rx, tt.ry), "rx=%d ry=%d", tt.rx, tt.ry)
	}
}

func TestCanvasFitAndInverse(t *testing.T) {
	c := NewCanvas(40, 10)
	f := NewFrame(80, 40, Black)
	c.Draw(f)
	// 80 micro columns by 40 micro rows map one to one onto an 80x40 frame
	x, y := c.ToSurface(10, 5)
	assert.InDelta(t, 21, x, 1e-9)
	assert.InDelta(t, 22, y, 1e-9)
	px, py := c.PixelsPerCell()
	assert.Equal(t, 2.0, px)
	assert.Equal(t, 4.0, py)
}

func TestCanvasCircleAndAlpha(t *testing.T) {
	c := NewCanvas(40, 10)
	f := NewFrame(80, 40, Black)
	f.Add(Circle{X: 40, Y: 20, R: 5, Fill: red(), Alpha: 1})
	f.Add(Circle{X: 10, Y: 10, R: 3, Fill: red(), Alpha: 0})
	c.Draw(f)
	assert.NotZero(t, c.Mask(20, 5), "center cell of the visible circle")
	assert.Zero(t, c.Mask(5, 2), "transparent circle draws nothing")
	assert.Contains(t, c.String(), "⣿")
}

func TestCanvasLineAndText(t *testing.T) {
	c := NewCanvas(40, 10)
	f := NewFrame(80, 40, Black)
	f.Add(Line{X0: 0, Y0: 0, X1: 79, Y1: 0, From: red(), To: colorful.Color{B: 1}, Alpha: 1, Width: 1})
	f.Add(Text{X: 40, Y: 30, Text: "hi", Color: colorful.Color{R: 1, G: 1, B: 1}, Alpha: 1})
	c.Draw(f)
	for x := 0; x < 40; x++ {
		assert.NotZero(t, c.Mask(x, 0)&0x09, "cell %d on the top micro row", x)
	}
	assert.InDelta(t, 1, c.col[0][0].R, 0.05)
	assert.InDelta(t, 0, c.col[0][0].B, 0.05)
	assert.Equal(t, colorful.Color{B: 1}, c.col[0][39])
	assert.Contains(t, c.String(), "h")
}

func TestCanvasFill(t *testing.T) {
	c := NewCanvas(10, 5)
	f := NewFrame(20, 20, Black)
	f.Add(Path{Points: []Pt{{0, 0}, {19, 0}, {19, 19}, {0, 19}}, From: red(), To: red(), Alpha: 1, Fill: true})
	c.Draw(f)
	assert.Equal(t, uint8(0xff), c.Mask(5, 2))
}

func TestVisible(t *testing.T) {
	f := NewFrame(100, 100, Black)
	f.Add(Circle{X: 50, Y: 50, R: 5, Alpha: 1}, Circle{X: -50, Y: 50, R: 5, Alpha: 1})
	assert.Equal(t, 1, f.Visible())
}

func TestWritePNG(t *testing.T) {
	f := NewFrame(64, 32, Black)
	f.Add(
		Circle{X: 16, Y: 16, R: 8, Fill: red(), Alpha: 0.8, Stroke: &colorful.Color{R: 1, G: 1, B: 1}, StrokeWidth: 1},
		Line{X0: 0, Y0: 0, X1: 63, Y1: 31, From: red(), To: colorful.Color{G: 1}, Alpha: 0.6, Width: 2},
		Path{Points: []Pt{{40, 4}, {60, 4}, {50, 28}}, From: red(), Alpha: 1, Fill: true},
	)
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, f))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	_, err := Image(NewFrame(0, 10, Black))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, SavePNG(path, f))
	assert.FileExists(t, path)
}

func TestWriteChartPNG(t *testing.T) {
	sc := ScatterChart{
		Title: "scatter", Width: 320, Height: 240,
		Marks: []Mark{
			{X: 1, Y: 2, R: 4, Color: red(), Alpha: 1},
			{X: 3, Y: 5, R: 8, Color: colorful.Color{B: 1}, Alpha: 0.5},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteChartPNG(&buf, sc))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	assert.Error(t, WriteChartPNG(&buf, ScatterChart{Width: 10, Height: 10}))
}
