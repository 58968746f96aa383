package scale

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is the warm-to-plum ramp shared by the sketches.
var Palette = []string{
	"#d98948", "#f36e37", "#f15f35", "#ef423a", "#ec2c3d",
	"#e52364", "#d01c67", "#816182", "#5c405b", "#4f2f3f",
}

// Hex parses a #rrggbb or #rgb color.
func Hex(s string) (colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err == nil {
		return c, nil
	}
	if len(s) == 4 && s[0] == '#' {
		return colorful.Hex(fmt.Sprintf("#%c%c%c%c%c%c", s[1], s[1], s[2], s[2], s[3], s[3]))
	}
	return colorful.Color{}, fmt.Errorf("parse color %q: %w", s, err)
}

// MustHex is Hex for compile-time constants.
func MustHex(s string) colorful.Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// RGB8 builds a color from 0-255 channels.
func RGB8(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Mix interpolates channel-wise in sRGB, as the canvas sketches do.
func Mix(a, b colorful.Color, t float64) colorful.Color {
	return a.BlendRgb(b, t)
}

// Ordinal assigns colors to categories in first-seen order, cycling through
// the range when categories outnumber colors.
type Ordinal struct {
	rng   []colorful.Color
	index map[string]int
	order []string
}

func NewOrdinal(hexes ...string) *Ordinal {
	if len(hexes) == 0 {
		hexes = Palette
	}
	o := &Ordinal{index: make(map[string]int)}
	for _, h := range hexes {
		o.rng = append(o.rng, MustHex(h))
	}
	return o
}

func (o *Ordinal) Map(key string) colorful.Color {
	i, ok := o.index[key]
	if !ok {
		i = len(o.order)
		o.index[key] = i
		o.order = append(o.order, key)
	}
	return o.rng[i%len(o.rng)]
}

// Domain returns the categories in the order they were first mapped.
func (o *Ordinal) Domain() []string { return append([]string(nil), o.order...) }
