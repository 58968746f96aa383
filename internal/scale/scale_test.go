package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinear(t *testing.T) {
	s := NewLinear(0, 10, 100, 200)
	assert.InDelta(t, 150, s.Map(5), 1e-9)
	assert.InDelta(t, 250, s.Map(15), 1e-9, "unclamped extrapolates")
	assert.InDelta(t, 5, s.Invert(150), 1e-9)

	s.Clamp = true
	assert.InDelta(t, 200, s.Map(15), 1e-9)

	flat := NewLinear(3, 3, 0, 10)
	assert.InDelta(t, 5, flat.Map(3), 1e-9)
}

func TestNiceAndTicks(t *testing.T) {
	s := NewLinear(0.7, 9.3, 0, 1).Nice(10)
	assert.Equal(t, [2]float64{0, 10}, s.Domain)

	ticks := NewLinear(0, 100, 0, 1).Ticks(5)
	assert.Equal(t, []float64{0, 20, 40, 60, 80, 100}, ticks)
}

func TestSqrt(t *testing.T) {
	s := Sqrt{Domain: [2]float64{0, 100}, Range: [2]float64{3, 15}}
	assert.InDelta(t, 3, s.Map(0), 1e-9)
	assert.InDelta(t, 15, s.Map(100), 1e-9)
	assert.InDelta(t, 9, s.Map(25), 1e-9)
	assert.InDelta(t, 15, s.Map(400), 1e-9)
}

func TestPiecewise(t *testing.T) {
	p := NewPiecewise(Stop{15, 6}, Stop{10, 3}, Stop{18, 10})
	tests := []struct {
		zoom, want float64
	}{
		{5, 3},
		{10, 3},
		{12.5, 4.5},
		{15, 6},
		{16.5, 8},
		{22, 10},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, p.At(tt.zoom), 1e-9, "zoom %v", tt.zoom)
	}
}

func TestHex(t *testing.T) {
	c, err := Hex("#fff")
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", c.Hex())

	_, err = Hex("nope")
	assert.Error(t, err)

	assert.Equal(t, "#d98948", RGB8(217, 137, 72).Hex())
}

func TestMixEndpoints(t *testing.T) {
	a, b := RGB8(217, 137, 72), RGB8(79, 47, 63)
	assert.Equal(t, a.Hex(), Mix(a, b, 0).Hex())
	assert.Equal(t, b.Hex(), Mix(a, b, 1).Hex())
}

func TestOrdinalCycles(t *testing.T) {
	o := NewOrdinal("#000000", "#ffffff")
	assert.Equal(t, "#000000", o.Map("a").Hex())
	assert.Equal(t, "#ffffff", o.Map("b").Hex())
	assert.Equal(t, "#000000", o.Map("c").Hex())
	assert.Equal(t, "#ffffff", o.Map("b").Hex())
	assert.Equal(t, []string{"a", "b", "c"}, o.Domain())
}
