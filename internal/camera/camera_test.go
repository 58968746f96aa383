package camera

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestZoomWheelMovesTargetOnly(t *testing.T) {
	c := New(Config{
		Angle: 0, Radius: 8, Height: 4,
		MinRadius: 3, MaxRadius: 20, MinHeight: 1, MaxHeight: 10,
		Damping: 0.1, ZoomStep: 0.5, LookAtY: 1,
	})

	c.Wheel(0, -100, true)
	s := c.State()
	assert.InDelta(t, 7.5, s.TargetRadius, eps)
	assert.InDelta(t, 8, s.Radius, eps, "radius must not jump")

	c.Tick()
	assert.InDelta(t, 8-0.05, c.State().Radius, eps, "one tick closes 10% of the gap")

	for i := 0; i < 40; i++ {
		c.Wheel(0, -1, true)
	}
	assert.InDelta(t, 3, c.State().TargetRadius, eps, "target clamps at the minimum")

	c.Wheel(0, 1, true)
	assert.InDelta(t, 3.5, c.State().TargetRadius, eps)

	// a horizontal wheel with the modifier zooms in
	c.Wheel(-40, 0, true)
	assert.InDelta(t, 3, c.State().TargetRadius, eps)
}

func TestModesAreExclusive(t *testing.T) {
	c := New(DefaultConfig())
	assert.Equal(t, ModeIdle, c.Mode())

	c.PointerDown(ButtonPrimary, 0, 0)
	assert.Equal(t, ModePan, c.Mode())
	c.PointerDown(ButtonSecondary, 0, 0)
	assert.Equal(t, ModeRotate, c.Mode())
	c.PointerDown(ButtonMiddle, 0, 0)
	assert.Equal(t, ModeIdle, c.Mode())

	c.PointerDown(ButtonSecondary, 0, 0)
	c.PointerUp()
	assert.Equal(t, ModeIdle, c.Mode())

	before := c.State()
	c.PointerMove(50, 50)
	assert.Equal(t, before, c.State(), "moves without an armed mode are ignored")
}

func TestRotateAdjustsAngleDirectly(t *testing.T) {
	c := New(DefaultConfig())
	c.PointerDown(ButtonSecondary, 100, 100)
	c.PointerMove(110, 120)

	s := c.State()
	assert.InDelta(t, 0.8-0.1, s.Angle, eps)
	assert.InDelta(t, 4.2, s.TargetHeight, eps)
	assert.InDelta(t, 4, s.Height, eps)
	assert.Zero(t, s.TargetPanX)
}

func TestPanIsRelativeToAngle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Angle = 0
	c := New(cfg)
	c.PointerDown(ButtonPrimary, 0, 0)
	c.PointerMove(10, 0)
	s := c.State()
	assert.InDelta(t, -0.5, s.TargetPanX, eps)
	assert.InDelta(t, 0, s.TargetPanZ, eps)

	cfg.Angle = math.Pi / 2
	c = New(cfg)
	c.PointerDown(ButtonPrimary, 0, 0)
	c.PointerMove(10, 0)
	s = c.State()
	assert.InDelta(t, 0, s.TargetPanX, eps)
	assert.InDelta(t, 0.5, s.TargetPanZ, eps)
}

func TestWheelWithoutModifierPans(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Angle = 0
	c := New(cfg)
	c.Wheel(0, 100, false)
	s := c.State()
	assert.InDelta(t, 8, s.TargetRadius, eps)
	assert.InDelta(t, 0, s.TargetPanX, eps)
	assert.InDelta(t, -2, s.TargetPanZ, eps)
}

func TestClampingHoldsForRandomInput(t *testing.T) {
	cfg := DefaultConfig()
	c := New(cfg)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		switch rng.Intn(6) {
		case 0:
			c.PointerDown(Button(rng.Intn(4)), rng.Float64()*800, rng.Float64()*400)
		case 1:
			c.PointerMove(rng.Float64()*2000-1000, rng.Float64()*2000-1000)
		case 2:
			c.PointerUp()
		case 3:
			c.Wheel(rng.NormFloat64()*100, rng.NormFloat64()*100, rng.Intn(2) == 0)
		}
		c.Tick()
		s := c.State()
		require.GreaterOrEqual(t, s.Radius, cfg.MinRadius-eps)
		require.LessOrEqual(t, s.Radius, cfg.MaxRadius+eps)
		require.GreaterOrEqual(t, s.Height, cfg.MinHeight-eps)
		require.LessOrEqual(t, s.Height, cfg.MaxHeight+eps)
		require.GreaterOrEqual(t, s.TargetRadius, cfg.MinRadius)
		require.LessOrEqual(t, s.TargetHeight, cfg.MaxHeight)
	}
}

func TestTickDisplacementIsBounded(t *testing.T) {
	c := New(DefaultConfig())
	c.Wheel(0, 1, true)
	c.PointerDown(ButtonPrimary, 0, 0)
	c.PointerMove(300, -200)
	c.PointerUp()
	c.PointerDown(ButtonSecondary, 0, 0)
	c.PointerMove(0, 400)
	c.PointerUp()

	for i := 0; i < 100; i++ {
		before := c.State()
		eyeBefore := c.Eye()
		c.Tick()
		after := c.State()

		check := func(name string, cur, next, target float64) {
			gap := math.Abs(target - cur)
			assert.LessOrEqual(t, math.Abs(next-cur), 0.1*gap+eps, name)
		}
		check("radius", before.Radius, after.Radius, before.TargetRadius)
		check("height", before.Height, after.Height, before.TargetHeight)
		check("panX", before.PanX, after.PanX, before.TargetPanX)
		check("panZ", before.PanZ, after.PanZ, before.TargetPanZ)

		gap := math.Abs(before.TargetRadius-before.Radius) +
			math.Abs(before.TargetHeight-before.Height) +
			math.Abs(before.TargetPanX-before.PanX) +
			math.Abs(before.TargetPanZ-before.PanZ)
		assert.LessOrEqual(t, c.Eye().Sub(eyeBefore).Len(), 0.1*gap+eps, "eye moved too far on tick %d", i)
	}
}

func TestEyePlacement(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Angle = 0
	c := New(cfg)
	assert.InDelta(t, 8, c.Eye().X, eps)
	assert.InDelta(t, 4, c.Eye().Y, eps)
	assert.InDelta(t, 0, c.Eye().Z, eps)
	assert.Equal(t, Vec3{0, 1, 0}, c.LookAt())
}

func TestProjectLookAtIsCentered(t *testing.T) {
	c := New(DefaultConfig())
	lens := DefaultLens(800, 400)
	x, y, depth, ok := c.Project(c.LookAt(), lens)
	require.True(t, ok)
	assert.InDelta(t, 400, x, 1e-6)
	assert.InDelta(t, 200, y, 1e-6)
	assert.Greater(t, depth, 0.0)

	_, _, _, ok = c.Project(c.Eye().Add(c.Eye().Sub(c.LookAt())), lens)
	assert.False(t, ok, "points behind the camera are culled")
}
