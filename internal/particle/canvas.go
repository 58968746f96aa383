package particle

import (
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"

	"sketchbook/internal/camera"
	"sketchbook/internal/scale"
)

// Point is a colored position on an 800x400 drawing canvas.
type Point struct {
	X, Y  float64
	Color colorful.Color
}

// CanvasPoints is the circle layout of the gradient and bouncing sketches.
var CanvasPoints = []Point{
	{50, 100, scale.RGB8(217, 137, 72)},
	{100, 300, scale.RGB8(217, 137, 72)},
	{200, 80, scale.RGB8(243, 110, 55)},
	{250, 220, scale.RGB8(241, 95, 49)},
	{300, 340, scale.RGB8(239, 66, 58)},
	{350, 180, scale.RGB8(236, 44, 61)},
	{400, 70, scale.RGB8(229, 35, 100)},
	{450, 250, scale.RGB8(208, 28, 103)},
	{500, 350, scale.RGB8(129, 97, 130)},
	{600, 120, scale.RGB8(92, 64, 91)},
	{650, 300, scale.RGB8(79, 47, 63)},
}

// ScenePoints seeds the 3D scene; they are spread wider than CanvasPoints.
var ScenePoints = []Point{
	{50, 100, scale.RGB8(217, 137, 72)},
	{100, 300, scale.RGB8(217, 137, 72)},
	{200, 80, scale.RGB8(243, 110, 55)},
	{250, 220, scale.RGB8(241, 95, 49)},
	{300, 340, scale.RGB8(239, 66, 58)},
	{430, 280, scale.RGB8(236, 44, 61)},
	{400, 70, scale.RGB8(229, 35, 100)},
	{550, 200, scale.RGB8(208, 28, 103)},
	{600, 350, scale.RGB8(129, 97, 130)},
	{700, 120, scale.RGB8(92, 64, 91)},
	{750, 300, scale.RGB8(79, 47, 63)},
}

// Lift maps a canvas point onto the ground plane of the 3D scene, centered
// on the canvas middle at 100 pixels per unit, at the given height.
func Lift(p Point, height float64) camera.Vec3 {
	return camera.Vec3{X: (p.X - 400) / 100, Y: height, Z: (p.Y - 200) / 100}
}

// Seed spawns one sphere per ScenePoints entry at a random height in
// [0.5, 2.5), each with the material of its index.
func (s *System) Seed() error {
	for i, p := range ScenePoints {
		if _, err := s.Spawn(Lift(p, 0.5+s.rng.Float64()*2), i); err != nil {
			return err
		}
	}
	return nil
}

// Circle is a moving disc on the 2D canvas.
type Circle struct {
	X, Y   float64
	DX, DY float64
	Color  colorful.Color
}

// Bouncer moves circles and reflects them off the canvas edges.
type Bouncer struct {
	Width, Height float64
	Radius        float64
	Circles       []Circle
}

// NewBouncer starts a circle at each point with a velocity uniform in
// [-3, 3) per axis.
func NewBouncer(points []Point, w, h, radius float64, rng *rand.Rand) *Bouncer {
	b := &Bouncer{Width: w, Height: h, Radius: radius}
	for _, p := range points {
		b.Circles = append(b.Circles, Circle{
			X: p.X, Y: p.Y,
			DX:    rng.Float64()*6 - 3,
			DY:    rng.Float64()*6 - 3,
			Color: p.Color,
		})
	}
	return b
}

func (b *Bouncer) Tick() {
	for i := range b.Circles {
		c := &b.Circles[i]
		c.X += c.DX
		c.Y += c.DY
		if c.X-b.Radius < 0 || c.X+b.Radius > b.Width {
			c.DX = -c.DX
		}
		if c.Y-b.Radius < 0 || c.Y+b.Radius > b.Height {
			c.DY = -c.DY
		}
	}
}

// Points returns the current circle centers.
func (b *Bouncer) Points() []Point {
	out := make([]Point, len(b.Circles))
	for i, c := range b.Circles {
		out[i] = Point{c.X, c.Y, c.Color}
	}
	return out
}

// GradientConnections samples steps points along each consecutive pair,
// interpolating both position and color.
func GradientConnections(points []Point, steps int) []Point {
	if len(points) < 2 || steps < 2 {
		return nil
	}
	out := make([]Point, 0, (len(points)-1)*steps)
	for i := 0; i < len(points)-1; i++ {
		a, b := points[i], points[i+1]
		for j := 0; j < steps; j++ {
			t := float64(j) / float64(steps-1)
			out = append(out, Point{
				X:     scale.Lerp(a.X, b.X, t),
				Y:     scale.Lerp(a.Y, b.Y, t),
				Color: scale.Mix(a.Color, b.Color, t),
			})
		}
	}
	return out
}
