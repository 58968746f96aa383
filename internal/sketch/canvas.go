package sketch

import (
	"time"

	"sketchbook/internal/particle"
	"sketchbook/internal/render"
	"sketchbook/internal/scale"
)

const (
	canvasWidth    = 800
	canvasHeight   = 400
	circleRadius   = 35
	gradientSteps  = 50
	gradientStroke = 2
)

// canvasSize is the configured surface for the plain canvas sketches.
func canvasSize(env Env) (float64, float64) {
	c := env.Config.Canvas
	if c.Width <= 0 || c.Height <= 0 {
		return canvasWidth, canvasHeight
	}
	return float64(c.Width), float64(c.Height)
}

// drawCircles paints the gradient dots between consecutive points first and
// the circles over them.
func drawCircles(f *render.Frame, pts []particle.Point) {
	for _, p := range particle.GradientConnections(pts, gradientSteps) {
		f.Add(render.Circle{X: p.X, Y: p.Y, R: gradientStroke / 2, Fill: p.Color, Alpha: 1})
	}
	for _, p := range pts {
		f.Add(render.Circle{X: p.X, Y: p.Y, R: circleRadius, Fill: p.Color, Alpha: 1})
	}
}

type gradient struct{ base }

func newGradient(Env) (Sketch, error) {
	return &gradient{base{name: "gradient", w: canvasWidth, h: canvasHeight}}, nil
}

func (g *gradient) Frame(time.Time) *render.Frame {
	f := render.NewFrame(g.w, g.h, render.Black)
	drawCircles(f, particle.CanvasPoints)
	return f
}

type bouncing struct {
	base
	b *particle.Bouncer
}

func newBouncing(env Env) (Sketch, error) {
	w, h := canvasSize(env)
	return &bouncing{
		base: base{name: "bouncing", w: w, h: h},
		b:    particle.NewBouncer(particle.CanvasPoints, w, h, circleRadius, env.Rand),
	}, nil
}

func (s *bouncing) Tick(time.Time) { s.b.Tick() }

func (s *bouncing) Frame(time.Time) *render.Frame {
	f := render.NewFrame(s.w, s.h, render.Black)
	drawCircles(f, s.b.Points())
	return f
}

type circle struct{ base }

func newCircle(Env) (Sketch, error) {
	return &circle{base{name: "circle", w: 800, h: 600}}, nil
}

var steelblue = scale.MustHex("#4682B4")

func (c *circle) Frame(time.Time) *render.Frame {
	f := render.NewFrame(c.w, c.h, render.Black)
	f.Add(render.Circle{X: c.w / 2, Y: c.h / 2, R: 50, Fill: steelblue, Alpha: 1})
	return f
}
