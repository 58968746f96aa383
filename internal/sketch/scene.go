package sketch

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"sketchbook/internal/camera"
	"sketchbook/internal/particle"
	"sketchbook/internal/render"
	"sketchbook/internal/scale"
)

const (
	sceneWidth    = 800
	sceneHeight   = 400
	gridSize      = 10
	gridDivisions = 20

	ambientLight     = 0.6
	directionalLight = 0.8
)

var (
	gridColor = scale.MustHex("#888888")
	lightDir  = camera.Vec3{X: 5, Y: 10, Z: 7}.Norm()
)

type sceneSketch struct {
	base
	env  Env
	cam  *camera.Controller
	sys  *particle.System
	lens camera.Lens
}

func newScene(env Env) (Sketch, error) {
	pc := particle.DefaultConfig()
	pc.FloorEnabled = env.Config.Scene.Floor
	pc.Gravity = env.Config.Scene.Gravity
	s := &sceneSketch{
		base: base{name: "scene", w: sceneWidth, h: sceneHeight},
		env:  env,
		cam:  camera.New(camera.DefaultConfig()),
		sys:  particle.NewSystem(particle.NewScene(), pc, env.Rand),
		lens: camera.DefaultLens(sceneWidth, sceneHeight),
	}
	if err := s.sys.Seed(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *sceneSketch) ScreenPointer() {}

func (s *sceneSketch) PointerDown(b camera.Button, x, y float64, _ time.Time) {
	s.cam.PointerDown(b, x, y)
}

func (s *sceneSketch) PointerMove(x, y float64, _ time.Time) { s.cam.PointerMove(x, y) }
func (s *sceneSketch) PointerUp(time.Time)                   { s.cam.PointerUp() }

func (s *sceneSketch) Wheel(dx, dy float64, modifier bool, _ time.Time) {
	s.cam.Wheel(dx, dy, modifier)
}

func (s *sceneSketch) Tick(time.Time) {
	s.cam.Tick()
	if n := s.sys.Tick(); n > 0 {
		s.env.Log.Debug("spheres fell out", zap.Int("removed", n), zap.Int("left", s.sys.Len()))
	}
}

func (s *sceneSketch) Key(key string, _ time.Time) (string, bool) {
	switch key {
	case "+", "=":
		s.cam.Wheel(0, -1, true)
		return "", true
	case "-":
		s.cam.Wheel(0, 1, true)
		return "", true
	case " ", "space":
	default:
		return "", false
	}
	rng := s.env.Rand
	pos := camera.Vec3{X: rng.Float64()*6 - 3, Y: 3, Z: rng.Float64()*6 - 3}
	if _, err := s.sys.Spawn(pos, -1); err != nil {
		if errors.Is(err, particle.ErrFull) {
			return "sphere limit reached", true
		}
		return "spawn error: " + err.Error(), true
	}
	return fmt.Sprintf("%d spheres", s.sys.Len()), true
}

func (s *sceneSketch) Keys() string { return "space spawn  drag pan  right-drag rotate  +/- or ctrl+wheel zoom" }

func (s *sceneSketch) Inspect() []string {
	st := s.cam.State()
	return []string{
		fmt.Sprintf("radius %.2f  height %.2f", st.Radius, st.Height),
		fmt.Sprintf("mode %s  spheres %d", s.cam.Mode(), s.sys.Len()),
	}
}

// segment projects a world segment, clipping it at the near plane.
func (s *sceneSketch) segment(a, b camera.Vec3) (render.Line, bool) {
	forward := s.cam.LookAt().Sub(s.cam.Eye()).Norm()
	da, db := a.Sub(s.cam.Eye()).Dot(forward), b.Sub(s.cam.Eye()).Dot(forward)
	near := s.lens.Near * 1.001
	switch {
	case da < near && db < near:
		return render.Line{}, false
	case da < near:
		a = a.Add(b.Sub(a).Scale((near - da) / (db - da)))
	case db < near:
		b = b.Add(a.Sub(b).Scale((near - db) / (da - db)))
	}
	x0, y0, _, ok0 := s.cam.Project(a, s.lens)
	x1, y1, _, ok1 := s.cam.Project(b, s.lens)
	if !ok0 || !ok1 {
		return render.Line{}, false
	}
	return render.Line{X0: x0, Y0: y0, X1: x1, Y1: y1, From: gridColor, To: gridColor, Alpha: 1, Width: 1}, true
}

// shade lights c with the ambient term plus a directional term for the side
// of the sphere facing the camera.
func shade(c colorful.Color, normal camera.Vec3) colorful.Color {
	k := math.Min(1, ambientLight+directionalLight*math.Max(0, normal.Dot(lightDir)))
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}
}

func (s *sceneSketch) Frame(time.Time) *render.Frame {
	f := render.NewFrame(s.w, s.h, render.Black)
	half := gridSize / 2.0
	for i := 0; i <= gridDivisions; i++ {
		t := -half + float64(i)*gridSize/gridDivisions
		if l, ok := s.segment(camera.Vec3{X: t, Z: -half}, camera.Vec3{X: t, Z: half}); ok {
			f.Add(l)
		}
		if l, ok := s.segment(camera.Vec3{X: -half, Z: t}, camera.Vec3{X: half, Z: t}); ok {
			f.Add(l)
		}
	}

	type disc struct {
		c     render.Circle
		depth float64
	}
	var discs []disc
	eye := s.cam.Eye()
	for _, m := range s.sys.Scene().Meshes() {
		x, y, depth, ok := s.cam.Project(m.Position, s.lens)
		if !ok {
			continue
		}
		col := shade(m.Color, eye.Sub(m.Position).Norm())
		discs = append(discs, disc{render.Circle{X: x, Y: y, R: s.lens.ScaleAt(depth) * m.Radius, Fill: col, Alpha: 1}, depth})
	}
	// far spheres first
	sort.Slice(discs, func(i, j int) bool { return discs[i].depth > discs[j].depth })
	for _, d := range discs {
		f.Add(d.c)
	}
	return f
}
