// Package particle holds the moving points of the animated sketches: spheres
// bouncing inside a box in 3D and circles bouncing off canvas edges in 2D.
package particle

import (
	"errors"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"

	"sketchbook/internal/camera"
	"sketchbook/internal/scale"
)

var ErrFull = errors.New("particle: sphere limit reached")

// Swatch is a palette entry and how many material slots it occupies.
type Swatch struct {
	Color colorful.Color
	Count int
}

var Swatches = []Swatch{
	{scale.RGB8(217, 137, 72), 2},
	{scale.RGB8(243, 110, 55), 1},
	{scale.RGB8(241, 95, 49), 1},
	{scale.RGB8(239, 66, 58), 1},
	{scale.RGB8(236, 44, 61), 1},
	{scale.RGB8(229, 35, 100), 1},
	{scale.RGB8(208, 28, 103), 1},
	{scale.RGB8(129, 97, 130), 1},
	{scale.RGB8(92, 64, 91), 1},
	{scale.RGB8(79, 47, 63), 1},
}

// Materials expands the swatches into one color per slot.
func Materials() []colorful.Color {
	var out []colorful.Color
	for _, s := range Swatches {
		for i := 0; i < s.Count; i++ {
			out = append(out, s.Color)
		}
	}
	return out
}

type Config struct {
	Radius      float64
	Bounds      float64
	Restitution float64
	// FloorEnabled keeps spheres at or above Floor on the vertical axis.
	FloorEnabled bool
	Floor        float64
	RemoveBelow  float64
	Gravity      float64
	MaxSpheres   int
	// Initial velocity and spin are uniform in ±Speed and ±Spin.
	Speed float64
	Spin  float64
}

func DefaultConfig() Config {
	return Config{
		Radius:       0.2,
		Bounds:       4,
		Restitution:  0.8,
		FloorEnabled: true,
		Floor:        0.2,
		RemoveBelow:  -10,
		MaxSpheres:   30,
		Speed:        0.01,
		Spin:         0.025,
	}
}

type Sphere struct {
	Mesh     *Mesh
	Velocity camera.Vec3
	Spin     camera.Vec3
}

// System integrates spheres once per tick and keeps the scene in step with
// the tracked collection.
type System struct {
	cfg       Config
	scene     *Scene
	rng       *rand.Rand
	materials []colorful.Color
	spheres   []*Sphere
}

func NewSystem(scene *Scene, cfg Config, rng *rand.Rand) *System {
	return &System{cfg: cfg, scene: scene, rng: rng, materials: Materials()}
}

func (s *System) Config() Config     { return s.cfg }
func (s *System) Scene() *Scene      { return s.scene }
func (s *System) Spheres() []*Sphere { return s.spheres }
func (s *System) Len() int           { return len(s.spheres) }

// Spawn attaches a sphere at pos. A negative material picks one at random.
func (s *System) Spawn(pos camera.Vec3, material int) (*Sphere, error) {
	if s.cfg.MaxSpheres > 0 && len(s.spheres) >= s.cfg.MaxSpheres {
		return nil, ErrFull
	}
	if material < 0 || material >= len(s.materials) {
		material = s.rng.Intn(len(s.materials))
	}
	sp := &Sphere{
		Mesh:     &Mesh{Position: pos, Radius: s.cfg.Radius, Color: s.materials[material]},
		Velocity: s.randVec(s.cfg.Speed),
		Spin:     s.randVec(s.cfg.Spin),
	}
	s.scene.Attach(sp.Mesh)
	s.spheres = append(s.spheres, sp)
	return sp, nil
}

func (s *System) randVec(half float64) camera.Vec3 {
	return camera.Vec3{
		X: (s.rng.Float64()*2 - 1) * half,
		Y: (s.rng.Float64()*2 - 1) * half,
		Z: (s.rng.Float64()*2 - 1) * half,
	}
}

// Tick moves every sphere one step and returns how many were removed for
// falling below RemoveBelow.
func (s *System) Tick() int {
	kept := s.spheres[:0]
	removed := 0
	for _, sp := range s.spheres {
		s.step(sp)
		if sp.Mesh.Position.Y < s.cfg.RemoveBelow {
			s.scene.Detach(sp.Mesh.ID)
			removed++
			continue
		}
		kept = append(kept, sp)
	}
	for i := len(kept); i < len(s.spheres); i++ {
		s.spheres[i] = nil
	}
	s.spheres = kept
	return removed
}

func (s *System) step(sp *Sphere) {
	m := sp.Mesh
	sp.Velocity.Y -= s.cfg.Gravity
	m.Position = m.Position.Add(sp.Velocity)
	m.Rotation = m.Rotation.Add(sp.Spin)

	b, r := s.cfg.Bounds, s.cfg.Restitution
	sp.Velocity.X = bounce(m.Position.X, sp.Velocity.X, -b, b, r)
	sp.Velocity.Z = bounce(m.Position.Z, sp.Velocity.Z, -b, b, r)
	lo := s.cfg.RemoveBelow
	if s.cfg.FloorEnabled {
		lo = s.cfg.Floor
	}
	sp.Velocity.Y = bounce(m.Position.Y, sp.Velocity.Y, lo, b, r)
	if s.cfg.FloorEnabled && m.Position.Y < s.cfg.Floor {
		m.Position.Y = s.cfg.Floor
	}
}

// bounce inverts and damps v when p has left [lo, hi] and is still moving
// outward.
func bounce(p, v, lo, hi, restitution float64) float64 {
	if (p > hi && v > 0) || (p < lo && v < 0) {
		return -v * restitution
	}
	return v
}
