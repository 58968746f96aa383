package particle

import (
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"sketchbook/internal/camera"
)

// Mesh is a sphere attached to a Scene.
type Mesh struct {
	ID       int
	Position camera.Vec3
	Rotation camera.Vec3
	Radius   float64
	Color    colorful.Color
}

// Scene is the set of meshes the renderer draws. Objects are attached at
// setup and detached when they leave the simulation.
type Scene struct {
	meshes map[int]*Mesh
	nextID int
}

func NewScene() *Scene {
	return &Scene{meshes: make(map[int]*Mesh)}
}

// Attach adds m to the scene, assigning it a fresh ID.
func (s *Scene) Attach(m *Mesh) int {
	m.ID = s.nextID
	s.nextID++
	s.meshes[m.ID] = m
	return m.ID
}

func (s *Scene) Detach(id int) bool {
	if _, ok := s.meshes[id]; !ok {
		return false
	}
	delete(s.meshes, id)
	return true
}

func (s *Scene) Contains(id int) bool {
	_, ok := s.meshes[id]
	return ok
}

func (s *Scene) Len() int { return len(s.meshes) }

// Meshes returns the attached meshes ordered by ID.
func (s *Scene) Meshes() []*Mesh {
	out := make([]*Mesh, 0, len(s.meshes))
	for _, m := range s.meshes {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
