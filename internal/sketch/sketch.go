// Package sketch wires each visualization into a named, steppable sketch
// the terminal viewer and the headless renderer can both drive.
package sketch

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"sketchbook/internal/camera"
	"sketchbook/internal/config"
	"sketchbook/internal/fetch"
	"sketchbook/internal/render"
)

var ErrUnknownSketch = errors.New("sketch: unknown sketch")

// Sketch is a drawing surface of fixed size that advances once per frame.
type Sketch interface {
	Name() string
	Size() (w, h float64)
	Tick(now time.Time)
	Frame(now time.Time) *render.Frame
}

// Pointer sketches take mouse input in surface coordinates.
type Pointer interface {
	PointerDown(b camera.Button, x, y float64, now time.Time)
	PointerMove(x, y float64, now time.Time)
	PointerUp(now time.Time)
	Wheel(dx, dy float64, modifier bool, now time.Time)
}

// ScreenPointer marks a Pointer that wants screen pixels rather than surface
// coordinates, because its speeds are tuned to pointer travel.
type ScreenPointer interface {
	Pointer
	ScreenPointer()
}

// KeyHandler sketches react to single keys. The returned status, if any,
// goes to the status line.
type KeyHandler interface {
	Key(key string, now time.Time) (status string, handled bool)
	Keys() string
}

// Inspector sketches describe what is under the pointer or selected.
type Inspector interface {
	Inspect() []string
}

// Tabler sketches expose their bound data as rows for the attribute table.
type Tabler interface {
	Table() (cols []string, rows [][]string)
}

// Loader sketches pull remote data. Fetch runs off the event loop and must
// not touch sketch state; the apply func it returns runs on the loop. On
// failure Fetch still returns an apply func installing fallback data,
// together with the error.
type Loader interface {
	Fetch(ctx context.Context) (apply func(now time.Time), err error)
}

// Env is what sketches are built from.
type Env struct {
	Config config.Config
	Log    *zap.Logger
	Source fetch.Fetcher
	Rand   *rand.Rand
	Now    time.Time
}

// NewEnv derives the data source and random source from cfg. A zero seed
// picks a time-based one.
func NewEnv(cfg config.Config, log *zap.Logger) Env {
	if log == nil {
		log = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return Env{
		Config: cfg,
		Log:    log,
		Source: fetch.New(cfg.Data, log),
		Rand:   rand.New(rand.NewSource(seed)),
		Now:    time.Now(),
	}
}

type entry struct {
	name  string
	about string
	build func(Env) (Sketch, error)
}

var registry = []entry{
	{"gradient", "circles joined by gradient dots", newGradient},
	{"bouncing", "bouncing circles with gradient links", newBouncing},
	{"circle", "a single declarative circle", newCircle},
	{"network", "flooding relationship diagram", newNetwork},
	{"stream", "cloud provider streamgraph", newStream},
	{"scatter", "keyed scatter plot", newScatter},
	{"map", "NYC subway stations", newMap},
	{"scene", "3D spheres with an orbit camera", newScene},
}

// Names lists the registered sketches in sidebar order.
func Names() []string {
	out := make([]string, len(registry))
	for i, e := range registry {
		out[i] = e.name
	}
	return out
}

// About returns the one-line description of a sketch.
func About(name string) string {
	for _, e := range registry {
		if e.name == name {
			return e.about
		}
	}
	return ""
}

// New builds the named sketch.
func New(name string, env Env) (Sketch, error) {
	for _, e := range registry {
		if e.name == name {
			s, err := e.build(env)
			if err != nil {
				return nil, fmt.Errorf("build %s: %w", name, err)
			}
			env.Log.Debug("sketch built", zap.String("sketch", name))
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSketch, name)
}

// base gives sketches a name and size, and no-op pointer handling.
type base struct {
	name string
	w, h float64
}

func (b base) Name() string             { return b.name }
func (b base) Size() (float64, float64) { return b.w, b.h }
func (base) Tick(time.Time)             {}

func (base) PointerDown(camera.Button, float64, float64, time.Time) {}
func (base) PointerMove(float64, float64, time.Time)                {}
func (base) PointerUp(time.Time)                                    {}
func (base) Wheel(float64, float64, bool, time.Time)                {}
