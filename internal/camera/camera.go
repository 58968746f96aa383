// Package camera implements an orbiting camera driven by pointer and wheel
// input. Input only moves targets; Tick moves the camera toward them.
package camera

import "math"

type Vec3 struct{ X, Y, Z float64 }

func (a Vec3) Sub(b Vec3) Vec3      { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Add(b Vec3) Vec3      { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Dot(b Vec3) float64   { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) Len() float64         { return math.Sqrt(a.Dot(a)) }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{a.Y*b.Z - a.Z*b.Y, a.Z*b.X - a.X*b.Z, a.X*b.Y - a.Y*b.X}
}

func (a Vec3) Norm() Vec3 {
	l := a.Len()
	if l == 0 {
		return a
	}
	return a.Scale(1 / l)
}

type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

type Mode int

const (
	ModeIdle Mode = iota
	ModePan
	ModeRotate
)

func (m Mode) String() string {
	switch m {
	case ModePan:
		return "pan"
	case ModeRotate:
		return "rotate"
	}
	return "idle"
}

type Config struct {
	Angle, Radius, Height float64

	MinRadius, MaxRadius float64
	MinHeight, MaxHeight float64

	// Damping is the fraction of the remaining gap closed per tick.
	Damping     float64
	PanSpeed    float64
	RotateSpeed float64
	HeightSpeed float64
	ZoomStep    float64
	WheelPan    float64
	LookAtY     float64
}

func DefaultConfig() Config {
	return Config{
		Angle:       0.8,
		Radius:      8,
		Height:      4,
		MinRadius:   3,
		MaxRadius:   20,
		MinHeight:   1,
		MaxHeight:   10,
		Damping:     0.1,
		PanSpeed:    0.05,
		RotateSpeed: 0.01,
		HeightSpeed: 0.01,
		ZoomStep:    0.5,
		WheelPan:    0.02,
		LookAtY:     1,
	}
}

// State is the full camera state. Angle is not damped.
type State struct {
	Angle                  float64
	Radius, TargetRadius   float64
	Height, TargetHeight   float64
	PanX, PanZ             float64
	TargetPanX, TargetPanZ float64
}

type Controller struct {
	cfg   Config
	state State

	mode         Mode
	lastX, lastY float64

	eye, lookAt Vec3
}

func New(cfg Config) *Controller {
	c := &Controller{cfg: cfg}
	c.state = State{
		Angle:        cfg.Angle,
		Radius:       clamp(cfg.Radius, cfg.MinRadius, cfg.MaxRadius),
		Height:       clamp(cfg.Height, cfg.MinHeight, cfg.MaxHeight),
		TargetRadius: clamp(cfg.Radius, cfg.MinRadius, cfg.MaxRadius),
		TargetHeight: clamp(cfg.Height, cfg.MinHeight, cfg.MaxHeight),
	}
	c.place()
	return c
}

func (c *Controller) State() State   { return c.state }
func (c *Controller) Mode() Mode     { return c.mode }
func (c *Controller) Config() Config { return c.cfg }
func (c *Controller) Eye() Vec3      { return c.eye }
func (c *Controller) LookAt() Vec3   { return c.lookAt }

// PointerDown arms pan for the primary button and rotate for the secondary
// one. Any other button leaves the controller idle.
func (c *Controller) PointerDown(b Button, x, y float64) {
	c.lastX, c.lastY = x, y
	switch b {
	case ButtonPrimary:
		c.mode = ModePan
	case ButtonSecondary:
		c.mode = ModeRotate
	default:
		c.mode = ModeIdle
	}
}

func (c *Controller) PointerMove(x, y float64) {
	if c.mode == ModeIdle {
		return
	}
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	switch c.mode {
	case ModeRotate:
		c.state.Angle -= dx * c.cfg.RotateSpeed
		c.state.TargetHeight = clamp(c.state.TargetHeight+dy*c.cfg.HeightSpeed, c.cfg.MinHeight, c.cfg.MaxHeight)
	case ModePan:
		c.pan(dx, dy, c.cfg.PanSpeed)
	}
}

// PointerUp disarms both modes regardless of the button released.
func (c *Controller) PointerUp() { c.mode = ModeIdle }

// Wheel zooms when modifier is held (positive dy zooms out, anything else
// zooms in) and pans relative to the viewing direction otherwise.
func (c *Controller) Wheel(dx, dy float64, modifier bool) {
	if modifier {
		if dy > 0 {
			c.state.TargetRadius += c.cfg.ZoomStep
		} else {
			c.state.TargetRadius -= c.cfg.ZoomStep
		}
		c.state.TargetRadius = clamp(c.state.TargetRadius, c.cfg.MinRadius, c.cfg.MaxRadius)
		return
	}
	c.pan(dx, dy, c.cfg.WheelPan)
}

func (c *Controller) pan(dx, dy, speed float64) {
	cos, sin := math.Cos(c.state.Angle), math.Sin(c.state.Angle)
	c.state.TargetPanX += (-dx*cos - dy*sin) * speed
	c.state.TargetPanZ += (dx*sin - dy*cos) * speed
}

// Tick advances every damped value one step toward its target and
// recomputes the eye position.
func (c *Controller) Tick() {
	k := c.cfg.Damping
	s := &c.state
	s.Radius += (s.TargetRadius - s.Radius) * k
	s.Height += (s.TargetHeight - s.Height) * k
	s.PanX += (s.TargetPanX - s.PanX) * k
	s.PanZ += (s.TargetPanZ - s.PanZ) * k
	c.place()
}

func (c *Controller) place() {
	s := c.state
	c.eye = Vec3{
		X: math.Cos(s.Angle)*s.Radius + s.PanX,
		Y: s.Height,
		Z: math.Sin(s.Angle)*s.Radius + s.PanZ,
	}
	c.lookAt = Vec3{X: s.PanX, Y: c.cfg.LookAtY, Z: s.PanZ}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
