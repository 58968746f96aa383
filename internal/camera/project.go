package camera

import "math"

// Lens is a perspective projection onto a viewport of Width x Height pixels.
type Lens struct {
	FOV           float64 // vertical, degrees
	Near, Far     float64
	Width, Height float64
}

func DefaultLens(w, h float64) Lens {
	return Lens{FOV: 75, Near: 0.1, Far: 1000, Width: w, Height: h}
}

// Project maps a world point to viewport pixels. depth is the distance along
// the view axis; ok is false when the point lies outside the near/far range.
func (c *Controller) Project(p Vec3, l Lens) (x, y, depth float64, ok bool) {
	forward := c.lookAt.Sub(c.eye).Norm()
	right := forward.Cross(Vec3{Y: 1}).Norm()
	if right.Len() == 0 {
		right = Vec3{X: 1}
	}
	up := right.Cross(forward)

	rel := p.Sub(c.eye)
	depth = rel.Dot(forward)
	if depth < l.Near || depth > l.Far {
		return 0, 0, depth, false
	}
	f := 1 / math.Tan(l.FOV*math.Pi/360)
	aspect := l.Width / l.Height
	ndcX := rel.Dot(right) * f / (aspect * depth)
	ndcY := rel.Dot(up) * f / depth
	x = (ndcX + 1) / 2 * l.Width
	y = (1 - ndcY) / 2 * l.Height
	return x, y, depth, true
}

// ScaleAt returns the number of pixels one world unit spans at depth.
func (l Lens) ScaleAt(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	f := 1 / math.Tan(l.FOV*math.Pi/360)
	return f / depth * l.Height / 2
}
