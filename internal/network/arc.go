package network

import (
	"math"

	"sketchbook/internal/render"
)

// Arc samples n+1 points of the circular arc of radius r from (x0, y0) to
// (x1, y1), taking the minor arc in the direction given by sweep (positive
// angle direction when true). A radius shorter than half the chord is
// scaled up to it.
func Arc(x0, y0, x1, y1, r float64, sweep bool, n int) []render.Pt {
	if n < 1 {
		n = 1
	}
	hx, hy := (x0-x1)/2, (y0-y1)/2
	d2 := hx*hx + hy*hy
	if d2 == 0 {
		return []render.Pt{{X: x0, Y: y0}}
	}
	if r*r < d2 {
		r = math.Sqrt(d2)
	}
	coef := math.Sqrt(math.Max(0, (r*r-d2)/d2))
	if !sweep {
		coef = -coef
	}
	ccx, ccy := coef*hy, -coef*hx
	cx, cy := ccx+(x0+x1)/2, ccy+(y0+y1)/2

	t1 := math.Atan2((hy-ccy)/r, (hx-ccx)/r)
	t2 := math.Atan2((-hy-ccy)/r, (-hx-ccx)/r)
	dt := t2 - t1
	if sweep && dt < 0 {
		dt += 2 * math.Pi
	} else if !sweep && dt > 0 {
		dt -= 2 * math.Pi
	}

	pts := make([]render.Pt, n+1)
	for i := 0; i <= n; i++ {
		a := t1 + dt*float64(i)/float64(n)
		pts[i] = render.Pt{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	pts[0] = render.Pt{X: x0, Y: y0}
	pts[n] = render.Pt{X: x1, Y: y1}
	return pts
}
