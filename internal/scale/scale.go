// Package scale maps data values onto visual channels: positions, radii and
// colors.
package scale

import (
	"math"
	"sort"
)

// Linear maps a continuous domain onto a continuous range.
type Linear struct {
	Domain [2]float64
	Range  [2]float64
	Clamp  bool
}

func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

func (s Linear) Map(v float64) float64 {
	d0, d1 := s.Domain[0], s.Domain[1]
	if d1 == d0 {
		return (s.Range[0] + s.Range[1]) / 2
	}
	t := (v - d0) / (d1 - d0)
	if s.Clamp {
		t = math.Max(0, math.Min(1, t))
	}
	return s.Range[0] + t*(s.Range[1]-s.Range[0])
}

func (s Linear) Invert(px float64) float64 {
	r0, r1 := s.Range[0], s.Range[1]
	if r1 == r0 {
		return (s.Domain[0] + s.Domain[1]) / 2
	}
	t := (px - r0) / (r1 - r0)
	return s.Domain[0] + t*(s.Domain[1]-s.Domain[0])
}

// Nice extends the domain to round tick boundaries for roughly count ticks.
func (s Linear) Nice(count int) Linear {
	d0, d1 := s.Domain[0], s.Domain[1]
	reversed := d1 < d0
	if reversed {
		d0, d1 = d1, d0
	}
	step := TickStep(d0, d1, count)
	if step > 0 {
		d0 = math.Floor(d0/step) * step
		d1 = math.Ceil(d1/step) * step
	}
	if reversed {
		d0, d1 = d1, d0
	}
	s.Domain = [2]float64{d0, d1}
	return s
}

// Ticks returns roughly count evenly spaced round values inside the domain.
func (s Linear) Ticks(count int) []float64 {
	d0, d1 := math.Min(s.Domain[0], s.Domain[1]), math.Max(s.Domain[0], s.Domain[1])
	step := TickStep(d0, d1, count)
	if step <= 0 {
		return nil
	}
	var out []float64
	for v := math.Ceil(d0/step) * step; v <= d1+step*1e-9; v += step {
		out = append(out, v)
	}
	return out
}

// TickStep picks a 1, 2 or 5 multiple of a power of ten.
func TickStep(lo, hi float64, count int) float64 {
	if count <= 0 || hi <= lo {
		return 0
	}
	raw := (hi - lo) / float64(count)
	pow := math.Pow(10, math.Floor(math.Log10(raw)))
	switch e := raw / pow; {
	case e >= math.Sqrt(50):
		return 10 * pow
	case e >= math.Sqrt(10):
		return 5 * pow
	case e >= math.Sqrt(2):
		return 2 * pow
	}
	return pow
}

// Sqrt maps through a square root so that area, not radius, tracks the value.
type Sqrt struct {
	Domain [2]float64
	Range  [2]float64
}

func (s Sqrt) Map(v float64) float64 {
	lin := Linear{
		Domain: [2]float64{math.Sqrt(math.Max(0, s.Domain[0])), math.Sqrt(math.Max(0, s.Domain[1]))},
		Range:  s.Range,
		Clamp:  true,
	}
	return lin.Map(math.Sqrt(math.Max(0, v)))
}

// Stop is one input/output pair of a Piecewise interpolation.
type Stop struct{ In, Out float64 }

// Piecewise interpolates linearly between sorted stops and holds the end
// values outside them.
type Piecewise []Stop

func NewPiecewise(stops ...Stop) Piecewise {
	p := append(Piecewise(nil), stops...)
	sort.Slice(p, func(i, j int) bool { return p[i].In < p[j].In })
	return p
}

func (p Piecewise) At(v float64) float64 {
	switch {
	case len(p) == 0:
		return 0
	case v <= p[0].In:
		return p[0].Out
	case v >= p[len(p)-1].In:
		return p[len(p)-1].Out
	}
	i := sort.Search(len(p), func(i int) bool { return p[i].In >= v })
	a, b := p[i-1], p[i]
	t := (v - a.In) / (b.In - a.In)
	return a.Out + t*(b.Out-a.Out)
}

func Lerp(a, b, t float64) float64 { return a + (b-a)*t }
