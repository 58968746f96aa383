package stream

import (
	"math"
	"time"

	"sketchbook/internal/reconcile"
	"sketchbook/internal/render"
	"sketchbook/internal/scale"
)

const (
	margin             = 20
	layerOpacity       = 0.85
	transitionDuration = time.Second
)

func loKey(r string) string { return "lo:" + r }
func hiKey(r string) string { return "hi:" + r }

func bandAttrs(l Layer, squash bool) reconcile.Attrs {
	a := reconcile.Attrs{"opacity": layerOpacity}
	for j, r := range l.Ranges {
		b := l.Bands[j]
		a[loKey(r)] = b.Y0
		if squash {
			a[hiKey(r)] = b.Y0
		} else {
			a[hiKey(r)] = b.Y1
		}
	}
	return a
}

// Chart keeps one animated layer per provider. Rebinding a new series moves
// persisting layers to their new bands, grows entering ones from their
// baseline and collapses exiting ones.
type Chart struct {
	w, h   float64
	offset Offset
	series Series
	layers []Layer
	store  *reconcile.Store[string, Layer]
	colors *scale.Ordinal
}

func NewChart(w, h float64, offset Offset) *Chart {
	c := &Chart{w: w, h: h, offset: offset, colors: scale.NewOrdinal()}
	c.store = reconcile.NewStore(reconcile.Options[string, Layer]{
		Key:   func(l Layer) string { return l.Key },
		Attrs: func(l Layer) reconcile.Attrs { return bandAttrs(l, false) },
		Enter: func(l Layer) reconcile.Attrs {
			a := bandAttrs(l, true)
			a["opacity"] = 0
			return a
		},
		Exit: func(l Layer, cur reconcile.Attrs) reconcile.Attrs {
			a := reconcile.Attrs{"opacity": 0}
			for _, r := range l.Ranges {
				a[loKey(r)] = cur[loKey(r)]
				a[hiKey(r)] = cur[loKey(r)]
			}
			return a
		},
		Duration: transitionDuration,
	})
	return c
}

// SetData stacks s and binds its layers.
func (c *Chart) SetData(s Series, now time.Time) reconcile.Result[string, Layer] {
	c.series = s
	c.layers = Stack(s, InsideOut(s), c.offset)
	for _, k := range s.Keys {
		c.colors.Map(k)
	}
	return c.store.Bind(c.layers, now)
}

// SetOffset restacks the current series with a different baseline.
func (c *Chart) SetOffset(o Offset, now time.Time) {
	c.offset = o
	c.SetData(c.series, now)
}

func (c *Chart) Offset() Offset  { return c.offset }
func (c *Chart) Series() Series  { return c.series }
func (c *Chart) Layers() []Layer { return c.layers }

func (c *Chart) Settled(now time.Time) bool { return c.store.Settled(now) }

func (c *Chart) xScale() scale.Linear {
	n := float64(max(len(c.series.Ranges)-1, 1))
	return scale.NewLinear(0, n, margin, c.w-margin)
}

func (c *Chart) yScale() scale.Linear {
	lo, hi := Extent(c.layers)
	if hi <= lo {
		hi = lo + 1
	}
	return scale.NewLinear(lo, hi, c.h-margin, margin)
}

// LayerAt returns the provider whose band contains the surface point and the
// range nearest to it.
func (c *Chart) LayerAt(x, y float64) (key, rng string, v float64, ok bool) {
	if len(c.series.Ranges) == 0 {
		return "", "", 0, false
	}
	j := int(math.Round(c.xScale().Invert(x)))
	if j < 0 || j >= len(c.series.Ranges) {
		return "", "", 0, false
	}
	val := c.yScale().Invert(y)
	for _, l := range c.layers {
		b := l.Bands[j]
		if val >= b.Y0 && val <= b.Y1 {
			r := c.series.Ranges[j]
			return l.Key, r, c.series.Value(l.Key, r), true
		}
	}
	return "", "", 0, false
}

func (c *Chart) Frame(now time.Time) *render.Frame {
	f := render.NewFrame(c.w, c.h, render.Black)
	xs, ys := c.xScale(), c.yScale()
	pos := make(map[string]float64, len(c.series.Ranges))
	for j, r := range c.series.Ranges {
		pos[r] = xs.Map(float64(j))
	}
	for _, el := range c.store.Elements(now) {
		var top, bottom []render.Pt
		for _, r := range el.Datum.Ranges {
			x, ok := pos[r]
			if !ok {
				continue
			}
			top = append(top, render.Pt{X: x, Y: ys.Map(el.Attrs[hiKey(r)])})
			bottom = append(bottom, render.Pt{X: x, Y: ys.Map(el.Attrs[loKey(r)])})
		}
		if len(top) < 2 {
			continue
		}
		pts := top
		for i := len(bottom) - 1; i >= 0; i-- {
			pts = append(pts, bottom[i])
		}
		col := c.colors.Map(el.Key)
		f.Add(render.Path{Points: pts, From: col, To: col, Alpha: el.Attrs["opacity"], Fill: true, Closed: true})
	}
	for j, r := range c.series.Ranges {
		f.Add(render.Text{X: xs.Map(float64(j)), Y: c.h - margin/2, Text: r, Color: scale.MustHex("#999999"), Alpha: 1, Size: 10})
	}
	return f
}
