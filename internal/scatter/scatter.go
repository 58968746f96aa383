// Package scatter draws records as dots: position from x and y, color from
// category and area from magnitude.
package scatter

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"sketchbook/internal/reconcile"
	"sketchbook/internal/render"
	"sketchbook/internal/scale"
)

type Record struct {
	ID        string
	X, Y      float64
	Category  string
	Magnitude float64 // NaN when missing
}

var Categories = []string{"north", "east", "south", "west", "center"}

const (
	marginTop    = 20
	marginRight  = 20
	marginBottom = 30
	marginLeft   = 40

	minRadius     = 3
	maxRadius     = 15
	hoverDistance = 20
	hoverGrow     = 3
	restOpacity   = 0.7
	dimOpacity    = 0.3

	bindDuration  = 750 * time.Millisecond
	hoverDuration = 200 * time.Millisecond
)

// Sample returns n records spread over [0, 100) on both axes. Every fifth
// record has no magnitude.
func Sample(rng *rand.Rand, n int) []Record {
	out := make([]Record, n)
	for i := range out {
		out[i] = Record{
			ID:        fmt.Sprintf("r%02d", i),
			X:         rng.Float64() * 100,
			Y:         rng.Float64() * 100,
			Category:  Categories[rng.Intn(len(Categories))],
			Magnitude: 1 + rng.Float64()*99,
		}
		if i%5 == 4 {
			out[i].Magnitude = math.NaN()
		}
	}
	return out
}

// Fill substitutes a random magnitude in [1, 100) wherever one is missing.
func Fill(recs []Record, rng *rand.Rand) []Record {
	out := append([]Record(nil), recs...)
	for i := range out {
		if math.IsNaN(out[i].Magnitude) || out[i].Magnitude < 0 {
			out[i].Magnitude = 1 + rng.Float64()*99
		}
	}
	return out
}

// Plot keeps the bound dots and the scales derived from the current data.
type Plot struct {
	w, h    float64
	rng     *rand.Rand
	records []Record
	xs, ys  scale.Linear
	rs      scale.Sqrt
	colors  *scale.Ordinal
	store   *reconcile.Store[string, Record]
	hovered string
	nextID  int
}

func New(w, h float64, rng *rand.Rand) *Plot {
	p := &Plot{w: w, h: h, rng: rng, colors: scale.NewOrdinal()}
	for _, c := range Categories {
		p.colors.Map(c)
	}
	p.store = reconcile.NewStore(reconcile.Options[string, Record]{
		Key:   func(r Record) string { return r.ID },
		Attrs: p.attrs,
		Enter: func(r Record) reconcile.Attrs {
			a := p.attrs(r)
			a["r"], a["opacity"] = 0, 0
			return a
		},
		Exit: func(_ Record, cur reconcile.Attrs) reconcile.Attrs {
			return reconcile.Attrs{"x": cur["x"], "y": cur["y"], "r": 0, "opacity": 0}
		},
		Duration: bindDuration,
	})
	return p
}

func (p *Plot) attrs(r Record) reconcile.Attrs {
	return reconcile.Attrs{"x": p.xs.Map(r.X), "y": p.ys.Map(r.Y), "r": p.rs.Map(r.Magnitude), "opacity": restOpacity}
}

// SetData fills missing magnitudes, rebuilds the scales and binds recs.
func (p *Plot) SetData(recs []Record, now time.Time) reconcile.Result[string, Record] {
	p.records = Fill(recs, p.rng)
	p.fitScales()
	p.hovered = ""
	for _, r := range p.records {
		var n int
		if _, err := fmt.Sscanf(r.ID, "r%d", &n); err == nil && n >= p.nextID {
			p.nextID = n + 1
		}
	}
	return p.store.Bind(p.records, now)
}

func (p *Plot) fitScales() {
	x0, x1, y0, y1, m1 := math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1), 0.0
	for _, r := range p.records {
		x0, x1 = math.Min(x0, r.X), math.Max(x1, r.X)
		y0, y1 = math.Min(y0, r.Y), math.Max(y1, r.Y)
		m1 = math.Max(m1, r.Magnitude)
	}
	if len(p.records) == 0 {
		x0, x1, y0, y1 = 0, 1, 0, 1
	}
	p.xs = scale.NewLinear(x0, x1, marginLeft, p.w-marginRight).Nice(10)
	p.ys = scale.NewLinear(y0, y1, p.h-marginBottom, marginTop).Nice(10)
	p.rs = scale.Sqrt{Domain: [2]float64{0, m1}, Range: [2]float64{minRadius, maxRadius}}
}

// Perturb rebinds a variation of the current data: about a fifth of the
// records leave, a few new ones arrive and the rest drift.
func (p *Plot) Perturb(now time.Time) reconcile.Result[string, Record] {
	var next []Record
	for _, r := range p.records {
		if p.rng.Float64() < 0.2 {
			continue
		}
		r.X += (p.rng.Float64()*2 - 1) * 10
		r.Y += (p.rng.Float64()*2 - 1) * 10
		r.Magnitude = math.Max(1, r.Magnitude*(0.5+p.rng.Float64()))
		next = append(next, r)
	}
	for i, n := 0, 2+p.rng.Intn(4); i < n; i++ {
		next = append(next, Record{
			ID:        fmt.Sprintf("r%02d", p.nextID),
			X:         p.rng.Float64() * 100,
			Y:         p.rng.Float64() * 100,
			Category:  Categories[p.rng.Intn(len(Categories))],
			Magnitude: math.NaN(),
		})
		p.nextID++
	}
	return p.SetData(next, now)
}

func (p *Plot) Records() []Record { return p.records }
func (p *Plot) Hovered() string   { return p.hovered }

// Nearest returns the record whose dot center is closest to (x, y), if it
// lies within the hover distance.
func (p *Plot) Nearest(x, y float64) (Record, bool) {
	best, bestD := -1, math.Inf(1)
	for i, r := range p.records {
		d := math.Hypot(p.xs.Map(r.X)-x, p.ys.Map(r.Y)-y)
		if d < bestD {
			best, bestD = i, d
		}
	}
	if best < 0 || bestD > hoverDistance {
		return Record{}, false
	}
	return p.records[best], true
}

// Hover focuses the record nearest to (x, y) and dims the others. Moving away
// from every record restores them all.
func (p *Plot) Hover(x, y float64, now time.Time) (Record, bool) {
	r, ok := p.Nearest(x, y)
	id := ""
	if ok {
		id = r.ID
	}
	if id == p.hovered {
		return r, ok
	}
	p.hovered = id
	for _, rec := range p.records {
		base := p.rs.Map(rec.Magnitude)
		switch {
		case id == "":
			p.store.Set(rec.ID, "opacity", restOpacity, now, hoverDuration)
			p.store.Set(rec.ID, "r", base, now, hoverDuration)
		case rec.ID == id:
			p.store.Set(rec.ID, "opacity", 1, now, hoverDuration)
			p.store.Set(rec.ID, "r", base+hoverGrow, now, hoverDuration)
		default:
			p.store.Set(rec.ID, "opacity", dimOpacity, now, hoverDuration)
			p.store.Set(rec.ID, "r", base, now, hoverDuration)
		}
	}
	return r, ok
}

// Attrs returns the animated attributes of the dot bound to id.
func (p *Plot) Attrs(id string, now time.Time) (reconcile.Attrs, bool) {
	el, ok := p.store.Get(id, now)
	return el.Attrs, ok
}

func (p *Plot) Settled(now time.Time) bool { return p.store.Settled(now) }

func (p *Plot) Color(category string) colorful.Color { return p.colors.Map(category) }

var axisColor = scale.MustHex("#666666")

func (p *Plot) Frame(now time.Time) *render.Frame {
	f := render.NewFrame(p.w, p.h, render.Black)
	bottom, left := p.h-marginBottom, float64(marginLeft)
	f.Add(
		render.Line{X0: left, Y0: bottom, X1: p.w - marginRight, Y1: bottom, From: axisColor, To: axisColor, Alpha: 1, Width: 1},
		render.Line{X0: left, Y0: bottom, X1: left, Y1: marginTop, From: axisColor, To: axisColor, Alpha: 1, Width: 1},
	)
	for _, v := range p.xs.Ticks(5) {
		f.Add(render.Text{X: p.xs.Map(v), Y: bottom + 15, Text: fmt.Sprint(v), Color: axisColor, Alpha: 1, Size: 10})
	}
	for _, v := range p.ys.Ticks(5) {
		f.Add(render.Text{X: left - 20, Y: p.ys.Map(v), Text: fmt.Sprint(v), Color: axisColor, Alpha: 1, Size: 10})
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	for _, el := range p.store.Elements(now) {
		f.Add(render.Circle{
			X: el.Attrs["x"], Y: el.Attrs["y"], R: math.Max(0, el.Attrs["r"]),
			Fill: p.colors.Map(el.Datum.Category), Alpha: el.Attrs["opacity"],
			Stroke: &white, StrokeWidth: 0.5,
		})
	}
	return f
}

// Chart describes the current data for the chart engine export.
func (p *Plot) Chart() render.ScatterChart {
	sc := render.ScatterChart{Title: "scatter", XName: "x", YName: "y", Width: int(p.w), Height: int(p.h)}
	for _, r := range p.records {
		sc.Marks = append(sc.Marks, render.Mark{X: r.X, Y: r.Y, R: p.rs.Map(r.Magnitude), Color: p.colors.Map(r.Category), Alpha: restOpacity})
	}
	return sc
}
