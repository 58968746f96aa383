package scatter

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFill(t *testing.T) {
	in := []Record{{ID: "a", Magnitude: math.NaN()}, {ID: "b", Magnitude: 7}}
	out := Fill(in, rand.New(rand.NewSource(1)))
	assert.False(t, math.IsNaN(out[0].Magnitude))
	assert.GreaterOrEqual(t, out[0].Magnitude, 1.0)
	assert.Equal(t, 7.0, out[1].Magnitude)
	assert.True(t, math.IsNaN(in[0].Magnitude), "input is left untouched")
}

func TestSample(t *testing.T) {
	recs := Sample(rand.New(rand.NewSource(2)), 10)
	require.Len(t, recs, 10)
	assert.True(t, math.IsNaN(recs[4].Magnitude))
	assert.Equal(t, "r09", recs[9].ID)
}

func newPlot(t0 time.Time) *Plot {
	p := New(800, 400, rand.New(rand.NewSource(3)))
	p.SetData([]Record{
		{ID: "r00", X: 0, Y: 0, Category: "north", Magnitude: 100},
		{ID: "r01", X: 50, Y: 50, Category: "east", Magnitude: 25},
		{ID: "r02", X: 97, Y: 93, Category: "south", Magnitude: math.NaN()},
	}, t0)
	return p
}

func TestScales(t *testing.T) {
	p := newPlot(time.Unix(0, 0))
	assert.Equal(t, [2]float64{0, 100}, p.xs.Domain)
	assert.Equal(t, [2]float64{0, 100}, p.ys.Domain)
	assert.Equal(t, float64(marginLeft), p.xs.Map(0))
	assert.Equal(t, 400.0-marginBottom, p.ys.Map(0))
	assert.Equal(t, float64(maxRadius), p.rs.Map(100))
	assert.InDelta(t, minRadius+(maxRadius-minRadius)*0.5, p.rs.Map(25), 1e-9)
	for _, r := range p.Records() {
		assert.False(t, math.IsNaN(r.Magnitude))
	}
}

func TestEnterTransition(t *testing.T) {
	t0 := time.Unix(0, 0)
	p := newPlot(t0)
	a, ok := p.Attrs("r01", t0)
	require.True(t, ok)
	assert.Equal(t, 0.0, a["r"])
	assert.Equal(t, 0.0, a["opacity"])

	a, _ = p.Attrs("r01", t0.Add(bindDuration))
	assert.InDelta(t, 9, a["r"], 1e-9)
	assert.Equal(t, restOpacity, a["opacity"])
	assert.True(t, p.Settled(t0.Add(bindDuration)))
}

func TestHover(t *testing.T) {
	t0 := time.Unix(0, 0)
	p := newPlot(t0)
	t1 := t0.Add(time.Second)
	cx, cy := p.xs.Map(50), p.ys.Map(50)

	_, ok := p.Nearest(cx+25, cy)
	assert.False(t, ok, "beyond the hover distance")

	r, ok := p.Hover(cx+5, cy-5, t1)
	require.True(t, ok)
	assert.Equal(t, "r01", r.ID)
	assert.Equal(t, "r01", p.Hovered())

	t2 := t1.Add(hoverDuration)
	a, _ := p.Attrs("r01", t2)
	assert.Equal(t, 1.0, a["opacity"])
	assert.InDelta(t, 12, a["r"], 1e-9)
	other, _ := p.Attrs("r00", t2)
	assert.Equal(t, dimOpacity, other["opacity"])
	assert.InDelta(t, float64(maxRadius), other["r"], 1e-9)

	_, ok = p.Hover(-100, -100, t2)
	assert.False(t, ok)
	t3 := t2.Add(hoverDuration)
	for _, id := range []string{"r00", "r01", "r02"} {
		a, _ := p.Attrs(id, t3)
		assert.Equal(t, restOpacity, a["opacity"], id)
	}
}

func TestPerturbKeepsIdentity(t *testing.T) {
	t0 := time.Unix(0, 0)
	p := New(800, 400, rand.New(rand.NewSource(4)))
	p.SetData(Sample(rand.New(rand.NewSource(5)), 30), t0)
	t1 := t0.Add(time.Second)
	before := map[string]int{}
	for _, r := range p.Records() {
		el, _ := p.store.Get(r.ID, t1)
		before[r.ID] = el.ID
	}

	res := p.Perturb(t1)
	assert.GreaterOrEqual(t, len(res.Enter), 2)
	assert.LessOrEqual(t, len(res.Enter), 5)
	assert.Equal(t, 30, len(res.Update)+len(res.Exit))
	for _, r := range res.Enter {
		_, existed := before[r.ID]
		assert.False(t, existed, "new records get fresh ids")
	}
	for _, r := range res.Update {
		el, ok := p.store.Get(r.ID, t1)
		require.True(t, ok)
		assert.Equal(t, before[r.ID], el.ID)
	}
	for _, r := range p.Records() {
		assert.False(t, math.IsNaN(r.Magnitude))
	}

	t2 := t1.Add(bindDuration)
	f := p.Frame(t2)
	assert.NotEmpty(t, f.Shapes)
	assert.Len(t, p.Chart().Marks, len(p.Records()))
}
