package network

import (
	"math"
	"math/rand"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"sketchbook/internal/reconcile"
	"sketchbook/internal/render"
	"sketchbook/internal/transition"
)

const (
	Width  = 800
	Height = 600
	margin = 20

	edgeOpacity     = 0.6
	edgeStopOpacity = 0.6
	edgeHighlight   = 0.8
	edgeDimmed      = 0.1
	edgeReset       = 0.4
	nodeOpacity     = 0.9
	hoverGrow       = 5
	hoverDuration   = 200 * time.Millisecond
	arcSegments     = 24
)

// Radius is the layout circle radius for a w x h surface.
func Radius(w, h float64) float64 {
	return math.Min(w-2*margin, h-2*margin)/2 - 80
}

// Diagram owns the placed nodes, their edges and the animated attributes of
// both.
type Diagram struct {
	w, h    float64
	rng     *rand.Rand
	nodes   []Node
	edges   []Edge
	nodeEls *reconcile.Store[string, Node]
	edgeEls *reconcile.Store[string, Edge]
	hovered string
}

func New(w, h float64, rng *rand.Rand) *Diagram {
	d := &Diagram{w: w, h: h, rng: rng}
	d.nodeEls = reconcile.NewStore(reconcile.Options[string, Node]{
		Key: func(n Node) string { return n.ID },
		Attrs: func(n Node) reconcile.Attrs {
			return reconcile.Attrs{"x": n.X, "y": n.Y, "r": n.BaseRadius(), "opacity": nodeOpacity, "label": 1}
		},
		Enter: func(n Node) reconcile.Attrs {
			return reconcile.Attrs{"x": n.X, "y": n.Y, "r": 0, "opacity": 0, "label": 0}
		},
		Duration: time.Second,
	})
	d.edgeEls = reconcile.NewStore(reconcile.Options[string, Edge]{
		Key:      Edge.Key,
		Attrs:    func(Edge) reconcile.Attrs { return reconcile.Attrs{"opacity": edgeOpacity} },
		Enter:    func(Edge) reconcile.Attrs { return reconcile.Attrs{"opacity": 0} },
		Duration: 1500 * time.Millisecond,
	})
	return d
}

// Build lays out cats, regenerates the edges from m and binds both. Newly
// entering nodes grow in one after another; entering edges fade in after
// half a second.
func (d *Diagram) Build(cats []Category, m [][]int, now time.Time) {
	d.nodes = Layout(cats, Radius(d.w, d.h))
	d.edges = Edges(d.nodes, m, d.rng)
	d.hovered = ""

	res := d.nodeEls.Bind(d.nodes, now)
	for _, n := range res.Enter {
		delay := time.Duration(n.Index) * 100 * time.Millisecond
		d.nodeEls.Animate(n.ID, "r", transition.Tween{To: n.BaseRadius(), Start: now, Delay: delay, Duration: time.Second, Ease: transition.Elastic})
		d.nodeEls.Animate(n.ID, "opacity", transition.Tween{To: nodeOpacity, Start: now, Delay: delay, Duration: time.Second, Ease: transition.Elastic})
		d.nodeEls.Animate(n.ID, "label", transition.Tween{To: 1, Start: now, Delay: delay + 800*time.Millisecond, Duration: 800 * time.Millisecond})
	}
	eres := d.edgeEls.Bind(d.edges, now)
	for _, e := range eres.Enter {
		d.edgeEls.Animate(e.Key(), "opacity", transition.Tween{To: edgeOpacity, Start: now, Delay: 500 * time.Millisecond, Duration: 1500 * time.Millisecond})
	}
}

func (d *Diagram) Nodes() []Node   { return d.nodes }
func (d *Diagram) Edges() []Edge   { return d.edges }
func (d *Diagram) Hovered() string { return d.hovered }

// center is the surface position of the diagram origin.
func (d *Diagram) center() (float64, float64) { return d.w / 2, d.h / 2 }

// NodeAt returns the topmost node whose current circle contains the surface
// point (x, y).
func (d *Diagram) NodeAt(x, y float64, now time.Time) (Node, bool) {
	cx, cy := d.center()
	for i := len(d.nodes) - 1; i >= 0; i-- {
		n := d.nodes[i]
		el, ok := d.nodeEls.Get(n.ID, now)
		if !ok {
			continue
		}
		if math.Hypot(x-cx-el.Attrs["x"], y-cy-el.Attrs["y"]) <= el.Attrs["r"] {
			return n, true
		}
	}
	return Node{}, false
}

// Hover highlights the edges touching id, dims the rest and grows the
// node. Hovering the already hovered node is a no-op.
func (d *Diagram) Hover(id string, now time.Time) bool {
	if id == d.hovered {
		return false
	}
	if d.hovered != "" {
		d.Leave(now)
	}
	var node *Node
	for i := range d.nodes {
		if d.nodes[i].ID == id {
			node = &d.nodes[i]
		}
	}
	if node == nil {
		return false
	}
	d.hovered = id
	for _, e := range d.edges {
		v := edgeDimmed
		if e.Touches(id) {
			v = edgeHighlight
		}
		d.edgeEls.Set(e.Key(), "opacity", v, now, hoverDuration)
	}
	d.nodeEls.Set(id, "r", node.BaseRadius()+hoverGrow, now, hoverDuration)
	return true
}

// Leave resets every edge to the rest opacity and the hovered node to its
// base radius.
func (d *Diagram) Leave(now time.Time) {
	if d.hovered == "" {
		return
	}
	for _, e := range d.edges {
		d.edgeEls.Set(e.Key(), "opacity", edgeReset, now, hoverDuration)
	}
	for _, n := range d.nodes {
		if n.ID == d.hovered {
			d.nodeEls.Set(n.ID, "r", n.BaseRadius(), now, hoverDuration)
		}
	}
	d.hovered = ""
}

// Tooltip returns the card of the hovered node.
func (d *Diagram) Tooltip() (Tooltip, bool) {
	for _, n := range d.nodes {
		if n.ID == d.hovered {
			return TooltipFor(n), true
		}
	}
	return Tooltip{}, false
}

// NodeAttrs returns the animated attributes of node id at now.
func (d *Diagram) NodeAttrs(id string, now time.Time) (reconcile.Attrs, bool) {
	el, ok := d.nodeEls.Get(id, now)
	return el.Attrs, ok
}

// EdgeOpacity returns the animated opacity of the edge with key k.
func (d *Diagram) EdgeOpacity(k string, now time.Time) (float64, bool) {
	el, ok := d.edgeEls.Get(k, now)
	return el.Attrs["opacity"], ok
}

func (d *Diagram) Settled(now time.Time) bool {
	return d.nodeEls.Settled(now) && d.edgeEls.Settled(now)
}

var white = colorful.Color{R: 1, G: 1, B: 1}

// Frame draws edges first so nodes and labels sit on top.
func (d *Diagram) Frame(now time.Time) *render.Frame {
	f := render.NewFrame(d.w, d.h, render.Black)
	cx, cy := d.center()
	for _, el := range d.edgeEls.Elements(now) {
		e := el.Datum
		pts := Arc(cx+e.Source.X, cy+e.Source.Y, cx+e.Target.X, cy+e.Target.Y, e.ArcRadius(), true, arcSegments)
		f.Add(render.Path{Points: pts, From: e.Source.Fill, To: e.Target.Fill, Alpha: el.Attrs["opacity"] * edgeStopOpacity, Width: e.Width()})
	}
	els := d.nodeEls.Elements(now)
	for _, el := range els {
		f.Add(render.Circle{X: cx + el.Attrs["x"], Y: cy + el.Attrs["y"], R: math.Max(0, el.Attrs["r"]), Fill: el.Datum.Fill, Alpha: el.Attrs["opacity"]})
	}
	for _, el := range els {
		lines := el.Datum.Lines()
		for i, line := range lines {
			f.Add(render.Text{
				X: cx + el.Attrs["x"], Y: cy + el.Attrs["y"] + LabelOffset(i, len(lines)),
				Text: line, Color: white, Alpha: el.Attrs["label"], Size: 10,
			})
		}
	}
	return f
}
