package sketch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sketchbook/internal/network"
	"sketchbook/internal/render"
	"sketchbook/internal/scatter"
	"sketchbook/internal/stream"
)

type networkSketch struct {
	base
	d *network.Diagram
}

func newNetwork(env Env) (Sketch, error) {
	s := &networkSketch{
		base: base{name: "network", w: network.Width, h: network.Height},
		d:    network.New(network.Width, network.Height, env.Rand),
	}
	s.d.Build(network.Categories, network.Matrix, env.Now)
	return s, nil
}

func (s *networkSketch) Frame(now time.Time) *render.Frame { return s.d.Frame(now) }

func (s *networkSketch) PointerMove(x, y float64, now time.Time) {
	if n, ok := s.d.NodeAt(x, y, now); ok {
		s.d.Hover(n.ID, now)
		return
	}
	s.d.Leave(now)
}

func (s *networkSketch) Key(key string, now time.Time) (string, bool) {
	if key != "r" {
		return "", false
	}
	s.d.Build(network.Categories, network.Matrix, now)
	return "network rebuilt", true
}

func (s *networkSketch) Keys() string { return "r rebuild" }

func (s *networkSketch) Inspect() []string {
	tt, ok := s.d.Tooltip()
	if !ok {
		return nil
	}
	return []string{tt.Name, tt.Type, tt.Description}
}

type streamSketch struct {
	base
	c     *stream.Chart
	env   Env
	lines []string
}

func newStream(env Env) (Sketch, error) {
	w, h := canvasSize(env)
	return &streamSketch{
		base: base{name: "stream", w: w, h: h},
		c:    stream.NewChart(w, h, stream.Wiggle),
		env:  env,
	}, nil
}

func (s *streamSketch) Frame(now time.Time) *render.Frame { return s.c.Frame(now) }

func (s *streamSketch) Fetch(ctx context.Context) (func(time.Time), error) {
	name := s.env.Config.Data.Streamgraph
	series, err := stream.Load(ctx, s.env.Source, name)
	if err != nil {
		s.env.Log.Warn("streamgraph load failed, using demo data", zap.String("file", name), zap.Error(err))
	}
	return func(now time.Time) {
		res := s.c.SetData(series, now)
		s.env.Log.Debug("streamgraph bound",
			zap.Int("enter", len(res.Enter)), zap.Int("update", len(res.Update)), zap.Int("exit", len(res.Exit)))
	}, err
}

func (s *streamSketch) PointerMove(x, y float64, _ time.Time) {
	key, rng, v, ok := s.c.LayerAt(x, y)
	if !ok {
		s.lines = nil
		return
	}
	s.lines = []string{key, fmt.Sprintf("%s: %g", rng, v)}
}

func (s *streamSketch) Key(key string, now time.Time) (string, bool) {
	if key != "o" {
		return "", false
	}
	next := stream.Silhouette
	if s.c.Offset() == stream.Silhouette {
		next = stream.Wiggle
	}
	s.c.SetOffset(next, now)
	return "offset: " + next.String(), true
}

func (s *streamSketch) Keys() string { return "o offset" }

func (s *streamSketch) Inspect() []string { return s.lines }

// Table lists the bound series, one row per provider.
func (s *streamSketch) Table() ([]string, [][]string) {
	series := s.c.Series()
	cols := append([]string{"provider"}, series.Ranges...)
	rows := make([][]string, 0, len(series.Keys))
	for _, k := range series.Keys {
		row := []string{k}
		for _, r := range series.Ranges {
			row = append(row, fmt.Sprintf("%g", series.Value(k, r)))
		}
		rows = append(rows, row)
	}
	return cols, rows
}

type scatterSketch struct {
	base
	p *scatter.Plot
}

const sampleRecords = 40

func newScatter(env Env) (Sketch, error) {
	w, h := canvasSize(env)
	s := &scatterSketch{
		base: base{name: "scatter", w: w, h: h},
		p:    scatter.New(w, h, env.Rand),
	}
	s.p.SetData(scatter.Sample(env.Rand, sampleRecords), env.Now)
	return s, nil
}

func (s *scatterSketch) Frame(now time.Time) *render.Frame { return s.p.Frame(now) }

func (s *scatterSketch) PointerMove(x, y float64, now time.Time) { s.p.Hover(x, y, now) }

func (s *scatterSketch) Key(key string, now time.Time) (string, bool) {
	if key != "r" {
		return "", false
	}
	res := s.p.Perturb(now)
	return fmt.Sprintf("rebound: +%d ~%d -%d", len(res.Enter), len(res.Update), len(res.Exit)), true
}

func (s *scatterSketch) Keys() string { return "r rebind" }

func (s *scatterSketch) Inspect() []string {
	id := s.p.Hovered()
	if id == "" {
		return nil
	}
	for _, r := range s.p.Records() {
		if r.ID == id {
			return []string{
				r.ID + " (" + r.Category + ")",
				fmt.Sprintf("x %.1f  y %.1f", r.X, r.Y),
				fmt.Sprintf("magnitude %.1f", r.Magnitude),
			}
		}
	}
	return nil
}

func (s *scatterSketch) Table() ([]string, [][]string) {
	cols := []string{"id", "x", "y", "category", "magnitude"}
	var rows [][]string
	for _, r := range s.p.Records() {
		rows = append(rows, []string{r.ID, fmt.Sprintf("%.1f", r.X), fmt.Sprintf("%.1f", r.Y), r.Category, fmt.Sprintf("%.1f", r.Magnitude)})
	}
	return cols, rows
}

// Chart describes the plot for the chart engine.
func (s *scatterSketch) Chart() render.ScatterChart { return s.p.Chart() }

