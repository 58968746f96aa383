package render

import (
	"fmt"
	"io"

	colorful "github.com/lucasb-eyer/go-colorful"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Mark is one dot of a scatter chart in data coordinates.
type Mark struct {
	X, Y  float64
	R     float64
	Color colorful.Color
	Alpha float64
}

// ScatterChart describes a dot chart rendered with the chart engine.
type ScatterChart struct {
	Title         string
	XName, YName  string
	Width, Height int
	Marks         []Mark
}

func drawingColor(c colorful.Color, alpha float64) drawing.Color {
	r, g, b := c.Clamped().RGB255()
	if alpha <= 0 || alpha > 1 {
		alpha = 1
	}
	return drawing.Color{R: r, G: g, B: b, A: uint8(alpha * 255)}
}

func (sc ScatterChart) chart() (chart.Chart, error) {
	if len(sc.Marks) == 0 {
		return chart.Chart{}, fmt.Errorf("render: scatter chart has no marks")
	}
	xs := make([]float64, len(sc.Marks))
	ys := make([]float64, len(sc.Marks))
	for i, m := range sc.Marks {
		xs[i], ys[i] = m.X, m.Y
	}
	marks := sc.Marks
	series := chart.ContinuousSeries{
		Name:    sc.Title,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidthProvider: func(_, _ chart.Range, index int, _, _ float64) float64 {
				return marks[index].R
			},
			DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
				return drawingColor(marks[index].Color, marks[index].Alpha)
			},
		},
	}
	return chart.Chart{
		Title:      sc.Title,
		Width:      sc.Width,
		Height:     sc.Height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      chart.XAxis{Name: sc.XName},
		YAxis:      chart.YAxis{Name: sc.YName},
		Series:     []chart.Series{series},
	}, nil
}

// WriteChartPNG renders sc through the chart engine as a PNG image.
func WriteChartPNG(w io.Writer, sc ScatterChart) error {
	ch, err := sc.chart()
	if err != nil {
		return err
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
