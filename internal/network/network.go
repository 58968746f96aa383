// Package network lays out the flooding relationship diagram: categories on
// a circle joined by arcs wherever the adjacency matrix says they relate.
package network

import (
	"math"
	"math/rand"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"sketchbook/internal/scale"
)

// Category is one node of the diagram before layout.
type Category struct {
	ID          string
	Name        string // may contain "\n" line breaks
	Type        string
	Color       string
	Connections int
}

var Categories = []Category{
	{"human", "Human", "actor", "#d98948", 8},
	{"climate_change", "Climate\nChange", "hazard", "#d98948", 6},
	{"increased_flooding", "Increased\nFlooding", "hazard", "#f36e37", 7},
	{"areas_affected", "Areas\nAffected", "exposure", "#f15f35", 5},
	{"community", "Community", "exposure", "#ef423a", 4},
	{"built_env", "Built\nEnvironment", "exposure", "#ec2c3d", 6},
	{"physical_infra", "Physical\nInfrastructure", "system", "#e52364", 5},
	{"natural_env", "Natural\nEnvironment", "exposure", "#d01c67", 4},
	{"higher_temp", "Higher\nTemperatures", "hazard", "#816182", 3},
	{"digital_infra", "Digital\nInfrastructure", "system", "#5c405b", 2},
	{"ai_systems", "AI Systems", "system", "#4f2f3f", 5},
}

// Matrix marks which categories relate. Only the upper triangle is drawn.
var Matrix = [][]int{
	{0, 1, 1, 1, 1, 1, 1, 1, 0, 1, 1},
	{1, 0, 1, 0, 0, 0, 0, 1, 1, 1, 1},
	{1, 1, 0, 1, 1, 0, 1, 0, 0, 1, 0},
	{1, 0, 1, 0, 1, 1, 1, 0, 0, 0, 0},
	{1, 0, 1, 1, 0, 1, 0, 0, 0, 1, 1},
	{1, 0, 0, 1, 1, 0, 1, 0, 0, 1, 1},
	{1, 0, 1, 1, 0, 1, 0, 0, 0, 1, 1},
	{1, 1, 0, 0, 0, 0, 0, 0, 1, 0, 0},
	{0, 1, 0, 0, 0, 0, 0, 1, 0, 0, 0},
	{0, 0, 0, 0, 1, 1, 1, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0},
}

var descriptions = map[string]string{
	"human":              "Central node representing human communities and decision-making systems",
	"natural_env":        "Natural ecosystems and environmental conditions",
	"climate_change":     "Long-term shifts in global climate patterns",
	"higher_temp":        "Rising temperatures due to climate change",
	"increased_flooding": "More frequent and severe flooding events",
	"built_env":          "Human-constructed spaces and infrastructure",
	"physical_infra":     "Roads, buildings, utilities, and physical systems",
	"digital_infra":      "Communication networks, data systems, and technology",
	"community":          "Local neighborhoods and social networks",
	"areas_affected":     "Geographic regions impacted by flooding",
	"ai_systems":         "Artificial intelligence and monitoring technologies",
}

// Node is a placed category. X and Y are relative to the diagram center.
type Node struct {
	Category
	Index int
	X, Y  float64
	Angle float64
	Fill  colorful.Color
}

// BaseRadius is the settled node radius.
func (n Node) BaseRadius() float64 { return 25 + 6*float64(n.Connections) }

func (n Node) Lines() []string { return strings.Split(n.Name, "\n") }

// LabelOffset is the vertical offset of label line i of n lines, 12px apart
// and centered on the node.
func LabelOffset(i, n int) float64 {
	return (float64(i) - float64(n-1)/2) * 12
}

// Layout places categories evenly on a circle of the given radius, the
// first one at the top.
func Layout(cats []Category, radius float64) []Node {
	if len(cats) == 0 {
		return nil
	}
	step := 2 * math.Pi / float64(len(cats))
	nodes := make([]Node, len(cats))
	for i, c := range cats {
		a := float64(i)*step - math.Pi/2
		fill, err := scale.Hex(c.Color)
		if err != nil {
			fill = scale.MustHex(scale.Palette[i%len(scale.Palette)])
		}
		nodes[i] = Node{Category: c, Index: i, X: math.Cos(a) * radius, Y: math.Sin(a) * radius, Angle: a, Fill: fill}
	}
	return nodes
}

// Edge joins two related nodes.
type Edge struct {
	Source, Target Node
	Strength       float64
}

func (e Edge) Key() string { return e.Source.ID + "|" + e.Target.ID }

// Width is the stroke width of the edge.
func (e Edge) Width() float64 { return e.Strength * 6 }

// ArcRadius is the radius of the circular arc drawn between the end points.
func (e Edge) ArcRadius() float64 {
	return math.Hypot(e.Target.X-e.Source.X, e.Target.Y-e.Source.Y) * 0.7
}

func (e Edge) Touches(id string) bool { return e.Source.ID == id || e.Target.ID == id }

// Edges returns one edge per set cell of the upper triangle of m, each with
// a strength uniform in [0.3, 0.8).
func Edges(nodes []Node, m [][]int, rng *rand.Rand) []Edge {
	var out []Edge
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			if i < len(m) && j < len(m[i]) && m[i][j] != 0 {
				out = append(out, Edge{Source: nodes[i], Target: nodes[j], Strength: rng.Float64()*0.5 + 0.3})
			}
		}
	}
	return out
}

// Tooltip is the hover card of a node.
type Tooltip struct {
	Name        string
	Type        string
	Description string
	Color       colorful.Color
}

func TooltipFor(n Node) Tooltip {
	desc, ok := descriptions[n.ID]
	if !ok {
		desc = "Network component"
	}
	return Tooltip{Name: strings.ReplaceAll(n.Name, "\n", " "), Type: n.Type, Description: desc, Color: n.Fill}
}
