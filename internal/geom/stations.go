package geom

import (
	"context"
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"sketchbook/internal/fetch"
	"sketchbook/internal/scale"
)

// Station is one subway stop: a point and its GeoJSON properties.
type Station struct {
	Lon, Lat   float64
	Properties map[string]any
}

var (
	// circle colors keyed by the raw line property
	stationColors = map[string]string{
		"A": "#0039A6", "C": "#0039A6", "E": "#0039A6",
		"B": "#FF6319", "D": "#FF6319", "F": "#FF6319", "M": "#FF6319",
		"G": "#6CBE45",
		"J": "#996633", "Z": "#996633",
		"L": "#A7A9AC",
		"N": "#FCCC0A", "Q": "#FCCC0A", "R": "#FCCC0A", "W": "#FCCC0A",
		"S": "#808183",
		"1": "#EE352E", "2": "#EE352E", "3": "#EE352E",
		"4": "#00933C", "5": "#00933C", "6": "#00933C",
		"7": "#B933AD",
	}
	unknownLine = scale.MustHex("#FF5733")
	noLine      = scale.MustHex("#816182")

	// badge colors in the popup, one per route
	badgeColors = map[string]string{
		"1": "#EE352E", "2": "#EE352E", "3": "#EE352E",
		"4": "#00933C", "5": "#00933C", "6": "#00933C", "6X": "#00933C",
		"7": "#B933AD", "7X": "#B933AD",
		"A": "#0039A6", "C": "#0039A6", "E": "#0039A6",
		"B": "#FF6319", "D": "#FF6319", "F": "#FF6319", "M": "#FF6319",
		"G": "#6CBE45",
		"J": "#996633", "Z": "#996633",
		"L": "#A7A9AC",
		"N": "#FCCC0A", "Q": "#FCCC0A", "R": "#FCCC0A", "W": "#FCCC0A",
		"S": "#808183", "SI": "#808183",
	}
	defaultBadge = scale.MustHex("#666666")
)

// Color is the circle fill: the line property matched whole against the
// palette, a distinct color for unknown values and another when the
// property is absent.
func (s Station) Color() colorful.Color {
	v, ok := s.Properties["line"]
	if !ok {
		return noLine
	}
	line, _ := v.(string)
	if hex, ok := stationColors[line]; ok {
		return scale.MustHex(hex)
	}
	return unknownLine
}

// BadgeColor returns the route color used for popup badges.
func BadgeColor(line string) colorful.Color {
	if hex, ok := badgeColors[line]; ok {
		return scale.MustHex(hex)
	}
	return defaultBadge
}

const defaultStationName = "Subway Station"

// Popup is what a click on a station reveals.
type Popup struct {
	Name  string
	Lines []string
}

// Popup reads the station name and routes from the HTML description
// (li items holding .atr-name/.atr-value pairs), then falls back to plain
// properties. Routes are split on "-".
func (s Station) Popup() Popup {
	name, lines := "", ""
	if desc, ok := s.Properties["description"].(string); ok && desc != "" {
		// an unparsable description falls back to the plain properties
		if attrs, err := describedAttrs(desc); err == nil {
			name, lines = attrs["NAME"], attrs["LINE"]
		}
	}
	if name == "" {
		name = firstProperty(s.Properties, "name", "station_name", "NAME")
	}
	if name == "" {
		name = defaultStationName
	}
	if lines == "" {
		lines = firstProperty(s.Properties, "line", "lines", "LINE")
	}
	p := Popup{Name: name}
	for _, l := range strings.Split(lines, "-") {
		if l = strings.TrimSpace(l); l != "" {
			p.Lines = append(p.Lines, l)
		}
	}
	return p
}

func firstProperty(props map[string]any, keys ...string) string {
	for _, k := range keys {
		if v := formatProperty(props[k]); v != "" {
			return v
		}
	}
	return ""
}

// describedAttrs collects the name/value pairs of an attribute-list HTML
// fragment.
func describedAttrs(desc string) (map[string]string, error) {
	out := map[string]string{}
	nodes, err := html.ParseFragment(strings.NewReader(desc), &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div})
	if err != nil {
		return nil, fmt.Errorf("parse description: %w", err)
	}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "li" {
			k, kok := findClass(n, "atr-name")
			v, vok := findClass(n, "atr-value")
			if kok && vok {
				out[strings.TrimSpace(textContent(k))] = strings.TrimSpace(textContent(v))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return out, nil
}

func findClass(n *html.Node, class string) (*html.Node, bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && hasClass(c, class) {
			return c, true
		}
		if found, ok := findClass(c, class); ok {
			return found, true
		}
	}
	return nil, false
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

// StationTable lists every station's properties with its position.
func StationTable(st []Station) ([]string, [][]string) {
	props := make([]map[string]any, len(st))
	for i, s := range st {
		props[i] = s.Properties
	}
	cols, rows := propertyTable(props)
	cols = append([]string{"lon", "lat"}, cols...)
	for i := range st {
		pos := []string{fmt.Sprintf("%.5f", st[i].Lon), fmt.Sprintf("%.5f", st[i].Lat)}
		if i < len(rows) {
			rows[i] = append(pos, rows[i]...)
		} else {
			rows = append(rows, pos)
		}
	}
	return cols, rows
}

// DecodeStations keeps the point features of a GeoJSON document.
func DecodeStations(b []byte) ([]Station, error) {
	features, err := decodeFeatures(b)
	if err != nil {
		return nil, err
	}
	var out []Station
	for _, f := range features {
		if f.Geometry == nil {
			continue
		}
		var pts [][]float64
		if f.Geometry.IsPoint() {
			pts = [][]float64{f.Geometry.Point}
		} else if f.Geometry.IsMultiPoint() {
			pts = f.Geometry.MultiPoint
		}
		for _, p := range pts {
			if pt, ok := position(p); ok {
				out = append(out, Station{Lon: pt[0], Lat: pt[1], Properties: f.Properties})
			}
		}
	}
	if len(out) == 0 {
		return nil, ErrNoGeometry
	}
	return out, nil
}

func fallbackStation(lon, lat float64, name, lines string) Station {
	return Station{Lon: lon, Lat: lat, Properties: map[string]any{"name": name, "line": lines}}
}

// FallbackStations is drawn when the station file cannot be loaded.
func FallbackStations() []Station {
	return []Station{
		fallbackStation(-73.9873, 40.7553, "Times Sq - 42nd St", "1-2-3-7-N-Q-R-W-S"),
		fallbackStation(-73.9767, 40.7519, "Grand Central - 42nd St", "4-5-6-7-S"),
		fallbackStation(-73.9905, 40.7359, "14th St - Union Sq", "4-5-6-L-N-Q-R-W"),
		fallbackStation(-73.9879, 40.7497, "34th St - Herald Sq", "B-D-F-M-N-Q-R-W"),
		fallbackStation(-74.0077, 40.7102, "Fulton St", "2-3-4-5-A-C-J-Z"),
		fallbackStation(-73.9777, 40.6842, "Atlantic Av - Barclays Ctr", "2-3-4-5-B-D-N-Q-R"),
		fallbackStation(-73.9872, 40.6923, "Jay St - MetroTech", "A-C-F-R"),
		fallbackStation(-73.9456, 40.7470, "Court Sq", "E-G-M-7"),
		fallbackStation(-73.9442, 40.8079, "125th St", "4-5-6"),
		fallbackStation(-73.9497, 40.7142, "Lorimer St", "L"),
	}
}

// LoadStations fetches and decodes the station file. On any failure it
// returns the fallback set together with the error, so callers can log and
// keep drawing.
func LoadStations(ctx context.Context, f fetch.Fetcher, name string) ([]Station, error) {
	b, err := f.Fetch(ctx, name)
	if err != nil {
		return FallbackStations(), err
	}
	st, err := DecodeStations(b)
	if err != nil {
		return FallbackStations(), fmt.Errorf("stations %s: %w", name, err)
	}
	return st, nil
}
