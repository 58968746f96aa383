package geom

import (
	"encoding/json"
	"fmt"
	"sort"

	geojson "github.com/paulmach/go.geojson"
)

// DecodeGeoJSON reads a FeatureCollection, a single Feature or a bare
// geometry. Feature properties become the attribute table, one row per
// feature, columns in first-seen order.
func DecodeGeoJSON(b []byte) (Data, error) {
	features, err := decodeFeatures(b)
	if err != nil {
		return Data{}, err
	}
	var d Data
	for _, f := range features {
		walkGeometry(&d, f.Geometry)
	}
	if d.Empty() {
		return Data{}, ErrNoGeometry
	}
	props := make([]map[string]any, len(features))
	for i, f := range features {
		props[i] = f.Properties
	}
	d.Columns, d.Rows = propertyTable(props)
	return d, nil
}

func decodeFeatures(b []byte) ([]*geojson.Feature, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	switch head.Type {
	case "":
		return nil, fmt.Errorf("geojson: missing type")
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(b)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		return fc.Features, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(b)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		return []*geojson.Feature{f}, nil
	default:
		g, err := geojson.UnmarshalGeometry(b)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		return []*geojson.Feature{geojson.NewFeature(g)}, nil
	}
}

func walkGeometry(d *Data, g *geojson.Geometry) {
	if g == nil {
		return
	}
	switch g.Type {
	case geojson.GeometryPoint:
		if pt, ok := position(g.Point); ok {
			d.addPoint(pt)
		}
	case geojson.GeometryMultiPoint:
		for _, p := range g.MultiPoint {
			if pt, ok := position(p); ok {
				d.addPoint(pt)
			}
		}
	case geojson.GeometryLineString:
		d.addLine(positions(g.LineString))
	case geojson.GeometryMultiLineString:
		for _, ls := range g.MultiLineString {
			d.addLine(positions(ls))
		}
	case geojson.GeometryPolygon:
		d.addPolygon(rings(g.Polygon))
	case geojson.GeometryMultiPolygon:
		for _, poly := range g.MultiPolygon {
			d.addPolygon(rings(poly))
		}
	case geojson.GeometryCollection:
		for _, sub := range g.Geometries {
			walkGeometry(d, sub)
		}
	}
}

func position(p []float64) ([2]float64, bool) {
	if len(p) < 2 {
		return [2]float64{}, false
	}
	return [2]float64{p[0], p[1]}, true
}

func positions(ps [][]float64) [][2]float64 {
	out := make([][2]float64, 0, len(ps))
	for _, p := range ps {
		if pt, ok := position(p); ok {
			out = append(out, pt)
		}
	}
	return out
}

func rings(poly [][][]float64) [][][2]float64 {
	out := make([][][2]float64, 0, len(poly))
	for _, r := range poly {
		out = append(out, positions(r))
	}
	return out
}

// propertyTable unions the property keys, one row per property set.
func propertyTable(props []map[string]any) ([]string, [][]string) {
	var cols []string
	seen := map[string]bool{}
	for _, p := range props {
		keys := make([]string, 0, len(p))
		for k := range p {
			if !seen[k] {
				keys = append(keys, k)
			}
		}
		// map order is random; keep a feature's new keys stable
		sort.Strings(keys)
		for _, k := range keys {
			seen[k] = true
			cols = append(cols, k)
		}
	}
	if len(cols) == 0 {
		return nil, nil
	}
	rows := make([][]string, 0, len(props))
	for _, p := range props {
		row := make([]string, len(cols))
		for i, k := range cols {
			row[i] = formatProperty(p[k])
		}
		rows = append(rows, row)
	}
	return cols, rows
}

func formatProperty(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprint(t)
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}
