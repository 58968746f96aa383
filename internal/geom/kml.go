package geom

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPlacemark struct {
	Name       string     `xml:"name"`
	Point      *kmlCoords `xml:"Point"`
	LineString *kmlCoords `xml:"LineString"`
	Polygon    *struct {
		Outer kmlCoords   `xml:"outerBoundaryIs>LinearRing"`
		Inner []kmlCoords `xml:"innerBoundaryIs>LinearRing"`
	} `xml:"Polygon"`
}

// DecodeKML extracts Placemark geometry from a KML document. Placemarks may
// sit directly under the root or inside any nesting of Document/Folder.
// KML coordinates are "lon,lat[,alt]"; altitude is ignored.
func DecodeKML(b []byte) (Data, error) {
	var placemarks []kmlPlacemark
	dec := xml.NewDecoder(bytes.NewReader(b))
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return Data{}, err
		}
		placemarks = append(placemarks, pm)
	}

	var d Data
	for _, pm := range placemarks {
		switch {
		case pm.Point != nil:
			for _, pt := range kmlTuples(pm.Point.Coordinates) {
				d.addPoint(pt)
			}
		case pm.LineString != nil:
			d.addLine(kmlTuples(pm.LineString.Coordinates))
		case pm.Polygon != nil:
			poly := [][][2]float64{kmlTuples(pm.Polygon.Outer.Coordinates)}
			for _, in := range pm.Polygon.Inner {
				poly = append(poly, kmlTuples(in.Coordinates))
			}
			d.addPolygon(poly)
		default:
			continue
		}
		d.Rows = append(d.Rows, []string{pm.Name})
	}
	if d.Empty() {
		return Data{}, ErrNoGeometry
	}
	d.Columns = []string{"name"}
	return d, nil
}

// coordinates may contain multiple tuples separated by whitespace
func kmlTuples(s string) [][2]float64 {
	var out [][2]float64
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, [2]float64{lon, lat})
	}
	return out
}
