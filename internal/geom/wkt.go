package geom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseWKT parses WKT text into Data. Supported: POINT, MULTIPOINT,
// LINESTRING, MULTILINESTRING, POLYGON and MULTIPOLYGON. Z/M ordinates are
// dropped.
func ParseWKT(wkt string) (Data, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return Data{}, errors.New("wkt: empty")
	}
	open := strings.IndexByte(s, '(')
	if open < 0 {
		if strings.HasSuffix(strings.ToUpper(s), "EMPTY") {
			return Data{}, ErrNoGeometry
		}
		return Data{}, errors.New("wkt: missing coordinates")
	}
	head := strings.Fields(strings.ToUpper(s[:open]))
	if len(head) == 0 {
		return Data{}, errors.New("wkt: missing type")
	}
	if !wktTypes[head[0]] {
		return Data{}, fmt.Errorf("wkt: unsupported type %s", head[0])
	}
	p := &wktParser{s: s, i: open}
	root, err := p.group()
	if err != nil {
		return Data{}, err
	}

	var d Data
	switch head[0] {
	case "POINT":
		for _, pt := range root.coords {
			d.addPoint(pt)
		}
	case "MULTIPOINT":
		// both MULTIPOINT(1 2, 3 4) and MULTIPOINT((1 2), (3 4))
		for _, pt := range root.coords {
			d.addPoint(pt)
		}
		for _, k := range root.kids {
			for _, pt := range k.coords {
				d.addPoint(pt)
			}
		}
	case "LINESTRING":
		d.addLine(root.coords)
	case "MULTILINESTRING":
		for _, k := range root.kids {
			d.addLine(k.coords)
		}
	case "POLYGON":
		d.addPolygon(root.rings())
	case "MULTIPOLYGON":
		for _, k := range root.kids {
			d.addPolygon(k.rings())
		}
	}
	if d.Empty() {
		return Data{}, ErrNoGeometry
	}
	return d, nil
}

var wktTypes = map[string]bool{
	"POINT": true, "MULTIPOINT": true,
	"LINESTRING": true, "MULTILINESTRING": true,
	"POLYGON": true, "MULTIPOLYGON": true,
}

// wktNode is one parenthesized group: either a coordinate list or a list of
// nested groups.
type wktNode struct {
	coords [][2]float64
	kids   []wktNode
}

func (n wktNode) rings() [][][2]float64 {
	out := make([][][2]float64, 0, len(n.kids))
	for _, k := range n.kids {
		out = append(out, k.coords)
	}
	return out
}

type wktParser struct {
	s string
	i int
}

func (p *wktParser) skip() {
	for p.i < len(p.s) && (p.s[p.i] == ' ' || p.s[p.i] == '\t' || p.s[p.i] == '\n' || p.s[p.i] == '\r') {
		p.i++
	}
}

func (p *wktParser) eat(c byte) bool {
	p.skip()
	if p.i < len(p.s) && p.s[p.i] == c {
		p.i++
		return true
	}
	return false
}

func (p *wktParser) group() (wktNode, error) {
	if !p.eat('(') {
		return wktNode{}, fmt.Errorf("wkt: expected '(' at %d", p.i)
	}
	var n wktNode
	p.skip()
	if p.i < len(p.s) && p.s[p.i] == '(' {
		for {
			kid, err := p.group()
			if err != nil {
				return wktNode{}, err
			}
			n.kids = append(n.kids, kid)
			if !p.eat(',') {
				break
			}
		}
	} else {
		j := strings.IndexAny(p.s[p.i:], "()")
		if j < 0 || p.s[p.i+j] != ')' {
			return wktNode{}, fmt.Errorf("wkt: unbalanced parentheses at %d", p.i)
		}
		coords, err := wktTuples(p.s[p.i : p.i+j])
		if err != nil {
			return wktNode{}, fmt.Errorf("wkt: %w at %d", err, p.i)
		}
		n.coords = coords
		p.i += j
	}
	if !p.eat(')') {
		return wktNode{}, fmt.Errorf("wkt: expected ')' at %d", p.i)
	}
	return n, nil
}

// wktTuples splits a coordinate list into "x y" tuples. Extra ordinates
// are ignored.
func wktTuples(block string) ([][2]float64, error) {
	if strings.TrimSpace(block) == "" {
		return nil, nil
	}
	var out [][2]float64
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(tup)
		if len(parts) == 0 {
			return nil, errors.New("empty coordinate")
		}
		if len(parts) < 2 {
			return nil, fmt.Errorf("coordinate %q needs x and y", strings.TrimSpace(tup))
		}
		x, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("bad x %q", parts[0])
		}
		y, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad y %q", parts[1])
		}
		out = append(out, [2]float64{x, y})
	}
	return out, nil
}
