package stream

import "sort"

// Offset places the baseline of a stack.
type Offset int

const (
	Wiggle Offset = iota
	Silhouette
	Zero
)

func (o Offset) String() string {
	switch o {
	case Silhouette:
		return "silhouette"
	case Zero:
		return "zero"
	}
	return "wiggle"
}

// Band is the lower and upper edge of a layer at one range.
type Band struct{ Y0, Y1 float64 }

// Layer is one provider's band per range.
type Layer struct {
	Key    string
	Index  int // position in the stack, bottom first
	Ranges []string
	Bands  []Band
}

// InsideOut orders keys so the ones peaking earliest sit in the middle and
// later peaks alternate outward, keeping the heavier side balanced.
func InsideOut(s Series) []string {
	type item struct {
		key  string
		peak int
		sum  float64
	}
	items := make([]item, len(s.Keys))
	for i, k := range s.Keys {
		it := item{key: k, peak: -1}
		best := 0.0
		for j, r := range s.Ranges {
			v := s.Value(k, r)
			it.sum += v
			if it.peak < 0 || v > best {
				it.peak, best = j, v
			}
		}
		items[i] = it
	}
	sort.SliceStable(items, func(a, b int) bool { return items[a].peak < items[b].peak })

	var tops, bottoms []string
	top, bottom := 0.0, 0.0
	for _, it := range items {
		if top < bottom {
			top += it.sum
			tops = append(tops, it.key)
		} else {
			bottom += it.sum
			bottoms = append(bottoms, it.key)
		}
	}
	out := make([]string, 0, len(items))
	for i := len(bottoms) - 1; i >= 0; i-- {
		out = append(out, bottoms[i])
	}
	return append(out, tops...)
}

// Stack lays out the series in the given key order around the baseline
// chosen by offset.
func Stack(s Series, order []string, offset Offset) []Layer {
	m := len(s.Ranges)
	v := make([][]float64, len(order))
	for i, k := range order {
		v[i] = make([]float64, m)
		for j, r := range s.Ranges {
			v[i][j] = s.Value(k, r)
		}
	}
	base := baseline(v, m, offset)

	layers := make([]Layer, len(order))
	for i, k := range order {
		layers[i] = Layer{Key: k, Index: i, Ranges: s.Ranges, Bands: make([]Band, m)}
	}
	for j := 0; j < m; j++ {
		y := base[j]
		for i := range order {
			layers[i].Bands[j] = Band{Y0: y, Y1: y + v[i][j]}
			y += v[i][j]
		}
	}
	return layers
}

func baseline(v [][]float64, m int, offset Offset) []float64 {
	base := make([]float64, m)
	if len(v) == 0 {
		return base
	}
	switch offset {
	case Silhouette:
		for j := 0; j < m; j++ {
			sum := 0.0
			for i := range v {
				sum += v[i][j]
			}
			base[j] = -sum / 2
		}
	case Wiggle:
		// minimize the weighted change in slope between adjacent ranges
		y := 0.0
		for j := 1; j < m; j++ {
			s1, s2 := 0.0, 0.0
			for i := range v {
				s3 := (v[i][j] - v[i][j-1]) / 2
				for k := 0; k < i; k++ {
					s3 += v[k][j] - v[k][j-1]
				}
				s1 += v[i][j]
				s2 += s3 * v[i][j]
			}
			if s1 != 0 {
				y -= s2 / s1
			}
			base[j] = y
		}
	}
	return base
}

// Extent returns the lowest and highest edge over all layers.
func Extent(layers []Layer) (lo, hi float64) {
	first := true
	for _, l := range layers {
		for _, b := range l.Bands {
			if first {
				lo, hi, first = b.Y0, b.Y1, false
				continue
			}
			lo = min(lo, b.Y0)
			hi = max(hi, b.Y1)
		}
	}
	return lo, hi
}
