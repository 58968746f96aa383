// Package stream builds the streamgraph: provider values per range, stacked
// around a moving baseline.
package stream

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"sketchbook/internal/fetch"
)

var ErrNoRows = errors.New("stream: no data rows")

// Row is one record of the tabular file.
type Row struct {
	Provider string
	Range    string
	Value    float64
}

// Series is rows pivoted into one value per provider and range.
type Series struct {
	Keys   []string // providers in first-seen order
	Ranges []string
	Values map[string]map[string]float64
}

func (s Series) Value(key, rng string) float64 { return s.Values[key][rng] }

// Parse reads CSV with provider and range columns and an optional value
// column. Without a value column every row counts once; an empty or
// malformed value counts as 0.
func Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	pi, ok1 := cols["provider"]
	ri, ok2 := cols["range"]
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("stream: header needs provider and range columns, got %v", header)
	}
	vi, hasValue := cols["value"]

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if pi >= len(rec) || ri >= len(rec) {
			continue
		}
		row := Row{Provider: strings.TrimSpace(rec[pi]), Range: strings.TrimSpace(rec[ri]), Value: 1}
		if row.Provider == "" || row.Range == "" {
			continue
		}
		if hasValue {
			row.Value = 0
			if vi < len(rec) {
				if v, err := strconv.ParseFloat(strings.TrimSpace(rec[vi]), 64); err == nil {
					row.Value = v
				}
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}

// Pivot sums rows per provider and range. Ranges sort numerically when they
// all parse as numbers, otherwise they keep first-seen order.
func Pivot(rows []Row) Series {
	s := Series{Values: map[string]map[string]float64{}}
	seenRange := map[string]bool{}
	for _, r := range rows {
		m, ok := s.Values[r.Provider]
		if !ok {
			m = map[string]float64{}
			s.Values[r.Provider] = m
			s.Keys = append(s.Keys, r.Provider)
		}
		m[r.Range] += r.Value
		if !seenRange[r.Range] {
			seenRange[r.Range] = true
			s.Ranges = append(s.Ranges, r.Range)
		}
	}
	numeric := true
	for _, r := range s.Ranges {
		if _, err := strconv.ParseFloat(r, 64); err != nil {
			numeric = false
			break
		}
	}
	if numeric {
		sort.SliceStable(s.Ranges, func(i, j int) bool {
			a, _ := strconv.ParseFloat(s.Ranges[i], 64)
			b, _ := strconv.ParseFloat(s.Ranges[j], 64)
			return a < b
		})
	}
	return s
}

var demoYears = []string{"2019", "2020", "2021", "2022", "2023", "2024"}

var demoValues = []struct {
	provider string
	values   [6]float64
}{
	{"Amazon", [6]float64{32, 33, 33, 34, 32, 31}},
	{"Microsoft", [6]float64{16, 18, 20, 21, 23, 25}},
	{"Google", [6]float64{8, 9, 10, 11, 11, 12}},
	{"Alibaba", [6]float64{5, 6, 6, 5, 4, 4}},
	{"IBM", [6]float64{5, 5, 4, 3, 3, 2}},
	{"Oracle", [6]float64{2, 2, 2, 2, 3, 3}},
}

// Demo is the embedded six-year series shown when the data file cannot be
// loaded.
func Demo() Series {
	var rows []Row
	for _, p := range demoValues {
		for i, y := range demoYears {
			rows = append(rows, Row{Provider: p.provider, Range: y, Value: p.values[i]})
		}
	}
	return Pivot(rows)
}

// Load fetches and parses name. On any failure it returns Demo together
// with the error.
func Load(ctx context.Context, f fetch.Fetcher, name string) (Series, error) {
	b, err := f.Fetch(ctx, name)
	if err != nil {
		return Demo(), fmt.Errorf("load %s: %w", name, err)
	}
	rows, err := Parse(bytes.NewReader(b))
	if err != nil {
		return Demo(), fmt.Errorf("parse %s: %w", name, err)
	}
	return Pivot(rows), nil
}
