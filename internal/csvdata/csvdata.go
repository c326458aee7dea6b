// Package csvdata loads line series from CSV files for the command-line
// hosts. The first column is X; every further column is one series.
// A first row that does not parse as numbers names the series.
package csvdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-theft-auto/plot"
)

// ErrNoSeries is returned when a file holds no usable column pair.
var ErrNoSeries = errors.New("csv: no series found")

// LoadFile reads series from a CSV file.
func LoadFile(path string) ([]*plot.Polyline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lines, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lines, nil
}

// Load reads series from r. Cells that are empty or not numbers leave a
// gap in their series; rows without a valid X are skipped.
func Load(r io.Reader) ([]*plot.Polyline, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNoSeries
	}

	cols := 0
	for _, rec := range recs {
		cols = max(cols, len(rec))
	}
	if cols < 2 {
		return nil, ErrNoSeries
	}

	names := make([]string, cols)
	if !numericRow(recs[0]) {
		for i, h := range recs[0] {
			names[i] = strings.TrimSpace(h)
		}
		recs = recs[1:]
	}

	lines := make([]*plot.Polyline, cols-1)
	for i := range lines {
		lines[i] = plot.NewPolyline(0, 1.5)
		lines[i].Label = names[i+1]
		if lines[i].Label == "" {
			lines[i].Label = "y" + strconv.Itoa(i+1)
		}
	}

	for _, rec := range recs {
		x, ok := parse(rec, 0)
		if !ok {
			continue
		}
		for i, l := range lines {
			y, ok := parse(rec, i+1)
			if !ok {
				// NaN breaks the drawn line.
				l.Append(plot.Point{X: x, Y: math.NaN()})
				continue
			}
			l.Append(plot.Point{X: x, Y: y})
		}
	}

	out := lines[:0]
	for _, l := range lines {
		if _, ok := l.Bounds(); ok {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoSeries
	}
	return out, nil
}

func parse(rec []string, i int) (float64, bool) {
	if i >= len(rec) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
	return v, err == nil
}

func numericRow(rec []string) bool {
	_, ok := parse(rec, 0)
	return ok
}
