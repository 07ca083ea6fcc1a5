package panel

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Sample is a regression-ready slice of a panel: the rows of the requested
// columns where every value is present. It owns copies of its data, so later
// panel mutation cannot reach into a model estimated from it.
type Sample struct {
	timestamps []time.Time
	columns    []string
	values     map[string][]float64
}

// ModelSample extracts the rows where every requested column is non-missing
// (intersection semantics). At least one complete row is required.
func (p *Panel) ModelSample(cols ...string) (*Sample, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("model sample: no columns requested")
	}

	names := make([]string, len(cols))
	src := make([][]float64, len(cols))
	for i, name := range cols {
		s, err := p.Column(name)
		if err != nil {
			return nil, fmt.Errorf("model sample: %w", err)
		}
		names[i] = strings.ToLower(name)
		src[i] = s.Values
	}

	keep := make([]int, 0, p.Len())
	for row := 0; row < p.Len(); row++ {
		complete := true
		for _, col := range src {
			if math.IsNaN(col[row]) {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, row)
		}
	}
	if len(keep) == 0 {
		return nil, fmt.Errorf("model sample: no complete rows for columns %v", cols)
	}

	out := &Sample{
		timestamps: make([]time.Time, len(keep)),
		columns:    names,
		values:     make(map[string][]float64, len(cols)),
	}
	for i, row := range keep {
		out.timestamps[i] = p.timestamps[row]
	}
	for i, name := range names {
		vals := make([]float64, len(keep))
		for j, row := range keep {
			vals[j] = src[i][row]
		}
		out.values[name] = vals
	}
	return out, nil
}

// Len returns the number of complete rows in the sample.
func (s *Sample) Len() int {
	return len(s.timestamps)
}

// Columns returns the column names in request order.
func (s *Sample) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// Timestamps returns a copy of the sample's index.
func (s *Sample) Timestamps() []time.Time {
	out := make([]time.Time, len(s.timestamps))
	copy(out, s.timestamps)
	return out
}

// Column returns a copy of the named column's values.
func (s *Sample) Column(name string) []float64 {
	vals, ok := s.values[strings.ToLower(name)]
	if !ok {
		return nil
	}
	out := make([]float64, len(vals))
	copy(out, vals)
	return out
}
