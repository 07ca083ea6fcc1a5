package panel

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sartorproj/goregress/timeseries"
)

// Panel holds named series aligned on a shared, strictly increasing timestamp
// index. Rows may contain missing values; columns keep their insertion order.
type Panel struct {
	timestamps []time.Time
	columns    []string
	series     map[string]*timeseries.Series
}

// Input names a raw series for alignment. The name becomes the canonical
// (lower-cased) column label regardless of the provider's convention.
type Input struct {
	Name   string
	Series *timeseries.Series
}

// Align resamples every input to the target frequency, taking the last
// observation in each period, and aligns the results on the union of their
// period timestamps. Periods a column does not cover hold NaN. An input that
// is empty, or entirely missing after resampling, yields an error naming the
// column; the caller decides whether to abort.
func Align(inputs []Input, freq timeseries.Frequency) (*Panel, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("align: no input series")
	}

	resampled := make([]*timeseries.Series, len(inputs))
	columns := make([]string, len(inputs))
	for i, in := range inputs {
		name := strings.ToLower(strings.TrimSpace(in.Name))
		if name == "" {
			return nil, fmt.Errorf("align: input %d has no name", i)
		}
		if in.Series == nil {
			return nil, fmt.Errorf("align column %q: %w", name, timeseries.ErrEmptySeries)
		}

		r, err := in.Series.ResampleLast(freq)
		if err != nil {
			return nil, fmt.Errorf("align column %q: %w", name, err)
		}
		if r.CountValid() == 0 {
			return nil, fmt.Errorf("align column %q: %w", name, timeseries.ErrEmptySeries)
		}
		r.Name = name
		resampled[i] = r
		columns[i] = name
	}

	seen := make(map[string]bool, len(columns))
	for _, name := range columns {
		if seen[name] {
			return nil, fmt.Errorf("align: duplicate column %q", name)
		}
		seen[name] = true
	}

	index := unionIndex(resampled)
	p := &Panel{
		timestamps: index,
		columns:    make([]string, 0, len(columns)),
		series:     make(map[string]*timeseries.Series, len(columns)),
	}
	for i, r := range resampled {
		values := make([]float64, len(index))
		for j := range values {
			values[j] = math.NaN()
		}
		pos := 0
		for j, ts := range index {
			for pos < r.Len() && r.Timestamps[pos].Before(ts) {
				pos++
			}
			if pos < r.Len() && r.Timestamps[pos].Equal(ts) {
				values[j] = r.Values[pos]
			}
		}
		p.columns = append(p.columns, columns[i])
		p.series[columns[i]] = &timeseries.Series{
			Timestamps: index,
			Values:     values,
			Name:       columns[i],
			Freq:       freq,
		}
	}
	return p, nil
}

// unionIndex merges the sorted timestamp indexes of the series into one
// sorted, deduplicated index.
func unionIndex(series []*timeseries.Series) []time.Time {
	var index []time.Time
	for _, s := range series {
		merged := make([]time.Time, 0, len(index)+s.Len())
		i, j := 0, 0
		for i < len(index) && j < s.Len() {
			a, b := index[i], s.Timestamps[j]
			switch {
			case a.Before(b):
				merged = append(merged, a)
				i++
			case b.Before(a):
				merged = append(merged, b)
				j++
			default:
				merged = append(merged, a)
				i++
				j++
			}
		}
		merged = append(merged, index[i:]...)
		merged = append(merged, s.Timestamps[j:]...)
		index = merged
	}
	return index
}

// Len returns the number of rows in the panel.
func (p *Panel) Len() int {
	return len(p.timestamps)
}

// Columns returns the column names in insertion order.
func (p *Panel) Columns() []string {
	out := make([]string, len(p.columns))
	copy(out, p.columns)
	return out
}

// Timestamps returns a copy of the shared index.
func (p *Panel) Timestamps() []time.Time {
	out := make([]time.Time, len(p.timestamps))
	copy(out, p.timestamps)
	return out
}

// Column returns the named series. The returned series shares the panel's
// storage; callers that need a mutable copy should Copy it.
func (p *Panel) Column(name string) (*timeseries.Series, error) {
	s, ok := p.series[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("panel has no column %q", name)
	}
	return s, nil
}

// addDerived appends a derived column, rejecting duplicates.
func (p *Panel) addDerived(name string, s *timeseries.Series) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return fmt.Errorf("derived column needs a name")
	}
	if _, exists := p.series[name]; exists {
		return fmt.Errorf("panel already has column %q", name)
	}
	s.Name = name
	p.columns = append(p.columns, name)
	p.series[name] = s
	return nil
}

// AddDiff appends the first difference of column src as a new column. The
// source column is not modified.
func (p *Panel) AddDiff(src, name string) error {
	s, err := p.Column(src)
	if err != nil {
		return err
	}
	return p.addDerived(name, s.Diff())
}

// AddPctChange appends the percent change of column src, multiplied by scale,
// as a new column. Pass scale=1 for a plain relative change, 100 for percent
// points.
func (p *Panel) AddPctChange(src, name string, scale float64) error {
	s, err := p.Column(src)
	if err != nil {
		return err
	}
	return p.addDerived(name, s.PctChange().Scale(scale))
}
