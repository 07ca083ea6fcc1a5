package timeseries

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrEmptySeries is returned when a series has no observations, or no
// non-missing observations where at least one is required.
var ErrEmptySeries = errors.New("empty series")

// Frequency identifies the nominal sampling frequency of a series.
type Frequency string

const (
	// FreqNone marks a series with no declared sampling frequency.
	FreqNone Frequency = ""
	// FreqMonthEnd marks month-end sampling, one observation per calendar month.
	FreqMonthEnd Frequency = "ME"
)

// Series represents a date-indexed time series. Missing values are stored as
// NaN; timestamps are strictly increasing with no duplicates.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
	Freq       Frequency
}

// New creates a time series with explicit timestamps and validates it.
func New(name string, timestamps []time.Time, values []float64) (*Series, error) {
	s := &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       name,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewMonthly creates a month-end series starting at the month containing
// start, with one value per consecutive month.
func NewMonthly(name string, start time.Time, values []float64) (*Series, error) {
	// Stamps are computed from the month index, not by adding months to
	// start: AddDate normalizes day-29..31 starts into the next month.
	timestamps := make([]time.Time, len(values))
	for i := range values {
		timestamps[i] = time.Date(start.Year(), start.Month()+time.Month(i)+1, 0,
			0, 0, 0, 0, start.Location())
	}
	s, err := New(name, timestamps, values)
	if err != nil {
		return nil, err
	}
	s.Freq = FreqMonthEnd
	return s, nil
}

// Validate checks the series invariants: equal index and value lengths, at
// least one observation, and strictly increasing timestamps.
func (s *Series) Validate() error {
	if len(s.Values) == 0 {
		return fmt.Errorf("series %q: %w", s.Name, ErrEmptySeries)
	}
	if len(s.Timestamps) != len(s.Values) {
		return fmt.Errorf("series %q: %d timestamps for %d values", s.Name, len(s.Timestamps), len(s.Values))
	}
	for i := 1; i < len(s.Timestamps); i++ {
		if !s.Timestamps[i].After(s.Timestamps[i-1]) {
			return fmt.Errorf("series %q: timestamps not strictly increasing at index %d", s.Name, i)
		}
	}
	return nil
}

// Len returns the length of the series, including missing entries.
func (s *Series) Len() int {
	return len(s.Values)
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
		Freq:       s.Freq,
	}
}

// Clean returns a copy of the series with all missing entries removed.
func (s *Series) Clean() *Series {
	values := make([]float64, 0, len(s.Values))
	timestamps := make([]time.Time, 0, len(s.Timestamps))
	for i, v := range s.Values {
		if !math.IsNaN(v) {
			values = append(values, v)
			timestamps = append(timestamps, s.Timestamps[i])
		}
	}
	return &Series{Timestamps: timestamps, Values: values, Name: s.Name, Freq: s.Freq}
}

// Trim returns a copy of the series with leading and trailing missing entries
// removed. Interior missing entries are kept.
func (s *Series) Trim() *Series {
	lo, hi := 0, len(s.Values)
	for lo < hi && math.IsNaN(s.Values[lo]) {
		lo++
	}
	for hi > lo && math.IsNaN(s.Values[hi-1]) {
		hi--
	}

	values := make([]float64, hi-lo)
	copy(values, s.Values[lo:hi])
	timestamps := make([]time.Time, hi-lo)
	copy(timestamps, s.Timestamps[lo:hi])

	return &Series{Timestamps: timestamps, Values: values, Name: s.Name, Freq: s.Freq}
}

// Diff calculates the first difference of the series. The index is preserved;
// the first entry (and any entry whose predecessor is missing) maps to NaN.
func (s *Series) Diff() *Series {
	out := s.Copy()
	out.Name = s.Name + "_diff"
	out.Values[0] = math.NaN()
	for i := len(s.Values) - 1; i >= 1; i-- {
		out.Values[i] = s.Values[i] - s.Values[i-1]
	}
	return out
}

// PctChange calculates the period-over-period relative change
// v[t]/v[t-1] - 1. The index is preserved; the first entry maps to NaN, as
// does any entry whose predecessor is missing or zero.
func (s *Series) PctChange() *Series {
	out := s.Copy()
	out.Name = s.Name + "_pct"
	out.Values[0] = math.NaN()
	for i := len(s.Values) - 1; i >= 1; i-- {
		prev := s.Values[i-1]
		if math.IsNaN(prev) || prev == 0 {
			out.Values[i] = math.NaN()
		} else {
			out.Values[i] = s.Values[i]/prev - 1
		}
	}
	return out
}

// Lag returns the series shifted forward by k periods on the same index. The
// first k entries map to NaN.
func (s *Series) Lag(k int) *Series {
	out := s.Copy()
	out.Name = fmt.Sprintf("%s_lag%d", s.Name, k)
	if k <= 0 {
		return out
	}
	for i := len(s.Values) - 1; i >= k; i-- {
		out.Values[i] = s.Values[i-k]
	}
	for i := 0; i < k && i < len(s.Values); i++ {
		out.Values[i] = math.NaN()
	}
	return out
}

// Scale returns the series with every value multiplied by c.
func (s *Series) Scale(c float64) *Series {
	out := s.Copy()
	for i, v := range out.Values {
		out.Values[i] = v * c
	}
	return out
}

// Window returns the subset of the series with start <= timestamp <= end.
func (s *Series) Window(start, end time.Time) *Series {
	values := make([]float64, 0, len(s.Values))
	timestamps := make([]time.Time, 0, len(s.Timestamps))
	for i, ts := range s.Timestamps {
		if ts.Before(start) || ts.After(end) {
			continue
		}
		timestamps = append(timestamps, ts)
		values = append(values, s.Values[i])
	}
	return &Series{Timestamps: timestamps, Values: values, Name: s.Name, Freq: s.Freq}
}

// Mean calculates the arithmetic mean of the non-missing values.
func (s *Series) Mean() float64 {
	sum, n := 0.0, 0
	for _, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Std calculates the sample standard deviation of the non-missing values.
func (s *Series) Std() float64 {
	mean := s.Mean()
	if math.IsNaN(mean) {
		return math.NaN()
	}
	sumSq, n := 0.0, 0
	for _, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		diff := v - mean
		sumSq += diff * diff
		n++
	}
	if n < 2 {
		return math.NaN()
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// CountValid returns the number of non-missing observations.
func (s *Series) CountValid() int {
	n := 0
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}
