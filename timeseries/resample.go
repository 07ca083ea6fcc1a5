package timeseries

import (
	"fmt"
	"math"
	"time"
)

// MonthEnd returns the last calendar day of the month containing t, at
// midnight in t's location.
func MonthEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}

// ResampleLast resamples the series to the given frequency by taking the last
// non-missing observation inside each period. Output timestamps are stamped at
// the period end. A period whose observations are all missing resamples to
// NaN. Only month-end resampling is supported.
func (s *Series) ResampleLast(freq Frequency) (*Series, error) {
	if freq != FreqMonthEnd {
		return nil, fmt.Errorf("series %q: unsupported resampling frequency %q", s.Name, freq)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var (
		timestamps []time.Time
		values     []float64
		period     time.Time
		last       = math.NaN()
		open       bool
	)
	flush := func() {
		if open {
			timestamps = append(timestamps, period)
			values = append(values, last)
		}
	}
	for i, ts := range s.Timestamps {
		p := MonthEnd(ts)
		if !open || !p.Equal(period) {
			flush()
			period = p
			last = math.NaN()
			open = true
		}
		if !math.IsNaN(s.Values[i]) {
			last = s.Values[i]
		}
	}
	flush()

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
		Freq:       freq,
	}, nil
}
