package timeseries

import (
	"math"
	"testing"
	"time"
)

func monthly(t *testing.T, name string, values []float64) *Series {
	t.Helper()
	s, err := NewMonthly(name, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), values)
	if err != nil {
		t.Fatalf("NewMonthly: %v", err)
	}
	return s
}

func TestNewMonthlyMonthEndStart(t *testing.T) {
	// A day-31 start must not drift: naive month addition turns
	// Jan 31 + 2 months into Mar 2, colliding with the Mar 31 stamp.
	s, err := NewMonthly("ffr", time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC), []float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("NewMonthly from Jan 31: %v", err)
	}
	want := []time.Time{
		time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 3, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 4, 30, 0, 0, 0, 0, time.UTC),
	}
	for i, w := range want {
		if !s.Timestamps[i].Equal(w) {
			t.Errorf("timestamp %d = %v, expected %v", i, s.Timestamps[i], w)
		}
	}

	// A December start must roll the year.
	s, err = NewMonthly("x", time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC), []float64{1, 2})
	if err != nil {
		t.Fatalf("NewMonthly from Dec 31: %v", err)
	}
	if got := s.Timestamps[1]; !got.Equal(time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("year rollover timestamp = %v", got)
	}
}

func TestNewValidation(t *testing.T) {
	base := time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC)

	if _, err := New("x", nil, nil); err == nil {
		t.Error("expected error for empty series")
	}

	if _, err := New("x", []time.Time{base}, []float64{1, 2}); err == nil {
		t.Error("expected error for length mismatch")
	}

	// Duplicate timestamp
	if _, err := New("x", []time.Time{base, base}, []float64{1, 2}); err == nil {
		t.Error("expected error for duplicate timestamps")
	}

	// Decreasing timestamps
	if _, err := New("x", []time.Time{base, base.AddDate(0, 0, -1)}, []float64{1, 2}); err == nil {
		t.Error("expected error for decreasing timestamps")
	}
}

func TestDiff(t *testing.T) {
	s := monthly(t, "x", []float64{1, 3, 6, 10})
	d := s.Diff()

	if d.Len() != 4 {
		t.Fatalf("Diff should preserve length, got %d", d.Len())
	}
	if !math.IsNaN(d.Values[0]) {
		t.Errorf("first difference should be NaN, got %f", d.Values[0])
	}
	expected := []float64{math.NaN(), 2, 3, 4}
	for i := 1; i < 4; i++ {
		if d.Values[i] != expected[i] {
			t.Errorf("Diff[%d] = %f, expected %f", i, d.Values[i], expected[i])
		}
	}

	// Source must be untouched
	if s.Values[0] != 1 {
		t.Error("Diff mutated its input")
	}
}

func TestPctChange(t *testing.T) {
	s := monthly(t, "price", []float64{100, 110, 99, 99})
	p := s.PctChange()

	if !math.IsNaN(p.Values[0]) {
		t.Errorf("first pct change should be NaN, got %f", p.Values[0])
	}
	if math.Abs(p.Values[1]-0.10) > 1e-12 {
		t.Errorf("PctChange[1] = %f, expected 0.10", p.Values[1])
	}
	if math.Abs(p.Values[2]+0.10) > 1e-12 {
		t.Errorf("PctChange[2] = %f, expected -0.10", p.Values[2])
	}
	if p.Values[3] != 0 {
		t.Errorf("PctChange[3] = %f, expected 0", p.Values[3])
	}
}

func TestPctChangeZeroAndMissingBase(t *testing.T) {
	s := monthly(t, "x", []float64{0, 5, math.NaN(), 7})
	p := s.PctChange()

	if !math.IsNaN(p.Values[1]) {
		t.Errorf("pct change over zero base should be NaN, got %f", p.Values[1])
	}
	if !math.IsNaN(p.Values[3]) {
		t.Errorf("pct change over missing base should be NaN, got %f", p.Values[3])
	}
}

func TestLag(t *testing.T) {
	s := monthly(t, "x", []float64{1, 2, 3, 4, 5})
	l := s.Lag(2)

	if !math.IsNaN(l.Values[0]) || !math.IsNaN(l.Values[1]) {
		t.Error("first k lagged values should be NaN")
	}
	for i := 2; i < 5; i++ {
		if l.Values[i] != s.Values[i-2] {
			t.Errorf("Lag[%d] = %f, expected %f", i, l.Values[i], s.Values[i-2])
		}
	}
}

func TestCleanAndTrim(t *testing.T) {
	s := monthly(t, "x", []float64{math.NaN(), 1, math.NaN(), 3, math.NaN()})

	c := s.Clean()
	if c.Len() != 2 || c.Values[0] != 1 || c.Values[1] != 3 {
		t.Errorf("Clean got %v", c.Values)
	}

	tr := s.Trim()
	if tr.Len() != 3 {
		t.Fatalf("Trim should keep 3 entries, got %d", tr.Len())
	}
	if !math.IsNaN(tr.Values[1]) {
		t.Error("Trim should keep interior NaN")
	}
}

func TestMeanStdSkipMissing(t *testing.T) {
	s := monthly(t, "x", []float64{2, math.NaN(), 4, 6})

	if math.Abs(s.Mean()-4) > 1e-12 {
		t.Errorf("Mean = %f, expected 4", s.Mean())
	}
	if math.Abs(s.Std()-2) > 1e-12 {
		t.Errorf("Std = %f, expected 2", s.Std())
	}
	if s.CountValid() != 3 {
		t.Errorf("CountValid = %d, expected 3", s.CountValid())
	}
}

func TestResampleLastMonthEnd(t *testing.T) {
	// Three January observations, a gap in February, two March observations.
	dates := []time.Time{
		time.Date(2021, 1, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 1, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 3, 24, 0, 0, 0, 0, time.UTC),
	}
	s, err := New("px", dates, []float64{10, 11, 12, 30, math.NaN()})
	if err != nil {
		t.Fatal(err)
	}

	r, err := s.ResampleLast(FreqMonthEnd)
	if err != nil {
		t.Fatal(err)
	}

	if r.Len() != 2 {
		t.Fatalf("expected 2 periods, got %d", r.Len())
	}
	if !r.Timestamps[0].Equal(time.Date(2021, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first period end = %v", r.Timestamps[0])
	}
	if r.Values[0] != 12 {
		t.Errorf("january last = %f, expected 12", r.Values[0])
	}
	// Trailing NaN in March: last non-missing observation wins.
	if r.Values[1] != 30 {
		t.Errorf("march last = %f, expected 30", r.Values[1])
	}
	if err := r.Validate(); err != nil {
		t.Errorf("resampled series invalid: %v", err)
	}
}

func TestResampleLastErrors(t *testing.T) {
	s := &Series{Name: "x"}
	if _, err := s.ResampleLast(FreqMonthEnd); err == nil {
		t.Error("expected error for empty series")
	}

	s2 := monthly(t, "x", []float64{1, 2})
	if _, err := s2.ResampleLast(Frequency("W")); err == nil {
		t.Error("expected error for unsupported frequency")
	}
}

func TestWindow(t *testing.T) {
	s := monthly(t, "x", []float64{1, 2, 3, 4, 5, 6})
	w := s.Window(
		time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 4, 30, 0, 0, 0, 0, time.UTC),
	)
	if w.Len() != 3 {
		t.Fatalf("expected 3 entries in window, got %d", w.Len())
	}
	if w.Values[0] != 2 || w.Values[2] != 4 {
		t.Errorf("window values %v", w.Values)
	}
}

func TestMonthEnd(t *testing.T) {
	tests := []struct {
		in  time.Time
		out time.Time
	}{
		{time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC), time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)},
		{time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC), time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := MonthEnd(tt.in); !got.Equal(tt.out) {
			t.Errorf("MonthEnd(%v) = %v, expected %v", tt.in, got, tt.out)
		}
	}
}
