package regression

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/sartorproj/goregress/timeseries"
)

func lagSeries(t *testing.T, name string, values []float64) *timeseries.Series {
	t.Helper()
	s, err := timeseries.NewMonthly(name, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), values)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSelectLagRecoversTrueOrder(t *testing.T) {
	// Exact distributed-lag process of order 2 plus small noise:
	// y_t = 1 + 2*x_{t-1} - 1.5*x_{t-2} + 0.3*e_t. BIC is consistent, so
	// it should land on lag 2 for most draws at this sample size.
	const trials = 10
	n, maxLag := 400, 4
	bicHits := 0
	for trial := 0; trial < trials; trial++ {
		rng := rand.New(rand.NewSource(int64(100 + trial)))
		x := make([]float64, n)
		y := make([]float64, n)
		for i := range x {
			x[i] = rng.NormFloat64()
		}
		for i := 2; i < n; i++ {
			y[i] = 1 + 2*x[i-1] - 1.5*x[i-2] + 0.3*rng.NormFloat64()
		}

		sel, err := SelectLag(
			lagSeries(t, "y", y),
			[]*timeseries.Series{lagSeries(t, "x", x)},
			maxLag,
		)
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}

		for _, crit := range []string{"aic", "bic", "fpe"} {
			lag, ok := sel.Lags[crit]
			if !ok {
				t.Fatalf("trial %d: criterion %s missing", trial, crit)
			}
			if lag < 1 || lag > maxLag {
				t.Fatalf("trial %d: %s lag %d outside [1, %d]", trial, crit, lag, maxLag)
			}
			// The true order must not be underfit at this signal strength.
			if lag < 2 {
				t.Errorf("trial %d: %s underfit true order 2 with lag %d", trial, crit, lag)
			}
		}
		if sel.Lags["bic"] == 2 {
			bicHits++
		}
	}
	if bicHits < 7 {
		t.Errorf("BIC selected the true lag in %d/%d trials, expected at least 7", bicHits, trials)
	}
	t.Logf("BIC hit the true order in %d/%d trials", bicHits, trials)
}

func TestSelectLagStrictMinimumKeepsSmallest(t *testing.T) {
	// A pure noise target: no lag helps, criteria fluctuate. The fold uses
	// strict comparison, so whatever the draw, each reported lag is the
	// first one achieving its criterion minimum.
	rng := rand.New(rand.NewSource(42))
	n := 120
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = rng.NormFloat64()
		y[i] = rng.NormFloat64()
	}
	sel, err := SelectLag(lagSeries(t, "y", y), []*timeseries.Series{lagSeries(t, "x", x)}, 3)
	if err != nil {
		t.Fatal(err)
	}
	for crit, lag := range sel.Lags {
		if lag < 1 || lag > 3 {
			t.Errorf("%s lag %d outside grid", crit, lag)
		}
		if _, ok := sel.Values[crit]; !ok {
			t.Errorf("%s has a lag but no minimized value", crit)
		}
	}
}

func TestSelectLagSkipsIncompleteRows(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	n := 100
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = rng.NormFloat64()
		y[i] = 0.5 + x[i] + 0.1*rng.NormFloat64()
	}
	// Interior gaps in the regressor.
	x[40] = math.NaN()
	x[41] = math.NaN()

	sel, err := SelectLag(lagSeries(t, "y", y), []*timeseries.Series{lagSeries(t, "x", x)}, 2)
	if err != nil {
		t.Fatalf("SelectLag with gaps: %v", err)
	}
	if sel.Lags["aic"] < 1 {
		t.Error("expected a selected lag despite interior gaps")
	}
}

func TestSelectLagValidation(t *testing.T) {
	y := lagSeries(t, "y", []float64{1, 2, 3, 4, 5, 6, 7, 8})
	x := lagSeries(t, "x", []float64{1, 0, 1, 0, 1, 0, 1, 0})

	if _, err := SelectLag(y, []*timeseries.Series{x}, 0); err == nil {
		t.Error("expected error for maxLag < 1")
	}
	if _, err := SelectLag(y, nil, 2); err == nil {
		t.Error("expected error for missing exogenous series")
	}

	short := lagSeries(t, "s", []float64{1, 2, 3})
	if _, err := SelectLag(y, []*timeseries.Series{short}, 2); err == nil {
		t.Error("expected error for index length mismatch")
	}

	// Too few observations for the largest candidate lag.
	tinyY := lagSeries(t, "y", []float64{1, 2, 3, 4})
	tinyX := lagSeries(t, "x", []float64{4, 3, 2, 1})
	if _, err := SelectLag(tinyY, []*timeseries.Series{tinyX}, 3); err == nil {
		t.Error("expected error for insufficient observations")
	}
}
