package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/goregress/regression"
	"github.com/sartorproj/goregress/timeseries"
)

var (
	// ErrInsufficientObs is returned when a test's minimum sample
	// requirement is not met.
	ErrInsufficientObs = errors.New("insufficient observations")
	// ErrInteriorMissing is returned when a series has missing values
	// between its first and last observations.
	ErrInteriorMissing = errors.New("interior missing values")
	// ErrDegenerateVariance is returned when a ratio-based statistic is
	// undefined because its variance term is zero.
	ErrDegenerateVariance = errors.New("degenerate variance")
)

// ADFConfig configures the Augmented Dickey-Fuller test.
type ADFConfig struct {
	MaxLag    int    // upper bound for the lag search; 0 selects floor(12*(n/100)^0.25)
	Criterion string // "aic" (default) or "bic" for the automatic lag choice
}

// ADFResult represents the result of an Augmented Dickey-Fuller test.
type ADFResult struct {
	Statistic      float64
	PValue         float64
	Lag            int // automatically selected lag order
	NObs           int // observations in the final regression
	CriticalValues map[string]float64 // "1%", "5%", "10%"
}

// ADF performs the Augmented Dickey-Fuller unit-root test with automatic lag
// selection. The null hypothesis is that the series has a unit root.
//
// For candidate lag orders 0..maxLag it fits
//
//	dy_t = alpha + beta*y_{t-1} + sum gamma_i*dy_{t-i} + e_t
//
// on a common sample, picks the order minimizing the configured criterion,
// refits at that order on its maximal sample, and maps the t-statistic on
// beta to a p-value via the MacKinnon Dickey-Fuller approximation. The
// regression includes a constant and no trend. Leading and trailing missing
// values are dropped; interior missing values are an error.
func ADF(series *timeseries.Series, cfg *ADFConfig) (*ADFResult, error) {
	if cfg == nil {
		cfg = &ADFConfig{}
	}
	criterion := cfg.Criterion
	if criterion == "" {
		criterion = "aic"
	}
	if criterion != "aic" && criterion != "bic" {
		return nil, fmt.Errorf("adf: unknown criterion %q", criterion)
	}

	trimmed := series.Trim()
	vals := trimmed.Values
	n := len(vals)
	for _, v := range vals {
		if math.IsNaN(v) {
			return nil, fmt.Errorf("adf: series %q: %w", series.Name, ErrInteriorMissing)
		}
	}
	if n < 6 {
		return nil, fmt.Errorf("adf: requires at least 6 observations, got %d: %w", n, ErrInsufficientObs)
	}

	// Feasibility: the lag-b regression has n-1-b observations and b+2
	// regressors, so b can be at most (n-4)/2.
	feasible := (n - 4) / 2
	maxLag := cfg.MaxLag
	if maxLag <= 0 {
		maxLag = int(math.Floor(12 * math.Pow(float64(n)/100, 0.25)))
		if maxLag > feasible {
			maxLag = feasible
		}
	} else if maxLag > feasible {
		return nil, fmt.Errorf("adf: lag %d requires at least %d observations, got %d: %w",
			maxLag, 2*maxLag+4, n, ErrInsufficientObs)
	}

	diff := make([]float64, n-1)
	for i := range diff {
		diff[i] = vals[i+1] - vals[i]
	}

	// Candidate comparison on the common (maxLag-trimmed) sample so the
	// criteria are computed over identical observations.
	bestLag, bestVal := 0, math.Inf(1)
	for p := 0; p <= maxLag; p++ {
		m, err := fitADF(vals, diff, p, maxLag)
		if err != nil {
			return nil, fmt.Errorf("adf: lag %d: %w", p, err)
		}
		v := m.AIC()
		if criterion == "bic" {
			v = m.BIC()
		}
		if v < bestVal {
			bestVal = v
			bestLag = p
		}
	}

	// Refit the chosen order on the longest sample it allows.
	m, err := fitADF(vals, diff, bestLag, bestLag)
	if err != nil {
		return nil, fmt.Errorf("adf: lag %d: %w", bestLag, err)
	}
	stat := m.Params[1] / m.StdErrors()[1]

	return &ADFResult{
		Statistic:      stat,
		PValue:         mackinnonPValue(stat),
		Lag:            bestLag,
		NObs:           m.NObs,
		CriticalValues: mackinnonCriticalValues(m.NObs),
	}, nil
}

// fitADF fits the lag-p Dickey-Fuller regression on the sample implied by
// trim: observations t = trim .. len(diff)-1 of the differenced series.
func fitADF(vals, diff []float64, p, trim int) (*regression.FittedModel, error) {
	nobs := len(diff) - trim
	k := p + 2
	y := make([]float64, nobs)
	x := mat.NewDense(nobs, k, nil)
	for i := 0; i < nobs; i++ {
		t := i + trim
		y[i] = diff[t]
		x.Set(i, 0, 1)
		x.Set(i, 1, vals[t]) // lagged level y_{t-1}
		for j := 1; j <= p; j++ {
			x.Set(i, 1+j, diff[t-j])
		}
	}
	return regression.OLS(y, x)
}
