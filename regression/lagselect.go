package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/goregress/timeseries"
)

// LagSelection reports, independently per information criterion, the
// distributed-lag order that minimized it over the searched grid.
type LagSelection struct {
	MaxLag int
	Lags   map[string]int     // criterion ("aic", "bic", "fpe") -> best lag
	Values map[string]float64 // criterion -> minimized value
}

// SelectLag grid-searches distributed-lag regressions of endog on lags 1..L
// of every exogenous column, for L in [1, maxLag], and picks the lag order
// minimizing AIC, BIC, and FPE independently. Ties keep the smallest lag.
// The series must share one index (columns of the same panel). The output is
// advisory: SelectLag does not refit or return the chosen model.
func SelectLag(endog *timeseries.Series, exog []*timeseries.Series, maxLag int) (*LagSelection, error) {
	if maxLag < 1 {
		return nil, fmt.Errorf("select lag: maxLag must be >= 1, got %d", maxLag)
	}
	if endog == nil || len(exog) == 0 {
		return nil, fmt.Errorf("select lag: endogenous and exogenous series are required")
	}
	n := endog.Len()
	for _, s := range exog {
		if s.Len() != n {
			return nil, fmt.Errorf("select lag: series %q has %d rows, endogenous has %d", s.Name, s.Len(), n)
		}
	}

	sel := &LagSelection{
		MaxLag: maxLag,
		Lags:   make(map[string]int, 3),
		Values: make(map[string]float64, 3),
	}
	record := func(criterion string, lag int, value float64) {
		best, seen := sel.Values[criterion]
		if !seen || value < best {
			sel.Values[criterion] = value
			sel.Lags[criterion] = lag
		}
	}

	for lag := 1; lag <= maxLag; lag++ {
		y, x, err := lagDesign(endog, exog, lag)
		if err != nil {
			return nil, fmt.Errorf("select lag %d: %w", lag, err)
		}
		m, err := OLS(y, x)
		if err != nil {
			return nil, fmt.Errorf("select lag %d: %w", lag, err)
		}
		record("aic", lag, m.AIC())
		record("bic", lag, m.BIC())
		if fpe, err := m.FPE(); err == nil {
			record("fpe", lag, fpe)
		}
	}
	return sel, nil
}

// lagDesign builds the regression sample for one candidate lag order: rows
// where the endogenous value and every shifted exogenous value are present,
// with design columns [1, exog_1..exog_m shifted by 1, ..., shifted by lag].
func lagDesign(endog *timeseries.Series, exog []*timeseries.Series, lag int) ([]float64, *mat.Dense, error) {
	n := endog.Len()
	m := len(exog)

	var rows []int
	for t := lag; t < n; t++ {
		if math.IsNaN(endog.Values[t]) {
			continue
		}
		ok := true
		for _, s := range exog {
			for i := 1; i <= lag; i++ {
				if math.IsNaN(s.Values[t-i]) {
					ok = false
					break
				}
			}
			if !ok {
				break
			}
		}
		if ok {
			rows = append(rows, t)
		}
	}

	k := 1 + lag*m
	if len(rows) <= k {
		return nil, nil, fmt.Errorf("need more than %d complete rows, got %d", k, len(rows))
	}

	y := make([]float64, len(rows))
	x := mat.NewDense(len(rows), k, nil)
	for r, t := range rows {
		y[r] = endog.Values[t]
		x.Set(r, 0, 1)
		col := 1
		for i := 1; i <= lag; i++ {
			for _, s := range exog {
				x.Set(r, col, s.Values[t-i])
				col++
			}
		}
	}
	return y, x, nil
}
