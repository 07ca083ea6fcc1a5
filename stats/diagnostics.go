package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/goregress/regression"
)

// LMTestResult represents a Lagrange Multiplier test built on the R-squared
// of an auxiliary regression.
type LMTestResult struct {
	Statistic float64
	PValue    float64
	DF        int
}

// JarqueBeraResult represents the Jarque-Bera normality test.
type JarqueBeraResult struct {
	Statistic float64
	PValue    float64
	Skewness  float64
	Kurtosis  float64
}

// DurbinWatson calculates the Durbin-Watson statistic for first-order
// autocorrelation of the model residuals. Values near 2 indicate no
// autocorrelation; the caller interprets against the [0, 4] range. A model
// with (numerically) zero residual variance reports 2 rather than dividing
// by zero.
func DurbinWatson(m *regression.FittedModel) float64 {
	resid := m.Residuals
	numerator := 0.0
	for i := 1; i < len(resid); i++ {
		d := resid[i] - resid[i-1]
		numerator += d * d
	}
	denominator := 0.0
	for _, r := range resid {
		denominator += r * r
	}
	if denominator <= degenerateSSR(m) {
		return 2
	}
	return numerator / denominator
}

// degenerateSSR returns the threshold below which a residual sum of squares
// is indistinguishable from rounding noise on the model's scale.
func degenerateSSR(m *regression.FittedModel) float64 {
	scale := 0.0
	for _, v := range m.Endog() {
		scale += v * v
	}
	return 1e-20 * scale
}

// BreuschGodfrey performs the Breusch-Godfrey LM test of order nlags for
// serial correlation: the residuals are regressed on the original regressors
// plus nlags zero-padded lags of themselves, and n*R^2 of that auxiliary
// regression is asymptotically chi-squared with nlags degrees of freedom.
func BreuschGodfrey(m *regression.FittedModel, nlags int) (*LMTestResult, error) {
	if nlags < 1 {
		return nil, fmt.Errorf("breusch-godfrey: nlags must be >= 1, got %d", nlags)
	}
	n, k := m.NObs, m.NRegressors
	if n <= k+nlags {
		return nil, fmt.Errorf("breusch-godfrey: %w: need more than %d observations, got %d",
			ErrInsufficientObs, k+nlags, n)
	}

	resid := m.Residuals
	x := m.Design()
	aux := mat.NewDense(n, k+nlags, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			aux.Set(i, j, x.At(i, j))
		}
		for l := 1; l <= nlags; l++ {
			if i >= l {
				aux.Set(i, k+l-1, resid[i-l])
			}
		}
	}

	r2, err := auxRSquared(resid, aux)
	if err != nil {
		return nil, fmt.Errorf("breusch-godfrey: %w", err)
	}
	lm := float64(n) * r2
	chi := distuv.ChiSquared{K: float64(nlags)}
	return &LMTestResult{Statistic: lm, PValue: chi.Survival(lm), DF: nlags}, nil
}

// White performs White's LM test for heteroskedasticity: the squared
// residuals are regressed on the original regressors and all their pairwise
// products (including squares), and n*R^2 is asymptotically chi-squared with
// degrees of freedom equal to the number of auxiliary regressors excluding
// the intercept.
func White(m *regression.FittedModel) (*LMTestResult, error) {
	n := m.NObs
	x := m.Design()
	_, k := x.Dims()

	// Auxiliary columns are built from the non-constant regressors only;
	// the intercept is re-added explicitly.
	var base [][]float64
	for j := 0; j < k; j++ {
		col := mat.Col(nil, j, x)
		if isConstant(col) {
			continue
		}
		base = append(base, col)
	}
	if len(base) == 0 {
		return nil, fmt.Errorf("white: design has no non-constant regressors")
	}

	cols := make([][]float64, 0, 1+len(base)+len(base)*(len(base)+1)/2)
	intercept := make([]float64, n)
	for i := range intercept {
		intercept[i] = 1
	}
	cols = append(cols, intercept)
	cols = append(cols, base...)
	for i := 0; i < len(base); i++ {
		for j := i; j < len(base); j++ {
			prod := make([]float64, n)
			for t := 0; t < n; t++ {
				prod[t] = base[i][t] * base[j][t]
			}
			cols = append(cols, prod)
		}
	}

	df := len(cols) - 1
	if n <= len(cols) {
		return nil, fmt.Errorf("white: %w: need more than %d observations, got %d",
			ErrInsufficientObs, len(cols), n)
	}

	aux := mat.NewDense(n, len(cols), nil)
	for j, col := range cols {
		aux.SetCol(j, col)
	}

	sq := make([]float64, n)
	for i, r := range m.Residuals {
		sq[i] = r * r
	}

	r2, err := auxRSquared(sq, aux)
	if err != nil {
		return nil, fmt.Errorf("white: %w", err)
	}
	lm := float64(n) * r2
	chi := distuv.ChiSquared{K: float64(df)}
	return &LMTestResult{Statistic: lm, PValue: chi.Survival(lm), DF: df}, nil
}

// JarqueBera performs the Jarque-Bera normality test on the model residuals:
// JB = n/6 * (S^2 + (K-3)^2/4), asymptotically chi-squared with two degrees
// of freedom.
func JarqueBera(m *regression.FittedModel) (*JarqueBeraResult, error) {
	resid := m.Residuals
	n := float64(len(resid))

	m2 := stat.Moment(2, resid, nil)
	if m2 <= degenerateSSR(m)/n || math.IsNaN(m2) {
		return nil, fmt.Errorf("jarque-bera: %w", ErrDegenerateVariance)
	}
	skew := stat.Moment(3, resid, nil) / math.Pow(m2, 1.5)
	kurt := stat.Moment(4, resid, nil) / (m2 * m2)

	jb := n / 6 * (skew*skew + (kurt-3)*(kurt-3)/4)
	chi := distuv.ChiSquared{K: 2}
	return &JarqueBeraResult{
		Statistic: jb,
		PValue:    chi.Survival(jb),
		Skewness:  skew,
		Kurtosis:  kurt,
	}, nil
}

// auxRSquared fits an auxiliary OLS regression and returns its centered
// R-squared. A dependent variable with zero variation yields 0.
func auxRSquared(y []float64, x *mat.Dense) (float64, error) {
	mean := stat.Mean(y, nil)
	tss := 0.0
	for _, v := range y {
		d := v - mean
		tss += d * d
	}
	if tss == 0 {
		return 0, nil
	}
	m, err := regression.OLS(y, x)
	if err != nil {
		return 0, err
	}
	return 1 - m.SSR/tss, nil
}

// isConstant reports whether every entry of col equals the first.
func isConstant(col []float64) bool {
	for _, v := range col[1:] {
		if v != col[0] {
			return false
		}
	}
	return true
}
