package regression

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/goregress/panel"
)

var (
	// ErrSingularDesign is returned when X'X is not invertible within
	// numerical tolerance.
	ErrSingularDesign = errors.New("singular design matrix")
	// ErrFPEUndefined is returned when the Final Prediction Error is not
	// defined for the model's dimensions (n <= k).
	ErrFPEUndefined = errors.New("fpe undefined: no residual degrees of freedom")
)

// condTol is the condition-number threshold beyond which X'X is treated as
// numerically singular.
const condTol = 1e14

// FittedModel holds an estimated linear model. It owns copies of the data it
// was computed from, so later mutation of the source panel cannot invalidate
// a previously produced report.
type FittedModel struct {
	NObs        int       // number of observations n
	NRegressors int       // number of regressors k, including the intercept
	Params      []float64 // coefficient vector, intercept first
	Residuals   []float64 // length n
	SSR         float64   // sum of squared residuals
	CovType     string    // "nonrobust" or "hac"

	cov    *mat.SymDense // k x k parameter covariance
	xtxInv *mat.SymDense // (X'X)^-1, retained for covariance work
	x      *mat.Dense    // owned copy of the design matrix
	y      []float64     // owned copy of the endogenous vector
}

// OLS fits ordinary least squares coefficients beta = (X'X)^-1 X'y via a
// Cholesky factorization of X'X. The design matrix must include an explicit
// intercept column, and y and x must already be aligned on identical,
// complete row indices: OLS neither drops nor imputes.
func OLS(y []float64, x *mat.Dense) (*FittedModel, error) {
	if x == nil {
		return nil, fmt.Errorf("ols: nil design matrix")
	}
	n, k := x.Dims()
	if n != len(y) {
		return nil, fmt.Errorf("ols: %d observations in y but %d design rows", len(y), n)
	}
	if k < 1 {
		return nil, fmt.Errorf("ols: design matrix has no columns")
	}
	if n <= k {
		return nil, fmt.Errorf("ols: requires more than %d observations for %d regressors, got %d", k, k, n)
	}
	for _, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("ols: endogenous vector contains non-finite values")
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			if v := x.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("ols: design matrix contains non-finite values")
			}
		}
	}

	xc := mat.DenseCopyOf(x)
	yc := make([]float64, n)
	copy(yc, y)

	var xtx mat.SymDense
	xtx.SymOuterK(1, xc.T())

	var chol mat.Cholesky
	if !chol.Factorize(&xtx) {
		return nil, ErrSingularDesign
	}
	if chol.Cond() > condTol {
		return nil, ErrSingularDesign
	}

	yVec := mat.NewVecDense(n, yc)
	var xty mat.VecDense
	xty.MulVec(xc.T(), yVec)

	var beta mat.VecDense
	if err := chol.SolveVecTo(&beta, &xty); err != nil {
		return nil, ErrSingularDesign
	}

	var xtxInv mat.SymDense
	if err := chol.InverseTo(&xtxInv); err != nil {
		return nil, ErrSingularDesign
	}

	params := make([]float64, k)
	for i := range params {
		params[i] = beta.AtVec(i)
	}

	var fitted mat.VecDense
	fitted.MulVec(xc, &beta)

	residuals := make([]float64, n)
	ssr := 0.0
	for i := 0; i < n; i++ {
		residuals[i] = yc[i] - fitted.AtVec(i)
		ssr += residuals[i] * residuals[i]
	}

	// Classical covariance sigma^2 (X'X)^-1; ApplyHAC replaces it.
	sigma2 := ssr / float64(n-k)
	var cov mat.SymDense
	cov.ScaleSym(sigma2, &xtxInv)

	return &FittedModel{
		NObs:        n,
		NRegressors: k,
		Params:      params,
		Residuals:   residuals,
		SSR:         ssr,
		CovType:     "nonrobust",
		cov:         &cov,
		xtxInv:      &xtxInv,
		x:           xc,
		y:           yc,
	}, nil
}

// Design builds a design matrix from a panel sample: an intercept column
// followed by the named columns in order.
func Design(s *panel.Sample, cols ...string) (*mat.Dense, error) {
	if s == nil || s.Len() == 0 {
		return nil, fmt.Errorf("design: empty sample")
	}
	n := s.Len()
	x := mat.NewDense(n, 1+len(cols), nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
	}
	for j, name := range cols {
		vals := s.Column(name)
		if vals == nil {
			return nil, fmt.Errorf("design: sample has no column %q", name)
		}
		x.SetCol(1+j, vals)
	}
	return x, nil
}

// Cov returns a copy of the parameter covariance matrix.
func (m *FittedModel) Cov() *mat.SymDense {
	k := m.NRegressors
	out := mat.NewSymDense(k, nil)
	out.CopySym(m.cov)
	return out
}

// Design returns a copy of the model's design matrix.
func (m *FittedModel) Design() *mat.Dense {
	return mat.DenseCopyOf(m.x)
}

// Endog returns a copy of the model's endogenous vector.
func (m *FittedModel) Endog() []float64 {
	out := make([]float64, len(m.y))
	copy(out, m.y)
	return out
}

// StdErrors returns the parameter standard errors: square roots of the
// covariance diagonal (HAC-adjusted after ApplyHAC).
func (m *FittedModel) StdErrors() []float64 {
	out := make([]float64, m.NRegressors)
	for i := range out {
		out[i] = math.Sqrt(m.cov.At(i, i))
	}
	return out
}

// TStats returns the parameter t-statistics against zero.
func (m *FittedModel) TStats() []float64 {
	se := m.StdErrors()
	out := make([]float64, m.NRegressors)
	for i := range out {
		out[i] = m.Params[i] / se[i]
	}
	return out
}

// ConfInt returns two-sided (1-alpha) confidence intervals per parameter,
// using the Student-t critical value at the residual degrees of freedom.
func (m *FittedModel) ConfInt(alpha float64) ([][2]float64, error) {
	if alpha <= 0 || alpha >= 1 {
		return nil, fmt.Errorf("confint: alpha must be in (0, 1), got %g", alpha)
	}
	df := float64(m.NObs - m.NRegressors)
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	crit := t.Quantile(1 - alpha/2)

	se := m.StdErrors()
	out := make([][2]float64, m.NRegressors)
	for i := range out {
		out[i][0] = m.Params[i] - crit*se[i]
		out[i][1] = m.Params[i] + crit*se[i]
	}
	return out, nil
}

// LogLikelihood returns the Gaussian log-likelihood at the fitted parameters.
func (m *FittedModel) LogLikelihood() float64 {
	n := float64(m.NObs)
	return -n / 2 * (math.Log(2*math.Pi) + math.Log(m.SSR/n) + 1)
}

// AIC returns the Akaike information criterion.
func (m *FittedModel) AIC() float64 {
	return -2*m.LogLikelihood() + 2*float64(m.NRegressors)
}

// BIC returns the Bayesian (Schwarz) information criterion.
func (m *FittedModel) BIC() float64 {
	return -2*m.LogLikelihood() + math.Log(float64(m.NObs))*float64(m.NRegressors)
}

// FPE returns the Final Prediction Error, SSR/n * (n+k)/(n-k). It is
// undefined when n <= k.
func (m *FittedModel) FPE() (float64, error) {
	n, k := float64(m.NObs), float64(m.NRegressors)
	if n <= k {
		return 0, ErrFPEUndefined
	}
	return m.SSR / n * (n + k) / (n - k), nil
}
