package regression

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ApplyHAC replaces the model's parameter covariance with the Newey-West
// heteroskedasticity- and autocorrelation-consistent estimator
//
//	Cov(beta) = (X'X)^-1 S (X'X)^-1
//	S = Gamma_0 + sum_{l=1..L} w_l (Gamma_l + Gamma_l')
//
// where Gamma_l are lagged cross-products of the score contributions x_t*e_t
// and w_l = 1 - l/(L+1) is the Bartlett kernel weight. maxlags = 0 reduces to
// the White (HC0) estimator. Inputs are not mutated beyond the covariance.
func (m *FittedModel) ApplyHAC(maxlags int) error {
	if maxlags < 0 {
		return fmt.Errorf("hac: maxlags must be >= 0, got %d", maxlags)
	}
	n, k := m.NObs, m.NRegressors
	if maxlags >= n {
		return fmt.Errorf("hac: maxlags %d must be smaller than the %d observations", maxlags, n)
	}

	// Score contributions u_t = x_t * e_t, one row per observation.
	scores := mat.NewDense(n, k, nil)
	for t := 0; t < n; t++ {
		for j := 0; j < k; j++ {
			scores.Set(t, j, m.x.At(t, j)*m.Residuals[t])
		}
	}

	s := mat.NewDense(k, k, nil)
	for l := 0; l <= maxlags; l++ {
		gamma := mat.NewDense(k, k, nil)
		for t := l; t < n; t++ {
			ut := scores.RawRowView(t)
			utl := scores.RawRowView(t - l)
			for i := 0; i < k; i++ {
				for j := 0; j < k; j++ {
					gamma.Set(i, j, gamma.At(i, j)+ut[i]*utl[j])
				}
			}
		}
		if l == 0 {
			s.Add(s, gamma)
			continue
		}
		w := 1 - float64(l)/float64(maxlags+1)
		var sym mat.Dense
		sym.Add(gamma, gamma.T())
		sym.Scale(w, &sym)
		s.Add(s, &sym)
	}

	// Sandwich: (X'X)^-1 S (X'X)^-1.
	var left, cov mat.Dense
	left.Mul(m.xtxInv, s)
	cov.Mul(&left, m.xtxInv)

	out := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			out.SetSym(i, j, (cov.At(i, j)+cov.At(j, i))/2)
		}
	}
	m.cov = out
	m.CovType = "hac"
	return nil
}

// FitHAC fits OLS and applies the Newey-West covariance at the given maximum
// lag in one call.
func FitHAC(y []float64, x *mat.Dense, maxlags int) (*FittedModel, error) {
	m, err := OLS(y, x)
	if err != nil {
		return nil, err
	}
	if err := m.ApplyHAC(maxlags); err != nil {
		return nil, err
	}
	return m, nil
}
