package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/goregress/regression"
)

// CUSUMResult represents the recursive-residual CUSUM parameter-stability
// test. Cusum, Lower, and Upper are indexed by recursion step (t = k+1..n)
// for external plotting.
type CUSUMResult struct {
	Statistic float64 // max |scaled cumulative sum| / sqrt(n-k)
	PValue    float64
	Cusum     []float64
	Lower     []float64
	Upper     []float64
}

// cusumCritical holds the Brown-Durbin-Evans boundary coefficients by
// significance level.
var cusumCritical = map[float64]float64{
	0.01: 1.143,
	0.05: 0.948,
	0.10: 0.850,
}

// CUSUM performs the recursive-residual CUSUM stability test. Starting from
// the first k observations it re-estimates the model one observation at a
// time through rank-one updates of (X'X)^-1, accumulates the standardized
// one-step-ahead prediction errors scaled by their standard deviation, and
// compares the cumulative sum against the linear boundary
// +/- a*sqrt(n-k)*(1 + 2(t-k)/(n-k)) at the given significance level.
func CUSUM(m *regression.FittedModel, significance float64) (*CUSUMResult, error) {
	a, ok := cusumCritical[significance]
	if !ok {
		return nil, fmt.Errorf("cusum: unsupported significance %g (supported: 0.01, 0.05, 0.10)", significance)
	}

	n, k := m.NObs, m.NRegressors
	if n <= k+1 {
		return nil, fmt.Errorf("cusum: %w: need more than %d observations, got %d",
			ErrInsufficientObs, k+1, n)
	}

	x := m.Design()
	y := m.Endog()

	// Seed on the first k observations.
	seed := mat.DenseCopyOf(x.Slice(0, k, 0, k))
	var xtx mat.SymDense
	xtx.SymOuterK(1, seed.T())

	var chol mat.Cholesky
	if !chol.Factorize(&xtx) {
		return nil, fmt.Errorf("cusum: initial window: %w", regression.ErrSingularDesign)
	}
	minv := &mat.SymDense{}
	if err := chol.InverseTo(minv); err != nil {
		return nil, fmt.Errorf("cusum: initial window: %w", regression.ErrSingularDesign)
	}

	xty := mat.NewVecDense(k, nil)
	xty.MulVec(seed.T(), mat.NewVecDense(k, y[:k]))
	beta := mat.NewVecDense(k, nil)
	if err := chol.SolveVecTo(beta, xty); err != nil {
		return nil, fmt.Errorf("cusum: initial window: %w", regression.ErrSingularDesign)
	}

	// One-step-ahead recursive residuals w_t for t = k+1..n.
	w := make([]float64, 0, n-k)
	xt := mat.NewVecDense(k, nil)
	mx := mat.NewVecDense(k, nil)
	for t := k; t < n; t++ {
		for j := 0; j < k; j++ {
			xt.SetVec(j, x.At(t, j))
		}
		mx.MulVec(minv, xt)
		f := 1 + mat.Dot(xt, mx)
		e := y[t] - mat.Dot(xt, beta)
		w = append(w, e/math.Sqrt(f))

		// Sherman-Morrison update of (X'X)^-1, then the coefficient step
		// beta += M_t x_t e.
		next := mat.NewSymDense(k, nil)
		next.SymRankOne(minv, -1/f, mx)
		minv = next

		mx.MulVec(minv, xt)
		beta.AddScaledVec(beta, e, mx)
	}

	sigma := stat.StdDev(w, nil)
	if sigma*sigma*float64(len(w)) <= degenerateSSR(m) || math.IsNaN(sigma) {
		return nil, fmt.Errorf("cusum: recursive residuals: %w", ErrDegenerateVariance)
	}

	nk := float64(n - k)
	result := &CUSUMResult{
		Cusum: make([]float64, len(w)),
		Lower: make([]float64, len(w)),
		Upper: make([]float64, len(w)),
	}
	sum, maxAbs := 0.0, 0.0
	for i, wi := range w {
		sum += wi / sigma
		result.Cusum[i] = sum
		bound := a * math.Sqrt(nk) * (1 + 2*float64(i+1)/nk)
		result.Lower[i] = -bound
		result.Upper[i] = bound
		if abs := math.Abs(sum); abs > maxAbs {
			maxAbs = abs
		}
	}

	result.Statistic = maxAbs / math.Sqrt(nk)
	result.PValue = supCrossingPValue(result.Statistic)
	return result, nil
}

// supCrossingPValue approximates the tail probability of the supremum of the
// limiting process by the standard alternating exponential series.
func supCrossingPValue(stat float64) float64 {
	p := 0.0
	for j := 1; j <= 100; j++ {
		term := 2 * math.Exp(-2*float64(j*j)*stat*stat)
		if j%2 == 0 {
			term = -term
		}
		p += term
		if math.Abs(term) < 1e-16 {
			break
		}
	}
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Exceeds reports whether the cumulative sum escapes the boundary at any
// step.
func (r *CUSUMResult) Exceeds() bool {
	for i, c := range r.Cusum {
		if c < r.Lower[i] || c > r.Upper[i] {
			return true
		}
	}
	return false
}
