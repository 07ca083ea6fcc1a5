package regression

import (
	"math"
	"math/rand"
	"testing"
)

func TestHACZeroLagNearClassical(t *testing.T) {
	// With independent homoskedastic errors and maxlags=0 the Newey-West
	// estimator reduces to HC0, which converges to the classical OLS
	// covariance as n grows.
	rng := rand.New(rand.NewSource(21))
	n := 2000
	x1 := make([]float64, n)
	y := make([]float64, n)
	for i := range y {
		x1[i] = rng.NormFloat64()
		y[i] = 1 + 0.5*x1[i] + rng.NormFloat64()
	}

	m, err := OLS(y, design(x1))
	if err != nil {
		t.Fatal(err)
	}
	classical := m.StdErrors()

	if err := m.ApplyHAC(0); err != nil {
		t.Fatalf("ApplyHAC: %v", err)
	}
	if m.CovType != "hac" {
		t.Errorf("CovType = %q, expected hac", m.CovType)
	}
	robust := m.StdErrors()

	for i := range classical {
		ratio := robust[i] / classical[i]
		if ratio < 0.9 || ratio > 1.1 {
			t.Errorf("se[%d]: hac/classical = %f, expected ~1", i, ratio)
		}
		t.Logf("se[%d]: classical=%.6f hac0=%.6f", i, classical[i], robust[i])
	}
}

func TestHACInflatesUnderAutocorrelation(t *testing.T) {
	// Persistent regressor with AR(1) errors: the classical covariance
	// understates uncertainty and the HAC covariance should exceed it.
	rng := rand.New(rand.NewSource(5))
	n := 500
	x1 := make([]float64, n)
	eps := make([]float64, n)
	y := make([]float64, n)
	for i := range y {
		if i == 0 {
			x1[i] = rng.NormFloat64()
			eps[i] = rng.NormFloat64()
		} else {
			x1[i] = 0.9*x1[i-1] + rng.NormFloat64()
			eps[i] = 0.7*eps[i-1] + rng.NormFloat64()
		}
		y[i] = 1 + 0.5*x1[i] + eps[i]
	}

	m, err := OLS(y, design(x1))
	if err != nil {
		t.Fatal(err)
	}
	classical := m.StdErrors()

	if err := m.ApplyHAC(6); err != nil {
		t.Fatal(err)
	}
	robust := m.StdErrors()

	if robust[1] <= classical[1] {
		t.Errorf("slope HAC se %f should exceed classical %f under autocorrelation",
			robust[1], classical[1])
	}
	t.Logf("slope se: classical=%.6f hac=%.6f", classical[1], robust[1])
}

func TestHACDoesNotChangeParams(t *testing.T) {
	y := []float64{1.0, 2.1, 2.9, 4.2, 4.8, 6.1, 7.0, 8.2}
	x := design([]float64{1, 2, 3, 4, 5, 6, 7, 8})

	m, err := OLS(y, x)
	if err != nil {
		t.Fatal(err)
	}
	before := make([]float64, len(m.Params))
	copy(before, m.Params)
	ssr := m.SSR

	if err := m.ApplyHAC(1); err != nil {
		t.Fatal(err)
	}
	for i := range before {
		if m.Params[i] != before[i] {
			t.Error("ApplyHAC must not change coefficients")
		}
	}
	if m.SSR != ssr {
		t.Error("ApplyHAC must not change SSR")
	}
}

func TestHACValidation(t *testing.T) {
	y := []float64{1, 2, 3, 4, 5}
	m, err := OLS(y, design([]float64{0.3, 0.1, 0.9, 0.2, 0.7}))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.ApplyHAC(-1); err == nil {
		t.Error("expected error for negative maxlags")
	}
	if err := m.ApplyHAC(5); err == nil {
		t.Error("expected error for maxlags >= n")
	}

	if _, err := FitHAC(y, design([]float64{0.3, 0.1, 0.9, 0.2, 0.7}), 1); err != nil {
		t.Errorf("FitHAC: %v", err)
	}
}

func TestHACCovarianceSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	n := 50
	x1 := make([]float64, n)
	x2 := make([]float64, n)
	y := make([]float64, n)
	for i := range y {
		x1[i] = rng.NormFloat64()
		x2[i] = rng.NormFloat64()
		y[i] = 0.3 + x1[i] - x2[i] + rng.NormFloat64()
	}
	m, err := FitHAC(y, design(x1, x2), 2)
	if err != nil {
		t.Fatal(err)
	}
	cov := m.Cov()
	for i := 0; i < 3; i++ {
		if cov.At(i, i) <= 0 {
			t.Errorf("cov diagonal %d = %f, expected positive", i, cov.At(i, i))
		}
		for j := 0; j < 3; j++ {
			if math.Abs(cov.At(i, j)-cov.At(j, i)) > 1e-15 {
				t.Errorf("covariance not symmetric at (%d,%d)", i, j)
			}
		}
	}
}
