package stats

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// MacKinnon approximations for the Dickey-Fuller tau distribution in the
// constant, no-trend regime with a single variable. The p-value surface is
// MacKinnon (1994); the finite-sample critical values are the MacKinnon
// (2010) response-surface regressions.

const (
	tauStarC = -1.61  // switch point between the two p-value polynomials
	tauMinC  = -18.83 // below this the p-value underflows to 0
	tauMaxC  = 2.74   // above this the p-value saturates at 1
)

var (
	// p = Phi(c0 + c1*tau + c2*tau^2) for tau <= tauStarC.
	tauCSmallP = [3]float64{2.1659, 1.4412, 0.038269}
	// p = Phi(c0 + c1*tau + c2*tau^2 + c3*tau^3) for tau > tauStarC.
	tauCLargeP = [4]float64{1.7339, 0.93202, -0.12745, -0.010368}

	// Critical value = b0 + b1/n + b2/n^2 + b3/n^3 at the 1%, 5%, 10%
	// levels.
	tauC2010 = map[string][4]float64{
		"1%":  {-3.43035, -6.5393, -16.786, -79.433},
		"5%":  {-2.86154, -2.8903, -4.234, -40.040},
		"10%": {-2.56677, -1.5384, -2.809, 0},
	}
)

// mackinnonPValue maps a Dickey-Fuller t-statistic to an asymptotic p-value.
func mackinnonPValue(stat float64) float64 {
	if stat <= tauMinC {
		return 0
	}
	if stat >= tauMaxC {
		return 1
	}
	var z float64
	if stat <= tauStarC {
		z = tauCSmallP[0] + tauCSmallP[1]*stat + tauCSmallP[2]*stat*stat
	} else {
		z = tauCLargeP[0] + stat*(tauCLargeP[1]+stat*(tauCLargeP[2]+stat*tauCLargeP[3]))
	}
	return distuv.UnitNormal.CDF(z)
}

// mackinnonCriticalValues returns the finite-sample 1%, 5%, and 10% critical
// values for a sample of nobs observations.
func mackinnonCriticalValues(nobs int) map[string]float64 {
	n := float64(nobs)
	out := make(map[string]float64, len(tauC2010))
	for level, b := range tauC2010 {
		out[level] = b[0] + b[1]/n + b[2]/(n*n) + b[3]/(n*n*n)
	}
	return out
}
