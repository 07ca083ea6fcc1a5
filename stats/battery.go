package stats

import (
	"github.com/sartorproj/goregress/regression"
)

// BatteryResult aggregates the diagnostic battery for one fitted model. The
// tests are independent: a test that cannot be computed records its error
// under its name and leaves the others untouched.
type BatteryResult struct {
	DurbinWatson   float64
	BreuschGodfrey *LMTestResult
	White          *LMTestResult
	JarqueBera     *JarqueBeraResult
	CUSUM          *CUSUMResult
	Errors         map[string]error
}

// RunBattery computes all five diagnostics on the fitted model: Durbin-Watson,
// first-order Breusch-Godfrey, White, Jarque-Bera, and the recursive-residual
// CUSUM stability test at the given significance level. The model is not
// mutated and no test result depends on another.
func RunBattery(m *regression.FittedModel, significance float64) *BatteryResult {
	out := &BatteryResult{Errors: make(map[string]error)}

	out.DurbinWatson = DurbinWatson(m)

	var err error
	if out.BreuschGodfrey, err = BreuschGodfrey(m, 1); err != nil {
		out.Errors["breusch_godfrey"] = err
	}
	if out.White, err = White(m); err != nil {
		out.Errors["white"] = err
	}
	if out.JarqueBera, err = JarqueBera(m); err != nil {
		out.Errors["jarque_bera"] = err
	}
	if out.CUSUM, err = CUSUM(m, significance); err != nil {
		out.Errors["cusum"] = err
	}
	return out
}
