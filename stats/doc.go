// Package stats provides stationarity testing and regression diagnostics.
//
// # Stationarity
//
// The Augmented Dickey-Fuller test with automatic (AIC-minimizing) lag
// selection, constant and no trend:
//
//	// H0: series has a unit root (non-stationary)
//	res, err := stats.ADF(series, nil)
//	fmt.Printf("ADF: stat=%.4f p=%.4f lag=%d crit(5%%)=%.4f\n",
//	    res.Statistic, res.PValue, res.Lag, res.CriticalValues["5%"])
//
// P-values follow the MacKinnon (1994) approximation of the Dickey-Fuller
// distribution; critical values follow MacKinnon (2010).
//
// # Diagnostic battery
//
// Five independent checks on a fitted model:
//
//	battery := stats.RunBattery(model, 0.05)
//	// battery.DurbinWatson      first-order residual autocorrelation, ~2 is clean
//	// battery.BreuschGodfrey    LM test for serial correlation, chi2(1)
//	// battery.White             LM test for heteroskedasticity
//	// battery.JarqueBera        residual normality, chi2(2)
//	// battery.CUSUM             recursive-residual parameter stability
//
// Each test can also be run on its own (DurbinWatson, BreuschGodfrey, White,
// JarqueBera, CUSUM). A test whose preconditions fail records its error in
// the battery without suppressing the others.
package stats
