// Package regression provides OLS estimation with robust covariance for
// macro-factor models.
//
// OLS fits by Cholesky factorization of X'X and reports a singular-design
// error when the factorization fails or is ill-conditioned. The fitted model
// owns copies of its inputs and exposes coefficients, residuals, SSR,
// information criteria, and Student-t confidence intervals.
//
// ApplyHAC replaces the classical covariance with the Bartlett-kernel
// Newey-West estimator, making standard errors robust to heteroskedasticity
// and serial correlation:
//
//	model, err := regression.FitHAC(y, x, 1)
//	se := model.StdErrors() // HAC standard errors
//
// SelectLag grid-searches distributed-lag specifications and reports the lag
// order minimizing AIC, BIC, and FPE, as advisory input to the final
// estimation.
package regression
