// Package goregress provides single-equation macro-factor regression analysis
// for financial time series.
//
// GoRegress takes a small panel of monthly financial and macroeconomic series,
// establishes their stationarity properties, fits a linear model of equity
// returns on macro factors with a Newey-West HAC covariance estimator, and runs
// a battery of diagnostic tests on the fitted model. The goal is a statistically
// defensible single-equation regression report.
//
// # Pipeline
//
// The typical workflow mirrors the packages:
//
//	raw series -> panel.Align -> stats.ADF (per column, levels)
//	           -> panel transforms (Diff / PctChange)
//	           -> stats.ADF (per column, transformed)
//	           -> regression.SelectLag (advisory)
//	           -> regression.FitHAC
//	           -> stats.RunBattery
//	           -> report
//
// # Quick Start
//
// Align series into a panel and estimate:
//
//	p, _ := panel.Align([]panel.Input{
//	    {Name: "NDX_RET", Series: ndx},
//	    {Name: "FFR", Series: ffr},
//	}, timeseries.FreqMonthEnd)
//	p.AddDiff("ffr", "d_ffr")
//
//	sample, _ := p.ModelSample("ndx_ret", "d_ffr")
//	x, _ := regression.Design(sample, "d_ffr")
//	model, _ := regression.FitHAC(sample.Column("ndx_ret"), x, 1)
//
//	battery := stats.RunBattery(model, 0.05)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - timeseries: date-indexed series, transforms, resampling, CSV loading
//   - panel: multi-series alignment and derived columns
//   - regression: OLS estimation, Newey-West HAC covariance, lag selection
//   - stats: ADF stationarity test and the model diagnostic battery
//   - pipeline: end-to-end orchestration and report rendering
//
// # References
//
//   - Newey, W.K., & West, K.D. (1987). A Simple, Positive Semi-Definite,
//     Heteroskedasticity and Autocorrelation Consistent Covariance Matrix
//   - MacKinnon, J.G. (1994, 2010). Critical Values for Cointegration Tests
//   - Brown, R.L., Durbin, J., & Evans, J.M. (1975). Techniques for Testing
//     the Constancy of Regression Relationships over Time
package goregress
