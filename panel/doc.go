// Package panel merges independently-sourced time series into one
// date-indexed panel with consistent periodicity and column semantics.
//
// Align resamples every input to a common period (month-end, last observation
// per period) and joins the results on the union of period timestamps, so
// per-column stationarity tests see every observation a column has. Derived
// columns (differences, percent changes) are pure functions of existing
// columns and append without mutating. ModelSample then applies intersection
// semantics (rows complete across the model's columns) to produce the
// regression sample, copying the data so the panel can keep evolving without
// invalidating a fitted model.
//
//	p, err := panel.Align([]panel.Input{
//	    {Name: "NDX", Series: ndx},
//	    {Name: "FEDFUNDS", Series: ffr},
//	}, timeseries.FreqMonthEnd)
//
//	p.AddPctChange("ndx", "ndx_ret", 1)
//	p.AddDiff("fedfunds", "d_fedfunds")
//
//	sample, err := p.ModelSample("ndx_ret", "d_fedfunds")
package panel
