// Package timeseries provides date-indexed time series data structures.
//
// The Series type pairs strictly increasing timestamps with float64 values.
// Missing observations are represented as NaN, so transforms can preserve the
// index: Diff and PctChange map the first period to NaN rather than shortening
// the series, matching how a panel of independently-sourced series is later
// aligned and trimmed.
//
// # Creating a Series
//
//	s, err := timeseries.New("ffr", timestamps, values)
//
//	// Month-end stamped series from a start month
//	s, err := timeseries.NewMonthly("cpi", start, values)
//
// # Transformations
//
//	diff := s.Diff()          // first difference, NaN head
//	ret := s.PctChange()      // v[t]/v[t-1] - 1, NaN head
//	lagged := s.Lag(2)        // shift forward two periods
//	scaled := s.Scale(100)
//
// # Resampling
//
// Irregular daily or weekly data resamples to month-end by taking the last
// non-missing observation in each calendar month:
//
//	monthly, err := s.ResampleLast(timeseries.FreqMonthEnd)
//
// # Loading from CSV
//
//	s, err := timeseries.LoadCSV("ffr.csv", &timeseries.CSVOptions{
//	    Name:        "ffr",
//	    DateColumn:  "date",
//	    ValueColumn: "value",
//	})
package timeseries
