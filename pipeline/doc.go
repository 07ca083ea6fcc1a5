// Package pipeline wires the full macro-regression workflow: panel
// alignment, unit-root screening, manifest-driven transforms, advisory lag
// selection, a Newey-West fit, and the diagnostic battery, in one call.
//
//	cfg := pipeline.DefaultConfig()
//	res, err := pipeline.Run([]pipeline.SeriesInput{
//	    {Spec: pipeline.SeriesSpec{Name: "NDX", Transform: "pct_change", As: "ndx_ret", Endogenous: true}, Series: ndx},
//	    {Spec: pipeline.SeriesSpec{Name: "FEDFUNDS"}, Series: ffr},
//	    {Spec: pipeline.SeriesSpec{Name: "CPI", Transform: "pct_change", Scale: 100, As: "inflation"}, Series: cpi},
//	}, cfg, slog.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pipeline.WriteReport(os.Stdout, res)
//
// Configuration resolves in three layers: DefaultConfig, GOREGRESS_*
// environment variables (FromEnv), and explicit field assignment by the
// caller. Per-column ADF failures degrade to entries in Result.ADFErrors so
// one short series does not abort the run; a panel or model sample that
// cannot be built is fatal.
package pipeline
