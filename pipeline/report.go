package pipeline

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/sartorproj/goregress/stats"
)

// WriteReport renders the run result as a plain-text report: the unit-root
// tests, the advisory lag orders, the coefficient table with robust standard
// errors, and the diagnostic battery.
func WriteReport(w io.Writer, r *Result) error {
	if r == nil || r.Model == nil {
		return fmt.Errorf("report: empty result")
	}

	fmt.Fprintf(w, "Regression of %s on %s\n", r.EndogName, joinNames(r.ExogNames))
	fmt.Fprintf(w, "Observations: %d    Covariance: %s\n\n", r.Model.NObs, r.Model.CovType)

	writeADFSection(w, "Unit-root tests (levels)", r.ADFLevels)
	writeADFSection(w, "Unit-root tests (model columns)", r.ADFTransformed)
	if len(r.ADFErrors) > 0 {
		keys := make([]string, 0, len(r.ADFErrors))
		for k := range r.ADFErrors {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  adf %s: %v\n", k, r.ADFErrors[k])
		}
		fmt.Fprintln(w)
	}

	if sel := r.LagSelection; sel != nil {
		fmt.Fprintf(w, "Lag selection (searched 1..%d): AIC=%d  BIC=%d  FPE=%d\n\n",
			sel.MaxLag, sel.Lags["aic"], sel.Lags["bic"], sel.Lags["fpe"])
	}

	if err := writeCoefTable(w, r); err != nil {
		return err
	}

	fmt.Fprintf(w, "SSR: %.6g    AIC: %.4f    BIC: %.4f",
		r.Model.SSR, r.Model.AIC(), r.Model.BIC())
	if fpe, err := r.Model.FPE(); err == nil {
		fmt.Fprintf(w, "    FPE: %.6g", fpe)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	writeDiagnostics(w, r.Diagnostics)
	return nil
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "(intercept only)"
	}
	out := names[0]
	for _, n := range names[1:] {
		out += ", " + n
	}
	return out
}

func writeADFSection(w io.Writer, title string, results map[string]*stats.ADFResult) {
	if len(results) == 0 {
		return
	}
	cols := make([]string, 0, len(results))
	for c := range results {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	fmt.Fprintln(w, title)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  column\tstatistic\tp-value\tlag\tnobs\t5% crit")
	for _, c := range cols {
		r := results[c]
		fmt.Fprintf(tw, "  %s\t%.4f\t%.4f\t%d\t%d\t%.4f\n",
			c, r.Statistic, r.PValue, r.Lag, r.NObs, r.CriticalValues["5%"])
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func writeCoefTable(w io.Writer, r *Result) error {
	names := append([]string{"const"}, r.ExogNames...)
	if len(names) != r.Model.NRegressors {
		return fmt.Errorf("report: %d coefficient names for %d regressors",
			len(names), r.Model.NRegressors)
	}
	se := r.Model.StdErrors()
	ts := r.Model.TStats()
	level := 100 * (1 - r.Significance)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\tcoef\tstd err\tt\t[%.1f%% conf int]\t\n", level)
	for i, name := range names {
		lo, hi := 0.0, 0.0
		if i < len(r.ConfInts) {
			lo, hi = r.ConfInts[i][0], r.ConfInts[i][1]
		}
		fmt.Fprintf(tw, "%s\t%.6f\t%.6f\t%.4f\t%.6f\t%.6f\t\n",
			name, r.Model.Params[i], se[i], ts[i], lo, hi)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

func writeDiagnostics(w io.Writer, b *stats.BatteryResult) {
	if b == nil {
		return
	}
	fmt.Fprintln(w, "Diagnostics")
	fmt.Fprintf(w, "  Durbin-Watson:    %.4f\n", b.DurbinWatson)
	if b.BreuschGodfrey != nil {
		fmt.Fprintf(w, "  Breusch-Godfrey:  LM=%.4f  p=%.4f  (df=%d)\n",
			b.BreuschGodfrey.Statistic, b.BreuschGodfrey.PValue, b.BreuschGodfrey.DF)
	}
	if b.White != nil {
		fmt.Fprintf(w, "  White:            LM=%.4f  p=%.4f  (df=%d)\n",
			b.White.Statistic, b.White.PValue, b.White.DF)
	}
	if b.JarqueBera != nil {
		fmt.Fprintf(w, "  Jarque-Bera:      JB=%.4f  p=%.4f  skew=%.4f  kurt=%.4f\n",
			b.JarqueBera.Statistic, b.JarqueBera.PValue, b.JarqueBera.Skewness, b.JarqueBera.Kurtosis)
	}
	if b.CUSUM != nil {
		verdict := "stable"
		if b.CUSUM.Exceeds() {
			verdict = "boundary crossed"
		}
		fmt.Fprintf(w, "  CUSUM:            stat=%.4f  p=%.4f  (%s)\n",
			b.CUSUM.Statistic, b.CUSUM.PValue, verdict)
	}
	if len(b.Errors) > 0 {
		keys := make([]string, 0, len(b.Errors))
		for k := range b.Errors {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s: not computed: %v\n", k, b.Errors[k])
		}
	}
}
