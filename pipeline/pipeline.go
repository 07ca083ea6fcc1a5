package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sartorproj/goregress/panel"
	"github.com/sartorproj/goregress/regression"
	"github.com/sartorproj/goregress/stats"
	"github.com/sartorproj/goregress/timeseries"
)

var (
	// ErrInvalidDate is returned for window bounds that do not parse as
	// YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
	// ErrWindowOrder is returned when the window start is not strictly
	// before its end.
	ErrWindowOrder = errors.New("window start must precede end")
	// ErrNoEndogenous is returned when the manifest selects no, or more
	// than one, dependent variable.
	ErrNoEndogenous = errors.New("exactly one endogenous series required")
)

// Transform names for SeriesSpec.
const (
	TransformNone      = "none"
	TransformDiff      = "diff"
	TransformPctChange = "pct_change"
)

// SeriesSpec describes how one raw series enters the model: the transform
// applied after alignment, an optional output column name and scale, and
// whether the resulting column is the dependent variable.
type SeriesSpec struct {
	Name       string
	Transform  string  // "none", "diff", or "pct_change"; empty means "none"
	Scale      float64 // multiplier applied after pct_change; 0 means 1
	As         string  // derived column name; empty derives one from Name, ignored without a transform
	Endogenous bool
}

// SeriesInput pairs a spec with the raw series it describes.
type SeriesInput struct {
	Spec   SeriesSpec
	Series *timeseries.Series
}

// Result carries everything a run produces, from the aligned panel through
// the fitted model and its diagnostics.
type Result struct {
	Panel     *panel.Panel
	Sample    *panel.Sample
	EndogName string
	ExogNames []string

	ADFLevels      map[string]*stats.ADFResult
	ADFTransformed map[string]*stats.ADFResult
	ADFErrors      map[string]error

	LagSelection *regression.LagSelection
	Model        *regression.FittedModel
	Diagnostics  *stats.BatteryResult
	ConfInts     [][2]float64
	Significance float64
}

// ModelColumn returns the panel column name a spec contributes to the model.
// A series without a transform enters under its aligned (lower-cased) name.
func (s SeriesSpec) ModelColumn() string {
	name := strings.ToLower(strings.TrimSpace(s.Name))
	switch s.Transform {
	case TransformDiff, TransformPctChange:
		if s.As != "" {
			return strings.ToLower(strings.TrimSpace(s.As))
		}
		if s.Transform == TransformDiff {
			return name + "_diff"
		}
		return name + "_pct"
	default:
		return name
	}
}

// ParseWindow parses a pair of YYYY-MM-DD bounds. Both empty means no
// windowing; otherwise both must be present and start strictly before end.
func ParseWindow(start, end string) (time.Time, time.Time, error) {
	var zero time.Time
	if start == "" && end == "" {
		return zero, zero, nil
	}
	if start == "" || end == "" {
		return zero, zero, fmt.Errorf("window: both start and end required, got %q and %q", start, end)
	}
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return zero, zero, fmt.Errorf("window start %q: %w", start, ErrInvalidDate)
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return zero, zero, fmt.Errorf("window end %q: %w", end, ErrInvalidDate)
	}
	if !s.Before(e) {
		return zero, zero, fmt.Errorf("window [%s, %s]: %w", start, end, ErrWindowOrder)
	}
	return s, e, nil
}

// Run executes the full pipeline: align the raw series into a month-end
// panel, unit-root test the levels, derive the model columns, unit-root test
// those, pick an advisory lag order, fit the model with Newey-West standard
// errors, and run the diagnostic battery.
//
// Individual ADF failures (short samples, interior gaps) are recorded in
// Result.ADFErrors rather than aborting the run; an unusable panel or model
// sample is fatal.
func Run(inputs []SeriesInput, cfg *Config, logger *slog.Logger) (*Result, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	endogCol := ""
	modelCols := make([]string, 0, len(inputs))
	for _, in := range inputs {
		col := in.Spec.ModelColumn()
		modelCols = append(modelCols, col)
		if in.Spec.Endogenous {
			if endogCol != "" {
				return nil, fmt.Errorf("pipeline: %w: both %q and %q marked endogenous",
					ErrNoEndogenous, endogCol, col)
			}
			endogCol = col
		}
	}
	if endogCol == "" {
		return nil, fmt.Errorf("pipeline: %w", ErrNoEndogenous)
	}

	aligned := make([]panel.Input, len(inputs))
	for i, in := range inputs {
		aligned[i] = panel.Input{Name: in.Spec.Name, Series: in.Series}
	}
	p, err := panel.Align(aligned, timeseries.Frequency(cfg.Frequency))
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	logger.Info("aligned panel", "rows", p.Len(), "columns", strings.Join(p.Columns(), ","))

	res := &Result{
		Panel:          p,
		EndogName:      endogCol,
		ADFLevels:      make(map[string]*stats.ADFResult),
		ADFTransformed: make(map[string]*stats.ADFResult),
		ADFErrors:      make(map[string]error),
		Significance:   cfg.Significance,
	}

	runADF := func(col string, into map[string]*stats.ADFResult, stage string) {
		s, err := p.Column(col)
		if err != nil {
			res.ADFErrors[stage+":"+col] = err
			return
		}
		r, err := stats.ADF(s, nil)
		if err != nil {
			logger.Warn("adf skipped", "stage", stage, "column", col, "error", err)
			res.ADFErrors[stage+":"+col] = err
			return
		}
		into[col] = r
		logger.Info("adf", "stage", stage, "column", col,
			"statistic", r.Statistic, "p_value", r.PValue, "lag", r.Lag)
	}

	for _, col := range p.Columns() {
		runADF(col, res.ADFLevels, "level")
	}

	// Derived model columns per the manifest transforms.
	for _, in := range inputs {
		src := strings.ToLower(strings.TrimSpace(in.Spec.Name))
		out := in.Spec.ModelColumn()
		scale := in.Spec.Scale
		if scale == 0 {
			scale = 1
		}
		switch in.Spec.Transform {
		case "", TransformNone:
			// Level enters the model directly.
		case TransformDiff:
			if err := p.AddDiff(src, out); err != nil {
				return nil, fmt.Errorf("pipeline: derive %q: %w", out, err)
			}
		case TransformPctChange:
			if err := p.AddPctChange(src, out, scale); err != nil {
				return nil, fmt.Errorf("pipeline: derive %q: %w", out, err)
			}
		default:
			return nil, fmt.Errorf("pipeline: series %q: unknown transform %q", in.Spec.Name, in.Spec.Transform)
		}
	}

	for _, col := range modelCols {
		runADF(col, res.ADFTransformed, "model")
	}

	sample, err := p.ModelSample(modelCols...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	res.Sample = sample
	for _, col := range modelCols {
		if col != endogCol {
			res.ExogNames = append(res.ExogNames, col)
		}
	}
	logger.Info("model sample", "rows", sample.Len(),
		"endog", endogCol, "exog", strings.Join(res.ExogNames, ","))

	// Advisory lag order. The final fit stays contemporaneous; the
	// criteria are logged and reported for inspection.
	endogSeries, err := p.Column(endogCol)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	exogSeries := make([]*timeseries.Series, 0, len(res.ExogNames))
	for _, col := range res.ExogNames {
		s, err := p.Column(col)
		if err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		exogSeries = append(exogSeries, s)
	}
	sel, err := regression.SelectLag(endogSeries, exogSeries, cfg.MaxLag)
	if err != nil {
		logger.Warn("lag selection skipped", "error", err)
	} else {
		res.LagSelection = sel
		logger.Info("lag selection",
			"aic", sel.Lags["aic"], "bic", sel.Lags["bic"], "fpe", sel.Lags["fpe"])
	}

	x, err := regression.Design(sample, res.ExogNames...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	model, err := regression.FitHAC(sample.Column(endogCol), x, cfg.HACLags)
	if err != nil {
		return nil, fmt.Errorf("pipeline: fit: %w", err)
	}
	res.Model = model
	logger.Info("fitted model", "nobs", model.NObs,
		"regressors", model.NRegressors, "ssr", model.SSR, "cov_type", model.CovType)

	res.Diagnostics = stats.RunBattery(model, cfg.Significance)
	for name, err := range res.Diagnostics.Errors {
		logger.Warn("diagnostic skipped", "test", name, "error", err)
	}

	ci, err := model.ConfInt(cfg.Significance)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	res.ConfInts = ci

	return res, nil
}
