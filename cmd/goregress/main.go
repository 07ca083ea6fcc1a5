// Command goregress runs the macro-factor regression pipeline described by a
// YAML manifest: it loads each series from CSV, aligns them to month-end,
// tests stationarity, fits the model with Newey-West standard errors, and
// prints the diagnostic report to stdout.
//
// Usage:
//
//	goregress run --manifest manifest.yaml --start 2015-01-01 --end 2024-12-31
//
// Configuration defaults can also be set through GOREGRESS_* environment
// variables (for example GOREGRESS_HAC_LAGS=4); explicit flags win.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sartorproj/goregress/pipeline"
)

var (
	flagManifest string
	flagStart    string
	flagEnd      string
	flagMaxLag   int
	flagHACLags  int
	flagAlpha    float64
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "goregress",
		Short:         "Macro-factor regression with unit-root screening and HAC inference",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	run := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline described by a YAML manifest",
		RunE:  runPipeline,
	}
	run.Flags().StringVar(&flagManifest, "manifest", "manifest.yaml", "YAML manifest listing the input series")
	run.Flags().StringVar(&flagStart, "start", "", "window start (YYYY-MM-DD), overrides the manifest")
	run.Flags().StringVar(&flagEnd, "end", "", "window end (YYYY-MM-DD), overrides the manifest")
	run.Flags().IntVar(&flagMaxLag, "max-lag", 0, "upper bound for the advisory lag search")
	run.Flags().IntVar(&flagHACLags, "hac-lags", 0, "Newey-West truncation lag")
	run.Flags().Float64Var(&flagAlpha, "alpha", 0, "significance level for intervals and CUSUM")

	root.AddCommand(run)
	return root
}

func runPipeline(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := pipeline.FromEnv()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-lag") {
		cfg.MaxLag = flagMaxLag
	}
	if cmd.Flags().Changed("hac-lags") {
		cfg.HACLags = flagHACLags
	}
	if cmd.Flags().Changed("alpha") {
		cfg.Significance = flagAlpha
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	m, err := loadManifest(flagManifest)
	if err != nil {
		return err
	}

	startStr, endStr := m.Start, m.End
	if cmd.Flags().Changed("start") {
		startStr = flagStart
	}
	if cmd.Flags().Changed("end") {
		endStr = flagEnd
	}
	start, end, err := pipeline.ParseWindow(startStr, endStr)
	if err != nil {
		return err
	}

	inputs, err := loadInputs(m, start, end)
	if err != nil {
		return err
	}
	logger.Info("loaded inputs", "series", len(inputs), "manifest", flagManifest)

	res, err := pipeline.Run(inputs, cfg, logger)
	if err != nil {
		return err
	}
	return pipeline.WriteReport(os.Stdout, res)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
