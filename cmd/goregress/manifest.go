package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/sartorproj/goregress/pipeline"
	"github.com/sartorproj/goregress/timeseries"
)

// manifestSeries describes one CSV-backed series: where it lives, which
// columns hold the data, and how it enters the model.
type manifestSeries struct {
	Name        string  `yaml:"name"`
	File        string  `yaml:"file"`
	Transform   string  `yaml:"transform"`
	As          string  `yaml:"as"`
	Scale       float64 `yaml:"scale"`
	Endogenous  bool    `yaml:"endogenous"`
	DateColumn  string  `yaml:"date_column"`
	ValueColumn string  `yaml:"value_column"`
	DateFormat  string  `yaml:"date_format"`
}

// manifest is the YAML run description: the series list plus an optional
// default date window the flags can override.
type manifest struct {
	Series []manifestSeries `yaml:"series"`
	Start  string           `yaml:"start"`
	End    string           `yaml:"end"`
}

func loadManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if len(m.Series) == 0 {
		return nil, fmt.Errorf("manifest %s: no series listed", path)
	}
	for i, s := range m.Series {
		if s.Name == "" {
			return nil, fmt.Errorf("manifest %s: series %d has no name", path, i)
		}
		if s.File == "" {
			return nil, fmt.Errorf("manifest %s: series %q has no file", path, s.Name)
		}
	}
	return &m, nil
}

// loadInputs reads every manifest series from its CSV file and applies the
// date window when one is set.
func loadInputs(m *manifest, start, end time.Time) ([]pipeline.SeriesInput, error) {
	inputs := make([]pipeline.SeriesInput, 0, len(m.Series))
	for _, ms := range m.Series {
		opts := timeseries.DefaultCSVOptions()
		opts.Name = ms.Name
		if ms.DateColumn != "" {
			opts.DateColumn = ms.DateColumn
		}
		if ms.ValueColumn != "" {
			opts.ValueColumn = ms.ValueColumn
		}
		if ms.DateFormat != "" {
			opts.DateFormat = ms.DateFormat
		}

		s, err := timeseries.LoadCSV(ms.File, opts)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", ms.Name, err)
		}
		if !start.IsZero() {
			s = s.Window(start, end)
		}

		inputs = append(inputs, pipeline.SeriesInput{
			Spec: pipeline.SeriesSpec{
				Name:       ms.Name,
				Transform:  ms.Transform,
				Scale:      ms.Scale,
				As:         ms.As,
				Endogenous: ms.Endogenous,
			},
			Series: s,
		})
	}
	return inputs, nil
}
