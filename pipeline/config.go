package pipeline

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/sartorproj/goregress/timeseries"
)

// Config holds the tuning knobs of a pipeline run. Every field can be
// overridden through the environment with the GOREGRESS prefix, for example
// GOREGRESS_HAC_LAGS=4.
type Config struct {
	// MaxLag bounds the distributed-lag search.
	MaxLag int `envconfig:"MAX_LAG" default:"6"`
	// HACLags is the Newey-West truncation lag for the final fit.
	HACLags int `envconfig:"HAC_LAGS" default:"1"`
	// Significance is the level used for confidence intervals and the
	// CUSUM boundary.
	Significance float64 `envconfig:"SIGNIFICANCE" default:"0.05"`
	// Frequency is the resampling frequency for panel alignment.
	Frequency string `envconfig:"FREQUENCY" default:"ME"`
}

// DefaultConfig returns the configuration used by a plain run: lag search up
// to 6, Newey-West with one lag, 5% significance, month-end alignment.
func DefaultConfig() *Config {
	return &Config{MaxLag: 6, HACLags: 1, Significance: 0.05, Frequency: string(timeseries.FreqMonthEnd)}
}

// FromEnv builds a Config from GOREGRESS_* environment variables, falling
// back to the defaults for anything unset.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("goregress", cfg); err != nil {
		return nil, fmt.Errorf("pipeline config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.MaxLag < 1 {
		return fmt.Errorf("pipeline config: max lag must be at least 1, got %d", c.MaxLag)
	}
	if c.HACLags < 0 {
		return fmt.Errorf("pipeline config: hac lags must be non-negative, got %d", c.HACLags)
	}
	if c.Significance <= 0 || c.Significance >= 1 {
		return fmt.Errorf("pipeline config: significance must be in (0, 1), got %g", c.Significance)
	}
	if timeseries.Frequency(c.Frequency) != timeseries.FreqMonthEnd {
		return fmt.Errorf("pipeline config: unsupported frequency %q", c.Frequency)
	}
	return nil
}
