// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables on top of New().
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"github.com/okian/salesrank/internal/domain/strategy"
)

// Output formats understood by the CLI.
const (
	OutputJSON  = "json"
	OutputTable = "table"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MaxBodyBytes caps the size of a POST /analyze body.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// OutputFormat selects how the CLI prints reports: json or table.
	OutputFormat string `koanf:"output_format"`

	// Bonus rates applied per rank tier, as fractions of profit.
	BonusLeaderRate   float64 `koanf:"bonus_leader_rate"`
	BonusRunnerUpRate float64 `koanf:"bonus_runner_up_rate"`
	BonusLastRate     float64 `koanf:"bonus_last_rate"`
	BonusDefaultRate  float64 `koanf:"bonus_default_rate"`
}

// New creates a Config populated with defaults.
func New() *Config {
	rates := strategy.DefaultTierRates()
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		MaxBodyBytes:      10 << 20,
		OutputFormat:      OutputJSON,
		BonusLeaderRate:   rates.Leader,
		BonusRunnerUpRate: rates.RunnerUp,
		BonusLastRate:     rates.Last,
		BonusDefaultRate:  rates.Default,
	}
}

// TierRates returns the bonus rate table described by the config.
func (c *Config) TierRates() strategy.TierRates {
	return strategy.TierRates{
		Leader:   c.BonusLeaderRate,
		RunnerUp: c.BonusRunnerUpRate,
		Last:     c.BonusLastRate,
		Default:  c.BonusDefaultRate,
	}
}
