// Package config defines the simulator's configuration and loading hooks.
//
// The simulation core treats rate tables and anti-cheat bounds as opaque
// inputs; this package is where they come from.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/okian/finsim/internal/domain/anticheat"
	"github.com/okian/finsim/internal/domain/inflation"
	"github.com/okian/finsim/internal/domain/types"
	"github.com/okian/finsim/pkg/metrics"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Currency is the ISO code used when rendering amounts.
	Currency string `koanf:"currency"`

	// Difficulty is applied to scenarios that do not name one.
	Difficulty string `koanf:"difficulty"`

	// InflationRates are the annual rates per difficulty.
	InflationRates InflationRates `koanf:"inflation_rates"`

	// AntiCheat holds the validator bounds.
	AntiCheat AntiCheat `koanf:"anticheat"`

	// BatchWorkers bounds how many scenarios are projected concurrently.
	BatchWorkers int `koanf:"batch_workers"`

	// MetricsTextfile, when set, receives a Prometheus text export after each run.
	MetricsTextfile string `koanf:"metrics_textfile"`

	// Metrics shapes the exported series.
	Metrics Metrics `koanf:"metrics"`
}

// Metrics configures the Prometheus collectors.
type Metrics struct {
	Enabled           bool              `koanf:"enabled"`
	Namespace         string            `koanf:"namespace"`
	Subsystem         string            `koanf:"subsystem"`
	ConstLabels       map[string]string `koanf:"const_labels"`
	DurationBucketsMS []float64         `koanf:"duration_buckets_ms"`
}

// InflationRates maps difficulties to annual inflation rates.
type InflationRates struct {
	Easy   float64 `koanf:"easy"`
	Normal float64 `koanf:"normal"`
	Hard   float64 `koanf:"hard"`
}

// AntiCheat mirrors anticheat.Limits for configuration files.
type AntiCheat struct {
	MaxDailyXP              int     `koanf:"max_daily_xp"`
	CoinCapExcludingLevelUp int     `koanf:"coin_cap_excluding_level_up"`
	CoinCapIncludingLevelUp int     `koanf:"coin_cap_including_level_up"`
	LevelXP                 []int   `koanf:"level_xp"`
	MaxNetWorthGrowth       float64 `koanf:"max_net_worth_growth"`
	MaxCHIIncrease          int     `koanf:"max_chi_increase"`
	MinActionGapMS          int64   `koanf:"min_action_gap_ms"`
	MaxActionsPerWindow     int     `koanf:"max_actions_per_window"`
	ActionWindowMS          int64   `koanf:"action_window_ms"`
	MaxTransfer             int64   `koanf:"max_transfer"`
}

// New creates a Config populated with defaults.
func New() *Config {
	rates := inflation.DefaultTable()
	limits := anticheat.DefaultLimits()
	return &Config{
		LogLevel:   "info",
		LogFormat:  "text",
		Currency:   "USD",
		Difficulty: string(types.DifficultyNormal),
		InflationRates: InflationRates{
			Easy:   rates.Easy,
			Normal: rates.Normal,
			Hard:   rates.Hard,
		},
		AntiCheat: AntiCheat{
			MaxDailyXP:              limits.MaxDailyXP,
			CoinCapExcludingLevelUp: limits.CoinCapExcludingLevelUp,
			CoinCapIncludingLevelUp: limits.CoinCapIncludingLevelUp,
			LevelXP:                 limits.LevelXP,
			MaxNetWorthGrowth:       limits.MaxNetWorthGrowth,
			MaxCHIIncrease:          limits.MaxCHIIncrease,
			MinActionGapMS:          limits.MinActionGapMS,
			MaxActionsPerWindow:     limits.MaxActionsPerWindow,
			ActionWindowMS:          limits.ActionWindowMS,
			MaxTransfer:             limits.MaxTransfer,
		},
		BatchWorkers: runtime.NumCPU(),
		Metrics: Metrics{
			Enabled:   true,
			Namespace: "finsim",
			Subsystem: "sim",
		},
	}
}

// Validate rejects configurations the simulator cannot run with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q must be text or json", ErrInvalidConfig, c.LogFormat)
	}
	if c.InflationRates.Easy < 0 || c.InflationRates.Normal < 0 || c.InflationRates.Hard < 0 {
		return fmt.Errorf("%w: inflation rates must not be negative", ErrInvalidConfig)
	}
	if c.BatchWorkers < 0 {
		return fmt.Errorf("%w: batch_workers must not be negative", ErrInvalidConfig)
	}
	a := c.AntiCheat
	if a.MaxDailyXP < 0 || a.CoinCapExcludingLevelUp < 0 || a.CoinCapIncludingLevelUp < 0 ||
		a.MaxNetWorthGrowth < 0 || a.MaxCHIIncrease < 0 || a.MinActionGapMS < 0 ||
		a.MaxActionsPerWindow < 0 || a.ActionWindowMS < 0 || a.MaxTransfer < 0 {
		return fmt.Errorf("%w: anticheat limits must not be negative", ErrInvalidConfig)
	}
	for _, xp := range a.LevelXP {
		if xp <= 0 {
			return fmt.Errorf("%w: anticheat.level_xp entries must be positive", ErrInvalidConfig)
		}
	}
	for i, b := range c.Metrics.DurationBucketsMS {
		if b <= 0 || (i > 0 && b <= c.Metrics.DurationBucketsMS[i-1]) {
			return fmt.Errorf("%w: metrics.duration_buckets_ms must be positive and strictly increasing", ErrInvalidConfig)
		}
	}
	return nil
}

// InflationTable converts the configured rates for the inflation engine.
func (c *Config) InflationTable() inflation.Table {
	return inflation.Table{
		Easy:   c.InflationRates.Easy,
		Normal: c.InflationRates.Normal,
		Hard:   c.InflationRates.Hard,
	}
}

// DefaultDifficulty parses the configured difficulty, falling back to normal.
func (c *Config) DefaultDifficulty() types.Difficulty {
	return types.ParseDifficulty(c.Difficulty)
}

// AntiCheatOptions converts the configured bounds into validator options.
// Zero values keep the validator defaults.
func (c *Config) AntiCheatOptions() []anticheat.Option {
	a := c.AntiCheat
	return []anticheat.Option{
		anticheat.WithMaxDailyXP(a.MaxDailyXP),
		anticheat.WithCoinCaps(a.CoinCapExcludingLevelUp, a.CoinCapIncludingLevelUp),
		anticheat.WithLevelXP(a.LevelXP),
		anticheat.WithMaxNetWorthGrowth(a.MaxNetWorthGrowth),
		anticheat.WithMaxCHIIncrease(a.MaxCHIIncrease),
		anticheat.WithActionRate(a.MinActionGapMS, a.MaxActionsPerWindow, a.ActionWindowMS),
		anticheat.WithMaxTransfer(a.MaxTransfer),
	}
}

// MetricsOptions converts the metrics section into manager options. The
// caller adds the registry.
func (c *Config) MetricsOptions() []metrics.Option {
	m := c.Metrics
	return []metrics.Option{
		metrics.WithMetricsEnabled(m.Enabled),
		metrics.WithNamespace(m.Namespace),
		metrics.WithSubsystem(m.Subsystem),
		metrics.WithConstLabels(m.ConstLabels),
		metrics.WithHistogramBuckets(m.DurationBucketsMS),
	}
}
