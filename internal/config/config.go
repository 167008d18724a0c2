package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"FinanceSentinel/internal/model"
	"FinanceSentinel/internal/predict"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Ledger struct {
		Currency string `yaml:"currency"`
	} `yaml:"ledger"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Aggregation struct {
		Period string `yaml:"period"`
	} `yaml:"aggregation"`
	Prediction predict.Config `yaml:"prediction"`
	Refresh    struct {
		Interval   string `yaml:"interval"` // Go duration string, e.g. "30s"
		HistoryCap int    `yaml:"history_cap"`
	} `yaml:"refresh"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LEDGER_CURRENCY"); v != "" {
		cfg.Ledger.Currency = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CASHFLOW_PERIOD"); v != "" {
		cfg.Aggregation.Period = v
	}
	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		cfg.Refresh.Interval = v
	}
	if v := os.Getenv("FORECAST_HORIZON"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Prediction.HorizonPeriods = n
		}
	}

	// Defaults
	if cfg.Ledger.Currency == "" {
		cfg.Ledger.Currency = "USD"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/finance_sentinel.db"
	}
	if cfg.Aggregation.Period == "" {
		cfg.Aggregation.Period = string(model.PeriodMonth)
	}
	def := predict.DefaultConfig()
	if cfg.Prediction.HorizonPeriods == 0 {
		cfg.Prediction.HorizonPeriods = def.HorizonPeriods
	}
	if cfg.Prediction.MinHistory == 0 {
		cfg.Prediction.MinHistory = def.MinHistory
	}
	if cfg.Prediction.RecentPeriods == 0 {
		cfg.Prediction.RecentPeriods = def.RecentPeriods
	}
	if cfg.Prediction.WeightCashFlow == 0 && cfg.Prediction.WeightDiversification == 0 && cfg.Prediction.WeightTrend == 0 {
		cfg.Prediction.WeightCashFlow = def.WeightCashFlow
		cfg.Prediction.WeightDiversification = def.WeightDiversification
		cfg.Prediction.WeightTrend = def.WeightTrend
	}
	if cfg.Prediction.ConcentrationThreshold == 0 {
		cfg.Prediction.ConcentrationThreshold = def.ConcentrationThreshold
	}
	if cfg.Prediction.TrendThreshold == 0 {
		cfg.Prediction.TrendThreshold = def.TrendThreshold
	}
	if cfg.Prediction.AnomalyZScore == 0 {
		cfg.Prediction.AnomalyZScore = def.AnomalyZScore
	}
	if cfg.Refresh.Interval == "" {
		cfg.Refresh.Interval = "30s"
	}
	if cfg.Refresh.HistoryCap == 0 {
		cfg.Refresh.HistoryCap = 64
	}

	return cfg, nil
}

// Period parses the configured cash-flow granularity.
func (c *Config) Period() (model.Period, error) {
	return model.ParsePeriod(c.Aggregation.Period)
}

// RefreshInterval parses the configured timer interval.
func (c *Config) RefreshInterval() (time.Duration, error) {
	return time.ParseDuration(c.Refresh.Interval)
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	if _, err := c.Period(); err != nil {
		return fmt.Errorf("aggregation.period: %w", err)
	}
	if err := c.Prediction.Validate(); err != nil {
		return fmt.Errorf("prediction: %w", err)
	}
	if d, err := c.RefreshInterval(); err != nil {
		return fmt.Errorf("refresh.interval: %w", err)
	} else if d < 0 {
		return fmt.Errorf("refresh.interval must be non-negative")
	}
	if c.Refresh.HistoryCap < c.Prediction.MinHistory {
		return fmt.Errorf("refresh.history_cap (%d) must be at least prediction.min_history (%d)",
			c.Refresh.HistoryCap, c.Prediction.MinHistory)
	}
	return nil
}
