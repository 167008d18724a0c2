package predict

import "fmt"

// Config holds the tunable constants of the predictive model. All
// thresholds and weights are explicit so behavior is testable, never
// buried in the scoring code.
type Config struct {
	// HorizonPeriods is how many periods ahead to forecast; the output
	// series always has exactly this length.
	HorizonPeriods int `yaml:"horizon_periods"`

	// MinHistory is the minimum number of prior snapshots required
	// before a prediction is attempted.
	MinHistory int `yaml:"min_history"`

	// RecentPeriods bounds how many trailing cash-flow buckets feed the
	// positivity ratio.
	RecentPeriods int `yaml:"recent_periods"`

	// WeightCashFlow weighs the fraction of recent periods with
	// non-negative net flow.
	WeightCashFlow float64 `yaml:"weight_cash_flow"`

	// WeightDiversification weighs the entropy of the allocation
	// percentages (1.0 = perfectly even spread).
	WeightDiversification float64 `yaml:"weight_diversification"`

	// WeightTrend weighs the direction of the fitted net-worth slope.
	WeightTrend float64 `yaml:"weight_trend"`

	// ConcentrationThreshold is the allocation percentage above which a
	// single asset class raises LOW_DIVERSIFICATION.
	ConcentrationThreshold float64 `yaml:"concentration_threshold"`

	// TrendThreshold is the relative downward slope magnitude (fraction
	// of mean net worth lost per period) beyond which NEGATIVE_TREND is
	// raised.
	TrendThreshold float64 `yaml:"trend_threshold"`

	// AnomalyZScore is how many standard deviations an expense must sit
	// from the mean expense before it is reported as an anomaly.
	AnomalyZScore float64 `yaml:"anomaly_z_score"`
}

// DefaultConfig returns the stock model parameters.
func DefaultConfig() Config {
	return Config{
		HorizonPeriods:         6,
		MinHistory:             3,
		RecentPeriods:          6,
		WeightCashFlow:         0.4,
		WeightDiversification:  0.3,
		WeightTrend:            0.3,
		ConcentrationThreshold: 80,
		TrendThreshold:         0.01,
		AnomalyZScore:          2,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.HorizonPeriods <= 0 {
		return fmt.Errorf("horizon_periods must be positive, got %d", c.HorizonPeriods)
	}
	if c.MinHistory < 2 {
		return fmt.Errorf("min_history must be at least 2, got %d", c.MinHistory)
	}
	if c.RecentPeriods <= 0 {
		return fmt.Errorf("recent_periods must be positive, got %d", c.RecentPeriods)
	}
	total := c.WeightCashFlow + c.WeightDiversification + c.WeightTrend
	if total <= 0 {
		return fmt.Errorf("score weights must sum to a positive value, got %g", total)
	}
	if c.ConcentrationThreshold <= 0 || c.ConcentrationThreshold > 100 {
		return fmt.Errorf("concentration_threshold must be in (0, 100], got %g", c.ConcentrationThreshold)
	}
	if c.TrendThreshold < 0 {
		return fmt.Errorf("trend_threshold must be non-negative, got %g", c.TrendThreshold)
	}
	if c.AnomalyZScore <= 0 {
		return fmt.Errorf("anomaly_z_score must be positive, got %g", c.AnomalyZScore)
	}
	return nil
}
