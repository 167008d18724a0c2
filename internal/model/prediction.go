package model

import "time"

// RiskFlag is an enumerated advisory raised by a threshold rule.
type RiskFlag string

const (
	RiskLowDiversification RiskFlag = "LOW_DIVERSIFICATION"
	RiskNegativeTrend      RiskFlag = "NEGATIVE_TREND"
)

// AnomalyKind classifies an outlier expense relative to the mean.
type AnomalyKind string

const (
	AnomalyHighSpending AnomalyKind = "HIGH_SPENDING"
	AnomalyLowSpending  AnomalyKind = "LOW_SPENDING"
)

// Anomaly is an expense transaction whose magnitude deviates from the
// mean expense by more than the model's z-score threshold.
type Anomaly struct {
	TransactionID string
	Timestamp     time.Time
	Amount        int64 // minor units, negative
	Category      string
	Description   string
	ZScore        float64
	Kind          AnomalyKind
}

// ForecastPoint is one predicted value with its confidence bounds,
// minor units.
type ForecastPoint struct {
	PeriodsAhead int
	Value        int64
	Low          int64
	High         int64
}

// ScoreBreakdown holds the sub-scores feeding the health score,
// each in [0, 1].
type ScoreBreakdown struct {
	CashFlow        float64
	Diversification float64
	Trend           float64
}

// PredictionResult is the output of one predictive recompute. It is
// immutable and superseded wholesale on the next recompute.
type PredictionResult struct {
	GeneratedAt    time.Time
	LedgerVersion  uint64
	HorizonPeriods int
	Forecast       []ForecastPoint
	Slope          float64 // fitted net-worth trend per period, minor units
	HealthScore    float64 // 0-100
	Breakdown      ScoreBreakdown
	RiskFlags      []RiskFlag
	Anomalies      []Anomaly
}

// HasFlag reports whether the result raised the given risk flag.
func (r *PredictionResult) HasFlag(f RiskFlag) bool {
	for _, x := range r.RiskFlags {
		if x == f {
			return true
		}
	}
	return false
}
