// Package predict forecasts near-future net worth from the history of
// aggregate snapshots and condenses it into a financial-health score
// with threshold-based risk flags. Given the same input history the
// output is always identical.
package predict

import (
	"errors"
	"fmt"
	"math"
	"time"

	"FinanceSentinel/internal/model"
)

// ErrInsufficientData is returned when the snapshot history is shorter
// than the configured minimum. Callers fall back to showing the latest
// snapshot without a prediction.
var ErrInsufficientData = errors.New("insufficient history for prediction")

// Model produces PredictionResults. It is stateless and safe for
// concurrent use.
type Model struct {
	cfg Config
	now func() time.Time
}

// NewModel creates a predictive model with the given configuration.
func NewModel(cfg Config) *Model {
	return &Model{cfg: cfg, now: func() time.Time { return time.Now().UTC() }}
}

// Predict fits a least-squares trend line through the net-worth history
// and extrapolates it over the configured horizon. The confidence band
// is the 95% margin of the fit residuals, widening with distance. txns
// is the transaction set behind the latest snapshot; outlier expenses
// in it are reported as anomalies.
func (m *Model) Predict(history []*model.AggregateSnapshot, txns []model.Transaction) (*model.PredictionResult, error) {
	if len(history) < m.cfg.MinHistory {
		return nil, fmt.Errorf("have %d snapshots, need %d: %w",
			len(history), m.cfg.MinHistory, ErrInsufficientData)
	}

	series := make([]float64, len(history))
	for i, snap := range history {
		series[i] = float64(snap.NetWorth)
	}

	slope, intercept := fitLine(series)
	sigma := residualStddev(series, slope, intercept)
	latest := history[len(history)-1]

	forecast := make([]model.ForecastPoint, m.cfg.HorizonPeriods)
	n := float64(len(series))
	for h := 1; h <= m.cfg.HorizonPeriods; h++ {
		value := intercept + slope*(n-1+float64(h))
		margin := 1.96 * sigma * math.Sqrt(float64(h))
		forecast[h-1] = model.ForecastPoint{
			PeriodsAhead: h,
			Value:        int64(math.Round(value)),
			Low:          int64(math.Round(value - margin)),
			High:         int64(math.Round(value + margin)),
		}
	}

	breakdown := model.ScoreBreakdown{
		CashFlow:        m.cashFlowPositivity(latest),
		Diversification: diversification(latest),
		Trend:           m.trendComponent(slope, series),
	}

	return &model.PredictionResult{
		GeneratedAt:    m.now(),
		LedgerVersion:  latest.LedgerVersion,
		HorizonPeriods: m.cfg.HorizonPeriods,
		Forecast:       forecast,
		Slope:          slope,
		HealthScore:    m.healthScore(breakdown),
		Breakdown:      breakdown,
		RiskFlags:      m.riskFlags(latest, slope, series),
		Anomalies:      m.detectAnomalies(txns),
	}, nil
}

// fitLine computes the ordinary least-squares slope and intercept of
// the series against its index.
func fitLine(y []float64) (slope, intercept float64) {
	n := float64(len(y))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

func residualStddev(y []float64, slope, intercept float64) float64 {
	var sumSq float64
	for i, v := range y {
		r := v - (intercept + slope*float64(i))
		sumSq += r * r
	}
	return math.Sqrt(sumSq / float64(len(y)))
}

// meanAbs is the normalization base for relative slope; it never
// returns 0 so relative slopes are always defined.
func meanAbs(y []float64) float64 {
	var sum float64
	for _, v := range y {
		sum += math.Abs(v)
	}
	mean := sum / float64(len(y))
	if mean == 0 {
		return 1
	}
	return mean
}
