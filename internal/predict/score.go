package predict

import (
	"math"
	"sort"

	"FinanceSentinel/internal/model"
)

// healthScore folds the sub-scores into the 0-100 composite using the
// configured weights.
func (m *Model) healthScore(b model.ScoreBreakdown) float64 {
	total := m.cfg.WeightCashFlow + m.cfg.WeightDiversification + m.cfg.WeightTrend
	score := 100 * (m.cfg.WeightCashFlow*b.CashFlow +
		m.cfg.WeightDiversification*b.Diversification +
		m.cfg.WeightTrend*b.Trend) / total
	return clamp(score, 0, 100)
}

// cashFlowPositivity is the fraction of recent periods with
// non-negative net flow, in [0, 1].
func (m *Model) cashFlowPositivity(snap *model.AggregateSnapshot) float64 {
	buckets := snap.CashFlow
	if len(buckets) > m.cfg.RecentPeriods {
		buckets = buckets[len(buckets)-m.cfg.RecentPeriods:]
	}
	if len(buckets) == 0 {
		return 0
	}
	positive := 0
	for _, b := range buckets {
		if b.Net >= 0 {
			positive++
		}
	}
	return float64(positive) / float64(len(buckets))
}

// diversification is the normalized Shannon entropy of the allocation
// percentages: 1.0 for a perfectly even spread, 0 for a single class
// (or when net worth is non-positive and all shares are zero). Classes
// are visited in sorted order so the floating-point sum is independent
// of map iteration order.
func diversification(snap *model.AggregateSnapshot) float64 {
	classes := make([]string, 0, len(snap.Allocation))
	for class := range snap.Allocation {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	var shares []float64
	for _, class := range classes {
		v, _ := snap.Allocation[class].Float64()
		if v > 0 {
			shares = append(shares, v/100)
		}
	}
	if len(shares) < 2 {
		return 0
	}
	var entropy float64
	for _, p := range shares {
		entropy -= p * math.Log(p)
	}
	return clamp(entropy/math.Log(float64(len(shares))), 0, 1)
}

// trendComponent maps the relative slope (fraction of mean net worth
// gained or lost per period) into [0, 1]: 0.5 is flat, 1 a gain of at
// least the mean per period, 0 an equal loss.
func (m *Model) trendComponent(slope float64, series []float64) float64 {
	rel := clamp(slope/meanAbs(series), -1, 1)
	return (rel + 1) / 2
}

// riskFlags applies the threshold rules. Flags are not exclusive; the
// result preserves a fixed order so output is deterministic.
func (m *Model) riskFlags(snap *model.AggregateSnapshot, slope float64, series []float64) []model.RiskFlag {
	var flags []model.RiskFlag

	for _, pct := range snap.Allocation {
		if v, _ := pct.Float64(); v > m.cfg.ConcentrationThreshold {
			flags = append(flags, model.RiskLowDiversification)
			break
		}
	}

	if slope/meanAbs(series) < -m.cfg.TrendThreshold {
		flags = append(flags, model.RiskNegativeTrend)
	}
	return flags
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
