package predict

import (
	"errors"
	"testing"

	"FinanceSentinel/internal/model"

	"github.com/shopspring/decimal"
)

func snapshot(netWorth int64, alloc map[string]float64, nets []int64) *model.AggregateSnapshot {
	s := &model.AggregateSnapshot{
		NetWorth:   netWorth,
		Allocation: make(map[string]decimal.Decimal, len(alloc)),
	}
	for class, pct := range alloc {
		s.Allocation[class] = decimal.NewFromFloat(pct)
	}
	for _, n := range nets {
		s.CashFlow = append(s.CashFlow, model.CashFlowBucket{Net: n})
	}
	return s
}

func history(netWorths ...int64) []*model.AggregateSnapshot {
	snaps := make([]*model.AggregateSnapshot, len(netWorths))
	for i, nw := range netWorths {
		snaps[i] = snapshot(nw, map[string]float64{"cash": 50, "equity": 50}, []int64{100, 100, 100})
	}
	return snaps
}

func TestPredict_InsufficientData(t *testing.T) {
	m := NewModel(DefaultConfig())
	_, err := m.Predict(history(1000, 2000), nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestPredict_HorizonLength(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HorizonPeriods = 9
	m := NewModel(cfg)
	res, err := m.Predict(history(1000, 2000, 3000), nil)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if len(res.Forecast) != 9 {
		t.Errorf("forecast length = %d, want 9", len(res.Forecast))
	}
}

func TestPredict_Deterministic(t *testing.T) {
	m := NewModel(DefaultConfig())
	h := history(1000, 1400, 1300, 1900)

	a, err := m.Predict(h, nil)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	b, err := m.Predict(h, nil)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	if a.HealthScore != b.HealthScore {
		t.Errorf("health score differs: %g vs %g", a.HealthScore, b.HealthScore)
	}
	for i := range a.Forecast {
		if a.Forecast[i] != b.Forecast[i] {
			t.Errorf("forecast[%d] differs: %+v vs %+v", i, a.Forecast[i], b.Forecast[i])
		}
	}
}

// Three snapshots trending upward must not raise NEGATIVE_TREND, and
// the forecast must keep climbing.
func TestPredict_UpwardTrend(t *testing.T) {
	m := NewModel(DefaultConfig())
	res, err := m.Predict(history(1000, 2000, 3000), nil)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	if res.HasFlag(model.RiskNegativeTrend) {
		t.Error("upward trend raised NEGATIVE_TREND")
	}
	if res.Slope <= 0 {
		t.Errorf("slope = %g, want positive", res.Slope)
	}
	if res.Forecast[0].Value <= 3000 {
		t.Errorf("first forecast value = %d, want > 3000", res.Forecast[0].Value)
	}
	for i := 1; i < len(res.Forecast); i++ {
		if res.Forecast[i].Value <= res.Forecast[i-1].Value {
			t.Errorf("forecast not increasing at %d: %+v", i, res.Forecast)
		}
	}
}

func TestPredict_NegativeTrendFlag(t *testing.T) {
	m := NewModel(DefaultConfig())
	res, err := m.Predict(history(5000, 4000, 3000), nil)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !res.HasFlag(model.RiskNegativeTrend) {
		t.Errorf("expected NEGATIVE_TREND, flags = %v", res.RiskFlags)
	}
}

// A single asset class holding 95% of net worth must raise
// LOW_DIVERSIFICATION against the default 80% threshold.
func TestPredict_ConcentrationFlag(t *testing.T) {
	m := NewModel(DefaultConfig())
	h := history(1000, 2000, 3000)
	h[len(h)-1] = snapshot(3000, map[string]float64{"equity": 95, "cash": 5}, []int64{100, 100})

	res, err := m.Predict(h, nil)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !res.HasFlag(model.RiskLowDiversification) {
		t.Errorf("expected LOW_DIVERSIFICATION, flags = %v", res.RiskFlags)
	}
}

func TestPredict_ConfidenceBandWidensWithHorizon(t *testing.T) {
	m := NewModel(DefaultConfig())
	// Not collinear, so the residual stddev is positive.
	res, err := m.Predict(history(1000, 1500, 1200, 1800), nil)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	prev := int64(-1)
	for _, pt := range res.Forecast {
		width := pt.High - pt.Low
		if width <= prev {
			t.Fatalf("band width not widening: %+v", res.Forecast)
		}
		prev = width
	}
}

func TestPredict_PerfectFitHasZeroBand(t *testing.T) {
	m := NewModel(DefaultConfig())
	res, err := m.Predict(history(1000, 2000, 3000), nil)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	for _, pt := range res.Forecast {
		if pt.Low != pt.Value || pt.High != pt.Value {
			t.Errorf("expected zero-width band on a perfect fit, got %+v", pt)
		}
	}
}

func TestHealthScore_Bounds(t *testing.T) {
	m := NewModel(DefaultConfig())

	res, err := m.Predict(history(1000, 2000, 3000), nil)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if res.HealthScore < 0 || res.HealthScore > 100 {
		t.Errorf("health score out of range: %g", res.HealthScore)
	}
	// Even split, all-positive cash flow, strong uptrend: well above the
	// midpoint.
	if res.HealthScore < 70 {
		t.Errorf("expected a strong score, got %g (breakdown %+v)", res.HealthScore, res.Breakdown)
	}
}

func TestDiversification_EvenVsSingle(t *testing.T) {
	even := snapshot(1000, map[string]float64{"a": 25, "b": 25, "c": 25, "d": 25}, nil)
	if d := diversification(even); d < 0.99 {
		t.Errorf("even split diversification = %g, want ~1", d)
	}
	single := snapshot(1000, map[string]float64{"a": 100}, nil)
	if d := diversification(single); d != 0 {
		t.Errorf("single class diversification = %g, want 0", d)
	}
}

// The entropy sum must not depend on map iteration order: rebuilding
// the same allocation map repeatedly must always give the same score,
// bit for bit.
func TestDiversification_IterationOrderIndependent(t *testing.T) {
	// Three uneven shares whose entropy terms sum differently depending
	// on the order they are added in.
	build := func() *model.AggregateSnapshot {
		return snapshot(1000, map[string]float64{"cash": 61.3, "equity": 27.7, "bonds": 11}, nil)
	}

	first := diversification(build())
	for i := 0; i < 1000; i++ {
		if got := diversification(build()); got != first {
			t.Fatalf("diversification = %v on run %d, want %v", got, i, first)
		}
	}
}

func TestCashFlowPositivity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RecentPeriods = 4
	m := NewModel(cfg)

	tests := []struct {
		nets []int64
		want float64
	}{
		{[]int64{100, 200, 300, 400}, 1},
		{[]int64{-100, -200, -300, -400}, 0},
		{[]int64{100, -200, 300, -400}, 0.5},
		// Only the trailing 4 of 6 count.
		{[]int64{-1, -1, 100, 100, 100, 100}, 1},
		{nil, 0},
	}
	for _, tt := range tests {
		got := m.cashFlowPositivity(snapshot(0, nil, tt.nets))
		if got != tt.want {
			t.Errorf("nets %v: positivity = %g, want %g", tt.nets, got, tt.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	good := DefaultConfig()
	if err := good.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	bad := DefaultConfig()
	bad.HorizonPeriods = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero horizon accepted")
	}

	bad = DefaultConfig()
	bad.WeightCashFlow, bad.WeightDiversification, bad.WeightTrend = 0, 0, 0
	if err := bad.Validate(); err == nil {
		t.Error("zero weights accepted")
	}

	bad = DefaultConfig()
	bad.ConcentrationThreshold = 120
	if err := bad.Validate(); err == nil {
		t.Error("threshold above 100 accepted")
	}

	bad = DefaultConfig()
	bad.AnomalyZScore = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero anomaly z-score accepted")
	}
}
