package report

import (
	"strings"
	"testing"
	"time"

	"FinanceSentinel/internal/model"
	"FinanceSentinel/internal/refresh"

	"github.com/shopspring/decimal"
)

func TestFormatSummary(t *testing.T) {
	snap := &model.AggregateSnapshot{
		AsOf:          time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
		LedgerVersion: 7,
		Currency:      "USD",
		Period:        model.PeriodMonth,
		NetWorth:      575000,
		TotalIncome:   600000,
		TotalExpenses: 25000,
		SavingsRate:   95.8,
		Allocation: map[string]decimal.Decimal{
			"cash":   decimal.NewFromFloat(13.0),
			"equity": decimal.NewFromFloat(87.0),
		},
		CashFlow: []model.CashFlowBucket{
			{Start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Net: 575000},
		},
	}
	pred := &model.PredictionResult{
		HorizonPeriods: 2,
		HealthScore:    81.5,
		Forecast: []model.ForecastPoint{
			{PeriodsAhead: 1, Value: 600000, Low: 590000, High: 610000},
			{PeriodsAhead: 2, Value: 625000, Low: 605000, High: 645000},
		},
		RiskFlags: []model.RiskFlag{model.RiskLowDiversification},
		Anomalies: []model.Anomaly{{
			TransactionID: "tx1",
			Timestamp:     time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			Amount:        -90000,
			Category:      "electronics",
			ZScore:        2.85,
			Kind:          model.AnomalyHighSpending,
		}},
	}

	out := FormatSummary(&refresh.Published{LedgerVersion: 7, Snapshot: snap, Prediction: pred})

	for _, want := range []string{
		"ledger v7",
		"$5,750.00",
		"cash",
		"13.0%",
		"2026-03",
		"Health score: 81.5/100",
		"LOW_DIVERSIFICATION",
		"Unusual expenses:",
		"2026-03-14  $900.00 (electronics) well above your usual spending (z=2.85)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestFormatSummary_NoPrediction(t *testing.T) {
	snap := &model.AggregateSnapshot{
		AsOf:     time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
		Currency: "USD",
		Period:   model.PeriodMonth,
	}
	out := FormatSummary(&refresh.Published{LedgerVersion: 1, Snapshot: snap})
	if !strings.Contains(out, "Prediction: unavailable") {
		t.Errorf("missing fallback line:\n%s", out)
	}
}
