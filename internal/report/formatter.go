// Package report renders published results as plain text for the
// interactive shell.
package report

import (
	"fmt"
	"sort"
	"strings"

	"FinanceSentinel/internal/model"
	"FinanceSentinel/internal/refresh"

	"github.com/Rhymond/go-money"
)

// amount renders a minor-unit value in the snapshot currency.
func amount(minor int64, currency string) string {
	return money.New(minor, currency).Display()
}

// FormatSummary formats a published pair into the overview report.
func FormatSummary(p *refresh.Published) string {
	var b strings.Builder
	snap := p.Snapshot

	b.WriteString(fmt.Sprintf("Financial summary | %s (ledger v%d)\n\n",
		snap.AsOf.Format("2006-01-02 15:04"), p.LedgerVersion))

	b.WriteString(fmt.Sprintf("Net worth: %s\n", amount(snap.NetWorth, snap.Currency)))
	b.WriteString(fmt.Sprintf("Income: %s | Expenses: %s | Savings rate: %.1f%%\n\n",
		amount(snap.TotalIncome, snap.Currency),
		amount(snap.TotalExpenses, snap.Currency),
		snap.SavingsRate))

	if len(snap.Allocation) > 0 {
		b.WriteString("Allocation by asset class:\n")
		classes := make([]string, 0, len(snap.Allocation))
		for class := range snap.Allocation {
			classes = append(classes, class)
		}
		sort.Strings(classes)
		for _, class := range classes {
			b.WriteString(fmt.Sprintf("  %-12s %6s%%\n", class, snap.Allocation[class].StringFixed(1)))
		}
		b.WriteString("\n")
	}

	if len(snap.CashFlow) > 0 {
		b.WriteString(fmt.Sprintf("Cash flow (%s):\n", snap.Period))
		for _, bucket := range snap.CashFlow {
			b.WriteString(fmt.Sprintf("  %-10s %s\n",
				snap.Period.Label(bucket.Start), amount(bucket.Net, snap.Currency)))
		}
		b.WriteString("\n")
	}

	if p.Prediction != nil {
		b.WriteString(FormatPrediction(p.Prediction, snap.Currency))
	} else {
		b.WriteString("Prediction: unavailable (not enough history yet)\n")
	}

	return b.String()
}

// FormatPrediction formats the forecast, health score, and advisories.
func FormatPrediction(pred *model.PredictionResult, currency string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Health score: %.1f/100 (cash flow %.2f | diversification %.2f | trend %.2f)\n",
		pred.HealthScore, pred.Breakdown.CashFlow, pred.Breakdown.Diversification, pred.Breakdown.Trend))

	b.WriteString(fmt.Sprintf("Forecast (%d periods ahead):\n", pred.HorizonPeriods))
	for _, pt := range pred.Forecast {
		b.WriteString(fmt.Sprintf("  +%d: %s  [%s .. %s]\n",
			pt.PeriodsAhead, amount(pt.Value, currency),
			amount(pt.Low, currency), amount(pt.High, currency)))
	}

	for _, flag := range pred.RiskFlags {
		b.WriteString("  " + advisory(flag) + "\n")
	}

	if len(pred.Anomalies) > 0 {
		b.WriteString("Unusual expenses:\n")
		for _, a := range pred.Anomalies {
			label := "well above"
			if a.Kind == model.AnomalyLowSpending {
				label = "well below"
			}
			b.WriteString(fmt.Sprintf("  %s  %s (%s) %s your usual spending (z=%.2f)\n",
				a.Timestamp.Format("2006-01-02"), amount(-a.Amount, currency),
				a.Category, label, a.ZScore))
		}
	}
	return b.String()
}

// advisory maps a risk flag to its user-facing recommendation.
func advisory(flag model.RiskFlag) string {
	switch flag {
	case model.RiskLowDiversification:
		return "⚠ LOW_DIVERSIFICATION: one asset class dominates your portfolio; consider spreading holdings"
	case model.RiskNegativeTrend:
		return "⚠ NEGATIVE_TREND: net worth is trending down; review recurring spending"
	default:
		return string(flag)
	}
}
