// Package aggregate derives summary metrics from a ledger view: net
// worth, per-period cash flow, and asset-class allocation. Given valid
// input it is total: every recompute yields a well-formed snapshot.
package aggregate

import (
	"time"

	"FinanceSentinel/internal/ledger"
	"FinanceSentinel/internal/model"

	"github.com/shopspring/decimal"
)

// Engine recomputes aggregate snapshots. It holds no mutable state and
// is safe for concurrent use.
type Engine struct {
	period   model.Period
	currency string
	now      func() time.Time
}

// NewEngine creates an Engine bucketing cash flow at the given
// granularity.
func NewEngine(period model.Period, currency string) *Engine {
	return &Engine{period: period, currency: currency, now: func() time.Time { return time.Now().UTC() }}
}

// Recompute builds a fresh snapshot from the view. An empty ledger
// yields a zero-valued snapshot, never an error.
func (e *Engine) Recompute(view ledger.View) *model.AggregateSnapshot {
	balances := view.Balances()

	var netWorth int64
	for _, b := range balances {
		netWorth += b
	}

	snap := &model.AggregateSnapshot{
		AsOf:             e.now(),
		LedgerVersion:    view.Version,
		Currency:         e.currency,
		Period:           e.period,
		NetWorth:         netWorth,
		Balances:         balances,
		CashFlow:         bucketCashFlow(view.Transactions, e.period),
		Allocation:       allocate(view.Accounts, balances, netWorth),
		CategoryExpenses: make(map[string]int64),
	}

	for _, t := range view.Transactions {
		if t.Amount >= 0 {
			snap.TotalIncome += t.Amount
		} else {
			snap.TotalExpenses += -t.Amount
			snap.CategoryExpenses[t.Category] += -t.Amount
		}
	}
	if snap.TotalIncome > 0 {
		snap.SavingsRate = float64(snap.TotalIncome-snap.TotalExpenses) / float64(snap.TotalIncome) * 100
	}
	return snap
}

// bucketCashFlow groups transactions into period buckets and fills the
// gaps, so the result covers the full range from the first to the last
// transaction with no missing periods.
func bucketCashFlow(txns []model.Transaction, period model.Period) []model.CashFlowBucket {
	if len(txns) == 0 {
		return nil
	}

	sums := make(map[time.Time]int64)
	for _, t := range txns {
		sums[period.Start(t.Timestamp)] += t.Amount
	}

	// txns arrive timestamp-sorted, so first and last bound the range.
	first := period.Start(txns[0].Timestamp)
	last := period.Start(txns[len(txns)-1].Timestamp)

	var buckets []model.CashFlowBucket
	for start := first; !start.After(last); start = period.Next(start) {
		buckets = append(buckets, model.CashFlowBucket{Start: start, Net: sums[start]})
	}
	return buckets
}

// allocate computes each asset class's share of net worth. All shares
// are zero when net worth is non-positive, avoiding division by zero
// and meaningless percentages.
func allocate(accounts []model.Account, balances map[string]int64, netWorth int64) map[string]decimal.Decimal {
	allocation := make(map[string]decimal.Decimal, len(accounts))
	if netWorth <= 0 {
		for _, a := range accounts {
			allocation[a.AssetClass] = decimal.Zero
		}
		return allocation
	}

	classTotals := make(map[string]int64)
	for _, a := range accounts {
		classTotals[a.AssetClass] += balances[a.ID]
	}

	hundred := decimal.NewFromInt(100)
	net := decimal.NewFromInt(netWorth)
	for class, total := range classTotals {
		allocation[class] = decimal.NewFromInt(total).Mul(hundred).DivRound(net, 4)
	}
	return allocation
}
