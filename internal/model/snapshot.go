package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashFlowBucket is the net signed amount of one period.
type CashFlowBucket struct {
	Start time.Time
	Net   int64
}

// AggregateSnapshot is a derived, point-in-time summary of the ledger.
// It is immutable once produced; each recompute supersedes the previous
// snapshot wholesale.
type AggregateSnapshot struct {
	AsOf          time.Time
	LedgerVersion uint64
	Currency      string
	Period        Period

	// NetWorth is the sum of all account balances, minor units.
	NetWorth int64

	// Balances maps account ID to its derived balance.
	Balances map[string]int64

	// CashFlow holds one bucket per period across the covered range,
	// gap-free: periods with no transactions appear with Net == 0.
	CashFlow []CashFlowBucket

	// Allocation maps asset class to its percentage of net worth.
	// Percentages sum to 100 within tolerance when NetWorth > 0 and are
	// all zero otherwise.
	Allocation map[string]decimal.Decimal

	TotalIncome      int64
	TotalExpenses    int64
	SavingsRate      float64 // percent of income retained, 0 when income is 0
	CategoryExpenses map[string]int64
}
