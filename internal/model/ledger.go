package model

import "time"

// AccountType classifies an account.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountInvestment AccountType = "investment"
	AccountCredit     AccountType = "credit"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountInvestment, AccountCredit:
		return true
	}
	return false
}

// Account is a container for transactions. Its balance is always derived
// from the fold of its transactions, never stored.
type Account struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Type       AccountType `json:"type"`
	AssetClass string      `json:"asset_class"`
}

// Transaction is an immutable ledger entry. Amount is in currency minor
// units (cents), signed: positive for inflow, negative for outflow.
type Transaction struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Amount      int64     `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	AccountID   string    `json:"account_id"`
}
