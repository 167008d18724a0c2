package ledger

import "FinanceSentinel/internal/model"

// View is an immutable point-in-time copy of the ledger, tagged with
// the version it was taken at. Recomputation reads only views, never
// the live store.
type View struct {
	Version      uint64
	Accounts     []model.Account
	Transactions []model.Transaction // timestamp ascending, insertion order on ties
}

// Balances folds each account's transactions into its current balance.
// An account's balance is by definition the running sum of its signed
// amounts in timestamp order.
func (v View) Balances() map[string]int64 {
	balances := make(map[string]int64, len(v.Accounts))
	for _, a := range v.Accounts {
		balances[a.ID] = 0
	}
	for _, t := range v.Transactions {
		balances[t.AccountID] += t.Amount
	}
	return balances
}
