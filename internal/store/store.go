package store

import (
	"context"

	"FinanceSentinel/internal/model"
)

// Store persists the full ledger contents. The engine treats the
// on-disk format as opaque; the only contract is that save/load
// round-trips every Account and Transaction field exactly, preserving
// order.
type Store interface {
	Load(ctx context.Context) ([]model.Account, []model.Transaction, error)
	Save(ctx context.Context, accounts []model.Account, txns []model.Transaction) error
	Close() error
}
