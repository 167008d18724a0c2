package store

import (
	"context"

	"FinanceSentinel/internal/model"
)

// NoopStore is a no-op implementation used when SQLite is not configured.
// Loads are empty and saves are discarded.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) Load(_ context.Context) ([]model.Account, []model.Transaction, error) {
	return nil, nil, nil
}

func (n *NoopStore) Save(_ context.Context, _ []model.Account, _ []model.Transaction) error {
	return nil
}

func (n *NoopStore) Close() error { return nil }
