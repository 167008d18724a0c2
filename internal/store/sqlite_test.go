package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"FinanceSentinel/internal/model"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	accounts := []model.Account{
		{ID: "checking", Name: "Main Checking", Type: model.AccountChecking, AssetClass: "cash"},
		{ID: "broker", Name: "Brokerage", Type: model.AccountInvestment, AssetClass: "equity"},
	}
	txns := []model.Transaction{
		{
			ID:          "t1",
			Timestamp:   time.Date(2026, 2, 14, 9, 30, 15, 123456789, time.UTC),
			Amount:      -4250,
			Category:    "food",
			Description: "groceries",
			AccountID:   "checking",
		},
		{
			ID:          "t2",
			Timestamp:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			Amount:      500000,
			Category:    "transfer",
			Description: "",
			AccountID:   "broker",
		},
	}

	if err := s.Save(ctx, accounts, txns); err != nil {
		t.Fatalf("save: %v", err)
	}

	gotAccounts, gotTxns, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(gotAccounts) != len(accounts) {
		t.Fatalf("accounts: got %d, want %d", len(gotAccounts), len(accounts))
	}
	for i := range accounts {
		if gotAccounts[i] != accounts[i] {
			t.Errorf("account %d: got %+v, want %+v", i, gotAccounts[i], accounts[i])
		}
	}

	if len(gotTxns) != len(txns) {
		t.Fatalf("transactions: got %d, want %d", len(gotTxns), len(txns))
	}
	for i := range txns {
		if !gotTxns[i].Timestamp.Equal(txns[i].Timestamp) {
			t.Errorf("transaction %d timestamp: got %v, want %v", i, gotTxns[i].Timestamp, txns[i].Timestamp)
		}
		gotTxns[i].Timestamp = txns[i].Timestamp
		if gotTxns[i] != txns[i] {
			t.Errorf("transaction %d: got %+v, want %+v", i, gotTxns[i], txns[i])
		}
	}
}

func TestSQLiteStore_SaveReplacesContents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := []model.Account{{ID: "old", Name: "Old", Type: model.AccountSavings, AssetClass: "cash"}}
	if err := s.Save(ctx, first, nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := []model.Account{{ID: "new", Name: "New", Type: model.AccountChecking, AssetClass: "cash"}}
	if err := s.Save(ctx, second, nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	accounts, txns, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(accounts) != 1 || accounts[0].ID != "new" {
		t.Errorf("expected only the replacement account, got %+v", accounts)
	}
	if len(txns) != 0 {
		t.Errorf("expected no transactions, got %d", len(txns))
	}
}

func TestSQLiteStore_EmptyLoad(t *testing.T) {
	s := openTestStore(t)
	accounts, txns, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(accounts) != 0 || len(txns) != 0 {
		t.Errorf("fresh database not empty: %d accounts, %d txns", len(accounts), len(txns))
	}
}
