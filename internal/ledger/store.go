// Package ledger owns the canonical set of transactions and accounts.
// Mutations are serialized; reads take point-in-time consistent copies
// so concurrent recomputation never observes a half-applied mutation.
package ledger

import (
	"fmt"
	"iter"
	"sort"
	"sync"
	"time"

	"FinanceSentinel/internal/model"

	"github.com/google/uuid"
)

// Store is the authoritative ledger. It is safe for concurrent use:
// a single mutex serializes writers, readers receive value copies.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]model.Account
	acctIDs  []string // insertion order, for deterministic Contents
	txns     []model.Transaction
	version  uint64
	onMutate func()
}

// NewStore creates an empty ledger.
func NewStore() *Store {
	return &Store{accounts: make(map[string]model.Account)}
}

// SetOnMutate registers the invalidation hook called after every
// successful mutation. It signals that cached aggregates are stale; it
// must not block.
func (s *Store) SetOnMutate(fn func()) {
	s.mu.Lock()
	s.onMutate = fn
	s.mu.Unlock()
}

// Version returns the current ledger version. It increments on every
// successful mutation.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// AddAccount appends a new account.
func (s *Store) AddAccount(a model.Account) error {
	if a.ID == "" {
		return &ValidationError{Field: "account.id", Reason: "must not be empty"}
	}
	if !a.Type.Valid() {
		return &ValidationError{Field: "account.type", Reason: fmt.Sprintf("unknown type %q", a.Type)}
	}
	if a.AssetClass == "" {
		a.AssetClass = string(a.Type)
	}

	s.mu.Lock()
	if _, ok := s.accounts[a.ID]; ok {
		s.mu.Unlock()
		return fmt.Errorf("account %q: %w", a.ID, ErrDuplicateKey)
	}
	s.accounts[a.ID] = a
	s.acctIDs = append(s.acctIDs, a.ID)
	s.version++
	notify := s.onMutate
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	return nil
}

// AddTransaction validates and appends a transaction, generating an ID
// when the caller supplies none. The stored transaction is returned.
func (s *Store) AddTransaction(t model.Transaction) (model.Transaction, error) {
	if t.Timestamp.IsZero() {
		return model.Transaction{}, &ValidationError{Field: "transaction.timestamp", Reason: "must be set"}
	}
	if t.AccountID == "" {
		return model.Transaction{}, &ValidationError{Field: "transaction.account_id", Reason: "must not be empty"}
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.Timestamp = t.Timestamp.UTC()

	s.mu.Lock()
	if _, ok := s.accounts[t.AccountID]; !ok {
		s.mu.Unlock()
		return model.Transaction{}, &ValidationError{
			Field:  "transaction.account_id",
			Reason: fmt.Sprintf("unknown account %q", t.AccountID),
		}
	}
	if s.indexOf(t.ID) >= 0 {
		s.mu.Unlock()
		return model.Transaction{}, fmt.Errorf("transaction %q: %w", t.ID, ErrDuplicateKey)
	}
	s.txns = append(s.txns, t)
	s.version++
	notify := s.onMutate
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	return t, nil
}

// TransactionPatch holds the fields an edit may change. Nil fields are
// left untouched. A transaction's account can never be re-pointed;
// moving money between accounts is two reversing entries.
type TransactionPatch struct {
	Amount      *int64
	Timestamp   *time.Time
	Category    *string
	Description *string
}

// EditTransaction applies a patch to an existing transaction and marks
// derived aggregates stale.
func (s *Store) EditTransaction(id string, patch TransactionPatch) error {
	if patch.Timestamp != nil && patch.Timestamp.IsZero() {
		return &ValidationError{Field: "transaction.timestamp", Reason: "must be set"}
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("transaction %q: %w", id, ErrNotFound)
	}
	t := &s.txns[i]
	if patch.Amount != nil {
		t.Amount = *patch.Amount
	}
	if patch.Timestamp != nil {
		t.Timestamp = patch.Timestamp.UTC()
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	s.version++
	notify := s.onMutate
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	return nil
}

// DeleteTransaction removes a transaction and marks derived aggregates
// stale.
func (s *Store) DeleteTransaction(id string) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("transaction %q: %w", id, ErrNotFound)
	}
	s.txns = append(s.txns[:i], s.txns[i+1:]...)
	s.version++
	notify := s.onMutate
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	return nil
}

// indexOf returns the insertion index of a transaction ID, -1 if absent.
// Caller holds the lock.
func (s *Store) indexOf(id string) int {
	for i := range s.txns {
		if s.txns[i].ID == id {
			return i
		}
	}
	return -1
}

// Filter narrows ListTransactions. Zero fields match everything; the
// date bounds are inclusive.
type Filter struct {
	From      time.Time
	To        time.Time
	AccountID string
	Category  string
}

func (f Filter) matches(t model.Transaction) bool {
	if !f.From.IsZero() && t.Timestamp.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.Timestamp.After(f.To) {
		return false
	}
	if f.AccountID != "" && t.AccountID != f.AccountID {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	return true
}

// ListTransactions returns a restartable sequence of matching
// transactions in timestamp order, insertion order breaking ties. The
// sequence iterates a point-in-time copy, so it is unaffected by later
// mutation.
func (s *Store) ListTransactions(f Filter) iter.Seq[model.Transaction] {
	sorted := s.sortedCopy()
	return func(yield func(model.Transaction) bool) {
		for _, t := range sorted {
			if !f.matches(t) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// SnapshotForRead returns an immutable point-in-time view for
// recomputation. The view shares nothing with the store.
func (s *Store) SnapshotForRead() View {
	s.mu.RLock()
	accounts := make([]model.Account, 0, len(s.acctIDs))
	for _, id := range s.acctIDs {
		accounts = append(accounts, s.accounts[id])
	}
	txns := make([]model.Transaction, len(s.txns))
	copy(txns, s.txns)
	version := s.version
	s.mu.RUnlock()

	sortByTimestamp(txns)
	return View{Version: version, Accounts: accounts, Transactions: txns}
}

// Replace swaps in the full ledger contents, used to seed the store
// from the persistence layer at startup. Records are validated the
// same way as individual adds.
func (s *Store) Replace(accounts []model.Account, txns []model.Transaction) error {
	seen := make(map[string]model.Account, len(accounts))
	ids := make([]string, 0, len(accounts))
	for _, a := range accounts {
		if a.ID == "" {
			return &ValidationError{Field: "account.id", Reason: "must not be empty"}
		}
		if !a.Type.Valid() {
			return &ValidationError{Field: "account.type", Reason: fmt.Sprintf("unknown type %q", a.Type)}
		}
		if _, ok := seen[a.ID]; ok {
			return fmt.Errorf("account %q: %w", a.ID, ErrDuplicateKey)
		}
		if a.AssetClass == "" {
			a.AssetClass = string(a.Type)
		}
		seen[a.ID] = a
		ids = append(ids, a.ID)
	}
	txnIDs := make(map[string]struct{}, len(txns))
	clean := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.ID == "" || t.Timestamp.IsZero() {
			return &ValidationError{Field: "transaction", Reason: "id and timestamp must be set"}
		}
		if _, ok := seen[t.AccountID]; !ok {
			return &ValidationError{
				Field:  "transaction.account_id",
				Reason: fmt.Sprintf("unknown account %q", t.AccountID),
			}
		}
		if _, ok := txnIDs[t.ID]; ok {
			return fmt.Errorf("transaction %q: %w", t.ID, ErrDuplicateKey)
		}
		txnIDs[t.ID] = struct{}{}
		t.Timestamp = t.Timestamp.UTC()
		clean = append(clean, t)
	}

	s.mu.Lock()
	s.accounts = seen
	s.acctIDs = ids
	s.txns = clean
	s.version++
	notify := s.onMutate
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	return nil
}

// Contents returns copies of all accounts and transactions in insertion
// order, for the persistence layer to save.
func (s *Store) Contents() ([]model.Account, []model.Transaction) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := make([]model.Account, 0, len(s.acctIDs))
	for _, id := range s.acctIDs {
		accounts = append(accounts, s.accounts[id])
	}
	txns := make([]model.Transaction, len(s.txns))
	copy(txns, s.txns)
	return accounts, txns
}

func (s *Store) sortedCopy() []model.Transaction {
	s.mu.RLock()
	txns := make([]model.Transaction, len(s.txns))
	copy(txns, s.txns)
	s.mu.RUnlock()
	sortByTimestamp(txns)
	return txns
}

// sortByTimestamp orders by timestamp ascending; the stable sort keeps
// insertion order for equal timestamps.
func sortByTimestamp(txns []model.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Timestamp.Before(txns[j].Timestamp)
	})
}
