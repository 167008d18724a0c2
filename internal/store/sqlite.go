package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"FinanceSentinel/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists the ledger to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so the presentation layer can read while the engine saves.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			type        TEXT NOT NULL,
			asset_class TEXT NOT NULL,
			position    INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id           TEXT PRIMARY KEY,
			ts_unix_nano INTEGER NOT NULL,
			amount       INTEGER NOT NULL,
			category     TEXT NOT NULL,
			description  TEXT NOT NULL,
			account_id   TEXT NOT NULL,
			position     INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_txn_ts ON transactions(ts_unix_nano)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Load returns all accounts and transactions in saved order.
func (s *SQLiteStore) Load(ctx context.Context) ([]model.Account, []model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, type, asset_class FROM accounts ORDER BY position`)
	if err != nil {
		return nil, nil, fmt.Errorf("query accounts: %w", err)
	}
	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.AssetClass); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate accounts: %w", err)
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT id, ts_unix_nano, amount, category, description, account_id
		 FROM transactions ORDER BY position`)
	if err != nil {
		return nil, nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()
	var txns []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var ns int64
		if err := rows.Scan(&t.ID, &ns, &t.Amount, &t.Category, &t.Description, &t.AccountID); err != nil {
			return nil, nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Timestamp = time.Unix(0, ns).UTC()
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return accounts, txns, nil
}

// Save replaces the stored ledger with the given contents atomically.
func (s *SQLiteStore) Save(ctx context.Context, accounts []model.Account, txns []model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts`); err != nil {
		return fmt.Errorf("clear accounts: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	for i, a := range accounts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (id, name, type, asset_class, position) VALUES (?,?,?,?,?)`,
			a.ID, a.Name, string(a.Type), a.AssetClass, i); err != nil {
			return fmt.Errorf("insert account %q: %w", a.ID, err)
		}
	}
	for i, t := range txns {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (id, ts_unix_nano, amount, category, description, account_id, position)
			 VALUES (?,?,?,?,?,?,?)`,
			t.ID, t.Timestamp.UnixNano(), t.Amount, t.Category, t.Description, t.AccountID, i); err != nil {
			return fmt.Errorf("insert transaction %q: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
