// Package store provides the SQLite-backed local order journal.
// Uses ncruces/go-sqlite3/driver which provides a database/sql interface.
package store

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// SQLiteStore is the SQLite-backed order journal.
// Thread-safe for concurrent message handlers.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS orders (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at INTEGER NOT NULL,
    customer TEXT NOT NULL,
    product TEXT NOT NULL,
    amount_value TEXT NOT NULL DEFAULT '',
    amount_unit TEXT NOT NULL DEFAULT '',
    comment TEXT NOT NULL DEFAULT '',
    author TEXT NOT NULL DEFAULT '',
    customer_matched INTEGER NOT NULL DEFAULT 0,
    product_matched INTEGER NOT NULL DEFAULT 0,
    sheet_status TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at);
CREATE INDEX IF NOT EXISTS idx_orders_sheet_status ON orders(sheet_status);
`

// NewSQLiteStore creates a new in-memory journal. Used by tests.
func NewSQLiteStore() (*SQLiteStore, error) {
	return NewSQLiteStoreWithDSN(":memory:")
}

// NewSQLiteStoreWithDSN creates a journal with a specific data source name.
// Use ":memory:" for in-memory or a file path for persistent storage.
func NewSQLiteStoreWithDSN(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// AppendOrder journals one entry and fills in its assigned ID.
func (s *SQLiteStore) AppendOrder(rec *OrderRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		INSERT INTO orders (created_at, customer, product, amount_value, amount_unit,
			comment, author, customer_matched, product_matched, sheet_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.CreatedAt, rec.Customer, rec.Product, rec.AmountValue, rec.AmountUnit,
		rec.Comment, rec.Author, boolToInt(rec.CustomerMatched), boolToInt(rec.ProductMatched),
		rec.SheetStatus)
	if err != nil {
		return fmt.Errorf("store: append order: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("store: last insert id: %w", err)
	}
	rec.ID = id
	return nil
}

// ListOrders returns the most recent orders, newest first. limit <= 0
// means no limit.
func (s *SQLiteStore) ListOrders(limit int) ([]*OrderRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, created_at, customer, product, amount_value, amount_unit,
			comment, author, customer_matched, product_matched, sheet_status
		FROM orders ORDER BY id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

// ListFailedOrders returns entries whose sheet append failed, oldest
// first, for recovery.
func (s *SQLiteStore) ListFailedOrders() ([]*OrderRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, created_at, customer, product, amount_value, amount_unit,
			comment, author, customer_matched, product_matched, sheet_status
		FROM orders WHERE sheet_status = ? ORDER BY id ASC
	`, SheetStatusFailed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

// CountOrders returns the total number of journaled orders.
func (s *SQLiteStore) CountOrders() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM orders").Scan(&count)
	return count, err
}

func scanOrders(rows *sql.Rows) ([]*OrderRecord, error) {
	var records []*OrderRecord
	for rows.Next() {
		var rec OrderRecord
		var customerMatched, productMatched int
		if err := rows.Scan(
			&rec.ID, &rec.CreatedAt, &rec.Customer, &rec.Product, &rec.AmountValue,
			&rec.AmountUnit, &rec.Comment, &rec.Author, &customerMatched, &productMatched,
			&rec.SheetStatus,
		); err != nil {
			return nil, err
		}
		rec.CustomerMatched = customerMatched != 0
		rec.ProductMatched = productMatched != 0
		records = append(records, &rec)
	}
	return records, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Compile-time interface check
var _ Storer = (*SQLiteStore)(nil)
