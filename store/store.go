// Package store is the durable, transactional record of sessions, players,
// nation states, card draws and logs. It is the single source of truth:
// nothing game-related is cached in process.
package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps a SQLite database. Every mutating unit of work runs through
// Transact; SQLite's single writer serialises concurrent transactions, which
// stands in for the row-level locking a bigger relational store would use.
type Store struct {
	db *sql.DB
}

// Open opens (and if necessary creates) the database at path and applies any
// pending migrations. The _txlock=immediate option makes every transaction
// take the write lock up front, so two requests racing on the same session
// queue instead of failing halfway through.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}

	dsn := path + "?_txlock=immediate" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=foreign_keys(ON)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := applyMigrations(db, migrationsFS); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database. Nil-safe so callers can defer it in
// every startup path.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Tx exposes the store's accessors within one transaction.
type Tx struct {
	tx *sql.Tx
}

// Transact runs fn inside a single transaction, committing on nil and
// rolling back on error. No partial writes ever become visible.
func (s *Store) Transact(ctx context.Context, fn func(*Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(&Tx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}
