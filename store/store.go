// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/bookreview/db"
)

// Store is the persistence layer for every domain table.
// It is safe for concurrent use; all shared state lives in the *sql.DB pool.
type Store struct {
	conn    *sql.DB
	dialect db.Dialect
	now     func() time.Time
}

// New wraps an open connection pool.
func New(conn *sql.DB, dialect db.Dialect) *Store {
	return &Store{
		conn:    conn,
		dialect: dialect,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// DB returns the underlying pool.
func (s *Store) DB() *sql.DB {
	return s.conn
}

// withTx runs fn in a transaction, committing when fn returns nil.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.Warn("transaction rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
