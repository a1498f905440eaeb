// Package tokenstore persists the session's bearer token across restarts.
// The token is the only durable session state; user and plan are always
// re-derived from the server on bootstrap.
package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Stay03/transcribeThis/internal/dbx"
)

// tokenKey is the fixed storage key of the durable token.
const tokenKey = "access_token"

// Repository stores at most one token. Get returns "" when none is stored.
//
// Single-writer: only the session store mutates it. Readers must fetch fresh
// on every use and never cache the value.
type Repository interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// SQLiteRepository keeps the token in the session_store table of the local
// client database. It works against dbx.DBTX, so it reads and writes the
// same way inside and outside a transaction.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM session_store WHERE key = ?`, tokenKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get stored token: %w", err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session_store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, tokenKey, token)
	if err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session_store WHERE key = ?`, tokenKey)
	if err != nil {
		return fmt.Errorf("failed to clear stored token: %w", err)
	}
	return nil
}
