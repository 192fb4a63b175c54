package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/readloop/internal/shared"
)

// SQLiteSlot stores values in the slots table created by the embedded migrations.
type SQLiteSlot struct {
	db *sql.DB
}

// NewSQLiteSlot wraps db, which must already be migrated. The slot takes ownership of db.
func NewSQLiteSlot(db *sql.DB) *SQLiteSlot {
	return &SQLiteSlot{db: db}
}

// Read returns the value stored under key.
func (s *SQLiteSlot) Read(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM slots WHERE name = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSlotEmpty, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query slot: %w", err)
	}
	return value, nil
}

// Write upserts value under key.
func (s *SQLiteSlot) Write(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO slots (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to write slot: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}
