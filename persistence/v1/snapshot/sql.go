package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQL keeps one row per key in the snapshots table
type SQL struct {
	db      *sql.DB
	timeout time.Duration
}

func NewSQL(db *sql.DB, timeout time.Duration) *SQL {
	return &SQL{db: db, timeout: timeout}
}

func (s *SQL) Load(ctx context.Context, key string) ([]byte, error) {
	dbCtx, dbCancel := withTimeout(ctx, s.timeout)
	defer dbCancel()
	stmt, err := s.db.PrepareContext(dbCtx, "SELECT payload FROM snapshots WHERE name = ?")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare load stmt: %w", err)
	}
	defer stmt.Close()

	var payload string
	err = stmt.QueryRowContext(dbCtx, key).Scan(&payload)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("failed to query load stmt: %w", err)
	default:
		return []byte(payload), nil
	}
}

// Save replaces the row for key
func (s *SQL) Save(ctx context.Context, key string, data []byte) error {
	n := time.Now().UTC()

	dbCtx, dbCancel := withTimeout(ctx, s.timeout)
	defer dbCancel()
	if _, err := s.db.ExecContext(dbCtx, "DELETE FROM snapshots WHERE name = ?", key); err != nil {
		return fmt.Errorf("failed to exec delete stmt: %w", err)
	}
	stmt, err := s.db.PrepareContext(dbCtx, "INSERT INTO snapshots (name, payload, updatedAt) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert stmt: %w", err)
	}
	defer stmt.Close()
	if _, err = stmt.ExecContext(dbCtx, key, string(data), n); err != nil {
		return fmt.Errorf("failed to exec insert stmt: %w", err)
	}
	return nil
}
