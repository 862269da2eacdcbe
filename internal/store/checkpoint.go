package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Checkpoint keys written by the pipeline. Per-date fingerprints use the
// CheckpointDayFingerprint prefix followed by the date key.
const (
	CheckpointLastRunAt      = "last_run_at"
	CheckpointDayFingerprint = "day_fingerprint:"
)

// GetCheckpoint returns the stored value for a key.
// The second return value is false when the key has never been set.
func (s *Store) GetCheckpoint(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM checkpoints WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get checkpoint %q: %w", key, err)
	}
	return value, true, nil
}

// SetCheckpoint stores a value under a key, overwriting any previous one.
func (s *Store) SetCheckpoint(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO checkpoints (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set checkpoint %q: %w", key, err)
	}
	return nil
}
