package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/screenday/screenday/internal/aggregate"
)

// AppMetadata returns the full app-metadata collection, ordered by
// package for determinism.
func (s *Store) AppMetadata(ctx context.Context) ([]aggregate.AppMeta, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT package, user_visible, hide_override
		FROM app_metadata
		ORDER BY package ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query app metadata: %w", err)
	}
	defer rows.Close()

	metas := []aggregate.AppMeta{}
	for rows.Next() {
		var (
			m        aggregate.AppMeta
			visible  int
			override sql.NullInt64
		)
		if err := rows.Scan(&m.PackageName, &visible, &override); err != nil {
			return nil, fmt.Errorf("scan app metadata: %w", err)
		}
		m.UserVisible = visible != 0
		if override.Valid {
			hidden := override.Int64 != 0
			m.HideOverride = &hidden
		}
		metas = append(metas, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate app metadata: %w", err)
	}

	return metas, nil
}

// UpsertAppMetadata inserts or updates one app's visibility metadata.
// Written by the host's metadata sync, read by every aggregation run.
func (s *Store) UpsertAppMetadata(ctx context.Context, meta aggregate.AppMeta) error {
	var override sql.NullInt64
	if meta.HideOverride != nil {
		override = sql.NullInt64{Valid: true}
		if *meta.HideOverride {
			override.Int64 = 1
		}
	}
	visible := 0
	if meta.UserVisible {
		visible = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_metadata (package, user_visible, hide_override)
		VALUES (?, ?, ?)
		ON CONFLICT(package) DO UPDATE SET
			user_visible = excluded.user_visible,
			hide_override = excluded.hide_override
	`, meta.PackageName, visible, override)
	if err != nil {
		return fmt.Errorf("upsert app metadata: %w", err)
	}
	return nil
}
