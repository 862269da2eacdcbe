package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/screenday/screenday/internal/aggregate"
)

// ReplaceDay atomically replaces every derived row for the result's date.
//
// All three tables are cleared for the date and repopulated inside one
// transaction: readers observe either the previous complete set or the new
// one, never a mix. Re-running with an unchanged result rewrites identical
// rows, so the operation is idempotent at the content level.
func (s *Store) ReplaceDay(ctx context.Context, result aggregate.DayResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace day: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := deleteDayTx(ctx, tx, result.Date); err != nil {
		return fmt.Errorf("replace day: %w", err)
	}

	for _, sess := range result.Scrolls {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO scroll_sessions
			(package, start_ts, end_ts, amount, date, end_reason, data_type)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			sess.PackageName,
			sess.StartTime,
			sess.EndTime,
			sess.ScrollAmount,
			sess.Date,
			string(sess.EndReason),
			string(sess.DataType),
		); err != nil {
			return fmt.Errorf("replace day: insert scroll session: %w", err)
		}
	}

	for _, rec := range result.Usage {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO app_usage_daily
			(package, date, usage_ms, active_ms, open_count, notification_count, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			rec.PackageName,
			rec.Date,
			rec.UsageTime,
			rec.ActiveTime,
			rec.OpenCount,
			rec.NotificationCount,
			rec.UpdatedAt,
		); err != nil {
			return fmt.Errorf("replace day: insert usage record: %w", err)
		}
	}

	sum := result.Summary
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO device_summary_daily
		(date, total_usage_ms, unlock_count, first_unlock_ts, last_unlock_ts, notification_count, app_opens, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		sum.Date,
		sum.TotalUsageTime,
		sum.UnlockCount,
		nullableTS(sum.FirstUnlock),
		nullableTS(sum.LastUnlock),
		sum.NotificationCount,
		sum.AppOpens,
		sum.UpdatedAt,
	); err != nil {
		return fmt.Errorf("replace day: insert summary: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace day: commit: %w", err)
	}
	return nil
}

// DeleteDay removes every derived row for a date across all three tables
// in one transaction. A day with no events has no derived data, even if a
// previous run persisted some.
func (s *Store) DeleteDay(ctx context.Context, date string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete day: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := deleteDayTx(ctx, tx, date); err != nil {
		return fmt.Errorf("delete day: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete day: commit: %w", err)
	}
	return nil
}

func deleteDayTx(ctx context.Context, tx *sql.Tx, date string) error {
	for _, table := range []string{"scroll_sessions", "app_usage_daily", "device_summary_daily"} {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE date = ?", table), date,
		); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return nil
}

// nullableTS maps the zero timestamp onto NULL; first/last unlock are
// absent on days without unlocks.
func nullableTS(ts int64) sql.NullInt64 {
	if ts == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: ts, Valid: true}
}
