package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/screenday/screenday/internal/aggregate"
)

// ErrNoSummary is returned when no device summary exists for a date.
var ErrNoSummary = errors.New("no summary for date")

// ScrollSessionsForDate returns the persisted scroll sessions for a date,
// ordered by (start_ts, package) for determinism.
func (s *Store) ScrollSessionsForDate(ctx context.Context, date string) ([]aggregate.ScrollSession, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT package, start_ts, end_ts, amount, date, end_reason, data_type
		FROM scroll_sessions
		WHERE date = ?
		ORDER BY start_ts ASC, package ASC
	`, date)
	if err != nil {
		return nil, fmt.Errorf("query scroll sessions: %w", err)
	}
	defer rows.Close()

	sessions := []aggregate.ScrollSession{}
	for rows.Next() {
		var (
			sess      aggregate.ScrollSession
			endReason string
			dataType  string
		)
		if err := rows.Scan(
			&sess.PackageName,
			&sess.StartTime,
			&sess.EndTime,
			&sess.ScrollAmount,
			&sess.Date,
			&endReason,
			&dataType,
		); err != nil {
			return nil, fmt.Errorf("scan scroll session: %w", err)
		}
		sess.EndReason = aggregate.EndReason(endReason)
		sess.DataType = aggregate.ScrollDataType(dataType)
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scroll sessions: %w", err)
	}

	return sessions, nil
}

// UsageForDate returns the persisted per-app records for a date, ordered
// by package.
func (s *Store) UsageForDate(ctx context.Context, date string) ([]aggregate.UsageRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT package, date, usage_ms, active_ms, open_count, notification_count, updated_at
		FROM app_usage_daily
		WHERE date = ?
		ORDER BY package ASC
	`, date)
	if err != nil {
		return nil, fmt.Errorf("query usage records: %w", err)
	}
	defer rows.Close()

	records := []aggregate.UsageRecord{}
	for rows.Next() {
		var rec aggregate.UsageRecord
		if err := rows.Scan(
			&rec.PackageName,
			&rec.Date,
			&rec.UsageTime,
			&rec.ActiveTime,
			&rec.OpenCount,
			&rec.NotificationCount,
			&rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan usage record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usage records: %w", err)
	}

	return records, nil
}

// SummaryForDate returns the persisted device summary for a date, or
// ErrNoSummary when the date has none.
func (s *Store) SummaryForDate(ctx context.Context, date string) (aggregate.DeviceSummary, error) {
	var (
		sum   aggregate.DeviceSummary
		first sql.NullInt64
		last  sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT date, total_usage_ms, unlock_count, first_unlock_ts, last_unlock_ts, notification_count, app_opens, updated_at
		FROM device_summary_daily
		WHERE date = ?
	`, date).Scan(
		&sum.Date,
		&sum.TotalUsageTime,
		&sum.UnlockCount,
		&first,
		&last,
		&sum.NotificationCount,
		&sum.AppOpens,
		&sum.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return aggregate.DeviceSummary{}, ErrNoSummary
	}
	if err != nil {
		return aggregate.DeviceSummary{}, fmt.Errorf("query summary: %w", err)
	}

	sum.FirstUnlock = first.Int64
	sum.LastUnlock = last.Int64
	return sum, nil
}
