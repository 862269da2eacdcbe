package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/screenday/screenday/internal/event"
)

// AppendEvents appends a batch of raw events inside one transaction and
// returns the number written. Seq values on the input are ignored; the
// events table assigns them monotonically on insert.
func (s *Store) AppendEvents(ctx context.Context, events []event.Raw) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("append events: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (package, class, type, ts, date, source, value, dx, dy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("append events: prepare: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		var value sql.NullInt64
		if ev.Value != nil {
			value = sql.NullInt64{Int64: *ev.Value, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			ev.PackageName,
			ev.ClassName,
			ev.Type.String(),
			ev.Timestamp,
			ev.Date,
			string(ev.Source),
			value,
			ev.ScrollDeltaX,
			ev.ScrollDeltaY,
		); err != nil {
			return 0, fmt.Errorf("append events: insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("append events: commit: %w", err)
	}
	return len(events), nil
}

// EventsBetween returns all events with ts in [start, end], ordered by
// (ts, seq) ascending. Events whose stored type no longer maps onto the
// internal enum are dropped silently.
//
// Returns an empty slice (not nil) when the range holds no events.
func (s *Store) EventsBetween(ctx context.Context, start, end int64) ([]event.Raw, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, package, class, type, ts, date, source, value, dx, dy
		FROM events
		WHERE ts >= ? AND ts <= ?
		ORDER BY ts ASC, seq ASC
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []event.Raw{}
	for rows.Next() {
		var (
			ev       event.Raw
			typeName string
			source   string
			value    sql.NullInt64
		)
		if err := rows.Scan(
			&ev.Seq,
			&ev.PackageName,
			&ev.ClassName,
			&typeName,
			&ev.Timestamp,
			&ev.Date,
			&source,
			&value,
			&ev.ScrollDeltaX,
			&ev.ScrollDeltaY,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		t, ok := event.ParseType(typeName)
		if !ok {
			continue
		}
		ev.Type = t
		ev.Source = event.Source(source)
		if value.Valid {
			v := value.Int64
			ev.Value = &v
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}

// LatestEventSeq returns the highest assigned ingest seq, or 0 when the
// events table is empty. The watch loop polls this to detect change
// without re-reading the whole day.
func (s *Store) LatestEventSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM events`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("latest event seq: %w", err)
	}
	return seq.Int64, nil
}
