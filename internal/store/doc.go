// Package store provides SQLite-backed persistence for the daily
// aggregation pipeline.
//
// Tables:
//   - events: the raw event log appended by ingestion (seq is the
//     monotonic ingest clock; all reads order by ts, seq)
//   - app_metadata: visibility metadata feeding the filter-set builder
//   - scroll_sessions, app_usage_daily, device_summary_daily: the three
//     derived tables, only ever written by ReplaceDay/DeleteDay as an
//     atomic delete-then-insert for one date
//   - checkpoints: the injected key-value port for sync state
//
// Deterministic reads: every query orders by an explicit key (ts ASC,
// seq ASC for events; package ASC for daily rows) so replaying a day is
// byte-stable.
//
// Database configuration: WAL mode for concurrent reads during writes,
// NORMAL synchronous mode, 5-second busy timeout, foreign keys on, and a
// single-connection pool since SQLite allows one writer at a time.
package store
