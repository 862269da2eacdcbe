// Package pipeline orchestrates the daily aggregation: fetch a day's
// events, run the pure aggregation core, and atomically replace the
// derived rows for that date.
//
// The Runner is the sole writer of derived state. It talks to its
// collaborators through narrow ports (EventSource, MetadataSource, Sink,
// CheckpointStore) so tests can substitute in-memory fakes; *store.Store
// satisfies all of them.
//
// Failure model: a fetch failure aborts the date before any write; a
// replace failure rolls back leaving prior rows intact. Backfill walks
// dates newest-first, halts on the first failure, and never rolls back
// dates already committed. No retries live here; the external scheduler
// re-invokes later.
//
// The live projector re-runs the same aggregation over pushed event
// snapshots without touching storage, latest-wins when snapshots arrive
// faster than they can be computed.
package pipeline
