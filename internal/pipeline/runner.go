package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/screenday/screenday/internal/aggregate"
	"github.com/screenday/screenday/internal/event"
	"github.com/screenday/screenday/internal/store"
)

// EventSource is the inbound query interface to the event log.
type EventSource interface {
	EventsBetween(ctx context.Context, start, end int64) ([]event.Raw, error)
}

// MetadataSource supplies the app-metadata collection for filter building.
type MetadataSource interface {
	AppMetadata(ctx context.Context) ([]aggregate.AppMeta, error)
}

// Sink is the outbound replace interface to derived storage.
type Sink interface {
	ReplaceDay(ctx context.Context, result aggregate.DayResult) error
	DeleteDay(ctx context.Context, date string) error
}

// CheckpointStore is the injected key-value port for sync state.
// It is written at the persistence boundary only, never read inside the
// pure aggregation.
type CheckpointStore interface {
	GetCheckpoint(ctx context.Context, key string) (string, bool, error)
	SetCheckpoint(ctx context.Context, key, value string) error
}

// DayBounds resolves a moment to its local calendar-day key and the UTC
// millisecond range covering that day. Day-boundary policy belongs to the
// host, so the runner takes it injected.
type DayBounds func(day time.Time) (date string, start, end int64)

// LocalDayBounds resolves day boundaries in the process-local timezone.
func LocalDayBounds(day time.Time) (string, int64, int64) {
	local := day.In(time.Local)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start.Format("2006-01-02"), start.UnixMilli(), end.UnixMilli()
}

// Runner drives the daily aggregation for one date at a time.
//
// The host must not run two aggregations for the same date concurrently;
// the runner provides no protection beyond the sink's atomic replace.
type Runner struct {
	events      EventSource
	meta        MetadataSource
	sink        Sink
	checkpoints CheckpointStore
	cfg         aggregate.Config
	bounds      DayBounds
	now         func() time.Time
	tokens      RunTokenGenerator
	log         *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithNow overrides the wall clock (tests).
func WithNow(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

// WithBounds overrides the day-boundary resolution.
func WithBounds(bounds DayBounds) RunnerOption {
	return func(r *Runner) { r.bounds = bounds }
}

// WithTokens overrides the run-token generator (tests).
func WithTokens(gen RunTokenGenerator) RunnerOption {
	return func(r *Runner) { r.tokens = gen }
}

// WithCheckpoints attaches a checkpoint store. Without one the runner
// simply skips checkpoint writes.
func WithCheckpoints(cp CheckpointStore) RunnerOption {
	return func(r *Runner) { r.checkpoints = cp }
}

// WithLogger overrides the logger.
func WithLogger(log *slog.Logger) RunnerOption {
	return func(r *Runner) { r.log = log }
}

// NewRunner creates a Runner over the given ports and tuning.
func NewRunner(events EventSource, meta MetadataSource, sink Sink, cfg aggregate.Config, opts ...RunnerOption) *Runner {
	r := &Runner{
		events: events,
		meta:   meta,
		sink:   sink,
		cfg:    cfg,
		bounds: LocalDayBounds,
		now:    time.Now,
		tokens: UUIDv7Generator{},
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AggregateDay recomputes and replaces the derived rows for the calendar
// day containing the given moment.
//
// An empty day deletes any previously persisted rows for the date and
// stops: retroactive event deletion must clear derived state too. The
// whole recomputation is pure given the fetched events, so re-running on
// an unchanged event set rewrites identical rows.
func (r *Runner) AggregateDay(ctx context.Context, day time.Time) error {
	date, start, end := r.bounds(day)
	token := r.tokens.Generate()
	log := r.log.With("run", token, "date", date)

	events, err := r.events.EventsBetween(ctx, start, end)
	if err != nil {
		return fmt.Errorf("aggregate %s: fetch events: %w", date, err)
	}

	if len(events) == 0 {
		if err := r.sink.DeleteDay(ctx, date); err != nil {
			return fmt.Errorf("aggregate %s: clear empty day: %w", date, err)
		}
		log.Info("no events for day, cleared derived rows")
		return r.checkpoint(ctx, date, "")
	}

	metas, err := r.meta.AppMetadata(ctx)
	if err != nil {
		return fmt.Errorf("aggregate %s: fetch app metadata: %w", date, err)
	}

	now := r.now()
	periodEnd := end
	if nowMillis := now.UnixMilli(); nowMillis < periodEnd {
		// Live day: open intervals close at "now", not end of day.
		periodEnd = nowMillis
	}

	result := aggregate.BuildDay(events, metas, r.cfg, date, periodEnd, now.UnixMilli())
	if err := r.sink.ReplaceDay(ctx, result); err != nil {
		return fmt.Errorf("aggregate %s: replace derived rows: %w", date, err)
	}

	log.Info("aggregated day",
		"events", len(events),
		"scroll_sessions", len(result.Scrolls),
		"usage_records", len(result.Usage),
		"total_usage_ms", result.Summary.TotalUsageTime,
	)
	return r.checkpoint(ctx, date, result.Fingerprint())
}

// Backfill sequentially replays the daily pipeline over the N days before
// today (yesterday first, today excluded). It halts on the first failed
// date; dates already processed stay persisted.
func (r *Runner) Backfill(ctx context.Context, days int) error {
	if days < 1 {
		return fmt.Errorf("backfill: days must be >= 1, got %d", days)
	}

	today := r.now()
	for i := 1; i <= days; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("backfill: %w", err)
		}
		if err := r.AggregateDay(ctx, today.AddDate(0, 0, -i)); err != nil {
			return fmt.Errorf("backfill day -%d: %w", i, err)
		}
	}
	return nil
}

// checkpoint records the run and the date's content fingerprint.
func (r *Runner) checkpoint(ctx context.Context, date, fingerprint string) error {
	if r.checkpoints == nil {
		return nil
	}
	at := strconv.FormatInt(r.now().UnixMilli(), 10)
	if err := r.checkpoints.SetCheckpoint(ctx, store.CheckpointLastRunAt, at); err != nil {
		return fmt.Errorf("checkpoint %s: %w", date, err)
	}
	key := store.CheckpointDayFingerprint + date
	if err := r.checkpoints.SetCheckpoint(ctx, key, fingerprint); err != nil {
		return fmt.Errorf("checkpoint %s: %w", date, err)
	}
	return nil
}
