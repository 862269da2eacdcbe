package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/screenday/screenday/internal/aggregate"
	"github.com/screenday/screenday/internal/event"
)

// Snapshot is one complete, immutable view of the current day's events.
// Producers always deliver whole snapshots, never deltas, so a recompute
// can run against it without coordinating with the producer.
type Snapshot struct {
	Date   string
	Events []event.Raw
}

// Projector re-runs the pure day aggregation over pushed event snapshots
// and republishes the resulting device summary, the "today so far" view.
// Persistence is never touched.
//
// Delivery is latest-wins on both sides: at most one snapshot waits while
// a recompute is in flight (a newer one replaces it), and an unread
// summary is replaced by a newer one rather than queued. Subscribers
// therefore always observe a summary computed from a complete recent
// event set, never an intermediate state.
type Projector struct {
	meta MetadataSource
	cfg  aggregate.Config
	now  func() time.Time
	log  *slog.Logger

	updates   chan Snapshot
	summaries chan aggregate.DeviceSummary

	// lastDigest suppresses republishing when a snapshot aggregates to
	// the same rows as the previous one.
	lastDigest string
}

// ProjectorOption configures a Projector.
type ProjectorOption func(*Projector)

// WithProjectorNow overrides the wall clock (tests).
func WithProjectorNow(now func() time.Time) ProjectorOption {
	return func(p *Projector) { p.now = now }
}

// WithProjectorLogger overrides the logger.
func WithProjectorLogger(log *slog.Logger) ProjectorOption {
	return func(p *Projector) { p.log = log }
}

// NewProjector creates a Projector. Published summaries arrive on
// Summaries; feed snapshots through Submit and drive recomputation with
// Run.
func NewProjector(meta MetadataSource, cfg aggregate.Config, opts ...ProjectorOption) *Projector {
	p := &Projector{
		meta:      meta,
		cfg:       cfg,
		now:       time.Now,
		log:       slog.Default(),
		updates:   make(chan Snapshot, 1),
		summaries: make(chan aggregate.DeviceSummary, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit hands the projector a new snapshot. Never blocks: when a
// snapshot is already waiting it is replaced, not queued.
func (p *Projector) Submit(snap Snapshot) {
	for {
		select {
		case p.updates <- snap:
			return
		default:
		}
		select {
		case <-p.updates:
		default:
		}
	}
}

// Summaries is the subscription channel for recomputed summaries.
func (p *Projector) Summaries() <-chan aggregate.DeviceSummary {
	return p.summaries
}

// Run processes snapshots until the context is cancelled.
// Must be called from exactly one goroutine.
func (p *Projector) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap := <-p.updates:
			p.project(ctx, snap)
		}
	}
}

func (p *Projector) project(ctx context.Context, snap Snapshot) {
	now := p.now().UnixMilli()

	var summary aggregate.DeviceSummary
	var digest string
	if len(snap.Events) == 0 {
		summary = aggregate.EmptySummary(snap.Date, now)
		digest = "empty:" + snap.Date
	} else {
		metas, err := p.meta.AppMetadata(ctx)
		if err != nil {
			p.log.Error("live projection: fetch app metadata", "date", snap.Date, "error", err)
			return
		}
		result := aggregate.BuildDay(snap.Events, metas, p.cfg, snap.Date, now, now)
		summary = result.Summary
		digest = result.Fingerprint()
	}

	if digest == p.lastDigest {
		return
	}
	p.lastDigest = digest
	p.publish(summary)
}

// publish delivers latest-wins: an unread summary is dropped in favor of
// the new one.
func (p *Projector) publish(summary aggregate.DeviceSummary) {
	for {
		select {
		case p.summaries <- summary:
			return
		default:
		}
		select {
		case <-p.summaries:
		default:
		}
	}
}
