package testutil

import "github.com/screenday/screenday/internal/event"

// Ev builds a bare event of a type for a package at a timestamp.
// Seq is left zero; aggregation's stable sort keeps encounter order on
// timestamp ties, matching what tests want to express.
func Ev(t event.Type, pkg string, ts int64) event.Raw {
	return event.Raw{
		PackageName: pkg,
		Type:        t,
		Timestamp:   ts,
		Source:      event.SourceSystem,
	}
}

// Resumed, Paused, Stopped, ScreenOff build lifecycle events.
func Resumed(pkg string, ts int64) event.Raw {
	return Ev(event.TypeActivityResumed, pkg, ts)
}

func Paused(pkg string, ts int64) event.Raw {
	return Ev(event.TypeActivityPaused, pkg, ts)
}

func Stopped(pkg string, ts int64) event.Raw {
	return Ev(event.TypeActivityStopped, pkg, ts)
}

func ScreenOff(ts int64) event.Raw {
	return Ev(event.TypeScreenNonInteractive, "android", ts)
}

// Scroll builds a measured scroll event.
func Scroll(pkg string, ts, amount int64) event.Raw {
	ev := Ev(event.TypeScroll, pkg, ts)
	ev.Source = event.SourceCapture
	ev.Value = &amount
	return ev
}

// ScrollDeltas builds a delta-only scroll event (no measured magnitude).
func ScrollDeltas(pkg string, ts, dx, dy int64) event.Raw {
	ev := Ev(event.TypeScroll, pkg, ts)
	ev.Source = event.SourceCapture
	ev.ScrollDeltaX = dx
	ev.ScrollDeltaY = dy
	return ev
}

// Interaction builds a user-interaction marker.
func Interaction(pkg string, ts int64) event.Raw {
	return Ev(event.TypeUserInteraction, pkg, ts)
}

// Notification builds a notification-posted event.
func Notification(pkg string, ts int64) event.Raw {
	return Ev(event.TypeNotificationPosted, pkg, ts)
}

// Unlock builds a user-present unlock event.
func Unlock(ts int64) event.Raw {
	return Ev(event.TypeUserPresent, "android", ts)
}

// WithDate stamps a date key onto a batch, returning the batch.
func WithDate(date string, events []event.Raw) []event.Raw {
	for i := range events {
		events[i].Date = date
	}
	return events
}
