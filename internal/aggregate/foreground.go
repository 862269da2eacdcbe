package aggregate

import (
	"sort"

	"github.com/screenday/screenday/internal/event"
)

// Interval is a closed foreground interval for one package.
type Interval struct {
	PackageName string
	Start       int64
	End         int64
}

// Duration returns the interval length in millis.
func (iv Interval) Duration() int64 {
	return iv.End - iv.Start
}

// ForegroundIntervals rebuilds per-app foreground intervals from the day's
// lifecycle events.
//
// A per-package state machine runs over the (timestamp, seq)-sorted stream:
//
//   - ACTIVITY_RESUMED starts an interval for its package. A resume while
//     the package is already running is a no-op (spurious repeats must not
//     manufacture opens or splits). A resume for a different package while
//     others are running closes those at ts-1: one app owns the screen at
//     a time.
//   - ACTIVITY_PAUSED / ACTIVITY_STOPPED close the package's interval. When
//     the immediately following event in the stream is a resume (any
//     package), the interval runs to that resume's timestamp minus one, so
//     the hand-off gap during fast app switches is credited exactly once.
//     Otherwise it closes at the pause's own timestamp.
//   - SCREEN_NON_INTERACTIVE force-closes every running package at its
//     timestamp.
//   - Anything still running at end of period closes at periodEnd.
//
// Intervals with non-positive duration are discarded. Output is ordered by
// (start, package) for deterministic downstream processing.
//
// The running-state map lives only for the duration of one call; callers
// may run reconstructions concurrently on distinct batches.
func ForegroundIntervals(events []event.Raw, periodEnd int64) []Interval {
	sorted := event.Sorted(events)

	running := make(map[string]int64)
	var intervals []Interval

	emit := func(pkg string, start, end int64) {
		if end > start {
			intervals = append(intervals, Interval{PackageName: pkg, Start: start, End: end})
		}
	}
	closeAll := func(end int64) {
		for pkg, start := range running {
			emit(pkg, start, end)
			delete(running, pkg)
		}
	}

	for i, ev := range sorted {
		switch ev.Type {
		case event.TypeActivityResumed:
			if _, ok := running[ev.PackageName]; ok {
				break
			}
			for pkg, start := range running {
				emit(pkg, start, ev.Timestamp-1)
				delete(running, pkg)
			}
			running[ev.PackageName] = ev.Timestamp

		case event.TypeActivityPaused, event.TypeActivityStopped:
			start, ok := running[ev.PackageName]
			if !ok {
				break
			}
			end := ev.Timestamp
			if i+1 < len(sorted) && sorted[i+1].Type == event.TypeActivityResumed {
				end = sorted[i+1].Timestamp - 1
			}
			emit(ev.PackageName, start, end)
			delete(running, ev.PackageName)

		case event.TypeScreenNonInteractive:
			closeAll(ev.Timestamp)
		}
	}

	closeAll(periodEnd)

	sort.Slice(intervals, func(i, j int) bool {
		if intervals[i].Start != intervals[j].Start {
			return intervals[i].Start < intervals[j].Start
		}
		return intervals[i].PackageName < intervals[j].PackageName
	})
	return intervals
}
