package aggregate

import "github.com/screenday/screenday/internal/event"

// EndReason records why a scroll session was closed.
type EndReason string

const (
	// EndReasonGap: the next same-package scroll arrived after the merge gap.
	EndReasonGap EndReason = "gap"
	// EndReasonAppSwitch: scrolling moved to a different package.
	EndReasonAppSwitch EndReason = "app_switch"
	// EndReasonFlush: the session was still open at end of input.
	EndReasonFlush EndReason = "flush"
)

// ScrollDataType distinguishes measured magnitudes from delta-derived ones.
type ScrollDataType string

const (
	// ScrollMeasured sessions contain at least one event with a measured
	// scroll magnitude.
	ScrollMeasured ScrollDataType = "measured"
	// ScrollInferred sessions were built solely from axis deltas.
	ScrollInferred ScrollDataType = "inferred"
)

// ScrollSession is a contiguous run of same-package scrolling.
// StartTime <= EndTime always holds; every contributing event lies within
// the merge gap of its predecessor.
type ScrollSession struct {
	PackageName  string
	StartTime    int64
	EndTime      int64
	ScrollAmount int64
	Date         string
	EndReason    EndReason
	DataType     ScrollDataType
}

// scrollMagnitude extracts the usable magnitude of a scroll event.
// A measured value wins; otherwise the absolute axis deltas are summed.
// Events with neither are unusable and skipped.
func scrollMagnitude(ev event.Raw) (amount int64, measured, ok bool) {
	if ev.Value != nil {
		return *ev.Value, true, true
	}
	if ev.ScrollDeltaX != 0 || ev.ScrollDeltaY != 0 {
		return abs64(ev.ScrollDeltaX) + abs64(ev.ScrollDeltaY), false, true
	}
	return 0, false, false
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// MergeScrollSessions folds the day's scroll events into sessions.
//
// Scroll events for packages outside the filter set are sorted by
/// (timestamp, seq) and folded left: an event extends the open session when
// it belongs to the same package and arrives within cfg.MergeGap of the
// session's current end; anything else closes the open session and starts
// a new one. The last open session is flushed at end of input. Output is
// ordered by start time; empty input yields an empty slice.
func MergeScrollSessions(events []event.Raw, filter FilterSet, cfg Config, date string) []ScrollSession {
	gap := cfg.MergeGap.Milliseconds()

	var scrolls []event.Raw
	for _, ev := range events {
		if ev.Type != event.TypeScroll || filter.Contains(ev.PackageName) {
			continue
		}
		if _, _, ok := scrollMagnitude(ev); !ok {
			continue
		}
		scrolls = append(scrolls, ev)
	}
	if len(scrolls) == 0 {
		return nil
	}
	event.SortByTime(scrolls)

	var (
		sessions []ScrollSession
		open     *ScrollSession
	)
	start := func(ev event.Raw) {
		amount, measured, _ := scrollMagnitude(ev)
		dt := ScrollInferred
		if measured {
			dt = ScrollMeasured
		}
		open = &ScrollSession{
			PackageName:  ev.PackageName,
			StartTime:    ev.Timestamp,
			EndTime:      ev.Timestamp,
			ScrollAmount: amount,
			Date:         date,
			DataType:     dt,
		}
	}
	start(scrolls[0])

	for _, ev := range scrolls[1:] {
		samePkg := ev.PackageName == open.PackageName
		if samePkg && ev.Timestamp-open.EndTime <= gap {
			amount, measured, _ := scrollMagnitude(ev)
			open.EndTime = ev.Timestamp
			open.ScrollAmount += amount
			if measured {
				open.DataType = ScrollMeasured
			}
			continue
		}
		if samePkg {
			open.EndReason = EndReasonGap
		} else {
			open.EndReason = EndReasonAppSwitch
		}
		sessions = append(sessions, *open)
		start(ev)
	}

	open.EndReason = EndReasonFlush
	sessions = append(sessions, *open)
	return sessions
}
