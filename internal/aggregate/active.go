package aggregate

import (
	"sort"

	"github.com/screenday/screenday/internal/event"
)

// ActiveTime estimates how much of a foreground interval was actively
// interacted with.
//
// Each interaction timestamp t opens a window [t, t+window). Windows are
// sorted by start and sweep-merged: a window joins the previous merged one
// when its start lies strictly before that window's (possibly extended)
// end, taking the max end. Each merged window is clipped to the interval
// before summing, which is what guarantees active <= usage.
//
// marks need not be sorted or deduplicated; marks outside the interval are
// clipped away.
func ActiveTime(iv Interval, marks []int64, window int64) int64 {
	if len(marks) == 0 || window <= 0 {
		return 0
	}

	sorted := make([]int64, len(marks))
	copy(sorted, marks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total int64
	curStart := sorted[0]
	curEnd := sorted[0] + window
	flush := func() {
		start := max64(curStart, iv.Start)
		end := min64(curEnd, iv.End)
		if end > start {
			total += end - start
		}
	}
	for _, t := range sorted[1:] {
		if t < curEnd {
			if t+window > curEnd {
				curEnd = t + window
			}
			continue
		}
		flush()
		curStart = t
		curEnd = t + window
	}
	flush()
	return total
}

// UsageTotals accumulates one package's daily usage and active time.
type UsageTotals struct {
	Usage  int64
	Active int64
}

// UsageByPackage sums interval durations and active time per package over
// all reconstructed intervals. Interaction marks are attributed to an
// interval when they fall inside [Start, End] for the same package.
func UsageByPackage(events []event.Raw, intervals []Interval, window int64) map[string]UsageTotals {
	marksByPkg := make(map[string][]int64)
	for _, ev := range events {
		if ev.Type.IsInteraction() {
			marksByPkg[ev.PackageName] = append(marksByPkg[ev.PackageName], ev.Timestamp)
		}
	}
	for _, marks := range marksByPkg {
		sort.Slice(marks, func(i, j int) bool { return marks[i] < marks[j] })
	}

	totals := make(map[string]UsageTotals)
	for _, iv := range intervals {
		marks := marksInRange(marksByPkg[iv.PackageName], iv.Start, iv.End)
		t := totals[iv.PackageName]
		t.Usage += iv.Duration()
		t.Active += ActiveTime(iv, marks, window)
		totals[iv.PackageName] = t
	}
	return totals
}

// marksInRange returns the sorted sub-slice of marks within [start, end].
func marksInRange(marks []int64, start, end int64) []int64 {
	lo := sort.Search(len(marks), func(i int) bool { return marks[i] >= start })
	hi := sort.Search(len(marks), func(i int) bool { return marks[i] > end })
	return marks[lo:hi]
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
