package aggregate

import "github.com/screenday/screenday/internal/event"

// CountOpens counts debounced app opens per package.
//
// Resumes are walked in (timestamp, seq) order. A resume counts as an
// open when the package has no counted open yet or the gap since the last
// counted open exceeds cfg.OpenDebounce; resumes arriving inside the
// window are absorbed without moving the anchor. Duplicate resumes from
// spurious lifecycle repeats therefore collapse into one open.
func CountOpens(events []event.Raw, cfg Config) map[string]int {
	debounce := cfg.OpenDebounce.Milliseconds()

	var resumes []event.Raw
	for _, ev := range events {
		if ev.Type == event.TypeActivityResumed {
			resumes = append(resumes, ev)
		}
	}
	event.SortByTime(resumes)

	counts := make(map[string]int)
	lastCounted := make(map[string]int64)
	for _, ev := range resumes {
		last, counted := lastCounted[ev.PackageName]
		if counted && ev.Timestamp-last <= debounce {
			continue
		}
		counts[ev.PackageName]++
		lastCounted[ev.PackageName] = ev.Timestamp
	}
	return counts
}
