package aggregate

import (
	"sort"

	"github.com/screenday/screenday/internal/event"
)

// UsageRecord is one package's derived daily row.
// Active <= Usage always holds.
type UsageRecord struct {
	PackageName       string
	Date              string
	UsageTime         int64
	ActiveTime        int64
	OpenCount         int
	NotificationCount int
	UpdatedAt         int64
}

// DeviceSummary is the single device-wide daily row.
// FirstUnlock/LastUnlock are zero when no unlock occurred.
type DeviceSummary struct {
	Date              string
	TotalUsageTime    int64
	UnlockCount       int
	FirstUnlock       int64
	LastUnlock        int64
	NotificationCount int
	AppOpens          int
	UpdatedAt         int64
}

// EmptySummary is the summary for a date with no events.
func EmptySummary(date string, updatedAt int64) DeviceSummary {
	return DeviceSummary{Date: date, UpdatedAt: updatedAt}
}

// DayResult bundles everything derived for one date. It is the unit the
// persister replaces atomically and the unit the fingerprint covers.
type DayResult struct {
	Date    string
	Scrolls []ScrollSession
	Usage   []UsageRecord
	Summary DeviceSummary
}

// BuildDay derives the complete DayResult for one date.
//
// events is the full unfiltered batch for the day; periodEnd bounds any
// still-open foreground interval (end of day for historical dates, "now"
// for the live day); updatedAt is stamped onto every derived row and is
// the only caller-supplied impurity; it never influences the computed
// values and is excluded from the fingerprint.
//
// Usage, scroll, and notification aggregation never see filtered packages.
// Unlock counting sees the full batch unless cfg.UnlockIgnoresFilter is
// off. Per-app rows below cfg.MinSignificantUsage are dropped, and the
// summary totals are the sums over the rows that survive, so the summary
// always matches the persisted per-app rows.
func BuildDay(events []event.Raw, metas []AppMeta, cfg Config, date string, periodEnd, updatedAt int64) DayResult {
	filter := BuildFilterSet(metas, cfg)

	scrolls := MergeScrollSessions(events, filter, cfg, date)

	visible := make([]event.Raw, 0, len(events))
	for _, ev := range events {
		if !filter.Contains(ev.PackageName) {
			visible = append(visible, ev)
		}
	}

	intervals := ForegroundIntervals(visible, periodEnd)
	usage := UsageByPackage(visible, intervals, cfg.ActiveWindow.Milliseconds())
	opens := CountOpens(visible, cfg)
	notifs := CountNotifications(visible)

	unlockInput := events
	if !cfg.UnlockIgnoresFilter {
		unlockInput = visible
	}
	unlocks := CountUnlocks(unlockInput)

	pkgs := make(map[string]struct{})
	for pkg := range usage {
		pkgs[pkg] = struct{}{}
	}
	for pkg := range opens {
		pkgs[pkg] = struct{}{}
	}
	for pkg := range notifs {
		pkgs[pkg] = struct{}{}
	}

	minUsage := cfg.MinSignificantUsage.Milliseconds()
	var records []UsageRecord
	for pkg := range pkgs {
		totals := usage[pkg]
		if totals.Usage < minUsage {
			continue
		}
		records = append(records, UsageRecord{
			PackageName:       pkg,
			Date:              date,
			UsageTime:         totals.Usage,
			ActiveTime:        totals.Active,
			OpenCount:         opens[pkg],
			NotificationCount: notifs[pkg],
			UpdatedAt:         updatedAt,
		})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].PackageName < records[j].PackageName
	})

	summary := DeviceSummary{
		Date:        date,
		UnlockCount: unlocks.Count,
		FirstUnlock: unlocks.First,
		LastUnlock:  unlocks.Last,
		UpdatedAt:   updatedAt,
	}
	for _, r := range records {
		summary.TotalUsageTime += r.UsageTime
		summary.NotificationCount += r.NotificationCount
		summary.AppOpens += r.OpenCount
	}

	return DayResult{
		Date:    date,
		Scrolls: scrolls,
		Usage:   records,
		Summary: summary,
	}
}
