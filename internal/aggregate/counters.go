package aggregate

import "github.com/screenday/screenday/internal/event"

// CountNotifications groups notification-posted events by package.
func CountNotifications(events []event.Raw) map[string]int {
	counts := make(map[string]int)
	for _, ev := range events {
		if ev.Type == event.TypeNotificationPosted {
			counts[ev.PackageName]++
		}
	}
	return counts
}

// UnlockStats summarizes the day's device unlocks.
// First and Last are zero when Count is zero.
type UnlockStats struct {
	Count int
	First int64
	Last  int64
}

// CountUnlocks counts unlock events and records the first and last
// unlock timestamps.
func CountUnlocks(events []event.Raw) UnlockStats {
	var stats UnlockStats
	for _, ev := range events {
		if !ev.Type.IsUnlock() {
			continue
		}
		if stats.Count == 0 || ev.Timestamp < stats.First {
			stats.First = ev.Timestamp
		}
		if stats.Count == 0 || ev.Timestamp > stats.Last {
			stats.Last = ev.Timestamp
		}
		stats.Count++
	}
	return stats
}
