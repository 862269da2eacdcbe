package store

import (
	"path/filepath"
	"testing"

	"github.com/screenday/screenday/internal/aggregate"
	"github.com/screenday/screenday/internal/event"
)

// createTestStore creates a store backed by a temp-dir database.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestEvent builds a minimal raw event for append tests.
func createTestEvent(pkg string, typ event.Type, ts int64, date string) event.Raw {
	return event.Raw{
		PackageName: pkg,
		Type:        typ,
		Timestamp:   ts,
		Date:        date,
		Source:      event.SourceSystem,
	}
}

// createTestDay builds a small but fully populated derived day.
func createTestDay(date string) aggregate.DayResult {
	return aggregate.DayResult{
		Date: date,
		Scrolls: []aggregate.ScrollSession{
			{
				PackageName:  "com.app.a",
				StartTime:    1000,
				EndTime:      4000,
				ScrollAmount: 250,
				Date:         date,
				EndReason:    aggregate.EndReasonFlush,
				DataType:     aggregate.ScrollMeasured,
			},
		},
		Usage: []aggregate.UsageRecord{
			{
				PackageName:       "com.app.a",
				Date:              date,
				UsageTime:         60000,
				ActiveTime:        15000,
				OpenCount:         2,
				NotificationCount: 1,
				UpdatedAt:         99999,
			},
		},
		Summary: aggregate.DeviceSummary{
			Date:              date,
			TotalUsageTime:    60000,
			UnlockCount:       3,
			FirstUnlock:       500,
			LastUnlock:        50000,
			NotificationCount: 1,
			AppOpens:          2,
			UpdatedAt:         99999,
		},
	}
}
