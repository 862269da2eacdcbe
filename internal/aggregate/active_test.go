package aggregate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/screenday/screenday/internal/event"
	"github.com/screenday/screenday/internal/testutil"
)

func TestActiveTime_SingleMark(t *testing.T) {
	iv := Interval{PackageName: "com.app.a", Start: 0, End: 60000}
	got := ActiveTime(iv, []int64{1000}, 5000)
	assert.Equal(t, int64(5000), got)
}

func TestActiveTime_OverlappingWindowsMerge(t *testing.T) {
	iv := Interval{PackageName: "com.app.a", Start: 0, End: 60000}
	// Windows [1000,6000) and [4000,9000) merge into [1000,9000).
	got := ActiveTime(iv, []int64{1000, 4000}, 5000)
	assert.Equal(t, int64(8000), got)
}

func TestActiveTime_TouchingWindowsDoNotMerge(t *testing.T) {
	iv := Interval{PackageName: "com.app.a", Start: 0, End: 60000}
	// [1000,6000) and [6000,11000): the second starts exactly at the
	// first's end, not strictly before it, so they stay separate. Summed
	// length is the same either way; the boundary matters for counting.
	got := ActiveTime(iv, []int64{1000, 6000}, 5000)
	assert.Equal(t, int64(10000), got)
}

func TestActiveTime_ClippedToInterval(t *testing.T) {
	iv := Interval{PackageName: "com.app.a", Start: 0, End: 3000}
	// Window [1000,6000) runs past the interval end and is clipped.
	got := ActiveTime(iv, []int64{1000}, 5000)
	assert.Equal(t, int64(2000), got)
}

func TestActiveTime_MarkOutsideInterval(t *testing.T) {
	iv := Interval{PackageName: "com.app.a", Start: 10000, End: 20000}
	got := ActiveTime(iv, []int64{0}, 5000)
	assert.Equal(t, int64(0), got)
}

func TestActiveTime_NoMarks(t *testing.T) {
	iv := Interval{PackageName: "com.app.a", Start: 0, End: 60000}
	assert.Equal(t, int64(0), ActiveTime(iv, nil, 5000))
}

func TestActiveTime_NeverExceedsUsage(t *testing.T) {
	// Arbitrary interaction timestamps inside arbitrary intervals: the
	// merged-and-clipped windows can never exceed the interval length.
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		start := rng.Int63n(100000)
		end := start + 1 + rng.Int63n(60000)
		iv := Interval{PackageName: "com.app.a", Start: start, End: end}

		marks := make([]int64, rng.Intn(30))
		for j := range marks {
			marks[j] = start + rng.Int63n(end-start)
		}

		active := ActiveTime(iv, marks, 5000)
		assert.LessOrEqual(t, active, iv.Duration())
		assert.GreaterOrEqual(t, active, int64(0))
	}
}

func TestUsageByPackage_SumsIntervalsAndActive(t *testing.T) {
	events := []event.Raw{
		testutil.Interaction("com.app.a", 1000),
		testutil.Interaction("com.app.a", 30000),
		testutil.Interaction("com.app.b", 2000),
	}
	intervals := []Interval{
		{PackageName: "com.app.a", Start: 0, End: 10000},
		{PackageName: "com.app.a", Start: 20000, End: 40000},
		{PackageName: "com.app.b", Start: 0, End: 4000},
	}

	totals := UsageByPackage(events, intervals, 5000)

	assert.Equal(t, UsageTotals{Usage: 30000, Active: 10000}, totals["com.app.a"])
	assert.Equal(t, UsageTotals{Usage: 4000, Active: 2000}, totals["com.app.b"])
}

func TestUsageByPackage_MarksOnlyCountTowardOwnPackage(t *testing.T) {
	events := []event.Raw{
		testutil.Interaction("com.app.b", 1000),
	}
	intervals := []Interval{
		{PackageName: "com.app.a", Start: 0, End: 10000},
	}

	totals := UsageByPackage(events, intervals, 5000)

	assert.Equal(t, UsageTotals{Usage: 10000, Active: 0}, totals["com.app.a"])
}
