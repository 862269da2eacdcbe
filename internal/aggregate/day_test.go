package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenday/screenday/internal/event"
	"github.com/screenday/screenday/internal/testutil"
)

const testDate = "2026-08-30"

// dayScenario is a full day touching every aggregation stage: a hidden
// package, a below-threshold package, a notification-only package, and
// two significant apps.
func dayScenario() ([]event.Raw, []AppMeta) {
	events := []event.Raw{
		testutil.Unlock(500),
		testutil.Resumed("com.app.a", 1000),
		testutil.Interaction("com.app.a", 2000),
		testutil.Scroll("com.app.a", 3000, 120),
		testutil.Paused("com.app.a", 10000),
		testutil.Resumed("com.app.b", 10500),
		testutil.Notification("com.app.c", 11000),
		testutil.Paused("com.app.b", 12000),
		testutil.Interaction("com.app.b", 12500),
		// Hidden package activity, filtered from every artifact.
		testutil.Resumed("com.hidden", 20000),
		testutil.Scroll("com.hidden", 21000, 999),
		testutil.Notification("com.hidden", 22000),
		testutil.Paused("com.hidden", 30000),
		// Below the significance threshold.
		testutil.Resumed("com.app.d", 40000),
		testutil.Paused("com.app.d", 41000),
	}
	metas := []AppMeta{
		{PackageName: "com.app.a", UserVisible: true},
		{PackageName: "com.app.b", UserVisible: true},
		{PackageName: "com.hidden", UserVisible: false},
	}
	return testutil.WithDate(testDate, events), metas
}

func TestBuildDay_ComposesAllArtifacts(t *testing.T) {
	events, metas := dayScenario()

	result := BuildDay(events, metas, DefaultConfig(), testDate, 100000, 99999)

	// A runs [1000,10499] (pause trimmed to the next resume), B runs
	// [10500,12000]; D's 1000ms stay below the significance floor and C
	// never held the foreground.
	require.Len(t, result.Usage, 2)

	a := result.Usage[0]
	assert.Equal(t, "com.app.a", a.PackageName)
	assert.Equal(t, int64(9499), a.UsageTime)
	assert.Equal(t, int64(6000), a.ActiveTime) // [2000,7000) u [3000,8000)
	assert.Equal(t, 1, a.OpenCount)
	assert.Equal(t, 0, a.NotificationCount)
	assert.Equal(t, int64(99999), a.UpdatedAt)

	b := result.Usage[1]
	assert.Equal(t, "com.app.b", b.PackageName)
	assert.Equal(t, int64(1500), b.UsageTime)
	assert.Equal(t, int64(0), b.ActiveTime)
	assert.Equal(t, 1, b.OpenCount)

	require.Len(t, result.Scrolls, 1)
	assert.Equal(t, "com.app.a", result.Scrolls[0].PackageName)
	assert.Equal(t, int64(120), result.Scrolls[0].ScrollAmount)

	sum := result.Summary
	assert.Equal(t, testDate, sum.Date)
	assert.Equal(t, int64(10999), sum.TotalUsageTime)
	assert.Equal(t, 1, sum.UnlockCount)
	assert.Equal(t, int64(500), sum.FirstUnlock)
	assert.Equal(t, int64(500), sum.LastUnlock)
	assert.Equal(t, 2, sum.AppOpens)
}

func TestBuildDay_ActiveNeverExceedsUsage(t *testing.T) {
	events, metas := dayScenario()

	result := BuildDay(events, metas, DefaultConfig(), testDate, 100000, 99999)
	for _, rec := range result.Usage {
		assert.LessOrEqual(t, rec.ActiveTime, rec.UsageTime, rec.PackageName)
	}
}

func TestBuildDay_FilteredPackageContributesNothing(t *testing.T) {
	events, metas := dayScenario()

	result := BuildDay(events, metas, DefaultConfig(), testDate, 100000, 99999)

	for _, rec := range result.Usage {
		assert.NotEqual(t, "com.hidden", rec.PackageName)
	}
	for _, sess := range result.Scrolls {
		assert.NotEqual(t, "com.hidden", sess.PackageName)
	}
	assert.Equal(t, 0, result.Summary.NotificationCount)
}

func TestBuildDay_PureAndIdempotent(t *testing.T) {
	events, metas := dayScenario()
	cfg := DefaultConfig()

	first := BuildDay(events, metas, cfg, testDate, 100000, 99999)
	second := BuildDay(events, metas, cfg, testDate, 100000, 99999)

	assert.Equal(t, first, second)
	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
}

func TestBuildDay_EmptyInput(t *testing.T) {
	result := BuildDay(nil, nil, DefaultConfig(), testDate, 100000, 99999)

	assert.Empty(t, result.Usage)
	assert.Empty(t, result.Scrolls)
	assert.Equal(t, EmptySummary(testDate, 99999), result.Summary)
}

func TestBuildDay_UnlockFilterSwitch(t *testing.T) {
	// An unlock tagged under a filtered package counts under the default
	// device-wide semantics and vanishes when the switch is off.
	events := testutil.WithDate(testDate, []event.Raw{
		testutil.Ev(event.TypeUserPresent, "com.hidden", 1000),
	})
	metas := []AppMeta{{PackageName: "com.hidden", UserVisible: false}}

	cfg := DefaultConfig()
	withFilter := BuildDay(events, metas, cfg, testDate, 100000, 99999)
	assert.Equal(t, 1, withFilter.Summary.UnlockCount)

	cfg.UnlockIgnoresFilter = false
	without := BuildDay(events, metas, cfg, testDate, 100000, 99999)
	assert.Equal(t, 0, without.Summary.UnlockCount)
}
