package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/screenday/screenday/internal/event"
	"github.com/screenday/screenday/internal/testutil"
)

func TestCountOpens_DebouncesRapidResumes(t *testing.T) {
	events := []event.Raw{
		testutil.Resumed("com.app.a", 0),
		testutil.Resumed("com.app.a", 1000),
	}

	counts := CountOpens(events, DefaultConfig())
	assert.Equal(t, 1, counts["com.app.a"])
}

func TestCountOpens_CountsBeyondDebounce(t *testing.T) {
	events := []event.Raw{
		testutil.Resumed("com.app.a", 0),
		testutil.Resumed("com.app.a", 1000),
		testutil.Resumed("com.app.a", 2000),
	}

	// 1000 is absorbed; 2000 lies 2000ms past the counted open at 0,
	// beyond the 1500ms debounce, and counts.
	counts := CountOpens(events, DefaultConfig())
	assert.Equal(t, 2, counts["com.app.a"])
}

func TestCountOpens_PerPackageIndependent(t *testing.T) {
	events := []event.Raw{
		testutil.Resumed("com.app.a", 0),
		testutil.Resumed("com.app.b", 100),
		testutil.Resumed("com.app.a", 200),
	}

	counts := CountOpens(events, DefaultConfig())
	assert.Equal(t, 1, counts["com.app.a"])
	assert.Equal(t, 1, counts["com.app.b"])
}

func TestCountOpens_ExactDebounceBoundaryAbsorbed(t *testing.T) {
	events := []event.Raw{
		testutil.Resumed("com.app.a", 0),
		testutil.Resumed("com.app.a", 1500),
		testutil.Resumed("com.app.a", 1501),
	}

	// Gap must strictly exceed the debounce to count: 1500 is absorbed,
	// 1501 counts.
	counts := CountOpens(events, DefaultConfig())
	assert.Equal(t, 2, counts["com.app.a"])
}

func TestCountOpens_NoResumes(t *testing.T) {
	events := []event.Raw{
		testutil.Paused("com.app.a", 0),
		testutil.Interaction("com.app.a", 100),
	}

	counts := CountOpens(events, DefaultConfig())
	assert.Empty(t, counts)
}
