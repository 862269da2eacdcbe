package aggregate

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// The golden fixture pins the canonical serialized form of a derived day.
// The fingerprint hashes these exact bytes, so any drift here changes
// every stored checkpoint digest and must be deliberate.
func TestDayResult_CanonicalGolden(t *testing.T) {
	events, metas := dayScenario()
	result := BuildDay(events, metas, DefaultConfig(), testDate, 100000, 99999)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "day_canonical", result.CanonicalJSON())
}
