package event

import "sort"

// Type is the internal event-type enum.
type Type int

const (
	// TypeUnknown is the zero value; events never carry it past ingestion.
	TypeUnknown Type = iota

	TypeActivityResumed
	TypeActivityPaused
	TypeActivityStopped
	TypeUserInteraction
	TypeScreenInteractive
	TypeScreenNonInteractive
	TypeKeyguardShown
	TypeKeyguardHidden
	TypeUserPresent
	TypeUserUnlocked
	TypeNotificationPosted
	TypeScroll
	TypeViewClicked
	TypeViewFocused
	TypeTyping
)

var typeNames = map[Type]string{
	TypeActivityResumed:      "ACTIVITY_RESUMED",
	TypeActivityPaused:       "ACTIVITY_PAUSED",
	TypeActivityStopped:      "ACTIVITY_STOPPED",
	TypeUserInteraction:      "USER_INTERACTION",
	TypeScreenInteractive:    "SCREEN_INTERACTIVE",
	TypeScreenNonInteractive: "SCREEN_NON_INTERACTIVE",
	TypeKeyguardShown:        "KEYGUARD_SHOWN",
	TypeKeyguardHidden:       "KEYGUARD_HIDDEN",
	TypeUserPresent:          "USER_PRESENT",
	TypeUserUnlocked:         "USER_UNLOCKED",
	TypeNotificationPosted:   "NOTIFICATION_POSTED",
	TypeScroll:               "SCROLL",
	TypeViewClicked:          "VIEW_CLICKED",
	TypeViewFocused:          "VIEW_FOCUSED",
	TypeTyping:               "TYPING",
}

// String returns the symbolic name used in storage and NDJSON records.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseType maps a symbolic name back onto the enum.
// Returns false for names with no internal counterpart.
func ParseType(name string) (Type, bool) {
	for t, n := range typeNames {
		if n == name {
			return t, true
		}
	}
	return TypeUnknown, false
}

// IsInteraction reports whether the type marks direct user engagement.
// These types feed the active-time estimator.
func (t Type) IsInteraction() bool {
	switch t {
	case TypeUserInteraction, TypeViewClicked, TypeViewFocused, TypeTyping, TypeScroll:
		return true
	}
	return false
}

// IsUnlock reports whether the type counts as a device unlock.
func (t Type) IsUnlock() bool {
	return t == TypeUserPresent || t == TypeKeyguardHidden
}

// Source identifies which collector produced an event.
type Source string

const (
	// SourceCapture is the accessibility-based capture collector.
	SourceCapture Source = "CAPTURE"
	// SourceSystem is the OS usage-stats collector.
	SourceSystem Source = "SYSTEM"
)

// Raw is a single normalized device interaction event.
//
// Raw events are immutable once produced. Timestamp is epoch millis UTC;
// Date is the local calendar-day key, resolved by the collector; the
// pipeline treats it as opaque. Value is the measured scroll magnitude and
// is only present on TypeScroll events; ScrollDeltaX/Y carry the raw axis
// deltas when the collector could not measure a magnitude directly.
type Raw struct {
	PackageName  string  `json:"package_name"`
	ClassName    string  `json:"class_name,omitempty"`
	Type         Type    `json:"-"`
	Timestamp    int64   `json:"timestamp"`
	Date         string  `json:"date"`
	Source       Source  `json:"source"`
	Value        *int64  `json:"value,omitempty"`
	ScrollDeltaX int64   `json:"scroll_delta_x,omitempty"`
	ScrollDeltaY int64   `json:"scroll_delta_y,omitempty"`

	// Seq is the monotonic ingest sequence, assigned by the store.
	// It breaks timestamp ties deterministically.
	Seq int64 `json:"-"`
}

// SortByTime sorts events by (Timestamp, Seq) ascending, in place.
// The sort is stable, so events without assigned seq values keep
// encounter order on timestamp ties.
func SortByTime(events []Raw) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Timestamp != events[j].Timestamp {
			return events[i].Timestamp < events[j].Timestamp
		}
		return events[i].Seq < events[j].Seq
	})
}

// Sorted returns a sorted copy, leaving the input untouched.
// Aggregation stages use this so callers can share one immutable batch.
func Sorted(events []Raw) []Raw {
	out := make([]Raw, len(events))
	copy(out, events)
	SortByTime(out)
	return out
}
