package event

// External event codes arrive from two collectors with disjoint code
// spaces: the system collector forwards usage-stats event codes, the
// capture collector forwards accessibility event codes (plus a few
// synthesized broadcast codes). Both tables are exhaustive matches
// returning an optional internal type; unmapped codes map to none and are
// dropped by the caller. Codes the collectors emit but the pipeline has no
// use for (configuration changes, standby bucket changes, foreground
// service transitions) are deliberately absent.

// System collector codes, following the usage-stats constants.
const (
	sysMoveToForeground  = 1
	sysMoveToBackground  = 2
	sysUserInteraction   = 7
	sysNotificationSeen  = 10
	sysNotificationAlert = 12
	sysScreenOn          = 15
	sysScreenOff         = 16
	sysKeyguardShown     = 17
	sysKeyguardHidden    = 18
	sysActivityStopped   = 23
	sysUserUnlocked      = 28

	// Synthesized by the collector from the user-present broadcast;
	// usage stats has no code for it.
	sysUserPresent = 90
)

// Capture collector codes, following the accessibility event constants.
const (
	capViewClicked       = 1
	capViewFocused       = 8
	capViewTextChanged   = 16
	capNotificationState = 64
	capViewScrolled      = 4096
)

// MapExternal translates an external collector code into the internal
// enum. The second return value is false for codes with no counterpart;
// such events are dropped at ingestion.
func MapExternal(source Source, code int) (Type, bool) {
	switch source {
	case SourceSystem:
		return mapSystem(code)
	case SourceCapture:
		return mapCapture(code)
	}
	return TypeUnknown, false
}

func mapSystem(code int) (Type, bool) {
	switch code {
	case sysMoveToForeground:
		return TypeActivityResumed, true
	case sysMoveToBackground:
		return TypeActivityPaused, true
	case sysUserInteraction:
		return TypeUserInteraction, true
	case sysNotificationSeen, sysNotificationAlert:
		return TypeNotificationPosted, true
	case sysScreenOn:
		return TypeScreenInteractive, true
	case sysScreenOff:
		return TypeScreenNonInteractive, true
	case sysKeyguardShown:
		return TypeKeyguardShown, true
	case sysKeyguardHidden:
		return TypeKeyguardHidden, true
	case sysActivityStopped:
		return TypeActivityStopped, true
	case sysUserUnlocked:
		return TypeUserUnlocked, true
	case sysUserPresent:
		return TypeUserPresent, true
	}
	return TypeUnknown, false
}

func mapCapture(code int) (Type, bool) {
	switch code {
	case capViewClicked:
		return TypeViewClicked, true
	case capViewFocused:
		return TypeViewFocused, true
	case capViewTextChanged:
		return TypeTyping, true
	case capNotificationState:
		return TypeNotificationPosted, true
	case capViewScrolled:
		return TypeScroll, true
	}
	return TypeUnknown, false
}
