package aggregate

import "time"

// Default tuning values. All of them are overridable through the config
// file; the defaults match observed interaction cadence on handheld
// devices.
const (
	DefaultMergeGap            = 5 * time.Second
	DefaultActiveWindow        = 5 * time.Second
	DefaultOpenDebounce        = 1500 * time.Millisecond
	DefaultMinSignificantUsage = 1500 * time.Millisecond

	// DefaultShellPackage is the system UI shell, always excluded.
	DefaultShellPackage = "com.android.systemui"
	// DefaultHostPackage is this application's own package, always excluded.
	DefaultHostPackage = "app.screenday.android"
)

// Config carries the tunable aggregation parameters.
type Config struct {
	// MergeGap is the maximum idle time between consecutive same-package
	// scroll events still folded into one session.
	MergeGap time.Duration

	// ActiveWindow is the engagement window opened by each interaction
	// marker when estimating active time.
	ActiveWindow time.Duration

	// OpenDebounce is the minimum spacing between resumes counted as
	// distinct app opens.
	OpenDebounce time.Duration

	// MinSignificantUsage is the usage floor below which a per-app daily
	// record is not persisted.
	MinSignificantUsage time.Duration

	// HostPackage and ShellPackage are unconditionally excluded from
	// aggregation.
	HostPackage  string
	ShellPackage string

	// UnlockIgnoresFilter controls whether unlock counting sees the full
	// event batch (true, default) or only events surviving the package
	// filter. Unlocks describe the device rather than an app, so the
	// default counts them independently of app visibility.
	UnlockIgnoresFilter bool
}

// DefaultConfig returns the default tuning.
func DefaultConfig() Config {
	return Config{
		MergeGap:            DefaultMergeGap,
		ActiveWindow:        DefaultActiveWindow,
		OpenDebounce:        DefaultOpenDebounce,
		MinSignificantUsage: DefaultMinSignificantUsage,
		HostPackage:         DefaultHostPackage,
		ShellPackage:        DefaultShellPackage,
		UnlockIgnoresFilter: true,
	}
}
