package aggregate

// AppMeta is the slice of the app-metadata repository the filter builder
// consumes. HideOverride is the user's explicit show/hide choice; nil means
// no choice was made and visibility falls back to UserVisible.
type AppMeta struct {
	PackageName  string
	UserVisible  bool
	HideOverride *bool
}

// Hidden reports whether the app is excluded from aggregation:
// the override wins when present, otherwise non-visible apps are hidden.
func (m AppMeta) Hidden() bool {
	if m.HideOverride != nil {
		return *m.HideOverride
	}
	return !m.UserVisible
}

// FilterSet is the set of package names excluded for one aggregation run.
type FilterSet map[string]struct{}

// Contains reports whether pkg is excluded.
func (f FilterSet) Contains(pkg string) bool {
	_, ok := f[pkg]
	return ok
}

// BuildFilterSet computes the excluded-package set for a run: every hidden
// app plus the host and shell packages, unconditionally. Empty metadata
// yields just the two fixed entries.
func BuildFilterSet(metas []AppMeta, cfg Config) FilterSet {
	set := make(FilterSet, len(metas)+2)
	for _, m := range metas {
		if m.Hidden() {
			set[m.PackageName] = struct{}{}
		}
	}
	set[cfg.HostPackage] = struct{}{}
	set[cfg.ShellPackage] = struct{}{}
	return set
}
