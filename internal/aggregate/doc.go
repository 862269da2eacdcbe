// Package aggregate is the pure per-day aggregation core.
//
// Given one immutable batch of events for a calendar day it derives three
// artifacts: merged scroll sessions, per-app usage/active-time records, and
// a device-wide daily summary. Every function here is a side-effect-free
// transformation (same events in, same rows out), which is what lets the
// live projector re-run the exact aggregation the persister uses without a
// transaction.
//
// Stages:
//   - BuildFilterSet: packages excluded from aggregation for a run
//   - MergeScrollSessions: fold scroll events into gap-bounded sessions
//   - ForegroundIntervals: per-package foreground state machine
//   - ActiveTime: interaction-window sweep-merge inside an interval
//   - CountOpens: debounced app-open counting
//   - CountNotifications / UnlockStats: grouped counts
//   - BuildDay: composes all of the above into a DayResult
//
// Nothing in this package touches a clock, a database, or a logger. The
// single time value a caller must supply (the updatedAt stamp on derived
// rows) is injected and excluded from the result fingerprint.
package aggregate
