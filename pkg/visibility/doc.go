// Package visibility implements the open/closed state machine of a popover.
//
// A [Controller] owns one popover's visibility. It moves between three
// states:
//
//	Closed ──open──▶ Open                 (content already measured)
//	Closed ──open──▶ PendingMeasurement   (first open: measure, then settle)
//	PendingMeasurement ──settled+measured──▶ Open
//	Open / PendingMeasurement ──close──▶ Closed
//
// Every entry into Open asks the [Positioner] for a fresh placement pass,
// and [Controller.Reposition] does the same while Open without changing
// state.
//
// # Triggers
//
// Trigger events are mapped to transitions by [Controller.Handle]: click
// and context-menu triggers toggle, focus opens and blur closes, and hover
// schedules a debounced open on enter and a debounced close on leave.
// Scheduling either debounce cancels any pending one of both kinds, so only
// the most recent scheduled transition can fire. Escape, Enter and clicks
// outside both trigger and content dismiss an open popover when enabled.
//
// # Controlled mode
//
// With [Config.Controlled] set the caller owns the open flag. Caller and
// trigger requests only report the wanted state through [Config.OnChange];
// the controller changes state when the caller passes the new value to
// [Controller.Sync], which transitions immediately without debouncing.
//
// # Time
//
// All delays are scheduled on a [clock.Clock]. Tests and simulations use a
// [clock.Virtual] to fire them deterministically. Callbacks that arrive
// after their timer was superseded are discarded.
package visibility
