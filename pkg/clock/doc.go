// Package clock abstracts the timers the visibility controller schedules.
//
// [Real] wraps package time. [Virtual] is a manual clock for tests and
// simulations: time only moves when [Virtual.Advance] is called, and due
// timers fire synchronously on the caller's goroutine in deadline order
// (ties in scheduling order). That makes debounce supersession and settle
// delays reproducible step by step.
package clock
