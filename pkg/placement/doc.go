// Package placement resolves where a popover's content goes relative to its
// trigger.
//
// # Labels
//
// A [Label] names a base side (top, bottom, left, right) and optionally a
// bias on the perpendicular axis: "topLeft" puts the content above the
// trigger with their left edges aligned. There are twelve labels; see
// [Labels].
//
// # Resolution
//
// [Resolver.Resolve] runs one pass over a snapshot of the geometry:
//
//  1. The offset origin and scroll frame are looked up from the container
//     (see package frame).
//  2. With collision avoidance on, [Avoid] biases an unbiased label toward
//     the nearer cross-axis edge, then flips the vertical and horizontal
//     tokens to their opposites when they overflow and the opposite fits.
//     When both sides overflow the requested side is kept.
//  3. The trigger rect is expressed relative to the offset origin,
//     compensating for the scroll frame's offsets ([ScrollAdjust]).
//  4. The [ProfileFunc] for the final label turns the geometry into a
//     [Style].
//
// Passes are idempotent and the latest result is published atomically, so a
// host may resolve as often as it likes and read [Resolver.Last] from any
// goroutine. A pass with missing geometry is a silent no-op that leaves the
// previous result in place.
//
// The default profile table lives in package profile.
package placement
