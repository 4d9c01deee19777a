// Package popover ties placement and visibility together into one popover
// instance.
//
// A [Popover] is created from a [Config] and three collaborators supplied by
// the host:
//
//   - a [DimensionProvider] that reports the trigger rect and measures the
//     content on request,
//   - a [Host] that renders a [View] after every state change and every
//     placement pass while open,
//   - any number of [Observer]s (resize, trigger motion) whose callbacks
//     trigger a new placement pass while open.
//
// The caller drives the popover with [Popover.Open], [Popover.Close],
// [Popover.Toggle], raw trigger events through [Popover.Handle], or pointer
// positions through [Popover.HandlePointer] and [Popover.HandleMove], which
// classify them against the trigger and content rects. In controlled mode
// the caller owns the open flag and reports it with [Popover.SetOpen].
//
// Configuration is validated up front: an unknown placement or trigger kind
// or negative sizes fail [New] instead of surfacing later.
package popover
