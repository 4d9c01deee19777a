// Package frame models the container context a popover is placed in.
//
// A host exposes its element tree through the [Node] interface. Two walks
// are defined over it:
//
//   - [OffsetOrigin]: the element whose box is the coordinate frame for the
//     final style offsets. Walking from the container toward the root, it is
//     the first node that is the root (the document body) or positioned
//     (establishes a non-static stacking context).
//   - [ScrollFrame]: the element whose scroll offsets must be compensated for.
//     It is the container itself when its content overflows its box,
//     otherwise the nearest overflowing ancestor, and the root at the latest.
//
// Both walks are recomputed on every resolution pass because the container
// may scroll or move between passes.
//
// [Box] is an in-memory [Node] used by scenes, tests and the playground. Its
// [Box.ScrollBy] shifts every descendant on screen the way a browser or a
// terminal scroll view would, so scroll behaviour can be exercised without a
// real host.
package frame
