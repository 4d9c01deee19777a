package frame

import (
	"github.com/matzehuels/popover/pkg/geom"
)

// Node is one element of the host's tree as seen by the placement resolver.
type Node interface {
	// Bounds returns the element's box in viewport coordinates.
	Bounds() geom.Rect
	// Parent returns the enclosing element, or nil at the top of the tree.
	Parent() Node
	// IsRoot reports whether the element is the document root (body).
	IsRoot() bool
	// Positioned reports whether the element establishes a non-static
	// positioning context.
	Positioned() bool
	// Overflows reports whether the element's content exceeds its box.
	Overflows() bool
	// ScrollOffset returns the element's current scroll position.
	ScrollOffset() geom.Point
}

// OffsetOrigin returns the node whose box is the coordinate frame for style
// offsets computed against container. It returns nil for a nil container.
func OffsetOrigin(container Node) Node {
	n := container
	for n != nil {
		if n.IsRoot() || n.Positioned() {
			return n
		}
		p := n.Parent()
		if p == nil {
			return n
		}
		n = p
	}
	return nil
}

// ScrollFrame returns the node whose scroll offsets apply to content placed
// in container. It returns nil for a nil container.
func ScrollFrame(container Node) Node {
	n := container
	for n != nil {
		if n.IsRoot() || n.Overflows() {
			return n
		}
		p := n.Parent()
		if p == nil {
			return n
		}
		n = p
	}
	return nil
}

// Usable reports whether n can serve as a collision boundary.
func Usable(n Node) bool {
	return n != nil && !n.Bounds().Empty()
}

// ToViewport converts a point expressed in origin coordinates (as produced by
// placement profiles) back into viewport coordinates, given the origin and
// its scroll frame.
func ToViewport(p geom.Point, origin, scroll Node) geom.Point {
	if origin == nil {
		return p
	}
	o := origin.Bounds()
	var s geom.Point
	if scroll != nil {
		s = scroll.ScrollOffset()
	}
	return geom.Point{X: p.X + o.Left - s.X, Y: p.Y + o.Top - s.Y}
}
