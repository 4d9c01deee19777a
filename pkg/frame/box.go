package frame

import (
	"github.com/matzehuels/popover/pkg/geom"
)

// Position mirrors the positioning scheme of an element.
type Position string

// Positioning schemes. Everything but Static establishes an offset origin.
const (
	Static   Position = "static"
	Relative Position = "relative"
	Absolute Position = "absolute"
	Fixed    Position = "fixed"
	Sticky   Position = "sticky"
)

// Valid reports whether p is a known positioning scheme. The empty value is
// accepted and means Static.
func (p Position) Valid() bool {
	switch p {
	case "", Static, Relative, Absolute, Fixed, Sticky:
		return true
	}
	return false
}

// Box is an in-memory element.
type Box struct {
	Name       string
	Rect       geom.Rect
	Root       bool
	Position   Position
	Scroll     geom.Point
	ScrollSize geom.Size // size of the scrollable content; zero means "same as Rect"

	parent   *Box
	children []*Box
}

// NewRoot creates the document root box.
func NewRoot(name string, r geom.Rect) *Box {
	return &Box{Name: name, Rect: r, Root: true}
}

// NewBox creates a detached box.
func NewBox(name string, r geom.Rect, pos Position) *Box {
	return &Box{Name: name, Rect: r, Position: pos}
}

// Append attaches child to b and returns child.
func (b *Box) Append(child *Box) *Box {
	child.parent = b
	b.children = append(b.children, child)
	return child
}

// Children returns the attached boxes in insertion order.
func (b *Box) Children() []*Box { return b.children }

// Find returns the first box named name in the subtree rooted at b.
func (b *Box) Find(name string) (*Box, bool) {
	if b.Name == name {
		return b, true
	}
	for _, c := range b.children {
		if f, ok := c.Find(name); ok {
			return f, true
		}
	}
	return nil, false
}

// Walk calls fn for b and every descendant, depth first.
func (b *Box) Walk(fn func(*Box, int)) {
	b.walk(fn, 0)
}

func (b *Box) walk(fn func(*Box, int), depth int) {
	fn(b, depth)
	for _, c := range b.children {
		c.walk(fn, depth+1)
	}
}

// ScrollBy scrolls b's content by (dx, dy), clamped to the scrollable range,
// and moves every descendant on screen accordingly. It returns the delta
// actually applied.
func (b *Box) ScrollBy(dx, dy float64) geom.Point {
	next := geom.Point{
		X: clamp(b.Scroll.X+dx, 0, b.maxScroll().X),
		Y: clamp(b.Scroll.Y+dy, 0, b.maxScroll().Y),
	}
	applied := next.Sub(b.Scroll)
	b.Scroll = next
	for _, c := range b.children {
		c.Walk(func(d *Box, _ int) {
			d.Rect = d.Rect.Translate(-applied.X, -applied.Y)
		})
	}
	return applied
}

// Move shifts b and its whole subtree by (dx, dy).
func (b *Box) Move(dx, dy float64) {
	b.Walk(func(d *Box, _ int) {
		d.Rect = d.Rect.Translate(dx, dy)
	})
}

func (b *Box) maxScroll() geom.Point {
	if b.ScrollSize.Width == 0 && b.ScrollSize.Height == 0 {
		return geom.Point{}
	}
	return geom.Point{
		X: max(0, b.ScrollSize.Width-b.Rect.Width),
		Y: max(0, b.ScrollSize.Height-b.Rect.Height),
	}
}

// Bounds implements Node. A nil box has empty bounds.
func (b *Box) Bounds() geom.Rect {
	if b == nil {
		return geom.Rect{}
	}
	return b.Rect
}

// Parent implements Node. A detached box has no parent.
func (b *Box) Parent() Node {
	if b.parent == nil {
		return nil
	}
	return b.parent
}

// IsRoot implements Node.
func (b *Box) IsRoot() bool { return b.Root }

// Positioned implements Node.
func (b *Box) Positioned() bool {
	return b.Position != "" && b.Position != Static
}

// Overflows implements Node.
func (b *Box) Overflows() bool {
	return b.ScrollSize.Height > b.Rect.Height || b.ScrollSize.Width > b.Rect.Width
}

// ScrollOffset implements Node.
func (b *Box) ScrollOffset() geom.Point { return b.Scroll }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ Node = (*Box)(nil)
