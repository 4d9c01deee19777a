package render

import (
	"github.com/matzehuels/popover/pkg/frame"
	"github.com/matzehuels/popover/pkg/geom"
	"github.com/matzehuels/popover/pkg/placement"
	"github.com/matzehuels/popover/pkg/scene"
)

// Placed is a placement result mapped back into viewport coordinates.
type Placed struct {
	Requested placement.Label `json:"requested"`
	Placement placement.Label `json:"placement"`
	Trigger   geom.Rect       `json:"trigger"`
	Container geom.Rect       `json:"container"`
	Content   geom.Rect       `json:"content"`
	// Arrow is the arrow triangle, tip last. Nil without an arrow.
	Arrow []geom.Point    `json:"arrow,omitempty"`
	Style placement.Style `json:"style"`
}

// Place maps res onto the scene's current geometry. Content larger than the
// style's size caps is shrunk to them.
func Place(b *scene.Built, res placement.Result) Placed {
	origin := frame.OffsetOrigin(b.Container)
	scroll := frame.ScrollFrame(b.Container)
	at := frame.ToViewport(geom.Point{X: res.Style.Position.Left, Y: res.Style.Position.Top}, origin, scroll)

	w, h := b.Content.Width, b.Content.Height
	if res.Style.MaxWidth > 0 && w > res.Style.MaxWidth {
		w = res.Style.MaxWidth
	}
	if res.Style.MaxHeight > 0 && h > res.Style.MaxHeight {
		h = res.Style.MaxHeight
	}

	p := Placed{
		Requested: b.Scene.Requested(),
		Placement: res.Placement,
		Trigger:   b.Trigger.Rect,
		Container: b.Container.Rect,
		Content:   geom.RectXYWH(at.X, at.Y, w, h),
		Style:     res.Style,
	}
	if res.Style.Arrow != nil {
		p.Arrow = arrow(p.Content, *res.Style.Arrow, b.Options.ArrowSize)
	}
	return p
}

// arrow builds the triangle on the content edge named by a.Side, pointing
// away from the content.
func arrow(c geom.Rect, a placement.Arrow, size float64) []geom.Point {
	if size <= 0 {
		return nil
	}
	switch a.Side {
	case placement.Bottom:
		x := c.Left + a.Offset
		return []geom.Point{{X: x - size, Y: c.Bottom}, {X: x + size, Y: c.Bottom}, {X: x, Y: c.Bottom + size}}
	case placement.Top:
		x := c.Left + a.Offset
		return []geom.Point{{X: x - size, Y: c.Top}, {X: x + size, Y: c.Top}, {X: x, Y: c.Top - size}}
	case placement.Right:
		y := c.Top + a.Offset
		return []geom.Point{{X: c.Right, Y: y - size}, {X: c.Right, Y: y + size}, {X: c.Right + size, Y: y}}
	case placement.Left:
		y := c.Top + a.Offset
		return []geom.Point{{X: c.Left, Y: y - size}, {X: c.Left, Y: y + size}, {X: c.Left - size, Y: y}}
	}
	return nil
}
