package placement

import (
	"github.com/matzehuels/popover/pkg/geom"
)

// Constraints are the four lines the trigger's edges are compared against.
// Content placed on a side fits when the trigger edge facing that side is on
// the inner side of the matching line.
type Constraints struct {
	Top, Bottom, Left, Right float64
}

// NewConstraints insets the container by the content size and both gaps.
func NewConstraints(container geom.Rect, content geom.Size, o Options) Constraints {
	gaps := o.TargetGap + o.ContainerGap
	return Constraints{
		Top:    container.Top + content.Height + gaps,
		Bottom: container.Bottom - content.Height - gaps,
		Left:   container.Left + content.Width + gaps,
		Right:  container.Right - content.Width - gaps,
	}
}

// edge pairs a side token with the trigger coordinate and the line it must
// not cross. For the "high" entry of a check, crossing means pos > limit;
// for the "low" entry it means pos < limit.
type edge struct {
	side  Side
	pos   float64
	limit float64
}

// flip evaluates one axis of l. A token flips to its partner only when it
// overflows and the partner fits, so when both overflow the requested token
// is kept.
func flip(l Label, high, low edge) Label {
	highOver := high.pos > high.limit
	lowOver := low.pos < low.limit
	switch {
	case l.Has(high.side) && highOver && !lowOver:
		return l.Replace(high.side, low.side)
	case l.Has(low.side) && lowOver && !highOver:
		return l.Replace(low.side, high.side)
	}
	return l
}

// converge applies step until the label stops changing. A flip never undoes
// itself, so this settles after at most one change per axis; the bound keeps
// degenerate input from looping.
func converge(l Label, step func(Label) Label) Label {
	for range allLabels {
		next := step(l)
		if next == l {
			return l
		}
		l = next
	}
	return l
}

// Avoid returns the label to use for requested so that content of the given
// size stays inside the area described by c.
func Avoid(requested Label, trigger geom.Rect, c Constraints) Label {
	l := bias(requested, trigger, c)

	l = converge(l, func(l Label) Label {
		if l.Vertical() {
			return flip(l, edge{Bottom, trigger.Bottom, c.Bottom}, edge{Top, trigger.Top, c.Top})
		}
		return flip(l, edge{Top, trigger.Top, c.Bottom}, edge{Bottom, trigger.Bottom, c.Top})
	})

	l = converge(l, func(l Label) Label {
		if l.Vertical() {
			return flip(l, edge{Left, trigger.Left, c.Right}, edge{Right, trigger.Right, c.Left})
		}
		return flip(l, edge{Right, trigger.Right, c.Right}, edge{Left, trigger.Left, c.Left})
	})

	return l
}

// bias adds a cross-axis suffix to an unbiased label when the trigger sits
// too close to one end of the perpendicular axis for centered content.
func bias(l Label, trigger geom.Rect, c Constraints) Label {
	if l.Bias() != "" {
		return l
	}
	if l.Vertical() {
		switch {
		case trigger.Right < c.Left:
			return Compose(l.Base(), Left)
		case trigger.Left > c.Right:
			return Compose(l.Base(), Right)
		}
		return l
	}
	switch {
	case trigger.Bottom < c.Top:
		return Compose(l.Base(), Top)
	case trigger.Top > c.Bottom:
		return Compose(l.Base(), Bottom)
	}
	return l
}
