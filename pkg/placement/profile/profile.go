package profile

import (
	"math"

	"github.com/matzehuels/popover/pkg/placement"
)

// Default returns a table covering every placement label.
func Default() placement.Profiles {
	t := make(placement.Profiles, len(placement.Labels()))
	for _, l := range placement.Labels() {
		t[l] = Build(l)
	}
	return t
}

// Build returns the default profile for l. It panics on an invalid label.
func Build(l placement.Label) placement.ProfileFunc {
	if !l.Valid() {
		panic("profile: invalid placement " + string(l))
	}
	base, bias := l.Base(), l.Bias()
	return func(in placement.ProfileInput) placement.Style {
		pos := position(base, bias, in)
		return placement.Style{
			Position:  pos,
			Arrow:     arrow(base, pos, in),
			MaxWidth:  maxWidth(base, in),
			MaxHeight: maxHeight(base, in),
			Initial:   keyframe(base, 0, in.Options.OpeningDistance, in.Options.Animation),
			Animate:   placement.Keyframe{Opacity: 1},
			Exit:      keyframe(base, 0, in.Options.ClosingDistance, in.Options.Animation),
		}
	}
}

func position(base, bias placement.Side, in placement.ProfileInput) placement.Position {
	r, o := in.Rect, in.Options
	w, h := in.Content.Width, in.Content.Height
	gap := o.Gap()

	var p placement.Position
	switch base {
	case placement.Top:
		p.Top = r.Top - h - gap
	case placement.Bottom:
		p.Top = r.Bottom + gap
	case placement.Left:
		p.Left = r.Left - w - gap
	case placement.Right:
		p.Left = r.Right + gap
	}

	if base.Vertical() {
		switch bias {
		case placement.Left:
			p.Left = r.Left
		case placement.Right:
			p.Left = r.Right - w
		default:
			p.Left = r.Left + (r.Width-w)/2
		}
	} else {
		switch bias {
		case placement.Top:
			p.Top = r.Top
		case placement.Bottom:
			p.Top = r.Bottom - h
		default:
			p.Top = r.Top + (r.Height-h)/2
		}
	}

	p.Left += o.Offset.X
	p.Top += o.Offset.Y

	if o.AvoidOverflowBounds {
		if base.Vertical() {
			p.Left = clamp(p.Left, o.ContainerGap, in.ContainerWidth-w-o.ContainerGap)
		} else {
			p.Top = clamp(p.Top, o.ContainerGap, in.ContainerHeight-h-o.ContainerGap)
		}
	}
	return p
}

// arrow points at the trigger center, kept at least one arrow size away from
// the content corners.
func arrow(base placement.Side, pos placement.Position, in placement.ProfileInput) *placement.Arrow {
	o := in.Options
	if !o.WithArrow {
		return nil
	}
	r := in.Rect
	var offset, length float64
	if base.Vertical() {
		offset = r.Left + r.Width/2 - pos.Left
		length = in.Content.Width
	} else {
		offset = r.Top + r.Height/2 - pos.Top
		length = in.Content.Height
	}
	return &placement.Arrow{
		Side:   base.Opposite(),
		Offset: clamp(offset, o.ArrowSize, length-o.ArrowSize),
	}
}

func maxWidth(base placement.Side, in placement.ProfileInput) float64 {
	if !in.FitMaxWidth {
		return in.Options.MaxWidth
	}
	o, r := in.Options, in.Rect
	var avail float64
	switch base {
	case placement.Left:
		avail = r.Left - o.Gap() - o.ContainerGap
	case placement.Right:
		avail = in.ContainerWidth - r.Right - o.Gap() - o.ContainerGap
	default:
		avail = in.ContainerWidth - 2*o.ContainerGap
	}
	return capped(avail, o.MaxWidth)
}

func maxHeight(base placement.Side, in placement.ProfileInput) float64 {
	if !in.FitMaxHeight {
		return in.Options.MaxHeight
	}
	o, r := in.Options, in.Rect
	var avail float64
	switch base {
	case placement.Top:
		avail = r.Top - o.Gap() - o.ContainerGap
	case placement.Bottom:
		avail = in.ContainerHeight - r.Bottom - o.Gap() - o.ContainerGap
	default:
		avail = in.ContainerHeight - 2*o.ContainerGap
	}
	return capped(avail, o.MaxHeight)
}

// keyframe displaces the content toward the trigger by distance.
func keyframe(base placement.Side, opacity, distance float64, animate bool) placement.Keyframe {
	if !animate {
		return placement.Keyframe{Opacity: 1}
	}
	k := placement.Keyframe{Opacity: opacity}
	switch base {
	case placement.Top:
		k.Y = distance
	case placement.Bottom:
		k.Y = -distance
	case placement.Left:
		k.X = distance
	case placement.Right:
		k.X = -distance
	}
	return k
}

// capped returns avail floored at zero and limited by an explicit cap when
// one is set.
func capped(avail, explicit float64) float64 {
	avail = math.Max(avail, 0)
	if explicit > 0 {
		return math.Min(avail, explicit)
	}
	return avail
}

// clamp limits v to [lo, hi]. When the range is empty lo wins.
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
