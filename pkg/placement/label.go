package placement

import (
	"slices"
	"strings"

	"github.com/matzehuels/popover/pkg/errors"
)

// Side is one of the four directions a popover can extend from its trigger.
// Sides double as bias suffixes on the perpendicular axis.
type Side string

// Sides.
const (
	Top    Side = "top"
	Bottom Side = "bottom"
	Left   Side = "left"
	Right  Side = "right"
)

// Vertical reports whether s lies on the vertical axis.
func (s Side) Vertical() bool { return s == Top || s == Bottom }

// Opposite returns the side across the trigger from s.
func (s Side) Opposite() Side {
	switch s {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	}
	return ""
}

func (s Side) suffix() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Label is a placement: a base side optionally suffixed with a bias on the
// perpendicular axis, e.g. "top" or "topLeft".
type Label string

// Placement labels.
const (
	TopCenter    Label = "top"
	TopLeft      Label = "topLeft"
	TopRight     Label = "topRight"
	BottomCenter Label = "bottom"
	BottomLeft   Label = "bottomLeft"
	BottomRight  Label = "bottomRight"
	LeftCenter   Label = "left"
	LeftTop      Label = "leftTop"
	LeftBottom   Label = "leftBottom"
	RightCenter  Label = "right"
	RightTop     Label = "rightTop"
	RightBottom  Label = "rightBottom"
)

var allLabels = []Label{
	TopCenter, TopLeft, TopRight,
	BottomCenter, BottomLeft, BottomRight,
	LeftCenter, LeftTop, LeftBottom,
	RightCenter, RightTop, RightBottom,
}

// Labels returns every valid placement label.
func Labels() []Label { return slices.Clone(allLabels) }

// BaseLabels returns the four unbiased labels.
func BaseLabels() []Label {
	return []Label{TopCenter, BottomCenter, LeftCenter, RightCenter}
}

// Compose builds the label for base with the given bias. An empty bias
// yields the unbiased label. Compose returns "" when bias is not
// perpendicular to base.
func Compose(base, bias Side) Label {
	if base == "" {
		return ""
	}
	if bias == "" {
		return Label(base)
	}
	if base.Vertical() == bias.Vertical() {
		return ""
	}
	return Label(string(base) + bias.suffix())
}

// Parse validates s as a placement label.
func Parse(s string) (Label, error) {
	l := Label(s)
	if !l.Valid() {
		return "", errors.New(errors.ErrCodeInvalidPlacement,
			"unknown placement %q (valid: %s)", s, joinLabels(allLabels))
	}
	return l, nil
}

// MustParse is like Parse but panics on invalid input. It is meant for
// package-level defaults and tests.
func MustParse(s string) Label {
	l, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return l
}

// Valid reports whether l is one of the twelve placement labels.
func (l Label) Valid() bool { return slices.Contains(allLabels, l) }

// Base returns the side the content extends toward.
func (l Label) Base() Side {
	for _, s := range []Side{Bottom, Right, Top, Left} {
		if strings.HasPrefix(string(l), string(s)) {
			return s
		}
	}
	return ""
}

// Bias returns the perpendicular suffix, or "" when the label is unbiased.
func (l Label) Bias() Side {
	rest := strings.TrimPrefix(string(l), string(l.Base()))
	if rest == "" {
		return ""
	}
	return Side(strings.ToLower(rest))
}

// Vertical reports whether the base side is top or bottom.
func (l Label) Vertical() bool { return l.Base().Vertical() }

// Has reports whether s appears in l, as base or as bias.
func (l Label) Has(s Side) bool { return l.Base() == s || l.Bias() == s }

// Replace swaps side from for to in l, whether it is the base or the bias.
func (l Label) Replace(from, to Side) Label {
	switch {
	case l.Base() == from:
		return Compose(to, l.Bias())
	case l.Bias() == from:
		return Compose(l.Base(), to)
	}
	return l
}

func (l Label) String() string { return string(l) }

func joinLabels(ls []Label) string {
	parts := make([]string, len(ls))
	for i, l := range ls {
		parts[i] = string(l)
	}
	return strings.Join(parts, ", ")
}
