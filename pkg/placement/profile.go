package placement

import (
	"github.com/matzehuels/popover/pkg/geom"
)

// Dimensions are the measured size of the content plus any profile-specific
// measurements the resolver passes through untouched.
type Dimensions struct {
	Width  float64            `json:"width"`
	Height float64            `json:"height"`
	Extra  map[string]float64 `json:"extra,omitempty"`
}

// Size returns the content size.
func (d Dimensions) Size() geom.Size { return geom.Size{Width: d.Width, Height: d.Height} }

// ProfileInput is everything a profile needs to turn geometry into a style.
type ProfileInput struct {
	// Rect is the trigger rect relative to the offset origin's content box.
	Rect    geom.Rect
	Content Dimensions
	Options Options

	// ContainerWidth and ContainerHeight are the offset origin's size.
	ContainerWidth  float64
	ContainerHeight float64

	// FitMaxWidth and FitMaxHeight are the effective fit flags.
	FitMaxWidth  bool
	FitMaxHeight bool
}

// Position is the content's top-left corner in offset-origin coordinates.
type Position struct {
	Top  float64 `json:"top"`
	Left float64 `json:"left"`
}

// Arrow locates the pointer arrow on the content edge facing the trigger.
// Offset is measured along that edge from the content's left (for top and
// bottom placements) or top (for left and right placements).
type Arrow struct {
	Side   Side    `json:"side"`
	Offset float64 `json:"offset"`
}

// Keyframe is one animation state.
type Keyframe struct {
	Opacity float64 `json:"opacity"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// Style is the descriptor a profile produces and the host applies.
type Style struct {
	Position  Position `json:"position"`
	Arrow     *Arrow   `json:"arrow,omitempty"`
	MaxWidth  float64  `json:"max_width,omitempty"`
	MaxHeight float64  `json:"max_height,omitempty"`

	Initial Keyframe `json:"initial"`
	Animate Keyframe `json:"animate"`
	Exit    Keyframe `json:"exit"`
}

// ProfileFunc converts geometry into a style for one placement label. It
// must be pure.
type ProfileFunc func(ProfileInput) Style

// ProfileTable maps labels to profiles.
type ProfileTable interface {
	Lookup(Label) (ProfileFunc, bool)
}

// Profiles is a map-backed ProfileTable.
type Profiles map[Label]ProfileFunc

// Lookup implements ProfileTable.
func (p Profiles) Lookup(l Label) (ProfileFunc, bool) {
	fn, ok := p[l]
	return fn, ok && fn != nil
}

// missing returns the labels in want that t does not cover.
func missing(t ProfileTable, want []Label) []Label {
	var out []Label
	for _, l := range want {
		if _, ok := t.Lookup(l); !ok {
			out = append(out, l)
		}
	}
	return out
}
