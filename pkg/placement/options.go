package placement

import (
	"github.com/matzehuels/popover/pkg/errors"
	"github.com/matzehuels/popover/pkg/geom"
)

// Default values used by DefaultOptions.
const (
	DefaultArrowSize       = 8.0
	DefaultTargetGap       = 4.0
	DefaultContainerGap    = 8.0
	DefaultOpeningDistance = 8.0
	DefaultClosingDistance = 8.0
)

// Options configures a Resolver. It is fixed for the lifetime of the
// resolver and never changes during a pass.
type Options struct {
	// Offset is added to the computed position (x, y).
	Offset geom.Point `json:"offset"`

	// WithArrow reserves room for, and positions, a pointer arrow.
	WithArrow bool    `json:"with_arrow"`
	ArrowSize float64 `json:"arrow_size"`

	// TargetGap is the space between trigger and content.
	TargetGap float64 `json:"target_gap"`
	// ContainerGap is the minimum space between content and container edge.
	ContainerGap float64 `json:"container_gap"`

	// AvoidCollisions flips and biases the requested placement to keep the
	// content inside the container.
	AvoidCollisions bool `json:"avoid_collisions"`
	// AvoidOverflowBounds clamps the cross-axis position into the container.
	AvoidOverflowBounds bool `json:"avoid_overflow_bounds"`

	// MaxWidth and MaxHeight are explicit size caps; zero means unset.
	MaxWidth  float64 `json:"max_width,omitempty"`
	MaxHeight float64 `json:"max_height,omitempty"`
	// FitMaxWidth and FitMaxHeight derive size caps from the available
	// space. When nil they default to true exactly when the matching explicit
	// cap is unset.
	FitMaxWidth  *bool `json:"fit_max_width,omitempty"`
	FitMaxHeight *bool `json:"fit_max_height,omitempty"`

	// Animation enables the enter/exit translate keyframes.
	Animation       bool    `json:"animation"`
	OpeningDistance float64 `json:"opening_distance"`
	ClosingDistance float64 `json:"closing_distance"`
}

// DefaultOptions returns the options a popover uses when nothing is
// configured: arrow on, collision avoidance on, animation on.
func DefaultOptions() Options {
	return Options{
		WithArrow:       true,
		ArrowSize:       DefaultArrowSize,
		TargetGap:       DefaultTargetGap,
		ContainerGap:    DefaultContainerGap,
		AvoidCollisions: true,
		Animation:       true,
		OpeningDistance: DefaultOpeningDistance,
		ClosingDistance: DefaultClosingDistance,
	}
}

// Validate rejects negative sizes and gaps.
func (o Options) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"arrow_size", o.ArrowSize},
		{"target_gap", o.TargetGap},
		{"container_gap", o.ContainerGap},
		{"max_width", o.MaxWidth},
		{"max_height", o.MaxHeight},
		{"opening_distance", o.OpeningDistance},
		{"closing_distance", o.ClosingDistance},
	}
	for _, c := range checks {
		if c.value < 0 {
			return errors.New(errors.ErrCodeInvalidOptions, "%s must not be negative (got %g)", c.name, c.value)
		}
	}
	return nil
}

// fitFlags resolves the effective fit-to-bounds flags.
func (o Options) fitFlags() (width, height bool) {
	width = o.MaxWidth == 0
	if o.FitMaxWidth != nil {
		width = *o.FitMaxWidth
	}
	height = o.MaxHeight == 0
	if o.FitMaxHeight != nil {
		height = *o.FitMaxHeight
	}
	return width, height
}

// arrowGap is the extra distance the arrow occupies between trigger and
// content.
func (o Options) arrowGap() float64 {
	if !o.WithArrow {
		return 0
	}
	return o.ArrowSize
}

// Gap returns the total main-axis distance between trigger and content.
func (o Options) Gap() float64 { return o.TargetGap + o.arrowGap() }
