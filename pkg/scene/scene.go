package scene

import (
	"github.com/matzehuels/popover/pkg/geom"
)

// Scene is a declarative popover setup.
type Scene struct {
	Name string `json:"name" yaml:"name" toml:"name"`

	// Root is the document root of the container tree.
	Root Node `json:"root" yaml:"root" toml:"root"`
	// Container names the node used as the popover container. Empty means
	// the root.
	Container string `json:"container,omitempty" yaml:"container,omitempty" toml:"container,omitempty"`
	// Trigger names the node the popover is anchored to.
	Trigger string `json:"trigger" yaml:"trigger" toml:"trigger"`

	Content Content `json:"content" yaml:"content" toml:"content"`
	Popover Popover `json:"popover" yaml:"popover" toml:"popover"`

	Script []Step `json:"script,omitempty" yaml:"script,omitempty" toml:"script,omitempty"`
}

// Node is one element of the container tree.
type Node struct {
	Name     string  `json:"name" yaml:"name" toml:"name"`
	Position string  `json:"position,omitempty" yaml:"position,omitempty" toml:"position,omitempty"`
	X        float64 `json:"x" yaml:"x" toml:"x"`
	Y        float64 `json:"y" yaml:"y" toml:"y"`
	Width    float64 `json:"width" yaml:"width" toml:"width"`
	Height   float64 `json:"height" yaml:"height" toml:"height"`

	// ScrollWidth and ScrollHeight size the scrollable content; a node
	// whose content is larger than its box is a scroll frame.
	ScrollWidth  float64 `json:"scroll_width,omitempty" yaml:"scroll_width,omitempty" toml:"scroll_width,omitempty"`
	ScrollHeight float64 `json:"scroll_height,omitempty" yaml:"scroll_height,omitempty" toml:"scroll_height,omitempty"`
	// Scroll is the initial scroll offset.
	Scroll geom.Point `json:"scroll,omitempty" yaml:"scroll,omitempty" toml:"scroll,omitempty"`

	Children []Node `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// Rect returns the node's authored box.
func (n Node) Rect() geom.Rect { return geom.RectXYWH(n.X, n.Y, n.Width, n.Height) }

// Content is the measured content size reported for the scene.
type Content struct {
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
	// Unmeasured simulates content whose measurement never completes.
	Unmeasured bool `json:"unmeasured,omitempty" yaml:"unmeasured,omitempty" toml:"unmeasured,omitempty"`
}

// Popover is the popover configuration. Pointer fields are optional and
// fall back to the library defaults.
type Popover struct {
	Placement string `json:"placement,omitempty" yaml:"placement,omitempty" toml:"placement,omitempty"`
	Trigger   string `json:"trigger,omitempty" yaml:"trigger,omitempty" toml:"trigger,omitempty"`

	WithArrow    *bool      `json:"with_arrow,omitempty" yaml:"with_arrow,omitempty" toml:"with_arrow,omitempty"`
	ArrowSize    *float64   `json:"arrow_size,omitempty" yaml:"arrow_size,omitempty" toml:"arrow_size,omitempty"`
	Offset       geom.Point `json:"offset,omitempty" yaml:"offset,omitempty" toml:"offset,omitempty"`
	TargetGap    *float64   `json:"target_gap,omitempty" yaml:"target_gap,omitempty" toml:"target_gap,omitempty"`
	ContainerGap *float64   `json:"container_gap,omitempty" yaml:"container_gap,omitempty" toml:"container_gap,omitempty"`

	AvoidCollisions     *bool `json:"avoid_collisions,omitempty" yaml:"avoid_collisions,omitempty" toml:"avoid_collisions,omitempty"`
	AvoidOverflowBounds bool  `json:"avoid_overflow_bounds,omitempty" yaml:"avoid_overflow_bounds,omitempty" toml:"avoid_overflow_bounds,omitempty"`

	MaxWidth     float64 `json:"max_width,omitempty" yaml:"max_width,omitempty" toml:"max_width,omitempty"`
	MaxHeight    float64 `json:"max_height,omitempty" yaml:"max_height,omitempty" toml:"max_height,omitempty"`
	FitMaxWidth  *bool   `json:"fit_max_width,omitempty" yaml:"fit_max_width,omitempty" toml:"fit_max_width,omitempty"`
	FitMaxHeight *bool   `json:"fit_max_height,omitempty" yaml:"fit_max_height,omitempty" toml:"fit_max_height,omitempty"`

	Animation *bool `json:"animation,omitempty" yaml:"animation,omitempty" toml:"animation,omitempty"`

	// Delays in milliseconds.
	EnterDelay  *int `json:"enter_delay,omitempty" yaml:"enter_delay,omitempty" toml:"enter_delay,omitempty"`
	LeaveDelay  *int `json:"leave_delay,omitempty" yaml:"leave_delay,omitempty" toml:"leave_delay,omitempty"`
	SettleDelay *int `json:"settle_delay,omitempty" yaml:"settle_delay,omitempty" toml:"settle_delay,omitempty"`

	CloseOnEscape      *bool `json:"close_on_escape,omitempty" yaml:"close_on_escape,omitempty" toml:"close_on_escape,omitempty"`
	CloseOnEnter       bool  `json:"close_on_enter,omitempty" yaml:"close_on_enter,omitempty" toml:"close_on_enter,omitempty"`
	CloseOnRemoteClick *bool `json:"close_on_remote_click,omitempty" yaml:"close_on_remote_click,omitempty" toml:"close_on_remote_click,omitempty"`

	Controlled bool `json:"controlled,omitempty" yaml:"controlled,omitempty" toml:"controlled,omitempty"`
	Open       bool `json:"open,omitempty" yaml:"open,omitempty" toml:"open,omitempty"`
}

// Step is one scripted event. At is milliseconds from the start of the
// simulation.
type Step struct {
	At    int    `json:"at" yaml:"at" toml:"at"`
	Event string `json:"event" yaml:"event" toml:"event"`

	// Key is read by keyDown.
	Key string `json:"key,omitempty" yaml:"key,omitempty" toml:"key,omitempty"`
	// Value is read by sync.
	Value bool `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	// Target names the node scrolled by scroll or moved by move.
	Target string `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty"`
	// X and Y are a pointer position, or a delta for scroll and move.
	X float64 `json:"x,omitempty" yaml:"x,omitempty" toml:"x,omitempty"`
	Y float64 `json:"y,omitempty" yaml:"y,omitempty" toml:"y,omitempty"`
}
