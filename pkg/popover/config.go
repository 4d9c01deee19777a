package popover

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/popover/pkg/clock"
	"github.com/matzehuels/popover/pkg/frame"
	"github.com/matzehuels/popover/pkg/placement"
	"github.com/matzehuels/popover/pkg/visibility"
)

// Defaults applied by New.
const (
	DefaultPlacement = placement.TopCenter
	DefaultTrigger   = visibility.Hover
)

// Config configures a Popover. The zero value is usable: a hover-triggered
// popover placed on top with the default placement options.
type Config struct {
	// ID identifies the popover in views, logs and hooks. A random UUID is
	// used when empty.
	ID string

	// Placement is the requested placement label.
	Placement string
	// Trigger is the trigger kind: click, hover, focus or contextMenu.
	Trigger string

	// Options are the placement options; nil means
	// placement.DefaultOptions().
	Options *placement.Options
	// Profiles is the placement profile table; nil means profile.Default().
	Profiles placement.ProfileTable

	// Hover delays and the first-open settle delay; nil means the
	// visibility package defaults.
	EnterDelay  *time.Duration
	LeaveDelay  *time.Duration
	SettleDelay *time.Duration

	// CloseOnEscape defaults to true.
	CloseOnEscape *bool
	CloseOnEnter  bool
	// CloseOnRemoteClick defaults to true for click and context-menu
	// triggers.
	CloseOnRemoteClick *bool

	// Controlled hands the open flag to the caller. Open is its initial
	// value and OnChange receives every requested change.
	Controlled bool
	Open       bool
	OnChange   func(open bool)
	// OnClose fires when an open popover closes.
	OnClose func()
	// OnFocus and OnBlur fire when the trigger gains or loses focus.
	OnFocus func()
	OnBlur  func()

	// Container is the collision boundary and offset context. When nil,
	// DefaultContainer is used.
	Container        frame.Node
	DefaultContainer frame.Node

	Clock  clock.Clock
	Logger *log.Logger
}

func (c Config) container() frame.Node {
	if c.Container != nil {
		return c.Container
	}
	return c.DefaultContainer
}

func (c Config) options() placement.Options {
	if c.Options != nil {
		return *c.Options
	}
	return placement.DefaultOptions()
}

func (c Config) visibility(trigger visibility.Trigger) visibility.Config {
	v := visibility.DefaultConfig()
	v.ID = c.ID
	v.Trigger = trigger
	if c.EnterDelay != nil {
		v.EnterDelay = *c.EnterDelay
	}
	if c.LeaveDelay != nil {
		v.LeaveDelay = *c.LeaveDelay
	}
	if c.SettleDelay != nil {
		v.SettleDelay = *c.SettleDelay
	}
	if c.CloseOnEscape != nil {
		v.CloseOnEscape = *c.CloseOnEscape
	}
	v.CloseOnEnter = c.CloseOnEnter
	v.CloseOnRemoteClick = c.CloseOnRemoteClick
	v.Controlled = c.Controlled
	v.OnChange = c.OnChange
	v.OnClose = c.OnClose
	v.OnFocus = c.OnFocus
	v.OnBlur = c.OnBlur
	v.Clock = c.Clock
	v.Logger = c.Logger
	return v
}
