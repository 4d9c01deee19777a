package visibility

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/popover/pkg/clock"
	"github.com/matzehuels/popover/pkg/errors"
)

// Default delays.
const (
	DefaultEnterDelay  = 100 * time.Millisecond
	DefaultLeaveDelay  = 300 * time.Millisecond
	DefaultSettleDelay = 100 * time.Millisecond
)

// Config configures a Controller.
type Config struct {
	// ID labels log lines and hook events.
	ID string

	Trigger Trigger

	// EnterDelay and LeaveDelay debounce hover transitions.
	EnterDelay time.Duration
	LeaveDelay time.Duration
	// SettleDelay is the wait after the first measurement request before
	// the first open.
	SettleDelay time.Duration

	CloseOnEscape bool
	CloseOnEnter  bool
	// CloseOnRemoteClick defaults to true for click and context-menu
	// triggers when nil.
	CloseOnRemoteClick *bool

	// Controlled hands ownership of the open flag to the caller.
	Controlled bool
	// OnChange receives the wanted open state in controlled mode.
	OnChange func(open bool)
	// OnClose fires when an open popover closes.
	OnClose func()
	// OnFocus and OnBlur fire on every focus and blur event, whatever the
	// trigger kind.
	OnFocus func()
	OnBlur  func()
	// OnTransition fires after every state change.
	OnTransition func(Transition)

	// Clock defaults to clock.Real().
	Clock clock.Clock
	// Logger defaults to log.Default().
	Logger *log.Logger
}

// DefaultConfig returns a hover-triggered, uncontrolled configuration with
// Escape dismissal on.
func DefaultConfig() Config {
	return Config{
		Trigger:       Hover,
		EnterDelay:    DefaultEnterDelay,
		LeaveDelay:    DefaultLeaveDelay,
		SettleDelay:   DefaultSettleDelay,
		CloseOnEscape: true,
	}
}

// Validate checks the trigger kind and delays.
func (c Config) Validate() error {
	if _, err := ParseTrigger(string(c.Trigger)); err != nil {
		return err
	}
	for name, d := range map[string]time.Duration{
		"enter delay":  c.EnterDelay,
		"leave delay":  c.LeaveDelay,
		"settle delay": c.SettleDelay,
	} {
		if d < 0 {
			return errors.New(errors.ErrCodeInvalidOptions, "%s must not be negative (got %s)", name, d)
		}
	}
	return nil
}

// RemoteClickDismisses reports the effective remote-click setting.
func (c Config) RemoteClickDismisses() bool {
	if c.CloseOnRemoteClick != nil {
		return *c.CloseOnRemoteClick
	}
	return c.Trigger.dismissesOnRemoteClick()
}
