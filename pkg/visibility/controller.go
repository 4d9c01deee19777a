package visibility

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/popover/pkg/clock"
	"github.com/matzehuels/popover/pkg/observability"
)

// Measurer measures the popover content.
type Measurer interface {
	// Measured reports whether the content has been measured at least once.
	Measured() bool
	// Measure requests a measurement. done is called once it completes,
	// possibly from another goroutine and possibly never.
	Measure(done func())
}

// Positioner runs a placement pass.
type Positioner interface {
	Reposition()
}

// Transition is one state change.
type Transition struct {
	From  State  `json:"from"`
	To    State  `json:"to"`
	Cause string `json:"cause"`
}

type debounceKind string

const (
	debounceOpen  debounceKind = "enter"
	debounceClose debounceKind = "leave"
)

// Controller is the visibility state machine for one popover. It is safe
// for concurrent use; collaborator callbacks run after the internal lock is
// released and may call back into the controller.
type Controller struct {
	cfg        Config
	clock      clock.Clock
	logger     *log.Logger
	measurer   Measurer
	positioner Positioner

	mu    sync.Mutex
	state State

	// debounce is the single pending hover transition. debounceGen
	// invalidates callbacks of timers that were superseded.
	debounce    clock.Timer
	debounceGen uint64

	// settle tracks the current PendingMeasurement episode.
	settle    clock.Timer
	settleGen uint64
	settled   bool
	measured  bool

	destroyed bool
}

// New validates cfg and returns a closed controller. measurer may be nil
// when content needs no measuring; positioner may be nil when nothing needs
// to be placed.
func New(cfg Config, measurer Measurer, positioner Positioner) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		cfg:        cfg,
		clock:      cfg.Clock,
		logger:     cfg.Logger,
		measurer:   measurer,
		positioner: positioner,
	}
	if c.clock == nil {
		c.clock = clock.Real()
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	return c, nil
}

// effects are collaborator calls collected under the lock and run after it
// is released.
type effects []func()

func (fx effects) run() {
	for _, f := range fx {
		f()
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsOpen reports whether the popover is shown.
func (c *Controller) IsOpen() bool { return c.State() == Open }

// Config returns the controller's configuration.
func (c *Controller) Config() Config { return c.cfg }

// Open requests the popover to open.
func (c *Controller) Open() { c.do(func() effects { return c.requestOpen("open") }) }

// Close requests the popover to close. It is safe when already closed.
func (c *Controller) Close() { c.do(func() effects { return c.requestClose("close") }) }

// Toggle closes an open popover and opens any other.
func (c *Controller) Toggle() { c.do(func() effects { return c.toggle("toggle") }) }

// Sync reconciles the controller with the caller-owned open flag. A
// divergence is resolved immediately without debouncing: opening still
// waits for the first measurement, closing is unconditional. Sync never
// calls OnChange.
func (c *Controller) Sync(open bool) {
	c.do(func() effects {
		switch {
		case open && c.state == Closed:
			return c.openNow("sync")
		case !open && c.state != Closed:
			return c.closeNow("sync")
		}
		return nil
	})
}

// Handle maps one input event to its transition for the configured trigger.
func (c *Controller) Handle(ev Event) {
	c.do(func() effects {
		fx := c.handle(ev)
		switch {
		case ev.Kind == FocusIn && c.cfg.OnFocus != nil:
			fx = append(effects{c.cfg.OnFocus}, fx...)
		case ev.Kind == FocusOut && c.cfg.OnBlur != nil:
			fx = append(effects{c.cfg.OnBlur}, fx...)
		}
		return fx
	})
}

func (c *Controller) handle(ev Event) effects {
	switch ev.Kind {
	case KeyDown:
		if c.state != Open {
			return nil
		}
		if (ev.Key == KeyEscape && c.cfg.CloseOnEscape) || (ev.Key == KeyEnter && c.cfg.CloseOnEnter) {
			return c.requestClose("key " + ev.Key)
		}
		return nil
	case RemoteClick:
		if c.state == Open && c.cfg.RemoteClickDismisses() {
			return c.requestClose("remote click")
		}
		return nil
	}

	switch c.cfg.Trigger {
	case Click:
		if ev.Kind == MouseDown {
			return c.toggle("click")
		}
	case ContextMenu:
		if ev.Kind == ContextClick {
			return c.toggle("context menu")
		}
	case Focus:
		switch ev.Kind {
		case FocusIn:
			return c.requestOpen("focus")
		case FocusOut:
			return c.requestClose("blur")
		}
	case Hover:
		switch ev.Kind {
		case MouseEnter:
			c.schedule(debounceOpen, c.cfg.EnterDelay)
		case MouseLeave:
			c.schedule(debounceClose, c.cfg.LeaveDelay)
		}
	}
	return nil
}

// Reposition runs a placement pass if the popover is open. It never changes
// state.
func (c *Controller) Reposition() {
	c.do(func() effects {
		if c.state != Open || c.positioner == nil {
			return nil
		}
		return effects{c.positioner.Reposition}
	})
}

// Destroy cancels every pending timer and turns all further calls into
// no-ops. No callbacks fire.
func (c *Controller) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}
	c.cancelDebounce()
	c.cancelSettle()
	c.state = Closed
	c.destroyed = true
	c.logger.Debug("visibility controller destroyed", "id", c.cfg.ID)
}

// do runs fn under the lock and its effects after releasing it.
func (c *Controller) do(fn func() effects) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	fx := fn()
	c.mu.Unlock()
	fx.run()
}

func (c *Controller) toggle(cause string) effects {
	if c.state == Open {
		return c.requestClose(cause)
	}
	return c.requestOpen(cause)
}

// requestOpen and requestClose are caller-initiated: in controlled mode they
// only report the wanted state.
func (c *Controller) requestOpen(cause string) effects {
	if c.cfg.Controlled {
		c.cancelDebounce()
		if c.state != Closed {
			return nil
		}
		return c.notifyChange(true)
	}
	return c.openNow(cause)
}

func (c *Controller) requestClose(cause string) effects {
	if c.cfg.Controlled {
		c.cancelDebounce()
		if c.state == Closed {
			return nil
		}
		return c.notifyChange(false)
	}
	return c.closeNow(cause)
}

func (c *Controller) notifyChange(open bool) effects {
	c.logger.Debug("requesting visibility change", "id", c.cfg.ID, "open", open)
	if c.cfg.OnChange == nil {
		return nil
	}
	return effects{func() { c.cfg.OnChange(open) }}
}

func (c *Controller) openNow(cause string) effects {
	c.cancelDebounce()
	if c.state != Closed {
		return nil
	}
	if c.measurer == nil || c.measurer.Measured() {
		return c.enterOpen(cause)
	}

	c.settleGen++
	gen := c.settleGen
	c.settled, c.measured = false, false
	c.settle = c.clock.AfterFunc(c.cfg.SettleDelay, func() { c.settleElapsed(gen) })
	observability.Visibility().OnTimer(c.cfg.ID, "settle", c.cfg.SettleDelay)

	fx := c.transition(PendingMeasurement, cause)
	measurer := c.measurer
	return append(fx, func() { measurer.Measure(func() { c.measurementDone(gen) }) })
}

func (c *Controller) enterOpen(cause string) effects {
	c.cancelSettle()
	var fx effects
	if c.positioner != nil {
		fx = append(fx, c.positioner.Reposition)
	}
	return append(fx, c.transition(Open, cause)...)
}

func (c *Controller) closeNow(cause string) effects {
	c.cancelDebounce()
	c.cancelSettle()
	if c.state == Closed {
		return nil
	}
	wasOpen := c.state == Open
	fx := c.transition(Closed, cause)
	if wasOpen && c.cfg.OnClose != nil {
		fx = append(fx, c.cfg.OnClose)
	}
	return fx
}

func (c *Controller) settleElapsed(gen uint64) {
	c.do(func() effects {
		if gen != c.settleGen || c.state != PendingMeasurement {
			return nil
		}
		c.settle = nil
		c.settled = true
		if !c.measured {
			c.logger.Debug("settle delay elapsed, waiting for measurement", "id", c.cfg.ID)
			return nil
		}
		return c.enterOpen("settled")
	})
}

func (c *Controller) measurementDone(gen uint64) {
	c.do(func() effects {
		if gen != c.settleGen || c.state != PendingMeasurement {
			return nil
		}
		c.measured = true
		if !c.settled {
			return nil
		}
		return c.enterOpen("measured")
	})
}

// ContentMeasured reports a measurement that arrived outside Measure. It
// releases a pending first open the same way the Measure callback does.
func (c *Controller) ContentMeasured() {
	c.do(func() effects {
		if c.state != PendingMeasurement {
			return nil
		}
		c.measured = true
		if !c.settled {
			return nil
		}
		return c.enterOpen("measured")
	})
}

// schedule arms the single hover debounce. A new hover event cancels the
// pending transition of either kind, so enter and leave never race.
func (c *Controller) schedule(kind debounceKind, delay time.Duration) {
	c.cancelDebounce()
	gen := c.debounceGen
	c.debounce = c.clock.AfterFunc(delay, func() { c.debounceElapsed(gen, kind) })
	observability.Visibility().OnTimer(c.cfg.ID, string(kind), delay)
}

func (c *Controller) debounceElapsed(gen uint64, kind debounceKind) {
	c.do(func() effects {
		if gen != c.debounceGen {
			return nil
		}
		c.debounce = nil
		if kind == debounceOpen {
			return c.requestOpen("hover")
		}
		return c.requestClose("hover")
	})
}

func (c *Controller) cancelDebounce() {
	c.debounceGen++
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
}

func (c *Controller) cancelSettle() {
	c.settleGen++
	if c.settle != nil {
		c.settle.Stop()
		c.settle = nil
	}
}

func (c *Controller) transition(to State, cause string) effects {
	t := Transition{From: c.state, To: to, Cause: cause}
	c.state = to
	c.logger.Debug("visibility transition", "id", c.cfg.ID, "from", t.From, "to", t.To, "cause", cause)
	fx := effects{func() {
		observability.Visibility().OnTransition(c.cfg.ID, t.From.String(), t.To.String(), t.Cause)
	}}
	if c.cfg.OnTransition != nil {
		fx = append(fx, func() { c.cfg.OnTransition(t) })
	}
	return fx
}
