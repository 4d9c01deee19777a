package popover

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/popover/pkg/errors"
	"github.com/matzehuels/popover/pkg/frame"
	"github.com/matzehuels/popover/pkg/geom"
	"github.com/matzehuels/popover/pkg/placement"
	"github.com/matzehuels/popover/pkg/placement/profile"
	"github.com/matzehuels/popover/pkg/visibility"
)

// DimensionProvider reports the geometry the popover is placed from.
type DimensionProvider interface {
	// TriggerRect returns the trigger's current box in viewport
	// coordinates, or false when the trigger is not laid out.
	TriggerRect() (geom.Rect, bool)
	// Measure measures the content and reports the result through done. It
	// may complete asynchronously, or never.
	Measure(done func(placement.Dimensions))
}

// Observer notifies about changes that invalidate the placement, such as a
// resize or trigger motion.
type Observer interface {
	Subscribe(fn func()) (cancel func())
}

// Host renders the popover.
type Host interface {
	Render(View)
}

// HostFunc adapts a function to Host.
type HostFunc func(View)

// Render implements Host.
func (f HostFunc) Render(v View) { f(v) }

// View is what the host needs to draw the popover.
type View struct {
	ID        string           `json:"id"`
	IsOpen    bool             `json:"is_open"`
	State     visibility.State `json:"state"`
	Placement placement.Label  `json:"placement,omitempty"`
	Style     placement.Style  `json:"style"`
	// HasStyle is false until the first successful placement pass.
	HasStyle bool `json:"has_style"`
}

// Hit classifies a pointer position.
type Hit int

// Pointer hit targets.
const (
	HitOutside Hit = iota
	HitTrigger
	HitContent
)

func (h Hit) String() string {
	switch h {
	case HitTrigger:
		return "trigger"
	case HitContent:
		return "content"
	}
	return "outside"
}

// Popover is one anchored popover.
type Popover struct {
	id        string
	requested placement.Label
	container frame.Node
	resolver  *placement.Resolver
	ctrl      *visibility.Controller
	dims      DimensionProvider
	host      Host
	logger    *log.Logger

	mu        sync.Mutex
	content   *placement.Dimensions
	hovering  bool
	cancels   []func()
	destroyed bool
}

// New validates cfg and creates a closed popover. host may be nil.
func New(cfg Config, dims DimensionProvider, host Host, observers ...Observer) (*Popover, error) {
	if dims == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dimension provider is required")
	}
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	if cfg.Placement == "" {
		cfg.Placement = string(DefaultPlacement)
	}
	if cfg.Trigger == "" {
		cfg.Trigger = string(DefaultTrigger)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Profiles == nil {
		cfg.Profiles = profile.Default()
	}

	requested, err := placement.Parse(cfg.Placement)
	if err != nil {
		return nil, err
	}
	trigger, err := visibility.ParseTrigger(cfg.Trigger)
	if err != nil {
		return nil, err
	}
	resolver, err := placement.NewResolver(cfg.Profiles, cfg.options(), cfg.Logger)
	if err != nil {
		return nil, err
	}
	if !resolver.Supports(requested) {
		return nil, errors.New(errors.ErrCodeInvalidPlacement, "no profile for placement %q", requested)
	}

	p := &Popover{
		id:        cfg.ID,
		requested: requested,
		container: cfg.container(),
		resolver:  resolver,
		dims:      dims,
		host:      host,
		logger:    cfg.Logger,
	}

	vcfg := cfg.visibility(trigger)
	vcfg.OnTransition = func(visibility.Transition) { p.render() }
	p.ctrl, err = visibility.New(vcfg, measurer{p}, positioner{p})
	if err != nil {
		return nil, err
	}

	for _, o := range observers {
		p.cancels = append(p.cancels, o.Subscribe(p.Reposition))
	}

	p.logger.Debug("popover created", "id", p.id, "placement", requested, "trigger", trigger, "controlled", cfg.Controlled)

	if cfg.Controlled && cfg.Open {
		p.ctrl.Sync(true)
	}
	return p, nil
}

// ID returns the popover's identifier.
func (p *Popover) ID() string { return p.id }

// Open requests the popover to open.
func (p *Popover) Open() { p.ctrl.Open() }

// Close requests the popover to close.
func (p *Popover) Close() { p.ctrl.Close() }

// Toggle closes an open popover and opens any other.
func (p *Popover) Toggle() { p.ctrl.Toggle() }

// IsOpen reports whether the content is shown.
func (p *Popover) IsOpen() bool { return p.ctrl.IsOpen() }

// State returns the visibility state.
func (p *Popover) State() visibility.State { return p.ctrl.State() }

// SetOpen passes the caller-owned open flag in controlled mode.
func (p *Popover) SetOpen(open bool) { p.ctrl.Sync(open) }

// Handle delivers a trigger or dismissal event.
func (p *Popover) Handle(ev visibility.Event) { p.ctrl.Handle(ev) }

// Reposition runs a placement pass if the popover is open.
func (p *Popover) Reposition() { p.ctrl.Reposition() }

// HandlePointer classifies a primary pointer press at pt and delivers the
// matching event: a press on the trigger, or a remote click when it lands
// outside both trigger and content.
func (p *Popover) HandlePointer(pt geom.Point) Hit {
	hit := p.hit(pt)
	switch hit {
	case HitTrigger:
		p.ctrl.Handle(visibility.Event{Kind: visibility.MouseDown})
	case HitOutside:
		p.ctrl.Handle(visibility.Event{Kind: visibility.RemoteClick})
	}
	return hit
}

// HandleMove tracks the pointer for hover triggers, emitting enter and
// leave events when it crosses into or out of the trigger and content.
func (p *Popover) HandleMove(pt geom.Point) Hit {
	hit := p.hit(pt)
	inside := hit != HitOutside

	p.mu.Lock()
	changed := inside != p.hovering
	p.hovering = inside
	p.mu.Unlock()

	if changed {
		kind := visibility.MouseLeave
		if inside {
			kind = visibility.MouseEnter
		}
		p.ctrl.Handle(visibility.Event{Kind: kind})
	}
	return hit
}

func (p *Popover) hit(pt geom.Point) Hit {
	if r, ok := p.dims.TriggerRect(); ok && r.Contains(pt) {
		return HitTrigger
	}
	if p.IsOpen() {
		if r, ok := p.ContentRect(); ok && r.Contains(pt) {
			return HitContent
		}
	}
	return HitOutside
}

// SetContentDimensions records a new content measurement, releases a
// pending first open and repositions an open popover.
func (p *Popover) SetContentDimensions(d placement.Dimensions) {
	p.mu.Lock()
	p.content = &d
	p.mu.Unlock()
	p.ctrl.ContentMeasured()
	p.ctrl.Reposition()
}

// ContentDimensions returns the last measurement.
func (p *Popover) ContentDimensions() (placement.Dimensions, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.content == nil {
		return placement.Dimensions{}, false
	}
	return *p.content, true
}

// ContentRect returns the content's box in viewport coordinates according
// to the latest placement.
func (p *Popover) ContentRect() (geom.Rect, bool) {
	res, ok := p.resolver.Last()
	if !ok || p.container == nil {
		return geom.Rect{}, false
	}
	d, ok := p.ContentDimensions()
	if !ok {
		return geom.Rect{}, false
	}
	pos := geom.Point{X: res.Style.Position.Left, Y: res.Style.Position.Top}
	at := frame.ToViewport(pos, frame.OffsetOrigin(p.container), frame.ScrollFrame(p.container))
	return geom.RectXYWH(at.X, at.Y, d.Width, d.Height), true
}

// View returns what the host should currently draw.
func (p *Popover) View() View {
	state := p.ctrl.State()
	v := View{ID: p.id, IsOpen: state == visibility.Open, State: state}
	if res, ok := p.resolver.Last(); ok {
		v.Placement = res.Placement
		v.Style = res.Style
		v.HasStyle = true
	}
	return v
}

// Destroy cancels every timer and observer subscription. The popover must
// not be used afterwards.
func (p *Popover) Destroy() {
	p.mu.Lock()
	if p.destroyed {
		p.mu.Unlock()
		return
	}
	p.destroyed = true
	cancels := p.cancels
	p.cancels = nil
	p.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	p.ctrl.Destroy()
	p.logger.Debug("popover destroyed", "id", p.id)
}

// resolve runs one placement pass and renders the result.
func (p *Popover) resolve() {
	in := placement.Input{Requested: p.requested, Container: p.container}
	if r, ok := p.dims.TriggerRect(); ok {
		in.Trigger = &r
	}
	if d, ok := p.ContentDimensions(); ok {
		in.Content = &d
	}
	p.resolver.Resolve(in)
	p.render()
}

func (p *Popover) render() {
	p.mu.Lock()
	destroyed := p.destroyed
	p.mu.Unlock()
	if p.host == nil || destroyed {
		return
	}
	p.host.Render(p.View())
}

// measurer and positioner adapt the popover to the controller's
// collaborator interfaces without exporting those methods.
type measurer struct{ p *Popover }

func (m measurer) Measured() bool {
	_, ok := m.p.ContentDimensions()
	return ok
}

func (m measurer) Measure(done func()) {
	m.p.dims.Measure(func(d placement.Dimensions) {
		m.p.mu.Lock()
		m.p.content = &d
		m.p.mu.Unlock()
		done()
	})
}

type positioner struct{ p *Popover }

func (ps positioner) Reposition() { ps.p.resolve() }
