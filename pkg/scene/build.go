package scene

import (
	"time"

	"github.com/matzehuels/popover/pkg/errors"
	"github.com/matzehuels/popover/pkg/frame"
	"github.com/matzehuels/popover/pkg/geom"
	"github.com/matzehuels/popover/pkg/placement"
	"github.com/matzehuels/popover/pkg/popover"
)

// Built is a scene turned into live objects.
type Built struct {
	Scene     *Scene
	Root      *frame.Box
	Container *frame.Box
	Trigger   *frame.Box
	Content   placement.Dimensions
	Options   placement.Options
	// Config is ready for popover.New once Clock and Logger are filled in.
	Config popover.Config
}

// Options returns the placement options the scene describes.
func (s *Scene) Options() placement.Options {
	p := s.Popover
	o := placement.DefaultOptions()
	if p.WithArrow != nil {
		o.WithArrow = *p.WithArrow
	}
	if p.ArrowSize != nil {
		o.ArrowSize = *p.ArrowSize
	}
	if p.TargetGap != nil {
		o.TargetGap = *p.TargetGap
	}
	if p.ContainerGap != nil {
		o.ContainerGap = *p.ContainerGap
	}
	if p.AvoidCollisions != nil {
		o.AvoidCollisions = *p.AvoidCollisions
	}
	if p.Animation != nil {
		o.Animation = *p.Animation
	}
	o.Offset = p.Offset
	o.AvoidOverflowBounds = p.AvoidOverflowBounds
	o.MaxWidth = p.MaxWidth
	o.MaxHeight = p.MaxHeight
	o.FitMaxWidth = p.FitMaxWidth
	o.FitMaxHeight = p.FitMaxHeight
	return o
}

// Requested returns the requested placement, defaulting to top.
func (s *Scene) Requested() placement.Label {
	if s.Popover.Placement == "" {
		return popover.DefaultPlacement
	}
	return placement.Label(s.Popover.Placement)
}

// Build creates the container tree, applies the authored scroll offsets and
// assembles the popover configuration. Every call returns fresh objects.
func (s *Scene) Build() (*Built, error) {
	root := build(s.Root, nil)

	// Scroll after the whole tree exists so descendants move with it.
	var scrollErr error
	var scroll func(n Node)
	scroll = func(n Node) {
		if n.Scroll != (geom.Point{}) {
			b, _ := root.Find(n.Name)
			applied := b.ScrollBy(n.Scroll.X, n.Scroll.Y)
			if applied != n.Scroll && scrollErr == nil {
				scrollErr = errors.New(errors.ErrCodeInvalidScene,
					"node %q: scroll %v exceeds its scrollable range", n.Name, n.Scroll)
			}
		}
		for _, c := range n.Children {
			scroll(c)
		}
	}
	scroll(s.Root)
	if scrollErr != nil {
		return nil, scrollErr
	}

	container := root
	if s.Container != "" {
		var ok bool
		if container, ok = root.Find(s.Container); !ok {
			return nil, errors.New(errors.ErrCodeInvalidScene, "container %q is not a node", s.Container)
		}
	}
	trigger, ok := root.Find(s.Trigger)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidScene, "trigger %q is not a node", s.Trigger)
	}

	opts := s.Options()
	p := s.Popover
	cfg := popover.Config{
		ID:                 s.Name,
		Placement:          string(s.Requested()),
		Trigger:            p.Trigger,
		Options:            &opts,
		EnterDelay:         millis(p.EnterDelay),
		LeaveDelay:         millis(p.LeaveDelay),
		SettleDelay:        millis(p.SettleDelay),
		CloseOnEscape:      p.CloseOnEscape,
		CloseOnEnter:       p.CloseOnEnter,
		CloseOnRemoteClick: p.CloseOnRemoteClick,
		Controlled:         p.Controlled,
		Open:               p.Open,
		Container:          container,
		DefaultContainer:   root,
	}

	return &Built{
		Scene:     s,
		Root:      root,
		Container: container,
		Trigger:   trigger,
		Content:   placement.Dimensions{Width: s.Content.Width, Height: s.Content.Height},
		Options:   opts,
		Config:    cfg,
	}, nil
}

// Input returns the resolver input for the scene's current geometry.
func (b *Built) Input() placement.Input {
	trigger := b.Trigger.Rect
	content := b.Content
	return placement.Input{
		Trigger:   &trigger,
		Content:   &content,
		Requested: b.Scene.Requested(),
		Container: b.Container,
	}
}

// TriggerRect implements popover.DimensionProvider.
func (b *Built) TriggerRect() (geom.Rect, bool) { return b.Trigger.Rect, true }

// Measure implements popover.DimensionProvider. Unmeasured scenes never
// complete.
func (b *Built) Measure(done func(placement.Dimensions)) {
	if b.Scene.Content.Unmeasured {
		return
	}
	done(b.Content)
}

func build(n Node, parent *frame.Box) *frame.Box {
	var b *frame.Box
	if parent == nil {
		b = frame.NewRoot(n.Name, n.Rect())
		b.Position = frame.Position(n.Position)
	} else {
		b = parent.Append(frame.NewBox(n.Name, n.Rect(), frame.Position(n.Position)))
	}
	b.ScrollSize = geom.Size{Width: n.ScrollWidth, Height: n.ScrollHeight}
	for _, c := range n.Children {
		build(c, b)
	}
	return b
}

func millis(ms *int) *time.Duration {
	if ms == nil {
		return nil
	}
	d := time.Duration(*ms) * time.Millisecond
	return &d
}

var _ popover.DimensionProvider = (*Built)(nil)
