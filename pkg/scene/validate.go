package scene

import (
	"github.com/matzehuels/popover/pkg/errors"
	"github.com/matzehuels/popover/pkg/frame"
	"github.com/matzehuels/popover/pkg/placement"
	"github.com/matzehuels/popover/pkg/visibility"
)

// Script events beyond the visibility event kinds.
const (
	StepOpen        = "open"
	StepClose       = "close"
	StepToggle      = "toggle"
	StepSync        = "sync"
	StepReposition  = "reposition"
	StepPointerDown = "pointerDown"
	StepPointerMove = "pointerMove"
	StepScroll      = "scroll"
	StepMoveNode    = "moveNode"
)

// Validate checks names, geometry, configuration and script. Errors carry
// errors.ErrCodeInvalidScene unless a more specific code applies.
func (s *Scene) Validate() error {
	if err := errors.ValidateName(s.Name); err != nil {
		return err
	}
	if s.Root.Rect().Empty() {
		return errors.New(errors.ErrCodeInvalidScene, "root %q must have a positive size", s.Root.Name)
	}

	names := map[string]bool{}
	var check func(n Node) error
	check = func(n Node) error {
		if err := errors.ValidateName(n.Name); err != nil {
			return err
		}
		if names[n.Name] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate node name %q", n.Name)
		}
		names[n.Name] = true
		if !frame.Position(n.Position).Valid() {
			return errors.New(errors.ErrCodeInvalidScene, "node %q: unknown position %q", n.Name, n.Position)
		}
		if n.Width < 0 || n.Height < 0 || n.ScrollWidth < 0 || n.ScrollHeight < 0 {
			return errors.New(errors.ErrCodeInvalidScene, "node %q: sizes must not be negative", n.Name)
		}
		for _, c := range n.Children {
			if err := check(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := check(s.Root); err != nil {
		return err
	}

	if s.Container != "" && !names[s.Container] {
		return errors.New(errors.ErrCodeInvalidScene, "container %q is not a node", s.Container)
	}
	if s.Trigger == "" {
		return errors.New(errors.ErrCodeInvalidScene, "trigger node is required")
	}
	if !names[s.Trigger] {
		return errors.New(errors.ErrCodeInvalidScene, "trigger %q is not a node", s.Trigger)
	}
	if s.Content.Width < 0 || s.Content.Height < 0 {
		return errors.New(errors.ErrCodeInvalidScene, "content size must not be negative")
	}

	if s.Popover.Placement != "" {
		if _, err := placement.Parse(s.Popover.Placement); err != nil {
			return err
		}
	}
	if s.Popover.Trigger != "" {
		if _, err := visibility.ParseTrigger(s.Popover.Trigger); err != nil {
			return err
		}
	}
	if err := s.Options().Validate(); err != nil {
		return err
	}
	for _, d := range []*int{s.Popover.EnterDelay, s.Popover.LeaveDelay, s.Popover.SettleDelay} {
		if d != nil && *d < 0 {
			return errors.New(errors.ErrCodeInvalidOptions, "delays must not be negative")
		}
	}

	return s.validateScript(names)
}

func (s *Scene) validateScript(names map[string]bool) error {
	last := 0
	for i, st := range s.Script {
		if st.At < last {
			return errors.New(errors.ErrCodeInvalidScene, "script step %d: at=%d is before the previous step", i, st.At)
		}
		last = st.At

		switch st.Event {
		case StepOpen, StepClose, StepToggle, StepSync, StepReposition, StepPointerDown, StepPointerMove:
		case StepScroll, StepMoveNode:
			if !names[st.Target] {
				return errors.New(errors.ErrCodeInvalidScene, "script step %d: %s target %q is not a node", i, st.Event, st.Target)
			}
		default:
			k, err := visibility.ParseEventKind(st.Event)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidScene, err, "script step %d", i)
			}
			if k == visibility.KeyDown && st.Key == "" {
				return errors.New(errors.ErrCodeInvalidScene, "script step %d: keyDown needs a key", i)
			}
		}
	}
	return nil
}
