package visibility

import (
	"github.com/matzehuels/popover/pkg/errors"
)

// State is the visibility of a popover.
type State int

// States.
const (
	Closed State = iota
	PendingMeasurement
	Open
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case PendingMeasurement:
		return "pendingMeasurement"
	case Open:
		return "open"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(b []byte) error {
	v, err := ParseState(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseState parses a state name as printed by String.
func ParseState(name string) (State, error) {
	for _, s := range States() {
		if s.String() == name {
			return s, nil
		}
	}
	return Closed, errors.New(errors.ErrCodeInvalidInput,
		"unknown state %q (valid: closed, pendingMeasurement, open)", name)
}

// Trigger is the kind of interaction that shows the popover.
type Trigger string

// Trigger kinds.
const (
	Click       Trigger = "click"
	Hover       Trigger = "hover"
	Focus       Trigger = "focus"
	ContextMenu Trigger = "contextMenu"
)

// Triggers returns every trigger kind.
func Triggers() []Trigger { return []Trigger{Click, Hover, Focus, ContextMenu} }

// ParseTrigger validates s as a trigger kind.
func ParseTrigger(s string) (Trigger, error) {
	for _, t := range Triggers() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidTrigger,
		"unknown trigger %q (valid: click, hover, focus, contextMenu)", s)
}

// dismissesOnRemoteClick reports the remote-click default for t.
func (t Trigger) dismissesOnRemoteClick() bool {
	return t == Click || t == ContextMenu
}

// EventKind identifies a trigger or dismissal event.
type EventKind string

// Event kinds.
const (
	MouseDown    EventKind = "mouseDown"
	ContextClick EventKind = "contextMenu"
	MouseEnter   EventKind = "mouseEnter"
	MouseLeave   EventKind = "mouseLeave"
	FocusIn      EventKind = "focus"
	FocusOut     EventKind = "blur"
	KeyDown      EventKind = "keyDown"
	RemoteClick  EventKind = "remoteClick"
)

// Keys recognized in KeyDown events.
const (
	KeyEscape = "Escape"
	KeyEnter  = "Enter"
)

// Event is one input delivered to Controller.Handle. Key is only read for
// KeyDown.
type Event struct {
	Kind EventKind `json:"kind" yaml:"kind" toml:"kind"`
	Key  string    `json:"key,omitempty" yaml:"key,omitempty" toml:"key,omitempty"`
}

// ParseEventKind validates s as an event kind.
func ParseEventKind(s string) (EventKind, error) {
	for _, k := range []EventKind{MouseDown, ContextClick, MouseEnter, MouseLeave, FocusIn, FocusOut, KeyDown, RemoteClick} {
		if string(k) == s {
			return k, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown event %q", s)
}
