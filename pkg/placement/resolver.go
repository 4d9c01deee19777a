package placement

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/popover/pkg/errors"
	"github.com/matzehuels/popover/pkg/frame"
	"github.com/matzehuels/popover/pkg/geom"
	"github.com/matzehuels/popover/pkg/observability"
)

// Input is the geometry for one resolution pass. Trigger and Content are
// pointers because either may not be available yet.
type Input struct {
	Trigger   *geom.Rect
	Content   *Dimensions
	Requested Label
	Container frame.Node
}

// Result is a resolved placement and the style the profile produced for it.
type Result struct {
	Placement Label `json:"placement"`
	Style     Style `json:"style"`
}

// Resolver runs placement passes and keeps the most recent result.
//
// A Resolver holds no per-pass state besides the published result, so
// passes are idempotent and may be repeated freely. Resolve is safe for
// concurrent use; results are published atomically.
type Resolver struct {
	profiles ProfileTable
	opts     Options
	logger   *log.Logger

	last atomic.Pointer[Result]
}

// NewResolver validates opts and checks that profiles covers every label a
// pass can produce: all twelve with collision avoidance, otherwise at least
// the four base labels.
// A nil logger falls back to log.Default().
func NewResolver(profiles ProfileTable, opts Options, logger *log.Logger) (*Resolver, error) {
	if profiles == nil {
		return nil, errors.New(errors.ErrCodeInvalidOptions, "profile table is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	want := BaseLabels()
	if opts.AvoidCollisions {
		want = allLabels
	}
	if gaps := missing(profiles, want); len(gaps) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidOptions,
			"profile table does not cover %s", joinLabels(gaps))
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{profiles: profiles, opts: opts, logger: logger}, nil
}

// Options returns the resolver's options.
func (r *Resolver) Options() Options { return r.opts }

// Supports reports whether l can be requested from this resolver.
func (r *Resolver) Supports(l Label) bool {
	if !l.Valid() {
		return false
	}
	_, ok := r.profiles.Lookup(l)
	return ok
}

// Last returns the most recently published result.
func (r *Resolver) Last() (Result, bool) {
	if p := r.last.Load(); p != nil {
		return *p, true
	}
	return Result{}, false
}

// Resolve runs one pass. When the pass cannot run (missing trigger, content
// or container, or a zero-sized container) it returns the previous result
// and false; the previous result is never cleared.
func (r *Resolver) Resolve(in Input) (Result, bool) {
	start := time.Now()
	hooks := observability.Resolve()

	if reason := unresolvable(in); reason != "" {
		r.logger.Debug("placement pass skipped", "reason", reason, "requested", in.Requested)
		hooks.OnResolveSkipped(string(in.Requested), reason)
		prev, _ := r.Last()
		return prev, false
	}

	trigger := *in.Trigger
	content := *in.Content

	origin := frame.OffsetOrigin(in.Container)
	scroll := frame.ScrollFrame(in.Container)
	originRect := origin.Bounds()

	label := in.Requested
	if r.opts.AvoidCollisions {
		c := NewConstraints(in.Container.Bounds(), content.Size(), r.opts)
		label = Avoid(label, trigger, c)
	}

	fn, ok := r.profiles.Lookup(label)
	if !ok {
		r.logger.Debug("placement pass skipped", "reason", "no profile", "placement", label)
		hooks.OnResolveSkipped(string(in.Requested), "no profile for "+string(label))
		prev, _ := r.Last()
		return prev, false
	}

	fitW, fitH := r.opts.fitFlags()
	style := fn(ProfileInput{
		Rect:            ScrollAdjust(trigger, originRect, scroll.ScrollOffset()),
		Content:         content,
		Options:         r.opts,
		ContainerWidth:  originRect.Width,
		ContainerHeight: originRect.Height,
		FitMaxWidth:     fitW,
		FitMaxHeight:    fitH,
	})

	res := &Result{Placement: label, Style: style}
	r.last.Store(res)

	elapsed := time.Since(start)
	r.logger.Debug("placement resolved",
		"requested", in.Requested,
		"placement", label,
		"top", style.Position.Top,
		"left", style.Position.Left,
		"duration", elapsed)
	hooks.OnResolve(string(in.Requested), string(label), elapsed)

	return *res, true
}

// ScrollAdjust expresses trigger relative to the offset origin's content box,
// compensating for the scroll frame's current offsets, so offsets stay valid
// while the frame scrolls.
func ScrollAdjust(trigger, origin geom.Rect, scroll geom.Point) geom.Rect {
	dy := origin.Top - scroll.Y
	dx := origin.Left - scroll.X
	return geom.Rect{
		Top:    trigger.Top - dy,
		Bottom: trigger.Bottom - dy,
		Left:   trigger.Left - dx,
		Right:  trigger.Right - dx,
		Width:  trigger.Width,
		Height: trigger.Height,
	}
}

func unresolvable(in Input) string {
	switch {
	case in.Trigger == nil:
		return "trigger unavailable"
	case in.Content == nil:
		return "content not measured"
	case in.Container == nil:
		return "no container"
	case !frame.Usable(in.Container):
		return "container has no size"
	case !in.Requested.Valid():
		return "invalid placement"
	}
	return ""
}
