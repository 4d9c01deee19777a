package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/popover/pkg/clock"
	"github.com/matzehuels/popover/pkg/errors"
	"github.com/matzehuels/popover/pkg/geom"
	"github.com/matzehuels/popover/pkg/observability"
	"github.com/matzehuels/popover/pkg/popover"
	"github.com/matzehuels/popover/pkg/scene"
	"github.com/matzehuels/popover/pkg/visibility"
)

// simulationEpoch is the virtual start time of every simulation, so that
// traces are reproducible.
var simulationEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// maxDrain bounds the timers fired after the last script step.
const maxDrain = 64

// Frame is one host render observed during a simulation.
type Frame struct {
	// At is the virtual time in milliseconds since the start.
	At int64 `json:"at"`
	// Step is the index of the script step being applied, or -1 for
	// timer-driven renders.
	Step int          `json:"step"`
	View popover.View `json:"view"`
}

// Trace is the outcome of a scripted simulation.
type Trace struct {
	Scene  string  `json:"scene"`
	Frames []Frame `json:"frames"`
	// Changes records the open requests a controlled popover reported.
	Changes []bool           `json:"changes,omitempty"`
	Closes  int              `json:"closes"`
	Final   visibility.State `json:"final"`
	// Elapsed is the virtual duration in milliseconds.
	Elapsed int64 `json:"elapsed"`
}

// Simulate plays the scene's script against a popover driven by a virtual
// clock. Controlled scenes act as an owner that accepts every request.
func (r *Runner) Simulate(ctx context.Context, s *scene.Scene) (trace *Trace, err error) {
	start := time.Now()
	defer func() {
		observability.Pipeline().OnSimulateComplete(ctx, s.Name, len(s.Script), time.Since(start), err)
	}()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	b, err := s.Build()
	if err != nil {
		return nil, err
	}

	clk := clock.NewVirtual(simulationEpoch)
	trace = &Trace{Scene: s.Name}
	step := -1
	var requests []bool

	cfg := b.Config
	cfg.Clock = clk
	cfg.Logger = r.Logger
	cfg.OnChange = func(open bool) {
		trace.Changes = append(trace.Changes, open)
		requests = append(requests, open)
	}
	cfg.OnClose = func() { trace.Closes++ }

	host := popover.HostFunc(func(v popover.View) {
		trace.Frames = append(trace.Frames, Frame{At: clk.Elapsed(simulationEpoch).Milliseconds(), Step: step, View: v})
	})
	p, err := popover.New(cfg, b, host)
	if err != nil {
		return nil, err
	}
	defer p.Destroy()

	// The owner applies requests after the step that raised them.
	settle := func() {
		for len(requests) > 0 {
			open := requests[0]
			requests = requests[1:]
			p.SetOpen(open)
		}
	}

	for i, st := range s.Script {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		at := time.Duration(st.At) * time.Millisecond
		step = -1
		clk.Advance(at - clk.Elapsed(simulationEpoch))
		settle()

		step = i
		if err := apply(p, b, st); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "script step %d", i)
		}
		settle()
	}

	step = -1
	for range maxDrain {
		next, ok := clk.Next()
		if !ok {
			break
		}
		clk.Advance(next)
		settle()
	}

	trace.Final = p.State()
	trace.Elapsed = clk.Elapsed(simulationEpoch).Milliseconds()
	r.Logger.Info("simulated script",
		"scene", s.Name,
		"steps", len(s.Script),
		"frames", len(trace.Frames),
		"final", trace.Final)
	return trace, nil
}

func apply(p *popover.Popover, b *scene.Built, st scene.Step) error {
	pt := geom.Point{X: st.X, Y: st.Y}
	switch st.Event {
	case scene.StepOpen:
		p.Open()
	case scene.StepClose:
		p.Close()
	case scene.StepToggle:
		p.Toggle()
	case scene.StepSync:
		p.SetOpen(st.Value)
	case scene.StepReposition:
		p.Reposition()
	case scene.StepPointerDown:
		p.HandlePointer(pt)
	case scene.StepPointerMove:
		p.HandleMove(pt)
	case scene.StepScroll, scene.StepMoveNode:
		box, ok := b.Root.Find(st.Target)
		if !ok {
			return errors.New(errors.ErrCodeNotFound, "node %q", st.Target)
		}
		if st.Event == scene.StepScroll {
			box.ScrollBy(st.X, st.Y)
		} else {
			box.Move(st.X, st.Y)
		}
		p.Reposition()
	default:
		kind, err := visibility.ParseEventKind(st.Event)
		if err != nil {
			return err
		}
		p.Handle(visibility.Event{Kind: kind, Key: st.Key})
	}
	return nil
}

func stateOf(opts Options) visibility.State {
	if opts.Hidden {
		return visibility.Closed
	}
	return visibility.Open
}
