package placement_test

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/popover/pkg/errors"
	"github.com/matzehuels/popover/pkg/frame"
	"github.com/matzehuels/popover/pkg/geom"
	"github.com/matzehuels/popover/pkg/observability"
	"github.com/matzehuels/popover/pkg/placement"
	"github.com/matzehuels/popover/pkg/placement/profile"
)

func newResolver(t *testing.T, opts placement.Options) *placement.Resolver {
	t.Helper()
	r, err := placement.NewResolver(profile.Default(), opts, nil)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	return r
}

func rectPtr(r geom.Rect) *geom.Rect { return &r }

func dims(w, h float64) *placement.Dimensions {
	return &placement.Dimensions{Width: w, Height: h}
}

func TestResolve(t *testing.T) {
	body := frame.NewRoot("body", geom.RectXYWH(0, 0, 800, 600))
	r := newResolver(t, placement.DefaultOptions())

	got, ok := r.Resolve(placement.Input{
		Trigger:   rectPtr(geom.RectXYWH(350, 300, 100, 20)),
		Content:   dims(100, 50),
		Requested: placement.TopCenter,
		Container: body,
	})
	if !ok {
		t.Fatal("Resolve() = false, want true")
	}

	want := placement.Result{
		Placement: placement.TopCenter,
		Style: placement.Style{
			Position:  placement.Position{Top: 238, Left: 350},
			Arrow:     &placement.Arrow{Side: placement.Bottom, Offset: 50},
			MaxWidth:  784,
			MaxHeight: 280,
			Initial:   placement.Keyframe{Opacity: 0, Y: 8},
			Animate:   placement.Keyframe{Opacity: 1},
			Exit:      placement.Keyframe{Opacity: 0, Y: 8},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}

	last, ok := r.Last()
	if !ok {
		t.Fatal("Last() = false after a successful pass")
	}
	if diff := cmp.Diff(got, last); diff != "" {
		t.Errorf("Last() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveIdempotent(t *testing.T) {
	body := frame.NewRoot("body", geom.RectXYWH(0, 0, 800, 600))
	r := newResolver(t, placement.DefaultOptions())
	in := placement.Input{
		Trigger:   rectPtr(geom.RectXYWH(20, 10, 40, 20)),
		Content:   dims(160, 90),
		Requested: placement.TopCenter,
		Container: body,
	}

	first, _ := r.Resolve(in)
	for i := 0; i < 3; i++ {
		again, ok := r.Resolve(in)
		if !ok {
			t.Fatalf("pass %d: Resolve() = false", i)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("pass %d: result changed (-first +again):\n%s", i, diff)
		}
	}
}

func TestResolveFlipsTopToBottom(t *testing.T) {
	body := frame.NewRoot("body", geom.RectXYWH(0, 0, 800, 600))
	r := newResolver(t, placement.DefaultOptions())

	got, ok := r.Resolve(placement.Input{
		Trigger:   rectPtr(geom.RectXYWH(380, 5, 40, 20)),
		Content:   dims(100, 50),
		Requested: placement.TopCenter,
		Container: body,
	})
	if !ok {
		t.Fatal("Resolve() = false, want true")
	}
	if got.Placement != placement.BottomCenter {
		t.Errorf("Placement = %q, want %q", got.Placement, placement.BottomCenter)
	}
	if want := 25.0 + placement.DefaultOptions().Gap(); got.Style.Position.Top != want {
		t.Errorf("Position.Top = %v, want %v", got.Style.Position.Top, want)
	}
}

func TestResolveWithoutCollisionAvoidance(t *testing.T) {
	body := frame.NewRoot("body", geom.RectXYWH(0, 0, 800, 600))
	opts := placement.DefaultOptions()
	opts.AvoidCollisions = false
	r := newResolver(t, opts)

	got, _ := r.Resolve(placement.Input{
		Trigger:   rectPtr(geom.RectXYWH(380, 5, 40, 20)),
		Content:   dims(100, 50),
		Requested: placement.TopCenter,
		Container: body,
	})
	if got.Placement != placement.TopCenter {
		t.Errorf("Placement = %q, want %q", got.Placement, placement.TopCenter)
	}
}

func TestResolveNoop(t *testing.T) {
	body := frame.NewRoot("body", geom.RectXYWH(0, 0, 800, 600))
	flat := frame.NewRoot("flat", geom.RectXYWH(0, 0, 800, 0))
	trigger := rectPtr(geom.RectXYWH(350, 300, 100, 20))

	tests := []struct {
		name string
		in   placement.Input
	}{
		{"missing trigger", placement.Input{Content: dims(10, 10), Requested: placement.TopCenter, Container: body}},
		{"missing content", placement.Input{Trigger: trigger, Requested: placement.TopCenter, Container: body}},
		{"missing container", placement.Input{Trigger: trigger, Content: dims(10, 10), Requested: placement.TopCenter}},
		{"zero-sized container", placement.Input{Trigger: trigger, Content: dims(10, 10), Requested: placement.TopCenter, Container: flat}},
		{"invalid label", placement.Input{Trigger: trigger, Content: dims(10, 10), Requested: "middle", Container: body}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newResolver(t, placement.DefaultOptions())
			if _, ok := r.Resolve(tt.in); ok {
				t.Error("Resolve() = true, want false")
			}
			if _, ok := r.Last(); ok {
				t.Error("Last() should be empty after a skipped pass")
			}
		})
	}
}

func TestResolveNoopKeepsPreviousResult(t *testing.T) {
	body := frame.NewRoot("body", geom.RectXYWH(0, 0, 800, 600))
	r := newResolver(t, placement.DefaultOptions())

	first, ok := r.Resolve(placement.Input{
		Trigger:   rectPtr(geom.RectXYWH(350, 300, 100, 20)),
		Content:   dims(100, 50),
		Requested: placement.BottomCenter,
		Container: body,
	})
	if !ok {
		t.Fatal("first Resolve() = false")
	}

	got, ok := r.Resolve(placement.Input{Content: dims(100, 50), Requested: placement.BottomCenter, Container: body})
	if ok {
		t.Fatal("Resolve() without trigger = true, want false")
	}
	if diff := cmp.Diff(first, got); diff != "" {
		t.Errorf("skipped pass should return previous result (-want +got):\n%s", diff)
	}
	last, _ := r.Last()
	if diff := cmp.Diff(first, last); diff != "" {
		t.Errorf("Last() changed by skipped pass (-want +got):\n%s", diff)
	}
}

func TestResolveDegenerateContent(t *testing.T) {
	body := frame.NewRoot("body", geom.RectXYWH(0, 0, 800, 600))
	r := newResolver(t, placement.DefaultOptions())

	for _, l := range placement.Labels() {
		if _, ok := r.Resolve(placement.Input{
			Trigger:   rectPtr(geom.RectXYWH(350, 300, 100, 20)),
			Content:   dims(0, 0),
			Requested: l,
			Container: body,
		}); !ok {
			t.Errorf("Resolve(%q) with 0x0 content = false, want true", l)
		}
	}
}

func TestResolveScrollInvariance(t *testing.T) {
	tests := []struct {
		name  string
		build func() (container, trigger *frame.Box)
	}{
		{
			name: "positioned scroller",
			build: func() (*frame.Box, *frame.Box) {
				body := frame.NewRoot("body", geom.RectXYWH(0, 0, 800, 600))
				scroller := body.Append(frame.NewBox("scroller", geom.RectXYWH(100, 100, 400, 300), frame.Relative))
				scroller.ScrollSize = geom.Size{Width: 400, Height: 1000}
				trigger := scroller.Append(frame.NewBox("trigger", geom.RectXYWH(150, 200, 100, 20), frame.Static))
				return scroller, trigger
			},
		},
		{
			name: "static scroller inside positioned page",
			build: func() (*frame.Box, *frame.Box) {
				body := frame.NewRoot("body", geom.RectXYWH(0, 0, 800, 600))
				page := body.Append(frame.NewBox("page", geom.RectXYWH(50, 50, 700, 500), frame.Relative))
				list := page.Append(frame.NewBox("list", geom.RectXYWH(100, 100, 400, 300), frame.Static))
				list.ScrollSize = geom.Size{Width: 400, Height: 1000}
				trigger := list.Append(frame.NewBox("trigger", geom.RectXYWH(150, 200, 100, 20), frame.Static))
				return list, trigger
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			container, trigger := tt.build()
			r := newResolver(t, placement.DefaultOptions())
			resolve := func() (placement.Result, geom.Point) {
				res, ok := r.Resolve(placement.Input{
					Trigger:   rectPtr(trigger.Rect),
					Content:   dims(100, 50),
					Requested: placement.BottomCenter,
					Container: container,
				})
				if !ok {
					t.Fatal("Resolve() = false")
				}
				p := geom.Point{X: res.Style.Position.Left, Y: res.Style.Position.Top}
				onScreen := frame.ToViewport(p, frame.OffsetOrigin(container), frame.ScrollFrame(container))
				return res, onScreen.Sub(trigger.Rect.Origin())
			}

			before, relBefore := resolve()
			if applied := container.ScrollBy(0, 50); applied.Y != 50 {
				t.Fatalf("ScrollBy() applied %v, want 50", applied.Y)
			}
			after, relAfter := resolve()

			if diff := cmp.Diff(before, after); diff != "" {
				t.Errorf("style changed after scrolling (-before +after):\n%s", diff)
			}
			if relBefore != relAfter {
				t.Errorf("content offset from trigger = %v after scroll, want %v", relAfter, relBefore)
			}
		})
	}
}

func TestNewResolverValidation(t *testing.T) {
	bases := placement.Profiles{}
	for _, l := range placement.BaseLabels() {
		bases[l] = profile.Build(l)
	}
	noCollisions := placement.DefaultOptions()
	noCollisions.AvoidCollisions = false
	negative := placement.DefaultOptions()
	negative.TargetGap = -1

	tests := []struct {
		name    string
		table   placement.ProfileTable
		opts    placement.Options
		wantErr bool
	}{
		{"default table", profile.Default(), placement.DefaultOptions(), false},
		{"nil table", nil, placement.DefaultOptions(), true},
		{"base table with collisions", bases, placement.DefaultOptions(), true},
		{"base table without collisions", bases, noCollisions, false},
		{"empty table", placement.Profiles{}, noCollisions, true},
		{"negative gap", profile.Default(), negative, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := placement.NewResolver(tt.table, tt.opts, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewResolver() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidOptions) {
				t.Errorf("NewResolver() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidOptions)
			}
		})
	}
}

type countingHooks struct {
	observability.NoopResolveHooks
	mu       sync.Mutex
	resolved []string
	skipped  []string
}

func (h *countingHooks) OnResolve(requested, placement string, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resolved = append(h.resolved, requested+"->"+placement)
}

func (h *countingHooks) OnResolveSkipped(_, reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.skipped = append(h.skipped, reason)
}

func TestResolveReportsHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetResolveHooks(hooks)
	t.Cleanup(observability.Reset)

	body := frame.NewRoot("body", geom.RectXYWH(0, 0, 800, 600))
	r := newResolver(t, placement.DefaultOptions())
	r.Resolve(placement.Input{
		Trigger:   rectPtr(geom.RectXYWH(380, 5, 40, 20)),
		Content:   dims(100, 50),
		Requested: placement.TopCenter,
		Container: body,
	})
	r.Resolve(placement.Input{Requested: placement.TopCenter, Container: body})

	if diff := cmp.Diff([]string{"top->bottom"}, hooks.resolved); diff != "" {
		t.Errorf("OnResolve calls mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"trigger unavailable"}, hooks.skipped); diff != "" {
		t.Errorf("OnResolveSkipped calls mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveConcurrent(t *testing.T) {
	body := frame.NewRoot("body", geom.RectXYWH(0, 0, 800, 600))
	r := newResolver(t, placement.DefaultOptions())
	in := placement.Input{
		Trigger:   rectPtr(geom.RectXYWH(350, 300, 100, 20)),
		Content:   dims(100, 50),
		Requested: placement.RightCenter,
		Container: body,
	}
	want, _ := r.Resolve(in)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Resolve(in)
		}()
	}
	wg.Wait()

	got, _ := r.Last()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Last() mismatch (-want +got):\n%s", diff)
	}
}
