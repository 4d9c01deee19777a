package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/popover/pkg/cache"
	"github.com/matzehuels/popover/pkg/errors"
	"github.com/matzehuels/popover/pkg/scene"
	"github.com/matzehuels/popover/pkg/visibility"
)

func loadMenu(t *testing.T) *scene.Scene {
	t.Helper()
	s, err := scene.Load("../scene/testdata/menu.toml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return s
}

func quietRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	logger := log.New(io.Discard)
	logger.SetLevel(log.FatalLevel)
	return NewRunner(c, nil, logger)
}

func fileCache(t *testing.T) *cache.FileCache {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"json", false},
		{"png", false},
		{"pdf", false},
		{"SVG", true},
		{"dot", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && errors.GetCode(err) != errors.ErrCodeInvalidFormat {
			t.Errorf("ValidateFormat(%q) code = %q", tt.format, errors.GetCode(err))
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if diff := cmp.Diff([]string{FormatSVG}, o.Formats); diff != "" {
		t.Errorf("Formats mismatch (-want +got):\n%s", diff)
	}
	if o.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", o.Scale, DefaultScale)
	}

	bad := Options{Scale: -1}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("negative scale accepted")
	}

	if o.ArtifactKeyOpts(FormatSVG).Scale != 0 {
		t.Error("scale should only key PNG artifacts")
	}
	if o.ArtifactKeyOpts(FormatPNG).Scale != DefaultScale {
		t.Error("PNG artifact key misses the scale")
	}
}

func TestResolve(t *testing.T) {
	r := quietRunner(t, nil)
	res, err := r.Resolve(context.Background(), loadMenu(t), false)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if res.Placed.Requested != "top" {
		t.Errorf("Requested = %q, want top", res.Placed.Requested)
	}
	// Twenty pixels above the trigger cannot hold the content.
	if !strings.HasPrefix(string(res.Result.Placement), "bottom") {
		t.Errorf("Placement = %q, want a bottom placement", res.Result.Placement)
	}
	if res.Hash == "" {
		t.Error("Hash is empty")
	}
	if res.CacheHit {
		t.Error("CacheHit with a null cache")
	}
}

func TestResolveInvalidScene(t *testing.T) {
	s := loadMenu(t)
	s.Trigger = "missing"
	_, err := quietRunner(t, nil).Resolve(context.Background(), s, false)
	if errors.GetCode(err) != errors.ErrCodeInvalidScene {
		t.Errorf("Resolve() error = %v, want INVALID_SCENE", err)
	}
}

func TestResolveCaches(t *testing.T) {
	ctx := context.Background()
	r := quietRunner(t, fileCache(t))

	first, err := r.Resolve(ctx, loadMenu(t), false)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Resolve(ctx, loadMenu(t), false)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit || !second.CacheHit {
		t.Errorf("CacheHit = %v, %v, want false, true", first.CacheHit, second.CacheHit)
	}
	if diff := cmp.Diff(first.Result, second.Result); diff != "" {
		t.Errorf("cached result differs (-first +second):\n%s", diff)
	}
	if first.Hash != second.Hash {
		t.Error("cached result hashes differ")
	}

	refreshed, err := r.Resolve(ctx, loadMenu(t), true)
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheHit {
		t.Error("refresh read the cache")
	}
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	r := quietRunner(t, fileCache(t))
	res, err := r.Resolve(ctx, loadMenu(t), false)
	if err != nil {
		t.Fatal(err)
	}

	opts := Options{Formats: []string{FormatSVG, FormatJSON}, Caption: "menu"}
	artifacts, hit, err := r.Render(ctx, res, opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if hit {
		t.Error("first render reported a cache hit")
	}
	if !strings.Contains(string(artifacts[FormatSVG]), `id="box-list"`) {
		t.Error("svg missing the container tree")
	}

	var doc struct {
		Scene     string `json:"scene"`
		State     string `json:"state"`
		Placement string `json:"placement"`
	}
	if err := json.Unmarshal(artifacts[FormatJSON], &doc); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if doc.Scene != "menu" || doc.State != "open" || doc.Placement != string(res.Result.Placement) {
		t.Errorf("json artifact = %+v", doc)
	}

	again, hit, err := r.Render(ctx, res, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second render missed the cache")
	}
	if diff := cmp.Diff(artifacts, again); diff != "" {
		t.Errorf("cached artifacts differ (-first +second):\n%s", diff)
	}

	hidden, _, err := r.Render(ctx, res, Options{Formats: []string{FormatSVG}, Hidden: true})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(hidden[FormatSVG]), `id="popover"`) {
		t.Error("hidden render shares the visible artifact")
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	r := quietRunner(t, nil)
	res, err := r.Resolve(context.Background(), loadMenu(t), false)
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = r.Render(context.Background(), res, Options{Formats: []string{"gif"}})
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("Render(gif) error = %v, want INVALID_FORMAT", err)
	}
}

func TestSimulate(t *testing.T) {
	trace, err := quietRunner(t, nil).Simulate(context.Background(), loadMenu(t))
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}

	if trace.Final != visibility.Closed {
		t.Errorf("Final = %v, want closed", trace.Final)
	}
	if trace.Closes != 1 {
		t.Errorf("Closes = %d, want 1", trace.Closes)
	}
	if trace.Elapsed != 300 {
		t.Errorf("Elapsed = %d, want 300", trace.Elapsed)
	}
	if len(trace.Frames) == 0 {
		t.Fatal("no frames recorded")
	}

	// First open waits for the settle delay after the click at 0.
	var opened *Frame
	for i := range trace.Frames {
		if trace.Frames[i].View.IsOpen {
			opened = &trace.Frames[i]
			break
		}
	}
	if opened == nil {
		t.Fatal("popover never opened")
	}
	if opened.At != 100 || opened.Step != -1 {
		t.Errorf("opened at %d by step %d, want 100 by timer", opened.At, opened.Step)
	}
	if first := trace.Frames[0]; first.View.State != visibility.PendingMeasurement || first.Step != 0 {
		t.Errorf("first frame = %+v, want pending measurement from step 0", first)
	}

	scrolled := false
	for _, f := range trace.Frames {
		if f.Step == 1 && f.At == 200 && f.View.IsOpen {
			scrolled = true
		}
	}
	if !scrolled {
		t.Error("scroll step did not reposition the open popover")
	}

	last := trace.Frames[len(trace.Frames)-1]
	if last.View.IsOpen || last.At != 300 || last.Step != 2 {
		t.Errorf("last frame = %+v, want closed at 300 by step 2", last)
	}
}

func TestSimulateControlled(t *testing.T) {
	s := loadMenu(t)
	s.Popover.Controlled = true
	s.Script = []scene.Step{
		{At: 0, Event: scene.StepPointerDown, X: 120, Y: 110},
		{At: 500, Event: scene.StepPointerDown, X: 700, Y: 500},
	}

	trace, err := quietRunner(t, nil).Simulate(context.Background(), s)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	if diff := cmp.Diff([]bool{true, false}, trace.Changes); diff != "" {
		t.Errorf("Changes mismatch (-want +got):\n%s", diff)
	}
	if trace.Final != visibility.Closed {
		t.Errorf("Final = %v, want closed", trace.Final)
	}
}

func TestSimulateHoverDrainsTimers(t *testing.T) {
	s := loadMenu(t)
	s.Popover.Trigger = "hover"
	s.Script = []scene.Step{{At: 0, Event: scene.StepPointerMove, X: 120, Y: 110}}

	trace, err := quietRunner(t, nil).Simulate(context.Background(), s)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	// Enter delay of 50ms, then the 100ms settle delay.
	if trace.Final != visibility.Open || trace.Elapsed != 150 {
		t.Errorf("Final = %v at %d, want open at 150", trace.Final, trace.Elapsed)
	}
}

func TestSimulateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := quietRunner(t, nil).Simulate(ctx, loadMenu(t)); err == nil {
		t.Error("Simulate() with canceled context succeeded")
	}
}
