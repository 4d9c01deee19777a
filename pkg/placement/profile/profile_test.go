package profile

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/popover/pkg/geom"
	"github.com/matzehuels/popover/pkg/placement"
)

func input(opts placement.Options) placement.ProfileInput {
	return placement.ProfileInput{
		Rect:            geom.RectXYWH(300, 200, 100, 40),
		Content:         placement.Dimensions{Width: 120, Height: 60},
		Options:         opts,
		ContainerWidth:  800,
		ContainerHeight: 600,
	}
}

func plain() placement.Options {
	return placement.Options{TargetGap: 4, ContainerGap: 8}
}

func TestDefaultCoversEveryLabel(t *testing.T) {
	table := Default()
	for _, l := range placement.Labels() {
		if _, ok := table.Lookup(l); !ok {
			t.Errorf("Default() missing %q", l)
		}
	}
}

func TestPosition(t *testing.T) {
	tests := []struct {
		label placement.Label
		want  placement.Position
	}{
		{placement.TopCenter, placement.Position{Top: 136, Left: 290}},
		{placement.TopLeft, placement.Position{Top: 136, Left: 300}},
		{placement.TopRight, placement.Position{Top: 136, Left: 280}},
		{placement.BottomCenter, placement.Position{Top: 244, Left: 290}},
		{placement.BottomLeft, placement.Position{Top: 244, Left: 300}},
		{placement.BottomRight, placement.Position{Top: 244, Left: 280}},
		{placement.LeftCenter, placement.Position{Top: 190, Left: 176}},
		{placement.LeftTop, placement.Position{Top: 200, Left: 176}},
		{placement.LeftBottom, placement.Position{Top: 180, Left: 176}},
		{placement.RightCenter, placement.Position{Top: 190, Left: 404}},
		{placement.RightTop, placement.Position{Top: 200, Left: 404}},
		{placement.RightBottom, placement.Position{Top: 180, Left: 404}},
	}

	for _, tt := range tests {
		t.Run(string(tt.label), func(t *testing.T) {
			got := Build(tt.label)(input(plain())).Position
			if got != tt.want {
				t.Errorf("Position = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOffsetAndArrowGap(t *testing.T) {
	o := plain()
	o.WithArrow = true
	o.ArrowSize = 6
	o.Offset = geom.Point{X: 5, Y: -3}

	got := Build(placement.BottomCenter)(input(o))
	want := placement.Position{Top: 240 + 4 + 6 - 3, Left: 290 + 5}
	if got.Position != want {
		t.Errorf("Position = %+v, want %+v", got.Position, want)
	}
	if got.Arrow == nil {
		t.Fatal("Arrow = nil with WithArrow set")
	}
	if got.Arrow.Side != placement.Top {
		t.Errorf("Arrow.Side = %q, want %q", got.Arrow.Side, placement.Top)
	}
	// Trigger center 350 minus content left 295.
	if got.Arrow.Offset != 55 {
		t.Errorf("Arrow.Offset = %v, want 55", got.Arrow.Offset)
	}
}

func TestArrowClampedToContent(t *testing.T) {
	o := plain()
	o.WithArrow = true
	o.ArrowSize = 8

	// Content aligned left on a trigger much wider than the content: the
	// trigger center falls past the content's right end.
	in := input(o)
	in.Rect = geom.RectXYWH(300, 200, 400, 40)
	got := Build(placement.TopLeft)(in)
	if want := 120.0 - 8; got.Arrow.Offset != want {
		t.Errorf("Arrow.Offset = %v, want %v", got.Arrow.Offset, want)
	}
}

func TestNoArrowWhenDisabled(t *testing.T) {
	if got := Build(placement.TopCenter)(input(plain())); got.Arrow != nil {
		t.Errorf("Arrow = %+v, want nil", got.Arrow)
	}
}

func TestAvoidOverflowBounds(t *testing.T) {
	o := plain()
	o.AvoidOverflowBounds = true

	in := input(o)
	in.Rect = geom.RectXYWH(-40, 200, 60, 40)
	if got := Build(placement.BottomCenter)(in).Position.Left; got != 8 {
		t.Errorf("Left = %v, want 8 (clamped to container gap)", got)
	}

	in.Rect = geom.RectXYWH(790, 200, 60, 40)
	if got := Build(placement.BottomCenter)(in).Position.Left; got != 800-120-8 {
		t.Errorf("Left = %v, want %v", got, 800-120-8)
	}

	in.Rect = geom.RectXYWH(300, 580, 60, 40)
	if got := Build(placement.RightCenter)(in).Position.Top; got != 600-60-8 {
		t.Errorf("Top = %v, want %v", got, 600-60-8)
	}
}

func TestMaxSize(t *testing.T) {
	tests := []struct {
		name         string
		label        placement.Label
		opts         placement.Options
		fitW, fitH   bool
		wantW, wantH float64
	}{
		{"top fits both", placement.TopCenter, plain(), true, true, 784, 188},
		{"bottom fits both", placement.BottomCenter, plain(), true, true, 784, 348},
		{"left fits both", placement.LeftCenter, plain(), true, true, 288, 584},
		{"right fits both", placement.RightCenter, plain(), true, true, 388, 584},
		{"explicit caps only", placement.TopCenter, placement.Options{TargetGap: 4, ContainerGap: 8, MaxWidth: 150, MaxHeight: 90}, false, false, 150, 90},
		{"fit limited by explicit cap", placement.BottomCenter, placement.Options{TargetGap: 4, ContainerGap: 8, MaxHeight: 90}, true, true, 784, 90},
		{"no room", placement.LeftCenter, plain(), true, false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := input(tt.opts)
			in.FitMaxWidth, in.FitMaxHeight = tt.fitW, tt.fitH
			if tt.name == "no room" {
				in.Rect = geom.RectXYWH(2, 200, 10, 10)
			}
			got := Build(tt.label)(in)
			if got.MaxWidth != tt.wantW || got.MaxHeight != tt.wantH {
				t.Errorf("max size = (%v, %v), want (%v, %v)", got.MaxWidth, got.MaxHeight, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestKeyframes(t *testing.T) {
	o := plain()
	o.Animation = true
	o.OpeningDistance = 10
	o.ClosingDistance = 4

	tests := []struct {
		label         placement.Label
		initial, exit placement.Keyframe
	}{
		{placement.TopCenter, placement.Keyframe{Y: 10}, placement.Keyframe{Y: 4}},
		{placement.BottomLeft, placement.Keyframe{Y: -10}, placement.Keyframe{Y: -4}},
		{placement.LeftTop, placement.Keyframe{X: 10}, placement.Keyframe{X: 4}},
		{placement.RightCenter, placement.Keyframe{X: -10}, placement.Keyframe{X: -4}},
	}

	for _, tt := range tests {
		t.Run(string(tt.label), func(t *testing.T) {
			got := Build(tt.label)(input(o))
			want := []placement.Keyframe{tt.initial, {Opacity: 1}, tt.exit}
			if diff := cmp.Diff(want, []placement.Keyframe{got.Initial, got.Animate, got.Exit}); diff != "" {
				t.Errorf("keyframes mismatch (-want +got):\n%s", diff)
			}
		})
	}

	still := Build(placement.TopCenter)(input(plain()))
	identity := placement.Keyframe{Opacity: 1}
	if still.Initial != identity || still.Exit != identity {
		t.Errorf("keyframes without animation = %+v / %+v, want identity", still.Initial, still.Exit)
	}
}

func TestBuildPanicsOnInvalidLabel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Build should panic on an invalid label")
		}
	}()
	Build("diagonal")
}
