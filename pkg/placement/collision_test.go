package placement

import (
	"testing"

	"github.com/matzehuels/popover/pkg/geom"
)

func testConstraints() Constraints {
	o := Options{TargetGap: 4, ContainerGap: 8}
	return NewConstraints(geom.RectXYWH(0, 0, 800, 600), geom.Size{Width: 100, Height: 50}, o)
}

func TestNewConstraints(t *testing.T) {
	got := testConstraints()
	want := Constraints{Top: 62, Bottom: 538, Left: 112, Right: 688}
	if got != want {
		t.Errorf("NewConstraints() = %+v, want %+v", got, want)
	}
}

func TestAvoid(t *testing.T) {
	c := testConstraints()

	tests := []struct {
		name      string
		requested Label
		trigger   geom.Rect
		want      Label
	}{
		{"fits as requested", TopCenter, geom.RectXYWH(350, 300, 100, 20), TopCenter},
		{"top flips to bottom", TopCenter, geom.RectXYWH(350, 20, 100, 20), BottomCenter},
		{"bottom flips to top", BottomCenter, geom.RectXYWH(350, 560, 100, 20), TopCenter},
		{"near left edge biases left", TopCenter, geom.RectXYWH(10, 300, 30, 20), TopLeft},
		{"near right edge biases right", BottomCenter, geom.RectXYWH(760, 300, 30, 20), BottomRight},
		{"corner biases and flips", TopCenter, geom.RectXYWH(10, 10, 30, 20), BottomLeft},
		{"explicit bias is kept", TopRight, geom.RectXYWH(350, 300, 100, 20), TopRight},
		{"explicit bias flips", TopLeft, geom.RectXYWH(760, 300, 30, 20), TopRight},
		{"right flips to left", RightCenter, geom.RectXYWH(740, 300, 40, 20), LeftCenter},
		{"left flips to right", LeftCenter, geom.RectXYWH(20, 300, 40, 20), RightCenter},
		{"vertical suffix flips", LeftTop, geom.RectXYWH(400, 560, 50, 20), LeftBottom},
		{"horizontal label biases top", RightCenter, geom.RectXYWH(400, 10, 50, 20), RightTop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Avoid(tt.requested, tt.trigger, c); got != tt.want {
				t.Errorf("Avoid(%q) = %q, want %q", tt.requested, got, tt.want)
			}
		})
	}
}

func TestAvoidKeepsRequestedWhenBothOverflow(t *testing.T) {
	// Content as large as the container overflows on every side.
	o := Options{TargetGap: 4, ContainerGap: 8}
	c := NewConstraints(geom.RectXYWH(0, 0, 100, 100), geom.Size{Width: 100, Height: 100}, o)
	trigger := geom.RectXYWH(40, 40, 20, 20)

	for _, l := range []Label{TopCenter, BottomCenter, LeftCenter, RightCenter} {
		got := Avoid(l, trigger, c)
		if got.Base() != l.Base() {
			t.Errorf("Avoid(%q) = %q, want base %q kept", l, got, l.Base())
		}
	}
}

func TestAvoidNeverProducesBiasForFlip(t *testing.T) {
	// A trigger near the top in the middle of the axis must flip to plain
	// "bottom", never pick up a bias.
	c := testConstraints()
	got := Avoid(TopCenter, geom.RectXYWH(380, 5, 40, 20), c)
	if got != BottomCenter {
		t.Errorf("Avoid() = %q, want %q", got, BottomCenter)
	}
}

func TestAvoidProducesValidLabelsOnSameAxis(t *testing.T) {
	c := testConstraints()
	for _, l := range Labels() {
		for x := -50.0; x <= 850; x += 50 {
			for y := -50.0; y <= 650; y += 50 {
				got := Avoid(l, geom.RectXYWH(x, y, 30, 20), c)
				if !got.Valid() {
					t.Fatalf("Avoid(%q) at (%v,%v) = %q, not a valid label", l, x, y, got)
				}
				if got.Vertical() != l.Vertical() {
					t.Fatalf("Avoid(%q) at (%v,%v) = %q, changed axis", l, x, y, got)
				}
				if l.Bias() != "" && got.Bias() == "" {
					t.Fatalf("Avoid(%q) at (%v,%v) = %q, dropped bias", l, x, y, got)
				}
			}
		}
	}
}

func TestAvoidZeroContent(t *testing.T) {
	c := NewConstraints(geom.RectXYWH(0, 0, 800, 600), geom.Size{}, Options{})
	got := Avoid(TopCenter, geom.RectXYWH(0, 0, 0, 0), c)
	if got != TopCenter {
		t.Errorf("Avoid() = %q, want %q", got, TopCenter)
	}
}
