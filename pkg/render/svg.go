package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/popover/pkg/frame"
	"github.com/matzehuels/popover/pkg/geom"
)

const svgCSS = `
    .box { fill: none; stroke: #9ca3af; stroke-width: 1; }
    .box.positioned { stroke-dasharray: 6 3; }
    .box.scroll { stroke: #0ea5e9; }
    .box.container { stroke: #f59e0b; stroke-width: 2; }
    .box-label { font: 11px sans-serif; fill: #6b7280; }
    .trigger { fill: #6366f1; fill-opacity: 0.85; }
    .content { fill: #ffffff; stroke: #111827; stroke-width: 1.5; }
    .arrow { fill: #111827; }
    .caption { font: bold 12px sans-serif; fill: #111827; }`

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	tree      *frame.Box
	container *frame.Box
	hidden    bool
	caption   string
	padding   float64
}

// WithTree draws the container tree behind the popover and sizes the
// canvas to the tree's root.
func WithTree(root *frame.Box) SVGOption { return func(r *svgRenderer) { r.tree = root } }

// WithContainer highlights the container box.
func WithContainer(b *frame.Box) SVGOption { return func(r *svgRenderer) { r.container = b } }

// WithHidden omits the content, for closed popovers.
func WithHidden() SVGOption { return func(r *svgRenderer) { r.hidden = true } }

// WithCaption writes a caption in the top-left corner.
func WithCaption(s string) SVGOption { return func(r *svgRenderer) { r.caption = s } }

// RenderSVG draws p in viewport coordinates.
func RenderSVG(p Placed, opts ...SVGOption) []byte {
	r := svgRenderer{padding: 16}
	for _, opt := range opts {
		opt(&r)
	}

	bounds := r.bounds(p)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		bounds.Left, bounds.Top, bounds.Width, bounds.Height, bounds.Width, bounds.Height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgCSS)

	if r.tree != nil {
		r.tree.Walk(func(b *frame.Box, depth int) {
			renderBox(&buf, b, b == r.container)
		})
	}

	fmt.Fprintf(&buf, `  <rect id="trigger" class="trigger" %s rx="3"/>`+"\n", rectAttrs(p.Trigger))

	if !r.hidden {
		fmt.Fprintf(&buf, `  <g id="popover" data-placement="%s">`+"\n", p.Placement)
		fmt.Fprintf(&buf, `    <rect class="content" %s rx="4"/>`+"\n", rectAttrs(p.Content))
		if len(p.Arrow) > 0 {
			fmt.Fprintf(&buf, `    <polygon class="arrow" points="%s"/>`+"\n", points(p.Arrow))
		}
		buf.WriteString("  </g>\n")
	}

	if r.caption != "" {
		fmt.Fprintf(&buf, `  <text class="caption" x="%.1f" y="%.1f">%s</text>`+"\n",
			bounds.Left+4, bounds.Top+14, html.EscapeString(r.caption))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// bounds is the tree root when drawn, otherwise the union of the drawn
// shapes, padded either way.
func (r svgRenderer) bounds(p Placed) geom.Rect {
	var b geom.Rect
	if r.tree != nil {
		b = r.tree.Rect
	} else {
		b = union(p.Trigger, p.Content)
		if !p.Container.Empty() {
			b = union(b, p.Container)
		}
	}
	return geom.RectXYWH(b.Left-r.padding, b.Top-r.padding, b.Width+2*r.padding, b.Height+2*r.padding)
}

func renderBox(buf *bytes.Buffer, b *frame.Box, container bool) {
	classes := []string{"box"}
	if b.Positioned() {
		classes = append(classes, "positioned")
	}
	if b.Overflows() {
		classes = append(classes, "scroll")
	}
	if container {
		classes = append(classes, "container")
	}
	fmt.Fprintf(buf, `  <rect id="box-%s" class="%s" %s/>`+"\n",
		html.EscapeString(b.Name), strings.Join(classes, " "), rectAttrs(b.Rect))
	fmt.Fprintf(buf, `  <text class="box-label" x="%.1f" y="%.1f">%s</text>`+"\n",
		b.Rect.Left+3, b.Rect.Top+12, html.EscapeString(b.Name))
}

func rectAttrs(r geom.Rect) string {
	return fmt.Sprintf(`x="%.1f" y="%.1f" width="%.1f" height="%.1f"`, r.Left, r.Top, r.Width, r.Height)
}

func points(ps []geom.Point) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = fmt.Sprintf("%.1f,%.1f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

func union(a, b geom.Rect) geom.Rect {
	return geom.RectFromPoints(
		geom.Point{X: min(a.Left, b.Left), Y: min(a.Top, b.Top)},
		geom.Point{X: max(a.Right, b.Right), Y: max(a.Bottom, b.Bottom)},
	)
}
