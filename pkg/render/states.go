package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/popover/pkg/visibility"
)

// StatesDOT returns the visibility state machine in Graphviz DOT format.
// When current is non-nil that state is highlighted.
func StatesDOT(current *visibility.State) string {
	var buf bytes.Buffer
	buf.WriteString("digraph visibility {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("\n")

	for _, s := range visibility.States() {
		attrs := ""
		if current != nil && *current == s {
			attrs = ", fillcolor=\"#fde68a\", penwidth=2"
		}
		fmt.Fprintf(&buf, "  %q [label=%q%s];\n", s.String(), s.String(), attrs)
	}

	buf.WriteString("\n")
	for _, r := range visibility.Transitions() {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", r.From.String(), r.To.String(), r.Label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// StatesSVG renders the state machine through Graphviz.
func StatesSVG(ctx context.Context, current *visibility.State) ([]byte, error) {
	return RenderDOT(ctx, StatesDOT(current))
}

// RenderDOT renders a DOT graph to SVG using Graphviz.
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with a plain
// pixel-sized one.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
