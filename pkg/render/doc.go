// Package render draws resolved popover scenes.
//
// # Overview
//
// Rendering works on a [Placed] value: the trigger, content and arrow in
// viewport coordinates, computed by [Place] from a built scene and a
// placement result. From there:
//
//   - [RenderSVG] draws the container tree, trigger, content and arrow.
//   - [RenderJSON] serializes the placement with its viewport geometry.
//   - [Canvas] draws the same picture into a terminal grid with lipgloss
//     styles, used by the interactive playground.
//   - [StatesDOT] and [StatesSVG] draw the visibility state machine through
//     Graphviz.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg):
//
//	svg := render.RenderSVG(placed, render.WithTree(built.Root))
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
package render
