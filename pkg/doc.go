// Package pkg provides the core libraries for anchoring popovers.
//
// # Overview
//
// A popover is floating content attached to a trigger element. Placing it
// means choosing a side and an alignment that keep the content inside the
// nearest scrolling container, and deciding when it is shown at all. The
// pkg directory is organized into three areas:
//
//  1. Domain logic: [geom], [frame], [placement], [visibility] and [popover]
//  2. Scenes and output: [scene], [render] and [pipeline]
//  3. Infrastructure: [cache], [clock], [errors], [observability],
//     [httputil] and [buildinfo]
//
// # Architecture
//
// The typical data flow for a scene file:
//
//	scene file (TOML, YAML or JSON)
//	         ↓
//	    [scene] package (validate, build the box tree)
//	         ↓
//	    [placement] package (flip, bias, position the content)
//	         ↓
//	    [render] package (SVG, JSON, terminal canvas)
//
// Interactive use goes through [popover], which owns a [visibility]
// controller and recomputes placement whenever the trigger moves, the
// container scrolls, or the content is measured.
//
// # Quick Start
//
// Resolve a single placement:
//
//	r, err := placement.NewResolver(profile.Default(), placement.DefaultOptions(), logger)
//	if err != nil {
//	    return err
//	}
//	res, ok := r.Resolve(placement.Input{
//	    Trigger:   &trigger,
//	    Content:   &placement.Dimensions{Width: 100, Height: 50},
//	    Requested: placement.TopCenter,
//	    Container: body,
//	})
//
// Run a scene end to end, with caching:
//
//	s, err := scene.Load("menu.toml")
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Resolve(ctx, s, false)
//	artifacts, _, err := runner.Render(ctx, res, pipeline.Options{Formats: []string{"svg"}})
//
// # Error Handling
//
// Errors carry a machine-readable code from [errors]; use errors.Is and
// errors.As from the standard library to inspect them.
//
// # Concurrency
//
// Resolvers are immutable and safe for concurrent use. A [popover.Popover]
// serializes its own state and runs host callbacks outside its lock. Caches
// are safe for concurrent use.
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/geom
// [frame]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/frame
// [placement]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/placement
// [visibility]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/visibility
// [popover]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/popover
// [popover.Popover]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/popover#Popover
// [scene]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/scene
// [render]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/cache
// [clock]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/clock
// [errors]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/httputil
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/buildinfo
package pkg
