// Package profile provides the default placement profile table.
//
// A profile turns resolved geometry into a [placement.Style]: where the
// content's top-left corner goes, where the arrow points, how large the
// content may grow, and how it animates in and out. [Default] covers all
// twelve placement labels and can be passed straight to
// [placement.NewResolver]:
//
//	r, err := placement.NewResolver(profile.Default(), placement.DefaultOptions(), nil)
//
// Every profile works in offset-origin coordinates, the frame the resolver
// hands them. Callers that need different positioning rules can build their
// own [placement.Profiles] map and reuse [Build] for the labels they do not
// customize.
package profile
