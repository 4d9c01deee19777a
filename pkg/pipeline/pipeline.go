// Package pipeline runs scenes through placement, rendering and scripted
// simulation, caching what it can.
//
// Both the CLI and the HTTP server go through a [Runner] so they share cache
// keys and logging.
package pipeline

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/popover/pkg/cache"
	"github.com/matzehuels/popover/pkg/errors"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatJSON, FormatPNG, FormatPDF}

// DefaultScale is the PNG scale factor used when none is set.
const DefaultScale = 2.0

// Options configures a render.
type Options struct {
	Formats []string
	// Scale applies to PNG output.
	Scale float64
	// Hidden renders the popover closed.
	Hidden bool
	// Caption is drawn in the SVG's top-left corner.
	Caption string
	// Refresh bypasses cache reads. Results are still written.
	Refresh bool

	Logger *log.Logger
}

// ValidateAndSetDefaults fills in svg output and the default scale.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// ArtifactKeyOpts returns the cache key options for one format.
func (o Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Hidden: o.Hidden, Caption: o.Caption}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

// ValidateFormat checks a single format name. Names are case-sensitive.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want one of %v)", format, Formats)
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}
