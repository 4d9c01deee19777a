package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/popover/pkg/errors"
	"github.com/matzehuels/popover/pkg/pipeline"
	"github.com/matzehuels/popover/pkg/render"
)

type renderOpts struct {
	cacheFlags
	output    string
	formats   string
	placement string
	scale     float64
	hidden    bool
	caption   string
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <scene>",
		Short: "Render a scene's resolved placement",
		Long: `Render draws the container tree, trigger, content and arrow of a resolved
scene. SVG and JSON are built in; PNG and PDF need rsvg-convert.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	opts.cacheFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (several)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&opts.placement, "placement", "p", "", "override the requested placement")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "png scale factor")
	cmd.Flags().BoolVar(&opts.hidden, "hidden", false, "render the popover closed")
	cmd.Flags().StringVar(&opts.caption, "caption", "", "caption drawn in the corner (default: scene and placement)")
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	ctx := cmd.Context()
	popts := pipeline.Options{
		Formats: parseFormats(opts.formats),
		Scale:   opts.scale,
		Hidden:  opts.hidden,
		Refresh: opts.refresh,
		Logger:  c.Logger,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	s, err := loadScene(path, opts.placement)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, opts.noCache, opts.redis)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Resolve(ctx, s, opts.refresh)
	if err != nil {
		return err
	}
	popts.Caption = opts.caption
	if popts.Caption == "" {
		popts.Caption = fmt.Sprintf("%s: %s", s.Name, res.Result.Placement)
	}

	var spin *Spinner
	if slices.Contains(popts.Formats, pipeline.FormatPNG) || slices.Contains(popts.Formats, pipeline.FormatPDF) {
		if !render.Converter() {
			return errors.New(errors.ErrCodeUnsupported, "png and pdf output need rsvg-convert on PATH")
		}
		spin = newSpinnerWithContext(ctx, "Converting...")
		spin.Start()
	}
	artifacts, cached, err := runner.Render(ctx, res, popts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	paths := outputPaths(path, opts.output, popts.Formats)
	for _, format := range popts.Formats {
		if err := os.WriteFile(paths[format], artifacts[format], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", paths[format])
		}
	}
	prog.done(fmt.Sprintf("Rendered %d file(s)", len(paths)))

	printSuccess("Rendered %s as %s", s.Name, StyleHighlight.Render(string(res.Result.Placement)))
	for _, format := range popts.Formats {
		printFile(paths[format])
	}
	printCacheStatus(res.CacheHit && cached)
	return nil
}

// outputPaths maps formats to files. A single format writes to output as
// given; several formats use output (or the scene path) as a base name.
func outputPaths(scenePath, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := output
	if base == "" {
		base = scenePath
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	for _, f := range formats {
		paths[f] = base + "." + f
		if paths[f] == scenePath {
			// never overwrite the scene itself
			paths[f] = base + ".out." + f
		}
	}
	return paths
}
