package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/popover/pkg/cache"
	"github.com/matzehuels/popover/pkg/errors"
	"github.com/matzehuels/popover/pkg/observability"
	"github.com/matzehuels/popover/pkg/placement"
	"github.com/matzehuels/popover/pkg/placement/profile"
	"github.com/matzehuels/popover/pkg/render"
	"github.com/matzehuels/popover/pkg/scene"
)

// Runner executes pipeline stages with caching. It holds no per-scene
// state and is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a runner. A nil cache disables caching, a nil keyer
// means cache.DefaultKeyer and a nil logger means log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Resolved is a scene with its placement.
type Resolved struct {
	Scene  *scene.Scene
	Built  *scene.Built
	Result placement.Result
	Placed render.Placed
	// Hash identifies the result for artifact cache keys.
	Hash     string
	CacheHit bool
}

// Resolve validates, builds and places s. Results are cached by the hash
// of the scene's JSON form unless refresh is set.
func (r *Runner) Resolve(ctx context.Context, s *scene.Scene, refresh bool) (res *Resolved, err error) {
	hooks := observability.Pipeline()
	hooks.OnResolveStart(ctx, s.Name)
	start := time.Now()
	defer func() { hooks.OnResolveComplete(ctx, s.Name, time.Since(start), err) }()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	b, err := s.Build()
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode scene")
	}
	key := r.Keyer.ResultKey(cache.Hash(encoded))

	out := &Resolved{Scene: s, Built: b}
	if !refresh {
		if data, ok := r.get(ctx, cache.KeyTypeResult, key); ok {
			if json.Unmarshal(data, &out.Result) == nil {
				out.CacheHit = true
			}
		}
	}

	if !out.CacheHit {
		resolver, err := placement.NewResolver(profile.Default(), b.Options, r.Logger)
		if err != nil {
			return nil, err
		}
		result, ok := resolver.Resolve(b.Input())
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidScene, "scene %q has no placement: trigger or content is unusable", s.Name)
		}
		out.Result = result
	}

	data, err := json.Marshal(out.Result)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode result")
	}
	out.Hash = cache.Hash(data)
	out.Placed = render.Place(b, out.Result)
	if !out.CacheHit {
		r.set(ctx, cache.KeyTypeResult, key, data, cache.ResultTTL)
	}

	r.Logger.Info("resolved placement",
		"scene", s.Name,
		"requested", out.Placed.Requested,
		"placement", out.Result.Placement,
		"cached", out.CacheHit,
		"duration", time.Since(start))
	return out, nil
}

// Render produces every format in opts. The bool reports whether all
// artifacts came from the cache.
func (r *Runner) Render(ctx context.Context, res *Resolved, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	artifacts = make(map[string][]byte, len(opts.Formats))
	hit = true
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(res.Hash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, ok := r.get(ctx, cache.KeyTypeArtifact, key); ok {
				artifacts[format] = data
				continue
			}
		}
		hit = false

		data, err := r.renderFormat(ctx, res, format, opts)
		if err != nil {
			return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
		r.set(ctx, cache.KeyTypeArtifact, key, data, cache.ArtifactTTL)
	}

	logger.Info("rendered outputs", "formats", opts.Formats, "cached", hit, "duration", time.Since(start))
	return artifacts, hit, nil
}

func (r *Runner) renderFormat(ctx context.Context, res *Resolved, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return render.RenderJSON(res.Scene.Name, stateOf(opts), res.Placed)
	case FormatSVG:
		return r.svg(res, opts), nil
	case FormatPNG:
		return render.ToPNG(ctx, r.svg(res, opts), opts.Scale)
	case FormatPDF:
		return render.ToPDF(ctx, r.svg(res, opts))
	}
	return nil, ValidateFormat(format)
}

func (r *Runner) svg(res *Resolved, opts Options) []byte {
	svgOpts := []render.SVGOption{
		render.WithTree(res.Built.Root),
		render.WithContainer(res.Built.Container),
	}
	if opts.Hidden {
		svgOpts = append(svgOpts, render.WithHidden())
	}
	if opts.Caption != "" {
		svgOpts = append(svgOpts, render.WithCaption(opts.Caption))
	}
	return render.RenderSVG(res.Placed, svgOpts...)
}

// get reads the cache, treating errors as misses.
func (r *Runner) get(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
	}
	if err != nil || !ok {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// set writes the cache. Failures are logged, never returned.
func (r *Runner) set(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases the cache.
func (r *Runner) Close() error { return r.Cache.Close() }
