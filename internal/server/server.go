// Package server is the HTTP playground: it resolves and renders scenes
// posted as JSON, TOML or YAML.
package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/popover/pkg/buildinfo"
	"github.com/matzehuels/popover/pkg/errors"
	"github.com/matzehuels/popover/pkg/httputil"
	"github.com/matzehuels/popover/pkg/pipeline"
	"github.com/matzehuels/popover/pkg/render"
	"github.com/matzehuels/popover/pkg/scene"
	"github.com/matzehuels/popover/pkg/visibility"
)

// RequestTimeout bounds each request, including PNG conversion.
const RequestTimeout = 30 * time.Second

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
}

// Server serves the playground API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New returns a server backed by runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	return &Server{runner: runner, logger: logger}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(RequestTimeout))

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/resolve", s.resolve)
		r.Post("/render", s.render)
		r.Get("/states", s.states)
	})
	return r
}

// ResolveResponse is the body of POST /v1/resolve.
type ResolveResponse struct {
	render.Document
	Cached bool `json:"cached"`
}

func (s *Server) resolve(w http.ResponseWriter, r *http.Request) {
	res, err := s.load(r.Context(), w, r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ResolveResponse{
		Document: render.Document{Scene: res.Scene.Name, State: visibility.Open, Placed: res.Placed},
		Cached:   res.CacheHit,
	})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts := pipeline.Options{
		Formats: []string{format},
		Hidden:  q.Get("hidden") == "true",
		Caption: q.Get("caption"),
		Refresh: q.Get("refresh") == "true",
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			httputil.WriteError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "scale"))
			return
		}
		opts.Scale = scale
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := s.load(r.Context(), w, r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	artifacts, hit, err := s.runner.Render(r.Context(), res, opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(res.CacheHit && hit))
	httputil.WriteBytes(w, contentTypes[format], artifacts[format])
}

func (s *Server) states(w http.ResponseWriter, r *http.Request) {
	var current *visibility.State
	if name := r.URL.Query().Get("current"); name != "" {
		st, err := visibility.ParseState(name)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		current = &st
	}

	switch format := r.URL.Query().Get("format"); format {
	case "dot":
		httputil.WriteBytes(w, "text/vnd.graphviz", []byte(render.StatesDOT(current)))
	case "", pipeline.FormatSVG:
		svg, err := render.StatesSVG(r.Context(), current)
		if err != nil {
			httputil.WriteError(w, errors.Wrap(errors.ErrCodeInternal, err, "render states"))
			return
		}
		httputil.WriteBytes(w, contentTypes[pipeline.FormatSVG], svg)
	default:
		httputil.WriteError(w, errors.New(errors.ErrCodeInvalidFormat, "states format must be dot or svg, got %q", format))
	}
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok", Info: buildinfo.Get()})
}

// load decodes the posted scene and resolves it.
func (s *Server) load(ctx context.Context, w http.ResponseWriter, r *http.Request) (*pipeline.Resolved, error) {
	format, err := sceneFormat(r)
	if err != nil {
		return nil, err
	}
	data, err := httputil.ReadBody(w, r)
	if err != nil {
		return nil, err
	}
	sc, err := scene.Parse(data, format)
	if err != nil {
		return nil, err
	}
	if sc.Name == "" {
		sc.Name = "scene"
	}
	return s.runner.Resolve(ctx, sc, r.URL.Query().Get("refresh") == "true")
}

// sceneFormat picks the decoder from ?scene= or the Content-Type.
func sceneFormat(r *http.Request) (scene.Format, error) {
	if v := r.URL.Query().Get("scene"); v != "" {
		return scene.ParseFormat(v)
	}
	ct := r.Header.Get("Content-Type")
	switch {
	case strings.Contains(ct, "toml"):
		return scene.FormatTOML, nil
	case strings.Contains(ct, "yaml"):
		return scene.FormatYAML, nil
	}
	return scene.FormatJSON, nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"id", middleware.GetReqID(r.Context()))
	})
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
