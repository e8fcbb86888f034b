// Package server is the development server behind "spritetower serve".
//
// Every request for a configuration regenerates it through the pipeline
// runner, so edits to an icon folder show up on the next reload. With a
// cache configured an unchanged folder costs one directory read and a hash.
//
// Routes:
//
//	GET /                       index of configurations
//	GET /{config}/              preview page rendering every icon
//	GET /{config}/sprite.css    stylesheet
//	GET /{config}/sprite.js     runtime module
//	GET /{config}/bundle.js     stylesheet injection plus runtime module
//	GET /{config}/sprite.d.ts   type declarations
//	GET /assets/{asset}         composite SVG, by content-addressed name
//	GET /healthz                liveness
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/spritetower/pkg/errors"
	"github.com/matzehuels/spritetower/pkg/observability"
	"github.com/matzehuels/spritetower/pkg/pipeline"
)

// AssetPath is the public path composites are served under.
const AssetPath = "/assets/"

// Content types of the served artifacts.
const (
	contentTypeCSS = "text/css; charset=utf-8"
	contentTypeJS  = "text/javascript; charset=utf-8"
	contentTypeTS  = "text/plain; charset=utf-8"
	contentTypeSVG = "image/svg+xml"
)

// Server serves freshly generated artifacts for a set of configurations.
type Server struct {
	runner  *pipeline.Runner
	configs map[string]pipeline.Configuration
	names   []string
	opts    pipeline.Options
	logger  *log.Logger

	mu     sync.RWMutex
	assets map[string][]byte // asset name -> composite
}

// New creates a server. configs keep their order on the index page. The
// options' PublicPath is replaced by AssetPath.
func New(runner *pipeline.Runner, configs []pipeline.Configuration, opts pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	opts.PublicPath = AssetPath
	s := &Server{
		runner:  runner,
		configs: make(map[string]pipeline.Configuration, len(configs)),
		opts:    opts,
		logger:  logger,
		assets:  make(map[string][]byte),
	}
	for _, cfg := range configs {
		s.configs[cfg.Name] = cfg
		s.names = append(s.names, cfg.Name)
	}
	return s
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/assets/{asset}", s.handleAsset)

	r.Route("/{config}", func(r chi.Router) {
		r.Get("/", s.handlePreview)
		r.Get("/sprite.css", s.artifact(contentTypeCSS, func(a pipeline.Artifacts) string { return a.CSS }))
		r.Get("/sprite.js", s.artifact(contentTypeJS, func(a pipeline.Artifacts) string { return a.Runtime }))
		r.Get("/bundle.js", s.artifact(contentTypeJS, func(a pipeline.Artifacts) string { return a.Bundle }))
		r.Get("/sprite.d.ts", s.artifact(contentTypeTS, func(a pipeline.Artifacts) string { return a.Declaration }))
	})
	return r
}

// Generate runs the pipeline for the named configuration and records its
// composite for the asset route.
func (s *Server) Generate(ctx context.Context, name string) (*pipeline.Result, error) {
	cfg, ok := s.configs[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeConfigurationUnset, "configuration %q not found", name)
	}
	files, err := pipeline.ReadFolder(cfg.Folder)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", cfg.Folder, err)
	}
	res, err := s.runner.Execute(ctx, cfg, files, s.opts)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.assets[res.Artifacts.AssetName] = res.Artifacts.SVG
	s.mu.Unlock()
	return res, nil
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "asset")
	s.mu.RLock()
	svg, ok := s.assets[name]
	s.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", contentTypeSVG)
	// Asset names change with their content.
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Write(svg)
}

func (s *Server) artifact(contentType string, pick func(pipeline.Artifacts) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, ok := s.generateFor(w, r)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-cache")
		io.WriteString(w, pick(res.Artifacts))
	}
}

// generateFor regenerates the configuration named in the route and writes
// the error response itself when that fails.
func (s *Server) generateFor(w http.ResponseWriter, r *http.Request) (*pipeline.Result, bool) {
	name := chi.URLParam(r, "config")
	res, err := s.Generate(r.Context(), name)
	switch {
	case errors.Is(err, errors.ErrCodeConfigurationUnset):
		http.NotFound(w, r)
		return nil, false
	case err != nil:
		s.logger.Error("generation failed", "config", name, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return res, true
}

// =============================================================================
// Middleware
// =============================================================================

// instrument reports every request to the server hooks and the debug log.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.Server()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", elapsed.Round(time.Microsecond))
	})
}

// previewClass returns the class a preview element needs so the first
// stylesheet rule of cfg applies to it, or "" if that rule is not a plain
// class selector.
func previewClass(cfg pipeline.Configuration) string {
	if len(cfg.Stylesheets) == 0 {
		return ""
	}
	sel := strings.TrimSpace(cfg.Stylesheets[0].Selector)
	if !strings.HasPrefix(sel, ".") || strings.ContainsAny(sel[1:], " .#:[>+~,") {
		return ""
	}
	return sel[1:]
}
