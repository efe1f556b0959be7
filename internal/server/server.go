// Package server exposes resolved documentation over HTTP.
//
// Documents are served as HTML under /docs and as JSON under /api/content.
// Both trees accept up to max_depth path segments, which chi hands to the
// resolver as ordered route parameters named path, path1, path2 and so on.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"git.home.luguber.info/inful/docresolve/internal/cache"
	"git.home.luguber.info/inful/docresolve/internal/config"
	derrors "git.home.luguber.info/inful/docresolve/internal/errors"
	"git.home.luguber.info/inful/docresolve/internal/lang"
	"git.home.luguber.info/inful/docresolve/internal/navigate"
	"git.home.luguber.info/inful/docresolve/internal/render"
	"git.home.luguber.info/inful/docresolve/internal/resolve"
	smw "git.home.luguber.info/inful/docresolve/internal/server/middleware"
)

const (
	docsPrefix      = "/docs"
	apiPrefix       = "/api/content"
	shutdownTimeout = 10 * time.Second
)

// Resolver is implemented by *resolve.Orchestrator.
type Resolver interface {
	Resolve(ctx context.Context, req resolve.Request) (resolve.Result, error)
}

// Options wires the server's collaborators.
type Options struct {
	Config   config.ServerConfig
	Root     string
	Selector *lang.Selector
	Renderer *render.Renderer
	// Cache is the resolver's content cache; rendered HTML is memoized in its entry.
	Cache *cache.ContentCache
	// Metrics is mounted at MetricsPath when non-nil.
	Metrics     http.Handler
	MetricsPath string
	Logger      *slog.Logger
}

// Server serves documentation pages and the content API.
type Server struct {
	resolver Resolver
	opts     Options
	router   *chi.Mux
	server   *http.Server
	errors   *derrors.HTTPErrorAdapter
	logger   *slog.Logger
}

// New creates a server. Zero config fields take the config package defaults.
func New(resolver Resolver, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Config.MaxDepth <= 0 {
		opts.Config.MaxDepth = config.DefaultMaxDepth
	}
	if opts.Config.NotFoundPath == "" {
		opts.Config.NotFoundPath = config.DefaultNotFoundPath
	}
	if opts.Config.Title == "" {
		opts.Config.Title = config.DefaultSiteTitle
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = config.DefaultMetricsPath
	}
	if opts.Renderer == nil {
		opts.Renderer = render.New(nil)
	}

	s := &Server{
		resolver: resolver,
		opts:     opts,
		router:   chi.NewRouter(),
		errors:   derrors.NewHTTPErrorAdapter(opts.Logger),
		logger:   opts.Logger,
	}
	s.setupRoutes()

	s.server = &http.Server{
		Addr:              opts.Config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(smw.Chain(s.logger, s.errors))
	s.router.Use(middleware.StripSlashes)
	s.router.Use(middleware.Timeout(30 * time.Second))
	if s.opts.Selector != nil {
		s.router.Use(s.opts.Selector.Middleware)
	}

	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, docsPrefix, http.StatusFound)
	})
	for _, pattern := range routePatterns(docsPrefix, s.opts.Config.MaxDepth) {
		s.router.Get(pattern, s.handleDocument)
	}
	for _, pattern := range routePatterns(apiPrefix, s.opts.Config.MaxDepth) {
		s.router.Get(pattern, s.handleContent)
	}

	s.router.Get(s.opts.Config.NotFoundPath, s.handleNotFound)
	s.router.NotFound(s.handleNotFound)
	s.router.Get("/healthz", s.handleHealth)
	if s.opts.Metrics != nil {
		s.router.Handle(s.opts.MetricsPath, s.opts.Metrics)
	}
}

// routePatterns returns prefix plus one pattern per depth up to maxDepth.
func routePatterns(prefix string, maxDepth int) []string {
	patterns := make([]string, 0, maxDepth+1)
	patterns = append(patterns, prefix)
	p := prefix
	for i := range maxDepth {
		key := "path"
		if i > 0 {
			key = fmt.Sprintf("path%d", i)
		}
		p += "/{" + key + "}"
		patterns = append(patterns, p)
	}
	return patterns
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	s.logger.Info("HTTP server shutting down")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// resolveRequest runs the resolver with a per-request redirect slot.
func (s *Server) resolveRequest(r *http.Request) (resolve.Result, *navigate.Redirect, error) {
	ctx, redirect := navigate.WithRedirect(r.Context())
	res, err := s.resolver.Resolve(ctx, resolve.Request{
		Segments: segmentsFrom(r),
		Root:     s.opts.Root,
	})
	return res, redirect, err
}
