package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docresolve/internal/config"
	"git.home.luguber.info/inful/docresolve/internal/loader"
	"git.home.luguber.info/inful/docresolve/internal/logfields"
	"git.home.luguber.info/inful/docresolve/internal/metrics"
	"git.home.luguber.info/inful/docresolve/internal/missstore"
	"git.home.luguber.info/inful/docresolve/internal/navigate"
	"git.home.luguber.info/inful/docresolve/internal/notify"
	"git.home.luguber.info/inful/docresolve/internal/render"
	"git.home.luguber.info/inful/docresolve/internal/resolve"
	"git.home.luguber.info/inful/docresolve/internal/server"
)

const watchDebounce = 200 * time.Millisecond

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr    string `help:"Listen address (overrides server.addr)"`
	NoWatch bool   `help:"Disable content watching even when loader.watch is set"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, logger, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}
	if s.NoWatch {
		cfg.Loader.Watch = false
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunServe(ctx, cfg, logger)
}

// RunServe wires every collaborator from cfg and serves until ctx is done.
func RunServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	ld, err := newLoader(ctx, cfg)
	if err != nil {
		return err
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		metricsHandler = metrics.HTTPHandler(reg)
	}

	nav := navigate.Multi{navigate.NewHTTPNavigator(cfg.Server.NotFoundPath)}

	if cfg.Misses.DBPath != "" {
		store, err := missstore.NewSQLiteStore(cfg.Misses.DBPath)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		nav = append(nav, store)

		pruner, err := missstore.NewPruner(store, cfg.Misses.Retention, cfg.Misses.PruneEvery)
		if err != nil {
			return fmt.Errorf("miss pruner: %w", err)
		}
		pruner.Start()
		defer func() { _ = pruner.Stop() }()
	}

	if cfg.Notify.NATSURL != "" {
		notifier, err := notify.Connect(cfg.Notify)
		if err != nil {
			// Misses are still redirected and stored without NATS.
			logger.Warn("NATS unavailable, miss events disabled", logfields.Error(err))
		} else {
			defer func() { _ = notifier.Close() }()
			nav = append(nav, notifier)
		}
	}

	selector := newSelector(cfg)
	orch := resolve.New(ld, selector, nav,
		resolve.WithRecorder(recorder),
		resolve.WithLogger(logger))

	if cfg.Loader.Type == config.LoaderFS && cfg.Loader.Watch {
		w, err := loader.NewWatcher(cfg.Loader.Dir, cfg.Content.Root, watchDebounce, invalidateOnChange(orch, recorder, logger))
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			_ = w.Close()
			return err
		}
		defer func() { _ = w.Close() }()
	}

	srv := server.New(orch, server.Options{
		Config:      cfg.Server,
		Root:        cfg.Content.Root,
		Selector:    selector,
		Renderer:    render.New(recorder),
		Cache:       orch.Cache(),
		Metrics:     metricsHandler,
		MetricsPath: cfg.Metrics.Path,
		Logger:      logger,
	})
	return srv.Run(ctx)
}

// invalidateOnChange replaces the cache entry when the changed language is the active one.
func invalidateOnChange(orch *resolve.Orchestrator, recorder metrics.Recorder, logger *slog.Logger) loader.ChangeFunc {
	return func(lang string) {
		c := orch.Cache()
		if current, ok := c.CurrentLanguage(); ok && current == lang {
			c.Reset(lang)
			recorder.IncCacheReset()
			logger.Info("Content changed, cache entry replaced", logfields.Lang(lang))
		}
	}
}
