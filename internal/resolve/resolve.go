// Package resolve turns a navigational request into document content.
//
// A resolution asks the LanguageSelector for the language, assembles the
// logical path from route segments, replaces the ContentCache entry when the
// language changed, loads the primary document, extracts its comment
// metadata and, when the metadata names a toc document, loads that too. Any
// load failure is absorbed: the FallbackNavigator is notified and the zero
// Result is returned.
package resolve

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docresolve/internal/cache"
	derrors "git.home.luguber.info/inful/docresolve/internal/errors"
	"git.home.luguber.info/inful/docresolve/internal/logfields"
	"git.home.luguber.info/inful/docresolve/internal/metadata"
	"git.home.luguber.info/inful/docresolve/internal/metrics"
	"git.home.luguber.info/inful/docresolve/internal/route"
)

// Orchestrator resolves requests. It is safe for concurrent use.
type Orchestrator struct {
	loader   FileLoader
	selector LanguageSelector
	nav      FallbackNavigator
	cache    *cache.ContentCache
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithCache shares an existing cache, e.g. with a renderer.
func WithCache(c *cache.ContentCache) Option {
	return func(o *Orchestrator) {
		if c != nil {
			o.cache = c
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates an Orchestrator over the given collaborators.
func New(loader FileLoader, selector LanguageSelector, nav FallbackNavigator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		loader:   loader,
		selector: selector,
		nav:      nav,
		cache:    cache.New(),
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Cache returns the cache owned by the orchestrator.
func (o *Orchestrator) Cache() *cache.ContentCache { return o.cache }

// Resolve runs one resolution. The only error it returns is an
// InvalidRequest for a malformed segment set; load failures yield the zero
// Result after notifying the FallbackNavigator.
func (o *Orchestrator) Resolve(ctx context.Context, req Request) (Result, error) {
	root := req.Root
	if root == "" {
		root = DefaultRoot
	}
	lang := o.language(ctx, req)

	path, err := route.Assemble(req.Segments)
	if err != nil {
		o.recorder.IncResolveOutcome(metrics.OutcomeInvalid)
		return Result{}, err
	}
	filename := route.DocumentFilename(path)

	if current, ok := o.cache.CurrentLanguage(); !ok || current != lang {
		o.cache.Reset(lang)
		o.recorder.IncCacheReset()
		o.logger.Debug("Content cache reset", logfields.Lang(lang))
	}

	miss := Miss{Lang: lang, Root: root, Path: path, Filename: filename}

	body, err := o.load(ctx, StagePrimary, root, lang, filename)
	if err != nil {
		miss.Stage, miss.Err = StagePrimary, err
		return o.fallback(ctx, miss), nil
	}

	meta := metadata.Extract(body)
	res := Result{
		Body: body,
		Path: path,
		Lang: lang,
		Meta: meta.Without(metadata.KeyTOC),
	}

	if tocName, ok := meta.TOC(); ok {
		toc, err := o.load(ctx, StageTOC, root, lang, tocName)
		if err != nil {
			miss.Stage, miss.Filename, miss.Err = StageTOC, tocName, err
			return o.fallback(ctx, miss), nil
		}
		res.TOC = &toc
	}

	o.recorder.IncResolveOutcome(metrics.OutcomeResolved)
	o.logger.Debug("Document resolved",
		logfields.Lang(lang),
		logfields.Path(path),
		slog.Bool("toc", res.TOC != nil),
		slog.Int("metadata", len(res.Meta)))
	return res, nil
}

func (o *Orchestrator) language(ctx context.Context, req Request) string {
	if req.Lang != "" {
		return req.Lang
	}
	if o.selector == nil {
		return ""
	}
	if lang := o.selector.ResolveLanguage(ctx); lang != "" {
		return lang
	}
	return o.selector.DefaultLanguage()
}

func (o *Orchestrator) load(ctx context.Context, stage, root, lang, filename string) (string, error) {
	start := time.Now()
	text, err := o.loader.Load(ctx, root, lang, filename)
	o.recorder.ObserveLoadDuration(stage, time.Since(start), resultLabel(err))
	if err != nil {
		return "", err
	}
	return text, nil
}

func (o *Orchestrator) fallback(ctx context.Context, miss Miss) Result {
	o.recorder.IncResolveOutcome(metrics.OutcomeFallback)

	if ctx.Err() != nil {
		// The caller is gone; nobody is left to navigate.
		o.logger.Debug("Resolution abandoned",
			logfields.Lang(miss.Lang),
			logfields.Path(miss.Path),
			logfields.Error(ctx.Err()))
		return Result{}
	}

	o.logger.Warn("Document resolution failed, falling back",
		logfields.Lang(miss.Lang),
		logfields.Root(miss.Root),
		logfields.Path(miss.Path),
		logfields.Filename(miss.Filename),
		logfields.Stage(miss.Stage),
		slog.String("category", string(derrors.GetCategory(miss.Err))),
		logfields.Error(miss.Err))

	if o.nav != nil {
		o.nav.NavigateToNotFound(ctx, miss)
	}
	return Result{}
}

func resultLabel(err error) metrics.ResultLabel {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case derrors.IsCategory(err, derrors.CategoryNotFound):
		return metrics.ResultNotFound
	default:
		return metrics.ResultTransport
	}
}
