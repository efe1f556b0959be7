package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"git.home.luguber.info/inful/docresolve/internal/cache"
	"git.home.luguber.info/inful/docresolve/internal/logfields"
	"git.home.luguber.info/inful/docresolve/internal/resolve"
	"git.home.luguber.info/inful/docresolve/internal/route"
)

// segmentsFrom returns the matched chi parameters in declaration order.
func segmentsFrom(r *http.Request) route.Segments {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}
	return route.FromParams(rctx.URLParams.Keys, rctx.URLParams.Values)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	res, redirect, err := s.resolveRequest(r)
	if err != nil {
		s.errors.WriteErrorResponse(w, r, err)
		return
	}
	if target, ok := redirect.Target(); ok {
		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
		return
	}
	if r.Context().Err() != nil {
		return
	}

	var entry *cache.Entry
	if s.opts.Cache != nil {
		entry, _ = s.opts.Cache.Get(res.Lang)
	}
	page := documentPage{Title: s.opts.Config.Title, Lang: res.Lang, Path: res.Path, Meta: res.Meta}
	if page.Body, err = s.opts.Renderer.Render(entry, res.Body); err != nil {
		s.errors.WriteErrorResponse(w, r, err)
		return
	}
	if res.TOC != nil {
		if page.TOC, err = s.opts.Renderer.Render(entry, *res.TOC); err != nil {
			s.errors.WriteErrorResponse(w, r, err)
			return
		}
	}
	if t, ok := res.Meta["title"]; ok && t != "" {
		page.Title = t
	}
	s.writeHTML(w, http.StatusOK, "document", page)
}

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	res, redirect, err := s.resolveRequest(r)
	if err != nil {
		s.errors.WriteErrorResponse(w, r, err)
		return
	}
	status := http.StatusOK
	if _, ok := redirect.Target(); ok {
		status = http.StatusNotFound
	}
	if err := writeJSON(w, status, res); err != nil {
		slog.Error("failed encoding content response", logfields.Error(err))
	}
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeHTML(w, http.StatusNotFound, "notfound", documentPage{
		Title: s.opts.Config.Title,
		Lang:  s.language(r),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) language(r *http.Request) string {
	if s.opts.Selector == nil {
		return ""
	}
	return s.opts.Selector.ResolveLanguage(r.Context())
}

// writeJSON encodes into a buffer first so a failed encode sends nothing.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

func (s *Server) writeHTML(w http.ResponseWriter, status int, name string, data documentPage) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("failed rendering page", slog.String("template", name), logfields.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

var _ Resolver = (*resolve.Orchestrator)(nil)
