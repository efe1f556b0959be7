package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docresolve/internal/config"
	derrors "git.home.luguber.info/inful/docresolve/internal/errors"
	"git.home.luguber.info/inful/docresolve/internal/lang"
	"git.home.luguber.info/inful/docresolve/internal/loader"
	"git.home.luguber.info/inful/docresolve/internal/navigate"
	"git.home.luguber.info/inful/docresolve/internal/resolve"
)

func writeDoc(t *testing.T, dir, rel, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
}

type testEnv struct {
	srv  *Server
	nav  *navigate.Recorder
	orch *resolve.Orchestrator
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	writeDoc(t, dir, "docs/en/index.md", "# Home\n")
	writeDoc(t, dir, "docs/en/guide/setup.md", "<!-- toc: nav.md title: Setup -->\n# Setup\n\nInstall it.\n")
	writeDoc(t, dir, "docs/en/nav.md", "- [Setup](/docs/guide/setup)\n")
	writeDoc(t, dir, "docs/en/broken.md", "<!-- toc: missing.md -->\n# Broken\n")
	writeDoc(t, dir, "docs/de/index.md", "# Startseite\n")

	selector := lang.NewSelector([]string{"en", "de"}, "en")
	rec := &navigate.Recorder{}
	nav := navigate.Multi{navigate.NewHTTPNavigator("/not-found"), rec}
	orch := resolve.New(loader.NewFSLoader(dir), selector, nav)

	srv := New(orch, Options{
		Config:   config.ServerConfig{MaxDepth: 3},
		Root:     "docs",
		Selector: selector,
		Cache:    orch.Cache(),
		Metrics:  http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("metrics")) }),
	})
	return testEnv{srv: srv, nav: rec, orch: orch}
}

func (e testEnv) get(t *testing.T, target string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, m := range mutate {
		m(req)
	}
	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestRoutePatterns(t *testing.T) {
	require.Equal(t, []string{
		"/docs",
		"/docs/{path}",
		"/docs/{path}/{path1}",
		"/docs/{path}/{path1}/{path2}",
	}, routePatterns("/docs", 3))
}

func TestDocument_RendersWithTOCAndMeta(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/docs/guide/setup")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `<h1 id="setup">Setup</h1>`)
	require.Contains(t, body, `<nav class="toc">`)
	require.Contains(t, body, `href="/docs/guide/setup"`)
	require.Contains(t, body, `<meta name="title" content="Setup">`)
	require.Contains(t, body, `<title>Setup</title>`)
	require.Contains(t, body, `data-path="guide/setup"`)
}

func TestDocument_RootServesIndex(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/docs/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Home")
}

func TestDocument_LanguageFromQuery(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/docs?lang=de")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Startseite")
	require.Contains(t, rec.Body.String(), `<html lang="de">`)

	current, ok := env.orch.Cache().CurrentLanguage()
	require.True(t, ok)
	require.Equal(t, "de", current)
}

func TestDocument_MissingRedirectsToNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/docs/nope")

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	require.Equal(t, "/not-found", rec.Header().Get("Location"))
	misses := env.nav.Misses()
	require.Len(t, misses, 1)
	require.Equal(t, "nope.md", misses[0].Filename)
}

func TestDocument_MissingTOCRedirects(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/docs/broken")
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	require.Equal(t, resolve.StageTOC, env.nav.Misses()[0].Stage)
}

func TestDocument_TooDeepIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/docs/a/b/c/d")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Empty(t, env.nav.Misses())
}

func TestContent_JSON(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/api/content/guide/setup.html")

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "guide/setup.html", got["path"])
	require.Equal(t, "Setup", got["title"])
	require.Equal(t, "- [Setup](/docs/guide/setup)\n", got["toc"])
	require.Contains(t, got["body"], "Install it.")
}

func TestContent_FallbackIs404(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/api/content/nope")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"body":""}`, rec.Body.String())
}

func TestNotFoundAndHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/not-found")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Page not found")

	rec = env.get(t, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = env.get(t, "/metrics")
	require.Equal(t, "metrics", rec.Body.String())
}

type invalidResolver struct{}

func (invalidResolver) Resolve(context.Context, resolve.Request) (resolve.Result, error) {
	return resolve.Result{}, errInvalid
}

func TestDocument_InvalidRequestIs400(t *testing.T) {
	srv := New(invalidResolver{}, Options{})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/content/x", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"code":"validation"`)
}

var errInvalid = derrors.InvalidRequest("path", "missing value")
