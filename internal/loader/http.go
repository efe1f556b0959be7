package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	derrors "git.home.luguber.info/inful/docresolve/internal/errors"
)

// maxDocumentSize bounds a single fetched document.
const maxDocumentSize = 8 << 20

// HTTPLoader fetches documents from <baseURL>/<root>/<lang>/<filename>.
type HTTPLoader struct {
	base   *url.URL
	client *http.Client
}

// HTTPOption configures an HTTPLoader.
type HTTPOption func(*HTTPLoader)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(l *HTTPLoader) {
		if c != nil {
			l.client = c
		}
	}
}

// NewHTTPLoader creates a loader for baseURL. timeout bounds each fetch.
func NewHTTPLoader(baseURL string, timeout time.Duration, opts ...HTTPOption) (*HTTPLoader, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, derrors.ConfigInvalid("loader.http.base_url", "absolute URL required")
	}
	l := &HTTPLoader{base: u, client: &http.Client{Timeout: timeout}}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Load fetches one document. 404 and 410 map to NotFound; everything else
// that is not 2xx maps to Transport.
func (l *HTTPLoader) Load(ctx context.Context, root, lang, filename string) (string, error) {
	key, err := objectKey(root, lang, filename)
	if err != nil {
		return "", err
	}

	target := l.base.JoinPath(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return "", derrors.Transport(root, lang, filename, err)
	}
	req.Header.Set("Accept", "text/markdown, text/plain;q=0.9, */*;q=0.1")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", derrors.Transport(root, lang, filename, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return "", derrors.NotFound(root, lang, filename).WithContext("url", target.String())
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", derrors.Transport(root, lang, filename, fmt.Errorf("unexpected status %d", resp.StatusCode)).
			WithContext("url", target.String())
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return "", derrors.Transport(root, lang, filename, err)
	}
	return string(body), nil
}
