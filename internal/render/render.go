// Package render converts markdown documents to HTML with goldmark.
package render

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"git.home.luguber.info/inful/docresolve/internal/cache"
	"git.home.luguber.info/inful/docresolve/internal/metrics"
)

const keyPrefix = "render:"

// Renderer renders markdown and memoizes output in the active cache entry.
type Renderer struct {
	md       goldmark.Markdown
	recorder metrics.Recorder
}

// New creates a GFM renderer. A nil recorder disables metrics.
func New(recorder metrics.Recorder) *Renderer {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		recorder: recorder,
	}
}

// Render returns source as HTML. When entry is non-nil the output is stored
// under a content hash so repeated renders in the same language are free.
// Raw HTML in source, including metadata comments, is omitted.
func (r *Renderer) Render(entry *cache.Entry, source string) (template.HTML, error) {
	if source == "" {
		return "", nil
	}

	var key string
	if entry != nil {
		key = cacheKey(source)
		if v, ok := entry.Get(key); ok {
			if out, ok := v.(template.HTML); ok {
				r.recorder.IncRenderCache(true)
				return out, nil
			}
		}
		r.recorder.IncRenderCache(false)
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	// goldmark escapes untrusted input unless html.WithUnsafe is set.
	out := template.HTML(buf.String()) //nolint:gosec // goldmark output is escaped
	if entry != nil {
		entry.Set(key, out)
	}
	return out, nil
}

func cacheKey(source string) string {
	sum := sha256.Sum256([]byte(source))
	return keyPrefix + hex.EncodeToString(sum[:])
}
