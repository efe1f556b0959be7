package resolve

import (
	"context"
	"encoding/json"

	"git.home.luguber.info/inful/docresolve/internal/route"
)

// DefaultRoot is the content root used when a request names none.
const DefaultRoot = "assets/docs"

// Load stages reported in metrics, logs and misses.
const (
	StagePrimary = "primary"
	StageTOC     = "toc"
)

// LanguageSelector decides which language a request is served in.
type LanguageSelector interface {
	ResolveLanguage(ctx context.Context) string
	DefaultLanguage() string
}

// FileLoader fetches raw document text. Failures are NotFound or Transport
// categorized errors from internal/errors.
type FileLoader interface {
	Load(ctx context.Context, root, lang, filename string) (string, error)
}

// FallbackNavigator is told when a resolution failed. It is fire-and-forget.
type FallbackNavigator interface {
	NavigateToNotFound(ctx context.Context, miss Miss)
}

// Miss describes a failed resolution.
type Miss struct {
	Lang     string
	Root     string
	Path     string
	Filename string
	Stage    string
	Err      error
}

// Request is the input of one resolution.
type Request struct {
	// Segments are the route parameters in declaration order.
	Segments route.Segments
	// Root defaults to DefaultRoot.
	Root string
	// Lang overrides the LanguageSelector when set.
	Lang string
}

// Result is the resolved content. The zero Result is the degraded result
// returned after a fallback.
type Result struct {
	Body string
	Path string
	// TOC is set only when metadata named a companion document and it loaded.
	TOC *string
	// Lang is the language the result was resolved in.
	Lang string
	// Meta holds extracted metadata except the toc key.
	Meta map[string]string
}

// MarshalJSON flattens Meta into top-level attributes. Core fields win over
// metadata keys of the same name.
func (r Result) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(r.Meta)+3)
	for k, v := range r.Meta {
		out[k] = v
	}
	out["body"] = r.Body
	if r.Path != "" {
		out["path"] = r.Path
	} else {
		delete(out, "path")
	}
	if r.TOC != nil {
		out["toc"] = *r.TOC
	} else {
		delete(out, "toc")
	}
	return json.Marshal(out)
}
