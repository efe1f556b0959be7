// Package lang decides which content language a request is served in.
//
// Selection order: cookie, query parameter, Language header, Accept-Language
// header, configured default. Candidates are matched against the supported
// languages with golang.org/x/text/language, so "de-AT" resolves to "de".
package lang

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// Defaults for request inspection.
const (
	DefaultCookieName = "lang"
	DefaultQueryParam = "lang"
	languageHeader    = "Language"
)

type ctxKey struct{}

// WithLanguage stores the resolved language in ctx.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKey{}, lang)
}

// FromContext returns the language stored by WithLanguage.
func FromContext(ctx context.Context) (string, bool) {
	l, ok := ctx.Value(ctxKey{}).(string)
	return l, ok && l != ""
}

// Selector negotiates languages against a fixed supported set.
type Selector struct {
	supported  []string
	tags       []language.Tag
	matcher    language.Matcher
	def        string
	cookieName string
	queryParam string
}

// Option configures a Selector.
type Option func(*Selector)

// WithCookieName sets the cookie checked for an explicit choice.
func WithCookieName(name string) Option {
	return func(s *Selector) {
		if name != "" {
			s.cookieName = name
		}
	}
}

// WithQueryParam sets the query parameter checked for an explicit choice.
func WithQueryParam(name string) Option {
	return func(s *Selector) {
		if name != "" {
			s.queryParam = name
		}
	}
}

// NewSelector creates a Selector. The default language is always supported.
func NewSelector(supported []string, def string, opts ...Option) *Selector {
	s := &Selector{def: def, cookieName: DefaultCookieName, queryParam: DefaultQueryParam}
	seen := map[string]bool{}
	// The matcher falls back to its first tag, so the default goes first.
	for _, code := range append([]string{def}, supported...) {
		code = strings.TrimSpace(code)
		if code == "" || seen[code] {
			continue
		}
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		seen[code] = true
		s.supported = append(s.supported, code)
		s.tags = append(s.tags, tag)
	}
	s.matcher = language.NewMatcher(s.tags)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Supported lists the configured language codes, default first.
func (s *Selector) Supported() []string { return append([]string(nil), s.supported...) }

// DefaultLanguage returns the configured fallback language.
func (s *Selector) DefaultLanguage() string { return s.def }

// ResolveLanguage returns the language stored in ctx by Middleware, or the default.
func (s *Selector) ResolveLanguage(ctx context.Context) string {
	if l, ok := FromContext(ctx); ok {
		return l
	}
	return s.def
}

// Match maps an arbitrary language code to a supported one. It reports false
// when the code does not correspond to any supported language.
func (s *Selector) Match(code string) (string, bool) {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return "", false
	}
	_, idx, conf := s.matcher.Match(tag)
	if conf == language.No {
		return "", false
	}
	return s.supported[idx], true
}

// FromRequest inspects r in priority order and returns a supported language.
func (s *Selector) FromRequest(r *http.Request) string {
	if s.cookieName != "" {
		if c, err := r.Cookie(s.cookieName); err == nil {
			if l, ok := s.Match(c.Value); ok {
				return l
			}
		}
	}
	if s.queryParam != "" {
		if l, ok := s.Match(r.URL.Query().Get(s.queryParam)); ok {
			return l
		}
	}
	if l, ok := s.Match(r.Header.Get(languageHeader)); ok {
		return l
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		tags, _, err := language.ParseAcceptLanguage(accept)
		if err == nil && len(tags) > 0 {
			_, idx, conf := s.matcher.Match(tags...)
			if conf != language.No {
				return s.supported[idx]
			}
		}
	}
	return s.def
}

// Middleware stores the negotiated language in the request context.
func (s *Selector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithLanguage(r.Context(), s.FromRequest(r))))
	})
}
