package lang

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSelector() *Selector {
	return NewSelector([]string{"en", "de", "fr"}, "en")
}

func TestSelector_ResolveLanguageFromContext(t *testing.T) {
	s := newTestSelector()

	require.Equal(t, "en", s.ResolveLanguage(context.Background()))
	require.Equal(t, "de", s.ResolveLanguage(WithLanguage(context.Background(), "de")))
	require.Equal(t, "en", s.DefaultLanguage())
}

func TestSelector_Match(t *testing.T) {
	s := newTestSelector()

	l, ok := s.Match("de-AT")
	require.True(t, ok)
	require.Equal(t, "de", l)

	_, ok = s.Match("ja")
	require.False(t, ok)

	_, ok = s.Match("")
	require.False(t, ok)
}

func TestSelector_FromRequestPrecedence(t *testing.T) {
	s := newTestSelector()

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		expect string
	}{
		{"default", func(*http.Request) {}, "en"},
		{"accept-language", func(r *http.Request) { r.Header.Set("Accept-Language", "fr-CH, de;q=0.5") }, "fr"},
		{"language header beats accept", func(r *http.Request) {
			r.Header.Set("Accept-Language", "fr")
			r.Header.Set("Language", "de")
		}, "de"},
		{"cookie beats everything", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "lang", Value: "fr"})
			r.Header.Set("Language", "de")
		}, "fr"},
		{"unsupported cookie falls through", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "lang", Value: "ja"})
			r.Header.Set("Accept-Language", "de")
		}, "de"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/docs/guide", nil)
			tc.setup(r)
			require.Equal(t, tc.expect, s.FromRequest(r))
		})
	}
}

func TestSelector_QueryParam(t *testing.T) {
	s := newTestSelector()
	r := httptest.NewRequest(http.MethodGet, "/docs/guide?lang=de", nil)
	require.Equal(t, "de", s.FromRequest(r))
}

func TestSelector_Middleware(t *testing.T) {
	s := newTestSelector()
	var got string
	h := s.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = s.ResolveLanguage(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Language", "de-DE")
	h.ServeHTTP(httptest.NewRecorder(), r)
	require.Equal(t, "de", got)
}

func TestNewSelector_DefaultAlwaysSupported(t *testing.T) {
	s := NewSelector([]string{"de", "de", "not a tag!"}, "en")
	require.Equal(t, []string{"en", "de"}, s.Supported())
}
