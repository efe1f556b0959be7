// Package navigate implements fallback navigation for failed resolutions.
//
// The HTTP server creates a Redirect per request; HTTPNavigator marks it and
// the handler turns the mark into a redirect to the not-found page. Other
// navigators (event publishing, persistence) are combined with Multi.
package navigate

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	derrors "git.home.luguber.info/inful/docresolve/internal/errors"
	"git.home.luguber.info/inful/docresolve/internal/resolve"
)

type redirectKey struct{}

// Redirect is the per-request navigation slot.
type Redirect struct {
	mu     sync.Mutex
	target string
	miss   resolve.Miss
	set    bool
}

// WithRedirect attaches a fresh Redirect to ctx.
func WithRedirect(ctx context.Context) (context.Context, *Redirect) {
	r := &Redirect{}
	return context.WithValue(ctx, redirectKey{}, r), r
}

// RedirectFrom returns the Redirect attached to ctx.
func RedirectFrom(ctx context.Context) (*Redirect, bool) {
	r, ok := ctx.Value(redirectKey{}).(*Redirect)
	return r, ok
}

// Target returns the requested navigation target, if any.
func (r *Redirect) Target() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target, r.set
}

// Miss returns the failure that caused the navigation.
func (r *Redirect) Miss() resolve.Miss {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.miss
}

func (r *Redirect) request(target string, miss resolve.Miss) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target, r.miss, r.set = target, miss, true
}

// HTTPNavigator marks the request's Redirect with the not-found path.
type HTTPNavigator struct {
	notFoundPath string
}

// NewHTTPNavigator creates a navigator targeting notFoundPath.
func NewHTTPNavigator(notFoundPath string) *HTTPNavigator {
	return &HTTPNavigator{notFoundPath: notFoundPath}
}

// NavigateToNotFound implements resolve.FallbackNavigator. Requests without
// a Redirect slot are ignored.
func (n *HTTPNavigator) NavigateToNotFound(ctx context.Context, miss resolve.Miss) {
	if r, ok := RedirectFrom(ctx); ok {
		r.request(n.notFoundPath, miss)
	}
}

// Multi notifies every navigator in order.
type Multi []resolve.FallbackNavigator

// NavigateToNotFound implements resolve.FallbackNavigator.
func (m Multi) NavigateToNotFound(ctx context.Context, miss resolve.Miss) {
	for _, n := range m {
		if n != nil {
			n.NavigateToNotFound(ctx, miss)
		}
	}
}

// Recorder keeps misses in memory. The CLI uses it to report failures.
type Recorder struct {
	mu     sync.Mutex
	misses []resolve.Miss
}

// NavigateToNotFound implements resolve.FallbackNavigator.
func (r *Recorder) NavigateToNotFound(_ context.Context, miss resolve.Miss) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.misses = append(r.misses, miss)
}

// Misses returns a copy of the recorded misses.
func (r *Recorder) Misses() []resolve.Miss {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]resolve.Miss(nil), r.misses...)
}

// MissEvent is the serializable form of a miss shared by publishers and stores.
type MissEvent struct {
	ID         string    `json:"id"`
	Lang       string    `json:"lang"`
	Root       string    `json:"root"`
	Path       string    `json:"path"`
	Filename   string    `json:"filename"`
	Stage      string    `json:"stage"`
	Category   string    `json:"category"`
	Error      string    `json:"error,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewMissEvent stamps miss with a fresh id and the current time.
func NewMissEvent(miss resolve.Miss) MissEvent {
	ev := MissEvent{
		ID:         uuid.NewString(),
		Lang:       miss.Lang,
		Root:       miss.Root,
		Path:       miss.Path,
		Filename:   miss.Filename,
		Stage:      miss.Stage,
		Category:   string(derrors.GetCategory(miss.Err)),
		OccurredAt: time.Now().UTC(),
	}
	if miss.Err != nil {
		ev.Error = miss.Err.Error()
	}
	return ev
}
