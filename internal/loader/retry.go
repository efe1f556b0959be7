package loader

import (
	"context"
	"log/slog"
	"time"

	derrors "git.home.luguber.info/inful/docresolve/internal/errors"
	"git.home.luguber.info/inful/docresolve/internal/logfields"
	"git.home.luguber.info/inful/docresolve/internal/retry"
)

// Loader is the method set shared by every loader in this package.
type Loader interface {
	Load(ctx context.Context, root, lang, filename string) (string, error)
}

// RetryingLoader retries retryable (transport) failures of the wrapped loader.
// NotFound is returned immediately.
type RetryingLoader struct {
	inner  Loader
	policy retry.Policy
}

// WithRetry wraps inner with policy. A policy with zero MaxRetries returns inner unchanged.
func WithRetry(inner Loader, policy retry.Policy) Loader {
	if policy.MaxRetries <= 0 {
		return inner
	}
	return &RetryingLoader{inner: inner, policy: policy}
}

// Load implements Loader.
func (l *RetryingLoader) Load(ctx context.Context, root, lang, filename string) (string, error) {
	for attempt := 1; ; attempt++ {
		text, err := l.inner.Load(ctx, root, lang, filename)
		if err == nil || !derrors.IsRetryable(err) || attempt > l.policy.MaxRetries {
			return text, err
		}

		delay := l.policy.Delay(attempt)
		slog.Debug("Retrying document load",
			logfields.Root(root),
			logfields.Lang(lang),
			logfields.Filename(filename),
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			logfields.Error(err))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", err
		case <-timer.C:
		}
	}
}
