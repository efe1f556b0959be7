package metrics

import "time"

// ResultLabel enumerates load result categories for counters.
type ResultLabel string

const (
	ResultSuccess   ResultLabel = "success"
	ResultNotFound  ResultLabel = "not_found"
	ResultTransport ResultLabel = "transport"
)

// OutcomeLabel enumerates resolution outcomes.
type OutcomeLabel string

const (
	OutcomeResolved OutcomeLabel = "resolved"
	OutcomeFallback OutcomeLabel = "fallback"
	OutcomeInvalid  OutcomeLabel = "invalid"
)

// Recorder defines observability hooks for resolution metrics.
type Recorder interface {
	ObserveLoadDuration(stage string, d time.Duration, result ResultLabel)
	IncResolveOutcome(outcome OutcomeLabel)
	IncCacheReset()
	IncRenderCache(hit bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveLoadDuration(string, time.Duration, ResultLabel) {}
func (NoopRecorder) IncResolveOutcome(OutcomeLabel)                        {}
func (NoopRecorder) IncCacheReset()                                        {}
func (NoopRecorder) IncRenderCache(bool)                                   {}
