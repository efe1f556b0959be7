package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	loadDuration *prom.HistogramVec
	outcomes     *prom.CounterVec
	cacheResets  prom.Counter
	renderCache  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		loadDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docresolve",
			Name:      "load_duration_seconds",
			Help:      "Duration of document loads by stage and result",
			Buckets:   prom.DefBuckets,
		}, []string{"stage", "result"}),
		outcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docresolve",
			Name:      "resolve_outcomes_total",
			Help:      "Resolutions by final outcome",
		}, []string{"outcome"}),
		cacheResets: prom.NewCounter(prom.CounterOpts{
			Namespace: "docresolve",
			Name:      "cache_resets_total",
			Help:      "Content cache replacements caused by language changes",
		}),
		renderCache: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docresolve",
			Name:      "render_cache_total",
			Help:      "Render cache lookups by result",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.loadDuration, pr.outcomes, pr.cacheResets, pr.renderCache)
	return pr
}

func (p *PrometheusRecorder) ObserveLoadDuration(stage string, d time.Duration, result ResultLabel) {
	if p == nil || p.loadDuration == nil {
		return
	}
	p.loadDuration.WithLabelValues(stage, string(result)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncResolveOutcome(outcome OutcomeLabel) {
	if p == nil || p.outcomes == nil {
		return
	}
	p.outcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncCacheReset() {
	if p == nil || p.cacheResets == nil {
		return
	}
	p.cacheResets.Inc()
}

func (p *PrometheusRecorder) IncRenderCache(hit bool) {
	if p == nil || p.renderCache == nil {
		return
	}
	res := "miss"
	if hit {
		res = "hit"
	}
	p.renderCache.WithLabelValues(res).Inc()
}
