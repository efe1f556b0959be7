// Package metrics provides observability hooks for document resolution.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default so callers never need nil checks; PrometheusRecorder is swapped
// in when metrics are enabled in configuration:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	orch := resolve.New(loader, selector, nav, resolve.WithRecorder(rec))
//	mux.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
