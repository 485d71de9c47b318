// Package metrics provides transformation metrics for threadtable.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default so callers never need nil checks; PrometheusRecorder is wired in
// when metrics are configured:
//
//	recorder := metrics.NewPrometheusRecorder(prometheus.NewRegistry())
//	out, err := transform.Transform(in, opts, transform.WithRecorder(recorder))
//
// One-shot CLI runs export the registry with WriteTextfile for the
// node_exporter textfile collector; watch mode serves HTTPHandler on /metrics.
package metrics
