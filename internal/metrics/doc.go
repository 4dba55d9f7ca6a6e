// Package metrics records rendering, indexing and HTTP metrics.
//
// Components take a Recorder and default to NoopRecorder, so metrics stay
// optional: the server swaps in a PrometheusRecorder backed by a private
// registry and exposes it through Handler.
package metrics
