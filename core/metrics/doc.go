// Package metrics defines the sink interface used to record simulation runs.
// PromSink in infra/metrics exposes them to Prometheus and sinks can be
// combined with NewMultiSink.
package metrics
