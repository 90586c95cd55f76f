// Package metrics provides observability hooks for build and stage metrics.
//
// The package implements the Null Object pattern: components receive a
// Recorder through dependency injection and default to NoopRecorder, so
// metrics collection requires no nil checks and has zero overhead when
// disabled. PrometheusRecorder is the real implementation, activated by
// injecting it where a Recorder is accepted.
package metrics
