// Package metrics provides observability hooks for navigation check runs.
//
// Components receive a Recorder through dependency injection and default to NoopRecorder,
// so call sites never nil-check:
//
//	type Runner struct {
//	    recorder metrics.Recorder
//	}
//
// The watch command swaps in a PrometheusRecorder and serves HTTPHandler on
// --metrics-addr when metrics are requested.
package metrics
