package metrics

import "time"

// ResultLabel enumerates check run outcomes for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success" // No errors or warnings
	ResultWarning ResultLabel = "warning" // Warnings only
	ResultFailed  ResultLabel = "failed"  // Error-level issues, or the check could not run
	ResultSkipped ResultLabel = "skipped" // Inputs unchanged since the previous run
)

// Recorder defines observability hooks for check runs. Implementations may forward to
// Prometheus or elsewhere.
type Recorder interface {
	ObserveCheckDuration(d time.Duration)
	IncCheckOutcome(result ResultLabel)
	SetIssues(severity string, n int)
	SetDocuments(n int)
	IncTrigger(source string) // source: fsnotify|schedule|startup
	IncPublishResult(success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveCheckDuration(time.Duration) {}
func (NoopRecorder) IncCheckOutcome(ResultLabel)        {}
func (NoopRecorder) SetIssues(string, int)              {}
func (NoopRecorder) SetDocuments(int)                   {}
func (NoopRecorder) IncTrigger(string)                  {}
func (NoopRecorder) IncPublishResult(bool)              {}
