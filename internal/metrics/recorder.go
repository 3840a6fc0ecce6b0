package metrics

import "time"

// ResultLabel enumerates phase and generator result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// BuildOutcomeLabel is the final status of a build.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess  BuildOutcomeLabel = "success"
	BuildOutcomeFailed   BuildOutcomeLabel = "failed"
	BuildOutcomeCanceled BuildOutcomeLabel = "canceled"
)

// Recorder defines observability hooks for builds, their two phases and the
// generators run in each phase.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	ObservePhaseDuration(phase string, d time.Duration)
	ObserveGeneratorDuration(generator, phase string, d time.Duration)
	IncGeneratorResult(generator string, result ResultLabel)
	SetFilesWritten(n int)
	IncRebuildTrigger(tree string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration)                     {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)                      {}
func (NoopRecorder) ObservePhaseDuration(string, time.Duration)             {}
func (NoopRecorder) ObserveGeneratorDuration(string, string, time.Duration) {}
func (NoopRecorder) IncGeneratorResult(string, ResultLabel)                 {}
func (NoopRecorder) SetFilesWritten(int)                                    {}
func (NoopRecorder) IncRebuildTrigger(string)                               {}
