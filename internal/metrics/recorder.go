package metrics

import "time"

// ResultLabel enumerates transformation result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// Pipeline stage names.
const (
	StageParse     = "parse"
	StagePatch     = "patch"
	StagePrune     = "prune"
	StageSerialize = "serialize"
)

// Pruned container kinds.
const (
	KindDesignation = "designation"
	KindSize        = "size"
)

// Recorder defines observability hooks for thread-table transformations.
// Implementations may forward to Prometheus; NoopRecorder is the default.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveTransformDuration(d time.Duration)
	IncTransformOutcome(result ResultLabel)
	AddThreadsGenerated(gender string, n int)
	AddThreadsDropped(n int)
	AddPruned(kind string, n int)
	IncRegeneration(trigger string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveTransformDuration(time.Duration)     {}
func (NoopRecorder) IncTransformOutcome(ResultLabel)            {}
func (NoopRecorder) AddThreadsGenerated(string, int)            {}
func (NoopRecorder) AddThreadsDropped(int)                      {}
func (NoopRecorder) AddPruned(string, int)                      {}
func (NoopRecorder) IncRegeneration(string)                     {}
