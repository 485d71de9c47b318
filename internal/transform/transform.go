// Package transform drives the thread-table pipeline: parse, rename the
// catalog, expand every Designation, prune empty containers, serialize.
package transform

import (
	"time"

	"git.home.luguber.info/inful/threadtable/internal/metrics"
	"git.home.luguber.info/inful/threadtable/internal/patcher"
	"git.home.luguber.info/inful/threadtable/internal/pruner"
	"git.home.luguber.info/inful/threadtable/internal/threaddoc"
)

// Report summarises one transformation.
type Report struct {
	Output       string
	Sizes        int
	Designations int
	Generated    int
	Dropped      int
	Pruned       pruner.Stats
	Warnings     int
	Duration     time.Duration
}

type runner struct {
	observer Observer
	recorder metrics.Recorder
}

// Transform turns a thread document into its offset-expanded form. It is a
// pure function of its inputs and safe to call concurrently on independent
// documents.
func Transform(text string, opts Options, fns ...Option) (string, error) {
	rep, err := Run(text, opts, fns...)
	if err != nil {
		return "", err
	}
	return rep.Output, nil
}

// Run is Transform with a Report. Either the whole document is transformed or
// an error is returned; there is no partial output.
func Run(text string, opts Options, fns ...Option) (*Report, error) {
	r := &runner{observer: NopObserver{}, recorder: metrics.NoopRecorder{}}
	for _, fn := range fns {
		fn(r)
	}

	start := time.Now()
	rep, err := r.run(text, opts)
	r.recorder.ObserveTransformDuration(time.Since(start))
	if err != nil {
		r.recorder.IncTransformOutcome(metrics.ResultFailed)
		return nil, err
	}
	rep.Duration = time.Since(start)
	r.recorder.IncTransformOutcome(metrics.ResultSuccess)
	return rep, nil
}

func (r *runner) run(text string, opts Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	stage := time.Now()
	doc, err := threaddoc.Parse(text)
	r.stageDone(metrics.StageParse, stage)
	if err != nil {
		return nil, err
	}

	rep := &Report{}
	tt := doc.ThreadType()
	tt.SetName(opts.Name)

	stage = time.Now()
	p := patcher.New(opts.Options)
	for i, size := range tt.Sizes() {
		sizeValue := size.Size()
		designations := size.Designations()
		r.observer.SizeVisited(i, sizeValue, len(designations))
		rep.Sizes++
		for _, d := range designations {
			res := p.Patch(d, sizeValue)
			r.observer.DesignationPatched(sizeValue, d, res)
			rep.Designations++
			rep.Generated += res.Generated
			rep.Dropped += res.Dropped()
			rep.Warnings += len(res.Warnings)
			for gender, n := range res.GeneratedByGender {
				r.recorder.AddThreadsGenerated(gender, n)
			}
			r.recorder.AddThreadsDropped(res.Dropped())
		}
	}
	r.stageDone(metrics.StagePatch, stage)

	stage = time.Now()
	rep.Pruned = pruner.Prune(tt)
	r.observer.Pruned(rep.Pruned)
	r.recorder.AddPruned(metrics.KindDesignation, rep.Pruned.Designations)
	r.recorder.AddPruned(metrics.KindSize, rep.Pruned.Sizes)
	r.stageDone(metrics.StagePrune, stage)

	stage = time.Now()
	out, err := doc.String()
	r.stageDone(metrics.StageSerialize, stage)
	if err != nil {
		return nil, err
	}
	rep.Output = out
	return rep, nil
}

func (r *runner) stageDone(stage string, start time.Time) {
	d := time.Since(start)
	r.recorder.ObserveStageDuration(stage, d)
	r.observer.StageFinished(stage, d)
}
