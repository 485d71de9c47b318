package transform

import (
	"log/slog"
	"strings"

	tterrors "git.home.luguber.info/inful/threadtable/internal/errors"
	"git.home.luguber.info/inful/threadtable/internal/metrics"
	"git.home.luguber.info/inful/threadtable/internal/patcher"
)

// Options is the full transformation configuration.
type Options struct {
	// Name overwrites the catalog Name and CustomName.
	Name string

	patcher.Options
}

// Validate fails fast, before any mutation, on options the pipeline cannot use.
func (o Options) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return tterrors.ConfigRequired("name")
	}
	return o.Options.Validate()
}

// Option customises a single Run.
type Option func(*runner)

// WithObserver routes pipeline diagnostics to o.
func WithObserver(o Observer) Option {
	return func(r *runner) {
		if o != nil {
			r.observer = o
		}
	}
}

// WithLogger is shorthand for WithObserver(NewLogObserver(l)).
func WithLogger(l *slog.Logger) Option {
	return WithObserver(NewLogObserver(l))
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *runner) {
		if rec != nil {
			r.recorder = rec
		}
	}
}
