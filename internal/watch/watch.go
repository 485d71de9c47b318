// Package watch re-runs a regeneration whenever one of a set of files changes.
//
// Changes are detected with filesystem notifications, or by polling file
// metadata on a gocron schedule when a poll interval is configured. Bursts of
// changes are debounced into a single regeneration, and regenerations never
// overlap.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	tterrors "git.home.luguber.info/inful/threadtable/internal/errors"
	"git.home.luguber.info/inful/threadtable/internal/logfields"
	"git.home.luguber.info/inful/threadtable/internal/metrics"
	"git.home.luguber.info/inful/threadtable/internal/util/sets"
)

// Triggers reported to the regeneration callback and the metrics recorder.
const (
	TriggerStartup = "startup"
	TriggerNotify  = "fsnotify"
	TriggerPoll    = "poll"
)

// RegenerateFunc performs one regeneration. Errors are logged and watching continues.
type RegenerateFunc func(ctx context.Context, trigger string) error

// Options configures a Watcher.
type Options struct {
	// Paths are the files whose changes trigger a regeneration.
	Paths []string
	// Debounce collapses changes arriving within this window.
	Debounce time.Duration
	// PollInterval > 0 selects polling instead of filesystem notifications.
	PollInterval time.Duration

	Recorder metrics.Recorder
	Logger   *slog.Logger
}

// source delivers change notifications until stopped.
type source interface {
	start(ctx context.Context, changed func(path, trigger string)) error
	stop() error
}

// Watcher coordinates a change source, a debouncer and the regeneration callback.
type Watcher struct {
	paths    []string
	debounce time.Duration
	poll     time.Duration
	recorder metrics.Recorder
	logger   *slog.Logger
	fn       RegenerateFunc

	runMu sync.Mutex
}

// New validates options and returns a Watcher that calls fn on changes.
func New(opts Options, fn RegenerateFunc) (*Watcher, error) {
	if fn == nil {
		return nil, tterrors.InternalError("watch: regenerate callback is nil", nil)
	}
	if len(opts.Paths) == 0 {
		return nil, tterrors.ValidationFailed("watch.paths", "no files to watch")
	}

	paths := make([]string, 0, len(opts.Paths))
	seen := sets.New[string]()
	for _, p := range opts.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, tterrors.Wrap(err, tterrors.CategoryFileSystem, tterrors.SeverityFatal, "failed to resolve watch path").
				WithContext("path", p)
		}
		if seen.Add(abs) {
			paths = append(paths, abs)
		}
	}

	w := &Watcher{
		paths:    paths,
		debounce: opts.Debounce,
		poll:     opts.PollInterval,
		recorder: opts.Recorder,
		logger:   opts.Logger,
		fn:       fn,
	}
	if w.recorder == nil {
		w.recorder = metrics.NoopRecorder{}
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	return w, nil
}

// Paths returns the absolute paths being watched.
func (w *Watcher) Paths() []string {
	return append([]string(nil), w.paths...)
}

// Regenerate runs the callback immediately, waiting for any regeneration in
// progress to finish first.
func (w *Watcher) Regenerate(ctx context.Context, trigger string) error {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	w.recorder.IncRegeneration(trigger)
	start := time.Now()
	err := w.fn(ctx, trigger)
	if err != nil {
		w.logger.Error("Regeneration failed", logfields.Trigger(trigger), logfields.Error(err))
		return err
	}
	w.logger.Info("Regeneration complete",
		logfields.Trigger(trigger),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return nil
}

// Run watches until ctx is cancelled. It returns nil on cancellation and an
// error only when the change source cannot be started.
func (w *Watcher) Run(ctx context.Context) error {
	src, err := w.newSource()
	if err != nil {
		return err
	}

	deb := newDebouncer(w.debounce, func(trigger string) {
		if ctx.Err() != nil {
			return
		}
		_ = w.Regenerate(ctx, trigger)
	})

	if err := src.start(ctx, func(path, trigger string) {
		w.logger.Debug("Change detected", logfields.Path(path), logfields.Trigger(trigger))
		deb.trigger(trigger)
	}); err != nil {
		_ = src.stop()
		return err
	}

	w.logger.Info("Watching for changes",
		slog.Any("paths", w.paths),
		slog.Duration("debounce", w.debounce),
		slog.Duration("poll_interval", w.poll))

	<-ctx.Done()

	deb.stop()
	if err := src.stop(); err != nil {
		w.logger.Warn("Error stopping change source", logfields.Error(err))
	}
	w.logger.Info("Stopped watching")
	return nil
}

func (w *Watcher) newSource() (source, error) {
	if w.poll > 0 {
		return newPollSource(w.paths, w.poll, w.logger)
	}
	src, err := newNotifySource(w.paths, w.logger)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	return src, nil
}
