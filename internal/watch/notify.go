package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/threadtable/internal/logfields"
	"git.home.luguber.info/inful/threadtable/internal/util/sets"
)

// notifySource watches the parent directories of the target files, which
// keeps working when editors replace a file by rename.
type notifySource struct {
	watcher *fsnotify.Watcher
	targets sets.Set[string]
	logger  *slog.Logger
	done    chan struct{}
}

func newNotifySource(paths []string, logger *slog.Logger) (*notifySource, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	s := &notifySource{
		watcher: fw,
		targets: sets.New[string](),
		logger:  logger,
		done:    make(chan struct{}),
	}
	dirs := sets.New[string]()
	for _, p := range paths {
		s.targets.Add(filepath.Clean(p))
		dir := filepath.Dir(p)
		if !dirs.Add(dir) {
			continue
		}
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}
	return s, nil
}

func (s *notifySource) start(ctx context.Context, changed func(path, trigger string)) error {
	go s.loop(ctx, changed)
	return nil
}

func (s *notifySource) loop(ctx context.Context, changed func(path, trigger string)) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			name := filepath.Clean(event.Name)
			if !s.targets.Has(name) {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				changed(name, TriggerNotify)
			case event.Has(fsnotify.Remove):
				s.logger.Warn("Watched file removed", logfields.Path(name))
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (s *notifySource) stop() error {
	err := s.watcher.Close()
	<-s.done
	return err
}
