package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/threadtable/internal/logfields"
)

// fileState is the metadata compared between polls.
type fileState struct {
	exists  bool
	size    int64
	modTime time.Time
}

func (f fileState) same(o fileState) bool {
	return f.exists == o.exists && f.size == o.size && f.modTime.Equal(o.modTime)
}

func statFile(path string) fileState {
	info, err := os.Stat(path)
	if err != nil {
		return fileState{}
	}
	return fileState{exists: true, size: info.Size(), modTime: info.ModTime()}
}

// pollSource compares file metadata on a gocron duration job. It is the
// fallback for filesystems without change notifications (network mounts,
// some container volumes).
type pollSource struct {
	scheduler gocron.Scheduler
	interval  time.Duration
	paths     []string
	logger    *slog.Logger

	mu    sync.Mutex
	state map[string]fileState
}

func newPollSource(paths []string, interval time.Duration, logger *slog.Logger) (*pollSource, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	state := make(map[string]fileState, len(paths))
	for _, p := range paths {
		state[p] = statFile(p)
	}
	return &pollSource{
		scheduler: s,
		interval:  interval,
		paths:     paths,
		logger:    logger,
		state:     state,
	}, nil
}

func (p *pollSource) start(_ context.Context, changed func(path, trigger string)) error {
	_, err := p.scheduler.NewJob(
		gocron.DurationJob(p.interval),
		gocron.NewTask(p.check, changed),
		gocron.WithName("threadtable-poll"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create poll job: %w", err)
	}
	p.scheduler.Start()
	return nil
}

// check reports every path whose metadata differs from the previous poll.
func (p *pollSource) check(changed func(path, trigger string)) {
	p.mu.Lock()
	var dirty []string
	for _, path := range p.paths {
		cur := statFile(path)
		prev := p.state[path]
		if cur.same(prev) {
			continue
		}
		p.state[path] = cur
		if !cur.exists {
			p.logger.Warn("Watched file removed", logfields.Path(path))
			continue
		}
		dirty = append(dirty, path)
	}
	p.mu.Unlock()

	for _, path := range dirty {
		changed(path, TriggerPoll)
	}
}

func (p *pollSource) stop() error {
	return p.scheduler.Shutdown()
}
