package watch

import (
	"sync"
	"time"
)

// debouncer delays fire until no trigger has arrived for delay. The trigger
// name passed to fire is the most recent one. stop waits for a fire that is
// already running.
type debouncer struct {
	mu      sync.Mutex
	running sync.WaitGroup
	delay   time.Duration
	timer   *time.Timer
	last    string
	stopped bool
	fire    func(trigger string)
}

func newDebouncer(delay time.Duration, fire func(trigger string)) *debouncer {
	return &debouncer{delay: delay, fire: fire}
}

func (d *debouncer) trigger(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.last = name
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.expire)
}

func (d *debouncer) expire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	name := d.last
	d.timer = nil
	d.running.Add(1)
	d.mu.Unlock()

	defer d.running.Done()
	d.fire(name)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.running.Wait()
}
