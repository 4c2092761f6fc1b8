package fs

import (
	"sync"
	"time"

	"github.com/aretw0/notesrv/pkg/core"
)

// debouncer coalesces bursts of events for the same note into one.
// The window starts at the first event; later events only adjust its type.
type debouncer struct {
	delay   time.Duration
	mu      sync.Mutex
	pending map[string]*pendingEvent
	wg      sync.WaitGroup
	stopped bool
}

type pendingEvent struct {
	event core.Event
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		pending: make(map[string]*pendingEvent),
	}
}

func (d *debouncer) add(e core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if p, ok := d.pending[e.Name]; ok {
		// A create followed by writes is still a create.
		if !(p.event.Type == core.EventCreate && e.Type == core.EventModify) {
			p.event.Type = e.Type
		}
		p.event.Timestamp = e.Timestamp
		return
	}

	p := &pendingEvent{event: e}
	d.pending[e.Name] = p
	d.wg.Add(1)
	p.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()

		d.mu.Lock()
		ev := p.event
		if d.pending[e.Name] == p {
			delete(d.pending, e.Name)
		}
		stopped := d.stopped
		d.mu.Unlock()

		if !stopped {
			fire(ev)
		}
	})
}

// stopAndWait drops pending events and waits up to timeout for running callbacks.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for name, p := range d.pending {
		if p.timer.Stop() {
			d.wg.Done()
		}
		delete(d.pending, name)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
