package service

import (
	"sync"
	"time"
)

// DefaultSearchDebounce is the quiet period before a search input runs
const DefaultSearchDebounce = 300 * time.Millisecond

// Debouncer runs the last triggered func once no trigger arrived for delay.
// Each Trigger invalidates the pending token before arming a new timer.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	token uint64
}

// NewDebouncer creates a Debouncer; a non-positive delay uses DefaultSearchDebounce
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultSearchDebounce
	}
	return &Debouncer{delay: delay}
}

// Delay returns the quiet period
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger schedules fn, superseding any pending func
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.token++
	token := d.token
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if token != d.token {
			// superseded after the timer already fired
			d.mu.Unlock()
			return
		}
		d.mu.Unlock()

		fn()

		// stays pending until fn has returned
		d.mu.Lock()
		if token == d.token {
			d.timer = nil
		}
		d.mu.Unlock()
	})
}

// Stop cancels the pending func, if any
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.token++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a func is armed or still running
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
