package fetchguard

import (
	"sync"
	"time"
)

// DefaultDebounce is the settle window applied to reactive inputs such as
// format-detection examples.
const DefaultDebounce = 800 * time.Millisecond

// Debouncer delays work until input settles, and invalidates results of
// superseded runs. Each Trigger supersedes the previous one: the callback
// receives a stale func that reports whether a newer trigger has fired,
// so late responses can be discarded instead of trusted by arrival order.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// NewDebouncer creates a debouncer with the given settle delay. A
// non-positive delay falls back to DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the settle delay, cancelling any previously
// scheduled run. fn runs on a timer goroutine; it must check stale()
// before committing results that arrived over the network.
func (d *Debouncer) Trigger(fn func(stale func() bool)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, func() {
		fn(func() bool {
			d.mu.Lock()
			defer d.mu.Unlock()
			return gen != d.gen
		})
	})
}

// Cancel stops any pending run and invalidates in-flight ones.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
