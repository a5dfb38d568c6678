package client

import (
	"sync"
	"time"
)

// DefaultDebounce matches the dashboard's search input delay.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces a burst of inputs into one trailing callback carrying
// the final value. Typical use: search-as-you-type against the list
// endpoints.
type Debouncer struct {
	d  time.Duration
	fn func(string)

	mu    sync.Mutex
	timer *time.Timer
	last  string
}

func NewDebouncer(d time.Duration, fn func(string)) *Debouncer {
	if d <= 0 {
		d = DefaultDebounce
	}
	return &Debouncer{d: d, fn: fn}
}

// Input records a value and (re)arms the trailing timer. Only the value
// present when the window closes reaches the callback.
func (b *Debouncer) Input(v string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.last = v
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.d, b.fire)
}

// Flush fires the pending callback immediately, if any.
func (b *Debouncer) Flush() {
	b.mu.Lock()
	if b.timer == nil || !b.timer.Stop() {
		b.mu.Unlock()
		return
	}
	b.timer = nil
	v := b.last
	b.mu.Unlock()

	b.fn(v)
}

// Stop drops any pending callback.
func (b *Debouncer) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *Debouncer) fire() {
	b.mu.Lock()
	b.timer = nil
	v := b.last
	b.mu.Unlock()

	b.fn(v)
}
