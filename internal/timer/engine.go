// Package timer implements the drift-corrected pose countdown engine.
//
// The engine samples a monotonic clock on a short fixed interval and
// decrements the remaining time only by whole elapsed seconds, so the
// countdown stays accurate under scheduling jitter. Progress is
// published on two buffered channels; consumers are expected to drain
// them promptly.
package timer

import (
	"sync"
	"time"
)

// DefaultInterval is the sampling period. It is deliberately much
// shorter than the one-second countdown granularity.
const DefaultInterval = 200 * time.Millisecond

// Engine is a countdown clock with start/stop semantics. A single
// Engine is reused across poses; Start while running restarts the
// countdown. The zero value is not usable, call New.
type Engine struct {
	interval time.Duration
	now      func() time.Time

	mu        sync.Mutex
	running   bool
	remaining int
	last      time.Time
	cancel    chan struct{}

	ticks chan int
	done  chan struct{}
}

// Option configures an Engine.
type Option func(*Engine)

// WithInterval overrides the sampling interval.
func WithInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates a stopped engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		interval: DefaultInterval,
		now:      time.Now,
		ticks:    make(chan int, 64),
		done:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ticks returns the stream of remaining-seconds values. Start emits
// the full duration immediately; each whole-second decrement emits the
// decremented value, ending with 0.
func (e *Engine) Ticks() <-chan int { return e.ticks }

// Done signals completion. Exactly one value is sent per Start that
// runs to zero; a stopped countdown never completes.
func (e *Engine) Done() <-chan struct{} { return e.done }

// Running reports whether a countdown is in progress.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Start begins a countdown of the given number of seconds. Negative
// durations are clamped to zero and complete on the first sample. If a
// countdown is already running it is stopped first; the two never
// overlap.
func (e *Engine) Start(seconds int) {
	if seconds < 0 {
		seconds = 0
	}

	e.mu.Lock()
	if e.running {
		close(e.cancel)
	}
	e.remaining = seconds
	e.running = true
	e.last = e.now()
	e.cancel = make(chan struct{})
	cancel := e.cancel
	e.mu.Unlock()

	e.ticks <- seconds
	go e.run(cancel)
}

// Stop halts the countdown. No further ticks or completion events are
// emitted until the next Start. Safe to call when already stopped.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.running = false
	close(e.cancel)
}

func (e *Engine) run(cancel chan struct{}) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			if e.sample(cancel) {
				return
			}
		}
	}
}

// sample advances the countdown by however many whole seconds elapsed
// since the last advance. The last-sample timestamp only moves when at
// least one whole second has passed, so fractional elapsed time
// carries forward. Returns true when the countdown is over.
func (e *Engine) sample(cancel chan struct{}) bool {
	e.mu.Lock()
	if !e.running || cancel != e.cancel {
		e.mu.Unlock()
		return true
	}

	now := e.now()
	dt := int(now.Sub(e.last) / time.Second)
	if dt <= 0 {
		e.mu.Unlock()
		return false
	}
	e.last = now

	prev := e.remaining
	e.remaining -= dt
	if e.remaining < 0 {
		e.remaining = 0
	}
	rem := e.remaining
	finished := rem == 0
	if finished {
		e.running = false
	}
	e.mu.Unlock()

	if prev > 0 {
		e.ticks <- rem
	}
	if finished {
		e.done <- struct{}{}
		return true
	}
	return false
}
