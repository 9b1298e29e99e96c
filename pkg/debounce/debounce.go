// Package debounce coalesces bursts of calls into a single delayed action.
//
// A [Debouncer] holds at most one pending action. Every [Debouncer.Trigger]
// replaces the pending action and restarts the delay, so a burst of N
// triggers runs only the last one, once, after the burst goes quiet:
//
//	d := debounce.New(500 * time.Millisecond)
//	for _, l := range ticks {
//	    snapshot := l.Clone()
//	    d.Trigger(func() { save(snapshot) })
//	}
//	d.Flush() // run the pending save now, e.g. before exit
//
// Timers come from a [Scheduler]. Production code uses the wall clock; tests
// inject a [ManualScheduler] and advance time explicitly.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period used when New is given a non-positive delay.
const DefaultDelay = 500 * time.Millisecond

// Timer is a pending scheduled call.
type Timer interface {
	// Stop prevents the call from running. It reports whether the call was
	// still pending.
	Stop() bool
}

// Scheduler runs f on its own goroutine after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type wallClock struct{}

func (wallClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Option configures a Debouncer.
type Option func(*Debouncer)

// WithScheduler replaces the wall-clock scheduler.
func WithScheduler(s Scheduler) Option {
	return func(d *Debouncer) {
		if s != nil {
			d.sched = s
		}
	}
}

// Debouncer delays an action until triggers stop arriving for one delay.
// It is safe for concurrent use.
type Debouncer struct {
	delay time.Duration
	sched Scheduler

	mu      sync.Mutex
	timer   Timer
	action  func()
	gen     uint64 // generation of the pending action
	stopped bool

	runMu   sync.Mutex
	lastRun uint64 // generation of the newest action that ran
}

// New returns a Debouncer with the given quiet period.
func New(delay time.Duration, opts ...Option) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	d := &Debouncer{delay: delay, sched: wallClock{}}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Trigger replaces the pending action with fn and restarts the delay.
// Triggers after Stop are ignored.
func (d *Debouncer) Trigger(fn func()) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.action = fn
	d.timer = d.sched.AfterFunc(d.delay, func() { d.fire(gen) })
}

// fire runs the action of generation gen if it is still the pending one.
// A timer that fired after being superseded finds a newer generation and
// does nothing.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.action == nil {
		d.mu.Unlock()
		return
	}
	fn := d.take()
	d.mu.Unlock()
	d.run(gen, fn)
}

// Flush runs the pending action now, on the caller's goroutine, and waits
// for any action already running on a timer goroutine. It reports whether
// there was a pending action.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	gen := d.gen
	fn := d.take()
	d.mu.Unlock()

	d.run(gen, fn)
	return fn != nil
}

// Stop drops the pending action without running it and ignores all later
// triggers. It reports whether an action was dropped.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	return d.take() != nil
}

// Pending reports whether an action is waiting to run.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.action != nil
}

// take clears the pending action and its timer. d.mu must be held.
func (d *Debouncer) take() func() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	fn := d.action
	d.action = nil
	return fn
}

// run executes fn unless a newer generation already ran. Actions never run
// concurrently and never run out of order.
func (d *Debouncer) run(gen uint64, fn func()) {
	d.runMu.Lock()
	defer d.runMu.Unlock()
	if fn == nil || gen <= d.lastRun {
		return
	}
	d.lastRun = gen
	fn()
}
