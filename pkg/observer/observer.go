// Package observer tracks the box size of one rendered container.
//
// The host (a browser bridge, a terminal UI, a test) measures the container
// and calls [Observer.Report]. Subscribers receive one sample per change in
// size. Nothing is emitted before the first real change, so consumers must
// tolerate the initial {0, 0} state; the autoscale formulas do.
//
// An Observer that never receives a report simply never emits. That is a
// degraded but safe state, not an error.
package observer

import (
	"context"
	"math"
	"sync"
)

// Size is a box size in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsZero reports whether s is the unmeasured {0, 0} size.
func (s Size) IsZero() bool { return s.Width == 0 && s.Height == 0 }

// Observer watches one container. It is safe for concurrent use.
type Observer struct {
	mu     sync.Mutex
	size   Size
	subs   map[int]func(Size)
	nextID int
	closed bool
	done   chan struct{}
}

// New creates an observer in the unmeasured {0, 0} state.
func New() *Observer {
	return &Observer{
		subs: make(map[int]func(Size)),
		done: make(chan struct{}),
	}
}

// Report records a measurement. Negative and NaN components are clamped to
// 0. A sample equal to the current size, or any sample after Close, is
// dropped. Subscribers run synchronously on the reporting goroutine.
func (o *Observer) Report(s Size) {
	s = Size{Width: clean(s.Width), Height: clean(s.Height)}

	o.mu.Lock()
	if o.closed || s == o.size {
		o.mu.Unlock()
		return
	}
	o.size = s
	subs := make([]func(Size), 0, len(o.subs))
	for _, fn := range o.subs {
		subs = append(subs, fn)
	}
	o.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

// Subscribe registers fn for future size changes. fn is not called with the
// current size. The returned cancel func removes the subscription.
func (o *Observer) Subscribe(fn func(Size)) (cancel func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return func() {}
	}
	id := o.nextID
	o.nextID++
	o.subs[id] = fn
	return func() {
		o.mu.Lock()
		delete(o.subs, id)
		o.mu.Unlock()
	}
}

// Samples returns a channel of size changes. The channel holds at most one
// pending sample; a slow reader sees the latest size, not every step. It is
// closed when ctx is done or the observer is closed.
func (o *Observer) Samples(ctx context.Context) <-chan Size {
	out := make(chan Size, 1)
	in := make(chan Size, 1)

	cancel := o.Subscribe(func(s Size) {
		for {
			select {
			case in <- s:
				return
			default:
			}
			select {
			case <-in:
			default:
			}
		}
	})

	go func() {
		defer close(out)
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case <-o.done:
				return
			case s := <-in:
				select {
				case <-out:
				default:
				}
				out <- s
			}
		}
	}()
	return out
}

// Size returns the most recent measurement.
func (o *Observer) Size() Size {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.size
}

// Close unmounts the observer. Later reports are ignored and it cannot be
// restarted.
func (o *Observer) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	o.subs = map[int]func(Size){}
	close(o.done)
}

// Closed reports whether Close has been called.
func (o *Observer) Closed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closed
}

func clean(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
