package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestTriggerCoalesces(t *testing.T) {
	sched := NewManualScheduler()
	d := New(500*time.Millisecond, WithScheduler(sched))

	var runs []int
	for i := 1; i <= 5; i++ {
		d.Trigger(func() { runs = append(runs, i) })
		sched.Advance(100 * time.Millisecond)
	}

	if len(runs) != 0 {
		t.Fatalf("ran %v before the quiet period elapsed", runs)
	}
	if !d.Pending() {
		t.Fatal("Pending() = false, want true")
	}
	if got := sched.Pending(); got != 1 {
		t.Errorf("scheduler holds %d timers, want 1", got)
	}

	sched.Advance(500 * time.Millisecond)

	if len(runs) != 1 || runs[0] != 5 {
		t.Errorf("runs = %v, want [5]", runs)
	}
	if d.Pending() {
		t.Error("Pending() = true after run")
	}
}

func TestTriggerRestartsDelay(t *testing.T) {
	sched := NewManualScheduler()
	d := New(time.Second, WithScheduler(sched))

	var n int
	d.Trigger(func() { n++ })
	sched.Advance(900 * time.Millisecond)
	d.Trigger(func() { n++ })
	sched.Advance(900 * time.Millisecond)
	if n != 0 {
		t.Fatalf("n = %d, want 0", n)
	}
	sched.Advance(100 * time.Millisecond)
	if n != 1 {
		t.Errorf("n = %d, want 1", n)
	}
}

func TestSupersededTimerIsNoop(t *testing.T) {
	// A scheduler whose timers cannot be stopped, so superseded callbacks
	// still fire.
	sched := &unstoppable{}
	d := New(time.Second, WithScheduler(sched))

	var got []string
	d.Trigger(func() { got = append(got, "first") })
	d.Trigger(func() { got = append(got, "second") })

	for _, fn := range sched.fns {
		fn()
	}
	if len(got) != 1 || got[0] != "second" {
		t.Errorf("got %v, want [second]", got)
	}
}

func TestFlush(t *testing.T) {
	sched := NewManualScheduler()
	d := New(time.Second, WithScheduler(sched))

	if d.Flush() {
		t.Error("Flush() = true with nothing pending")
	}

	var n int
	d.Trigger(func() { n++ })
	if !d.Flush() {
		t.Error("Flush() = false with a pending action")
	}
	if n != 1 {
		t.Fatalf("n = %d after Flush, want 1", n)
	}

	sched.Advance(time.Second)
	if n != 1 {
		t.Errorf("action ran again after Flush (n = %d)", n)
	}
}

func TestStop(t *testing.T) {
	sched := NewManualScheduler()
	d := New(time.Second, WithScheduler(sched))

	var n int
	d.Trigger(func() { n++ })
	if !d.Stop() {
		t.Error("Stop() = false, want true")
	}
	d.Trigger(func() { n++ })
	sched.Advance(time.Second)
	d.Flush()

	if n != 0 {
		t.Errorf("n = %d, want 0", n)
	}
	if d.Pending() {
		t.Error("Pending() = true after Stop")
	}
}

func TestNewDefaults(t *testing.T) {
	if got := New(0).Delay(); got != DefaultDelay {
		t.Errorf("Delay() = %v, want %v", got, DefaultDelay)
	}
	if got := New(time.Second, WithScheduler(nil)).sched; got == nil {
		t.Error("WithScheduler(nil) cleared the scheduler")
	}
}

func TestWallClock(t *testing.T) {
	d := New(10 * time.Millisecond)

	var n atomic.Int32
	done := make(chan struct{})
	for range 10 {
		d.Trigger(func() {
			n.Add(1)
			close(done)
		})
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("debounced action never ran")
	}
	d.Flush()
	if got := n.Load(); got != 1 {
		t.Errorf("ran %d times, want 1", got)
	}
}

func TestConcurrentTriggers(t *testing.T) {
	sched := NewManualScheduler()
	d := New(time.Second, WithScheduler(sched))

	var n atomic.Int32
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Trigger(func() { n.Add(1) })
		}()
	}
	wg.Wait()
	sched.Advance(time.Second)

	if got := n.Load(); got != 1 {
		t.Errorf("ran %d times, want 1", got)
	}
}

type unstoppable struct{ fns []func() }

func (u *unstoppable) AfterFunc(_ time.Duration, f func()) Timer {
	u.fns = append(u.fns, f)
	return noStop{}
}

type noStop struct{}

func (noStop) Stop() bool { return false }
