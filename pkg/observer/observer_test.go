package observer

import (
	"context"
	"math"
	"testing"
	"time"
)

func TestObserverNoEmissionBeforeChange(t *testing.T) {
	o := New()
	calls := 0
	o.Subscribe(func(Size) { calls++ })

	if calls != 0 {
		t.Fatalf("Subscribe should not emit the initial size, got %d calls", calls)
	}
	if !o.Size().IsZero() {
		t.Errorf("initial size = %+v, want {0 0}", o.Size())
	}

	// Reporting the initial size is not a change.
	o.Report(Size{})
	if calls != 0 {
		t.Errorf("reporting {0 0} emitted %d samples, want 0", calls)
	}
}

func TestObserverEmitsOnChange(t *testing.T) {
	o := New()
	var got []Size
	o.Subscribe(func(s Size) { got = append(got, s) })

	o.Report(Size{Width: 300, Height: 200})
	o.Report(Size{Width: 300, Height: 200}) // duplicate
	o.Report(Size{Width: 320, Height: 200})

	want := []Size{{300, 200}, {320, 200}}
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestObserverCleansInvalidSamples(t *testing.T) {
	o := New()
	o.Report(Size{Width: -5, Height: math.NaN()})
	if s := o.Size(); s != (Size{}) {
		t.Errorf("Size() = %+v, want {0 0}", s)
	}
}

func TestObserverCancel(t *testing.T) {
	o := New()
	calls := 0
	cancel := o.Subscribe(func(Size) { calls++ })
	o.Report(Size{Width: 1, Height: 1})
	cancel()
	o.Report(Size{Width: 2, Height: 2})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestObserverClose(t *testing.T) {
	o := New()
	calls := 0
	o.Subscribe(func(Size) { calls++ })
	o.Close()
	o.Close() // idempotent

	o.Report(Size{Width: 10, Height: 10})
	if calls != 0 {
		t.Errorf("closed observer emitted %d samples", calls)
	}
	if !o.Closed() {
		t.Error("Closed() = false after Close")
	}

	// Subscribing after close is a no-op.
	o.Subscribe(func(Size) { calls++ })()
	o.Report(Size{Width: 20, Height: 20})
	if calls != 0 {
		t.Errorf("not restartable: got %d samples", calls)
	}
}

func TestObserverSamples(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	o := New()
	ch := o.Samples(ctx)

	o.Report(Size{Width: 100, Height: 50})

	select {
	case s := <-ch:
		if s != (Size{Width: 100, Height: 50}) {
			t.Errorf("sample = %+v", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for sample")
	}

	o.Close()
	select {
	case _, ok := <-ch:
		if ok {
			// A buffered sample may still be pending; the next read must see close.
			if _, ok := <-ch; ok {
				t.Error("channel not closed after Close")
			}
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after Close")
	}
}

func TestObserverSamplesContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	o := New()
	ch := o.Samples(ctx)
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after context cancel")
	}
}
