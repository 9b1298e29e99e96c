// Package widget is the rendered side of the layout engine.
//
// A [Widget] is one dashboard card. It owns an [observer.Observer] for its
// box and derives its own [autoscale.Params] whenever that box changes; no
// one pushes presentation parameters into it. A [Board] maps a layout onto
// a grid and reports each record's pixel box to the matching widget.
package widget

import (
	"sync"

	"github.com/matzehuels/gridboard/pkg/autoscale"
	"github.com/matzehuels/gridboard/pkg/observer"
)

// Widget is one rendered card, identified by a stable id. It is safe for
// concurrent use.
type Widget struct {
	id    string
	obs   *observer.Observer
	unsub func()

	mu        sync.Mutex
	params    autoscale.Params
	listeners map[int]func(autoscale.Params)
	nextID    int
}

// New creates a widget in the unmeasured state. Its params are those of a
// {0, 0} box until the first resize.
func New(id string) *Widget {
	w := &Widget{
		id:        id,
		obs:       observer.New(),
		params:    autoscale.Scale(0, 0),
		listeners: make(map[int]func(autoscale.Params)),
	}
	w.unsub = w.obs.Subscribe(w.rescale)
	return w
}

// ID returns the widget id.
func (w *Widget) ID() string { return w.id }

// Resize reports a new box size to the widget's observer.
func (w *Widget) Resize(width, height float64) {
	w.obs.Report(observer.Size{Width: width, Height: height})
}

// Size returns the last observed box size.
func (w *Widget) Size() observer.Size { return w.obs.Size() }

// Params returns the presentation parameters for the current size.
func (w *Widget) Params() autoscale.Params {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.params
}

// OnChange registers fn to run with the new params after every size change.
func (w *Widget) OnChange(fn func(autoscale.Params)) (cancel func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextID
	w.nextID++
	w.listeners[id] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.listeners, id)
	}
}

// Close unmounts the widget. Later resizes are ignored.
func (w *Widget) Close() {
	w.unsub()
	w.obs.Close()
}

func (w *Widget) rescale(s observer.Size) {
	p := autoscale.Scale(s.Width, s.Height)

	w.mu.Lock()
	w.params = p
	listeners := make([]func(autoscale.Params), 0, len(w.listeners))
	for _, fn := range w.listeners {
		listeners = append(listeners, fn)
	}
	w.mu.Unlock()

	for _, fn := range listeners {
		fn(p)
	}
}
