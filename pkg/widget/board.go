package widget

import (
	"sync"

	"github.com/matzehuels/gridboard/pkg/autoscale"
	"github.com/matzehuels/gridboard/pkg/layout"
)

// Placement is one widget's position on the board after a relayout.
type Placement struct {
	Record layout.PlacementRecord
	Box    layout.Box
	Params autoscale.Params
}

// Board keeps one Widget per layout record and sizes each from the grid.
// It is safe for concurrent use.
type Board struct {
	mu      sync.Mutex
	grid    layout.Grid
	widgets map[string]*Widget
	layout  layout.Layout
}

// NewBoard creates a board for a container of the given pixel width.
func NewBoard(containerWidth float64) *Board {
	return &Board{
		grid:    layout.NewGrid(containerWidth),
		widgets: make(map[string]*Widget),
	}
}

// Grid returns the grid the board currently lays out on.
func (b *Board) Grid() layout.Grid {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.grid
}

// SetWidth changes the container width, keeping row height and margin, and
// resizes every widget.
func (b *Board) SetWidth(containerWidth float64) []Placement {
	b.mu.Lock()
	g := layout.NewGrid(containerWidth)
	g.RowHeight, g.Margin = b.grid.RowHeight, b.grid.Margin
	b.grid = g
	l := b.layout
	b.mu.Unlock()
	return b.Relayout(l)
}

// Relayout mounts a widget for every record in l, unmounts widgets whose
// records are gone, and reports each record's pixel box to its widget.
// Placements come back in l's order.
func (b *Board) Relayout(l layout.Layout) []Placement {
	b.mu.Lock()
	b.layout = l.Clone()
	g := b.grid
	seen := make(map[string]bool, len(l))
	widgets := make([]*Widget, len(l))
	for i, r := range l {
		w, ok := b.widgets[r.ID]
		if !ok {
			w = New(r.ID)
			b.widgets[r.ID] = w
		}
		widgets[i] = w
		seen[r.ID] = true
	}
	var gone []*Widget
	for id, w := range b.widgets {
		if !seen[id] {
			gone = append(gone, w)
			delete(b.widgets, id)
		}
	}
	b.mu.Unlock()

	for _, w := range gone {
		w.Close()
	}

	out := make([]Placement, len(l))
	for i, r := range l {
		box := g.Box(r)
		widgets[i].Resize(box.Width, box.Height)
		out[i] = Placement{Record: r, Box: box, Params: widgets[i].Params()}
	}
	return out
}

// Widget returns the mounted widget for id.
func (b *Board) Widget(id string) (*Widget, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, ok := b.widgets[id]
	return w, ok
}

// Len returns the number of mounted widgets.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.widgets)
}

// Height is the pixel height the current layout needs.
func (b *Board) Height() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.grid.Height(b.layout)
}

// Close unmounts every widget.
func (b *Board) Close() {
	b.mu.Lock()
	widgets := b.widgets
	b.widgets = make(map[string]*Widget)
	b.mu.Unlock()
	for _, w := range widgets {
		w.Close()
	}
}
