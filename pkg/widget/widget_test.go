package widget

import (
	"testing"

	"github.com/matzehuels/gridboard/pkg/autoscale"
	"github.com/matzehuels/gridboard/pkg/layout"
)

func TestWidgetDerivesParams(t *testing.T) {
	w := New("kpi_sales")
	defer w.Close()

	if got, want := w.Params(), autoscale.Scale(0, 0); got != want {
		t.Errorf("initial Params() = %+v, want %+v", got, want)
	}

	var notified []autoscale.Params
	cancel := w.OnChange(func(p autoscale.Params) { notified = append(notified, p) })

	w.Resize(400, 300)
	want := autoscale.Scale(400, 300)
	if got := w.Params(); got != want {
		t.Errorf("Params() = %+v, want %+v", got, want)
	}
	if len(notified) != 1 || notified[0] != want {
		t.Errorf("notified = %+v", notified)
	}

	// Same size: no change, no notification.
	w.Resize(400, 300)
	if len(notified) != 1 {
		t.Errorf("notified %d times for an unchanged size", len(notified))
	}

	cancel()
	w.Resize(200, 100)
	if len(notified) != 1 {
		t.Error("cancelled listener was called")
	}
	if got := w.Params(); got != autoscale.Scale(200, 100) {
		t.Errorf("Params() after cancel = %+v", got)
	}
}

func TestWidgetClose(t *testing.T) {
	w := New("a")
	w.Resize(100, 100)
	w.Close()
	w.Resize(500, 500)
	if got := w.Size(); got.Width != 100 {
		t.Errorf("Size() after Close = %+v, want the last pre-close size", got)
	}
	w.Close()
}

func TestBoardRelayout(t *testing.T) {
	b := NewBoard(1210)
	defer b.Close()

	l := layout.Layout{
		{ID: "a", X: 0, Y: 0, W: 3, H: 3},
		{ID: "b", X: 3, Y: 0, W: 2, H: 2, Collapsed: true, PrevH: 2},
	}
	// lg: 12 cols, col width (1210 - 130) / 12 = 90
	got := b.Relayout(l)
	if len(got) != 2 || b.Len() != 2 {
		t.Fatalf("Relayout returned %d placements, %d widgets", len(got), b.Len())
	}

	if got[0].Box.Width != 290 || got[0].Box.Height != 200 {
		t.Errorf("a box = %+v", got[0].Box)
	}
	if got[0].Params != autoscale.Scale(290, 200) {
		t.Errorf("a params = %+v", got[0].Params)
	}
	if got[1].Box.Height != 60 {
		t.Errorf("collapsed b height = %v, want one row (60)", got[1].Box.Height)
	}

	a, ok := b.Widget("a")
	if !ok || a.Params() != got[0].Params {
		t.Error("Widget(a) does not hold the placement's params")
	}

	// Dropping b unmounts it; a keeps its widget.
	b.Relayout(l[:1])
	if _, ok := b.Widget("b"); ok {
		t.Error("b should be unmounted")
	}
	if again, _ := b.Widget("a"); again != a {
		t.Error("a was remounted")
	}
}

func TestBoardSetWidth(t *testing.T) {
	b := NewBoard(1210)
	defer b.Close()
	b.Relayout(layout.Layout{{ID: "a", X: 0, Y: 0, W: 2, H: 2}})

	placements := b.SetWidth(800)
	if b.Grid().Cols != layout.BreakpointSM.Cols() {
		t.Errorf("Cols = %d, want %d", b.Grid().Cols, layout.BreakpointSM.Cols())
	}
	// sm: 6 cols, col width (800 - 70) / 6
	wantW := (800.0-70.0)/6.0*2 + 10
	if len(placements) != 1 || placements[0].Box.Width != wantW {
		t.Errorf("placements = %+v, want width %v", placements, wantW)
	}
	if b.Height() <= 0 {
		t.Error("Height() should be positive")
	}
}
