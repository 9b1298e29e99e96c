package layout

import "testing"

func TestCompactClosesGaps(t *testing.T) {
	l := Layout{
		{ID: "a", X: 0, Y: 4, W: 3, H: 2},
		{ID: "b", X: 0, Y: 10, W: 3, H: 2},
		{ID: "c", X: 5, Y: 7, W: 2, H: 2},
	}

	got := Compact(l)
	want := Layout{
		{ID: "a", X: 0, Y: 0, W: 3, H: 2},
		{ID: "b", X: 0, Y: 2, W: 3, H: 2},
		{ID: "c", X: 5, Y: 0, W: 2, H: 2},
	}
	if !Equal(got, want) {
		t.Errorf("Compact() =\n %+v\nwant\n %+v", got, want)
	}
}

func TestCompactResolvesOverlapVertically(t *testing.T) {
	l := Layout{
		{ID: "a", X: 0, Y: 0, W: 4, H: 3},
		{ID: "b", X: 2, Y: 1, W: 4, H: 2},
	}

	got := Compact(l)
	if got[1].X != 2 {
		t.Errorf("Compact moved widget horizontally: %+v", got[1])
	}
	if got[1].Y != 3 {
		t.Errorf("b.Y = %d, want 3 (below a)", got[1].Y)
	}
	if pairs := Overlaps(got); len(pairs) != 0 {
		t.Errorf("overlaps after compaction: %v", pairs)
	}
}

func TestCompactUsesRenderedHeight(t *testing.T) {
	l := Layout{
		{ID: "top", X: 0, Y: 0, W: 4, H: 1, Collapsed: true, PrevH: 5},
		{ID: "below", X: 0, Y: 5, W: 4, H: 3},
	}

	got := Compact(l)
	if got[1].Y != 1 {
		t.Errorf("below.Y = %d, want 1 after collapsing the widget above", got[1].Y)
	}
}

func TestCompactPreservesOrderAndX(t *testing.T) {
	l := Layout{
		{ID: "z", X: 6, Y: 8, W: 2, H: 2},
		{ID: "y", X: 0, Y: 3, W: 2, H: 2},
		{ID: "x", X: 3, Y: 1, W: 2, H: 2},
	}
	got := Compact(l)
	for i := range l {
		if got[i].ID != l[i].ID || got[i].X != l[i].X {
			t.Errorf("record %d = %+v, want id %s x %d", i, got[i], l[i].ID, l[i].X)
		}
	}
}

func TestCompactIsStable(t *testing.T) {
	for _, bp := range Breakpoints() {
		l := Default(bp)
		if !Equal(Compact(l), l) {
			t.Errorf("Default(%s) is not compact", bp)
		}
		if !Equal(Compact(Compact(l)), Compact(l)) {
			t.Errorf("Compact not idempotent for %s", bp)
		}
	}
}

func TestCollides(t *testing.T) {
	a := PlacementRecord{ID: "a", X: 0, Y: 0, W: 2, H: 2}
	tests := []struct {
		name string
		b    PlacementRecord
		want bool
	}{
		{"same id", PlacementRecord{ID: "a", X: 0, Y: 0, W: 2, H: 2}, false},
		{"overlap", PlacementRecord{ID: "b", X: 1, Y: 1, W: 2, H: 2}, true},
		{"touching right edge", PlacementRecord{ID: "b", X: 2, Y: 0, W: 2, H: 2}, false},
		{"touching bottom edge", PlacementRecord{ID: "b", X: 0, Y: 2, W: 2, H: 2}, false},
		{"collapsed above", PlacementRecord{ID: "b", X: 0, Y: 1, W: 2, H: 1, Collapsed: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Collides(a, tt.b); got != tt.want {
				t.Errorf("Collides() = %v, want %v", got, tt.want)
			}
		})
	}
}
