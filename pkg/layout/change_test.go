package layout

import (
	"fmt"
	"strings"
	"testing"
)

func TestApplyChangeMergesByID(t *testing.T) {
	l := Layout{
		{ID: "a", X: 0, Y: 0, W: 3, H: 3},
		{ID: "b", X: 3, Y: 0, W: 3, H: 3},
	}

	got := ApplyChange(l, Geometry{ID: "b", X: 6, Y: 2, W: 4, H: 5}.Patch())

	want := Layout{
		{ID: "a", X: 0, Y: 0, W: 3, H: 3},
		{ID: "b", X: 6, Y: 2, W: 4, H: 5},
	}
	if !Equal(got, want) {
		t.Errorf("ApplyChange() = %+v, want %+v", got, want)
	}

	// Input is not modified.
	if l[1].X != 3 {
		t.Errorf("input layout was mutated: %+v", l[1])
	}
}

func TestApplyChangeSelfHeals(t *testing.T) {
	tests := []struct {
		name  string
		start PlacementRecord
		patch Patch
		want  PlacementRecord
	}{
		{
			name:  "negative y clamped",
			start: PlacementRecord{ID: "w", W: 3, H: 3},
			patch: Patch{ID: "w", Y: Int(-4)},
			want:  PlacementRecord{ID: "w", W: 3, H: 3},
		},
		{
			name:  "negative x clamped",
			start: PlacementRecord{ID: "w", W: 3, H: 3},
			patch: Patch{ID: "w", X: Int(-1)},
			want:  PlacementRecord{ID: "w", W: 3, H: 3},
		},
		{
			name:  "width below global floor",
			start: PlacementRecord{ID: "w", W: 3, H: 3},
			patch: Patch{ID: "w", W: Int(1)},
			want:  PlacementRecord{ID: "w", W: 2, H: 3},
		},
		{
			name:  "height below global floor",
			start: PlacementRecord{ID: "w", W: 3, H: 3},
			patch: Patch{ID: "w", H: Int(0)},
			want:  PlacementRecord{ID: "w", W: 3, H: 2},
		},
		{
			name:  "width below declared minimum",
			start: PlacementRecord{ID: "w", W: 6, H: 3, MinW: 4},
			patch: Patch{ID: "w", W: Int(2)},
			want:  PlacementRecord{ID: "w", W: 4, H: 3, MinW: 4},
		},
		{
			name:  "height below declared minimum",
			start: PlacementRecord{ID: "w", W: 3, H: 5, MinH: 4},
			patch: Patch{ID: "w", H: Int(3)},
			want:  PlacementRecord{ID: "w", W: 3, H: 4, MinH: 4},
		},
		{
			name:  "collapsed state preserved by geometry change",
			start: PlacementRecord{ID: "w", W: 3, H: 1, Collapsed: true, PrevH: 4},
			patch: Geometry{ID: "w", X: 2, Y: 1, W: 5, H: 1}.Patch(),
			want:  PlacementRecord{ID: "w", X: 2, Y: 1, W: 5, H: 1, Collapsed: true, PrevH: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyChange(Layout{tt.start}, tt.patch)
			if len(got) != 1 {
				t.Fatalf("got %d records, want 1", len(got))
			}
			if got[0] != tt.want {
				t.Errorf("got %+v, want %+v", got[0], tt.want)
			}
		})
	}
}

func TestApplyChangeAppendsUnknownID(t *testing.T) {
	l := Layout{{ID: "a", W: 3, H: 3}}
	got := ApplyChange(l, Patch{ID: "new", X: Int(4)})

	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	want := PlacementRecord{ID: "new", X: 4, W: MinW, H: MinH}
	if got[1] != want {
		t.Errorf("appended record = %+v, want %+v", got[1], want)
	}
}

func TestApplyChangeIgnoresEmptyID(t *testing.T) {
	l := Layout{{ID: "a", W: 3, H: 3}}
	got := ApplyChange(l, Patch{X: Int(9)})
	if !Equal(got, l) {
		t.Errorf("ApplyChange with empty id = %+v, want %+v", got, l)
	}
}

func TestApplyChangeIdempotent(t *testing.T) {
	start := Layout{
		{ID: "a", X: -1, Y: -3, W: 1, H: 0},
		{ID: "b", X: 2, Y: 0, W: 3, H: 3, Collapsed: true},
		{ID: "b", X: 9, Y: 9, W: 9, H: 9},
		{ID: "", X: 1},
	}
	deltas := [][]Patch{
		nil,
		{Geometry{ID: "a", X: 5, Y: -2, W: 1, H: 1}.Patch()},
		{{ID: "b", Collapsed: Bool(false)}},
		{{ID: "c", H: Int(7)}, {ID: "a", Collapsed: Bool(true)}},
	}

	for i, delta := range deltas {
		once := ApplyChange(start, delta...)
		twice := ApplyChange(once)
		if !Equal(once, twice) {
			t.Errorf("delta %d: ApplyChange not idempotent:\n once  %+v\n twice %+v", i, once, twice)
		}
	}
}

func TestCollapseExpandRoundTrip(t *testing.T) {
	records := []PlacementRecord{
		{ID: "kpi_sales", X: 0, Y: 0, W: 3, H: 3, MinH: 3},
		{ID: "chart", X: 2, Y: 4, W: 6, H: 8, MinW: 4, MinH: 4},
		{ID: "plain", X: 0, Y: 0, W: 2, H: 2},
		{ID: "tall", X: 0, Y: 0, W: 2, H: 20, MinH: 2},
	}

	for _, r := range records {
		t.Run(r.ID, func(t *testing.T) {
			l := Layout{r}

			collapsed, ok := ToggleCollapse(l, r.ID)
			if !ok {
				t.Fatal("ToggleCollapse returned false for existing id")
			}
			c := collapsed[0]
			if !c.Collapsed || c.H != CollapsedH || c.RenderedHeight() != CollapsedH {
				t.Errorf("collapsed record = %+v, want collapsed with h=1", c)
			}
			if c.PrevH != r.H {
				t.Errorf("PrevH = %d, want %d", c.PrevH, r.H)
			}
			if c.W != r.W || c.X != r.X || c.Y != r.Y {
				t.Errorf("collapse changed position or width: %+v", c)
			}

			expanded, _ := ToggleCollapse(collapsed, r.ID)
			if expanded[0] != r {
				t.Errorf("round trip = %+v, want %+v", expanded[0], r)
			}
		})
	}
}

func TestCollapseKPIScenario(t *testing.T) {
	l := Layout{{ID: "kpi_sales", X: 0, Y: 0, W: 3, H: 3, MinH: 3}}

	l, _ = ToggleCollapse(l, "kpi_sales")
	l, _ = ToggleCollapse(l, "kpi_sales")

	if l[0].H != 3 {
		t.Errorf("h after collapse+expand = %d, want 3", l[0].H)
	}
}

func TestExpandWithoutSnapshotUsesMinimum(t *testing.T) {
	l := Layout{{ID: "w", W: 3, H: 1, Collapsed: true, MinH: 4}}
	l, _ = ToggleCollapse(l, "w")
	if l[0].H != 4 {
		t.Errorf("h = %d, want 4 (declared minimum)", l[0].H)
	}
}

func TestHeightPatchIgnoredWhileCollapsed(t *testing.T) {
	l := Layout{{ID: "w", W: 3, H: 5}}
	l, _ = ToggleCollapse(l, "w")
	l = ApplyChange(l, Patch{ID: "w", H: Int(1)})
	l, _ = ToggleCollapse(l, "w")
	if l[0].H != 5 {
		t.Errorf("h = %d, want 5", l[0].H)
	}
}

func TestToggleCollapseUnknownID(t *testing.T) {
	l := Layout{{ID: "a", W: 3, H: 3}}
	got, ok := ToggleCollapse(l, "missing")
	if ok {
		t.Error("ToggleCollapse returned true for unknown id")
	}
	if !Equal(got, l) {
		t.Errorf("layout changed: %+v", got)
	}
}

func TestNormalize(t *testing.T) {
	l := Layout{
		{ID: "", W: 3, H: 3},
		{ID: "a", X: -2, Y: -1, W: 0, H: 0, MinW: -1, MinH: -5},
		{ID: "a", W: 9, H: 9},
		{ID: "legacy", W: 3, H: 6, Collapsed: true},
		{ID: "b", W: 3, H: 3, PrevH: 7},
	}

	got := Normalize(l)
	want := Layout{
		{ID: "a", W: 2, H: 2},
		{ID: "legacy", W: 3, H: 1, Collapsed: true, PrevH: 6},
		{ID: "b", W: 3, H: 3},
	}
	if !Equal(got, want) {
		t.Errorf("Normalize() =\n %+v\nwant\n %+v", got, want)
	}
	if !Equal(Normalize(got), got) {
		t.Error("Normalize is not idempotent")
	}
}

func TestNormalizeNil(t *testing.T) {
	got := Normalize(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Normalize(nil) = %#v, want empty non-nil layout", got)
	}
}

func TestApplyChangeSkipsInvalidIDs(t *testing.T) {
	l := Layout{{ID: "kpi_sales", W: 3, H: 3}}
	got := ApplyChange(l,
		Patch{ID: "sales kpi", W: Int(4), H: Int(3)},
		Patch{ID: "bad\nid", W: Int(4)},
		Patch{ID: strings.Repeat("w", 65), W: Int(4)},
	)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(got), got)
	}
	if _, ok := got.Find("sales kpi"); !ok {
		t.Error("free-form id was not appended")
	}
}

func TestNormalizeDropsInvalidIDs(t *testing.T) {
	l := Layout{
		{ID: "kpi\x00", W: 3, H: 3},
		{ID: strings.Repeat("w", 65), W: 3, H: 3},
		{ID: "sales kpi", W: 3, H: 3},
	}
	got := Normalize(l)
	if len(got) != 1 || got[0].ID != "sales kpi" {
		t.Errorf("Normalize() = %+v, want only sales kpi", got)
	}
}

func TestNormalizeCapsRecords(t *testing.T) {
	l := make(Layout, MaxRecords+10)
	for i := range l {
		l[i] = PlacementRecord{ID: fmt.Sprintf("w%d", i), Y: i * 2, W: 2, H: 2}
	}
	got := Normalize(l)
	if len(got) != MaxRecords {
		t.Fatalf("len = %d, want %d", len(got), MaxRecords)
	}
	if got[MaxRecords-1].ID != fmt.Sprintf("w%d", MaxRecords-1) {
		t.Errorf("last kept record = %s", got[MaxRecords-1].ID)
	}
}
