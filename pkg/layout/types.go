package layout

import "encoding/json"

// Global floors applied when a record declares no larger minimum.
const (
	MinW = 2
	MinH = 2

	// CollapsedH is the rendered height of a collapsed record, in rows.
	CollapsedH = 1

	// MaxRecords bounds the records a layout may hold.
	MaxRecords = 256
)

// =============================================================================
// PlacementRecord
// =============================================================================

// PlacementRecord is one widget's geometry in grid units.
type PlacementRecord struct {
	ID        string `json:"i" bson:"i" validate:"required,max=64,widgetid"`
	X         int    `json:"x" bson:"x"`
	Y         int    `json:"y" bson:"y"`
	W         int    `json:"w" bson:"w" validate:"gte=0"`
	H         int    `json:"h" bson:"h" validate:"gte=0"`
	MinW      int    `json:"minW,omitempty" bson:"minW,omitempty" validate:"gte=0"`
	MinH      int    `json:"minH,omitempty" bson:"minH,omitempty" validate:"gte=0"`
	Collapsed bool   `json:"collapsed" bson:"collapsed"`

	// PrevH is the expanded height remembered while collapsed.
	PrevH int `json:"prevH,omitempty" bson:"prevH,omitempty" validate:"gte=0"`
}

// UnmarshalJSON accepts both "i" and "id" as the widget identifier.
func (r *PlacementRecord) UnmarshalJSON(data []byte) error {
	type plain PlacementRecord
	var aux struct {
		plain
		AltID string `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = PlacementRecord(aux.plain)
	if r.ID == "" {
		r.ID = aux.AltID
	}
	return nil
}

// EffectiveMinW is max(MinW, r.MinW).
func (r PlacementRecord) EffectiveMinW() int { return max(MinW, r.MinW) }

// EffectiveMinH is max(MinH, r.MinH).
func (r PlacementRecord) EffectiveMinH() int { return max(MinH, r.MinH) }

// RenderedHeight is the height the widget occupies on the grid.
func (r PlacementRecord) RenderedHeight() int {
	if r.Collapsed {
		return CollapsedH
	}
	return r.H
}

// ExpandedHeight is the height the widget has, or will have once expanded.
func (r PlacementRecord) ExpandedHeight() int {
	if r.Collapsed {
		return max(r.PrevH, r.EffectiveMinH())
	}
	return r.H
}

// Bottom is the first row below the widget.
func (r PlacementRecord) Bottom() int { return r.Y + r.RenderedHeight() }

// =============================================================================
// Layout
// =============================================================================

// Layout is an ordered set of placement records keyed by ID.
// Order is iteration order only; it carries no z-order.
type Layout []PlacementRecord

// Clone returns a copy that shares no memory with l.
func (l Layout) Clone() Layout {
	if l == nil {
		return nil
	}
	out := make(Layout, len(l))
	copy(out, l)
	return out
}

// Index returns the position of id in l, or -1.
func (l Layout) Index(id string) int {
	for i := range l {
		if l[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the record for id.
func (l Layout) Find(id string) (PlacementRecord, bool) {
	if i := l.Index(id); i >= 0 {
		return l[i], true
	}
	return PlacementRecord{}, false
}

// IDs returns the widget ids in iteration order.
func (l Layout) IDs() []string {
	ids := make([]string, len(l))
	for i, r := range l {
		ids[i] = r.ID
	}
	return ids
}

// Rows is the number of grid rows the layout spans.
func (l Layout) Rows() int {
	rows := 0
	for _, r := range l {
		rows = max(rows, r.Bottom())
	}
	return rows
}

// Equal reports whether a and b hold the same records in the same order.
// A nil layout equals an empty one.
func Equal(a, b Layout) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// =============================================================================
// Changes
// =============================================================================

// Patch is a partial update for one record. Nil fields are left unchanged.
type Patch struct {
	ID        string
	X, Y      *int
	W, H      *int
	Collapsed *bool
}

// Geometry is the full position and size of one widget as reported by a
// drag or resize tick.
type Geometry struct {
	ID string `json:"i"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
	W  int    `json:"w"`
	H  int    `json:"h"`
}

// Patch converts g into a Patch that sets all four coordinates.
func (g Geometry) Patch() Patch {
	return Patch{ID: g.ID, X: Int(g.X), Y: Int(g.Y), W: Int(g.W), H: Int(g.H)}
}

// Int returns a pointer to v, for building a Patch.
func Int(v int) *int { return &v }

// Bool returns a pointer to v, for building a Patch.
func Bool(v bool) *bool { return &v }
