// Package layout is the dashboard layout model: the ordered set of widget
// placement records that make up one dashboard, and the rules that keep it
// valid.
//
// # Core Types
//
//   - [PlacementRecord]: one widget's geometry in grid units
//   - [Layout]: ordered records, at most one per widget id
//   - [Patch], [Geometry]: incoming changes from drag/resize/collapse
//   - [Breakpoint]: responsive class (lg, md, sm, xs) with its column count
//   - [Grid]: converts grid units into pixel boxes
//
// # Self-healing
//
// Layouts are repaired, never rejected. [Normalize] clamps negative
// positions to 0, raises widths and heights to their effective minimums
// (the per-widget floor or the global floor of 2), pins collapsed records to
// one rendered row, and drops records without an id or with a duplicate id.
// [ApplyChange] merges patches and normalizes, so applying an empty change to
// its own output is a no-op:
//
//	l2 := layout.ApplyChange(l, layout.Geometry{ID: "kpi_sales", X: 3, Y: 0, W: 3, H: 3}.Patch())
//	layout.Equal(layout.ApplyChange(l2), l2) // true
//
// # Collapse
//
// Collapsing snapshots the expanded height into PrevH and fixes the rendered
// height to one row. Expanding restores max(PrevH, effective minimum height):
//
//	l, _ = layout.ToggleCollapse(l, "kpi_sales") // h 3 -> 1, prevH 3
//	l, _ = layout.ToggleCollapse(l, "kpi_sales") // h 1 -> 3
//
// # Collisions
//
// Direct manipulation never rejects overlapping placements; the user
// resolves them. Pure reflow (load, collapse toggle, reset) runs [Compact],
// which moves widgets up to close vertical gaps and down out of collisions
// without ever moving them horizontally.
//
// # Serialization
//
// Records use react-grid-layout compatible keys:
//
//	[{"i":"kpi_sales","x":0,"y":0,"w":3,"h":3,"minH":3,"collapsed":false}]
//
// Decoding also accepts "id" in place of "i". Malformed input is an
// INVALID_LAYOUT error, which the persistence chain treats as an empty source.
package layout
