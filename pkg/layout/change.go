package layout

import apperr "github.com/matzehuels/gridboard/pkg/errors"

// ApplyChange merges changes into l and returns the repaired result. l is not
// modified.
//
// Patches for ids not present in l append a new record; patches whose id is
// not a valid widget id are skipped. A height patch on a
// collapsed record is ignored because its rendered height is fixed; the
// expanded height is only restored by expanding. Overlapping placements are
// accepted as-is.
func ApplyChange(l Layout, changes ...Patch) Layout {
	out := Normalize(l)
	for _, p := range changes {
		if apperr.ValidateWidgetID(p.ID) != nil {
			continue
		}
		i := out.Index(p.ID)
		if i < 0 {
			out = append(out, PlacementRecord{ID: p.ID})
			i = len(out) - 1
		}
		out[i] = applyPatch(out[i], p)
	}
	return Normalize(out)
}

// ToggleCollapse flips the collapsed state of id. It returns false, and an
// unchanged copy of l, when id is not in the layout.
func ToggleCollapse(l Layout, id string) (Layout, bool) {
	r, ok := l.Find(id)
	if !ok {
		return l.Clone(), false
	}
	return ApplyChange(l, Patch{ID: id, Collapsed: Bool(!r.Collapsed)}), true
}

func applyPatch(r PlacementRecord, p Patch) PlacementRecord {
	if p.X != nil {
		r.X = *p.X
	}
	if p.Y != nil {
		r.Y = *p.Y
	}
	if p.W != nil {
		r.W = *p.W
	}
	if p.H != nil && !r.Collapsed {
		r.H = *p.H
	}
	if p.Collapsed != nil && *p.Collapsed != r.Collapsed {
		if *p.Collapsed {
			r = collapse(r)
		} else {
			r = expand(r)
		}
	}
	return r
}

func collapse(r PlacementRecord) PlacementRecord {
	r.PrevH = max(r.H, r.EffectiveMinH())
	r.H = CollapsedH
	r.Collapsed = true
	return r
}

func expand(r PlacementRecord) PlacementRecord {
	r.H = max(r.PrevH, r.EffectiveMinH())
	r.PrevH = 0
	r.Collapsed = false
	return r
}

// Normalize returns a repaired copy of l:
//   - records whose id is not a valid widget id are dropped
//   - only the first record of a duplicated id is kept
//   - records past MaxRecords are dropped
//   - x and y are clamped to >= 0
//   - w is raised to max(2, minW)
//   - expanded records get h >= max(2, minH) and no PrevH
//   - collapsed records get h == 1 and PrevH >= max(2, minH)
//
// Normalize is idempotent.
func Normalize(l Layout) Layout {
	out := make(Layout, 0, len(l))
	seen := make(map[string]bool, len(l))
	for _, r := range l {
		if len(out) == MaxRecords {
			break
		}
		if seen[r.ID] || apperr.ValidateWidgetID(r.ID) != nil {
			continue
		}
		seen[r.ID] = true
		out = append(out, normalizeRecord(r))
	}
	return out
}

func normalizeRecord(r PlacementRecord) PlacementRecord {
	r.X = max(r.X, 0)
	r.Y = max(r.Y, 0)
	r.MinW = max(r.MinW, 0)
	r.MinH = max(r.MinH, 0)
	r.W = max(r.W, r.EffectiveMinW())

	if r.Collapsed {
		// Records persisted before PrevH existed carry the expanded height in H.
		if r.PrevH == 0 && r.H > CollapsedH {
			r.PrevH = r.H
		}
		r.PrevH = max(r.PrevH, r.EffectiveMinH())
		r.H = CollapsedH
		return r
	}

	r.H = max(r.H, r.EffectiveMinH())
	r.PrevH = 0
	return r
}
