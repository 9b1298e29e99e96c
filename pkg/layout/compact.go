package layout

import "sort"

// Compact applies vertical compaction: every widget moves up as far as it can
// without colliding with widgets above it, and is pushed below any widget it
// still collides with. X is never changed. Rendered heights are used, so a
// collapsed widget frees the rows beneath it.
//
// The result keeps l's iteration order. Compact assumes l is normalized.
func Compact(l Layout) Layout {
	out := l.Clone()
	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := out[order[a]], out[order[b]]
		if ra.Y != rb.Y {
			return ra.Y < rb.Y
		}
		return ra.X < rb.X
	})

	placed := make([]PlacementRecord, 0, len(out))
	for _, i := range order {
		r := out[i]
		r.Y = min(r.Y, bottom(placed))
		for r.Y > 0 {
			up := r
			up.Y--
			if _, hit := firstCollision(placed, up); hit {
				break
			}
			r = up
		}
		for {
			c, hit := firstCollision(placed, r)
			if !hit {
				break
			}
			r.Y = c.Bottom()
		}
		placed = append(placed, r)
		out[i] = r
	}
	return out
}

// Collides reports whether two distinct records overlap on the grid.
func Collides(a, b PlacementRecord) bool {
	if a.ID == b.ID {
		return false
	}
	return a.X < b.X+b.W &&
		a.X+a.W > b.X &&
		a.Y < b.Bottom() &&
		a.Bottom() > b.Y
}

// Overlaps lists every pair of overlapping records by id.
func Overlaps(l Layout) [][2]string {
	var pairs [][2]string
	for i := range l {
		for j := i + 1; j < len(l); j++ {
			if Collides(l[i], l[j]) {
				pairs = append(pairs, [2]string{l[i].ID, l[j].ID})
			}
		}
	}
	return pairs
}

func firstCollision(placed []PlacementRecord, r PlacementRecord) (PlacementRecord, bool) {
	for _, p := range placed {
		if Collides(p, r) {
			return p, true
		}
	}
	return PlacementRecord{}, false
}

func bottom(l []PlacementRecord) int {
	b := 0
	for _, r := range l {
		b = max(b, r.Bottom())
	}
	return b
}
