package radial

import (
	"cmp"
	"math"
	"slices"
)

// balanceSides rebalances the left/right label assignment so that the two
// columns stay within one segment of each other.
//
// When one column is over-populated, the segments moved are the ones whose
// anchors sit nearest the vertical centerline: they have the weakest natural
// affinity to either side, so flipping them disturbs the picture least. This
// is a deterministic heuristic, not a global minimizer of leader-line
// length; ties fall back to input order.
//
// The input slice is not modified; a new slice is returned.
func balanceSides(segs []Segment, cfg Config) []Segment {
	out := make([]Segment, len(segs))
	copy(out, segs)

	n := len(out)
	if n < 2 {
		return out
	}

	var left, right []int
	for i := range out {
		if out[i].Side == SideLeft {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if abs(len(left)-len(right)) <= 1 {
		return out
	}

	target := (n + 1) / 2
	over := left
	if len(right) > len(left) {
		over = right
	}
	moves := len(over) - target
	if moves <= 0 {
		return out
	}

	// Weakest-affinity first: smallest horizontal distance to the
	// centerline.
	slices.SortStableFunc(over, func(a, b int) int {
		da := math.Abs(out[a].Anchor.X - cfg.CenterX)
		db := math.Abs(out[b].Anchor.X - cfg.CenterX)
		return cmp.Compare(da, db)
	})

	for _, idx := range over[:moves] {
		s := &out[idx]
		s.Side = s.Side.Opposite()
		s.LabelX = s.Anchor.X + s.Side.sign()*cfg.LabelOffset
	}
	return out
}

// sideOrders returns the indices of each column's segments sorted
// top-to-bottom by raw label height. Moved segments may be visually out of
// order relative to their new neighbors, so both columns are re-sorted from
// scratch regardless of any prior ordering.
func sideOrders(segs []Segment) (left, right []int) {
	for i := range segs {
		if segs[i].Side == SideLeft {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	byRawY := func(a, b int) int {
		return cmp.Compare(segs[a].RawLabelY, segs[b].RawLabelY)
	}
	slices.SortStableFunc(left, byRawY)
	slices.SortStableFunc(right, byRawY)
	return left, right
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
