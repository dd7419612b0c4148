package radial

// spaceLabels enforces the minimum vertical gap between stacked labels in
// one column. order holds the column's segment indices sorted top-to-bottom
// by raw label height.
//
// The pass is a single forward sweep: the first label keeps its true
// geometric position and every later label is pushed down just far enough
// to clear its predecessor. Labels are never pulled upward, so crowding
// accumulates toward the bottom of the column; the topmost label stays
// anchored to truth at the cost of longer leader lines further down.
//
// The input slice is not modified; a new slice is returned.
func spaceLabels(segs []Segment, order []int, minSpacing float64) []Segment {
	out := make([]Segment, len(segs))
	copy(out, segs)

	prev := 0.0
	for i, idx := range order {
		s := &out[idx]
		s.AdjustedY = s.RawLabelY
		if i > 0 && s.AdjustedY < prev+minSpacing {
			s.AdjustedY = prev + minSpacing
		}
		prev = s.AdjustedY
	}
	return out
}
