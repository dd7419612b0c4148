package radial

import (
	"github.com/wealthmap/wealthmap/pkg/chart"
)

// leaderElbow is the horizontal length of the final leader-line run into
// the label box.
const leaderElbow = 6.0

// bind assembles the final per-segment geometry: palette color, leader line
// from the anchor point to the label box, and the materialized left/right
// column orderings. It is the last pipeline stage and produces the Layout
// handed to renderers.
func bind(segs []Segment, left, right []int, cfg Config) Layout {
	out := make([]Segment, len(segs))
	copy(out, segs)

	for i := range out {
		s := &out[i]

		key := s.colorKey
		if key == "" {
			key = s.ID
		}
		s.Color = chart.ColorFor(key)

		// Anchor → elbow at the adjusted label height → label box edge.
		elbowX := s.LabelX - s.Side.sign()*leaderElbow
		s.Leader = []chart.Point{
			s.Anchor,
			{X: elbowX, Y: s.AdjustedY},
			{X: s.LabelX, Y: s.AdjustedY},
		}
	}

	return Layout{
		Segments: out,
		Left:     pick(out, left),
		Right:    pick(out, right),
		Config:   cfg,
	}
}

// pick materializes a column ordering as a segment slice.
func pick(segs []Segment, order []int) []Segment {
	if len(order) == 0 {
		return nil
	}
	col := make([]Segment, len(order))
	for i, idx := range order {
		col[i] = segs[idx]
	}
	return col
}
