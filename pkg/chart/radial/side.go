package radial

// classifySides assigns each segment a provisional label side from its
// anchor point: left of the vertical centerline means a left-column label.
// It also sets the provisional label box position (a fixed horizontal
// offset outward from the anchor) and the raw label height.
//
// The input slice is not modified; a new slice is returned.
func classifySides(segs []Segment, cfg Config) []Segment {
	out := make([]Segment, len(segs))
	copy(out, segs)

	for i := range out {
		s := &out[i]
		if s.Anchor.X < cfg.CenterX {
			s.Side = SideLeft
		} else {
			s.Side = SideRight
		}
		s.LabelX = s.Anchor.X + s.Side.sign()*cfg.LabelOffset
		s.RawLabelY = s.Anchor.Y
	}
	return out
}
