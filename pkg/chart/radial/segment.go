package radial

import (
	"math"

	"github.com/wealthmap/wealthmap/pkg/chart"
)

// fullSweep is the angular extent of a complete circle, in degrees.
const fullSweep = 360.0

// Arc describes one pie wedge with enough geometry for a renderer to draw
// it without further trigonometry.
type Arc struct {
	CenterX float64     `json:"center_x" bson:"center_x"`
	CenterY float64     `json:"center_y" bson:"center_y"`
	Radius  float64     `json:"radius" bson:"radius"`
	Start   chart.Point `json:"start" bson:"start"`
	End     chart.Point `json:"end" bson:"end"`

	// LargeArc marks segments sweeping more than half the circle; SVG arc
	// commands need the large-arc flag set for them.
	LargeArc bool `json:"large_arc" bson:"large_arc"`

	// FullCircle marks the degenerate single-segment case. A 0°→360° arc
	// command collapses to an invisible arc in most rendering primitives,
	// so renderers must draw a closed circle instead.
	FullCircle bool `json:"full_circle,omitempty" bson:"full_circle,omitempty"`
}

// Segment is one wedge of the radial chart together with its label
// placement. Angles are in degrees, measured clockwise from 12 o'clock.
type Segment struct {
	ID         string  `json:"id" bson:"id"`
	Label      string  `json:"label" bson:"label"`
	Value      float64 `json:"value" bson:"value"`
	Percentage float64 `json:"percentage" bson:"percentage"`

	StartAngle float64 `json:"start_angle" bson:"start_angle"`
	EndAngle   float64 `json:"end_angle" bson:"end_angle"`
	MidAngle   float64 `json:"mid_angle" bson:"mid_angle"`

	Arc    Arc         `json:"arc" bson:"arc"`
	Anchor chart.Point `json:"anchor" bson:"anchor"`

	Side      Side    `json:"side,omitempty" bson:"side,omitempty"`
	LabelX    float64 `json:"label_x" bson:"label_x"`
	RawLabelY float64 `json:"raw_label_y" bson:"raw_label_y"`
	AdjustedY float64 `json:"adjusted_y" bson:"adjusted_y"`

	Color  string        `json:"color,omitempty" bson:"color,omitempty"`
	Leader []chart.Point `json:"leader,omitempty" bson:"leader,omitempty"`

	colorKey string
}

// pointAt returns the point at the given distance from the center along an
// angle. Angles are clockwise from the top, so the math rotates by -90°
// before projecting.
func pointAt(cfg Config, angleDeg, distance float64) chart.Point {
	rad := (angleDeg - 90) * math.Pi / 180
	return chart.Point{
		X: cfg.CenterX + distance*math.Cos(rad),
		Y: cfg.CenterY + distance*math.Sin(rad),
	}
}

// buildSegments turns weighted items into angular pie segments in input
// order. Items with a non-positive value are dropped; if the surviving
// total is not positive, nil is returned.
func buildSegments(items []chart.Item, cfg Config) []Segment {
	var total float64
	kept := make([]chart.Item, 0, len(items))
	for _, it := range items {
		if it.Value <= 0 {
			continue
		}
		kept = append(kept, it)
		total += it.Value
	}
	if total <= 0 {
		return nil
	}

	if len(kept) == 1 {
		return []Segment{fullCircleSegment(kept[0], cfg)}
	}

	segs := make([]Segment, 0, len(kept))
	var cursor float64
	for _, it := range kept {
		pct := it.Value / total * 100
		start := cursor
		end := start + pct/100*fullSweep
		cursor = end

		seg := Segment{
			ID:         it.ID,
			Label:      it.Label,
			Value:      it.Value,
			Percentage: pct,
			StartAngle: start,
			EndAngle:   end,
			colorKey:   it.ColorKey,
		}
		segs = append(segs, seg)
	}

	// Cumulative rounding drift would leave a visible seam at 12 o'clock;
	// the final segment always closes the circle exactly.
	segs[len(segs)-1].EndAngle = fullSweep

	for i := range segs {
		s := &segs[i]
		s.MidAngle = (s.StartAngle + s.EndAngle) / 2
		s.Arc = Arc{
			CenterX:  cfg.CenterX,
			CenterY:  cfg.CenterY,
			Radius:   cfg.Radius,
			Start:    pointAt(cfg, s.StartAngle, cfg.Radius),
			End:      pointAt(cfg, s.EndAngle, cfg.Radius),
			LargeArc: s.Percentage > 50,
		}
		s.Anchor = pointAt(cfg, s.MidAngle, cfg.LabelDistance)
	}
	return segs
}

// fullCircleSegment handles the exactly-one-item case explicitly: the
// segment spans the whole circle rather than an arc between two angles
// that differ by less than epsilon.
func fullCircleSegment(it chart.Item, cfg Config) Segment {
	s := Segment{
		ID:         it.ID,
		Label:      it.Label,
		Value:      it.Value,
		Percentage: 100,
		StartAngle: 0,
		EndAngle:   fullSweep,
		MidAngle:   fullSweep / 2,
		colorKey:   it.ColorKey,
	}
	s.Arc = Arc{
		CenterX:    cfg.CenterX,
		CenterY:    cfg.CenterY,
		Radius:     cfg.Radius,
		Start:      pointAt(cfg, 0, cfg.Radius),
		End:        pointAt(cfg, fullSweep, cfg.Radius),
		LargeArc:   true,
		FullCircle: true,
	}
	s.Anchor = pointAt(cfg, s.MidAngle, cfg.LabelDistance)
	return s
}
