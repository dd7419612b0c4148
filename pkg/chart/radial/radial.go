// Package radial computes external label layouts for radial (pie/donut)
// charts.
//
// Given a set of weighted items, the engine places a text label for every
// segment outside the circle, split between a left and a right column,
// without vertical overlap, while keeping each label connected to its
// segment via a leader line. The computation is a fixed pipeline of pure
// stages:
//
//  1. Segment building: weights → angular segments with arc descriptors
//  2. Side classification: each segment gets a left/right label side
//  3. Side balancing: columns are rebalanced to near-equal counts
//  4. Vertical spacing: a minimum gap is enforced within each column
//  5. Binding: final geometry (leader lines, colors) is assembled
//
// Every stage produces a new segment slice; nothing is retained between
// calls. [Compute] is referentially pure: identical inputs yield identical
// layouts, so it is safe to run off the main rendering path.
package radial

import "github.com/wealthmap/wealthmap/pkg/chart"

// epsilon bounds the floating-point drift tolerated in angle sums and
// percentage totals.
const epsilon = 1e-9

// Side is the column a segment's label is placed in.
type Side string

const (
	// SideLeft places the label to the left of the circle.
	SideLeft Side = "left"

	// SideRight places the label to the right of the circle.
	SideRight Side = "right"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// sign returns the horizontal direction of the side: -1 for left, +1 for
// right. Label box offsets and leader elbows are displaced by this sign.
func (s Side) sign() float64 {
	if s == SideLeft {
		return -1
	}
	return 1
}

// Config holds the geometry inputs for a radial layout.
type Config struct {
	// CenterX, CenterY locate the circle center in chart space.
	CenterX float64 `json:"center_x" bson:"center_x"`
	CenterY float64 `json:"center_y" bson:"center_y"`

	// Radius is the pie radius used for wedge arcs.
	Radius float64 `json:"radius" bson:"radius"`

	// LabelDistance is the radius of the anchor circle: the leader line
	// of each segment starts at this distance from the center, along the
	// segment's mid-angle.
	LabelDistance float64 `json:"label_distance" bson:"label_distance"`

	// MinSpacing is the minimum vertical gap between adjacent labels in
	// the same column.
	MinSpacing float64 `json:"min_spacing" bson:"min_spacing"`

	// LabelOffset is the fixed horizontal distance between a segment's
	// anchor point and its label box. The sign follows the label side.
	LabelOffset float64 `json:"label_offset" bson:"label_offset"`
}

// DefaultConfig returns the geometry used when callers pass a zero Config.
func DefaultConfig() Config {
	return Config{
		CenterX:       200,
		CenterY:       200,
		Radius:        120,
		LabelDistance: 150,
		MinSpacing:    18,
		LabelOffset:   12,
	}
}

// withDefaults fills zero fields from DefaultConfig. LabelDistance defaults
// relative to the radius so custom radii keep labels outside the circle.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Radius <= 0 {
		c.Radius = def.Radius
	}
	if c.CenterX == 0 {
		c.CenterX = def.CenterX
	}
	if c.CenterY == 0 {
		c.CenterY = def.CenterY
	}
	if c.LabelDistance <= 0 {
		c.LabelDistance = c.Radius * 1.25
	}
	if c.MinSpacing <= 0 {
		c.MinSpacing = def.MinSpacing
	}
	if c.LabelOffset <= 0 {
		c.LabelOffset = def.LabelOffset
	}
	return c
}

// Layout is the computed label layout for one radial chart.
//
// Segments preserves the input item order. Left and Right hold the same
// segments grouped by label column, ordered top-to-bottom by their raw
// anchor height. A zero Layout is the empty sentinel returned for inputs
// with no positive-value items; check [Layout.IsEmpty] before rendering.
type Layout struct {
	Segments []Segment `json:"segments" bson:"segments"`
	Left     []Segment `json:"left,omitempty" bson:"left,omitempty"`
	Right    []Segment `json:"right,omitempty" bson:"right,omitempty"`
	Config   Config    `json:"config" bson:"config"`
}

// IsEmpty reports whether the layout carries no segments. Callers render a
// "no data" state instead of a chart.
func (l Layout) IsEmpty() bool { return len(l.Segments) == 0 }

// Compute runs the full label layout pipeline.
//
// Items with a non-positive value are discarded. If nothing survives, the
// empty sentinel is returned; otherwise the result satisfies the layout
// invariants: percentages sum to 100 within epsilon, input order is kept in
// Segments, column counts differ by at most one for two or more segments,
// and adjacent labels within a column are at least MinSpacing apart.
func Compute(items []chart.Item, cfg Config) Layout {
	cfg = cfg.withDefaults()

	segs := buildSegments(items, cfg)
	if len(segs) == 0 {
		return Layout{}
	}

	segs = classifySides(segs, cfg)
	segs = balanceSides(segs, cfg)

	left, right := sideOrders(segs)
	segs = spaceLabels(segs, left, cfg.MinSpacing)
	segs = spaceLabels(segs, right, cfg.MinSpacing)

	return bind(segs, left, right, cfg)
}
