// Package diverging computes label layouts for diverging bar charts.
//
// Items with signed values are laid out as horizontal bars extending left
// (negative) or right (positive) from a shared zero axis, gains against
// losses, inflows against outflows. Each bar's value label is placed just
// outside the bar end on the bar's side, with the same asymmetric
// minimum-spacing rule the radial engine uses: earlier labels keep their
// position, later labels absorb crowding by drifting downward.
//
// Like the radial engine, the computation is pure and stateless: the whole
// layout is rebuilt from scratch on every call.
package diverging

import (
	"math"

	"github.com/wealthmap/wealthmap/pkg/chart"
)

// Side is the direction a bar extends from the zero axis.
type Side string

const (
	// SideLeft holds negative values.
	SideLeft Side = "left"

	// SideRight holds positive values.
	SideRight Side = "right"
)

// Config holds the geometry inputs for a diverging bar layout.
type Config struct {
	// Width is the total frame width, including both bar directions.
	Width float64 `json:"width" bson:"width"`

	// BarHeight is the height of each bar.
	BarHeight float64 `json:"bar_height" bson:"bar_height"`

	// RowGap is the vertical gap between adjacent bars.
	RowGap float64 `json:"row_gap" bson:"row_gap"`

	// MinSpacing is the minimum vertical gap between adjacent label
	// centers on the same side.
	MinSpacing float64 `json:"min_spacing" bson:"min_spacing"`

	// LabelOffset is the horizontal gap between a bar end and its label.
	LabelOffset float64 `json:"label_offset" bson:"label_offset"`

	// Margin is the padding around the plot area.
	Margin float64 `json:"margin" bson:"margin"`
}

// DefaultConfig returns the geometry used when callers pass a zero Config.
func DefaultConfig() Config {
	return Config{
		Width:       480,
		BarHeight:   20,
		RowGap:      8,
		MinSpacing:  14,
		LabelOffset: 8,
		Margin:      24,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.BarHeight <= 0 {
		c.BarHeight = def.BarHeight
	}
	if c.RowGap < 0 {
		c.RowGap = def.RowGap
	}
	if c.MinSpacing <= 0 {
		c.MinSpacing = def.MinSpacing
	}
	if c.LabelOffset <= 0 {
		c.LabelOffset = def.LabelOffset
	}
	if c.Margin <= 0 {
		c.Margin = def.Margin
	}
	return c
}

// Bar is one positioned bar with its label placement.
type Bar struct {
	ID    string  `json:"id" bson:"id"`
	Label string  `json:"label" bson:"label"`
	Value float64 `json:"value" bson:"value"`
	Side  Side    `json:"side" bson:"side"`

	// Bar rectangle.
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	// Label anchor, outside the bar end on the bar's side.
	LabelX    float64 `json:"label_x" bson:"label_x"`
	RawLabelY float64 `json:"raw_label_y" bson:"raw_label_y"`
	AdjustedY float64 `json:"adjusted_y" bson:"adjusted_y"`

	Color string `json:"color,omitempty" bson:"color,omitempty"`
}

// Layout is the computed diverging bar layout. A zero Layout is the empty
// sentinel for inputs with no non-zero values.
type Layout struct {
	Bars   []Bar   `json:"bars" bson:"bars"`
	AxisX  float64 `json:"axis_x" bson:"axis_x"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Config Config  `json:"config" bson:"config"`
}

// IsEmpty reports whether the layout carries no bars.
func (l Layout) IsEmpty() bool { return len(l.Bars) == 0 }

// Compute lays out items as diverging bars in input order. Items with a
// zero value are dropped; negative values extend left of the axis.
func Compute(items []chart.Item, cfg Config) Layout {
	cfg = cfg.withDefaults()

	kept := make([]chart.Item, 0, len(items))
	var maxLeft, maxRight float64
	for _, it := range items {
		if it.Value == 0 {
			continue
		}
		kept = append(kept, it)
		if it.Value < 0 {
			maxLeft = math.Max(maxLeft, -it.Value)
		} else {
			maxRight = math.Max(maxRight, it.Value)
		}
	}
	if len(kept) == 0 {
		return Layout{}
	}

	// The axis splits the plot area proportionally to the two extents so
	// the longest bar on each side just fits.
	plotWidth := cfg.Width - 2*cfg.Margin
	extent := maxLeft + maxRight
	scale := plotWidth / extent
	axisX := cfg.Margin + maxLeft*scale

	bars := make([]Bar, 0, len(kept))
	for i, it := range kept {
		b := Bar{
			ID:     it.ID,
			Label:  it.Label,
			Value:  it.Value,
			Height: cfg.BarHeight,
			Y:      cfg.Margin + float64(i)*(cfg.BarHeight+cfg.RowGap),
		}
		w := math.Abs(it.Value) * scale
		if it.Value < 0 {
			b.Side = SideLeft
			b.X = axisX - w
			b.LabelX = b.X - cfg.LabelOffset
		} else {
			b.Side = SideRight
			b.X = axisX
			b.LabelX = axisX + w + cfg.LabelOffset
		}
		b.Width = w
		b.RawLabelY = b.Y + cfg.BarHeight/2

		key := it.ColorKey
		if key == "" {
			key = it.ID
		}
		b.Color = chart.ColorFor(key)
		bars = append(bars, b)
	}

	spaceSide(bars, SideLeft, cfg.MinSpacing)
	spaceSide(bars, SideRight, cfg.MinSpacing)

	last := bars[len(bars)-1]
	height := last.Y + cfg.BarHeight + cfg.Margin
	for _, b := range bars {
		height = math.Max(height, b.AdjustedY+cfg.Margin)
	}

	return Layout{
		Bars:   bars,
		AxisX:  axisX,
		Width:  cfg.Width,
		Height: height,
		Config: cfg,
	}
}

// spaceSide applies the forward minimum-spacing pass to one side's labels.
// Bars are already in top-to-bottom input order, so no re-sort is needed.
func spaceSide(bars []Bar, side Side, minSpacing float64) {
	first := true
	prev := 0.0
	for i := range bars {
		b := &bars[i]
		if b.Side != side {
			continue
		}
		b.AdjustedY = b.RawLabelY
		if !first && b.AdjustedY < prev+minSpacing {
			b.AdjustedY = prev + minSpacing
		}
		prev = b.AdjustedY
		first = false
	}
}
