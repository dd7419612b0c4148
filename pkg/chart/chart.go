// Package chart defines the shared input model for Wealthmap's chart
// layout engines.
//
// An [Item] is one weighted entry in a breakdown: an asset class and its
// portfolio value, a sector and its share, etc. The layout engines in the
// subpackages (radial, diverging) turn item slices into positioned geometry
// that a renderer can draw without further computation.
//
// Items carry no currency or formatting information: suppliers are expected
// to resolve holdings into plain weights before handing them to a layout.
package chart

// Item is one weighted entry in a breakdown chart.
//
// Value must be non-negative for radial layouts; the diverging layout also
// accepts negative values (losses, outflows). Items with a zero or negative
// value are dropped by the radial pipeline.
type Item struct {
	ID       string  `json:"id" bson:"id"`
	Label    string  `json:"label" bson:"label"`
	Value    float64 `json:"value" bson:"value"`
	ColorKey string  `json:"color_key,omitempty" bson:"color_key,omitempty"`
}

// Point is a 2D coordinate in chart space. The origin is the top-left
// corner with y growing downward, matching SVG conventions.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}
