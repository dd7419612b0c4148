// Package sink provides output format renderers for chart layouts.
//
// # Overview
//
// A "sink" transforms a computed layout into a final output format. This
// package provides renderers for:
//
//   - SVG: Scalable vector graphics with hover interactivity
//   - JSON: Layout data export for external tools and caching
//
// # SVG Output
//
// [RenderSVG] produces an SVG document from a radial layout:
//
//	svg := sink.RenderSVG(layout,
//	    sink.WithTitle("Asset Allocation"),
//	    sink.WithState(state),
//	)
//
// [WithState] applies an interaction state so a hovered or selected
// segment is emphasized and the rest are dimmed. [RenderDivergingSVG]
// does the same for diverging bar layouts.
//
// # JSON Output
//
// [RenderJSON] exports the layout as JSON, enabling:
//
//   - Integration with external visualization tools
//   - Caching of layout computations
//   - Round-trip rendering (re-import and render identically)
//
// [WriteLayoutFile] and [ReadLayoutFile] wrap the JSON codec with file
// handling and validation.
package sink
