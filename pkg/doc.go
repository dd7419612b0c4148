// Package pkg provides the core libraries for Wealthmap portfolio charts.
//
// # Overview
//
// Wealthmap tracks investment holdings and turns them into radial allocation
// charts with collision-free external labels. The pkg directory is organized
// into five main areas:
//
//  1. [holdings] - Domain logic (asset types, valuation, stores)
//  2. [chart] - Chart geometry (radial layout, diverging bars, interaction)
//  3. [chart/sink] - Output formats (SVG, JSON)
//  4. [cache] - Content-addressed caching (file, Redis)
//  5. [pipeline] - Orchestration (items → layout → artifacts)
//
// # Architecture
//
// The typical data flow through Wealthmap:
//
//	Holdings store (MongoDB or memory)
//	         ↓
//	    [holdings] package (aggregate market value per asset type)
//	         ↓
//	    [chart/radial] package (segments + label placement)
//	         ↓
//	    [chart/sink] package (SVG, JSON)
//
// # Quick Start
//
// Compute a layout and render it to SVG:
//
//	import (
//	    "github.com/wealthmap/wealthmap/pkg/chart"
//	    "github.com/wealthmap/wealthmap/pkg/chart/radial"
//	    "github.com/wealthmap/wealthmap/pkg/chart/sink"
//	)
//
//	items := []chart.Item{
//	    {ID: "stock", Label: "Stocks", Value: 60000},
//	    {ID: "cash", Label: "Cash", Value: 15000},
//	}
//	layout := radial.Compute(items, radial.DefaultConfig())
//	svg := sink.RenderSVG(layout, sink.WithTitle("Allocation"))
//
// # Main Packages
//
// [holdings] - Holdings with decimal-precise valuation, asset type
// normalization, and allocation aggregation. Stores: MongoDB and in-memory.
//
// [chart] - Shared item and point types, deterministic color palette, and
// item file serialization.
//
// [chart/radial] - The label layout engine: segment building, side
// classification, side balancing, vertical spacing, and leader binding.
//
// [chart/diverging] - Horizontal diverging bar charts for gain/loss views.
//
// [chart/interaction] - Pure reducer over hover and click events, driving
// emphasis and dimming in rendered output.
//
// [cache] - Content-addressed cache keyed by input hashes, with file, Redis,
// and null backends.
//
// [pipeline] - The complete items → layout → artifacts pipeline used by both
// the CLI and the HTTP API, with per-stage cache reuse.
//
// [errors] - Coded errors shared across packages, mapped to HTTP statuses by
// the API layer.
//
// [observability] - Pluggable hooks for pipeline, cache, and store events.
//
// [holdings]: https://pkg.go.dev/github.com/wealthmap/wealthmap/pkg/holdings
// [chart]: https://pkg.go.dev/github.com/wealthmap/wealthmap/pkg/chart
// [chart/radial]: https://pkg.go.dev/github.com/wealthmap/wealthmap/pkg/chart/radial
// [chart/diverging]: https://pkg.go.dev/github.com/wealthmap/wealthmap/pkg/chart/diverging
// [chart/interaction]: https://pkg.go.dev/github.com/wealthmap/wealthmap/pkg/chart/interaction
// [chart/sink]: https://pkg.go.dev/github.com/wealthmap/wealthmap/pkg/chart/sink
// [cache]: https://pkg.go.dev/github.com/wealthmap/wealthmap/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/wealthmap/wealthmap/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/wealthmap/wealthmap/pkg/errors
// [observability]: https://pkg.go.dev/github.com/wealthmap/wealthmap/pkg/observability
package pkg
