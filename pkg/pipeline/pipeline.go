// Package pipeline provides the core chart pipeline for Wealthmap.
//
// This package implements the complete layout → render pipeline that can be
// used by CLI, API, and worker components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: Compute segment geometry and label positions for the items
//  2. Render: Generate output in various formats (SVG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// Both stages are pure functions of their inputs, so results are cached by
// a content hash of the items and options.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Title:   "Asset Allocation",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, items, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	layout, err := runner.ComputeLayout(ctx, items, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wealthmap/wealthmap/pkg/cache"
	"github.com/wealthmap/wealthmap/pkg/chart/diverging"
	"github.com/wealthmap/wealthmap/pkg/chart/radial"
	"github.com/wealthmap/wealthmap/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 400.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 400.0

	// DefaultRadius is the default pie radius in pixels.
	DefaultRadius = 120.0

	// DefaultMinSpacing is the default minimum vertical gap between labels.
	DefaultMinSpacing = 18.0

	// DefaultLabelOffset is the default horizontal gap between a label
	// anchor and its text.
	DefaultLabelOffset = 12.0
)

// Chart type constants.
const (
	ChartRadial    = "radial"
	ChartDiverging = "diverging"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// ValidChartTypes is the set of supported chart types.
var ValidChartTypes = map[string]bool{
	ChartRadial:    true,
	ChartDiverging: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Chart type: radial (default) or diverging.
	ChartType string `json:"chart_type,omitempty"`

	// Layout options
	Width         float64 `json:"width,omitempty"`
	Height        float64 `json:"height,omitempty"`
	Radius        float64 `json:"radius,omitempty"`
	LabelDistance float64 `json:"label_distance,omitempty"`
	MinSpacing    float64 `json:"min_spacing,omitempty"`
	LabelOffset   float64 `json:"label_offset,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Title       string   `json:"title,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`

	// Refresh bypasses the cache for reads; results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed radial layout (radial charts only).
	Layout radial.Layout

	// Diverging is the computed bar layout (diverging charts only).
	Diverging diverging.Layout

	// ItemsHash is the content hash of the input items.
	ItemsHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount    int
	SegmentCount int
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateChartType checks that a chart type is valid.
func ValidateChartType(chartType string) error {
	if !ValidChartTypes[chartType] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid chart type: %q (must be one of: radial, diverging)", chartType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateChartType(o.ChartType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Radius <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "radius must be positive")
	}
	if o.Radius*2 > min(o.Width, o.Height) {
		return errors.New(errors.ErrCodeInvalidConfig, "radius %.0f does not fit a %.0fx%.0f frame", o.Radius, o.Width, o.Height)
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.ChartType == "" {
		o.ChartType = ChartRadial
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Radius == 0 {
		o.Radius = DefaultRadius
	}
	if o.LabelDistance == 0 {
		o.LabelDistance = o.Radius * 1.25
	}
	if o.MinSpacing == 0 {
		o.MinSpacing = DefaultMinSpacing
	}
	if o.LabelOffset == 0 {
		o.LabelOffset = DefaultLabelOffset
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// RadialConfig converts the options to a radial chart geometry.
func (o *Options) RadialConfig() radial.Config {
	return radial.Config{
		CenterX:       o.Width / 2,
		CenterY:       o.Height / 2,
		Radius:        o.Radius,
		LabelDistance: o.LabelDistance,
		MinSpacing:    o.MinSpacing,
		LabelOffset:   o.LabelOffset,
	}
}

// DivergingConfig converts the options to a diverging bar geometry.
func (o *Options) DivergingConfig() diverging.Config {
	return diverging.Config{
		Width:       o.Width,
		MinSpacing:  o.MinSpacing,
		LabelOffset: o.LabelOffset,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		ChartType:     o.ChartType,
		CenterX:       o.Width / 2,
		CenterY:       o.Height / 2,
		Radius:        o.Radius,
		LabelDistance: o.LabelDistance,
		MinSpacing:    o.MinSpacing,
		LabelOffset:   o.LabelOffset,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Title:       o.Title,
		Interactive: o.Interactive,
	}
}
