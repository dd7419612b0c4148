package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wealthmap/wealthmap/pkg/cache"
	"github.com/wealthmap/wealthmap/pkg/chart"
	"github.com/wealthmap/wealthmap/pkg/chart/diverging"
	"github.com/wealthmap/wealthmap/pkg/chart/radial"
	"github.com/wealthmap/wealthmap/pkg/chart/sink"
	"github.com/wealthmap/wealthmap/pkg/errors"
	"github.com/wealthmap/wealthmap/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, items []chart.Item, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	result.ItemsHash = hashItems(items)
	result.Stats.ItemCount = len(items)

	// Stage 1: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(items))

	var layoutErr error
	switch opts.ChartType {
	case ChartDiverging:
		result.Diverging, result.CacheInfo.LayoutHit, layoutErr = r.divergingLayoutWithCacheInfo(ctx, items, result.ItemsHash, opts)
		result.Stats.SegmentCount = len(result.Diverging.Bars)
	default:
		result.Layout, result.CacheInfo.LayoutHit, layoutErr = r.layoutWithCacheInfo(ctx, items, result.ItemsHash, opts)
		result.Stats.SegmentCount = len(result.Layout.Segments)
	}
	result.Stats.LayoutTime = time.Since(layoutStart)
	observability.Pipeline().OnLayoutComplete(ctx, len(items), result.Stats.LayoutTime, layoutErr)
	if layoutErr != nil {
		return nil, layoutErr
	}

	r.Logger.Info("computed layout",
		"chart", opts.ChartType,
		"items", result.Stats.ItemCount,
		"segments", result.Stats.SegmentCount,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	var artifacts map[string][]byte
	var renderHit bool
	var renderErr error
	switch opts.ChartType {
	case ChartDiverging:
		artifacts, renderHit, renderErr = r.renderWithCacheInfo(ctx, layoutHash(result.Diverging), opts, func() (map[string][]byte, error) {
			return renderDiverging(result.Diverging, opts)
		})
	default:
		artifacts, renderHit, renderErr = r.renderWithCacheInfo(ctx, layoutHash(result.Layout), opts, func() (map[string][]byte, error) {
			return renderRadial(result.Layout, opts)
		})
	}
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, renderErr)
	if renderErr != nil {
		return nil, renderErr
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes a radial layout with caching and
// returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, items []chart.Item, opts Options) (radial.Layout, bool, error) {
	opts.SetLayoutDefaults()
	return r.layoutWithCacheInfo(ctx, items, hashItems(items), opts)
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo
// and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, items []chart.Item, opts Options) (radial.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, items, opts)
	return l, err
}

func (r *Runner) layoutWithCacheInfo(ctx context.Context, items []chart.Item, itemsHash string, opts Options) (radial.Layout, bool, error) {
	cacheKey := r.Keyer.LayoutKey(itemsHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "layout")
			cached, err := sink.UnmarshalLayout(data)
			if err == nil {
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		} else {
			observability.Cache().OnCacheMiss(ctx, "layout")
		}
	}

	layout := radial.Compute(items, opts.RadialConfig())

	// Cache the result
	if data, err := sink.RenderJSON(layout); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return layout, false, nil // Cache miss
}

func (r *Runner) divergingLayoutWithCacheInfo(ctx context.Context, items []chart.Item, itemsHash string, opts Options) (diverging.Layout, bool, error) {
	cacheKey := r.Keyer.LayoutKey(itemsHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "layout")
			var cached diverging.Layout
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, true, nil
			}
		} else {
			observability.Cache().OnCacheMiss(ctx, "layout")
		}
	}

	layout := diverging.Compute(items, opts.DivergingConfig())

	if data, err := marshalDiverging(layout); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return layout, false, nil
}

// RenderWithCacheInfo renders a radial layout with caching and returns
// cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l radial.Layout, opts Options) (map[string][]byte, bool, error) {
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	return r.renderWithCacheInfo(ctx, layoutHash(l), opts, func() (map[string][]byte, error) {
		return renderRadial(l, opts)
	})
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l radial.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

func (r *Runner) renderWithCacheInfo(ctx context.Context, hash string, opts Options, render func() (map[string][]byte, error)) (map[string][]byte, bool, error) {
	// Try to get all formats from cache
	allCached := !opts.Refresh
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}

	// Render all formats
	rendered, err := render()
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// hashItems computes the content hash of an item snapshot.
func hashItems(items []chart.Item) string {
	data, err := chart.MarshalItems(items)
	if err != nil {
		// Items that cannot be marshaled cannot be cached either; an
		// empty hash keeps cache keys distinct from real snapshots.
		return ""
	}
	return cache.Hash(data)
}

// layoutHash computes the content hash of a computed layout for artifact
// cache keys.
func layoutHash(l any) string {
	data, err := json.Marshal(l)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

func marshalDiverging(l diverging.Layout) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal diverging layout")
	}
	return data, nil
}
