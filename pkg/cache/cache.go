// Package cache provides content-addressed caching for layout and render
// artifacts.
//
// The layout pipeline is pure, so its outputs are cacheable by a hash of
// their inputs: a layout is keyed by the item snapshot and geometry, a
// rendered artifact by the layout it was produced from plus render options.
// Three backends implement the [Cache] interface:
//
//   - FileCache: directory-backed cache for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: no-op cache for tests or disabled caching
//
// Keys are produced by a [Keyer] so all consumers (CLI, API) agree on the
// key layout and cached results are shared between them.
package cache

import (
	"context"
	"time"
)

// TTLs per artifact class. Layouts and artifacts derive purely from their
// inputs, so the TTL only bounds cache growth, not staleness.
const (
	// TTLLayout is the lifetime of cached layout computations.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLHoldings is the lifetime of cached holdings snapshots, which can
	// go stale when prices move.
	TTLHoldings = 5 * time.Minute
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the geometry inputs that distinguish layout cache
// entries for the same item snapshot.
type LayoutKeyOpts struct {
	ChartType     string  `json:"chart_type,omitempty"`
	CenterX       float64 `json:"center_x"`
	CenterY       float64 `json:"center_y"`
	Radius        float64 `json:"radius"`
	LabelDistance float64 `json:"label_distance"`
	MinSpacing    float64 `json:"min_spacing"`
	LabelOffset   float64 `json:"label_offset"`
}

// ArtifactKeyOpts are the render options that distinguish artifact cache
// entries for the same layout.
type ArtifactKeyOpts struct {
	Format      string `json:"format"`
	Title       string `json:"title,omitempty"`
	Interactive bool   `json:"interactive,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey generates a key for a layout computed from the item
	// snapshot with the given hash.
	LayoutKey(itemsHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for an artifact rendered from the
	// layout with the given hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string

	// HoldingsKey generates a key for a holdings snapshot in the given
	// scope (typically a portfolio or user identifier).
	HoldingsKey(scope string) string
}

// DefaultKeyer is the standard key layout shared by CLI and API.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (DefaultKeyer) LayoutKey(itemsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", itemsHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// HoldingsKey generates a key for holdings snapshot caching.
func (DefaultKeyer) HoldingsKey(scope string) string {
	return "holdings:" + scope
}
