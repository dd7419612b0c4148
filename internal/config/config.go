// Package config loads server and chart configuration from a TOML file.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/wealthmap/wealthmap/pkg/errors"
	"github.com/wealthmap/wealthmap/pkg/holdings"
	"github.com/wealthmap/wealthmap/pkg/pipeline"
)

// Config is the full application configuration.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Mongo      MongoConfig      `toml:"mongo"`
	Redis      RedisConfig      `toml:"redis"`
	Cache      CacheConfig      `toml:"cache"`
	Chart      ChartConfig      `toml:"chart"`
	Allocation AllocationConfig `toml:"allocation"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// MongoConfig configures the holdings store. An empty URI selects the
// in-memory store.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// RedisConfig configures the shared cache. An empty Addr selects the file
// cache (or no cache, if disabled).
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// CacheConfig configures local caching.
type CacheConfig struct {
	Dir      string `toml:"dir"`
	Disabled bool   `toml:"disabled"`
}

// ChartConfig carries default chart geometry, overridable per request.
type ChartConfig struct {
	Width         float64 `toml:"width"`
	Height        float64 `toml:"height"`
	Radius        float64 `toml:"radius"`
	LabelDistance float64 `toml:"label_distance"`
	MinSpacing    float64 `toml:"min_spacing"`
	LabelOffset   float64 `toml:"label_offset"`
}

// AllocationConfig controls which asset types appear in allocation charts.
// An empty allow list admits all valid types.
type AllocationConfig struct {
	AllowTypes []string `toml:"allow_types"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Mongo:  MongoConfig{Database: "wealthmap", Collection: "holdings"},
		Chart: ChartConfig{
			Width:       pipeline.DefaultWidth,
			Height:      pipeline.DefaultHeight,
			Radius:      pipeline.DefaultRadius,
			MinSpacing:  pipeline.DefaultMinSpacing,
			LabelOffset: pipeline.DefaultLabelOffset,
		},
	}
}

// Load reads a TOML configuration file, filling unset fields from Default
// and applying environment overrides last. An empty path skips the file and
// loads defaults plus environment only.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeStorage, err, "read config file %s", path)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config file %s", path)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides file values with WEALTHMAP_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("WEALTHMAP_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("WEALTHMAP_MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("WEALTHMAP_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("WEALTHMAP_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("WEALTHMAP_CACHE_DIR"); v != "" {
		c.Cache.Dir = v
	}
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	for _, t := range c.Allocation.AllowTypes {
		if !holdings.AssetType(t).IsValid() {
			return errors.New(errors.ErrCodeInvalidConfig, "unknown asset type in allow_types: %q", t)
		}
	}
	if c.Chart.Radius < 0 || c.Chart.Width < 0 || c.Chart.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "chart geometry must not be negative")
	}
	return nil
}

// AllowTypes converts the configured allow list to asset types.
func (c Config) AllowTypes() []holdings.AssetType {
	out := make([]holdings.AssetType, 0, len(c.Allocation.AllowTypes))
	for _, t := range c.Allocation.AllowTypes {
		out = append(out, holdings.AssetType(t))
	}
	return out
}

// PipelineOptions converts the chart defaults to pipeline options.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Width:         c.Chart.Width,
		Height:        c.Chart.Height,
		Radius:        c.Chart.Radius,
		LabelDistance: c.Chart.LabelDistance,
		MinSpacing:    c.Chart.MinSpacing,
		LabelOffset:   c.Chart.LabelOffset,
	}
}
