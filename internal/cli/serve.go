package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wealthmap/wealthmap/internal/config"
	"github.com/wealthmap/wealthmap/internal/server"
	"github.com/wealthmap/wealthmap/pkg/cache"
	"github.com/wealthmap/wealthmap/pkg/holdings"
	"github.com/wealthmap/wealthmap/pkg/pipeline"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the holdings and chart HTTP API",
		Long: `Run the holdings and chart HTTP API.

The server exposes holdings CRUD under /api/holdings and chart endpoints
under /api/allocation and /api/gains. Storage and cache backends come from
the configuration file: a MongoDB URI selects the persistent store (the
in-memory store otherwise), and a Redis address selects the shared cache
(a local file cache otherwise).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), configPath, addr)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML configuration file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides configuration)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, configPath, addr string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	startup := newProgress(c.Logger)
	store, err := c.newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer store.Close(context.Background())

	serverCache, err := c.newServerCache(cfg)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	startup.done("backends ready")

	runner := pipeline.NewRunner(serverCache, cache.NewScopedKeyer(nil, "portfolio"), c.Logger)
	defer runner.Close()

	srv := server.New(store, runner, cfg.PipelineOptions(), cfg.AllowTypes(), c.Logger)
	return srv.Run(ctx, cfg.Server.Addr)
}

// newStore selects the holdings store from the configuration. An empty Mongo
// URI falls back to the in-memory store.
func (c *CLI) newStore(ctx context.Context, cfg config.Config) (holdings.Store, error) {
	if cfg.Mongo.URI == "" {
		c.Logger.Warn("no mongo uri configured, holdings will not persist")
		return holdings.NewMemoryStore(), nil
	}
	c.Logger.Info("connecting to mongodb", "database", cfg.Mongo.Database)
	return holdings.NewMongoStore(ctx, holdings.MongoOptions{
		URI:        cfg.Mongo.URI,
		Database:   cfg.Mongo.Database,
		Collection: cfg.Mongo.Collection,
	})
}

// newServerCache selects the cache backend from the configuration: Redis when
// an address is given, otherwise a file cache, or no cache at all when
// disabled.
func (c *CLI) newServerCache(cfg config.Config) (cache.Cache, error) {
	if cfg.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	if cfg.Redis.Addr != "" {
		c.Logger.Info("connecting to redis", "addr", cfg.Redis.Addr)
		return cache.NewRedisCache(context.Background(), cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}
