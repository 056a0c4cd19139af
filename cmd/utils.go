package cmd

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/brad-richardson/overture-geocode/pkg/cache"
	"github.com/brad-richardson/overture-geocode/pkg/config"
	"github.com/brad-richardson/overture-geocode/pkg/log"
	"github.com/brad-richardson/overture-geocode/pkg/shard"
	"github.com/brad-richardson/overture-geocode/pkg/store"
)

// loadConfig reads the config named by the global --config flag and applies
// the global --debug flag.
func loadConfig(c *cli.Command) (*config.Config, error) {
	if c.Bool("debug") {
		log.SetGlobalDebug(true)
	}

	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// buildService wires the object store, cache and shard service from config.
func buildService(cfg *config.Config) (*shard.Service, error) {
	var st store.ObjectStore
	switch {
	case cfg.StoreDir != "":
		st = store.NewDir(cfg.StoreDir)
	case cfg.StoreURL != "":
		st = store.NewHTTP(cfg.StoreURL)
	default:
		return nil, fmt.Errorf("no object store configured: set store_url or store_dir")
	}

	var c cache.Cache
	switch cfg.Cache.Backend {
	case "memory":
		c = cache.NewMemory()
	case "redis":
		if cfg.Cache.RedisAddr == "" {
			return nil, fmt.Errorf("cache backend is redis but redis_addr is empty")
		}
		c = cache.OpenRedis(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
	case "none":
		c = nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}

	ttls := cache.TTLs{
		Catalog:    cfg.Cache.CatalogTTL.Duration,
		Collection: cfg.Cache.CollectionTTL.Duration,
		Shard:      cfg.Cache.ShardTTL.Duration,
	}
	return shard.NewService(st, c, ttls), nil
}
