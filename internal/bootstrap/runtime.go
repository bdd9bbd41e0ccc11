// Package bootstrap wires the process-wide infrastructure shared by the server
// and the admin CLI.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"blogicum/internal/cache"
	"blogicum/internal/config"
	"blogicum/internal/database"
	"blogicum/internal/middleware"
	"blogicum/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// ApplySchema runs the schema policy on connect; migration tooling turns it off.
	ApplySchema bool
	// SeedCatalog upserts the built-in categories and locations.
	SeedCatalog bool
}

// InitRuntime connects to the database and Redis. Redis is optional: a nil
// client disables caching, rate limiting and events.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: opts.ApplySchema})
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	rdb := cache.InitRedis(cfg.RedisURL)

	if opts.SeedCatalog {
		if err := SeedCatalog(ctx, db); err != nil {
			return nil, nil, err
		}
	}
	return db, rdb, nil
}

// SeedCatalog loads the built-in catalog fixture into db.
func SeedCatalog(ctx context.Context, db *gorm.DB) error {
	fx, err := seed.ParseCatalog(nil)
	if err != nil {
		return err
	}
	categories, locations, err := seed.Catalog(db.WithContext(ctx), fx)
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	middleware.Logger.InfoContext(ctx, "catalog ensured",
		slog.Int("categories", len(categories)),
		slog.Int("locations", len(locations)),
	)
	return nil
}
