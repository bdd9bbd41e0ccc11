// Command blogctl administers a Blogicum deployment: schema migrations,
// demo data, the category and location catalog, and the event stream.
package main

import (
	"context"
	"fmt"
	"os"

	"blogicum/internal/bootstrap"
	"blogicum/internal/config"
	"blogicum/internal/middleware"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:           "blogctl",
	Short:         "Blogicum administration tool",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(newMigrateCmd(), newSeedCmd(), newCategoryCmd(), newLocationCmd(), newEventsCmd())
}

// runtime is the connected infrastructure a command works against.
type runtime struct {
	cfg *config.Config
	db  *gorm.DB
	rdb *redis.Client
}

func (r *runtime) Close() {
	if sqlDB, err := r.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if r.rdb != nil {
		_ = r.rdb.Close()
	}
}

// connect loads configuration and opens the database and Redis. Schema
// changes are left to the migrate command.
func connect(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	middleware.Logger = middleware.NewLogger(cfg.Env)

	db, rdb, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{})
	if err != nil {
		return nil, err
	}
	return &runtime{cfg: cfg, db: db, rdb: rdb}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
