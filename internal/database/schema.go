package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"blogicum/internal/config"
	"blogicum/internal/middleware"

	"gorm.io/gorm"
)

// Values accepted by DB_SCHEMA_MODE.
const (
	SchemaModeHybrid = "hybrid"
	SchemaModeSQL    = "sql"
	SchemaModeAuto   = "auto"
)

// SchemaPlan says which schema mechanisms run on connect.
type SchemaPlan struct {
	Mode    string
	RunSQL  bool
	RunAuto bool
}

// PlanSchema resolves DB_SCHEMA_MODE for the configured environment:
//
//	sql     embedded SQL migrations only
//	auto    GORM AutoMigrate only; refused in production and staging unless
//	        DB_AUTOMIGRATE_ALLOW_DESTRUCTIVE is set
//	hybrid  SQL migrations everywhere, AutoMigrate outside production and staging
func PlanSchema(cfg *config.Config) (SchemaPlan, error) {
	plan := SchemaPlan{Mode: strings.ToLower(strings.TrimSpace(cfg.DBSchemaMode))}
	if plan.Mode == "" {
		plan.Mode = SchemaModeHybrid
	}

	var guarded bool
	switch strings.ToLower(strings.TrimSpace(cfg.Env)) {
	case "production", "prod", "staging", "stage":
		guarded = true
	}

	switch plan.Mode {
	case SchemaModeSQL:
		plan.RunSQL = true
	case SchemaModeAuto:
		if guarded && !cfg.DBAutoMigrateAllowDestructive {
			return plan, fmt.Errorf("refusing DB_SCHEMA_MODE=auto in %q without DB_AUTOMIGRATE_ALLOW_DESTRUCTIVE=true", cfg.Env)
		}
		plan.RunAuto = true
	case SchemaModeHybrid:
		plan.RunSQL = true
		plan.RunAuto = !guarded
	default:
		return plan, fmt.Errorf("unsupported DB_SCHEMA_MODE %q", plan.Mode)
	}
	return plan, nil
}

// ApplySchema brings the database up to date according to the schema plan.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	plan, err := PlanSchema(cfg)
	if err != nil {
		return err
	}

	if plan.RunSQL {
		if _, err := NewMigrator(db).Up(ctx); err != nil {
			return err
		}
	}
	if plan.RunAuto {
		middleware.Logger.InfoContext(ctx, "running GORM AutoMigrate", slog.String("mode", plan.Mode), slog.String("env", cfg.Env))
		if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}
	return nil
}

// SchemaStatus is the plan plus the migration state of the database.
type SchemaStatus struct {
	SchemaPlan
	Environment string
	Applied     []int
	Pending     []Migration
}

// GetSchemaStatus reports the schema plan and, when SQL migrations are part
// of it, which versions are applied and pending.
func GetSchemaStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) (*SchemaStatus, error) {
	plan, err := PlanSchema(cfg)
	if err != nil {
		return nil, err
	}
	status := &SchemaStatus{SchemaPlan: plan, Environment: cfg.Env}
	if !plan.RunSQL {
		return status, nil
	}

	migrator := NewMigrator(db)
	if status.Applied, err = migrator.Applied(ctx); err != nil {
		return nil, err
	}
	if status.Pending, err = migrator.Pending(ctx); err != nil {
		return nil, err
	}
	return status, nil
}
