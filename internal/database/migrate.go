package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"blogicum/internal/middleware"

	"gorm.io/gorm"
)

// Migration is one versioned pair of up/down scripts.
type Migration struct {
	Version    int
	Name       string
	UpScript   string
	DownScript string
}

func (m Migration) String() string {
	return fmt.Sprintf("%06d_%s", m.Version, m.Name)
}

//go:embed migrations/*.sql
var migrationFS embed.FS

var embedded []Migration

func init() {
	loaded, err := LoadMigrations(migrationFS, "migrations")
	if err != nil {
		middleware.Logger.Error("failed to register migrations", slog.String("error", err.Error()))
		return
	}
	embedded = loaded
}

// Migrations returns the embedded migrations in version order.
func Migrations() []Migration {
	return embedded
}

// LoadMigrations reads NNNNNN_name.up.sql / .down.sql pairs from dir, sorted
// by version. Files that do not follow the naming scheme are skipped.
func LoadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	var out []Migration
	for _, entry := range entries {
		file := entry.Name()
		base, ok := strings.CutSuffix(file, ".up.sql")
		if entry.IsDir() || !ok {
			continue
		}
		rawVersion, name, ok := strings.Cut(base, "_")
		version, err := strconv.Atoi(rawVersion)
		if !ok || err != nil {
			middleware.Logger.Warn("skipping misnamed migration", slog.String("file", file))
			continue
		}

		up, err := fs.ReadFile(fsys, path.Join(dir, file))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		down, err := fs.ReadFile(fsys, path.Join(dir, base+".down.sql"))
		if err != nil {
			return nil, fmt.Errorf("migration %s has no down script: %w", base, err)
		}
		out = append(out, Migration{Version: version, Name: name, UpScript: string(up), DownScript: string(down)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// MigrationLog is a row of the migration_logs table.
type MigrationLog struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:255;not null"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

func (MigrationLog) TableName() string {
	return "migration_logs"
}

// Migrator applies an ordered set of migrations, recording each applied
// version in migration_logs.
type Migrator struct {
	db  *gorm.DB
	set []Migration
}

// NewMigrator returns a migrator over the embedded schema migrations.
func NewMigrator(db *gorm.DB) *Migrator {
	return &Migrator{db: db, set: embedded}
}

// Applied lists the recorded versions in ascending order. A database that
// was never migrated has none.
func (m *Migrator) Applied(ctx context.Context) ([]int, error) {
	db := m.db.WithContext(ctx)
	if !db.Migrator().HasTable(&MigrationLog{}) {
		return []int{}, nil
	}
	var versions []int
	if err := db.Model(&MigrationLog{}).Order("version ASC").Pluck("version", &versions).Error; err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	return versions, nil
}

// Pending returns the migrations not yet applied. Recorded versions the set
// does not know about mean the database is ahead of this binary, which is
// reported as an error.
func (m *Migrator) Pending(ctx context.Context) ([]Migration, error) {
	applied, err := m.Applied(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[int]bool, len(m.set))
	for _, mig := range m.set {
		known[mig.Version] = true
	}
	done := make(map[int]bool, len(applied))
	var unknown []string
	for _, v := range applied {
		done[v] = true
		if !known[v] {
			unknown = append(unknown, fmt.Sprintf("%06d", v))
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("migration_logs contains versions not present in code: %s", strings.Join(unknown, ", "))
	}

	var pending []Migration
	for _, mig := range m.set {
		if !done[mig.Version] {
			pending = append(pending, mig)
		}
	}
	return pending, nil
}

// Up applies every pending migration, each in its own transaction, and
// returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.db.WithContext(ctx).AutoMigrate(&MigrationLog{}); err != nil {
		return 0, fmt.Errorf("ensure migration_logs: %w", err)
	}
	pending, err := m.Pending(ctx)
	if err != nil {
		return 0, err
	}

	for i, mig := range pending {
		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(mig.UpScript).Error; err != nil {
				return err
			}
			return tx.Create(&MigrationLog{Version: mig.Version, Name: mig.Name}).Error
		})
		if err != nil {
			return i, fmt.Errorf("apply migration %s: %w", mig, err)
		}
		middleware.Logger.InfoContext(ctx, "migration applied", slog.String("migration", mig.String()))
	}
	return len(pending), nil
}

// Down runs the down script of an applied migration and forgets it.
func (m *Migrator) Down(ctx context.Context, version int) error {
	var target *Migration
	for i := range m.set {
		if m.set[i].Version == version {
			target = &m.set[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("migration version %d not found", version)
	}

	applied, err := m.Applied(ctx)
	if err != nil {
		return err
	}
	if i := sort.SearchInts(applied, version); i == len(applied) || applied[i] != version {
		return fmt.Errorf("migration %s has not been applied", target)
	}

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(target.DownScript).Error; err != nil {
			return err
		}
		return tx.Where("version = ?", version).Delete(&MigrationLog{}).Error
	})
	if err != nil {
		return fmt.Errorf("roll back migration %s: %w", target, err)
	}
	middleware.Logger.InfoContext(ctx, "migration rolled back", slog.String("migration", target.String()))
	return nil
}
