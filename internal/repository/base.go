// Package repository provides the data access layer for the application.
package repository

import (
	"database/sql"
	"errors"
	"strings"

	"blogicum/internal/database"
	"blogicum/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func readDB(primary *gorm.DB) *gorm.DB {
	if db := database.GetReadDB(); db != nil {
		return db
	}
	return primary
}

// snapshotOptions returns the options for a read-only, single-snapshot
// transaction. Only PostgreSQL gets an explicit isolation level.
func snapshotOptions(db *gorm.DB) []*sql.TxOptions {
	if db.Dialector.Name() == "postgres" {
		return []*sql.TxOptions{{Isolation: sql.LevelRepeatableRead, ReadOnly: true}}
	}
	return nil
}

// isUniqueConstraintError reports a unique violation from PostgreSQL (23505)
// or SQLite.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

// notFoundOr maps gorm's not-found error to the domain NotFound and wraps the rest.
func notFoundOr(err error, resource string, id interface{}) error {
	return notFoundByOr(err, resource, "ID", id)
}

func notFoundByOr(err error, resource, field string, value interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundByError(resource, field, value)
	}
	return models.NewInternalError(err)
}
