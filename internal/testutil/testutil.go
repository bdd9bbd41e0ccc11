// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"blogicum/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// BlogModels are the tables most store tests need.
func BlogModels() []interface{} {
	return []interface{}{&models.User{}, &models.Category{}, &models.Location{}, &models.Post{}, &models.Comment{}}
}

// SQLite opens an in-memory database private to t and migrates the given
// models, or BlogModels when none are passed. The single connection keeps
// the shared-cache database alive for the whole test.
func SQLite(t testing.TB, migrate ...interface{}) *gorm.DB {
	t.Helper()
	if len(migrate) == 0 {
		migrate = BlogModels()
	}

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(migrate...))
	return db
}

// PNG encodes a w×h image with one colored pixel.
func PNG(t testing.TB, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
