package repository

import (
	"strings"
	"testing"
	"time"

	"blogicum/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Password: "hash"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createCategory(t *testing.T, db *gorm.DB, slug string, published bool) *models.Category {
	t.Helper()
	c := &models.Category{Title: strings.ToUpper(slug), Description: "about " + slug, Slug: slug, IsPublished: published}
	require.NoError(t, db.Create(c).Error)
	return c
}

func createPost(t *testing.T, db *gorm.DB, p models.Post) *models.Post {
	t.Helper()
	if p.Title == "" {
		p.Title = "title"
	}
	if p.Text == "" {
		p.Text = "text"
	}
	require.NoError(t, db.Omit("Author", "Category", "Location").Create(&p).Error)
	return &p
}

func createComment(t *testing.T, db *gorm.DB, postID, authorID uint, text string, at time.Time) *models.Comment {
	t.Helper()
	c := &models.Comment{PostID: postID, AuthorID: authorID, Text: text, CreatedAt: at}
	require.NoError(t, db.Omit("Author", "Post").Create(c).Error)
	return c
}

func uintPtr(v uint) *uint { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func allRows(total int64) (int, int) { return int(total), 0 }
