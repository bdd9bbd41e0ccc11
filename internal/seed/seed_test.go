package seed

import (
	"context"
	"testing"
	"time"

	"blogicum/internal/models"
	"blogicum/internal/testutil"
	"blogicum/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog_Default(t *testing.T) {
	fx, err := ParseCatalog(nil)
	require.NoError(t, err)
	require.NotEmpty(t, fx.Categories)
	require.NotEmpty(t, fx.Locations)
	for _, c := range fx.Categories {
		assert.NoError(t, validation.ValidateSlug(c.Slug), c.Slug)
	}
}

func TestParseCatalog_Invalid(t *testing.T) {
	_, err := ParseCatalog([]byte("categories: [unterminated"))
	assert.Error(t, err)
}

func TestCatalog_Idempotent(t *testing.T) {
	db := testutil.SQLite(t)
	fx, err := ParseCatalog([]byte(`
categories:
  - {title: One, slug: one, description: first, is_published: true}
  - {title: Two, slug: two, description: second, is_published: false}
locations:
  - {name: Here, is_published: true}
  - {name: There, is_published: false}
`))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		categories, locations, err := Catalog(db, fx)
		require.NoError(t, err)
		assert.Len(t, categories, 2)
		assert.Len(t, locations, 2)
	}

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
	require.NoError(t, db.Model(&models.Location{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	var two models.Category
	require.NoError(t, db.Where("slug = ?", "two").First(&two).Error)
	assert.False(t, two.IsPublished)
}

func TestFactory_UsernamesAreValid(t *testing.T) {
	db := testutil.SQLite(t)
	f, err := NewFactory(db, 7, time.Now(), true)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		u, err := f.CreateUser()
		require.NoError(t, err)
		assert.NoError(t, validation.ValidateUsername(u.Username), u.Username)
		assert.NoError(t, validation.ValidateEmail(u.Email), u.Email)
	}
}

func TestSeed(t *testing.T) {
	db := testutil.SQLite(t)
	opts := DefaultOptions()
	opts.SkipBcrypt = true
	opts.NumPosts = 25
	opts.CommentsPerPost = 2

	summary, err := Seed(context.Background(), db, opts)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Users)
	assert.Equal(t, 25, summary.Posts)
	assert.Equal(t, 50, summary.Comments)

	var posts []models.Post
	require.NoError(t, db.Find(&posts).Error)
	assert.Len(t, posts, 25)
	for _, p := range posts {
		assert.NoError(t, validation.ValidateTitle(p.Title))
		assert.NotZero(t, p.AuthorID)
	}

	opts.Clean = true
	opts.NumPosts = 3
	opts.CommentsPerPost = 0
	_, err = Seed(context.Background(), db, opts)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}
