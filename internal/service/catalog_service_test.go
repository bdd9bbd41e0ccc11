package service

import (
	"context"
	"testing"

	"blogicum/internal/cache"
	"blogicum/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := cache.NewClient(mr.Addr())
	require.NoError(t, err)
	cache.SetClient(c)
	t.Cleanup(func() {
		cache.SetClient(nil)
		_ = c.Close()
	})
	return mr
}

func TestCatalogService_GetBySlugIsCached(t *testing.T) {
	mr := useMiniredis(t)
	ctx := context.Background()

	calls := 0
	categories := noopCategoryRepo()
	categories.getBySlugFn = func(_ context.Context, slug string) (*models.Category, error) {
		calls++
		return &models.Category{ID: 4, Slug: slug, Title: "Travel", IsPublished: true}, nil
	}
	svc := NewCatalogService(categories, noopLocationRepo())

	for i := 0; i < 3; i++ {
		category, err := svc.GetBySlug(ctx, "travel")
		require.NoError(t, err)
		assert.Equal(t, uint(4), category.ID)
	}
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists(cache.CategoryKey("travel")))

	require.NoError(t, svc.SetCategoryPublished(ctx, "travel", false))
	assert.False(t, mr.Exists(cache.CategoryKey("travel")))

	_, err := svc.GetBySlug(ctx, "travel")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCatalogService_GetBySlugWithoutRedis(t *testing.T) {
	cache.SetClient(nil)
	categories := noopCategoryRepo()
	categories.getBySlugFn = func(_ context.Context, slug string) (*models.Category, error) {
		return nil, models.NewNotFoundByError("Category", "slug", slug)
	}
	svc := NewCatalogService(categories, noopLocationRepo())

	_, err := svc.GetBySlug(context.Background(), "missing")
	assertNotFoundError(t, err)
}

func TestCatalogService_GetPublishedCategory(t *testing.T) {
	cache.SetClient(nil)
	categories := noopCategoryRepo()
	categories.getBySlugFn = func(_ context.Context, slug string) (*models.Category, error) {
		return &models.Category{ID: 1, Slug: slug, IsPublished: slug == "open"}, nil
	}
	svc := NewCatalogService(categories, noopLocationRepo())

	category, err := svc.GetPublishedCategory(context.Background(), "open")
	require.NoError(t, err)
	assert.Equal(t, "open", category.Slug)

	_, err = svc.GetPublishedCategory(context.Background(), "closed")
	assertNotFoundError(t, err)
	assert.EqualError(t, err, "Category with slug closed not found")
}

func TestCatalogService_PublishedListsAreCached(t *testing.T) {
	mr := useMiniredis(t)
	ctx := context.Background()

	categoryCalls, locationCalls := 0, 0
	categories := noopCategoryRepo()
	categories.listFn = func(_ context.Context, publishedOnly bool) ([]models.Category, error) {
		categoryCalls++
		assert.True(t, publishedOnly)
		return []models.Category{{ID: 1, Slug: "a", IsPublished: true}}, nil
	}
	locations := noopLocationRepo()
	locations.listFn = func(_ context.Context, publishedOnly bool) ([]models.Location, error) {
		locationCalls++
		return []models.Location{{ID: 1, Name: "Moscow", IsPublished: true}}, nil
	}
	svc := NewCatalogService(categories, locations)

	for i := 0; i < 2; i++ {
		list, err := svc.ListCategories(ctx, true)
		require.NoError(t, err)
		assert.Len(t, list, 1)
		locs, err := svc.ListLocations(ctx, true)
		require.NoError(t, err)
		assert.Len(t, locs, 1)
	}
	assert.Equal(t, 1, categoryCalls)
	assert.Equal(t, 1, locationCalls)

	_, err := svc.CreateLocation(ctx, CreateLocationInput{Name: "Tver"})
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.PublishedLocations))

	require.NoError(t, svc.DeleteCategory(ctx, "a"))
	assert.False(t, mr.Exists(cache.PublishedCategories))
}

func TestCatalogService_CreateCategory(t *testing.T) {
	cache.SetClient(nil)
	ctx := context.Background()
	svc := NewCatalogService(noopCategoryRepo(), noopLocationRepo())

	category, err := svc.CreateCategory(ctx, CreateCategoryInput{Title: " Travel ", Slug: "travel"})
	require.NoError(t, err)
	assert.Equal(t, "Travel", category.Title)
	assert.True(t, category.IsPublished)

	hidden, err := svc.CreateCategory(ctx, CreateCategoryInput{Title: "Drafts", Slug: "drafts", IsPublished: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, hidden.IsPublished)

	_, err = svc.CreateCategory(ctx, CreateCategoryInput{Title: "Bad", Slug: "bad slug"})
	assertValidationError(t, err)

	_, err = svc.CreateCategory(ctx, CreateCategoryInput{Slug: "empty-title"})
	assertValidationError(t, err)

	_, err = svc.CreateLocation(ctx, CreateLocationInput{Name: "  "})
	assertValidationError(t, err)
}
