package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	CategoryKeyPrefix    = "category:%s"
	PublishedCategories  = "categories:published"
	PublishedLocations   = "locations:published"
	TokenBlacklistPrefix = "blacklist:"
)

const (
	CategoryTTL = 10 * time.Minute
	CatalogTTL  = 5 * time.Minute
)

func CategoryKey(slug string) string {
	return fmt.Sprintf(CategoryKeyPrefix, slug)
}

// InvalidateCategory drops the cached category and the published list it may appear in.
func InvalidateCategory(ctx context.Context, slug string) {
	Invalidate(ctx, CategoryKey(slug), PublishedCategories)
}

func InvalidateLocations(ctx context.Context) {
	Invalidate(ctx, PublishedLocations)
}
