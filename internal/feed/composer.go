// Package feed composes the paginated post listings: the home feed, category
// feeds and profile feeds.
package feed

import (
	"context"
	"log/slog"
	"time"

	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/observability"
	"blogicum/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// PostLister is the slice of the post repository the composer needs.
type PostLister interface {
	ListPage(ctx context.Context, filter repository.PostFilter, window repository.PageWindow) ([]*models.Post, int64, error)
}

// CategoryFinder resolves a category by slug, published or not.
type CategoryFinder interface {
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
}

// UserFinder resolves a profile owner. A nil user with nil error means unknown.
type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Composer builds feeds. It holds no per-request state.
type Composer struct {
	posts      PostLister
	categories CategoryFinder
	users      UserFinder
	pageSize   int
	now        func() time.Time
}

// NewComposer wires a composer with the configured page size. A nil clock
// means time.Now.
func NewComposer(posts PostLister, categories CategoryFinder, users UserFinder, pageSize int, now func() time.Time) *Composer {
	if now == nil {
		now = time.Now
	}
	return &Composer{
		posts:      posts,
		categories: categories,
		users:      users,
		pageSize:   pageSize,
		now:        now,
	}
}

// PageSize returns the configured number of posts per page.
func (c *Composer) PageSize() int {
	return c.pageSize
}

// Home lists every publicly visible post.
func (c *Composer) Home(ctx context.Context, page int) (*Page, error) {
	defer observability.ObserveFeed("home")()
	now := c.now()
	return c.list(ctx, "home", repository.PostFilter{PublicAt: &now}, page)
}

// Category lists the public posts of a published category.
func (c *Composer) Category(ctx context.Context, slug string, page int) (*models.Category, *Page, error) {
	defer observability.ObserveFeed("category")()

	category, err := c.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	if category == nil || !category.IsPublished {
		return nil, nil, models.NewNotFoundByError("Category", "slug", slug)
	}

	now := c.now()
	p, err := c.list(ctx, "category", repository.PostFilter{CategoryID: &category.ID, PublicAt: &now}, page)
	if err != nil {
		return nil, nil, err
	}
	return category, p, nil
}

// Profile lists a user's posts. The owner sees all of them; everyone else
// sees only the public ones.
func (c *Composer) Profile(ctx context.Context, username string, viewerID uint, page int) (*models.User, *Page, error) {
	defer observability.ObserveFeed("profile")()

	owner, err := c.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if owner == nil {
		return nil, nil, models.NewNotFoundByError("User", "username", username)
	}

	filter := repository.PostFilter{AuthorID: &owner.ID}
	if viewerID == 0 || viewerID != owner.ID {
		now := c.now()
		filter.PublicAt = &now
	}

	p, err := c.list(ctx, "profile", filter, page)
	if err != nil {
		return nil, nil, err
	}
	return owner, p, nil
}

func (c *Composer) list(ctx context.Context, feed string, filter repository.PostFilter, page int) (*Page, error) {
	ctx, span := observability.StartSpan(ctx, "feed", feed, attribute.Int("feed.page", page))
	defer span.End()

	pg := newPaginator(c.pageSize, page)
	posts, _, err := c.posts.ListPage(ctx, filter, pg.window)
	if err != nil {
		span.RecordError(err)
		middleware.Logger.ErrorContext(ctx, "feed query failed", slog.String("feed", feed), slog.String("error", err.Error()))
		return nil, err
	}
	return pg.page(posts), nil
}
