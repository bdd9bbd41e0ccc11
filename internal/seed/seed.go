package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"blogicum/internal/middleware"
	"blogicum/internal/models"

	"gorm.io/gorm"
)

// Options configures a seeding run. DraftPercent and ScheduledPercent shape
// how many posts stay hidden from the public.
type Options struct {
	NumUsers         int
	NumPosts         int
	CommentsPerPost  int
	DraftPercent     int
	ScheduledPercent int
	Seed             int64
	Clean            bool
	SkipBcrypt       bool
	Catalog          []byte
}

// DefaultOptions is a small, varied dataset.
func DefaultOptions() Options {
	return Options{
		NumUsers:         5,
		NumPosts:         40,
		CommentsPerPost:  3,
		DraftPercent:     10,
		ScheduledPercent: 10,
		Seed:             1,
	}
}

// Summary reports what a run created.
type Summary struct {
	Users      int
	Categories int
	Locations  int
	Posts      int
	Comments   int
}

// Seed fills db with demo data.
func Seed(ctx context.Context, db *gorm.DB, opts Options) (*Summary, error) {
	db = db.WithContext(ctx)
	log := middleware.Logger.With(slog.String("component", "seed"))
	log.InfoContext(ctx, "seeding database", slog.Int("users", opts.NumUsers), slog.Int("posts", opts.NumPosts))

	if opts.Clean {
		if err := Clean(db); err != nil {
			return nil, fmt.Errorf("clean: %w", err)
		}
	}

	fx, err := ParseCatalog(opts.Catalog)
	if err != nil {
		return nil, err
	}
	categories, locations, err := Catalog(db, fx)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	f, err := NewFactory(db, opts.Seed, time.Now(), opts.SkipBcrypt)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		u, err := f.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, u)
	}

	summary := &Summary{Users: len(users), Categories: len(categories), Locations: len(locations)}
	if len(users) == 0 {
		return summary, nil
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.Pick(len(users))]
		posts = append(posts, f.BuildPost(author, 90, func(p *models.Post) {
			if len(categories) > 0 && f.Chance(85) {
				p.CategoryID = &categories[f.Pick(len(categories))].ID
			}
			if len(locations) > 0 && f.Chance(60) {
				p.LocationID = &locations[f.Pick(len(locations))].ID
			}
			switch {
			case f.Chance(opts.DraftPercent):
				p.IsPublished = false
			case f.Chance(opts.ScheduledPercent):
				p.PubDate = f.now.Add(time.Duration(f.Pick(30)+1) * 24 * time.Hour).UTC().Truncate(time.Second)
			}
		}))
	}
	if err := f.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("create posts: %w", err)
	}
	summary.Posts = len(posts)

	for _, p := range posts {
		for j := 0; j < opts.CommentsPerPost; j++ {
			if _, err := f.CreateComment(p, users[f.Pick(len(users))]); err != nil {
				return nil, fmt.Errorf("create comment: %w", err)
			}
			summary.Comments++
		}
	}

	log.InfoContext(ctx, "seeding completed",
		slog.Int("users", summary.Users),
		slog.Int("posts", summary.Posts),
		slog.Int("comments", summary.Comments),
	)
	return summary, nil
}

// Clean removes all blog content, users included.
func Clean(db *gorm.DB) error {
	tx := db.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []interface{}{&models.Comment{}, &models.Post{}, &models.Category{}, &models.Location{}, &models.User{}} {
		if err := tx.Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
