package repository

import (
	"context"
	"time"

	"blogicum/internal/models"
	"blogicum/internal/visibility"

	"gorm.io/gorm"
)

// PostFilter narrows a post listing. Nil fields do not filter.
type PostFilter struct {
	AuthorID   *uint
	CategoryID *uint
	// PublicAt restricts the listing to posts publicly visible at that instant.
	PublicAt *time.Time
}

// PageWindow turns the total number of matching rows into limit and offset.
type PageWindow func(total int64) (limit, offset int)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListPage(ctx context.Context, filter PostFilter, window PageWindow) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// mutableColumns are the columns an edit may touch; author_id is deliberately absent.
var mutableColumns = []string{"title", "text", "pub_date", "is_published", "category_id", "location_id", "image"}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit("Author", "Category", "Location").Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := withRelations(withCommentCount(r.db.WithContext(ctx))).
		First(&post, "posts.id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err, "Post", id)
	}
	return &post, nil
}

// ListPage counts the matching posts and fetches one window of them inside a
// single read transaction, newest first.
func (r *postRepository) ListPage(ctx context.Context, filter PostFilter, window PageWindow) ([]*models.Post, int64, error) {
	db := readDB(r.db).WithContext(ctx)

	var (
		posts []*models.Post
		total int64
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := applyFilter(tx.Model(&models.Post{}), filter).Count(&total).Error; err != nil {
			return err
		}
		limit, offset := window(total)
		if total == 0 || limit <= 0 {
			return nil
		}
		return withRelations(withCommentCount(applyFilter(tx.Model(&models.Post{}), filter))).
			Order("posts.pub_date DESC").
			Order("posts.id DESC").
			Limit(limit).
			Offset(offset).
			Find(&posts).Error
	}, snapshotOptions(db)...)
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	res := r.db.WithContext(ctx).Model(&models.Post{ID: post.ID}).Select(mutableColumns).Updates(post)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", post.ID)
	}
	return nil
}

// Delete removes the post and its comments in one transaction.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Post", id)
		}
		return nil
	})
	return err
}

func applyFilter(db *gorm.DB, f PostFilter) *gorm.DB {
	if f.AuthorID != nil {
		db = db.Where("posts.author_id = ?", *f.AuthorID)
	}
	if f.CategoryID != nil {
		db = db.Where("posts.category_id = ?", *f.CategoryID)
	}
	if f.PublicAt != nil {
		db = db.Scopes(visibility.PubliclyVisibleAt(*f.PublicAt))
	}
	return db
}

func withCommentCount(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count")
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Location").Preload("Category")
}
