// Package visibility decides which posts the public may see.
//
// A post is publicly visible at instant now when it is published, its
// publication date is not in the future, and its category (if any) is
// published. The predicate exists twice: as an in-memory check for single
// posts and as a GORM scope for feeds. Both must agree on every post.
package visibility

import (
	"time"

	"blogicum/internal/models"

	"gorm.io/gorm"
)

// IsPubliclyVisible evaluates the visibility rule against a loaded post.
// A post whose category reference is set but not loaded is treated as hidden.
func IsPubliclyVisible(p *models.Post, now time.Time) bool {
	if p == nil || !p.IsPublished {
		return false
	}
	if p.PubDate.After(now) {
		return false
	}
	if p.CategoryID != nil {
		if p.Category == nil || !p.Category.IsPublished {
			return false
		}
	}
	return true
}

// CanView reports whether viewerID may read the post. Authors always see their
// own posts; viewerID 0 is the anonymous viewer.
func CanView(p *models.Post, viewerID uint, now time.Time) bool {
	if p == nil {
		return false
	}
	if viewerID != 0 && p.AuthorID == viewerID {
		return true
	}
	return IsPubliclyVisible(p, now)
}

// PubliclyVisibleAt restricts a posts query to rows visible at now.
func PubliclyVisibleAt(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"posts.is_published = ? AND posts.pub_date <= ? AND (posts.category_id IS NULL OR EXISTS (SELECT 1 FROM categories c WHERE c.id = posts.category_id AND c.is_published = ?))",
			true, now, true,
		)
	}
}
