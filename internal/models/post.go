// Package models contains data structures for the application's domain models.
package models

import (
	"fmt"
	"time"
)

// Post represents a publication in the Blogicum application.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:256;not null" json:"title"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	PubDate    time.Time `gorm:"not null;index" json:"pub_date"`
	AuthorID   uint      `gorm:"not null;index" json:"author_id"`
	Author     User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	LocationID *uint     `gorm:"index" json:"location_id"`
	Location   *Location `gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL" json:"location"`
	CategoryID *uint     `gorm:"index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category"`
	// Image is an opaque media reference; empty when the post has no picture.
	Image       string `json:"image"`
	IsPublished bool   `gorm:"not null" json:"is_published"`
	// CommentCount is not persisted; computed at query time
	CommentCount int64     `gorm:"->;-:migration" json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// OwnerID returns the author of the post.
func (p *Post) OwnerID() uint {
	return p.AuthorID
}

// CanonicalPath is the read-only detail view of the post.
func (p *Post) CanonicalPath() string {
	return PostPath(p.ID)
}

// PostPath builds the detail path for a post id.
func PostPath(id uint) string {
	return fmt.Sprintf("/api/posts/%d", id)
}
