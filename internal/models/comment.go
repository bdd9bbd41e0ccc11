package models

import "time"

// Comment represents a comment on a post in the Blogicum application.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Post      *Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// OwnerID returns the author of the comment.
func (c *Comment) OwnerID() uint {
	return c.AuthorID
}

// CanonicalPath points at the detail view of the commented post.
func (c *Comment) CanonicalPath() string {
	return PostPath(c.PostID)
}
