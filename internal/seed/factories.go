// Package seed creates demo data for development databases and tests.
package seed

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"blogicum/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every seeded user.
const DefaultPassword = "Blogicum-Demo-2024!"

var usernameUnsafe = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Factory builds domain entities and persists them. It is deterministic for a
// given seed.
type Factory struct {
	db       *gorm.DB
	faker    *gofakeit.Faker
	now      time.Time
	password string
	users    int
}

// NewFactory binds a factory to db. skipBcrypt stores the plain password,
// which is only useful for fast throwaway databases.
func NewFactory(db *gorm.DB, seed int64, now time.Time, skipBcrypt bool) (*Factory, error) {
	password := DefaultPassword
	if !skipBcrypt {
		hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		password = string(hashed)
	}
	return &Factory{
		db:       db,
		faker:    gofakeit.New(seed),
		now:      now,
		password: password,
	}, nil
}

// CreateUser persists a user with a unique, valid username.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	f.users++
	base := usernameUnsafe.ReplaceAllString(strings.ToLower(f.faker.Username()), "")
	if len(base) > 20 {
		base = base[:20]
	}
	if len(base) < 3 {
		base = "user"
	}
	username := fmt.Sprintf("%s%d", base, f.users)

	user := &models.User{
		Username:  username,
		FirstName: f.faker.FirstName(),
		LastName:  f.faker.LastName(),
		Email:     username + "@example.com",
		Password:  f.password,
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost returns an unsaved post by author, published some time within
// the last maxDays days.
func (f *Factory) BuildPost(author *models.User, maxDays int, overrides ...func(*models.Post)) *models.Post {
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.faker.Number(0, maxDays*24*60)) * time.Minute
	post := &models.Post{
		Title:       strings.TrimSuffix(f.faker.Sentence(f.faker.Number(3, 8)), "."),
		Text:        f.faker.Paragraph(2, 4, 12, "\n\n"),
		PubDate:     f.now.Add(-back).UTC().Truncate(time.Second),
		AuthorID:    author.ID,
		IsPublished: true,
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists posts in one statement.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Omit("Author", "Category", "Location").Create(&posts).Error
}

// CreateComment persists a comment by author on post, written after the post.
func (f *Factory) CreateComment(post *models.Post, author *models.User) (*models.Comment, error) {
	created := post.PubDate.Add(time.Duration(f.faker.Number(1, 72*60)) * time.Minute)
	if created.After(f.now) {
		created = f.now
	}
	comment := &models.Comment{
		Text:      f.faker.Sentence(f.faker.Number(4, 20)),
		PostID:    post.ID,
		AuthorID:  author.ID,
		CreatedAt: created.UTC().Truncate(time.Second),
	}
	if err := f.db.Omit("Author", "Post").Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Chance reports true with probability pct percent.
func (f *Factory) Chance(pct int) bool {
	return f.faker.Number(1, 100) <= pct
}

// Pick returns a random index below n.
func (f *Factory) Pick(n int) int {
	return f.faker.Number(0, n-1)
}
