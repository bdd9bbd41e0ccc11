package feed

import (
	"context"
	"fmt"
	"testing"
	"time"

	"blogicum/internal/models"
	"blogicum/internal/repository"
	"blogicum/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposer_AgainstStore(t *testing.T) {
	db := testutil.SQLite(t)
	ctx := context.Background()

	ann := &models.User{Username: "ann", Email: "ann@example.com", Password: "x"}
	bob := &models.User{Username: "bob", Email: "bob@example.com", Password: "x"}
	require.NoError(t, db.Create(ann).Error)
	require.NoError(t, db.Create(bob).Error)
	travel := &models.Category{Title: "Travel", Slug: "travel", IsPublished: true}
	require.NoError(t, db.Create(travel).Error)

	for i := 0; i < 12; i++ {
		p := &models.Post{
			Title:       fmt.Sprintf("post %d", i),
			Text:        "text",
			AuthorID:    ann.ID,
			CategoryID:  &travel.ID,
			IsPublished: true,
			PubDate:     fixedNow.Add(-time.Duration(i+1) * time.Hour),
		}
		require.NoError(t, db.Omit("Author", "Category", "Location").Create(p).Error)
	}
	draft := &models.Post{Title: "draft", Text: "text", AuthorID: ann.ID, IsPublished: false, PubDate: fixedNow}
	require.NoError(t, db.Omit("Author", "Category", "Location").Create(draft).Error)

	composer := NewComposer(
		repository.NewPostRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewUserRepository(db),
		5,
		clock,
	)

	home, err := composer.Home(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, 3, home.Number)
	assert.Equal(t, int64(12), home.Count)
	require.Len(t, home.Posts, 2)
	assert.Equal(t, "post 11", home.Posts[1].Title)

	_, page, err := composer.Category(ctx, "travel", 1)
	require.NoError(t, err)
	assert.Equal(t, "post 0", page.Posts[0].Title)

	_, own, err := composer.Profile(ctx, "ann", ann.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(13), own.Count)
	assert.Equal(t, "draft", own.Posts[0].Title)

	_, public, err := composer.Profile(ctx, "ann", bob.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(12), public.Count)

	_, empty, err := composer.Profile(ctx, "bob", 0, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, empty.Number)
	assert.Equal(t, 1, empty.NumPages)
	assert.Empty(t, empty.Posts)
}
