package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"blogicum/internal/models"
	"blogicum/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_GetByID_AnnotatesCommentCount(t *testing.T) {
	db := testutil.SQLite(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	category := createCategory(t, db, "travel", true)
	post := createPost(t, db, models.Post{AuthorID: author.ID, CategoryID: &category.ID, IsPublished: true, PubDate: testNow})
	createComment(t, db, post.ID, author.ID, "one", testNow)
	createComment(t, db, post.ID, author.ID, "two", testNow)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.CommentCount)
	assert.Equal(t, "author", got.Author.Username)
	require.NotNil(t, got.Category)
	assert.Equal(t, "travel", got.Category.Slug)
	assert.Nil(t, got.Location)
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	repo := NewPostRepository(testutil.SQLite(t))
	_, err := repo.GetByID(context.Background(), 404)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestPostRepository_ListPage(t *testing.T) {
	db := testutil.SQLite(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	other := createUser(t, db, "other")
	open := createCategory(t, db, "open", true)
	closed := createCategory(t, db, "closed", false)

	older := createPost(t, db, models.Post{Title: "older", AuthorID: author.ID, IsPublished: true, PubDate: testNow.Add(-2 * time.Hour)})
	tieA := createPost(t, db, models.Post{Title: "tie a", AuthorID: other.ID, CategoryID: &open.ID, IsPublished: true, PubDate: testNow.Add(-time.Hour)})
	tieB := createPost(t, db, models.Post{Title: "tie b", AuthorID: author.ID, CategoryID: &open.ID, IsPublished: true, PubDate: testNow.Add(-time.Hour)})
	draft := createPost(t, db, models.Post{Title: "draft", AuthorID: author.ID, IsPublished: false, PubDate: testNow.Add(-time.Hour)})
	future := createPost(t, db, models.Post{Title: "future", AuthorID: author.ID, IsPublished: true, PubDate: testNow.Add(time.Hour)})
	hidden := createPost(t, db, models.Post{Title: "hidden", AuthorID: author.ID, CategoryID: &closed.ID, IsPublished: true, PubDate: testNow.Add(-time.Hour)})
	createComment(t, db, tieA.ID, author.ID, "c", testNow)

	ids := func(posts []*models.Post) []uint {
		out := make([]uint, 0, len(posts))
		for _, p := range posts {
			out = append(out, p.ID)
		}
		return out
	}

	t.Run("public home ordering", func(t *testing.T) {
		posts, total, err := repo.ListPage(ctx, PostFilter{PublicAt: timePtr(testNow)}, allRows)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Equal(t, []uint{tieB.ID, tieA.ID, older.ID}, ids(posts))
		assert.Equal(t, int64(1), posts[1].CommentCount)
		assert.Equal(t, "other", posts[1].Author.Username)
	})

	t.Run("category", func(t *testing.T) {
		posts, total, err := repo.ListPage(ctx, PostFilter{CategoryID: &open.ID, PublicAt: timePtr(testNow)}, allRows)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, []uint{tieB.ID, tieA.ID}, ids(posts))
	})

	t.Run("owner sees everything", func(t *testing.T) {
		posts, total, err := repo.ListPage(ctx, PostFilter{AuthorID: &author.ID}, allRows)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		assert.Equal(t, future.ID, posts[0].ID)
		assert.ElementsMatch(t, []uint{future.ID, tieB.ID, draft.ID, hidden.ID, older.ID}, ids(posts))
	})

	t.Run("author public view", func(t *testing.T) {
		posts, _, err := repo.ListPage(ctx, PostFilter{AuthorID: &author.ID, PublicAt: timePtr(testNow)}, allRows)
		require.NoError(t, err)
		assert.Equal(t, []uint{tieB.ID, older.ID}, ids(posts))
	})

	t.Run("window", func(t *testing.T) {
		var seen int64
		posts, total, err := repo.ListPage(ctx, PostFilter{PublicAt: timePtr(testNow)}, func(n int64) (int, int) {
			seen = n
			return 1, 1
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), seen)
		assert.Equal(t, int64(3), total)
		assert.Equal(t, []uint{tieA.ID}, ids(posts))
	})

	t.Run("empty result skips fetch", func(t *testing.T) {
		called := false
		posts, total, err := repo.ListPage(ctx, PostFilter{AuthorID: uintPtr(9999)}, func(int64) (int, int) {
			called = true
			return 10, 0
		})
		require.NoError(t, err)
		assert.True(t, called)
		assert.Zero(t, total)
		assert.Empty(t, posts)
	})
}

func TestPostRepository_ListPage_PostgresSnapshot(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts" WHERE posts.author_id = $1`)).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectCommit()

	posts, total, err := repo.ListPage(context.Background(), PostFilter{AuthorID: uintPtr(3)}, allRows)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Update_KeepsAuthor(t *testing.T) {
	db := testutil.SQLite(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	intruder := createUser(t, db, "intruder")
	post := createPost(t, db, models.Post{AuthorID: author.ID, IsPublished: true, PubDate: testNow})

	post.Title = "renamed"
	post.IsPublished = false
	post.AuthorID = intruder.ID
	require.NoError(t, repo.Update(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.False(t, got.IsPublished)
	assert.Equal(t, author.ID, got.AuthorID)
}

func TestPostRepository_Delete_RemovesComments(t *testing.T) {
	db := testutil.SQLite(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	post := createPost(t, db, models.Post{AuthorID: author.ID, IsPublished: true, PubDate: testNow})
	keep := createPost(t, db, models.Post{AuthorID: author.ID, IsPublished: true, PubDate: testNow})
	createComment(t, db, post.ID, author.ID, "gone", testNow)
	createComment(t, db, keep.ID, author.ID, "stays", testNow)

	require.NoError(t, repo.Delete(ctx, post.ID))

	var remaining int64
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", keep.ID).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)

	err := repo.Delete(ctx, post.ID)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestPostRepository_Delete_SingleTransaction(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE post_id = $1`)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE "posts"."id" = $1`)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}
