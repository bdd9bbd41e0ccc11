package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"blogicum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pageBody struct {
	Posts []struct {
		ID           uint   `json:"id"`
		Title        string `json:"title"`
		CommentCount int64  `json:"comment_count"`
	} `json:"posts"`
	Number      int   `json:"number"`
	NumPages    int   `json:"num_pages"`
	Count       int64 `json:"count"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

type detailBody struct {
	Post     models.Post      `json:"post"`
	Comments []models.Comment `json:"comments"`
}

func TestCreatePost(t *testing.T) {
	env := newTestEnv(t, "")
	_, token := env.user(t, "alice")
	travel := env.category(t, "travel", true)

	tests := []struct {
		name       string
		body       map[string]any
		token      string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Success",
			body:       map[string]any{"title": "New Post", "text": "Hello world", "category_id": travel.ID},
			token:      token,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "Anonymous",
			body:       map[string]any{"title": "New Post", "text": "Hello world"},
			wantStatus: http.StatusUnauthorized,
			wantCode:   models.CodeUnauthenticated,
		},
		{
			name:       "Missing title",
			body:       map[string]any{"text": "Hello world"},
			token:      token,
			wantStatus: http.StatusBadRequest,
			wantCode:   models.CodeValidation,
		},
		{
			name:       "Unknown category",
			body:       map[string]any{"title": "t", "text": "x", "category_id": 999},
			token:      token,
			wantStatus: http.StatusBadRequest,
			wantCode:   models.CodeValidation,
		},
		{
			name:       "Image outside media store",
			body:       map[string]any{"title": "t", "text": "x", "image": "../../etc/passwd"},
			token:      token,
			wantStatus: http.StatusBadRequest,
			wantCode:   models.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.do(t, http.MethodPost, "/api/posts", tt.body, tt.token)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decode[models.ErrorResponse](t, resp).Code)
				return
			}
			post := decode[models.Post](t, resp)
			assert.Equal(t, "New Post", post.Title)
			assert.True(t, post.IsPublished)
			assert.Equal(t, models.PostPath(post.ID), resp.Header.Get("Location"))
		})
	}
}

func TestCreatePost_ValidationEchoesInput(t *testing.T) {
	env := newTestEnv(t, "")
	_, token := env.user(t, "alice")

	resp := env.do(t, http.MethodPost, "/api/posts", map[string]any{"title": "", "text": "kept text"}, token)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	input := body["input"].(map[string]any)
	assert.Equal(t, "kept text", input["text"])
}

func TestGetPost_Visibility(t *testing.T) {
	env := newTestEnv(t, "")
	author, authorToken := env.user(t, "author")
	_, otherToken := env.user(t, "other")
	hidden := env.category(t, "hidden", false)

	public := env.post(t, models.Post{AuthorID: author.ID, IsPublished: true})
	draft := env.post(t, models.Post{AuthorID: author.ID, IsPublished: true})
	require.NoError(t, env.db.Model(draft).Update("is_published", false).Error)
	scheduled := env.post(t, models.Post{AuthorID: author.ID, IsPublished: true, PubDate: time.Now().Add(48 * time.Hour)})
	inHidden := env.post(t, models.Post{AuthorID: author.ID, IsPublished: true, CategoryID: &hidden.ID})

	tests := []struct {
		name   string
		postID uint
		token  string
		want   int
	}{
		{"public post, anonymous", public.ID, "", http.StatusOK},
		{"draft, anonymous", draft.ID, "", http.StatusNotFound},
		{"draft, other user", draft.ID, otherToken, http.StatusNotFound},
		{"draft, author", draft.ID, authorToken, http.StatusOK},
		{"scheduled, other user", scheduled.ID, otherToken, http.StatusNotFound},
		{"scheduled, author", scheduled.ID, authorToken, http.StatusOK},
		{"hidden category, anonymous", inHidden.ID, "", http.StatusNotFound},
		{"hidden category, author", inHidden.ID, authorToken, http.StatusOK},
		{"missing post", 9999, authorToken, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.do(t, http.MethodGet, fmt.Sprintf("/api/posts/%d", tt.postID), nil, tt.token)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestGetPost_IncludesCommentsAndCount(t *testing.T) {
	env := newTestEnv(t, "")
	author, _ := env.user(t, "author")
	post := env.post(t, models.Post{AuthorID: author.ID, IsPublished: true})
	for i := 0; i < 2; i++ {
		c := &models.Comment{PostID: post.ID, AuthorID: author.ID, Text: fmt.Sprintf("c%d", i), CreatedAt: time.Now().Add(time.Duration(i) * time.Minute)}
		require.NoError(t, env.db.Omit("Author", "Post").Create(c).Error)
	}

	resp := env.do(t, http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decode[detailBody](t, resp)
	assert.Equal(t, int64(2), detail.Post.CommentCount)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "c0", detail.Comments[0].Text)
	assert.Equal(t, "c1", detail.Comments[1].Text)
}

func TestPostMutationGate(t *testing.T) {
	env := newTestEnv(t, "")
	author, authorToken := env.user(t, "author")
	_, otherToken := env.user(t, "other")
	post := env.post(t, models.Post{AuthorID: author.ID, IsPublished: true, Title: "original"})
	path := fmt.Sprintf("/api/posts/%d", post.ID)

	t.Run("non-author edit form is forbidden with redirect", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, path+"/edit", nil, otherToken)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		body := decode[models.ErrorResponse](t, resp)
		assert.Equal(t, models.CodeForbidden, body.Code)
		assert.Equal(t, path, body.Redirect)
	})

	t.Run("non-author update is rejected before validation", func(t *testing.T) {
		resp := env.do(t, http.MethodPut, path, map[string]any{"title": ""}, otherToken)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("non-author delete is forbidden", func(t *testing.T) {
		resp := env.do(t, http.MethodDelete, path, nil, otherToken)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("author edit form", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, path+"/edit", nil, authorToken)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("author partial update", func(t *testing.T) {
		resp := env.do(t, http.MethodPut, path, map[string]any{"title": "edited", "is_published": false}, authorToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		updated := decode[models.Post](t, resp)
		assert.Equal(t, "edited", updated.Title)
		assert.Equal(t, "text", updated.Text)
		assert.False(t, updated.IsPublished)
		assert.Equal(t, author.ID, updated.AuthorID)
	})

	t.Run("author delete", func(t *testing.T) {
		resp := env.do(t, http.MethodDelete, path, nil, authorToken)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = env.do(t, http.MethodGet, path, nil, authorToken)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("missing post is not found for anyone", func(t *testing.T) {
		resp := env.do(t, http.MethodPut, "/api/posts/9999", map[string]any{"title": "x"}, otherToken)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestHomeFeedPagination(t *testing.T) {
	env := newTestEnv(t, "")
	author, _ := env.user(t, "author")
	base := time.Now().Add(-24 * time.Hour)
	for i := 0; i < 12; i++ {
		env.post(t, models.Post{AuthorID: author.ID, IsPublished: true, Title: fmt.Sprintf("p%02d", i), PubDate: base.Add(time.Duration(i) * time.Minute)})
	}
	draft := env.post(t, models.Post{AuthorID: author.ID, IsPublished: true, Title: "draft"})
	require.NoError(t, env.db.Model(draft).Update("is_published", false).Error)

	resp := env.do(t, http.MethodGet, "/api/posts", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := decode[pageBody](t, resp)
	assert.Equal(t, int64(12), first.Count)
	assert.Equal(t, 2, first.NumPages)
	assert.True(t, first.HasNext)
	require.Len(t, first.Posts, 10)
	assert.Equal(t, "p11", first.Posts[0].Title)

	resp = env.do(t, http.MethodGet, "/api/posts?page=2", nil, "")
	second := decode[pageBody](t, resp)
	assert.Equal(t, 2, second.Number)
	assert.Len(t, second.Posts, 2)
	assert.True(t, second.HasPrevious)

	for _, raw := range []string{"abc", "0", "-1"} {
		resp = env.do(t, http.MethodGet, "/api/posts?page="+raw, nil, "")
		assert.Equal(t, 1, decode[pageBody](t, resp).Number, raw)
	}

	resp = env.do(t, http.MethodGet, "/api/posts?page=99", nil, "")
	assert.Equal(t, 2, decode[pageBody](t, resp).Number)
}

func TestCategoryFeed(t *testing.T) {
	env := newTestEnv(t, "")
	author, _ := env.user(t, "author")
	travel := env.category(t, "travel", true)
	hidden := env.category(t, "hidden", false)
	env.post(t, models.Post{AuthorID: author.ID, IsPublished: true, CategoryID: &travel.ID})
	env.post(t, models.Post{AuthorID: author.ID, IsPublished: true})

	resp := env.do(t, http.MethodGet, "/api/category/travel", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[struct {
		Category models.Category `json:"category"`
		Page     pageBody        `json:"page"`
	}](t, resp)
	assert.Equal(t, travel.ID, body.Category.ID)
	assert.Equal(t, int64(1), body.Page.Count)

	resp = env.do(t, http.MethodGet, "/api/category/"+hidden.Slug, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/category/unknown", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHiddenPostMutationsAreNotFound(t *testing.T) {
	env := newTestEnv(t, "")
	author, authorToken := env.user(t, "author")
	_, otherToken := env.user(t, "other")
	draft := env.post(t, models.Post{AuthorID: author.ID, IsPublished: true})
	require.NoError(t, env.db.Model(draft).Update("is_published", false).Error)
	comment := &models.Comment{PostID: draft.ID, AuthorID: author.ID, Text: "note", CreatedAt: time.Now()}
	require.NoError(t, env.db.Omit("Author", "Post").Create(comment).Error)

	path := fmt.Sprintf("/api/posts/%d", draft.ID)
	commentPath := fmt.Sprintf("%s/comments/%d", path, comment.ID)
	requests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, path + "/edit", nil},
		{http.MethodPut, path, map[string]any{"title": "hijack"}},
		{http.MethodDelete, path, nil},
		{http.MethodGet, commentPath, nil},
		{http.MethodPut, commentPath, map[string]any{"text": "hijack"}},
		{http.MethodDelete, commentPath, nil},
	}
	for _, r := range requests {
		resp := env.do(t, r.method, r.path, r.body, otherToken)
		require.Equal(t, http.StatusNotFound, resp.StatusCode, r.method+" "+r.path)
		assert.Empty(t, decode[models.ErrorResponse](t, resp).Redirect)
	}

	resp := env.do(t, http.MethodGet, path+"/edit", nil, authorToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.do(t, http.MethodGet, commentPath, nil, authorToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Post
	require.NoError(t, env.db.First(&stored, draft.ID).Error)
	assert.Equal(t, "title", stored.Title)
}

func TestUnpublishedCategoryHidesItsPosts(t *testing.T) {
	env := newTestEnv(t, "")
	author, authorToken := env.user(t, "author")
	news := env.category(t, "news", true)
	post := env.post(t, models.Post{AuthorID: author.ID, IsPublished: true, CategoryID: &news.ID, PubDate: time.Now().Add(-time.Hour)})
	detail := fmt.Sprintf("/api/posts/%d", post.ID)

	resp := env.do(t, http.MethodGet, "/api/posts", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), decode[pageBody](t, resp).Count)

	resp = env.do(t, http.MethodGet, "/api/category/news", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, env.server.catalogService.SetCategoryPublished(context.Background(), "news", false))

	resp = env.do(t, http.MethodGet, "/api/posts", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(0), decode[pageBody](t, resp).Count)

	resp = env.do(t, http.MethodGet, "/api/category/news", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/profile/author", nil, authorToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	own := decode[profileBody](t, resp)
	require.Len(t, own.Page.Posts, 1)
	assert.Equal(t, post.ID, own.Page.Posts[0].ID)

	resp = env.do(t, http.MethodGet, "/api/profile/author", nil, "")
	assert.Equal(t, int64(0), decode[profileBody](t, resp).Page.Count)

	resp = env.do(t, http.MethodGet, detail, nil, authorToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.do(t, http.MethodGet, detail, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
