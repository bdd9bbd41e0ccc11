package server

import (
	"net/http"
	"testing"

	"blogicum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profileBody struct {
	Profile map[string]any `json:"profile"`
	Page    pageBody       `json:"page"`
}

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t, "")
	owner, ownerToken := env.user(t, "owner")
	_, otherToken := env.user(t, "other")
	env.post(t, models.Post{AuthorID: owner.ID, IsPublished: true, Title: "public"})
	env.post(t, models.Post{AuthorID: owner.ID, IsPublished: false, Title: "draft"})

	t.Run("owner sees drafts and email", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/api/profile/owner", nil, ownerToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decode[profileBody](t, resp)
		assert.Equal(t, int64(2), body.Page.Count)
		assert.Equal(t, "owner@example.com", body.Profile["email"])
	})

	for name, token := range map[string]string{"anonymous": "", "other user": otherToken} {
		t.Run(name+" sees public posts only", func(t *testing.T) {
			resp := env.do(t, http.MethodGet, "/api/profile/owner", nil, token)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			body := decode[profileBody](t, resp)
			assert.Equal(t, int64(1), body.Page.Count)
			assert.Equal(t, "owner", body.Profile["username"])
			assert.NotContains(t, body.Profile, "email")
		})
	}

	t.Run("unknown user", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/api/profile/ghost", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t, "")
	_, token := env.user(t, "owner")
	env.user(t, "taken")

	t.Run("anonymous", func(t *testing.T) {
		resp := env.do(t, http.MethodPut, "/api/profile", map[string]string{"first_name": "X"}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("partial update", func(t *testing.T) {
		resp := env.do(t, http.MethodPut, "/api/profile", map[string]string{"first_name": "Olga"}, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decode[map[string]any](t, resp)
		assert.Equal(t, "Olga", body["first_name"])
		assert.Equal(t, "owner", body["username"])
		assert.Equal(t, "owner@example.com", body["email"])
	})

	t.Run("username conflict", func(t *testing.T) {
		resp := env.do(t, http.MethodPut, "/api/profile", map[string]string{"username": "taken"}, token)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decode[models.ErrorResponse](t, resp)
		assert.Equal(t, models.CodeValidation, body.Code)
	})

	t.Run("invalid email", func(t *testing.T) {
		resp := env.do(t, http.MethodPut, "/api/profile", map[string]string{"email": "nope"}, token)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCatalogEndpoints(t *testing.T) {
	env := newTestEnv(t, "")
	env.category(t, "travel", true)
	env.category(t, "secret", false)
	require.NoError(t, env.db.Create(&models.Location{Name: "Island", IsPublished: true}).Error)
	require.NoError(t, env.db.Create(&models.Location{Name: "Hidden", IsPublished: false}).Error)

	resp := env.do(t, http.MethodGet, "/api/categories", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	categories := decode[[]models.Category](t, resp)
	require.Len(t, categories, 1)
	assert.Equal(t, "travel", categories[0].Slug)

	resp = env.do(t, http.MethodGet, "/api/locations", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	locations := decode[[]models.Location](t, resp)
	require.Len(t, locations, 1)
	assert.Equal(t, "Island", locations[0].Name)
}
