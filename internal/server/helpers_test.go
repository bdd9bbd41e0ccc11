package server

import (
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func jwtWithClaims(secret string, claims map[string]any) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims(claims))
	return token.SignedString([]byte(secret))
}

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param string
		want  string
	}{
		{"id", "ID"},
		{"commentId", "comment ID"},
		{"parentCommentId", "parent comment ID"},
		{"slug", "slug"},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.want, humanizeParam(tt.param))
		})
	}
}

func TestParseID_RejectsNonPositive(t *testing.T) {
	env := newTestEnv(t, "")
	_, token := env.user(t, "alice")

	for _, path := range []string{"/api/posts/abc", "/api/posts/0", "/api/posts/-3"} {
		resp := env.do(t, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}

	resp := env.do(t, http.MethodGet, "/api/posts/1/comments/xyz", nil, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid comment ID", decode[map[string]any](t, resp)["error"])
}
