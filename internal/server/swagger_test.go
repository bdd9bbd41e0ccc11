package server

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"blogicum/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var routeParam = regexp.MustCompile(`:(\w+)`)

func TestSwaggerDocCoversAPIRoutes(t *testing.T) {
	env := newTestEnv(t, "")

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))

	undocumented := map[string]bool{
		"/metrics/dashboard": true,
		"/swagger/*":         true,
	}
	documented := map[string]bool{
		fiber.MethodGet:    true,
		fiber.MethodPost:   true,
		fiber.MethodPut:    true,
		fiber.MethodDelete: true,
	}

	seen := 0
	for _, route := range env.app.GetRoutes(true) {
		if !documented[route.Method] || !strings.HasPrefix(route.Path, "/api/") {
			continue
		}
		path := strings.TrimSuffix(strings.TrimPrefix(route.Path, "/api"), "/")
		if path == "" || undocumented[path] {
			continue
		}
		path = routeParam.ReplaceAllString(path, "{$1}")
		seen++

		ops, ok := doc.Paths[path]
		if !assert.True(t, ok, "path %s missing from API docs", path) {
			continue
		}
		assert.Contains(t, ops, strings.ToLower(route.Method), "%s %s missing from API docs", route.Method, path)
	}
	assert.Equal(t, 21, seen)
}
