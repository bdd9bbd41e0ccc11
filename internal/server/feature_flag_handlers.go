package server

import (
	"blogicum/internal/featureflags"

	"github.com/gofiber/fiber/v2"
)

// FeatureFlagsResponse pairs the configured rules with their outcome for
// the caller. Evaluated always lists the flags the API itself checks.
type FeatureFlagsResponse struct {
	Raw       map[string]string `json:"raw"`
	Evaluated map[string]bool   `json:"evaluated"`
}

// GetFeatureFlags handles GET /api/feature-flags
// @Summary Feature flags
// @Description Configured flag rules and how they evaluate for the caller; percentage rollouts depend on the user
// @Tags meta
// @Produce json
// @Success 200 {object} FeatureFlagsResponse
// @Router /feature-flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)

	resp := FeatureFlagsResponse{Raw: map[string]string{}, Evaluated: map[string]bool{}}
	if s.featureFlags != nil {
		resp.Raw = s.featureFlags.Raw()
		resp.Evaluated = s.featureFlags.Snapshot(viewerID)
	}
	for _, name := range []string{featureflags.MediaUploads, featureflags.BlogEvents} {
		resp.Evaluated[name] = s.featureFlags.Enabled(name, viewerID)
	}
	return c.JSON(resp)
}
