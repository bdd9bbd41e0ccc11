package server

import "github.com/gofiber/fiber/v2"

// GetCategories handles GET /api/categories
// @Summary Published categories
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.catalogService.ListCategories(c.UserContext(), true)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// GetLocations handles GET /api/locations
// @Summary Published locations
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Location
// @Router /locations [get]
func (s *Server) GetLocations(c *fiber.Ctx) error {
	locations, err := s.catalogService.ListLocations(c.UserContext(), true)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(locations)
}
