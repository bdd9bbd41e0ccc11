package server

import (
	"blogicum/internal/models"
	"blogicum/internal/service"

	"github.com/gofiber/fiber/v2"
)

type profileRequest struct {
	Username  *string `json:"username,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// GetProfile handles GET /api/profile/:username
// @Summary User profile
// @Description Public profile plus the user's posts; the owner also sees drafts and scheduled posts
// @Tags profile
// @Produce json
// @Param username path string true "Username"
// @Param page query int false "Page number (1-indexed)"
// @Success 200 {object} object{profile=models.User,page=feed.Page}
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/{username} [get]
func (s *Server) GetProfile(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)

	owner, page, err := s.feeds.Profile(c.UserContext(), c.Params("username"), viewerID, pageParam(c))
	if err != nil {
		return respondError(c, err)
	}

	var profile any = owner
	if viewerID != 0 && viewerID == owner.ID {
		profile = newAccountView(owner)
	}
	return c.JSON(fiber.Map{
		"profile": profile,
		"page":    page,
	})
}

// UpdateProfile handles PUT /api/profile
// @Summary Edit own profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body profileRequest true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /profile [put]
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:    actorID(c),
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return respondFormError(c, err, req)
	}
	return c.JSON(newAccountView(user))
}
