package server

import (
	"fmt"
	"io"

	"blogicum/internal/featureflags"
	"blogicum/internal/media"
	"blogicum/internal/models"

	"github.com/gofiber/fiber/v2"
)

// MediaUploadResponse is the API response after uploading an image.
type MediaUploadResponse struct {
	Image string `json:"image"`
	URL   string `json:"url"`
}

// UploadMedia handles POST /api/media
// @Summary Upload post image
// @Description Stores a JPEG, PNG, GIF or WebP image and returns the reference posts keep in "image"
// @Tags media
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image"
// @Success 201 {object} MediaUploadResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /media [post]
func (s *Server) UploadMedia(c *fiber.Ctx) error {
	userID := actorID(c)
	if !s.featureFlags.Enabled(featureflags.MediaUploads, userID) {
		return respondError(c, models.NewNotFoundError("Feature", featureflags.MediaUploads))
	}

	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("No file uploaded"))
	}
	if file.Size > s.media.MaxBytes() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.media.MaxBytes()/(1024*1024))))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(io.LimitReader(src, s.media.MaxBytes()+1))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Unable to read uploaded file"))
	}

	ref, err := s.media.Save(c.UserContext(), media.UploadInput{
		UserID:      userID,
		ContentType: file.Header.Get(fiber.HeaderContentType),
		Content:     content,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(MediaUploadResponse{
		Image: ref,
		URL:   "/media/" + ref,
	})
}
