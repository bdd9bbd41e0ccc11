package server

import (
	"strings"
	"time"

	"blogicum/internal/media"
	"blogicum/internal/models"
	"blogicum/internal/notifications"
	"blogicum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// postRequest is the body of create and edit. Omitted fields keep their
// default (create) or stored value (edit); category_id or location_id of 0
// clears the reference on edit.
type postRequest struct {
	Title       *string    `json:"title,omitempty"`
	Text        *string    `json:"text,omitempty"`
	PubDate     *time.Time `json:"pub_date,omitempty"`
	IsPublished *bool      `json:"is_published,omitempty"`
	CategoryID  *uint      `json:"category_id,omitempty"`
	LocationID  *uint      `json:"location_id,omitempty"`
	Image       *string    `json:"image,omitempty"`
}

func (r *postRequest) normalize() {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		r.Title = &title
	}
	if r.Image != nil {
		image := strings.TrimSpace(*r.Image)
		r.Image = &image
	}
}

func (r *postRequest) validateImage() error {
	if r.Image != nil && *r.Image != "" && !media.ValidRef(*r.Image) {
		return models.NewValidationError("Image must reference an uploaded file")
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetPosts handles GET /api/posts
// @Summary Home feed
// @Description Publicly visible posts, newest first
// @Tags posts
// @Produce json
// @Param page query int false "Page number (1-indexed)"
// @Success 200 {object} feed.Page
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page, err := s.feeds.Home(c.UserContext(), pageParam(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// GetCategoryPosts handles GET /api/category/:slug
// @Summary Category feed
// @Tags posts
// @Produce json
// @Param slug path string true "Category slug"
// @Param page query int false "Page number (1-indexed)"
// @Success 200 {object} object{category=models.Category,page=feed.Page}
// @Failure 404 {object} models.ErrorResponse
// @Router /category/{slug} [get]
func (s *Server) GetCategoryPosts(c *fiber.Ctx) error {
	category, page, err := s.feeds.Category(c.UserContext(), c.Params("slug"), pageParam(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"category": category,
		"page":     page,
	})
}

// GetPost handles GET /api/posts/:id
// @Summary Post detail
// @Description A post with its comment count and thread; hidden posts are 404
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} service.PostDetail
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	detail, err := s.postService.GetPostDetail(c.UserContext(), viewerID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

// CreatePost handles POST /api/posts
// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body postRequest true "Post"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := actorID(c)

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.normalize()
	if err := req.validateImage(); err != nil {
		return respondFormError(c, err, req)
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:      userID,
		Title:       deref(req.Title),
		Text:        deref(req.Text),
		PubDate:     req.PubDate,
		IsPublished: req.IsPublished,
		CategoryID:  req.CategoryID,
		LocationID:  req.LocationID,
		Image:       deref(req.Image),
	})
	if err != nil {
		return respondFormError(c, err, req)
	}

	s.publish(c, notifications.Event{
		Type:    notifications.PostCreated,
		PostID:  post.ID,
		ActorID: userID,
	})

	c.Location(post.CanonicalPath())
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPostForEdit handles GET /api/posts/:id/edit
// @Summary Post for editing
// @Description Backs the edit form and the delete confirmation; only the author passes
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/edit [get]
func (s *Server) GetPostForEdit(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPostForMutation(c.UserContext(), actorID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
// @Summary Edit post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body postRequest true "Fields to change"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := actorID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	// The ownership check comes before the body is even looked at.
	if _, err := s.postService.GetPostForMutation(c.UserContext(), userID, postID); err != nil {
		return respondError(c, err)
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.normalize()
	if err := req.validateImage(); err != nil {
		return respondFormError(c, err, req)
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID:      userID,
		PostID:      postID,
		Title:       req.Title,
		Text:        req.Text,
		PubDate:     req.PubDate,
		IsPublished: req.IsPublished,
		CategoryID:  req.CategoryID,
		LocationID:  req.LocationID,
		Image:       req.Image,
	})
	if err != nil {
		return respondFormError(c, err, req)
	}

	s.publish(c, notifications.Event{
		Type:    notifications.PostUpdated,
		PostID:  post.ID,
		ActorID: userID,
	})

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete post
// @Description Removes the post and its comments
// @Tags posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := actorID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), userID, postID); err != nil {
		return respondError(c, err)
	}

	s.publish(c, notifications.Event{
		Type:    notifications.PostDeleted,
		PostID:  postID,
		ActorID: userID,
	})

	return c.SendStatus(fiber.StatusNoContent)
}
