package server

import (
	"errors"
	"log/slog"
	"strings"
	"unicode"

	"blogicum/internal/featureflags"
	"blogicum/internal/feed"
	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/notifications"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Unparseable ids never reach the store, so "/posts/abc" answers 400 rather
// than 404.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "commentId" -> "comment ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		words := splitCamel(param[:len(param)-2])
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// pageParam reads ?page= leniently; anything unusable is page 1.
func pageParam(c *fiber.Ctx) int {
	return feed.ParsePageNumber(c.Query("page"))
}

// actorID is the authenticated user set by AuthRequired, or 0.
func actorID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// respondError writes err with the status its code maps to. Server faults are
// logged; everything else is an expected outcome.
func respondError(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}
	return models.RespondWithError(c, status, err)
}

// respondFormError is respondError that echoes input back on validation failures.
func respondFormError(c *fiber.Ctx, err error, input any) error {
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		return respondError(c, err)
	}
	return models.RespondWithInput(c, status, err, input)
}

// publish emits a lifecycle event when the blog_events flag is on for the actor.
func (s *Server) publish(c *fiber.Ctx, ev notifications.Event) {
	if s.notifier == nil || !s.featureFlags.Enabled(featureflags.BlogEvents, ev.ActorID) {
		return
	}
	s.notifier.PublishAsync(c.UserContext(), ev)
}

// accountView is a user as seen by themselves: the public profile plus email.
type accountView struct {
	*models.User
	Email string `json:"email"`
}

func newAccountView(u *models.User) accountView {
	return accountView{User: u, Email: u.Email}
}
