package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/trmops/internal/middleware"
	"github.com/example/trmops/internal/session"
)

// AreaHandler serves the role landing pages and identity endpoints.
type AreaHandler struct {
	sessions *session.Manager
}

// NewAreaHandler constructs an AreaHandler.
func NewAreaHandler(sessions *session.Manager) *AreaHandler {
	return &AreaHandler{sessions: sessions}
}

// Landing renders the landing payload for area. It runs behind RequireSession.
func (h *AreaHandler) Landing(area string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, ok := middleware.CurrentSession(c)
		if !ok {
			return c.Redirect(loginPath, fiber.StatusFound)
		}
		return c.JSON(fiber.Map{
			"area":    area,
			"user_id": s.UserID,
			"role":    s.Role,
		})
	}
}

// Me returns the current identity.
func (h *AreaHandler) Me(c *fiber.Ctx) error {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		return c.Redirect(loginPath, fiber.StatusFound)
	}
	return c.JSON(fiber.Map{
		"user_id":      s.UserID,
		"role":         s.Role,
		"landing_path": session.LandingPath(s.Role),
	})
}

// Root sends signed-in users to their landing page and everyone else to login.
func (h *AreaHandler) Root(c *fiber.Ctx) error {
	s, err := h.sessions.Read(c.Cookies(session.CookieName))
	if err != nil {
		return c.Redirect(loginPath, fiber.StatusFound)
	}
	return c.Redirect(session.LandingPath(s.Role), fiber.StatusFound)
}
