package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/trmops/internal/session"
)

const (
	sessionContextKey = "currentSession"
	loginPath         = "/login"
)

// RequireSession loads the session cookie into context and redirects
// unauthenticated requests to the login page.
func RequireSession(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := manager.Read(c.Cookies(session.CookieName))
		if err != nil {
			return c.Redirect(loginPath, fiber.StatusFound)
		}

		c.Locals(sessionContextKey, s)
		return c.Next()
	}
}

// RequireRole admits sessions holding one of roles. Admins pass every check.
// It must run after RequireSession.
func RequireRole(roles ...session.Role) fiber.Handler {
	allowed := make(map[session.Role]struct{}, len(roles)+1)
	allowed[session.RoleAdmin] = struct{}{}
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		s, ok := CurrentSession(c)
		if !ok {
			return c.Redirect(loginPath, fiber.StatusFound)
		}
		if _, ok := allowed[s.Role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

// CurrentSession extracts the authenticated session from context.
func CurrentSession(c *fiber.Ctx) (session.Session, bool) {
	s, ok := c.Locals(sessionContextKey).(session.Session)
	return s, ok
}
