package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/trmops/internal/cookies"
)

// expiredAt is sent as Expires on deletion directives.
var expiredAt = time.Unix(0, 0).UTC()

func setCookie(c *fiber.Ctx, directive cookies.Cookie) {
	cookie := &fiber.Cookie{
		Name:     directive.Name,
		Value:    directive.Value,
		Path:     directive.Path,
		HTTPOnly: directive.HTTPOnly,
		Secure:   directive.Secure,
		SameSite: directive.SameSite,
	}
	if directive.Expire {
		cookie.Expires = expiredAt
	} else {
		cookie.MaxAge = directive.MaxAgeSeconds()
	}
	c.Cookie(cookie)
}

func setCookies(c *fiber.Ctx, directives []cookies.Cookie) {
	for _, directive := range directives {
		setCookie(c, directive)
	}
}
