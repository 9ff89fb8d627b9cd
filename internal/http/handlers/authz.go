package handlers

import (
	"strings"

	applog "boutique/internal/log"
	"boutique/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin lets a request through only with a valid session cookie.
// Pages redirect to the login form; API calls get a 401. secure marks the
// cleared cookie like the one set at login.
func RequireAdmin(sessions *services.SessionManager, secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := c.Cookies(services.SessionCookie)
		if tok == "" {
			return deny(c)
		}
		admin, err := sessions.Parse(tok)
		if err != nil {
			applog.Security(c, "access.denied.session", nil)
			clearSession(c, secure)
			return deny(c)
		}
		c.Locals("admin", admin)
		return c.Next()
	}
}

func deny(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	return c.Redirect("/login")
}
