package handlers

import (
	"errors"
	"time"

	"boutique/internal/log"
	"boutique/internal/services"
	"boutique/internal/validate"

	"github.com/gofiber/fiber/v2"
)

const badCreds = "Identifiants incorrects"

type AuthHandler struct {
	Auth         *services.AuthService
	Sessions     *services.SessionManager
	CookieSecure bool
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	if tok := c.Cookies(services.SessionCookie); tok != "" {
		if _, err := h.Sessions.Parse(tok); err == nil {
			return c.Redirect("/dashboard")
		}
	}
	return render(c, "login", fiber.Map{"Err": "", "Username": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	username, ok := validate.Username(c.FormValue("username"))
	pass := c.FormValue("password")
	if !ok || !validate.Password(pass) {
		log.Security(c, "auth.login.fail", map[string]any{"username": username, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).Render("login", h.loginData(c, username))
	}

	admin, err := h.Auth.Authenticate(c.UserContext(), username, pass)
	if errors.Is(err, services.ErrBadCreds) {
		log.Security(c, "auth.login.fail", map[string]any{"username": username})
		return c.Status(fiber.StatusUnauthorized).Render("login", h.loginData(c, username))
	}
	if err != nil {
		return err
	}

	tok, err := h.Sessions.Issue(admin.Username)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     services.SessionCookie,
		Value:    tok,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.CookieSecure,
		Expires:  time.Now().Add(h.Sessions.TTL()),
	})
	log.Audit(c, "auth.login.success", map[string]any{"username": admin.Username})
	return c.Redirect("/dashboard")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	clearSession(c, h.CookieSecure)
	log.Audit(c, "auth.logout", nil)
	return c.Redirect("/login")
}

func (h *AuthHandler) loginData(c *fiber.Ctx, username string) fiber.Map {
	return fiber.Map{"Err": badCreds, "Username": username, "CSRFToken": c.Cookies("csrf_")}
}

func clearSession(c *fiber.Ctx, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     services.SessionCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   secure,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
