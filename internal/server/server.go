package server

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"boutique/internal/config"
	"boutique/internal/http/handlers"
	applog "boutique/internal/log"
	"boutique/web"
)

// Limits bounds request rates per client IP.
type Limits struct {
	Global      int // requests per minute on all pages
	Login       int // login attempts per LoginWindow
	LoginWindow time.Duration
}

var DefaultLimits = Limits{Global: 120, Login: 5, LoginWindow: 10 * time.Minute}

const genericError = "Une erreur est survenue. Veuillez réessayer."

// New assembles the application: views, middleware and routes.
func New(db *sqlx.DB, cfg config.Config, lim Limits) *fiber.App {
	engine := html.NewFileSystem(web.Templates(), ".html")
	engine.AddFunc("money", func(d decimal.Decimal) string { return d.StringFixed(2) })

	app := fiber.New(fiber.Config{
		Views:        engine,
		BodyLimit:    1 << 20, // 1 MiB
		ErrorHandler: errorHandler,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{Output: applog.Writer()}))
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        lim.Global,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).SendString("Trop de requêtes. Réessayez dans un instant.")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.CookieSecure,
		ContextKey:     "csrf",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("error", fiber.Map{
				"Message": "Vérification de sécurité échouée. Rechargez la page et réessayez.",
				"Active":  "",
			})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok && tok != "" {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	app.Use("/static", filesystem.New(filesystem.Config{Root: web.Static()}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg)
	guard := handlers.RequireAdmin(deps.Sessions, cfg.CookieSecure)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// Auth routes (login throttled)
	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        lim.Login,
		Expiration: lim.LoginWindow,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{
				"Err":       "Trop de tentatives. Réessayez plus tard.",
				"Username":  "",
				"CSRFToken": c.Cookies("csrf_"),
			})
		},
	}), deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)

	// Menu destinations
	app.Get("/", guard, func(c *fiber.Ctx) error { return c.Redirect("/dashboard") })
	app.Get("/dashboard", guard, deps.DashboardHandler.Page)
	app.Get("/products", guard, deps.ProductHandler.Form)
	app.Post("/products", guard, deps.ProductHandler.Create)
	app.Get("/stock", guard, deps.StockHandler.List)
	app.Get("/sell", guard, deps.SaleHandler.Form)
	app.Post("/sell", guard, deps.SaleHandler.Sell)
	app.Get("/sales", guard, deps.SaleHandler.History)

	api := app.Group("/api/v1", guard)
	api.Get("/dashboard", deps.DashboardHandler.JSON)

	// 404
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("error", fiber.Map{"Message": "Page introuvable.", "Active": ""})
	})

	return app
}

// errorHandler logs the failure and shows a generic page without internals.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	applog.Error(c, "server.error", err, map[string]any{"code": code})
	if rerr := c.Status(code).Render("error", fiber.Map{
		"Message":   genericError,
		"Active":    "",
		"Admin":     c.Locals("admin"),
		"CSRFToken": c.Cookies("csrf_"),
	}); rerr != nil {
		return c.Status(code).SendString(genericError)
	}
	return nil
}
