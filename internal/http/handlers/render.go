package handlers

import "github.com/gofiber/fiber/v2"

// Flash is a one-shot notification shown above the page content.
// Kind is one of success, info, warning, error.
type Flash struct {
	Kind string
	Text string
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if a, ok := c.Locals("admin").(string); ok && a != "" {
		data["Admin"] = a
	}
	// Token placed in Locals by the CSRF middleware; fall back to the cookie.
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	data["CSRFToken"] = tok
	return c.Render(tmpl, data)
}

func warn(text string) *Flash    { return &Flash{Kind: "warning", Text: text} }
func success(text string) *Flash { return &Flash{Kind: "success", Text: text} }
func info(text string) *Flash    { return &Flash{Kind: "info", Text: text} }
