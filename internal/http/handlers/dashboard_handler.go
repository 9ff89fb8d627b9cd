package handlers

import (
	"boutique/internal/services"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	Reports *services.ReportService
}

// GET /dashboard
func (h *DashboardHandler) Page(c *fiber.Ctx) error {
	d, err := h.Reports.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return render(c, "dashboard", fiber.Map{
		"Active":   "dashboard",
		"D":        d,
		"Chart":    BuildBarChart(d.RevenueByCategory),
		"HasChart": len(d.RevenueByCategory) > 0,
	})
}

// GET /api/v1/dashboard
func (h *DashboardHandler) JSON(c *fiber.Ctx) error {
	d, err := h.Reports.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(d)
}
