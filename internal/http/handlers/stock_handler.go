package handlers

import (
	"slices"
	"strings"

	"boutique/internal/domain"
	applog "boutique/internal/log"
	"boutique/internal/services"

	"github.com/gofiber/fiber/v2"
)

// allCategories is the filter value meaning "no filter".
const allCategories = "Toutes"

type StockHandler struct {
	Catalog *services.CatalogService
}

// GET /stock?category=
func (h *StockHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	inUse, err := h.Catalog.CategoriesInUse(ctx)
	if err != nil {
		return err
	}

	selected := strings.TrimSpace(c.Query("category"))
	var filter *domain.Category
	if selected != "" && selected != allCategories {
		cat := domain.Category(selected)
		if !cat.Valid() && !slices.Contains(inUse, cat) {
			applog.Security(c, "validation.fail", map[string]any{"field": "category"})
			c.Status(fiber.StatusBadRequest)
			return render(c, "stock", fiber.Map{
				"Active": "stock", "InUse": inUse, "Selected": allCategories,
				"Products": []domain.Product{}, "Flash": warn("Catégorie inconnue."),
			})
		}
		filter = &cat
	} else {
		selected = allCategories
	}

	products, err := h.Catalog.ListProducts(ctx, filter)
	if err != nil {
		return err
	}
	data := fiber.Map{"Active": "stock", "InUse": inUse, "Selected": selected, "Products": products}
	if len(products) == 0 {
		data["Flash"] = info("Aucun produit trouvé pour cette catégorie.")
	}
	return render(c, "stock", data)
}
