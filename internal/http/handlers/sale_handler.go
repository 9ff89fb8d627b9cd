package handlers

import (
	"errors"
	"fmt"
	"strconv"

	applog "boutique/internal/log"
	"boutique/internal/services"
	"boutique/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	Catalog *services.CatalogService
	Sales   *services.SaleService
}

// GET /sell?product=ID
//
// The page walks through picking a product (only items in stock are
// offered), choosing a quantity within the stock and confirming.
func (h *SaleHandler) Form(c *fiber.Ctx) error {
	var flash *Flash
	if id, ok := validate.ID(c.Query("sold")); ok {
		if rec, err := h.Sales.Get(c.UserContext(), id); err == nil {
			flash = success(fmt.Sprintf("Vente de %d '%s' enregistrée et stock mis à jour ✅", rec.Quantity, rec.Name))
		}
	}
	selected, _ := validate.ID(c.Query("product"))
	return h.page(c, selected, flash)
}

// POST /sell
func (h *SaleHandler) Sell(c *fiber.Ctx) error {
	ctx := c.UserContext()
	pid, ok := validate.ID(c.FormValue("product_id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product_id"})
		c.Status(fiber.StatusBadRequest)
		return h.page(c, 0, warn("Veuillez choisir un produit."))
	}
	p, err := h.Catalog.GetProduct(ctx, pid)
	if errors.Is(err, services.ErrProductNotFound) {
		c.Status(fiber.StatusNotFound)
		return h.page(c, 0, warn("Produit introuvable."))
	}
	if err != nil {
		return err
	}
	qty, ok := validate.SellQty(c.FormValue("qty"), p.Quantity)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "qty", "product_id": pid})
		c.Status(fiber.StatusBadRequest)
		return h.page(c, pid, warn(fmt.Sprintf("Quantité invalide : choisissez entre 1 et %d.", p.Quantity)))
	}

	rec, err := h.Sales.Sell(ctx, pid, qty)
	switch {
	case errors.Is(err, services.ErrInsufficientStock), errors.Is(err, services.ErrInvalidQuantity):
		applog.Security(c, "sale.rejected", map[string]any{"product_id": pid, "qty": qty, "reason": err.Error()})
		c.Status(fiber.StatusConflict)
		return h.page(c, pid, warn("Stock insuffisant pour cette vente."))
	case errors.Is(err, services.ErrProductNotFound):
		c.Status(fiber.StatusNotFound)
		return h.page(c, 0, warn("Produit introuvable."))
	case err != nil:
		return err
	}
	applog.Audit(c, "sale.create", map[string]any{
		"product_id": pid, "sale_id": rec.ID, "qty": rec.Quantity,
		"revenue": rec.Revenue().String(), "profit": rec.Profit().String(),
	})
	return c.Redirect("/sell?sold=" + strconv.FormatInt(rec.ID, 10))
}

func (h *SaleHandler) page(c *fiber.Ctx, selectedID int64, flash *Flash) error {
	products, err := h.Catalog.SellableProducts(c.UserContext())
	if err != nil {
		return err
	}
	data := fiber.Map{"Active": "sell", "Products": products, "Flash": flash}
	if len(products) == 0 {
		return render(c, "sell", data)
	}
	// Default to the first product, like a select box with nothing chosen yet.
	sel := products[0]
	for _, p := range products {
		if p.ID == selectedID {
			sel = p
			break
		}
	}
	data["Selected"] = sel
	return render(c, "sell", data)
}

// GET /sales
func (h *SaleHandler) History(c *fiber.Ctx) error {
	rows, err := h.Sales.History(c.UserContext())
	if err != nil {
		return err
	}
	data := fiber.Map{"Active": "sales", "Sales": rows}
	if len(rows) == 0 {
		data["Flash"] = info("Aucune vente enregistrée pour le moment.")
	}
	return render(c, "sales", data)
}
