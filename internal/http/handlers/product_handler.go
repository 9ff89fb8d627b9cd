package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"boutique/internal/domain"
	applog "boutique/internal/log"
	"boutique/internal/services"
	"boutique/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// productForm holds raw form values so a rejected submission is shown back as typed.
type productForm struct {
	Name      string
	Category  string
	BuyPrice  string
	SellPrice string
	Quantity  string
}

// GET /products
func (h *ProductHandler) Form(c *fiber.Ctx) error {
	data := fiber.Map{"Active": "products", "Categories": domain.Categories, "Form": productForm{Category: string(domain.Categories[0])}}
	if id, ok := validate.ID(c.Query("added")); ok {
		if p, err := h.Catalog.GetProduct(c.UserContext(), id); err == nil {
			data["Flash"] = success("Produit '" + p.Name + "' ajouté avec succès ✅")
		}
	}
	return render(c, "products", data)
}

// POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	form := productForm{
		Name:      c.FormValue("name"),
		Category:  c.FormValue("category"),
		BuyPrice:  c.FormValue("buy_price"),
		SellPrice: c.FormValue("sell_price"),
		Quantity:  c.FormValue("quantity"),
	}
	reject := func(field, msg string) error {
		applog.Security(c, "validation.fail", map[string]any{"field": field})
		c.Status(fiber.StatusBadRequest)
		return render(c, "products", fiber.Map{
			"Active": "products", "Categories": domain.Categories, "Form": form, "Flash": warn(msg),
		})
	}

	name, ok := validate.Name(form.Name)
	if !ok {
		if strings.TrimSpace(form.Name) != "" {
			return reject("name", fmt.Sprintf("Le nom du produit ne doit pas dépasser %d caractères.", validate.MaxNameLen))
		}
		return reject("name", "Veuillez entrer le nom du produit.")
	}
	cat, ok := validate.Category(form.Category)
	if !ok {
		return reject("category", "Veuillez choisir une catégorie.")
	}
	buy, ok := validate.Price(form.BuyPrice)
	if !ok {
		return reject("buy_price", "Prix d'achat invalide.")
	}
	sell, ok := validate.Price(form.SellPrice)
	if !ok {
		return reject("sell_price", "Prix de vente invalide.")
	}
	qty, ok := validate.Quantity(form.Quantity)
	if !ok {
		return reject("quantity", "Quantité invalide.")
	}

	p, err := h.Catalog.AddProduct(c.UserContext(), domain.NewProduct{
		Name: name, Category: cat, BuyPrice: buy, SellPrice: sell, Quantity: qty,
	})
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return reject(verr.Field, verr.Message)
	}
	if err != nil {
		return err
	}
	applog.Audit(c, "product.create", map[string]any{
		"product_id": p.ID, "name": p.Name, "category": p.Category, "quantity": p.Quantity,
	})
	return c.Redirect("/products?added=" + strconv.FormatInt(p.ID, 10))
}
