package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"boutique/internal/domain"
	"boutique/internal/repos"
)

type CatalogService struct {
	Prods *repos.ProductRepo
	Now   func() time.Time
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods, Now: time.Now}
}

// AddProduct validates p and stores it stamped with the current local minute.
func (s *CatalogService) AddProduct(ctx context.Context, p domain.NewProduct) (domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := checkNewProduct(p); err != nil {
		return domain.Product{}, err
	}
	added := s.Now().Format(domain.TimeLayout)
	id, err := s.Prods.Create(ctx, p, added)
	if err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}
	return domain.Product{
		ID:        id,
		Name:      p.Name,
		Category:  p.Category,
		BuyPrice:  p.BuyPrice,
		SellPrice: p.SellPrice,
		Quantity:  p.Quantity,
		DateAdded: added,
	}, nil
}

func checkNewProduct(p domain.NewProduct) error {
	switch {
	case p.Name == "":
		return &ValidationError{Field: "name", Message: "Veuillez entrer le nom du produit."}
	case !p.Category.Valid():
		return &ValidationError{Field: "category", Message: "Catégorie inconnue."}
	case p.BuyPrice.IsNegative():
		return &ValidationError{Field: "buy_price", Message: "Le prix d'achat doit être positif ou nul."}
	case p.SellPrice.IsNegative():
		return &ValidationError{Field: "sell_price", Message: "Le prix de vente doit être positif ou nul."}
	case p.Quantity < 0:
		return &ValidationError{Field: "quantity", Message: "La quantité doit être positive ou nulle."}
	}
	return nil
}

// ListProducts returns all products, or those of one category when filter is set.
func (s *CatalogService) ListProducts(ctx context.Context, filter *domain.Category) ([]domain.Product, error) {
	return s.Prods.List(ctx, filter)
}

// CategoriesInUse returns the categories that at least one product is filed under.
func (s *CatalogService) CategoriesInUse(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.Prods.DistinctCategories(ctx)
	if err != nil {
		return nil, err
	}
	domain.SortCategories(cats)
	return cats, nil
}

// SellableProducts returns the products with at least one unit left.
func (s *CatalogService) SellableProducts(ctx context.Context) ([]domain.Product, error) {
	return s.Prods.InStock(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	p, err := s.Prods.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrProductNotFound
	}
	return p, err
}
