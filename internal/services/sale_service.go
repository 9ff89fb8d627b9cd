package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"boutique/internal/domain"
	"boutique/internal/repos"
)

type SaleService struct {
	Sales *repos.SaleRepo
	Now   func() time.Time
}

func NewSaleService(sales *repos.SaleRepo) *SaleService {
	return &SaleService{Sales: sales, Now: time.Now}
}

// Sell removes qty units of the product from stock and records the sale.
// Both writes commit together. Stock is checked again at this point, so a
// form showing an outdated quantity cannot oversell.
func (s *SaleService) Sell(ctx context.Context, productID int64, qty int) (domain.SoldRecord, error) {
	if qty < 1 {
		return domain.SoldRecord{}, ErrInvalidQuantity
	}
	rec, err := s.Sales.Sell(ctx, productID, qty, s.Now().Format(domain.TimeLayout))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.SoldRecord{}, ErrProductNotFound
	case errors.Is(err, repos.ErrStockChanged):
		return domain.SoldRecord{}, ErrInsufficientStock
	case err != nil:
		return domain.SoldRecord{}, fmt.Errorf("sell product %d: %w", productID, err)
	}
	return rec, nil
}

// History returns every sale, newest first.
func (s *SaleService) History(ctx context.Context) ([]domain.SoldRecord, error) {
	return s.Sales.History(ctx)
}

func (s *SaleService) Get(ctx context.Context, id int64) (domain.SoldRecord, error) {
	return s.Sales.Get(ctx, id)
}
