package services

import (
	"context"
	"fmt"
	"slices"

	"boutique/internal/domain"
	"boutique/internal/repos"
)

const topStockLimit = 5

type ReportService struct {
	Reports *repos.ReportRepo
}

func NewReportService(reports *repos.ReportRepo) *ReportService {
	return &ReportService{Reports: reports}
}

// Dashboard bundles everything the dashboard page shows.
type Dashboard struct {
	Summary           domain.Summary           `json:"summary"`
	LowStock          []domain.StockRow        `json:"low_stock"`
	TopStock          []domain.StockRow        `json:"top_stock"`
	RevenueByCategory []domain.CategoryRevenue `json:"revenue_by_category"`
}

func (s *ReportService) Summary(ctx context.Context) (domain.Summary, error) {
	var (
		sum domain.Summary
		err error
	)
	if sum.TotalStock, err = s.Reports.TotalStock(ctx); err != nil {
		return sum, fmt.Errorf("total stock: %w", err)
	}
	if sum.TotalSold, err = s.Reports.TotalSold(ctx); err != nil {
		return sum, fmt.Errorf("total sold: %w", err)
	}
	if sum.Revenue, err = s.Reports.TotalRevenue(ctx); err != nil {
		return sum, fmt.Errorf("total revenue: %w", err)
	}
	if sum.Profit, err = s.Reports.TotalProfit(ctx); err != nil {
		return sum, fmt.Errorf("total profit: %w", err)
	}
	if sum.CategoryCount, err = s.Reports.CategoryCount(ctx); err != nil {
		return sum, fmt.Errorf("category count: %w", err)
	}
	return sum, nil
}

func (s *ReportService) LowStock(ctx context.Context) ([]domain.StockRow, error) {
	return s.Reports.LowStock(ctx, domain.LowStockThreshold)
}

func (s *ReportService) TopStock(ctx context.Context) ([]domain.StockRow, error) {
	return s.Reports.TopStock(ctx, topStockLimit)
}

// RevenueByCategory returns revenue and profit per sold category in display order.
func (s *ReportService) RevenueByCategory(ctx context.Context) ([]domain.CategoryRevenue, error) {
	rows, err := s.Reports.RevenueByCategory(ctx)
	if err != nil {
		return nil, err
	}
	cats := make([]domain.Category, len(rows))
	for i, r := range rows {
		cats[i] = r.Category
	}
	domain.SortCategories(cats)
	slices.SortStableFunc(rows, func(a, b domain.CategoryRevenue) int {
		return slices.Index(cats, a.Category) - slices.Index(cats, b.Category)
	})
	return rows, nil
}

func (s *ReportService) Dashboard(ctx context.Context) (Dashboard, error) {
	var (
		d   Dashboard
		err error
	)
	if d.Summary, err = s.Summary(ctx); err != nil {
		return d, err
	}
	if d.LowStock, err = s.LowStock(ctx); err != nil {
		return d, fmt.Errorf("low stock: %w", err)
	}
	if d.TopStock, err = s.TopStock(ctx); err != nil {
		return d, fmt.Errorf("top stock: %w", err)
	}
	if d.RevenueByCategory, err = s.RevenueByCategory(ctx); err != nil {
		return d, fmt.Errorf("revenue by category: %w", err)
	}
	return d, nil
}
