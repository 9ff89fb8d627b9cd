package repos

import (
	"context"

	"boutique/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// ReportRepo runs the dashboard aggregates. Every SUM is wrapped in COALESCE
// so empty tables report zero. Money sums are rounded to cents since the
// columns are REAL.
type ReportRepo struct{ db *sqlx.DB }

func NewReportRepo(db *sqlx.DB) *ReportRepo { return &ReportRepo{db: db} }

// Unknown buy prices count as the sell price, i.e. zero profit.
const profitExpr = `(sell_price - COALESCE(buy_price, sell_price)) * quantity`

func (r *ReportRepo) TotalStock(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COALESCE(SUM(quantity),0) FROM products`)
	return n, err
}

func (r *ReportRepo) TotalSold(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COALESCE(SUM(quantity),0) FROM sold_products`)
	return n, err
}

func (r *ReportRepo) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var d decimal.Decimal
	err := r.db.GetContext(ctx, &d, `SELECT COALESCE(ROUND(SUM(sell_price * quantity), 2),0) FROM sold_products`)
	return d, err
}

func (r *ReportRepo) TotalProfit(ctx context.Context) (decimal.Decimal, error) {
	var d decimal.Decimal
	err := r.db.GetContext(ctx, &d, `SELECT COALESCE(ROUND(SUM(`+profitExpr+`), 2),0) FROM sold_products`)
	return d, err
}

func (r *ReportRepo) CategoryCount(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(DISTINCT category) FROM products`)
	return n, err
}

// LowStock lists products at or below threshold, lowest quantity first.
func (r *ReportRepo) LowStock(ctx context.Context, threshold int) ([]domain.StockRow, error) {
	out := []domain.StockRow{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT COALESCE(name,'') AS name, COALESCE(category,'') AS category, quantity
		FROM products
		WHERE quantity <= ?
		ORDER BY quantity ASC, id ASC
	`, threshold)
	return out, err
}

// TopStock lists the limit products holding the most units.
func (r *ReportRepo) TopStock(ctx context.Context, limit int) ([]domain.StockRow, error) {
	out := []domain.StockRow{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT COALESCE(name,'') AS name, COALESCE(category,'') AS category, COALESCE(quantity,0) AS quantity
		FROM products
		ORDER BY quantity DESC, id ASC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *ReportRepo) RevenueByCategory(ctx context.Context) ([]domain.CategoryRevenue, error) {
	out := []domain.CategoryRevenue{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT COALESCE(category,'') AS category,
		       COALESCE(ROUND(SUM(sell_price * quantity), 2),0) AS revenue,
		       COALESCE(ROUND(SUM(`+profitExpr+`), 2),0) AS profit
		FROM sold_products
		GROUP BY category
		ORDER BY category
	`)
	return out, err
}
