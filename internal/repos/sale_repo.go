package repos

import (
	"context"
	"errors"

	"boutique/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ErrStockChanged means the product no longer holds the requested quantity
// when the decrement runs.
var ErrStockChanged = errors.New("stock changed")

type SaleRepo struct{ db *sqlx.DB }

func NewSaleRepo(db *sqlx.DB) *SaleRepo { return &SaleRepo{db: db} }

// Sell decrements the product stock by qty and appends the matching sold
// record in one transaction. The product row is read inside the transaction
// so the record copies the prices in force at the moment of the sale.
// It returns sql.ErrNoRows for an unknown product and ErrStockChanged when
// fewer than qty units remain.
func (r *SaleRepo) Sell(ctx context.Context, productID int64, qty int, dateSold string) (domain.SoldRecord, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.SoldRecord{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var p domain.Product
	if err := tx.GetContext(ctx, &p, `SELECT `+productColumns+` FROM products WHERE id = ?`, productID); err != nil {
		return domain.SoldRecord{}, err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET quantity = quantity - ?
		WHERE id = ? AND quantity >= ?
	`, qty, productID, qty)
	if err != nil {
		return domain.SoldRecord{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.SoldRecord{}, ErrStockChanged
	}

	rec := domain.SoldRecord{
		Name:      p.Name,
		Category:  p.Category,
		BuyPrice:  p.BuyPrice,
		SellPrice: p.SellPrice,
		Quantity:  qty,
		DateSold:  dateSold,
	}
	res, err = tx.ExecContext(ctx, `
		INSERT INTO sold_products (name, category, buy_price, sell_price, quantity, date_sold)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.Name, rec.Category, rec.BuyPrice, rec.SellPrice, rec.Quantity, rec.DateSold)
	if err != nil {
		return domain.SoldRecord{}, err
	}
	if rec.ID, err = res.LastInsertId(); err != nil {
		return domain.SoldRecord{}, err
	}
	return rec, tx.Commit()
}

// History returns every sold record, newest first. Records written before
// buy prices were tracked report a buy price equal to the sell price, so
// they contribute no profit.
func (r *SaleRepo) History(ctx context.Context) ([]domain.SoldRecord, error) {
	out := []domain.SoldRecord{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, COALESCE(name,'') AS name, COALESCE(category,'') AS category,
		       COALESCE(buy_price, sell_price, 0) AS buy_price, COALESCE(sell_price,0) AS sell_price,
		       COALESCE(quantity,0) AS quantity, COALESCE(date_sold,'') AS date_sold
		FROM sold_products
		ORDER BY date_sold DESC, id DESC
	`)
	return out, err
}

func (r *SaleRepo) Get(ctx context.Context, id int64) (domain.SoldRecord, error) {
	var rec domain.SoldRecord
	err := r.db.GetContext(ctx, &rec, `
		SELECT id, COALESCE(name,'') AS name, COALESCE(category,'') AS category,
		       COALESCE(buy_price, sell_price, 0) AS buy_price, COALESCE(sell_price,0) AS sell_price,
		       COALESCE(quantity,0) AS quantity, COALESCE(date_sold,'') AS date_sold
		FROM sold_products
		WHERE id = ?
	`, id)
	return rec, err
}
