package repos

import (
	"context"
	"database/sql"

	"boutique/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productColumns = `
    id, COALESCE(name,'') AS name, COALESCE(category,'') AS category,
    COALESCE(buy_price,0) AS buy_price, COALESCE(sell_price,0) AS sell_price,
    COALESCE(quantity,0) AS quantity, COALESCE(date_added,'') AS date_added`

// Create inserts p and returns its new id.
func (r *ProductRepo) Create(ctx context.Context, p domain.NewProduct, dateAdded string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO products (name, category, buy_price, sell_price, quantity, date_added)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.Name, p.Category, p.BuyPrice, p.SellPrice, p.Quantity, dateAdded)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	return p, err
}

// List returns every product, or only those filed under category when it is non-nil.
func (r *ProductRepo) List(ctx context.Context, category *domain.Category) ([]domain.Product, error) {
	out := []domain.Product{}
	var err error
	if category == nil {
		err = r.db.SelectContext(ctx, &out, `SELECT `+productColumns+` FROM products ORDER BY id`)
	} else {
		err = r.db.SelectContext(ctx, &out, `SELECT `+productColumns+` FROM products WHERE category = ? ORDER BY id`, *category)
	}
	return out, err
}

// InStock returns products that can still be sold.
func (r *ProductRepo) InStock(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, `SELECT `+productColumns+` FROM products WHERE quantity > 0 ORDER BY id`)
	return out, err
}

func (r *ProductRepo) DistinctCategories(ctx context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.SelectContext(ctx, &out, `SELECT DISTINCT category FROM products WHERE category IS NOT NULL`)
	return out, err
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
