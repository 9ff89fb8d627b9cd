package domain

import "github.com/shopspring/decimal"

// TimeLayout is the minute-precision local timestamp stored in date_added and date_sold.
const TimeLayout = "2006-01-02 15:04"

// LowStockThreshold is the inclusive quantity at or below which a product is low on stock.
const LowStockThreshold = 5

type Product struct {
	ID        int64           `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Category  Category        `db:"category" json:"category"`
	BuyPrice  decimal.Decimal `db:"buy_price" json:"buy_price"`
	SellPrice decimal.Decimal `db:"sell_price" json:"sell_price"`
	Quantity  int             `db:"quantity" json:"quantity"`
	DateAdded string          `db:"date_added" json:"date_added"`
}

// NewProduct is the input of the add-product form.
type NewProduct struct {
	Name      string
	Category  Category
	BuyPrice  decimal.Decimal
	SellPrice decimal.Decimal
	Quantity  int
}

type SoldRecord struct {
	ID        int64           `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Category  Category        `db:"category" json:"category"`
	BuyPrice  decimal.Decimal `db:"buy_price" json:"buy_price"`
	SellPrice decimal.Decimal `db:"sell_price" json:"sell_price"`
	Quantity  int             `db:"quantity" json:"quantity"`
	DateSold  string          `db:"date_sold" json:"date_sold"`
}

// Profit is (sell - buy) * quantity.
func (s SoldRecord) Profit() decimal.Decimal {
	return s.SellPrice.Sub(s.BuyPrice).Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// Revenue is sell * quantity.
func (s SoldRecord) Revenue() decimal.Decimal {
	return s.SellPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// StockRow is the short product projection used by dashboard tables.
type StockRow struct {
	Name     string   `db:"name" json:"name"`
	Category Category `db:"category" json:"category"`
	Quantity int      `db:"quantity" json:"quantity"`
}

type Summary struct {
	TotalStock    int             `db:"total_stock" json:"total_stock"`
	TotalSold     int             `db:"total_sold" json:"total_sold"`
	Revenue       decimal.Decimal `db:"revenue" json:"revenue"`
	Profit        decimal.Decimal `db:"profit" json:"profit"`
	CategoryCount int             `db:"category_count" json:"category_count"`
}

type CategoryRevenue struct {
	Category Category        `db:"category" json:"category"`
	Revenue  decimal.Decimal `db:"revenue" json:"revenue"`
	Profit   decimal.Decimal `db:"profit" json:"profit"`
}
