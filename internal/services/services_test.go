package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"boutique/internal/domain"
	"boutique/internal/repos"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = func() time.Time { return time.Date(2024, 6, 1, 14, 5, 33, 0, time.Local) }

type fixture struct {
	db      *sqlx.DB
	auth    *AuthService
	catalog *CatalogService
	sales   *SaleService
	reports *ReportService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	auth := NewAuthService(repos.NewAdminRepo(db))
	auth.Cost = bcrypt.MinCost
	catalog := NewCatalogService(repos.NewProductRepo(db))
	catalog.Now = fixedNow
	sales := NewSaleService(repos.NewSaleRepo(db))
	sales.Now = fixedNow
	return fixture{
		db:      db,
		auth:    auth,
		catalog: catalog,
		sales:   sales,
		reports: NewReportService(repos.NewReportRepo(db)),
	}
}

func (f fixture) add(t *testing.T, name string, cat domain.Category, buy, sell int64, qty int) domain.Product {
	t.Helper()
	p, err := f.catalog.AddProduct(context.Background(), domain.NewProduct{
		Name:      name,
		Category:  cat,
		BuyPrice:  decimal.NewFromInt(buy),
		SellPrice: decimal.NewFromInt(sell),
		Quantity:  qty,
	})
	require.NoError(t, err)
	return p
}

func TestAuthenticateSeededAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.auth.Authenticate(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", a.Username)

	_, err = f.auth.Authenticate(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrBadCreds)
	_, err = f.auth.Authenticate(ctx, "nobody", "admin123")
	assert.ErrorIs(t, err, ErrBadCreds)
}

func TestAuthenticateReportsStoreFailure(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Close())

	_, err := f.auth.Authenticate(context.Background(), "admin", "admin123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadCreds)
}

func TestAuthenticateUpgradesLegacyHash(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sum := sha256.Sum256([]byte("admin123"))
	_, err := f.db.Exec(`UPDATE admin SET password=? WHERE username='admin'`, hex.EncodeToString(sum[:]))
	require.NoError(t, err)

	_, err = f.auth.Authenticate(ctx, "admin", "nope")
	assert.ErrorIs(t, err, ErrBadCreds)

	_, err = f.auth.Authenticate(ctx, "admin", "admin123")
	require.NoError(t, err)

	a, err := repos.NewAdminRepo(f.db).ByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.Hash), []byte("admin123")))

	_, err = f.auth.Authenticate(ctx, "admin", "admin123")
	assert.NoError(t, err)
}

func TestSetPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.auth.SetPassword(ctx, "admin", "n3w-secret"))
	_, err := f.auth.Authenticate(ctx, "admin", "admin123")
	assert.ErrorIs(t, err, ErrBadCreds)
	_, err = f.auth.Authenticate(ctx, "admin", "n3w-secret")
	assert.NoError(t, err)

	var ve *ValidationError
	assert.ErrorAs(t, f.auth.SetPassword(ctx, "admin", "  "), &ve)
	assert.Error(t, f.auth.SetPassword(ctx, "ghost", "whatever"))
}

func TestAddProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.add(t, "  T-Shirt ", domain.CategoryClothes, 5, 10, 20)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "T-Shirt", p.Name)
	assert.Equal(t, "2024-06-01 14:05", p.DateAdded)

	stored, err := f.catalog.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.DateAdded, stored.DateAdded)
	assert.Equal(t, 20, stored.Quantity)

	cases := []struct {
		field string
		in    domain.NewProduct
	}{
		{"name", domain.NewProduct{Name: "  ", Category: domain.CategoryWigs}},
		{"category", domain.NewProduct{Name: "X", Category: "Chaussures"}},
		{"buy_price", domain.NewProduct{Name: "X", Category: domain.CategoryWigs, BuyPrice: decimal.NewFromInt(-1)}},
		{"sell_price", domain.NewProduct{Name: "X", Category: domain.CategoryWigs, SellPrice: decimal.NewFromInt(-1)}},
		{"quantity", domain.NewProduct{Name: "X", Category: domain.CategoryWigs, Quantity: -1}},
	}
	for _, c := range cases {
		_, err := f.catalog.AddProduct(ctx, c.in)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, c.field)
		assert.Equal(t, c.field, ve.Field)
	}

	all, err := f.catalog.ListProducts(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetProductNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.catalog.GetProduct(context.Background(), 42)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListByCategoryAndCategoriesInUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.add(t, "Chaîne or", domain.CategoryChains, 10, 25, 4)
	f.add(t, "Robe", domain.CategoryClothes, 8, 20, 2)
	f.add(t, "Boxer", domain.CategoryUnderwear, 2, 6, 0)
	f.add(t, "Jupe", domain.CategoryClothes, 6, 15, 1)

	cats, err := f.catalog.CategoriesInUse(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{domain.CategoryClothes, domain.CategoryChains, domain.CategoryUnderwear}, cats)

	clothes := domain.CategoryClothes
	list, err := f.catalog.ListProducts(ctx, &clothes)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Robe", list[0].Name)

	closures := domain.CategoryClosures
	list, err = f.catalog.ListProducts(ctx, &closures)
	require.NoError(t, err)
	assert.Empty(t, list)

	sellable, err := f.catalog.SellableProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, sellable, 3)
}

func TestSellScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.add(t, "T-Shirt", domain.CategoryClothes, 5, 10, 20)

	rec, err := f.sales.Sell(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01 14:05", rec.DateSold)
	assert.True(t, rec.Profit().Equal(decimal.NewFromInt(15)))
	assert.True(t, rec.Revenue().Equal(decimal.NewFromInt(30)))

	after, err := f.catalog.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 17, after.Quantity)

	hist, err := f.sales.History(ctx)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, 3, hist[0].Quantity)

	sum, err := f.reports.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 17, sum.TotalStock)
	assert.Equal(t, 3, sum.TotalSold)
	assert.True(t, sum.Revenue.Equal(decimal.NewFromInt(30)), sum.Revenue.String())
	assert.True(t, sum.Profit.Equal(decimal.NewFromInt(15)), sum.Profit.String())
	assert.Equal(t, 1, sum.CategoryCount)
}

func TestSellErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.add(t, "Perruque bob", domain.CategoryWigs, 40, 80, 2)

	_, err := f.sales.Sell(ctx, p.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = f.sales.Sell(ctx, p.ID, 3)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	_, err = f.sales.Sell(ctx, 9999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	after, err := f.catalog.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, after.Quantity)
	hist, err := f.sales.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, hist)

	// Selling the last units empties the product and removes it from the sellable list.
	_, err = f.sales.Sell(ctx, p.ID, 2)
	require.NoError(t, err)
	sellable, err := f.catalog.SellableProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, sellable)
}

func TestDashboardEmpty(t *testing.T) {
	f := newFixture(t)
	d, err := f.reports.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, d.Summary.TotalStock)
	assert.Zero(t, d.Summary.TotalSold)
	assert.True(t, d.Summary.Revenue.IsZero())
	assert.True(t, d.Summary.Profit.IsZero())
	assert.Zero(t, d.Summary.CategoryCount)
	assert.Empty(t, d.LowStock)
	assert.Empty(t, d.TopStock)
	assert.Empty(t, d.RevenueByCategory)
}

func TestRevenueByCategoryInDisplayOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	under := f.add(t, "Culotte", domain.CategoryUnderwear, 2, 5, 10)
	wig := f.add(t, "Perruque", domain.CategoryWigs, 50, 100, 10)
	shirt := f.add(t, "T-Shirt", domain.CategoryClothes, 5, 10, 10)
	for _, id := range []int64{under.ID, wig.ID, shirt.ID} {
		_, err := f.sales.Sell(ctx, id, 2)
		require.NoError(t, err)
	}

	rows, err := f.reports.RevenueByCategory(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.CategoryClothes, rows[0].Category)
	assert.Equal(t, domain.CategoryWigs, rows[1].Category)
	assert.Equal(t, domain.CategoryUnderwear, rows[2].Category)
	assert.True(t, rows[1].Revenue.Equal(decimal.NewFromInt(200)))
	assert.True(t, rows[1].Profit.Equal(decimal.NewFromInt(100)))
}

func TestDashboardLowAndTopStock(t *testing.T) {
	f := newFixture(t)
	for i, qty := range []int{1, 30, 5, 6, 22, 9, 14} {
		f.add(t, string(rune('A'+i)), domain.CategoryClosures, 1, 2, qty)
	}
	d, err := f.reports.Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, d.LowStock, 2)
	assert.Equal(t, 1, d.LowStock[0].Quantity)
	assert.Equal(t, 5, d.LowStock[1].Quantity)

	require.Len(t, d.TopStock, 5)
	assert.Equal(t, 30, d.TopStock[0].Quantity)
	assert.Equal(t, 6, d.TopStock[4].Quantity)
}
