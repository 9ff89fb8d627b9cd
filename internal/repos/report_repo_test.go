package repos

import (
	"context"
	"testing"

	"boutique/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregatesOnEmptyStore(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	r := NewReportRepo(db)

	stock, err := r.TotalStock(ctx)
	require.NoError(t, err)
	assert.Zero(t, stock)
	sold, err := r.TotalSold(ctx)
	require.NoError(t, err)
	assert.Zero(t, sold)
	rev, err := r.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.True(t, rev.IsZero())
	profit, err := r.TotalProfit(ctx)
	require.NoError(t, err)
	assert.True(t, profit.IsZero())

	low, err := r.LowStock(ctx, domain.LowStockThreshold)
	require.NoError(t, err)
	assert.Empty(t, low)
	byCat, err := r.RevenueByCategory(ctx)
	require.NoError(t, err)
	assert.Empty(t, byCat)
}

func TestLowAndTopStock(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	prods := NewProductRepo(db)
	for _, p := range []struct {
		name string
		qty  int
	}{{"A", 5}, {"B", 6}, {"C", 0}, {"D", 3}, {"E", 40}, {"F", 12}, {"G", 8}} {
		seedProduct(t, prods, p.name, domain.CategoryChains, 1, 2, p.qty)
	}
	r := NewReportRepo(db)

	low, err := r.LowStock(ctx, domain.LowStockThreshold)
	require.NoError(t, err)
	var names []string
	for _, row := range low {
		names = append(names, row.Name)
	}
	assert.Equal(t, []string{"C", "D", "A"}, names)

	top, err := r.TopStock(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 5)
	assert.Equal(t, "E", top[0].Name)
	assert.Equal(t, 40, top[0].Quantity)
	assert.Equal(t, "F", top[1].Name)
}

func TestMoneyTotalsAreExactCents(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	prods, sales := NewProductRepo(db), NewSaleRepo(db)
	create := func(name, buy, sell string) int64 {
		id, err := prods.Create(ctx, domain.NewProduct{
			Name:      name,
			Category:  domain.CategoryChains,
			BuyPrice:  decimal.RequireFromString(buy),
			SellPrice: decimal.RequireFromString(sell),
			Quantity:  10,
		}, "2024-05-01 09:30")
		require.NoError(t, err)
		return id
	}
	a := create("Maillon fin", "0.2", "0.1")
	b := create("Maillon plat", "0", "0.2")

	var revenue, profit decimal.Decimal
	for _, id := range []int64{a, b} {
		rec, err := sales.Sell(ctx, id, 3, "2024-05-02 11:00")
		require.NoError(t, err)
		revenue = revenue.Add(rec.Revenue())
		profit = profit.Add(rec.Profit())
	}
	require.Equal(t, "0.9", revenue.String())
	require.Equal(t, "0.3", profit.String())

	r := NewReportRepo(db)
	gotRev, err := r.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, revenue.String(), gotRev.String())
	gotProfit, err := r.TotalProfit(ctx)
	require.NoError(t, err)
	assert.Equal(t, profit.String(), gotProfit.String())

	byCat, err := r.RevenueByCategory(ctx)
	require.NoError(t, err)
	require.Len(t, byCat, 1)
	assert.Equal(t, "0.9", byCat[0].Revenue.String())
	assert.Equal(t, "0.3", byCat[0].Profit.String())
}
