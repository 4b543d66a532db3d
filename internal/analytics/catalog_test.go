package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/retailops/internal/domain"
)

func sale(at time.Time, revenue string, lines ...SaleLine) Sale {
	return Sale{At: at, Revenue: dec(revenue), Lines: lines}
}

func saleLine(productID string, qty int, final string) SaleLine {
	return SaleLine{ProductID: productID, Name: "item " + productID, Quantity: qty, FinalPrice: dec(final), PurchasePrice: dec("0")}
}

func catalogItem(category *string, stock, critical int, price string) *domain.CatalogItem {
	return &domain.CatalogItem{
		ID:                 uuid.New(),
		Name:               "item",
		Category:           category,
		Stock:              stock,
		SalePrice:          dec(price),
		PurchasePrice:      dec("1"),
		CriticalStockLevel: critical,
	}
}

func strPtr(s string) *string {
	return &s
}

func TestTopSoldItems_OrdersByQuantity(t *testing.T) {
	sales := []Sale{
		sale(refNow, "30", saleLine("A", 3, "10")),
		sale(refNow, "10", saleLine("B", 5, "2")),
	}

	top := TopSoldItems(sales, 5)

	require.Len(t, top, 2)
	assert.Equal(t, "B", top[0].ProductID)
	assert.Equal(t, "A", top[1].ProductID)
	assert.Equal(t, "30", top[1].Revenue.String())
}

func TestTopSoldItems_GroupsAndLimits(t *testing.T) {
	sales := []Sale{
		sale(refNow, "0", saleLine("A", 1, "1"), saleLine("B", 2, "1"), saleLine("C", 2, "1")),
		sale(refNow, "0", saleLine("A", 3, "2"), saleLine("D", 1, "1"), saleLine("E", 1, "1"), saleLine("F", 9, "1")),
	}

	top := TopSoldItems(sales, 5)

	require.Len(t, top, 5)
	ids := []string{top[0].ProductID, top[1].ProductID, top[2].ProductID, top[3].ProductID, top[4].ProductID}
	// A=4, ties B/C and D/E keep first-seen order
	assert.Equal(t, []string{"F", "A", "B", "C", "D"}, ids)
	assert.Equal(t, 4, top[1].Quantity)
	assert.Equal(t, "7", top[1].Revenue.String())
}

func TestTopSoldItems_Empty(t *testing.T) {
	assert.Empty(t, TopSoldItems(nil, 5))
}

func TestDailySeries_AlwaysSevenBuckets(t *testing.T) {
	empty := DailySeries(nil, time.UTC)
	require.Len(t, empty, 7)
	assert.Equal(t, time.Monday, empty[0].Weekday)
	assert.Equal(t, "Sun", empty[6].Label)
	for _, b := range empty {
		assert.Equal(t, 0, b.Count)
		assert.True(t, b.Revenue.IsZero())
	}

	var sales []Sale
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		sales = append(sales, sale(start.AddDate(0, 0, i), "1"))
	}
	series := DailySeries(sales, time.UTC)

	require.Len(t, series, 7)
	total := 0
	for _, b := range series {
		total += b.Count
	}
	assert.Equal(t, 10, total)
}

func TestDailySeries_BucketsByWeekdayName(t *testing.T) {
	friday := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	sales := []Sale{
		sale(friday, "10"),
		sale(friday.AddDate(0, 0, -28), "5"), // a Friday four weeks earlier
		sale(friday.AddDate(0, 0, -4), "2"),  // Monday
	}

	series := DailySeries(sales, time.UTC)

	assert.Equal(t, "Fri", series[4].Label)
	assert.Equal(t, 2, series[4].Count)
	assert.Equal(t, "15", series[4].Revenue.String())
	assert.Equal(t, 1, series[0].Count)
	assert.Equal(t, "2", series[0].Revenue.String())
}

func TestDailySeries_UsesLocation(t *testing.T) {
	// 23:30 UTC on a Sunday is already Monday at UTC+2
	sunday := time.Date(2024, 3, 17, 23, 30, 0, 0, time.UTC)

	series := DailySeries([]Sale{sale(sunday, "1")}, time.FixedZone("UTC+2", 2*60*60))

	assert.Equal(t, 1, series[0].Count)
	assert.Equal(t, 0, series[6].Count)
}

func TestCategoryDistribution(t *testing.T) {
	coffee := catalogItem(strPtr("coffee"), 10, 5, "5")
	loose := catalogItem(nil, 10, 5, "5")
	sales := []Sale{
		sale(refNow, "0",
			SaleLine{ProductID: "x", Category: "tea", Quantity: 1, FinalPrice: dec("4")},
			SaleLine{ProductID: coffee.ID.String(), Quantity: 2, FinalPrice: dec("5")},
		),
		sale(refNow, "0",
			SaleLine{ProductID: loose.ID.String(), Quantity: 1, FinalPrice: dec("3")},
			SaleLine{ProductID: "gone", Quantity: 1, FinalPrice: dec("1")},
			SaleLine{ProductID: "y", Category: "tea", Quantity: 2, FinalPrice: dec("4")},
		),
	}

	dist := CategoryDistribution(sales, []*domain.CatalogItem{coffee, loose}, "Uncategorized")

	require.Len(t, dist, 3)
	assert.Equal(t, "tea", dist[0].Category)
	assert.Equal(t, "12", dist[0].Revenue.String())
	assert.Equal(t, "coffee", dist[1].Category)
	assert.Equal(t, "10", dist[1].Revenue.String())
	assert.Equal(t, "Uncategorized", dist[2].Category)
	assert.Equal(t, "4", dist[2].Revenue.String())
}

func TestClassifyStock_Boundaries(t *testing.T) {
	assert.Equal(t, domain.StockStatusLow, ClassifyStock(catalogItem(nil, 5, 5, "1"), 5))
	assert.Equal(t, domain.StockStatusOutOfStock, ClassifyStock(catalogItem(nil, 0, 5, "1"), 5))
	assert.Equal(t, domain.StockStatusOutOfStock, ClassifyStock(catalogItem(nil, -2, 5, "1"), 5))
	assert.Equal(t, domain.StockStatusLow, ClassifyStock(catalogItem(nil, 1, 5, "1"), 5))
	assert.Equal(t, domain.StockStatusHealthy, ClassifyStock(catalogItem(nil, 6, 5, "1"), 5))
	// unset threshold uses the default
	assert.Equal(t, domain.StockStatusLow, ClassifyStock(catalogItem(nil, 4, 0, "1"), 5))
	assert.Equal(t, domain.StockStatusHealthy, ClassifyStock(catalogItem(nil, 4, 0, "1"), 3))
}

func TestBuildStockReport(t *testing.T) {
	coffee := catalogItem(strPtr("coffee"), 10, 5, "4")
	low := catalogItem(nil, 3, 5, "2")
	out := catalogItem(nil, 0, 5, "100")
	rules := []domain.DiscountRule{{Category: "coffee", Type: domain.DiscountTypePercentage, Value: dec("50")}}

	report := BuildStockReport([]*domain.CatalogItem{coffee, low, out}, rules, 5)

	assert.Equal(t, 1, report.LowStockCount)
	assert.Equal(t, 1, report.OutOfStockCount)
	assert.Equal(t, low.ID.String(), report.LowStock[0].ProductID)
	assert.Equal(t, out.ID.String(), report.OutOfStock[0].ProductID)
	// 10*4 + 3*2
	assert.Equal(t, "46", report.TotalStockValue.String())
	// 10*2 + 3*2
	assert.Equal(t, "26", report.DiscountedStockValue.String())
}
