package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/retailops/internal/analytics"
	"github.com/jafarshop/retailops/internal/config"
	"github.com/jafarshop/retailops/internal/domain"
	"github.com/jafarshop/retailops/internal/repository"
	"github.com/jafarshop/retailops/internal/repository/memory"
	"github.com/jafarshop/retailops/internal/timewindow"
	"github.com/jafarshop/retailops/pkg/errors"
)

var saleTime = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

func testOptions() analytics.Options {
	opts := analytics.DefaultOptions()
	opts.Location = time.UTC
	return opts
}

type fixture struct {
	store *memory.Store
	repos *repository.Repositories
	beans *domain.CatalogItem
	mug   *domain.CatalogItem
}

// newFixture seeds two items and a 10% coffee rule
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore(zap.NewNop())
	repos := memory.NewRepositories(store)

	beans := &domain.CatalogItem{
		Name:          "Beans",
		Category:      strPtr("coffee"),
		Stock:         10,
		SalePrice:     dec("10"),
		PurchasePrice: dec("6"),
		Barcode:       strPtr("8690000000001"),
	}
	mug := &domain.CatalogItem{
		Name:          "Mug",
		Stock:         1,
		SalePrice:     dec("4"),
		PurchasePrice: dec("2"),
	}
	require.NoError(t, repos.Catalog.Create(ctx, beans))
	require.NoError(t, repos.Catalog.Create(ctx, mug))
	require.NoError(t, repos.DiscountRules.Create(ctx, &domain.DiscountRule{
		Category: "coffee",
		Type:     domain.DiscountTypePercentage,
		Value:    dec("10"),
	}))

	return &fixture{store: store, repos: repos, beans: beans, mug: mug}
}

func (f *fixture) checkout() *checkoutService {
	svc := NewCheckoutService(f.repos, zap.NewNop())
	svc.now = func() time.Time { return saleTime }
	return svc
}

func (f *fixture) stock(t *testing.T, id uuid.UUID) int {
	t.Helper()
	item, err := f.repos.Catalog.GetByID(context.Background(), id)
	require.NoError(t, err)
	return item.Stock
}

func TestCatalogService_ListWithPrices(t *testing.T) {
	f := newFixture(t)
	svc := NewCatalogService(f.repos, testOptions(), zap.NewNop())

	entries, err := svc.ListWithPrices(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "9", entries[0].Price.FinalPrice.String())
	require.NotNil(t, entries[0].Price.AppliedRule)
	assert.Equal(t, domain.StockStatusHealthy, entries[0].StockStatus)

	assert.Equal(t, "4", entries[1].Price.FinalPrice.String())
	assert.Nil(t, entries[1].Price.AppliedRule)
	assert.Equal(t, domain.StockStatusLow, entries[1].StockStatus)
}

func TestCatalogService_GetPrice(t *testing.T) {
	f := newFixture(t)
	svc := NewCatalogService(f.repos, testOptions(), zap.NewNop())

	res, err := svc.GetPrice(context.Background(), f.beans.ID)
	require.NoError(t, err)
	assert.Equal(t, "10", res.OriginalPrice.String())
	assert.Equal(t, "1", res.DiscountAppliedPerUnit.String())

	_, err = svc.GetPrice(context.Background(), uuid.New())
	_, ok := err.(*errors.ErrNotFound)
	assert.True(t, ok)
}

func TestCatalogService_GetByBarcode(t *testing.T) {
	f := newFixture(t)
	svc := NewCatalogService(f.repos, testOptions(), zap.NewNop())

	entry, err := svc.GetByBarcode(context.Background(), "8690000000001")
	require.NoError(t, err)
	assert.Equal(t, f.beans.ID, entry.Item.ID)
	assert.Equal(t, "9", entry.Price.FinalPrice.String())

	_, err = svc.GetByBarcode(context.Background(), "")
	_, ok := err.(*errors.ErrValidation)
	assert.True(t, ok)
}

func TestCatalogService_AdjustStockClampsAtZero(t *testing.T) {
	f := newFixture(t)
	svc := NewCatalogService(f.repos, testOptions(), zap.NewNop())

	item, err := svc.AdjustStock(context.Background(), f.beans.ID, -4)
	require.NoError(t, err)
	assert.Equal(t, 0, item.Stock)

	item, err = svc.AdjustStock(context.Background(), f.beans.ID, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, item.Stock)
}

func TestCatalogService_AdjustPrice(t *testing.T) {
	f := newFixture(t)
	svc := NewCatalogService(f.repos, testOptions(), zap.NewNop())

	item, err := svc.AdjustPrice(context.Background(), f.mug.ID, dec("5.50"))
	require.NoError(t, err)
	assert.Equal(t, "5.5", item.SalePrice.String())

	_, err = svc.AdjustPrice(context.Background(), f.mug.ID, dec("-1"))
	_, ok := err.(*errors.ErrValidation)
	assert.True(t, ok)

	_, err = svc.AdjustPrice(context.Background(), uuid.New(), dec("1"))
	_, ok = err.(*errors.ErrNotFound)
	assert.True(t, ok)
}

func TestCheckoutService_Quote(t *testing.T) {
	f := newFixture(t)

	quote, err := f.checkout().Quote(context.Background(), CheckoutRequest{
		Items: []CheckoutItem{
			{ProductID: f.beans.ID.String(), Quantity: 2},
			{ProductID: f.mug.ID.String(), Quantity: 1},
		},
		Adjustment: &AdjustmentRequest{Type: domain.DiscountTypeFixedAmount, Value: dec("3")},
	})
	require.NoError(t, err)

	// 2 x 9 + 1 x 4
	assert.Equal(t, "22", quote.Totals.Subtotal.String())
	assert.Equal(t, "2", quote.Totals.LineDiscountTotal.String())
	assert.Equal(t, "3", quote.Totals.TransactionDiscountAmount.String())
	assert.Equal(t, "19", quote.Totals.Total.String())
	assert.Equal(t, 3, quote.Totals.TotalItemCount)

	require.Len(t, quote.Lines, 2)
	assert.Equal(t, "18", quote.Lines[0].LineTotal.String())

	// quoting never touches stock
	assert.Equal(t, 10, f.stock(t, f.beans.ID))
}

func TestCheckoutService_QuoteValidation(t *testing.T) {
	f := newFixture(t)
	svc := f.checkout()
	ctx := context.Background()

	tests := []struct {
		name string
		req  CheckoutRequest
	}{
		{"empty cart", CheckoutRequest{}},
		{"bad product id", CheckoutRequest{Items: []CheckoutItem{{ProductID: "nope", Quantity: 1}}}},
		{"zero quantity", CheckoutRequest{Items: []CheckoutItem{{ProductID: f.beans.ID.String(), Quantity: 0}}}},
		{"unknown adjustment", CheckoutRequest{
			Items:      []CheckoutItem{{ProductID: f.beans.ID.String(), Quantity: 1}},
			Adjustment: &AdjustmentRequest{Type: "BOGO", Value: dec("1")},
		}},
		{"negative adjustment", CheckoutRequest{
			Items:      []CheckoutItem{{ProductID: f.beans.ID.String(), Quantity: 1}},
			Adjustment: &AdjustmentRequest{Type: domain.DiscountTypePercentage, Value: dec("-5")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Quote(ctx, tt.req)
			require.Error(t, err)
			_, ok := err.(*errors.ErrValidation)
			assert.True(t, ok, "got %T", err)
		})
	}
}

func TestCheckoutService_QuoteUnknownProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.checkout().Quote(context.Background(), CheckoutRequest{
		Items: []CheckoutItem{{ProductID: uuid.New().String(), Quantity: 1}},
	})
	_, ok := err.(*errors.ErrNotFound)
	assert.True(t, ok)
}

func TestCheckoutService_Checkout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sale, err := f.checkout().Checkout(ctx, CheckoutRequest{
		Items: []CheckoutItem{
			{ProductID: f.beans.ID.String(), Quantity: 2},
			{ProductID: f.mug.ID.String(), Quantity: 3},
		},
		PaymentMethod: domain.PaymentMethodCard,
		Customer:      &CustomerInfo{Name: "Ada"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SaleStatusCompleted, sale.Status)
	assert.Equal(t, saleTime, sale.Timestamp)
	assert.Equal(t, "30", sale.Totals.Total.String())
	require.Len(t, sale.Items, 2)
	assert.Equal(t, "coffee", sale.Items[0].Category)
	assert.Equal(t, "6", sale.Items[0].PurchasePrice.String())
	require.NotNil(t, sale.Customer)
	assert.Equal(t, "Ada", sale.Customer.Name)

	assert.Equal(t, 8, f.stock(t, f.beans.ID))
	assert.Equal(t, 0, f.stock(t, f.mug.ID), "stock never goes negative")

	docs, err := f.repos.Sales.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, sale.ID.String(), docs[0]["id"])
}

func TestCheckoutService_RejectsUnknownPaymentMethod(t *testing.T) {
	f := newFixture(t)

	_, err := f.checkout().Checkout(context.Background(), CheckoutRequest{
		Items:         []CheckoutItem{{ProductID: f.beans.ID.String(), Quantity: 1}},
		PaymentMethod: "CHEQUE",
	})
	_, ok := err.(*errors.ErrValidation)
	assert.True(t, ok)
}

// failingCatalog lets reads through and rejects every stock write
type failingCatalog struct {
	repository.CatalogRepository
}

func (c failingCatalog) AdjustStock(ctx context.Context, id uuid.UUID, stock int) error {
	return fmt.Errorf("connection reset")
}

type failingTx struct {
	store *memory.Store
}

func (f failingTx) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	return f.store.WithinTx(ctx, func(ctx context.Context, tx *repository.Repositories) error {
		tx.Catalog = failingCatalog{tx.Catalog}
		return fn(ctx, tx)
	})
}

func TestCheckoutService_PersistenceFailureWritesNothing(t *testing.T) {
	f := newFixture(t)
	f.repos.Tx = failingTx{store: f.store}
	ctx := context.Background()

	_, err := f.checkout().Checkout(ctx, CheckoutRequest{
		Items:         []CheckoutItem{{ProductID: f.beans.ID.String(), Quantity: 2}},
		PaymentMethod: domain.PaymentMethodCash,
	})
	require.Error(t, err)

	perr, ok := err.(*errors.ErrPersistence)
	require.True(t, ok, "got %T", err)
	assert.EqualError(t, perr.Unwrap(), "connection reset")

	assert.Equal(t, 10, f.stock(t, f.beans.ID))
	docs, err := f.repos.Sales.ListSales(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDashboardService_Snapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.checkout().Checkout(ctx, CheckoutRequest{
		Items:         []CheckoutItem{{ProductID: f.beans.ID.String(), Quantity: 2}},
		PaymentMethod: domain.PaymentMethodCash,
	})
	require.NoError(t, err)

	ledger := NewLedgerService(f.repos, zap.NewNop())
	ledger.now = func() time.Time { return saleTime }
	_, err = ledger.RecordExpense(ctx, LedgerEntryRequest{Amount: dec("2"), Category: "rent"})
	require.NoError(t, err)
	_, err = ledger.RecordPurchase(ctx, LedgerEntryRequest{Amount: dec("40"), Supplier: "Roastery"})
	require.NoError(t, err)

	dash := NewDashboardService(f.repos, testOptions(), zap.NewNop())
	dash.now = func() time.Time { return saleTime.Add(2 * time.Hour) }

	snap, err := dash.Snapshot(ctx, timewindow.ModeDay)
	require.NoError(t, err)

	assert.Equal(t, 1, snap.Current.SalesCount)
	assert.Equal(t, "18", snap.Current.Revenue.String())
	assert.Equal(t, "6", snap.Current.Profit.String())
	assert.Equal(t, "2", snap.Current.Expenses.String())
	assert.Equal(t, "40", snap.Current.Purchases.String())
	assert.Equal(t, "4", snap.Current.NetProfit.String())

	require.Len(t, snap.TopItems, 1)
	assert.Equal(t, f.beans.ID.String(), snap.TopItems[0].ProductID)
	require.Len(t, snap.Categories, 1)
	assert.Equal(t, "coffee", snap.Categories[0].Category)
	assert.Equal(t, 1, snap.Stock.LowStockCount)
}

func TestLedgerService_Validation(t *testing.T) {
	f := newFixture(t)
	svc := NewLedgerService(f.repos, zap.NewNop())

	_, err := svc.RecordPurchase(context.Background(), LedgerEntryRequest{Amount: dec("-1")})
	_, ok := err.(*errors.ErrValidation)
	assert.True(t, ok)

	_, err = svc.RecordExpense(context.Background(), LedgerEntryRequest{})
	_, ok = err.(*errors.ErrValidation)
	assert.True(t, ok)
}

func TestLedgerService_UsesGivenDate(t *testing.T) {
	f := newFixture(t)
	svc := NewLedgerService(f.repos, zap.NewNop())
	at := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	doc, err := svc.RecordExpense(context.Background(), LedgerEntryRequest{Amount: dec("5"), Date: &at})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T09:00:00Z", doc["expense_date"])
}

func TestAnalyticsOptions(t *testing.T) {
	cfg := &config.Config{Analytics: config.AnalyticsConfig{
		TopItemsLimit:        3,
		UncategorizedLabel:   "Other",
		DefaultCriticalStock: 2,
		Timezone:             "UTC",
	}}

	opts, err := AnalyticsOptions(cfg)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, opts.Location)
	assert.Equal(t, 3, opts.TopItemsLimit)
	assert.Equal(t, "Other", opts.UncategorizedLabel)
	assert.Equal(t, 2, opts.DefaultCriticalStock)

	cfg.Analytics.Timezone = "Nowhere/Land"
	_, err = AnalyticsOptions(cfg)
	assert.Error(t, err)
}
