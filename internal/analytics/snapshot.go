package analytics

import (
	"time"

	"github.com/jafarshop/retailops/internal/domain"
	"github.com/jafarshop/retailops/internal/timewindow"
)

// Inputs are the raw collections a snapshot is computed from
type Inputs struct {
	Catalog   []*domain.CatalogItem
	Rules     []domain.DiscountRule
	Sales     []domain.Document
	Purchases []domain.Document
	Expenses  []domain.Document
}

// Snapshot is the full dashboard view. It is recomputed on every request.
type Snapshot struct {
	Period      timewindow.Pair   `json:"period"`
	Current     PeriodMetrics     `json:"current"`
	Previous    PeriodMetrics     `json:"previous"`
	Change      Deltas            `json:"change"`
	Stock       StockReport       `json:"stock"`
	TopItems    []TopItem         `json:"top_items"`
	Daily       []DayBucket       `json:"daily"`
	Categories  []CategoryRevenue `json:"categories"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// BuildSnapshot runs the window builder, the period aggregator and the
// catalog views for one dashboard request.
func BuildSnapshot(mode timewindow.Mode, now time.Time, in Inputs, opts Options) Snapshot {
	opts = opts.withDefaults()
	now = now.In(opts.Location)

	pair := timewindow.Build(mode, now)
	summary := AggregatePeriods(pair, in.Sales, in.Purchases, in.Expenses, opts)

	return Snapshot{
		Period:      pair,
		Current:     summary.Current,
		Previous:    summary.Previous,
		Change:      summary.Change,
		Stock:       BuildStockReport(in.Catalog, in.Rules, opts.DefaultCriticalStock),
		TopItems:    TopSoldItems(summary.CurrentSales, opts.TopItemsLimit),
		Daily:       DailySeries(summary.CurrentSales, opts.Location),
		Categories:  CategoryDistribution(summary.CurrentSales, in.Catalog, opts.UncategorizedLabel),
		GeneratedAt: now,
	}
}
