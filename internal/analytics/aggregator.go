// Package analytics derives dashboard figures from historical records.
//
// Records arrive as loosely-typed documents. Anything that cannot be read
// (no usable date, malformed amounts) is dropped or zeroed; nothing in this
// package returns an error.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/retailops/internal/domain"
	"github.com/jafarshop/retailops/internal/timewindow"
)

var hundred = decimal.NewFromInt(100)

// Options carries the read-only settings shared by every analytics call
type Options struct {
	Location             *time.Location
	TopItemsLimit        int
	UncategorizedLabel   string
	DefaultCriticalStock int
}

// DefaultOptions returns the settings used when none are configured
func DefaultOptions() Options {
	return Options{
		Location:             time.Local,
		TopItemsLimit:        5,
		UncategorizedLabel:   "Uncategorized",
		DefaultCriticalStock: domain.DefaultCriticalStockLevel,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Location == nil {
		o.Location = def.Location
	}
	if o.TopItemsLimit <= 0 {
		o.TopItemsLimit = def.TopItemsLimit
	}
	if o.UncategorizedLabel == "" {
		o.UncategorizedLabel = def.UncategorizedLabel
	}
	if o.DefaultCriticalStock <= 0 {
		o.DefaultCriticalStock = def.DefaultCriticalStock
	}
	return o
}

// PeriodMetrics are the totals of one window
type PeriodMetrics struct {
	Revenue           decimal.Decimal `json:"revenue"`
	SalesCount        int             `json:"sales_count"`
	Profit            decimal.Decimal `json:"profit"`
	Expenses          decimal.Decimal `json:"expenses"`
	Purchases         decimal.Decimal `json:"purchases"`
	NetProfit         decimal.Decimal `json:"net_profit"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// Deltas are percentage changes from the previous window to the current one
type Deltas struct {
	Revenue           float64 `json:"revenue"`
	SalesCount        float64 `json:"sales_count"`
	Profit            float64 `json:"profit"`
	Expenses          float64 `json:"expenses"`
	Purchases         float64 `json:"purchases"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// PeriodSummary is the output of AggregatePeriods
type PeriodSummary struct {
	Window   timewindow.Pair
	Current  PeriodMetrics
	Previous PeriodMetrics
	Change   Deltas

	// CurrentSales feeds the catalog views
	CurrentSales []Sale
}

// PercentageChange returns (current - previous) / previous * 100, or 0 when
// previous is not positive. Growth from zero reports 0, not infinity.
func PercentageChange(current, previous decimal.Decimal) float64 {
	if !previous.IsPositive() {
		return 0
	}
	return current.Sub(previous).Div(previous).Mul(hundred).InexactFloat64()
}

// AggregatePeriods partitions the three collections into the window pair and
// reduces each side into metrics.
func AggregatePeriods(pair timewindow.Pair, sales, purchases, expenses []domain.Document, opts Options) PeriodSummary {
	opts = opts.withDefaults()

	summary := PeriodSummary{
		Window:   pair,
		Current:  zeroMetrics(),
		Previous: zeroMetrics(),
	}

	for _, doc := range sales {
		sale, ok := DecodeSale(doc, opts.Location)
		if !ok || !sale.Status.CountsAsRevenue() {
			continue
		}
		switch {
		case pair.Current.Contains(sale.At):
			addSale(&summary.Current, sale)
			summary.CurrentSales = append(summary.CurrentSales, sale)
		case pair.Previous.Contains(sale.At):
			addSale(&summary.Previous, sale)
		}
	}

	for _, doc := range purchases {
		entry, ok := DecodeEntry(doc, PurchaseDateFields, opts.Location)
		if !ok {
			continue
		}
		if m := pick(pair, entry.At, &summary); m != nil {
			m.Purchases = m.Purchases.Add(entry.Amount)
		}
	}

	for _, doc := range expenses {
		entry, ok := DecodeEntry(doc, ExpenseDateFields, opts.Location)
		if !ok {
			continue
		}
		if m := pick(pair, entry.At, &summary); m != nil {
			m.Expenses = m.Expenses.Add(entry.Amount)
		}
	}

	finish(&summary.Current)
	finish(&summary.Previous)

	summary.Change = Deltas{
		Revenue:           PercentageChange(summary.Current.Revenue, summary.Previous.Revenue),
		SalesCount:        PercentageChange(decimal.NewFromInt(int64(summary.Current.SalesCount)), decimal.NewFromInt(int64(summary.Previous.SalesCount))),
		Profit:            PercentageChange(summary.Current.Profit, summary.Previous.Profit),
		Expenses:          PercentageChange(summary.Current.Expenses, summary.Previous.Expenses),
		Purchases:         PercentageChange(summary.Current.Purchases, summary.Previous.Purchases),
		AverageOrderValue: PercentageChange(summary.Current.AverageOrderValue, summary.Previous.AverageOrderValue),
	}

	return summary
}

func zeroMetrics() PeriodMetrics {
	return PeriodMetrics{
		Revenue:           decimal.Zero,
		Profit:            decimal.Zero,
		Expenses:          decimal.Zero,
		Purchases:         decimal.Zero,
		NetProfit:         decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}
}

func addSale(m *PeriodMetrics, sale Sale) {
	m.Revenue = m.Revenue.Add(sale.Revenue)
	m.SalesCount++
	for _, line := range sale.Lines {
		m.Profit = m.Profit.Add(line.Profit())
	}
}

func pick(pair timewindow.Pair, at time.Time, s *PeriodSummary) *PeriodMetrics {
	switch {
	case pair.Current.Contains(at):
		return &s.Current
	case pair.Previous.Contains(at):
		return &s.Previous
	default:
		return nil
	}
}

func finish(m *PeriodMetrics) {
	m.NetProfit = m.Profit.Sub(m.Expenses)
	if m.SalesCount > 0 {
		m.AverageOrderValue = m.Revenue.Div(decimal.NewFromInt(int64(m.SalesCount)))
	}
}
