package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/retailops/internal/domain"
	"github.com/jafarshop/retailops/internal/pricing"
)

// TopItem is one product ranked by units sold
type TopItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// DayBucket accumulates sales by weekday name
type DayBucket struct {
	Weekday time.Weekday    `json:"weekday"`
	Label   string          `json:"label"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// CategoryRevenue is the revenue attributed to one category
type CategoryRevenue struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// StockEntry is a catalog item flagged by stock classification
type StockEntry struct {
	ProductID          string             `json:"product_id"`
	Name               string             `json:"name"`
	Stock              int                `json:"stock"`
	CriticalStockLevel int                `json:"critical_stock_level"`
	Status             domain.StockStatus `json:"status"`
}

// StockReport summarises the whole catalog, independent of any window
type StockReport struct {
	LowStock             []StockEntry    `json:"low_stock"`
	OutOfStock           []StockEntry    `json:"out_of_stock"`
	LowStockCount        int             `json:"low_stock_count"`
	OutOfStockCount      int             `json:"out_of_stock_count"`
	TotalStockValue      decimal.Decimal `json:"total_stock_value"`
	DiscountedStockValue decimal.Decimal `json:"discounted_stock_value"`
}

// weekOrder lists weekdays Monday first
var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

var weekdayLabels = map[time.Weekday]string{
	time.Monday:    "Mon",
	time.Tuesday:   "Tue",
	time.Wednesday: "Wed",
	time.Thursday:  "Thu",
	time.Friday:    "Fri",
	time.Saturday:  "Sat",
	time.Sunday:    "Sun",
}

// TopSoldItems groups sale lines by product, ranks by quantity and keeps the
// first limit entries. Equal quantities keep first-seen order.
func TopSoldItems(sales []Sale, limit int) []TopItem {
	index := make(map[string]int)
	items := make([]TopItem, 0)

	for _, sale := range sales {
		for _, line := range sale.Lines {
			if line.ProductID == "" {
				continue
			}
			i, ok := index[line.ProductID]
			if !ok {
				i = len(items)
				index[line.ProductID] = i
				items = append(items, TopItem{ProductID: line.ProductID, Name: line.Name, Revenue: decimal.Zero})
			}
			items[i].Quantity += line.Quantity
			items[i].Revenue = items[i].Revenue.Add(line.Revenue())
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Quantity > items[j].Quantity
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// DailySeries returns exactly seven buckets, Monday to Sunday.
//
// Sales are bucketed by weekday name only, so sales from different weeks
// that share a weekday land in the same bucket.
func DailySeries(sales []Sale, loc *time.Location) []DayBucket {
	if loc == nil {
		loc = time.Local
	}

	buckets := make([]DayBucket, len(weekOrder))
	pos := make(map[time.Weekday]int, len(weekOrder))
	for i, wd := range weekOrder {
		buckets[i] = DayBucket{Weekday: wd, Label: weekdayLabels[wd], Revenue: decimal.Zero}
		pos[wd] = i
	}

	for _, sale := range sales {
		b := &buckets[pos[sale.At.In(loc).Weekday()]]
		b.Count++
		b.Revenue = b.Revenue.Add(sale.Revenue)
	}

	return buckets
}

// CategoryDistribution sums line revenue per category, highest first.
// Lines without a stored category take it from the live catalog, then fall
// back to the uncategorized label.
func CategoryDistribution(sales []Sale, catalog []*domain.CatalogItem, uncategorized string) []CategoryRevenue {
	categoryByID := make(map[string]string, len(catalog))
	for _, item := range catalog {
		if item == nil {
			continue
		}
		categoryByID[item.ID.String()] = item.CategoryName()
	}

	index := make(map[string]int)
	out := make([]CategoryRevenue, 0)
	for _, sale := range sales {
		for _, line := range sale.Lines {
			category := line.Category
			if category == "" {
				category = categoryByID[line.ProductID]
			}
			if category == "" {
				category = uncategorized
			}

			i, ok := index[category]
			if !ok {
				i = len(out)
				index[category] = i
				out = append(out, CategoryRevenue{Category: category, Revenue: decimal.Zero})
			}
			out[i].Revenue = out[i].Revenue.Add(line.Revenue())
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue.GreaterThan(out[j].Revenue)
	})
	return out
}

// ClassifyStock places an item in a stock bucket. Out of stock wins over low
// stock; the low-stock threshold is inclusive. A non-positive critical level
// is replaced by defaultCritical.
func ClassifyStock(item *domain.CatalogItem, defaultCritical int) domain.StockStatus {
	critical := item.CriticalStockLevel
	if critical <= 0 {
		critical = defaultCritical
	}

	switch {
	case item.Stock <= 0:
		return domain.StockStatusOutOfStock
	case item.Stock <= critical:
		return domain.StockStatusLow
	default:
		return domain.StockStatusHealthy
	}
}

// BuildStockReport classifies every catalog item and values the stock at list
// price and at the currently resolved price.
func BuildStockReport(catalog []*domain.CatalogItem, rules []domain.DiscountRule, defaultCritical int) StockReport {
	report := StockReport{
		LowStock:             make([]StockEntry, 0),
		OutOfStock:           make([]StockEntry, 0),
		TotalStockValue:      decimal.Zero,
		DiscountedStockValue: decimal.Zero,
	}

	for _, item := range catalog {
		if item == nil {
			continue
		}
		status := ClassifyStock(item, defaultCritical)
		entry := StockEntry{
			ProductID:          item.ID.String(),
			Name:               item.Name,
			Stock:              item.Stock,
			CriticalStockLevel: item.CriticalStockLevel,
			Status:             status,
		}

		switch status {
		case domain.StockStatusOutOfStock:
			report.OutOfStock = append(report.OutOfStock, entry)
		case domain.StockStatusLow:
			report.LowStock = append(report.LowStock, entry)
		}

		if item.Stock > 0 {
			qty := decimal.NewFromInt(int64(item.Stock))
			report.TotalStockValue = report.TotalStockValue.Add(item.SalePrice.Mul(qty))
			resolved := pricing.ResolvePrice(item, rules)
			report.DiscountedStockValue = report.DiscountedStockValue.Add(resolved.FinalPrice.Mul(qty))
		}
	}

	report.LowStockCount = len(report.LowStock)
	report.OutOfStockCount = len(report.OutOfStock)
	return report
}
