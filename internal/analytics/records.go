package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/retailops/internal/domain"
)

// Sale is a historical sale document decoded for analytics
type Sale struct {
	ID      string
	At      time.Time
	Status  domain.SaleStatus
	Revenue decimal.Decimal
	Lines   []SaleLine
}

// SaleLine is one decoded line of a historical sale
type SaleLine struct {
	ProductID     string
	Name          string
	Category      string
	Quantity      int
	FinalPrice    decimal.Decimal
	PurchasePrice decimal.Decimal
}

// Revenue is the line total at the snapshot price
func (l SaleLine) Revenue() decimal.Decimal {
	return l.FinalPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Profit is the line margin against the snapshot cost basis
func (l SaleLine) Profit() decimal.Decimal {
	return l.FinalPrice.Sub(l.PurchasePrice).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Entry is a dated amount from the purchases or expenses collection
type Entry struct {
	At     time.Time
	Amount decimal.Decimal
}

// DecodeSale reads a sale document. ok is false when the sale has no usable date.
func DecodeSale(doc domain.Document, loc *time.Location) (Sale, bool) {
	at, ok := ExtractDate(doc, SaleDateFields, loc)
	if !ok {
		return Sale{}, false
	}

	sale := Sale{
		ID:     stringField(doc, "id"),
		At:     at,
		Status: domain.SaleStatus(stringField(doc, "status")),
	}

	for _, raw := range listField(doc, "items") {
		line := SaleLine{
			ProductID: stringField(raw, "product_id", "productId", "id"),
			Name:      stringField(raw, "name"),
			Category:  stringField(raw, "category"),
			Quantity:  intField(raw, "quantity", "qty"),
		}
		line.FinalPrice, _ = decimalField(raw, "final_price", "finalPrice", "price")
		line.PurchasePrice, _ = decimalField(raw, "purchase_price", "purchasePrice")
		if line.Quantity < 0 {
			line.Quantity = 0
		}
		sale.Lines = append(sale.Lines, line)
	}

	sale.Revenue = saleRevenue(doc, sale.Lines)
	return sale, true
}

// saleRevenue prefers the stored total and falls back to summing the lines
func saleRevenue(doc domain.Document, lines []SaleLine) decimal.Decimal {
	if totals := objectField(doc, "totals"); totals != nil {
		if d, ok := decimalField(totals, "total"); ok {
			return d
		}
	}
	if d, ok := decimalField(doc, "total"); ok {
		return d
	}

	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Revenue())
	}
	return sum
}

// DecodeEntry reads a purchase or expense document using the given date fields.
func DecodeEntry(doc domain.Document, dateFields []string, loc *time.Location) (Entry, bool) {
	at, ok := ExtractDate(doc, dateFields, loc)
	if !ok {
		return Entry{}, false
	}
	amount, _ := decimalField(doc, "amount", "total_cost", "total")
	return Entry{At: at, Amount: amount}, true
}
