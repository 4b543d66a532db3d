package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCriticalStockLevel is used when an item has no explicit threshold
const DefaultCriticalStockLevel = 5

// Operator represents a store operator allowed to call the API
type Operator struct {
	ID         uuid.UUID
	Name       string
	APIKeyHash string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CatalogItem represents a product in the store catalog
type CatalogItem struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	Category           *string         `json:"category,omitempty"`
	Stock              int             `json:"stock"`
	SalePrice          decimal.Decimal `json:"sale_price"`
	PurchasePrice      decimal.Decimal `json:"purchase_price"`
	CriticalStockLevel int             `json:"critical_stock_level"`
	Barcode            *string         `json:"barcode,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// CategoryName returns the item category, or "" when unset
func (i *CatalogItem) CategoryName() string {
	if i.Category == nil {
		return ""
	}
	return *i.Category
}

// DiscountRule is a category-level discount applied to every item of the category
type DiscountRule struct {
	ID       uuid.UUID       `json:"id"`
	Category string          `json:"category"`
	Type     DiscountType    `json:"type"`
	Value    decimal.Decimal `json:"value"`
}

// PriceResolution is the effective price of one catalog item after discounts
type PriceResolution struct {
	OriginalPrice          decimal.Decimal `json:"original_price"`
	FinalPrice             decimal.Decimal `json:"final_price"`
	DiscountAppliedPerUnit decimal.Decimal `json:"discount_applied_per_unit"`
	AppliedRule            *DiscountRule   `json:"applied_rule,omitempty"`
}

// CartLine is one catalog item and a quantity within an in-progress order
type CartLine struct {
	Item     *CatalogItem
	Quantity int
}

// Adjustment is a transaction-level discount requested at checkout
type Adjustment struct {
	Type  DiscountType    `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// ResolvedLine is a cart line together with its resolved price
type ResolvedLine struct {
	Item       *CatalogItem
	Quantity   int
	Resolution PriceResolution
}

// OrderTotals aggregates resolved lines and the transaction adjustment
type OrderTotals struct {
	Lines                     []ResolvedLine  `json:"-"`
	Subtotal                  decimal.Decimal `json:"subtotal"`
	LineDiscountTotal         decimal.Decimal `json:"line_discount_total"`
	TransactionDiscountAmount decimal.Decimal `json:"transaction_discount_amount"`
	Total                     decimal.Decimal `json:"total"`
	TotalItemCount            int             `json:"total_item_count"`
}

// SaleLine is the immutable snapshot of one line of a committed sale
type SaleLine struct {
	ProductID              uuid.UUID       `json:"product_id"`
	Name                   string          `json:"name"`
	Category               string          `json:"category,omitempty"`
	Quantity               int             `json:"quantity"`
	FinalPrice             decimal.Decimal `json:"final_price"`
	OriginalPrice          decimal.Decimal `json:"original_price"`
	PurchasePrice          decimal.Decimal `json:"purchase_price"`
	DiscountAppliedPerUnit decimal.Decimal `json:"discount_applied_per_unit"`
	AppliedRule            *DiscountRule   `json:"applied_rule,omitempty"`
}

// CustomerInfo is optional customer data attached to a sale
type CustomerInfo struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
}

// SaleTotals is the persisted copy of OrderTotals
type SaleTotals struct {
	Subtotal          decimal.Decimal `json:"subtotal"`
	LineDiscountTotal decimal.Decimal `json:"line_discount_total"`
	Total             decimal.Decimal `json:"total"`
	TotalItemCount    int             `json:"total_item_count"`
}

// SaleRecord is a committed sale. It is never mutated after creation.
type SaleRecord struct {
	ID                        uuid.UUID       `json:"id"`
	Items                     []SaleLine      `json:"items"`
	PaymentMethod             PaymentMethod   `json:"payment_method"`
	Customer                  *CustomerInfo   `json:"customer,omitempty"`
	TransactionDiscountAmount decimal.Decimal `json:"transaction_discount_amount"`
	Totals                    SaleTotals      `json:"totals"`
	Timestamp                 time.Time       `json:"timestamp"`
	Status                    SaleStatus      `json:"status"`
}

// Document is one loosely-typed historical record as returned by the document store
type Document map[string]interface{}

// Timestamp is a wrapped instant as written by document stores that do not
// use plain date strings ({"seconds": ..., "nanoseconds": ...}).
type Timestamp struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int64 `json:"nanoseconds"`
}

// ToTime converts the wrapped timestamp to a calendar time
func (t Timestamp) ToTime() time.Time {
	return time.Unix(t.Seconds, t.Nanoseconds)
}
