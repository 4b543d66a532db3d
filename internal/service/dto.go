package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/retailops/internal/domain"
)

// CheckoutRequest represents the checkout and quote payload
type CheckoutRequest struct {
	Items         []CheckoutItem       `json:"items" binding:"required,min=1,dive"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	Customer      *CustomerInfo        `json:"customer,omitempty"`
	Adjustment    *AdjustmentRequest   `json:"adjustment,omitempty"`
}

type CheckoutItem struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CustomerInfo struct {
	Name  string  `json:"name" binding:"required"`
	Phone *string `json:"phone,omitempty"`
}

type AdjustmentRequest struct {
	Type  domain.DiscountType `json:"type" binding:"required"`
	Value decimal.Decimal     `json:"value"`
}

// QuoteLine is one priced cart line
type QuoteLine struct {
	ProductID              string               `json:"product_id"`
	Name                   string               `json:"name"`
	Quantity               int                  `json:"quantity"`
	OriginalPrice          decimal.Decimal      `json:"original_price"`
	FinalPrice             decimal.Decimal      `json:"final_price"`
	DiscountAppliedPerUnit decimal.Decimal      `json:"discount_applied_per_unit"`
	LineTotal              decimal.Decimal      `json:"line_total"`
	AppliedRule            *domain.DiscountRule `json:"applied_rule,omitempty"`
}

// Quote is a priced cart that has not been committed
type Quote struct {
	Lines  []QuoteLine        `json:"lines"`
	Totals domain.OrderTotals `json:"totals"`
}

// CatalogEntry is a catalog item with its live price and stock classification
type CatalogEntry struct {
	Item        *domain.CatalogItem    `json:"item"`
	Price       domain.PriceResolution `json:"price"`
	StockStatus domain.StockStatus     `json:"stock_status"`
}

type StockAdjustmentRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

type PriceAdjustmentRequest struct {
	SalePrice *decimal.Decimal `json:"sale_price" binding:"required"`
}

// LedgerEntryRequest represents a purchase or expense submission
type LedgerEntryRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Date        *time.Time      `json:"date,omitempty"`
	Description string          `json:"description,omitempty"`
	Supplier    string          `json:"supplier,omitempty"`
	Category    string          `json:"category,omitempty"`
}
