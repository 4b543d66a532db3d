package domain

// DiscountType selects how a discount value is applied to a price
type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "PERCENTAGE"
	DiscountTypeFixedAmount DiscountType = "FIXED_AMOUNT"
)

// IsValid checks if the discount type is valid
func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountTypePercentage, DiscountTypeFixedAmount:
		return true
	default:
		return false
	}
}

// SaleStatus represents the status of a committed sale
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusVoided    SaleStatus = "VOIDED"
	SaleStatusRefunded  SaleStatus = "REFUNDED"
)

// IsValid checks if the sale status is valid
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusCompleted, SaleStatusVoided, SaleStatusRefunded:
		return true
	default:
		return false
	}
}

// CountsAsRevenue reports whether a sale in this status contributes to analytics.
// Historical records without a status are treated as completed.
func (s SaleStatus) CountsAsRevenue() bool {
	return s == "" || s == SaleStatusCompleted
}

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer:
		return true
	default:
		return false
	}
}

// StockStatus classifies a catalog item by remaining stock
type StockStatus string

const (
	StockStatusHealthy    StockStatus = "HEALTHY"
	StockStatusLow        StockStatus = "LOW_STOCK"
	StockStatusOutOfStock StockStatus = "OUT_OF_STOCK"
)
