package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/retailops/internal/domain"
)

func TestCalculateTotals_LinesAndPercentageAdjustment(t *testing.T) {
	coffee := newItem(strPtr("coffee"), "10")
	mug := newItem(strPtr("merch"), "6")
	rules := []domain.DiscountRule{rule("coffee", domain.DiscountTypePercentage, "20")}

	totals := CalculateTotals(
		[]domain.CartLine{{Item: coffee, Quantity: 2}, {Item: mug, Quantity: 1}},
		rules,
		domain.Adjustment{Type: domain.DiscountTypePercentage, Value: dec("10")},
	)

	// coffee 8 x 2 + mug 6 = 22
	assert.Equal(t, "22", totals.Subtotal.String())
	assert.Equal(t, "4", totals.LineDiscountTotal.String())
	assert.Equal(t, "2.2", totals.TransactionDiscountAmount.String())
	assert.Equal(t, "19.8", totals.Total.String())
	assert.Equal(t, 3, totals.TotalItemCount)
	require.Len(t, totals.Lines, 2)
	assert.Equal(t, "8", totals.Lines[0].Resolution.FinalPrice.String())
}

func TestCalculateTotals_FixedAdjustment(t *testing.T) {
	item := newItem(strPtr("coffee"), "5")

	totals := CalculateTotals(
		[]domain.CartLine{{Item: item, Quantity: 3}},
		nil,
		domain.Adjustment{Type: domain.DiscountTypeFixedAmount, Value: dec("4.5")},
	)

	assert.Equal(t, "15", totals.Subtotal.String())
	assert.Equal(t, "4.5", totals.TransactionDiscountAmount.String())
	assert.Equal(t, "10.5", totals.Total.String())
}

func TestCalculateTotals_AdjustmentLargerThanSubtotal(t *testing.T) {
	item := newItem(strPtr("coffee"), "5")

	totals := CalculateTotals(
		[]domain.CartLine{{Item: item, Quantity: 1}},
		nil,
		domain.Adjustment{Type: domain.DiscountTypeFixedAmount, Value: dec("50")},
	)

	assert.Equal(t, "50", totals.TransactionDiscountAmount.String())
	assert.True(t, totals.Total.IsZero())
	assert.False(t, totals.Total.IsNegative())

	pct := CalculateTotals(
		[]domain.CartLine{{Item: item, Quantity: 1}},
		nil,
		domain.Adjustment{Type: domain.DiscountTypePercentage, Value: dec("250")},
	)
	assert.True(t, pct.Total.IsZero())
}

func TestCalculateTotals_EmptyCart(t *testing.T) {
	totals := CalculateTotals(nil, nil, domain.Adjustment{Type: domain.DiscountTypeFixedAmount, Value: dec("3")})

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Total.IsZero())
	assert.Equal(t, 0, totals.TotalItemCount)
	assert.Empty(t, totals.Lines)
}

func TestCalculateTotals_SkipsInvalidLines(t *testing.T) {
	item := newItem(strPtr("coffee"), "5")

	totals := CalculateTotals(
		[]domain.CartLine{{Item: item, Quantity: 0}, {Item: nil, Quantity: 2}, {Item: item, Quantity: 2}},
		nil,
		domain.Adjustment{},
	)

	assert.Equal(t, "10", totals.Subtotal.String())
	assert.Equal(t, 2, totals.TotalItemCount)
	assert.Len(t, totals.Lines, 1)
}

func TestTransactionDiscount_UnknownOrNegative(t *testing.T) {
	assert.True(t, TransactionDiscount(dec("100"), domain.Adjustment{}).IsZero())
	assert.True(t, TransactionDiscount(dec("100"), domain.Adjustment{Type: "COUPON", Value: dec("5")}).IsZero())
	assert.True(t, TransactionDiscount(dec("100"), domain.Adjustment{Type: domain.DiscountTypeFixedAmount, Value: dec("-5")}).IsZero())
}
