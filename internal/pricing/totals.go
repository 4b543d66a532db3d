package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jafarshop/retailops/internal/domain"
)

// CalculateTotals resolves every line and applies the transaction adjustment.
// Lines with a nil item or a quantity below 1 are skipped.
func CalculateTotals(lines []domain.CartLine, rules []domain.DiscountRule, adj domain.Adjustment) domain.OrderTotals {
	totals := domain.OrderTotals{
		Lines:                     make([]domain.ResolvedLine, 0, len(lines)),
		Subtotal:                  decimal.Zero,
		LineDiscountTotal:         decimal.Zero,
		TransactionDiscountAmount: decimal.Zero,
		Total:                     decimal.Zero,
	}

	for _, line := range lines {
		if line.Item == nil || line.Quantity < 1 {
			continue
		}
		res := ResolvePrice(line.Item, rules)
		qty := decimal.NewFromInt(int64(line.Quantity))

		totals.Subtotal = totals.Subtotal.Add(res.FinalPrice.Mul(qty))
		totals.LineDiscountTotal = totals.LineDiscountTotal.Add(res.DiscountAppliedPerUnit.Mul(qty))
		totals.TotalItemCount += line.Quantity
		totals.Lines = append(totals.Lines, domain.ResolvedLine{
			Item:       line.Item,
			Quantity:   line.Quantity,
			Resolution: res,
		})
	}

	totals.TransactionDiscountAmount = TransactionDiscount(totals.Subtotal, adj)

	// An adjustment larger than the subtotal is absorbed, never reported.
	totals.Total = nonNegative(totals.Subtotal.Sub(totals.TransactionDiscountAmount))
	return totals
}

// TransactionDiscount converts an adjustment request into an amount.
// Unknown types and negative values yield zero.
func TransactionDiscount(subtotal decimal.Decimal, adj domain.Adjustment) decimal.Decimal {
	value := nonNegative(adj.Value)

	switch adj.Type {
	case domain.DiscountTypePercentage:
		return subtotal.Mul(value).Div(hundred)
	case domain.DiscountTypeFixedAmount:
		return value
	default:
		return decimal.Zero
	}
}
