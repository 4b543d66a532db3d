// Package pricing resolves discounted item prices and order totals.
//
// Every function in this package is pure: same inputs, same outputs, no I/O.
// Rules are passed in explicitly by the caller on every call.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jafarshop/retailops/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ResolvePrice computes the effective price of item under the given rules.
//
// Only rules whose category equals the item category (case-sensitive) apply.
// When several rules match, the one giving the lowest final price wins and
// ties keep the earliest rule in the slice.
func ResolvePrice(item *domain.CatalogItem, rules []domain.DiscountRule) domain.PriceResolution {
	original := nonNegative(item.SalePrice)
	res := domain.PriceResolution{
		OriginalPrice:          original,
		FinalPrice:             original,
		DiscountAppliedPerUnit: decimal.Zero,
	}

	if item.Category == nil {
		return res
	}
	category := *item.Category

	var best *domain.DiscountRule
	bestPrice := original
	for i := range rules {
		rule := rules[i]
		if rule.Category != category || !rule.Type.IsValid() {
			continue
		}
		price := applyRule(original, rule)
		if best == nil || price.LessThan(bestPrice) {
			r := rule
			best = &r
			bestPrice = price
		}
	}

	if best == nil {
		return res
	}

	res.FinalPrice = bestPrice
	res.DiscountAppliedPerUnit = original.Sub(bestPrice)
	res.AppliedRule = best
	return res
}

// applyRule returns the discounted price, kept within [0, original]
func applyRule(original decimal.Decimal, rule domain.DiscountRule) decimal.Decimal {
	value := nonNegative(rule.Value)

	var price decimal.Decimal
	switch rule.Type {
	case domain.DiscountTypePercentage:
		price = original.Sub(original.Mul(value).Div(hundred))
	case domain.DiscountTypeFixedAmount:
		price = original.Sub(value)
	default:
		return original
	}

	return nonNegative(price)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
