package pricing

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/retailops/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string {
	return &s
}

func newItem(category *string, price string) *domain.CatalogItem {
	return &domain.CatalogItem{
		ID:                 uuid.New(),
		Name:               "Espresso Beans",
		Category:           category,
		Stock:              10,
		SalePrice:          dec(price),
		PurchasePrice:      dec("4"),
		CriticalStockLevel: domain.DefaultCriticalStockLevel,
	}
}

func rule(category string, typ domain.DiscountType, value string) domain.DiscountRule {
	return domain.DiscountRule{ID: uuid.New(), Category: category, Type: typ, Value: dec(value)}
}

func TestResolvePrice_NoMatchingRule(t *testing.T) {
	item := newItem(strPtr("coffee"), "12.50")
	rules := []domain.DiscountRule{rule("tea", domain.DiscountTypePercentage, "10")}

	res := ResolvePrice(item, rules)

	assert.Equal(t, "12.5", res.OriginalPrice.String())
	assert.Equal(t, "12.5", res.FinalPrice.String())
	assert.True(t, res.DiscountAppliedPerUnit.IsZero())
	assert.Nil(t, res.AppliedRule)
}

func TestResolvePrice_NilCategory(t *testing.T) {
	item := newItem(nil, "8")
	rules := []domain.DiscountRule{rule("", domain.DiscountTypeFixedAmount, "2")}

	res := ResolvePrice(item, rules)

	assert.Equal(t, "8", res.FinalPrice.String())
	assert.Nil(t, res.AppliedRule)
}

func TestResolvePrice_CategoryMatchIsCaseSensitive(t *testing.T) {
	item := newItem(strPtr("Coffee"), "10")
	rules := []domain.DiscountRule{rule("coffee", domain.DiscountTypePercentage, "50")}

	res := ResolvePrice(item, rules)

	assert.Equal(t, "10", res.FinalPrice.String())
	assert.Nil(t, res.AppliedRule)
}

func TestResolvePrice_Percentage(t *testing.T) {
	item := newItem(strPtr("coffee"), "10")
	r := rule("coffee", domain.DiscountTypePercentage, "15")

	res := ResolvePrice(item, []domain.DiscountRule{r})

	assert.Equal(t, "8.5", res.FinalPrice.String())
	assert.Equal(t, "1.5", res.DiscountAppliedPerUnit.String())
	require.NotNil(t, res.AppliedRule)
	assert.Equal(t, r.ID, res.AppliedRule.ID)
}

func TestResolvePrice_FixedAmount(t *testing.T) {
	item := newItem(strPtr("coffee"), "10")

	res := ResolvePrice(item, []domain.DiscountRule{rule("coffee", domain.DiscountTypeFixedAmount, "3.25")})

	assert.Equal(t, "6.75", res.FinalPrice.String())
	assert.Equal(t, "3.25", res.DiscountAppliedPerUnit.String())
}

func TestResolvePrice_FloorsAtZero(t *testing.T) {
	item := newItem(strPtr("coffee"), "10")

	fixed := ResolvePrice(item, []domain.DiscountRule{rule("coffee", domain.DiscountTypeFixedAmount, "25")})
	assert.True(t, fixed.FinalPrice.IsZero())
	assert.Equal(t, "10", fixed.DiscountAppliedPerUnit.String())

	pct := ResolvePrice(item, []domain.DiscountRule{rule("coffee", domain.DiscountTypePercentage, "150")})
	assert.True(t, pct.FinalPrice.IsZero())
}

func TestResolvePrice_NegativeValueNeverRaisesPrice(t *testing.T) {
	item := newItem(strPtr("coffee"), "10")

	res := ResolvePrice(item, []domain.DiscountRule{rule("coffee", domain.DiscountTypeFixedAmount, "-5")})

	assert.Equal(t, "10", res.FinalPrice.String())
	assert.True(t, res.DiscountAppliedPerUnit.IsZero())
}

func TestResolvePrice_InvalidRuleTypeIgnored(t *testing.T) {
	item := newItem(strPtr("coffee"), "10")

	res := ResolvePrice(item, []domain.DiscountRule{rule("coffee", domain.DiscountType("BOGO"), "5")})

	assert.Equal(t, "10", res.FinalPrice.String())
	assert.Nil(t, res.AppliedRule)
}

func TestResolvePrice_MultipleRulesPicksLowestPrice(t *testing.T) {
	item := newItem(strPtr("coffee"), "20")
	small := rule("coffee", domain.DiscountTypePercentage, "10") // 18
	large := rule("coffee", domain.DiscountTypeFixedAmount, "5") // 15
	other := rule("tea", domain.DiscountTypeFixedAmount, "19")

	res := ResolvePrice(item, []domain.DiscountRule{small, other, large})

	assert.Equal(t, "15", res.FinalPrice.String())
	require.NotNil(t, res.AppliedRule)
	assert.Equal(t, large.ID, res.AppliedRule.ID)
}

func TestResolvePrice_TieKeepsInputOrder(t *testing.T) {
	item := newItem(strPtr("coffee"), "20")
	first := rule("coffee", domain.DiscountTypePercentage, "25") // 15
	second := rule("coffee", domain.DiscountTypeFixedAmount, "5") // 15

	res := ResolvePrice(item, []domain.DiscountRule{first, second})
	require.NotNil(t, res.AppliedRule)
	assert.Equal(t, first.ID, res.AppliedRule.ID)

	res = ResolvePrice(item, []domain.DiscountRule{second, first})
	require.NotNil(t, res.AppliedRule)
	assert.Equal(t, second.ID, res.AppliedRule.ID)
}

func TestResolvePrice_FinalWithinBounds(t *testing.T) {
	rules := []domain.DiscountRule{
		rule("a", domain.DiscountTypePercentage, "0"),
		rule("b", domain.DiscountTypePercentage, "100"),
		rule("c", domain.DiscountTypeFixedAmount, "0.01"),
		rule("d", domain.DiscountTypeFixedAmount, "1000"),
		rule("e", domain.DiscountTypePercentage, "33.3333"),
	}
	for _, category := range []string{"a", "b", "c", "d", "e", "none"} {
		for _, price := range []string{"0", "0.99", "7", "1234.56"} {
			res := ResolvePrice(newItem(strPtr(category), price), rules)

			assert.False(t, res.FinalPrice.IsNegative(), "category %s price %s", category, price)
			assert.True(t, res.FinalPrice.LessThanOrEqual(res.OriginalPrice), "category %s price %s", category, price)
			assert.True(t, res.OriginalPrice.Sub(res.FinalPrice).Equal(res.DiscountAppliedPerUnit))
		}
	}
}

func TestResolvePrice_Idempotent(t *testing.T) {
	item := newItem(strPtr("coffee"), "19.99")
	rules := []domain.DiscountRule{
		rule("coffee", domain.DiscountTypePercentage, "12.5"),
		rule("coffee", domain.DiscountTypeFixedAmount, "2"),
	}

	first := ResolvePrice(item, rules)
	second := ResolvePrice(item, rules)
	assert.Equal(t, first, second)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	// inputs are left untouched
	assert.Equal(t, "19.99", item.SalePrice.String())
	assert.Equal(t, "12.5", rules[0].Value.String())
}
