// Package money handles fixed-point currency amounts. Prices are carried as
// integer cents everywhere; decimal conversion happens only at the
// presentation boundary.
package money

import (
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Amount renders cents as a two-decimal string, e.g. 16900 -> "169.00".
func Amount(cents int64) string {
	return decimal.NewFromInt(cents).Div(oneHundred).StringFixed(2)
}

// Format renders cents with the currency label, e.g. 16900, "DT" -> "169.00 DT".
func Format(cents int64, currency string) string {
	return Amount(cents) + " " + currency
}

// DiscountPercent reports the rounded percentage saved when a sale price
// undercuts the base price. Zero when there is no effective discount.
func DiscountPercent(priceCents, salePriceCents int64) int {
	if priceCents <= 0 || salePriceCents <= 0 || salePriceCents >= priceCents {
		return 0
	}
	diff := decimal.NewFromInt(priceCents - salePriceCents)
	pct := diff.Div(decimal.NewFromInt(priceCents)).Mul(oneHundred).Round(0)
	return int(pct.IntPart())
}
