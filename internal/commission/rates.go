package commission

import (
	"github.com/shopspring/decimal"
)

// Rate table keyed on the product category name. Categories outside the
// table earn no commission.
var categoryRates = map[string]decimal.Decimal{
	"Mỹ phẩm":   decimal.NewFromFloat(0.10),
	"Điện tử":   decimal.NewFromFloat(0.20),
	"Điện lạnh": decimal.NewFromFloat(0.30),
	"Cao cấp":   decimal.NewFromFloat(0.50),
	"VIP":       decimal.NewFromFloat(0.60),
}

// RateFor returns the commission rate for a product category, or zero when
// the category has no configured rate.
func RateFor(category string) decimal.Decimal {
	if rate, ok := categoryRates[category]; ok {
		return rate
	}
	return decimal.Zero
}

// ForLine computes the commission earned on a single order line, rounded to
// two decimal places.
func ForLine(price decimal.Decimal, quantity int, category string) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	rate := RateFor(category)
	if rate.IsZero() {
		return decimal.Zero
	}
	lineTotal := price.Mul(decimal.NewFromInt(int64(quantity)))
	return lineTotal.Mul(rate).Round(2)
}
