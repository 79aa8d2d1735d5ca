package checkout

import (
	"glowcart/internal/domain"
	"github.com/shopspring/decimal"
)

// Rules are the pricing constants applied at checkout. Shipping is free
// only when the subtotal strictly exceeds the threshold.
type Rules struct {
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	ShippingFlatFee       decimal.Decimal
}

// DefaultRules matches the storefront's observed pricing: 8% tax, flat
// 15 shipping waived above a subtotal of 100.
func DefaultRules() Rules {
	return Rules{
		TaxRate:               decimal.NewFromFloat(0.08),
		FreeShippingThreshold: decimal.NewFromInt(100),
		ShippingFlatFee:       decimal.NewFromInt(15),
	}
}

// Totals is the derived order summary. It is never stored on its own;
// every render recomputes it from the cart snapshot.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals derives subtotal, shipping, tax and grand total from a
// cart snapshot. Pure: identical input yields identical output, and a
// malformed price contributes zero instead of failing the computation.
// Rounding is half-up to 2 decimal places, currency granularity.
func ComputeTotals(items []domain.CartItem, rules Rules) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		price := domain.PriceOrZero(item.Price)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	shipping := rules.ShippingFlatFee
	if subtotal.GreaterThan(rules.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(rules.TaxRate).Round(2)
	total := subtotal.Add(tax).Add(shipping).Round(2)

	return Totals{
		Subtotal: subtotal.Round(2),
		Shipping: shipping,
		Tax:      tax,
		Total:    total,
	}
}
