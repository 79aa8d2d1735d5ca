package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// currencyMarkers are stripped before parsing. The storefront stores
// prices as display strings, historically with a cedi or dollar prefix.
var currencyMarkers = []string{"GH₵", "GH¢", "₵", "$", ","}

// ParsePrice turns a stored price string into a decimal amount. Callers
// that render totals must treat a parse failure as zero rather than
// aborting; a malformed price never blocks checkout.
func ParsePrice(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	for _, m := range currencyMarkers {
		cleaned = strings.ReplaceAll(cleaned, m, "")
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty price %q", s)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed price %q: %w", s, err)
	}
	return d, nil
}

// PriceOrZero is ParsePrice with the checkout default applied.
func PriceOrZero(s string) decimal.Decimal {
	d, err := ParsePrice(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
