package checkout

import (
	"testing"

	"glowcart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(productID, price string, qty int) domain.CartItem {
	return domain.CartItem{
		CartLine: domain.CartLine{ID: "line-" + productID, ProductID: productID, Quantity: qty},
		Title:    "Item " + productID,
		Price:    price,
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeTotals_Basic(t *testing.T) {
	items := []domain.CartItem{item("p1", "GH₵25.00", 2)}

	totals := ComputeTotals(items, DefaultRules())

	assert.True(t, totals.Subtotal.Equal(dec("50.00")), "subtotal: %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(dec("4.00")), "tax: %s", totals.Tax)
	assert.True(t, totals.Shipping.Equal(dec("15")), "shipping: %s", totals.Shipping)
	assert.True(t, totals.Total.Equal(dec("69.00")), "total: %s", totals.Total)
}

func TestComputeTotals_FreeShippingIsStrictlyAbove(t *testing.T) {
	// Exactly at the threshold shipping is still charged.
	atThreshold := ComputeTotals([]domain.CartItem{item("p1", "100.00", 1)}, DefaultRules())
	assert.True(t, atThreshold.Shipping.Equal(dec("15")), "shipping at threshold: %s", atThreshold.Shipping)

	aboveThreshold := ComputeTotals([]domain.CartItem{item("p1", "100.01", 1)}, DefaultRules())
	assert.True(t, aboveThreshold.Shipping.Equal(dec("0")), "shipping above threshold: %s", aboveThreshold.Shipping)
}

func TestComputeTotals_EmptyCart(t *testing.T) {
	totals := ComputeTotals(nil, DefaultRules())

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	// An empty cart still carries the flat fee; checkout rejects it anyway.
	assert.True(t, totals.Shipping.Equal(dec("15")))
}

func TestComputeTotals_MalformedPriceContributesZero(t *testing.T) {
	items := []domain.CartItem{
		item("p1", "GH₵25.00", 1),
		item("p2", "call for price", 3),
	}

	totals := ComputeTotals(items, DefaultRules())

	assert.True(t, totals.Subtotal.Equal(dec("25.00")), "subtotal: %s", totals.Subtotal)
}

func TestComputeTotals_TaxRoundsHalfUp(t *testing.T) {
	// 10.55 * 0.08 = 0.844 -> 0.84; 10.70 * 0.08 = 0.856 -> 0.86
	low := ComputeTotals([]domain.CartItem{item("p1", "10.55", 1)}, DefaultRules())
	assert.True(t, low.Tax.Equal(dec("0.84")), "tax: %s", low.Tax)

	high := ComputeTotals([]domain.CartItem{item("p1", "10.70", 1)}, DefaultRules())
	assert.True(t, high.Tax.Equal(dec("0.86")), "tax: %s", high.Tax)
}

func TestComputeTotals_Deterministic(t *testing.T) {
	items := []domain.CartItem{
		item("p1", "GH₵25.00", 2),
		item("p2", "GH₵99.99", 1),
	}

	first := ComputeTotals(items, DefaultRules())
	second := ComputeTotals(items, DefaultRules())

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.Shipping.Equal(second.Shipping))
	assert.True(t, first.Tax.Equal(second.Tax))
	assert.True(t, first.Total.Equal(second.Total))
}

func TestComputeTotals_CurrencyMarkersStripped(t *testing.T) {
	items := []domain.CartItem{
		item("p1", "GH₵1,250.00", 1),
	}

	totals := ComputeTotals(items, DefaultRules())

	assert.True(t, totals.Subtotal.Equal(dec("1250.00")), "subtotal: %s", totals.Subtotal)
	assert.True(t, totals.Shipping.IsZero())
}
