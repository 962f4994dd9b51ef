package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stylehub/storefront/internal/core/domain"
)

func cartLine(productID string, price float64, qty int) domain.CartLine {
	return domain.CartLine{
		Item:    domain.CartItem{ProductID: productID, Quantity: qty},
		Product: domain.Product{ProductID: productID, Price: price},
	}
}

func TestPricingComputeTotals(t *testing.T) {
	pricing := DefaultPricing()

	t.Run("BelowFreeShippingThreshold", func(t *testing.T) {
		totals := pricing.ComputeTotals([]domain.CartLine{
			cartLine("p1", 40, 1),
		})

		assert.Equal(t, "40.00", totals.Subtotal.StringFixed(2))
		assert.Equal(t, "3.20", totals.Tax.StringFixed(2))
		assert.Equal(t, "9.99", totals.Shipping.StringFixed(2))
		assert.Equal(t, "53.19", totals.Total.StringFixed(2))
		assert.False(t, totals.FreeShipping())
	})

	t.Run("AboveFreeShippingThreshold", func(t *testing.T) {
		totals := pricing.ComputeTotals([]domain.CartLine{
			cartLine("p1", 60, 1),
		})

		assert.Equal(t, "60.00", totals.Subtotal.StringFixed(2))
		assert.Equal(t, "4.80", totals.Tax.StringFixed(2))
		assert.Equal(t, "0.00", totals.Shipping.StringFixed(2))
		assert.Equal(t, "64.80", totals.Total.StringFixed(2))
		assert.True(t, totals.FreeShipping())
	})

	t.Run("ExactlyAtThresholdStillPaysShipping", func(t *testing.T) {
		totals := pricing.ComputeTotals([]domain.CartLine{
			cartLine("p1", 50, 1),
		})

		assert.Equal(t, "9.99", totals.Shipping.StringFixed(2))
	})

	t.Run("QuantityMultiplies", func(t *testing.T) {
		totals := pricing.ComputeTotals([]domain.CartLine{
			cartLine("p1", 15, 2),
			cartLine("p2", 15, 1),
		})

		assert.Equal(t, "45.00", totals.Subtotal.StringFixed(2))
	})

	t.Run("NoFloatDrift", func(t *testing.T) {
		// 0.1*3 misbehaves in binary floats; decimals must not
		totals := pricing.ComputeTotals([]domain.CartLine{
			cartLine("p1", 0.1, 3),
		})

		assert.Equal(t, "0.30", totals.Subtotal.StringFixed(2))
	})

	t.Run("EmptyCart", func(t *testing.T) {
		totals := pricing.ComputeTotals(nil)

		assert.Equal(t, "0.00", totals.Subtotal.StringFixed(2))
		assert.Equal(t, "0.00", totals.Tax.StringFixed(2))
	})
}
