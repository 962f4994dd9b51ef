package service

import (
	"github.com/shopspring/decimal"
	"github.com/stylehub/storefront/internal/core/domain"
)

const (
	DefaultTaxRate               = "0.08"
	DefaultFreeShippingThreshold = "50"
	DefaultFlatShippingFee       = "9.99"
)

// Pricing computes order totals from cart lines. All arithmetic is
// decimal; values are rounded only when rendered.
type Pricing struct {
	taxRate               decimal.Decimal
	freeShippingThreshold decimal.Decimal
	flatShippingFee       decimal.Decimal
}

func NewPricing(taxRate, freeShippingThreshold, flatShippingFee decimal.Decimal) Pricing {
	return Pricing{taxRate, freeShippingThreshold, flatShippingFee}
}

func DefaultPricing() Pricing {
	return Pricing{
		taxRate:               decimal.RequireFromString(DefaultTaxRate),
		freeShippingThreshold: decimal.RequireFromString(DefaultFreeShippingThreshold),
		flatShippingFee:       decimal.RequireFromString(DefaultFlatShippingFee),
	}
}

// ComputeTotals sums quantity*price over the lines, applies the tax
// rate, and adds the flat shipping fee unless the subtotal exceeds
// the free-shipping threshold.
func (p Pricing) ComputeTotals(lines []domain.CartLine) domain.Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		price := decimal.NewFromFloat(l.Product.Price)
		qty := decimal.NewFromInt(int64(l.Item.Quantity))
		subtotal = subtotal.Add(price.Mul(qty))
	}

	tax := subtotal.Mul(p.taxRate)

	shipping := p.flatShippingFee
	if subtotal.GreaterThan(p.freeShippingThreshold) {
		shipping = decimal.Zero
	}

	return domain.Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping),
	}
}
