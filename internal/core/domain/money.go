package domain

import "github.com/shopspring/decimal"

// Totals carries full-precision monetary values. Rounding to two
// decimal places happens only at presentation boundaries.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

func (t Totals) FreeShipping() bool {
	return t.Shipping.IsZero()
}
