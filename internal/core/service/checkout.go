package service

import (
	"context"
	"fmt"

	"github.com/stylehub/storefront/internal/core/domain"
	"github.com/stylehub/storefront/internal/core/port"
)

// Checkout is a stub: it validates the session and returns an order
// quote from the current cart. Payment processing is delegated to an
// external processor and no order row is created here.
type Checkout struct{}

func (Checkout) Quote(_ context.Context, userID string, cart port.CartManager) (domain.Totals, error) {
	const op = "Checkout.Quote"

	if userID == "" {
		return domain.Totals{}, fmt.Errorf("%s: %w", op, domain.ErrAuthRequired)
	}

	snap := cart.Snapshot()
	if snap.Empty() {
		return domain.Totals{}, fmt.Errorf("%s: cart is empty: %w", op, domain.ErrValidation)
	}

	return snap.Totals, nil
}
