package service

import (
	"context"
	"fmt"

	"github.com/stylehub/storefront/internal/core/domain"
	"github.com/stylehub/storefront/internal/core/port"
)

const recentOrdersLimit = 5

// DashboardService assembles the per-identity account overview.
type DashboardService struct {
	orders   port.OrdersReader
	trending port.TrendingReader
}

func NewDashboardService(orders port.OrdersReader, trending port.TrendingReader) DashboardService {
	return DashboardService{orders, trending}
}

// Summary reads recent orders and combines them with the live cart and
// wishlist counts from the state manager.
func (s DashboardService) Summary(
	ctx context.Context, userID string, cart port.CartManager,
) (domain.DashboardSummary, error) {
	const op = "DashboardService.Summary"

	if userID == "" {
		return domain.DashboardSummary{}, fmt.Errorf("%s: %w", op, domain.ErrAuthRequired)
	}

	recent, err := s.orders.ReadRecentOrders(ctx, userID, recentOrdersLimit)
	if err != nil {
		return domain.DashboardSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	count, totalSpent, err := s.orders.ReadOrdersSummary(ctx, userID)
	if err != nil {
		return domain.DashboardSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	snap := cart.Snapshot()

	return domain.DashboardSummary{
		RecentOrders:  recent,
		OrderCount:    count,
		TotalSpent:    totalSpent,
		CartCount:     snap.Count,
		WishlistCount: len(cart.Wishlist()),
	}, nil
}

// TrendingCount reports how many times the product was added to a
// cart, from the stream-processing view. Missing products count zero.
func (s DashboardService) TrendingCount(productID string) (int64, error) {
	const op = "DashboardService.TrendingCount"

	n, err := s.trending.AddCount(productID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
