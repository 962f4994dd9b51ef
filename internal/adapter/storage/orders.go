package storage

import (
	"context"
	"fmt"

	"github.com/stylehub/storefront/internal/core/domain"
	"github.com/stylehub/storefront/internal/core/port"
)

var (
	_ port.OrdersReader  = (*OrdersRepository)(nil)
	_ port.ReviewsReader = (*ReviewsRepository)(nil)
)

// OrdersRepository reads order history for the dashboard. Orders are
// written by the (external) payment flow, never here.
type OrdersRepository struct {
	sqldb sqldb
}

func NewOrdersRepository(sqldb sqldb) OrdersRepository {
	return OrdersRepository{sqldb}
}

func (r OrdersRepository) ReadRecentOrders(
	ctx context.Context, userID string, limit int,
) ([]domain.Order, error) {
	const op = "OrdersRepository.ReadRecentOrders"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT order_id, user_id, status, total_amount, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, order_id
		LIMIT $2;`

	rows, err := r.sqldb.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, remoteErr(err))
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		err := rows.Scan(
			&o.OrderID, &o.UserID, &o.Status, &o.TotalAmount, &o.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, remoteErr(err))
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, remoteErr(err))
	}
	return orders, nil
}

func (r OrdersRepository) ReadOrdersSummary(
	ctx context.Context, userID string,
) (count int, totalSpent float64, err error) {
	const op = "OrdersRepository.ReadOrdersSummary"

	if err := ctx.Err(); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE user_id = $1;`

	err = r.sqldb.QueryRowContext(ctx, query, userID).Scan(&count, &totalSpent)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, remoteErr(err))
	}
	return count, totalSpent, nil
}

type ReviewsRepository struct {
	sqldb sqldb
}

func NewReviewsRepository(sqldb sqldb) ReviewsRepository {
	return ReviewsRepository{sqldb}
}

func (r ReviewsRepository) ReadApprovedReviews(
	ctx context.Context, productID string,
) ([]domain.Review, error) {
	const op = "ReviewsRepository.ReadApprovedReviews"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT review_id, product_id, user_id, rating,
			COALESCE(title, ''), COALESCE(comment, ''),
			is_approved, created_at
		FROM reviews
		WHERE product_id = $1 AND is_approved
		ORDER BY created_at DESC, review_id;`

	rows, err := r.sqldb.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, remoteErr(err))
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var v domain.Review
		err := rows.Scan(
			&v.ReviewID, &v.ProductID, &v.UserID, &v.Rating,
			&v.Title, &v.Comment, &v.Approved, &v.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, remoteErr(err))
		}
		reviews = append(reviews, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, remoteErr(err))
	}
	return reviews, nil
}
