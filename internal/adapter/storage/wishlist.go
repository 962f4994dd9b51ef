package storage

import (
	"context"
	"fmt"

	"github.com/stylehub/storefront/internal/core/domain"
	"github.com/stylehub/storefront/internal/core/port"
)

var _ port.WishlistRepository = (*WishlistRepository)(nil)

type WishlistRepository struct {
	sqldb sqldb
}

func NewWishlistRepository(sqldb sqldb) WishlistRepository {
	return WishlistRepository{sqldb}
}

func (r WishlistRepository) ListLines(
	ctx context.Context, userID string,
) ([]domain.WishlistLine, error) {
	const op = "WishlistRepository.ListLines"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT
			w.entry_id, w.user_id, w.product_id, w.created_at,` +
		productColumns + `
		FROM wishlists w
		JOIN products p ON p.product_id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC, w.entry_id;`

	rows, err := r.sqldb.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, remoteErr(err))
	}
	defer rows.Close()

	var lines []domain.WishlistLine
	for rows.Next() {
		var l domain.WishlistLine
		var sizes, colors string
		err := rows.Scan(
			&l.Entry.EntryID, &l.Entry.UserID, &l.Entry.ProductID,
			&l.Entry.CreatedAt,
			&l.Product.ProductID, &l.Product.Name, &l.Product.Slug,
			&l.Product.Description, &l.Product.Price, &l.Product.CompareAtPrice,
			&l.Product.Active, &l.Product.Featured,
			&sizes, &colors,
			&l.Product.StockQuantity, &l.Product.TrackInventory,
			&l.Product.CategoryID, &l.Product.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, remoteErr(err))
		}
		l.Product.Sizes = splitArray(sizes)
		l.Product.Colors = splitArray(colors)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, remoteErr(err))
	}
	return lines, nil
}

// InsertEntry coalesces duplicates: at most one wishlist row exists
// per (user, product) pair.
func (r WishlistRepository) InsertEntry(
	ctx context.Context, entry domain.WishlistEntry,
) error {
	const op = "WishlistRepository.InsertEntry"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO wishlists (entry_id, user_id, product_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id) DO NOTHING;`

	_, err := r.sqldb.ExecContext(ctx, query,
		entry.EntryID, entry.UserID, entry.ProductID, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, remoteErr(err))
	}
	return nil
}

func (r WishlistRepository) DeleteEntry(
	ctx context.Context, userID, entryID string,
) error {
	const op = "WishlistRepository.DeleteEntry"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `DELETE FROM wishlists WHERE user_id = $1 AND entry_id = $2;`

	if _, err := r.sqldb.ExecContext(ctx, query, userID, entryID); err != nil {
		return fmt.Errorf("%s: %w", op, remoteErr(err))
	}
	return nil
}

func (r WishlistRepository) DeleteAllEntries(
	ctx context.Context, userID string,
) error {
	const op = "WishlistRepository.DeleteAllEntries"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `DELETE FROM wishlists WHERE user_id = $1;`

	if _, err := r.sqldb.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("%s: %w", op, remoteErr(err))
	}
	return nil
}
