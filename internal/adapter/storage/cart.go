package storage

import (
	"context"
	"fmt"

	"github.com/stylehub/storefront/internal/core/domain"
	"github.com/stylehub/storefront/internal/core/port"
)

var _ port.CartRepository = (*CartRepository)(nil)

type CartRepository struct {
	sqldb sqldb
}

func NewCartRepository(sqldb sqldb) CartRepository {
	return CartRepository{sqldb}
}

func (r CartRepository) ListLines(
	ctx context.Context, userID string,
) ([]domain.CartLine, error) {
	const op = "CartRepository.ListLines"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT
			c.item_id, c.user_id, c.product_id, c.quantity,
			COALESCE(c.size, ''), COALESCE(c.color, ''), c.created_at,` +
		productColumns + `
		FROM cart_items c
		JOIN products p ON p.product_id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.created_at, c.item_id;`

	rows, err := r.sqldb.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, remoteErr(err))
	}
	defer rows.Close()

	var lines []domain.CartLine
	var productIDs []string
	for rows.Next() {
		var l domain.CartLine
		var sizes, colors string
		err := rows.Scan(
			&l.Item.ItemID, &l.Item.UserID, &l.Item.ProductID,
			&l.Item.Quantity, &l.Item.Size, &l.Item.Color, &l.Item.CreatedAt,
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
		productIDs = append(productIDs, l.Product.ProductID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, remoteErr(err))
	}

	if err := r.attachLineImages(ctx, lines, productIDs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return lines, nil
}

func (r CartRepository) attachLineImages(
	ctx context.Context, lines []domain.CartLine, productIDs []string,
) error {
	if len(lines) == 0 {
		return nil
	}

	query := `
		SELECT product_id, image_url, COALESCE(alt_text, ''),
			is_primary, display_order
		FROM product_images
		WHERE product_id = ANY($1)
		ORDER BY display_order, image_id;`

	rows, err := r.sqldb.QueryContext(ctx, query, productIDs)
	if err != nil {
		return remoteErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID string
		var img domain.ProductImage
		err := rows.Scan(
			&productID, &img.URL, &img.Alt, &img.Primary, &img.DisplayOrder,
		)
		if err != nil {
			return remoteErr(err)
		}
		for i := range lines {
			if lines[i].Product.ProductID == productID {
				lines[i].Product.Images = append(lines[i].Product.Images, img)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return remoteErr(err)
	}
	return nil
}

func (r CartRepository) InsertItem(
	ctx context.Context, item domain.CartItem,
) error {
	const op = "CartRepository.InsertItem"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO cart_items
			(item_id, user_id, product_id, quantity, size, color, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)
		ON CONFLICT (user_id, product_id, size, color)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity;`

	_, err := r.sqldb.ExecContext(ctx, query,
		item.ItemID, item.UserID, item.ProductID,
		item.Quantity, item.Size, item.Color, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, remoteErr(err))
	}
	return nil
}

func (r CartRepository) UpdateItemQuantity(
	ctx context.Context, itemID string, quantity int,
) error {
	const op = "CartRepository.UpdateItemQuantity"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE cart_items SET quantity = $2 WHERE item_id = $1;`

	res, err := r.sqldb.ExecContext(ctx, query, itemID, quantity)
	if err != nil {
		return fmt.Errorf("%s: %w", op, remoteErr(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: item %q: %w", op, itemID, domain.ErrNotFound)
	}
	return nil
}

func (r CartRepository) DeleteItem(
	ctx context.Context, userID, itemID string,
) error {
	const op = "CartRepository.DeleteItem"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `DELETE FROM cart_items WHERE user_id = $1 AND item_id = $2;`

	if _, err := r.sqldb.ExecContext(ctx, query, userID, itemID); err != nil {
		return fmt.Errorf("%s: %w", op, remoteErr(err))
	}
	return nil
}

// DeleteAllItems clears the identity's cart in a single statement so
// readers never observe a partial clear.
func (r CartRepository) DeleteAllItems(ctx context.Context, userID string) error {
	const op = "CartRepository.DeleteAllItems"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `DELETE FROM cart_items WHERE user_id = $1;`

	if _, err := r.sqldb.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("%s: %w", op, remoteErr(err))
	}
	return nil
}
