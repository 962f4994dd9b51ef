package storage

import (
	"context"
	"fmt"

	"github.com/stylehub/storefront/internal/core/domain"
	"github.com/stylehub/storefront/internal/core/port"
)

var _ port.CatalogReader = (*ProductsRepository)(nil)

// ProductsRepository reads the catalog tables. Products and
// categories are owned by an external catalog-management system:
// this service never writes them.
type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

const productColumns = `
	p.product_id, p.name, p.slug, p.description,
	p.price, COALESCE(p.compare_at_price, 0),
	p.is_active, p.is_featured,
	COALESCE(p.available_sizes, '{}'), COALESCE(p.available_colors, '{}'),
	COALESCE(p.stock_quantity, 0), p.track_inventory,
	COALESCE(p.category_id::text, ''), p.created_at`

func (r ProductsRepository) ReadProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "ProductsRepository.ReadProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT` + productColumns + `
		FROM products p
		WHERE p.is_active
		ORDER BY p.created_at DESC, p.product_id;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, remoteErr(err))
	}
	defer rows.Close()

	var ps []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, remoteErr(err))
	}

	if err := r.attachImages(ctx, ps); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r ProductsRepository) ReadProduct(
	ctx context.Context, productID string,
) (domain.Product, error) {
	const op = "ProductsRepository.ReadProduct"
	return r.readOne(ctx, op, "p.product_id = $1", productID)
}

func (r ProductsRepository) ReadProductBySlug(
	ctx context.Context, slug string,
) (domain.Product, error) {
	const op = "ProductsRepository.ReadProductBySlug"
	return r.readOne(ctx, op, "p.slug = $1", slug)
}

func (r ProductsRepository) readOne(
	ctx context.Context, op, predicate string, arg any,
) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT` + productColumns + `
		FROM products p
		WHERE ` + predicate + ` LIMIT 1;`

	p, err := scanProduct(r.sqldb.QueryRowContext(ctx, query, arg))
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	ps := []domain.Product{p}
	if err := r.attachImages(ctx, ps); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return ps[0], nil
}

func (r ProductsRepository) ReadCategories(
	ctx context.Context,
) ([]domain.Category, error) {
	const op = "ProductsRepository.ReadCategories"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT category_id, name, slug, sort_order, is_active
		FROM categories
		WHERE is_active
		ORDER BY sort_order, category_id;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, remoteErr(err))
	}
	defer rows.Close()

	var cs []domain.Category
	for rows.Next() {
		var c domain.Category
		err := rows.Scan(&c.CategoryID, &c.Name, &c.Slug, &c.SortOrder, &c.Active)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, remoteErr(err))
		}
		cs = append(cs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, remoteErr(err))
	}
	return cs, nil
}

// attachImages loads the image rows for every product in ps, ordered
// by display order.
func (r ProductsRepository) attachImages(
	ctx context.Context, ps []domain.Product,
) error {
	if len(ps) == 0 {
		return nil
	}

	ids := make([]string, len(ps))
	index := make(map[string]int, len(ps))
	for i, p := range ps {
		ids[i] = p.ProductID
		index[p.ProductID] = i
	}

	query := `
		SELECT product_id, image_url, COALESCE(alt_text, ''),
			is_primary, display_order
		FROM product_images
		WHERE product_id = ANY($1)
		ORDER BY display_order, image_id;`

	rows, err := r.sqldb.QueryContext(ctx, query, ids)
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
		if i, ok := index[productID]; ok {
			ps[i].Images = append(ps[i].Images, img)
		}
	}
	if err := rows.Err(); err != nil {
		return remoteErr(err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	var sizes, colors string
	err := row.Scan(
		&p.ProductID, &p.Name, &p.Slug, &p.Description,
		&p.Price, &p.CompareAtPrice,
		&p.Active, &p.Featured,
		&sizes, &colors,
		&p.StockQuantity, &p.TrackInventory,
		&p.CategoryID, &p.CreatedAt,
	)
	if err != nil {
		return domain.Product{}, remoteErr(err)
	}
	p.Sizes = splitArray(sizes)
	p.Colors = splitArray(colors)
	return p, nil
}
