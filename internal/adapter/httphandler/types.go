package httphandler

import (
	"time"

	"github.com/stylehub/storefront/internal/core/domain"
)

type (
	Product struct {
		ProductID      string         `json:"product_id"`
		Name           string         `json:"name"`
		Slug           string         `json:"slug"`
		Description    string         `json:"description"`
		Price          float64        `json:"price"`
		CompareAtPrice float64        `json:"compare_at_price,omitempty"`
		OnSale         bool           `json:"on_sale"`
		Featured       bool           `json:"featured"`
		Sizes          []string       `json:"sizes,omitempty"`
		Colors         []string       `json:"colors,omitempty"`
		StockQuantity  int            `json:"stock_quantity"`
		TrackInventory bool           `json:"track_inventory"`
		CategoryID     string         `json:"category_id,omitempty"`
		PrimaryImage   *ProductImage  `json:"primary_image,omitempty"`
		Images         []ProductImage `json:"images,omitempty"`
		CreatedAt      time.Time      `json:"created_at"`
	}

	ProductImage struct {
		URL          string `json:"url"`
		Alt          string `json:"alt,omitempty"`
		Primary      bool   `json:"is_primary"`
		DisplayOrder int    `json:"display_order"`
	}

	Category struct {
		CategoryID string `json:"category_id"`
		Name       string `json:"name"`
		Slug       string `json:"slug"`
		SortOrder  int    `json:"sort_order"`
	}

	Review struct {
		ReviewID  string    `json:"review_id"`
		Rating    int       `json:"rating"`
		Title     string    `json:"title,omitempty"`
		Comment   string    `json:"comment,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}

	ProductDetail struct {
		Product
		Reviews       []Review `json:"reviews"`
		AverageRating float64  `json:"average_rating"`
	}

	CartLine struct {
		ItemID       string        `json:"item_id"`
		ProductID    string        `json:"product_id"`
		Name         string        `json:"name"`
		Slug         string        `json:"slug"`
		Price        float64       `json:"price"`
		Quantity     int           `json:"quantity"`
		Size         string        `json:"size,omitempty"`
		Color        string        `json:"color,omitempty"`
		PrimaryImage *ProductImage `json:"primary_image,omitempty"`
	}

	Totals struct {
		Subtotal string `json:"subtotal"`
		Tax      string `json:"tax"`
		Shipping string `json:"shipping"`
		Total    string `json:"total"`
	}

	CartSnapshot struct {
		Items  []CartLine `json:"items"`
		Count  int        `json:"count"`
		Totals Totals     `json:"totals"`
	}

	WishlistEntry struct {
		EntryID      string        `json:"entry_id"`
		ProductID    string        `json:"product_id"`
		Name         string        `json:"name"`
		Slug         string        `json:"slug"`
		Price        float64       `json:"price"`
		PrimaryImage *ProductImage `json:"primary_image,omitempty"`
		CreatedAt    time.Time     `json:"created_at"`
	}

	Order struct {
		OrderID     string    `json:"order_id"`
		Status      string    `json:"status"`
		TotalAmount float64   `json:"total_amount"`
		CreatedAt   time.Time `json:"created_at"`
	}

	DashboardSummary struct {
		RecentOrders  []Order `json:"recent_orders"`
		OrderCount    int     `json:"order_count"`
		TotalSpent    float64 `json:"total_spent"`
		CartCount     int     `json:"cart_count"`
		WishlistCount int     `json:"wishlist_count"`
	}

	AddCartItem struct {
		ProductID string `json:"product_id"`
		Size      string `json:"size"`
		Color     string `json:"color"`
		Quantity  int    `json:"quantity"`
	}

	UpdateCartItem struct {
		Quantity int `json:"quantity"`
	}

	AddWishlistEntry struct {
		ProductID string `json:"product_id"`
	}

	TrendingCount struct {
		ProductID string `json:"product_id"`
		AddCount  int64  `json:"add_count"`
	}
)

func toProduct(p domain.Product) Product {
	v := Product{
		ProductID:      p.ProductID,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		OnSale:         p.OnSale(),
		Featured:       p.Featured,
		Sizes:          p.Sizes,
		Colors:         p.Colors,
		StockQuantity:  p.StockQuantity,
		TrackInventory: p.TrackInventory,
		CategoryID:     p.CategoryID,
		CreatedAt:      p.CreatedAt,
	}

	for _, img := range p.SortedImages() {
		v.Images = append(v.Images, ProductImage(img))
	}
	if img, ok := p.PrimaryImage(); ok {
		pi := ProductImage(img)
		v.PrimaryImage = &pi
	}
	return v
}

func toProducts(ps []domain.Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProduct(p))
	}
	return out
}

func toCartSnapshot(s domain.CartSnapshot) CartSnapshot {
	v := CartSnapshot{
		Items: make([]CartLine, 0, len(s.Lines)),
		Count: s.Count,
		// monetary values are rounded here and nowhere earlier
		Totals: Totals{
			Subtotal: s.Totals.Subtotal.StringFixed(2),
			Tax:      s.Totals.Tax.StringFixed(2),
			Shipping: s.Totals.Shipping.StringFixed(2),
			Total:    s.Totals.Total.StringFixed(2),
		},
	}

	for _, l := range s.Lines {
		line := CartLine{
			ItemID:    l.Item.ItemID,
			ProductID: l.Product.ProductID,
			Name:      l.Product.Name,
			Slug:      l.Product.Slug,
			Price:     l.Product.Price,
			Quantity:  l.Item.Quantity,
			Size:      l.Item.Size,
			Color:     l.Item.Color,
		}
		if img, ok := l.Product.PrimaryImage(); ok {
			pi := ProductImage(img)
			line.PrimaryImage = &pi
		}
		v.Items = append(v.Items, line)
	}
	return v
}

func toWishlist(lines []domain.WishlistLine) []WishlistEntry {
	out := make([]WishlistEntry, 0, len(lines))
	for _, l := range lines {
		e := WishlistEntry{
			EntryID:   l.Entry.EntryID,
			ProductID: l.Product.ProductID,
			Name:      l.Product.Name,
			Slug:      l.Product.Slug,
			Price:     l.Product.Price,
			CreatedAt: l.Entry.CreatedAt,
		}
		if img, ok := l.Product.PrimaryImage(); ok {
			pi := ProductImage(img)
			e.PrimaryImage = &pi
		}
		out = append(out, e)
	}
	return out
}
