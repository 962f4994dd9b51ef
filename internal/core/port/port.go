package port

import (
	"context"

	"github.com/stylehub/storefront/internal/core/domain"
)

// Outbound ports: the remote tabular store the core reads and writes
// through. Implementations live in internal/adapter.

type CatalogReader interface {
	ReadProducts(ctx context.Context) ([]domain.Product, error)
	ReadProductBySlug(ctx context.Context, slug string) (domain.Product, error)
	ReadProduct(ctx context.Context, productID string) (domain.Product, error)
	ReadCategories(ctx context.Context) ([]domain.Category, error)
}

type CartRepository interface {
	ListLines(ctx context.Context, userID string) ([]domain.CartLine, error)
	InsertItem(ctx context.Context, item domain.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error
	DeleteItem(ctx context.Context, userID, itemID string) error
	DeleteAllItems(ctx context.Context, userID string) error
}

type WishlistRepository interface {
	ListLines(ctx context.Context, userID string) ([]domain.WishlistLine, error)
	InsertEntry(ctx context.Context, entry domain.WishlistEntry) error
	DeleteEntry(ctx context.Context, userID, entryID string) error
	DeleteAllEntries(ctx context.Context, userID string) error
}

type OrdersReader interface {
	ReadRecentOrders(ctx context.Context, userID string, limit int) ([]domain.Order, error)
	ReadOrdersSummary(ctx context.Context, userID string) (count int, totalSpent float64, err error)
}

type ReviewsReader interface {
	ReadApprovedReviews(ctx context.Context, productID string) ([]domain.Review, error)
}

type CartEventsProducer interface {
	ProduceEvent(ctx context.Context, evt domain.CartEvent) error
}

// TrendingReader serves per-product add-to-cart counters from the
// stream-processing group table.
type TrendingReader interface {
	AddCount(productID string) (int64, error)
}

// Inbound ports: what the view layer consumes.

type CatalogBrowser interface {
	BrowseProducts(ctx context.Context, f domain.FilterState) ([]domain.Product, error)
	ProductDetail(ctx context.Context, slug string) (domain.Product, []domain.Review, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

// CartSessionResolver hands out the per-identity cart state manager
// and tears it down on sign-out.
type CartSessionResolver interface {
	Session(ctx context.Context, userID string) (CartManager, error)
	EndSession(userID string)
}

type CartManager interface {
	Snapshot() domain.CartSnapshot
	AddToCart(ctx context.Context, productID, size, color string, quantity int) error
	UpdateQuantity(ctx context.Context, itemID string, quantity int) error
	RemoveFromCart(ctx context.Context, itemID string) error
	ClearCart(ctx context.Context) error
	Wishlist() []domain.WishlistLine
	AddToWishlist(ctx context.Context, productID string) error
	RemoveFromWishlist(ctx context.Context, entryID string) error
	ClearWishlist(ctx context.Context) error
}
