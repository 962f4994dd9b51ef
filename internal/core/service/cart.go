package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stylehub/storefront/internal/core/domain"
	"github.com/stylehub/storefront/internal/core/port"
)

var _ port.CartManager = (*CartService)(nil)

// CartService is the single authoritative view of one identity's cart
// and wishlist. Every mutation is confirmed by the remote store before
// local state changes; on remote failure local state stays as it was.
// It is not designed for concurrent writers to the same identity from
// multiple sessions: the remote store resolves those last-write-wins.
type CartService struct {
	userID  string
	catalog port.CatalogReader
	cart    port.CartRepository
	wish    port.WishlistRepository
	pricing Pricing
	events  port.CartEventsProducer

	mu        sync.Mutex
	lines     []domain.CartLine
	wishlist  []domain.WishlistLine
	listeners map[int]func(domain.CartSnapshot)
	nextSubID int
}

// NewCartService resolves the identity's current cart and wishlist
// from the remote store. Fails with [domain.ErrAuthRequired] when no
// identity is given.
func NewCartService(
	ctx context.Context,
	userID string,
	catalog port.CatalogReader,
	cart port.CartRepository,
	wish port.WishlistRepository,
	pricing Pricing,
	events port.CartEventsProducer,
) (*CartService, error) {
	const op = "NewCartService"

	if userID == "" {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrAuthRequired)
	}

	s := &CartService{
		userID:    userID,
		catalog:   catalog,
		cart:      cart,
		wish:      wish,
		pricing:   pricing,
		events:    events,
		listeners: make(map[int]func(domain.CartSnapshot)),
	}

	if err := s.refresh(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func (s *CartService) refresh(ctx context.Context) error {
	lines, err := s.cart.ListLines(ctx, s.userID)
	if err != nil {
		return err
	}
	wishlist, err := s.wish.ListLines(ctx, s.userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.lines = lines
	s.wishlist = wishlist
	s.mu.Unlock()
	return nil
}

// Snapshot returns the current line items, unit count and totals.
func (s *CartService) Snapshot() domain.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *CartService) snapshotLocked() domain.CartSnapshot {
	lines := make([]domain.CartLine, len(s.lines))
	copy(lines, s.lines)

	count := 0
	for _, l := range lines {
		count += l.Item.Quantity
	}

	return domain.CartSnapshot{
		Lines:  lines,
		Count:  count,
		Totals: s.pricing.ComputeTotals(lines),
	}
}

// Subscribe registers a listener called with the new snapshot after
// every successful mutation. The returned func unsubscribes it.
func (s *CartService) Subscribe(fn func(domain.CartSnapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Close purges local state and listeners when the identity signs out.
func (s *CartService) Close() {
	s.mu.Lock()
	s.lines = nil
	s.wishlist = nil
	s.listeners = make(map[int]func(domain.CartSnapshot))
	s.mu.Unlock()
}

// AddToCart merges into an existing line with the same
// product+size+color selection or creates a new one.
func (s *CartService) AddToCart(
	ctx context.Context, productID, size, color string, quantity int,
) error {
	const op = "CartService.AddToCart"

	if quantity < 1 {
		return fmt.Errorf("%s: quantity %d: %w", op, quantity, domain.ErrValidation)
	}

	product, err := s.activeProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if product.RequiresSize() && size == "" {
		return fmt.Errorf("%s: product %q: size required: %w",
			op, productID, domain.ErrValidation)
	}
	if product.RequiresColor() && color == "" {
		return fmt.Errorf("%s: product %q: color required: %w",
			op, productID, domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.findLineBySelection(productID, size, color); ok {
		newQty := s.lines[i].Item.Quantity + quantity
		if err := checkStock(product, newQty); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		err := s.cart.UpdateItemQuantity(ctx, s.lines[i].Item.ItemID, newQty)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		s.lines[i].Item.Quantity = newQty
	} else {
		if err := checkStock(product, quantity); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		item := domain.CartItem{
			ItemID:    uuid.NewString(),
			UserID:    s.userID,
			ProductID: productID,
			Quantity:  quantity,
			Size:      size,
			Color:     color,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.cart.InsertItem(ctx, item); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		s.lines = append(s.lines, domain.CartLine{Item: item, Product: product})
	}

	s.notifyLocked()
	s.emit(ctx, domain.CartItemAdded, productID, quantity)
	return nil
}

// UpdateQuantity sets a line item's quantity. A quantity of zero or
// below behaves as removal.
func (s *CartService) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	const op = "CartService.UpdateQuantity"

	if quantity <= 0 {
		return s.RemoveFromCart(ctx, itemID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.findLineByID(itemID)
	if !ok {
		return fmt.Errorf("%s: item %q: %w", op, itemID, domain.ErrNotFound)
	}

	if err := checkStock(s.lines[i].Product, quantity); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cart.UpdateItemQuantity(ctx, itemID, quantity); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.lines[i].Item.Quantity = quantity

	s.notifyLocked()
	s.emit(ctx, domain.CartQuantityChanged, s.lines[i].Item.ProductID, quantity)
	return nil
}

// RemoveFromCart deletes a line item. Removing an unknown id is a
// no-op, not an error.
func (s *CartService) RemoveFromCart(ctx context.Context, itemID string) error {
	const op = "CartService.RemoveFromCart"

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.findLineByID(itemID)
	if !ok {
		return nil
	}

	if err := s.cart.DeleteItem(ctx, s.userID, itemID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	productID := s.lines[i].Item.ProductID
	s.lines = append(s.lines[:i], s.lines[i+1:]...)

	s.notifyLocked()
	s.emit(ctx, domain.CartItemRemoved, productID, 0)
	return nil
}

// ClearCart removes every line item for the identity in one remote
// operation; a partial clear never becomes visible.
func (s *CartService) ClearCart(ctx context.Context) error {
	const op = "CartService.ClearCart"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.DeleteAllItems(ctx, s.userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.lines = nil

	s.notifyLocked()
	s.emit(ctx, domain.CartCleared, "", 0)
	return nil
}

// Wishlist returns a copy of the identity's wishlist lines.
func (s *CartService) Wishlist() []domain.WishlistLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]domain.WishlistLine, len(s.wishlist))
	copy(lines, s.wishlist)
	return lines
}

// AddToWishlist stores at most one entry per product: adding a
// product already present succeeds without changing anything.
func (s *CartService) AddToWishlist(ctx context.Context, productID string) error {
	const op = "CartService.AddToWishlist"

	product, err := s.activeProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.wishlist {
		if l.Entry.ProductID == productID {
			return nil
		}
	}

	entry := domain.WishlistEntry{
		EntryID:   uuid.NewString(),
		UserID:    s.userID,
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.wish.InsertEntry(ctx, entry); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.wishlist = append(s.wishlist, domain.WishlistLine{Entry: entry, Product: product})

	s.notifyLocked()
	s.emit(ctx, domain.WishlistAdded, productID, 0)
	return nil
}

// RemoveFromWishlist deletes an entry; unknown ids are a no-op.
func (s *CartService) RemoveFromWishlist(ctx context.Context, entryID string) error {
	const op = "CartService.RemoveFromWishlist"

	s.mu.Lock()
	defer s.mu.Unlock()

	i := -1
	for j, l := range s.wishlist {
		if l.Entry.EntryID == entryID {
			i = j
			break
		}
	}
	if i < 0 {
		return nil
	}

	if err := s.wish.DeleteEntry(ctx, s.userID, entryID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	productID := s.wishlist[i].Entry.ProductID
	s.wishlist = append(s.wishlist[:i], s.wishlist[i+1:]...)

	s.notifyLocked()
	s.emit(ctx, domain.WishlistRemoved, productID, 0)
	return nil
}

// ClearWishlist removes every entry for the identity atomically.
func (s *CartService) ClearWishlist(ctx context.Context) error {
	const op = "CartService.ClearWishlist"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.wish.DeleteAllEntries(ctx, s.userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.wishlist = nil

	s.notifyLocked()
	s.emit(ctx, domain.WishlistCleared, "", 0)
	return nil
}

func (s *CartService) activeProduct(
	ctx context.Context, productID string,
) (domain.Product, error) {
	product, err := s.catalog.ReadProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}
	if !product.Active {
		return domain.Product{}, fmt.Errorf(
			"product %q is inactive: %w", productID, domain.ErrNotFound)
	}
	return product, nil
}

func checkStock(p domain.Product, quantity int) error {
	if p.TrackInventory && quantity > p.StockQuantity {
		return fmt.Errorf("product %q: requested %d of %d in stock: %w",
			p.ProductID, quantity, p.StockQuantity, domain.ErrValidation)
	}
	return nil
}

func (s *CartService) findLineBySelection(productID, size, color string) (int, bool) {
	for i, l := range s.lines {
		if l.Item.SameSelection(productID, size, color) {
			return i, true
		}
	}
	return 0, false
}

func (s *CartService) findLineByID(itemID string) (int, bool) {
	for i, l := range s.lines {
		if l.Item.ItemID == itemID {
			return i, true
		}
	}
	return 0, false
}

// notifyLocked delivers the fresh snapshot to every listener. Called
// with the mutex held; listeners run on the mutating goroutine and
// must not call back into the service.
func (s *CartService) notifyLocked() {
	snap := s.snapshotLocked()
	for _, fn := range s.listeners {
		fn(snap)
	}
}

// emit publishes a cart event for analytics. Failures are logged and
// never surface to the caller.
func (s *CartService) emit(ctx context.Context, action domain.CartAction, productID string, quantity int) {
	if s.events == nil {
		return
	}

	evt := domain.CartEvent{
		UserID:     s.userID,
		Action:     action,
		ProductID:  productID,
		Quantity:   quantity,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.ProduceEvent(ctx, evt); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		slog.Warn("failed to produce cart event",
			"action", action, "err", err)
	}
}
