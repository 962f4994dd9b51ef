package service

import (
	"context"
	"sync"

	"github.com/stylehub/storefront/internal/core/port"
)

var _ port.CartSessionResolver = (*CartSessions)(nil)

// CartSessions owns one cart state manager per signed-in identity.
// A session starts when the identity first touches its cart and ends
// on sign-out, which purges the local state.
type CartSessions struct {
	catalog port.CatalogReader
	cart    port.CartRepository
	wish    port.WishlistRepository
	pricing Pricing
	events  port.CartEventsProducer

	mu       sync.Mutex
	sessions map[string]*CartService
}

func NewCartSessions(
	catalog port.CatalogReader,
	cart port.CartRepository,
	wish port.WishlistRepository,
	pricing Pricing,
	events port.CartEventsProducer,
) *CartSessions {
	return &CartSessions{
		catalog:  catalog,
		cart:     cart,
		wish:     wish,
		pricing:  pricing,
		events:   events,
		sessions: make(map[string]*CartService),
	}
}

// Session returns the identity's state manager, resolving it from the
// remote store on first use.
func (s *CartSessions) Session(ctx context.Context, userID string) (port.CartManager, error) {
	s.mu.Lock()
	if mgr, ok := s.sessions[userID]; ok {
		s.mu.Unlock()
		return mgr, nil
	}
	s.mu.Unlock()

	mgr, err := NewCartService(
		ctx, userID, s.catalog, s.cart, s.wish, s.pricing, s.events,
	)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[userID]; ok {
		return existing, nil
	}
	s.sessions[userID] = mgr
	return mgr, nil
}

// EndSession tears the identity's session down and purges its state.
func (s *CartSessions) EndSession(userID string) {
	s.mu.Lock()
	mgr, ok := s.sessions[userID]
	delete(s.sessions, userID)
	s.mu.Unlock()

	if ok {
		mgr.Close()
	}
}
