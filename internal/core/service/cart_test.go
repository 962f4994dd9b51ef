package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stylehub/storefront/internal/core/domain"
)

type fakeCatalogReader struct {
	products map[string]domain.Product
	err      error
}

func (f *fakeCatalogReader) ReadProducts(context.Context) ([]domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	var ps []domain.Product
	for _, p := range f.products {
		ps = append(ps, p)
	}
	return ps, nil
}

func (f *fakeCatalogReader) ReadProductBySlug(_ context.Context, slug string) (domain.Product, error) {
	if f.err != nil {
		return domain.Product{}, f.err
	}
	for _, p := range f.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrNotFound
}

func (f *fakeCatalogReader) ReadProduct(_ context.Context, productID string) (domain.Product, error) {
	if f.err != nil {
		return domain.Product{}, f.err
	}
	p, ok := f.products[productID]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeCatalogReader) ReadCategories(context.Context) ([]domain.Category, error) {
	return nil, f.err
}

type fakeCartRepo struct {
	lines   []domain.CartLine
	failing bool

	inserted   int
	updated    int
	deleted    int
	deletedAll int
}

func (f *fakeCartRepo) ListLines(context.Context, string) ([]domain.CartLine, error) {
	if f.failing {
		return nil, domain.ErrRemote
	}
	return f.lines, nil
}

func (f *fakeCartRepo) InsertItem(context.Context, domain.CartItem) error {
	if f.failing {
		return domain.ErrRemote
	}
	f.inserted++
	return nil
}

func (f *fakeCartRepo) UpdateItemQuantity(context.Context, string, int) error {
	if f.failing {
		return domain.ErrRemote
	}
	f.updated++
	return nil
}

func (f *fakeCartRepo) DeleteItem(context.Context, string, string) error {
	if f.failing {
		return domain.ErrRemote
	}
	f.deleted++
	return nil
}

func (f *fakeCartRepo) DeleteAllItems(context.Context, string) error {
	if f.failing {
		return domain.ErrRemote
	}
	f.deletedAll++
	return nil
}

type fakeWishlistRepo struct {
	lines   []domain.WishlistLine
	failing bool

	inserted   int
	deleted    int
	deletedAll int
}

func (f *fakeWishlistRepo) ListLines(context.Context, string) ([]domain.WishlistLine, error) {
	if f.failing {
		return nil, domain.ErrRemote
	}
	return f.lines, nil
}

func (f *fakeWishlistRepo) InsertEntry(context.Context, domain.WishlistEntry) error {
	if f.failing {
		return domain.ErrRemote
	}
	f.inserted++
	return nil
}

func (f *fakeWishlistRepo) DeleteEntry(context.Context, string, string) error {
	if f.failing {
		return domain.ErrRemote
	}
	f.deleted++
	return nil
}

func (f *fakeWishlistRepo) DeleteAllEntries(context.Context, string) error {
	if f.failing {
		return domain.ErrRemote
	}
	f.deletedAll++
	return nil
}

type fakeEventsProducer struct {
	events []domain.CartEvent
}

func (f *fakeEventsProducer) ProduceEvent(_ context.Context, evt domain.CartEvent) error {
	f.events = append(f.events, evt)
	return nil
}

type cartFixture struct {
	catalog *fakeCatalogReader
	cart    *fakeCartRepo
	wish    *fakeWishlistRepo
	events  *fakeEventsProducer
	svc     *CartService
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()

	f := &cartFixture{
		catalog: &fakeCatalogReader{products: map[string]domain.Product{
			"p1": {
				ProductID: "p1", Name: "Linen Shirt", Slug: "linen-shirt",
				Price: 45, Active: true,
				Sizes: []string{"S", "M"}, Colors: []string{"white"},
			},
			"p2": {
				ProductID: "p2", Name: "Canvas Tote", Slug: "canvas-tote",
				Price: 25, Active: true,
			},
			"p3": {
				ProductID: "p3", Name: "Limited Cap", Slug: "limited-cap",
				Price: 15, Active: true,
				StockQuantity: 2, TrackInventory: true,
			},
			"gone": {
				ProductID: "gone", Name: "Retired", Slug: "retired",
				Price: 10, Active: false,
			},
		}},
		cart:   &fakeCartRepo{},
		wish:   &fakeWishlistRepo{},
		events: &fakeEventsProducer{},
	}

	svc, err := NewCartService(
		t.Context(), "testUser",
		f.catalog, f.cart, f.wish, DefaultPricing(), f.events,
	)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func TestNewCartService(t *testing.T) {
	t.Run("RequiresIdentity", func(t *testing.T) {
		f := newCartFixture(t)
		_, err := NewCartService(
			t.Context(), "",
			f.catalog, f.cart, f.wish, DefaultPricing(), f.events,
		)
		assert.ErrorIs(t, err, domain.ErrAuthRequired)
	})

	t.Run("LoadsRemoteState", func(t *testing.T) {
		cart := &fakeCartRepo{lines: []domain.CartLine{
			{
				Item:    domain.CartItem{ItemID: "i1", ProductID: "p2", Quantity: 2},
				Product: domain.Product{ProductID: "p2", Price: 25, Active: true},
			},
		}}
		svc, err := NewCartService(
			t.Context(), "testUser",
			&fakeCatalogReader{}, cart, &fakeWishlistRepo{},
			DefaultPricing(), nil,
		)
		require.NoError(t, err)

		snap := svc.Snapshot()
		assert.Equal(t, 2, snap.Count)
		assert.Equal(t, "50.00", snap.Totals.Subtotal.StringFixed(2))
	})

	t.Run("RemoteFailurePropagates", func(t *testing.T) {
		_, err := NewCartService(
			t.Context(), "testUser",
			&fakeCatalogReader{}, &fakeCartRepo{failing: true},
			&fakeWishlistRepo{}, DefaultPricing(), nil,
		)
		assert.ErrorIs(t, err, domain.ErrRemote)
	})
}

func TestCartServiceAddToCart(t *testing.T) {
	t.Run("CreatesLine", func(t *testing.T) {
		f := newCartFixture(t)

		err := f.svc.AddToCart(t.Context(), "p1", "M", "white", 1)
		require.NoError(t, err)

		snap := f.svc.Snapshot()
		require.Len(t, snap.Lines, 1)
		assert.Equal(t, 1, snap.Count)
		assert.Equal(t, 1, f.cart.inserted)
	})

	t.Run("MergesSameSelection", func(t *testing.T) {
		f := newCartFixture(t)

		require.NoError(t, f.svc.AddToCart(t.Context(), "p1", "M", "white", 1))
		require.NoError(t, f.svc.AddToCart(t.Context(), "p1", "M", "white", 2))

		snap := f.svc.Snapshot()
		require.Len(t, snap.Lines, 1)
		assert.Equal(t, 3, snap.Lines[0].Item.Quantity)
		assert.Equal(t, 1, f.cart.inserted)
		assert.Equal(t, 1, f.cart.updated)
	})

	t.Run("DifferentSizeMakesNewLine", func(t *testing.T) {
		f := newCartFixture(t)

		require.NoError(t, f.svc.AddToCart(t.Context(), "p1", "M", "white", 1))
		require.NoError(t, f.svc.AddToCart(t.Context(), "p1", "S", "white", 1))

		assert.Len(t, f.svc.Snapshot().Lines, 2)
	})

	t.Run("RejectsNonPositiveQuantity", func(t *testing.T) {
		f := newCartFixture(t)

		err := f.svc.AddToCart(t.Context(), "p1", "M", "white", 0)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, f.svc.Snapshot().Lines)
	})

	t.Run("RejectsMissingSize", func(t *testing.T) {
		f := newCartFixture(t)

		err := f.svc.AddToCart(t.Context(), "p1", "", "white", 1)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, f.svc.Snapshot().Lines)
		assert.Zero(t, f.cart.inserted)
	})

	t.Run("NoOptionsNeedNoSelection", func(t *testing.T) {
		f := newCartFixture(t)

		err := f.svc.AddToCart(t.Context(), "p2", "", "", 1)
		assert.NoError(t, err)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		f := newCartFixture(t)

		err := f.svc.AddToCart(t.Context(), "nope", "", "", 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("InactiveProduct", func(t *testing.T) {
		f := newCartFixture(t)

		err := f.svc.AddToCart(t.Context(), "gone", "", "", 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("StockCeiling", func(t *testing.T) {
		f := newCartFixture(t)

		require.NoError(t, f.svc.AddToCart(t.Context(), "p3", "", "", 2))
		err := f.svc.AddToCart(t.Context(), "p3", "", "", 1)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, 2, f.svc.Snapshot().Count)
	})

	t.Run("RemoteFailureLeavesStateUnchanged", func(t *testing.T) {
		f := newCartFixture(t)

		f.cart.failing = true
		err := f.svc.AddToCart(t.Context(), "p1", "M", "white", 1)
		assert.ErrorIs(t, err, domain.ErrRemote)
		assert.Empty(t, f.svc.Snapshot().Lines)
	})

	t.Run("EmitsEvent", func(t *testing.T) {
		f := newCartFixture(t)

		require.NoError(t, f.svc.AddToCart(t.Context(), "p1", "M", "white", 2))

		require.Len(t, f.events.events, 1)
		evt := f.events.events[0]
		assert.Equal(t, domain.CartItemAdded, evt.Action)
		assert.Equal(t, "p1", evt.ProductID)
		assert.Equal(t, 2, evt.Quantity)
		assert.Equal(t, "testUser", evt.UserID)
	})
}

func TestCartServiceUpdateQuantity(t *testing.T) {
	t.Run("SetsQuantity", func(t *testing.T) {
		f := newCartFixture(t)
		require.NoError(t, f.svc.AddToCart(t.Context(), "p1", "M", "white", 1))
		itemID := f.svc.Snapshot().Lines[0].Item.ItemID

		require.NoError(t, f.svc.UpdateQuantity(t.Context(), itemID, 4))
		assert.Equal(t, 4, f.svc.Snapshot().Count)
	})

	t.Run("ZeroRemovesLine", func(t *testing.T) {
		f := newCartFixture(t)
		require.NoError(t, f.svc.AddToCart(t.Context(), "p1", "M", "white", 1))
		itemID := f.svc.Snapshot().Lines[0].Item.ItemID

		require.NoError(t, f.svc.UpdateQuantity(t.Context(), itemID, 0))
		assert.True(t, f.svc.Snapshot().Empty())
		assert.Equal(t, 1, f.cart.deleted)
	})

	t.Run("UnknownItem", func(t *testing.T) {
		f := newCartFixture(t)

		err := f.svc.UpdateQuantity(t.Context(), "no-such-item", 2)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("RemoteFailureLeavesStateUnchanged", func(t *testing.T) {
		f := newCartFixture(t)
		require.NoError(t, f.svc.AddToCart(t.Context(), "p1", "M", "white", 1))
		itemID := f.svc.Snapshot().Lines[0].Item.ItemID

		f.cart.failing = true
		err := f.svc.UpdateQuantity(t.Context(), itemID, 5)
		assert.ErrorIs(t, err, domain.ErrRemote)
		assert.Equal(t, 1, f.svc.Snapshot().Count)
	})
}

func TestCartServiceRemoveAndClear(t *testing.T) {
	t.Run("RemoveUnknownIsNoop", func(t *testing.T) {
		f := newCartFixture(t)

		assert.NoError(t, f.svc.RemoveFromCart(t.Context(), "no-such-item"))
		assert.Zero(t, f.cart.deleted)
		assert.Empty(t, f.events.events)
	})

	t.Run("ClearCartSingleRemoteCall", func(t *testing.T) {
		f := newCartFixture(t)
		require.NoError(t, f.svc.AddToCart(t.Context(), "p1", "M", "white", 1))
		require.NoError(t, f.svc.AddToCart(t.Context(), "p2", "", "", 1))

		require.NoError(t, f.svc.ClearCart(t.Context()))
		assert.True(t, f.svc.Snapshot().Empty())
		assert.Equal(t, 1, f.cart.deletedAll)
		assert.Zero(t, f.cart.deleted)
	})

	t.Run("ClearFailureKeepsLines", func(t *testing.T) {
		f := newCartFixture(t)
		require.NoError(t, f.svc.AddToCart(t.Context(), "p1", "M", "white", 1))

		f.cart.failing = true
		err := f.svc.ClearCart(t.Context())
		assert.ErrorIs(t, err, domain.ErrRemote)
		assert.Len(t, f.svc.Snapshot().Lines, 1)
	})
}

func TestCartServiceWishlist(t *testing.T) {
	t.Run("AddAndList", func(t *testing.T) {
		f := newCartFixture(t)

		require.NoError(t, f.svc.AddToWishlist(t.Context(), "p1"))
		require.Len(t, f.svc.Wishlist(), 1)
		assert.Equal(t, "p1", f.svc.Wishlist()[0].Entry.ProductID)
	})

	t.Run("DuplicateAddIsNoop", func(t *testing.T) {
		f := newCartFixture(t)

		require.NoError(t, f.svc.AddToWishlist(t.Context(), "p1"))
		require.NoError(t, f.svc.AddToWishlist(t.Context(), "p1"))

		assert.Len(t, f.svc.Wishlist(), 1)
		assert.Equal(t, 1, f.wish.inserted)
	})

	t.Run("RemoveUnknownIsNoop", func(t *testing.T) {
		f := newCartFixture(t)

		assert.NoError(t, f.svc.RemoveFromWishlist(t.Context(), "no-such-entry"))
		assert.Zero(t, f.wish.deleted)
	})

	t.Run("Clear", func(t *testing.T) {
		f := newCartFixture(t)
		require.NoError(t, f.svc.AddToWishlist(t.Context(), "p1"))
		require.NoError(t, f.svc.AddToWishlist(t.Context(), "p2"))

		require.NoError(t, f.svc.ClearWishlist(t.Context()))
		assert.Empty(t, f.svc.Wishlist())
		assert.Equal(t, 1, f.wish.deletedAll)
	})
}

func TestCartServiceSubscribe(t *testing.T) {
	t.Run("NotifiedOnSuccess", func(t *testing.T) {
		f := newCartFixture(t)

		var got []domain.CartSnapshot
		f.svc.Subscribe(func(s domain.CartSnapshot) {
			got = append(got, s)
		})

		require.NoError(t, f.svc.AddToCart(t.Context(), "p1", "M", "white", 1))
		require.Len(t, got, 1)
		assert.Equal(t, 1, got[0].Count)
	})

	t.Run("NotNotifiedOnFailure", func(t *testing.T) {
		f := newCartFixture(t)

		notified := 0
		f.svc.Subscribe(func(domain.CartSnapshot) { notified++ })

		f.cart.failing = true
		err := f.svc.AddToCart(t.Context(), "p1", "M", "white", 1)
		require.Error(t, err)
		assert.Zero(t, notified)
	})

	t.Run("Unsubscribe", func(t *testing.T) {
		f := newCartFixture(t)

		notified := 0
		unsubscribe := f.svc.Subscribe(func(domain.CartSnapshot) { notified++ })
		unsubscribe()

		require.NoError(t, f.svc.AddToCart(t.Context(), "p1", "M", "white", 1))
		assert.Zero(t, notified)
	})
}

func TestCartSessions(t *testing.T) {
	newResolver := func() (*CartSessions, *fakeCartRepo) {
		cart := &fakeCartRepo{}
		catalog := &fakeCatalogReader{products: map[string]domain.Product{}}
		return NewCartSessions(
			catalog, cart, &fakeWishlistRepo{}, DefaultPricing(), nil,
		), cart
	}

	t.Run("SameIdentitySameManager", func(t *testing.T) {
		sessions, _ := newResolver()

		first, err := sessions.Session(t.Context(), "testUser")
		require.NoError(t, err)
		second, err := sessions.Session(t.Context(), "testUser")
		require.NoError(t, err)

		assert.Same(t, first, second)
	})

	t.Run("AnonymousRejected", func(t *testing.T) {
		sessions, _ := newResolver()

		_, err := sessions.Session(t.Context(), "")
		assert.ErrorIs(t, err, domain.ErrAuthRequired)
	})

	t.Run("EndSessionPurges", func(t *testing.T) {
		sessions, _ := newResolver()

		first, err := sessions.Session(t.Context(), "testUser")
		require.NoError(t, err)

		sessions.EndSession("testUser")

		second, err := sessions.Session(t.Context(), "testUser")
		require.NoError(t, err)
		assert.NotSame(t, first, second)
	})
}

func TestCheckoutQuote(t *testing.T) {
	t.Run("EmptyCartRejected", func(t *testing.T) {
		f := newCartFixture(t)

		_, err := Checkout{}.Quote(t.Context(), "testUser", f.svc)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("QuotesCurrentTotals", func(t *testing.T) {
		f := newCartFixture(t)
		require.NoError(t, f.svc.AddToCart(t.Context(), "p2", "", "", 2))

		totals, err := Checkout{}.Quote(t.Context(), "testUser", f.svc)
		require.NoError(t, err)
		assert.Equal(t, "50.00", totals.Subtotal.StringFixed(2))
	})

	t.Run("AnonymousRejected", func(t *testing.T) {
		f := newCartFixture(t)

		_, err := Checkout{}.Quote(t.Context(), "", f.svc)
		assert.ErrorIs(t, err, domain.ErrAuthRequired)
	})
}

func TestCheckStock(t *testing.T) {
	tracked := domain.Product{ProductID: "p", StockQuantity: 3, TrackInventory: true}
	untracked := domain.Product{ProductID: "p", StockQuantity: 0}

	assert.NoError(t, checkStock(tracked, 3))
	assert.True(t, errors.Is(checkStock(tracked, 4), domain.ErrValidation))
	assert.NoError(t, checkStock(untracked, 100))
}
