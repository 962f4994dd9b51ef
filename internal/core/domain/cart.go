package domain

import "time"

type (
	// CartItem is one line item in an identity's cart. Quantity is
	// never below 1: removing the last unit removes the row.
	CartItem struct {
		ItemID    string
		UserID    string
		ProductID string
		Quantity  int
		Size      string
		Color     string
		CreatedAt time.Time
	}

	// CartLine joins a line item with the product it references.
	CartLine struct {
		Item    CartItem
		Product Product
	}

	// WishlistEntry is unique per (user, product) pair.
	WishlistEntry struct {
		EntryID   string
		UserID    string
		ProductID string
		CreatedAt time.Time
	}

	// WishlistLine joins a wishlist entry with its product.
	WishlistLine struct {
		Entry   WishlistEntry
		Product Product
	}

	// CartSnapshot is the state manager's published view: line items,
	// total unit count and the computed totals.
	CartSnapshot struct {
		Lines  []CartLine
		Count  int
		Totals Totals
	}
)

// SameSelection reports whether the item refers to the same
// product+size+color tuple. Repeat adds with the same selection merge
// into one line.
func (c CartItem) SameSelection(productID, size, color string) bool {
	return c.ProductID == productID && c.Size == size && c.Color == color
}

func (s CartSnapshot) Empty() bool {
	return len(s.Lines) == 0
}
