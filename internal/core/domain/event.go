package domain

import "time"

type CartAction string

const (
	CartItemAdded       CartAction = "item_added"
	CartQuantityChanged CartAction = "quantity_changed"
	CartItemRemoved     CartAction = "item_removed"
	CartCleared         CartAction = "cart_cleared"
	WishlistAdded       CartAction = "wishlist_added"
	WishlistRemoved     CartAction = "wishlist_removed"
	WishlistCleared     CartAction = "wishlist_cleared"
)

// CartEvent is published to the analytics stream after every
// successful cart or wishlist mutation. Publication is best-effort
// and never fails the user operation.
type CartEvent struct {
	UserID     string
	Action     CartAction
	ProductID  string
	Quantity   int
	OccurredAt time.Time
}
