package domain

import "time"

// CartLine is one persisted row associating a user, a product and a
// quantity. Quantity is always >= 1 while the row exists; a line whose
// quantity would drop to zero is deleted, never stored at zero. At most
// one line exists per (user, product) pair.
type CartLine struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// CartItem is the typed join view of a cart line with the product display
// fields the storefront needs. It is produced by a mapping function at the
// repository boundary so the remote schema shape never leaks into
// UI-facing types.
type CartItem struct {
	CartLine
	Title    string `json:"title"`
	Price    string `json:"price"`
	ImageURL string `json:"imageUrl"`
}
