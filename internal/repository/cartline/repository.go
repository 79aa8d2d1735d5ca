package cartline

import (
	"context"

	"glowcart/internal/domain"
)

// Repository persists cart lines. Every quantity change re-reads the
// current row inside the same transaction as the write (row locked with
// FOR UPDATE), so two concurrent "+1" round trips for the same line can
// never lose an update.
type Repository interface {
	// ListForUser returns the user's cart lines joined with product
	// display fields.
	ListForUser(ctx context.Context, userID string) ([]domain.CartItem, error)
	// AddOne increments the (user, product) line by one, creating it with
	// quantity 1 when absent.
	AddOne(ctx context.Context, userID, productID string) error
	// IncrementOne adds one to an existing line. Returns
	// domain.ErrLineNotFound when no line exists.
	IncrementOne(ctx context.Context, userID, productID string) error
	// DecrementOne subtracts one from an existing line, deleting the row
	// when the quantity would reach zero. The removed result reports
	// whether the line was deleted. Returns domain.ErrLineNotFound when no
	// line exists.
	DecrementOne(ctx context.Context, userID, productID string) (removed bool, err error)
	// Delete removes a line by id, scoped to the owning user. Returns
	// domain.ErrLineNotFound when the line does not exist or belongs to a
	// different user.
	Delete(ctx context.Context, userID, lineID string) error
}
