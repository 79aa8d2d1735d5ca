package order

import (
	"context"

	"glowcart/internal/domain"
)

type Repository interface {
	// CreateFromCart inserts the order and clears the user's cart lines in
	// one transaction, so a placed order can never coexist with the cart
	// it was built from.
	CreateFromCart(ctx context.Context, o domain.Order) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
