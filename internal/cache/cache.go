package cache

import (
	"context"
	"errors"

	"glowcart/internal/domain"
)

// Catalog caches the full product list. The catalog is small and read-hot;
// mutations from the admin dashboard invalidate the whole entry.
type Catalog interface {
	Get(ctx context.Context) ([]domain.Product, error)
	Set(ctx context.Context, products []domain.Product) error
	Invalidate(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
