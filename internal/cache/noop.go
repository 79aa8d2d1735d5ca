package cache

import (
	"context"

	"glowcart/internal/domain"
)

// NoopCatalog is used when no Redis address is configured; every Get is a
// miss and writes are discarded.
type NoopCatalog struct{}

func (NoopCatalog) Get(context.Context) ([]domain.Product, error) { return nil, ErrCacheMiss }

func (NoopCatalog) Set(context.Context, []domain.Product) error { return nil }

func (NoopCatalog) Invalidate(context.Context) error { return nil }
