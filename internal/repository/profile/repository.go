package profile

import (
	"context"

	"glowcart/internal/domain"
)

type UpdateInput struct {
	FullName *string
}

type Repository interface {
	Create(ctx context.Context, p domain.Profile) (*domain.Profile, error)
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.Profile, error)
	Delete(ctx context.Context, id string) error
}
