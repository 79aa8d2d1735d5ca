package seed

import (
	"context"
	"fmt"

	"glowcart/internal/domain"
	productrepo "glowcart/internal/repository/product"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Apply inserts demo catalog data for manual testing. Fixed ids make it
// idempotent: rerunning updates the same rows.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	repo := productrepo.NewPostgres(pool, nil)

	products := []domain.Product{
		{
			ID:       "a1f0c5e2-0001-4000-8000-000000000001",
			Title:    "Velvet Matte Lipstick",
			Price:    "GH₵45.00",
			ImageURL: "/img/shopItems/velvet-matte-lipstick.jpg",
			Intro:    "A long-wear matte lipstick with a weightless velvet finish.",
			HowToUse: "Apply from the center of the lips outward. Blot for a softer look.",
			Shade:    "Rosewood",
			Finish:   "Matte",
			Size:     "3.5g",
		},
		{
			ID:       "a1f0c5e2-0001-4000-8000-000000000002",
			Title:    "Dewy Glow Serum",
			Price:    "GH₵120.00",
			ImageURL: "/img/shopItems/dewy-glow-serum.jpg",
			Intro:    "Hydrating serum with vitamin C for an instant dewy glow.",
			HowToUse: "Massage two drops into clean skin morning and night.",
			Size:     "30ml",
		},
		{
			ID:       "a1f0c5e2-0001-4000-8000-000000000003",
			Title:    "Silk Foundation Brush",
			Price:    "GH₵35.00",
			ImageURL: "/img/shopItems/silk-foundation-brush.jpg",
			Intro:    "Densely packed synthetic bristles for a streak-free base.",
			HowToUse: "Buff foundation in circular motions. Wash weekly.",
			Color:    "Champagne",
		},
		{
			ID:       "a1f0c5e2-0001-4000-8000-000000000004",
			Title:    "Hydra Repair Night Cream",
			Price:    "GH₵98.50",
			ImageURL: "/img/shopItems/hydra-repair-night-cream.jpg",
			Intro:    "Rich overnight cream that restores the moisture barrier.",
			HowToUse: "Apply as the last step of your evening routine.",
			Size:     "50ml",
		},
	}

	for _, p := range products {
		if _, err := repo.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %q: %w", p.Title, err)
		}
	}
	return nil
}
