package importer

import (
	"context"
	"strings"
	"testing"

	"glowcart/internal/domain"
)

type stubProductRepo struct {
	items []domain.Product
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.items = append(s.items, p)
	return &p, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `id,title,price,image.url,gallery.url,intro,howToUse,shade,finish,size,color
00000000-0000-0000-0000-000000000001,Velvet Matte Lipstick,GH₵45.00,/img/shopItems/lipstick.jpg,/img/shopItems/lipstick-1.jpg,Long-wear matte,Apply from center,Rosewood,Matte,3.5g,
,,,,/img/shopItems/lipstick-2.jpg,,,,,,
00000000-0000-0000-0000-000000000002,Dewy Glow Serum,GH₵120.00,/img/shopItems/serum.jpg,,Hydrating serum,Two drops daily,,,30ml,`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 products imported, got %d", count)
	}
	if len(repo.items) != 2 {
		t.Fatalf("expected 2 products saved, got %d", len(repo.items))
	}

	first := repo.items[0]
	if first.Title != "Velvet Matte Lipstick" || first.Price != "GH₵45.00" {
		t.Fatalf("unexpected product data: %+v", first)
	}
	if first.ID != "00000000-0000-0000-0000-000000000001" {
		t.Fatalf("expected id to be preserved, got %s", first.ID)
	}
	if len(first.Gallery) != 2 {
		t.Fatalf("expected 2 gallery images on first product, got %d", len(first.Gallery))
	}
	if repo.items[1].Size != "30ml" {
		t.Fatalf("unexpected second product: %+v", repo.items[1])
	}
}

func TestCSVImporter_RejectsBadPrice(t *testing.T) {
	csvData := `title,price
Mystery Balm,not-a-price`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected error for unparseable price")
	}
	if len(repo.items) != 0 {
		t.Fatalf("expected no products saved, got %d", len(repo.items))
	}
}
