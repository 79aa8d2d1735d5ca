package product

import (
	"context"
	"errors"
	"sync"
	"testing"

	"glowcart/internal/cache"
	"glowcart/internal/domain"
)

type stubRepo struct {
	mu       sync.Mutex
	products []domain.Product
	listHits int
}

func (s *stubRepo) List(_ context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listHits++
	return s.products, nil
}

func (s *stubRepo) Search(_ context.Context, query string) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range s.products {
		if p.Title == query {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	p.ID = "prod-new"
	s.products = append(s.products, p)
	return &p, nil
}

func (s *stubRepo) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, nil
}

func (s *stubRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, nil
}

func (s *stubRepo) Delete(_ context.Context, _ string) error { return nil }

// memCatalog is an in-memory cache.Catalog with hit/invalidate counters.
type memCatalog struct {
	mu          sync.Mutex
	products    []domain.Product
	set         bool
	invalidated int
}

func (c *memCatalog) Get(_ context.Context) ([]domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.set {
		return nil, cache.ErrCacheMiss
	}
	return c.products, nil
}

func (c *memCatalog) Set(_ context.Context, products []domain.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = products
	c.set = true
	return nil
}

func (c *memCatalog) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = nil
	c.set = false
	c.invalidated++
	return nil
}

func TestList_CacheMissFallsBackToRepo(t *testing.T) {
	repo := &stubRepo{products: []domain.Product{{ID: "p1", Title: "Lipstick", Price: "GH₵45.00"}}}
	svc := New(repo, &memCatalog{}, nil)

	products, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Fatalf("unexpected products: %+v", products)
	}
	if repo.listHits != 1 {
		t.Fatalf("expected 1 repo hit, got %d", repo.listHits)
	}
}

func TestList_CacheHitSkipsRepo(t *testing.T) {
	repo := &stubRepo{}
	catalog := &memCatalog{}
	if err := catalog.Set(context.Background(), []domain.Product{{ID: "p1"}}); err != nil {
		t.Fatalf("prime cache: %v", err)
	}
	svc := New(repo, catalog, nil)

	products, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("unexpected products: %+v", products)
	}
	if repo.listHits != 0 {
		t.Fatalf("repo should not be hit on a cache hit, got %d", repo.listHits)
	}
}

func TestCreate_RequiresTitleAndPrice(t *testing.T) {
	svc := New(&stubRepo{}, nil, nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, domain.Product{Price: "GH₵45.00"}); err == nil {
		t.Fatal("expected error for missing title")
	}
	if _, err := svc.Create(ctx, domain.Product{Title: "Lipstick"}); err == nil {
		t.Fatal("expected error for missing price")
	}
}

func TestCreate_InvalidatesCache(t *testing.T) {
	catalog := &memCatalog{}
	svc := New(&stubRepo{}, catalog, nil)

	if _, err := svc.Create(context.Background(), domain.Product{Title: "Lipstick", Price: "GH₵45.00"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if catalog.invalidated != 1 {
		t.Fatalf("expected 1 invalidation, got %d", catalog.invalidated)
	}
}

func TestUpdate_RequiresID(t *testing.T) {
	svc := New(&stubRepo{}, nil, nil)

	if _, err := svc.Update(context.Background(), domain.Product{Title: "Lipstick", Price: "GH₵45.00"}); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestSearch_EmptyQueryListsAll(t *testing.T) {
	repo := &stubRepo{products: []domain.Product{{ID: "p1", Title: "Lipstick", Price: "GH₵45.00"}}}
	svc := New(repo, &memCatalog{}, nil)

	products, err := svc.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected full list for empty query, got %+v", products)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := New(&stubRepo{}, nil, nil)

	_, err := svc.Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
