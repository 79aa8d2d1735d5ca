package product

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"glowcart/internal/cache"
	"glowcart/internal/domain"
	productrepo "glowcart/internal/repository/product"
	"golang.org/x/sync/singleflight"
)

// Service serves the catalog and the admin CRUD behind it. Reads go
// through the catalog cache; admin mutations invalidate it.
type Service struct {
	repo    productrepo.Repository
	catalog cache.Catalog
	logger  *log.Logger
	sfg     singleflight.Group
}

func New(repo productrepo.Repository, catalog cache.Catalog, logger *log.Logger) *Service {
	if catalog == nil {
		catalog = cache.NoopCatalog{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, catalog: catalog, logger: logger}
}

// List returns the whole catalog, cache first. Concurrent misses collapse
// into one database query.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := s.sfg.Do("catalog", func() (interface{}, error) {
		products, err := s.catalog.Get(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Printf("product: cache get error=%v", err)
		}

		products, err = s.repo.List(ctx)
		if err != nil {
			return nil, err
		}

		go func() {
			if err := s.catalog.Set(context.Background(), products); err != nil {
				s.logger.Printf("product: cache set error=%v", err)
			}
		}()
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

// Search matches product titles case-insensitively by substring. An empty
// query falls back to the full list.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx)
	}
	return s.repo.Search(ctx, query)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create adds a catalog entry from the admin dashboard.
func (s *Service) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	s.warnOnBadPrice(p)
	res, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return res, nil
}

func (s *Service) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if strings.TrimSpace(p.ID) == "" {
		return nil, errors.New("id required")
	}
	if err := validate(p); err != nil {
		return nil, err
	}
	s.warnOnBadPrice(p)
	res, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return res, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *Service) invalidate() {
	if err := s.catalog.Invalidate(context.Background()); err != nil {
		s.logger.Printf("product: cache invalidate error=%v", err)
	}
}

// warnOnBadPrice flags unparseable prices at write time; at read time they
// silently price as zero, which is almost never what the admin meant.
func (s *Service) warnOnBadPrice(p domain.Product) {
	if _, err := domain.ParsePrice(p.Price); err != nil {
		s.logger.Printf("product: title=%q has unparseable price %q, will total as 0", p.Title, p.Price)
	}
}

func validate(p domain.Product) error {
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("title required")
	}
	if strings.TrimSpace(p.Price) == "" {
		return errors.New("price required")
	}
	return nil
}
