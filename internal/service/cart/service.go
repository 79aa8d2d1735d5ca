package cart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"glowcart/internal/domain"
	cartlinerepo "glowcart/internal/repository/cartline"
	"golang.org/x/sync/singleflight"
)

// Service reconciles user intent with the persisted cart. It owns the
// canonical per-user snapshot: after every confirmed mutation the cart is
// re-fetched in full rather than patched locally, so the snapshot never
// drifts from the store.
type Service struct {
	lines  cartlinerepo.Repository
	logger *log.Logger

	// One mutex per (user, product) serializes rapid repeated clicks on
	// the same line. Operations on different products stay independent.
	mu    sync.Mutex
	locks map[string]*sync.Mutex

	snapMu    sync.RWMutex
	snapshots map[string][]domain.CartItem

	refresh singleflight.Group
}

func New(lines cartlinerepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		lines:     lines,
		logger:    logger,
		locks:     make(map[string]*sync.Mutex),
		snapshots: make(map[string][]domain.CartItem),
	}
}

// AddToCart increments the line for (user, product) by one, creating it
// with quantity 1 when absent, then refreshes the canonical snapshot.
func (s *Service) AddToCart(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return domain.ErrNotAuthenticated
	}
	unlock := s.lockLine(userID, productID)
	defer unlock()

	if err := s.lines.AddOne(ctx, userID, productID); err != nil {
		s.logger.Printf("cart: add user_id=%s product_id=%s error=%v", userID, productID, err)
		return fmt.Errorf("%w: %v", domain.ErrRemoteWrite, err)
	}
	_, err := s.Refresh(ctx, userID)
	return err
}

// IncrementQuantity adds one to an existing line. Returns
// domain.ErrLineNotFound when the user has no line for the product.
func (s *Service) IncrementQuantity(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return domain.ErrNotAuthenticated
	}
	unlock := s.lockLine(userID, productID)
	defer unlock()

	if err := s.lines.IncrementOne(ctx, userID, productID); err != nil {
		if errors.Is(err, domain.ErrLineNotFound) {
			return err
		}
		s.logger.Printf("cart: increment user_id=%s product_id=%s error=%v", userID, productID, err)
		return fmt.Errorf("%w: %v", domain.ErrRemoteWrite, err)
	}
	_, err := s.Refresh(ctx, userID)
	return err
}

// DecrementQuantity subtracts one from an existing line. At quantity 1 the
// line is removed outright; a zero quantity is never written.
func (s *Service) DecrementQuantity(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return domain.ErrNotAuthenticated
	}
	unlock := s.lockLine(userID, productID)
	defer unlock()

	removed, err := s.lines.DecrementOne(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, domain.ErrLineNotFound) {
			return err
		}
		s.logger.Printf("cart: decrement user_id=%s product_id=%s error=%v", userID, productID, err)
		return fmt.Errorf("%w: %v", domain.ErrRemoteWrite, err)
	}
	if removed {
		s.logger.Printf("cart: removed line user_id=%s product_id=%s (quantity reached zero)", userID, productID)
	}
	_, err = s.Refresh(ctx, userID)
	return err
}

// RemoveLine deletes a line unconditionally, scoped to the owning user. A
// request for a line owned by someone else fails with
// domain.ErrLineNotFound rather than silently succeeding.
func (s *Service) RemoveLine(ctx context.Context, userID, lineID string) error {
	if userID == "" {
		return domain.ErrNotAuthenticated
	}

	if err := s.lines.Delete(ctx, userID, lineID); err != nil {
		if errors.Is(err, domain.ErrLineNotFound) {
			return err
		}
		s.logger.Printf("cart: remove user_id=%s line_id=%s error=%v", userID, lineID, err)
		return fmt.Errorf("%w: %v", domain.ErrRemoteWrite, err)
	}
	_, err := s.Refresh(ctx, userID)
	return err
}

// Refresh re-queries the user's cart joined with product display fields
// and replaces the canonical snapshot. Concurrent refreshes for the same
// user collapse into one query.
func (s *Service) Refresh(ctx context.Context, userID string) ([]domain.CartItem, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	v, err, _ := s.refresh.Do(userID, func() (interface{}, error) {
		items, err := s.lines.ListForUser(ctx, userID)
		if err != nil {
			s.logger.Printf("cart: refresh user_id=%s error=%v", userID, err)
			return nil, fmt.Errorf("%w: %v", domain.ErrRemoteRead, err)
		}
		s.snapMu.Lock()
		s.snapshots[userID] = items
		s.snapMu.Unlock()
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return copyItems(v.([]domain.CartItem)), nil
}

// Snapshot returns a copy of the last confirmed cart for the user. It may
// be empty if Refresh has not run yet this session.
func (s *Service) Snapshot(userID string) []domain.CartItem {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return copyItems(s.snapshots[userID])
}

func (s *Service) lockLine(userID, productID string) func() {
	key := userID + "/" + productID
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

func copyItems(items []domain.CartItem) []domain.CartItem {
	if items == nil {
		return nil
	}
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out
}
