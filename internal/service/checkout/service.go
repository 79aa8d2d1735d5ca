package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"glowcart/internal/domain"
)

// ErrEmptyCart is returned when checkout is attempted with nothing in the
// cart.
var ErrEmptyCart = errors.New("cart is empty")

var validStatuses = map[string]bool{
	domain.OrderStatusPending:   true,
	domain.OrderStatusDelivered: true,
	domain.OrderStatusCancelled: true,
}

type cartReconciler interface {
	Refresh(ctx context.Context, userID string) ([]domain.CartItem, error)
}

type orderRepo interface {
	CreateFromCart(ctx context.Context, o domain.Order) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// Service turns a cart snapshot into a placed order.
type Service struct {
	cart   cartReconciler
	orders orderRepo
	rules  Rules
	logger *log.Logger
}

func New(cart cartReconciler, orders orderRepo, rules Rules, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{cart: cart, orders: orders, rules: rules, logger: logger}
}

// Rules exposes the pricing rules so handlers can compute display totals
// with the same constants the order will be priced with.
func (s *Service) Rules() Rules {
	return s.rules
}

// PlaceOrder re-fetches the canonical cart, prices it, persists the order
// and clears the cart, then refreshes the (now empty) snapshot.
func (s *Service) PlaceOrder(ctx context.Context, userID string) (*domain.Order, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	items, err := s.cart.Refresh(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	totals := ComputeTotals(items, s.rules)
	order := domain.Order{
		UserID:      userID,
		Items:       orderItems(items),
		Subtotal:    totals.Subtotal,
		Shipping:    totals.Shipping,
		Tax:         totals.Tax,
		TotalAmount: totals.Total,
		Status:      domain.OrderStatusPending,
	}

	placed, err := s.orders.CreateFromCart(ctx, order)
	if err != nil {
		s.logger.Printf("checkout: place order user_id=%s error=%v", userID, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteWrite, err)
	}

	if _, err := s.cart.Refresh(ctx, userID); err != nil {
		// The order is placed; a stale snapshot here is recoverable on the
		// next read.
		s.logger.Printf("checkout: refresh after order user_id=%s error=%v", userID, err)
	}
	return placed, nil
}

// Orders lists the user's own orders, newest first.
func (s *Service) Orders(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return s.orders.ListByUser(ctx, userID)
}

// AllOrders lists every order for the admin dashboard.
func (s *Service) AllOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListAll(ctx)
}

// SetStatus moves an order to a new status.
func (s *Service) SetStatus(ctx context.Context, orderID, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("invalid order status %q", status)
	}
	return s.orders.UpdateStatus(ctx, orderID, status)
}

func orderItems(items []domain.CartItem) []domain.OrderItem {
	out := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, domain.OrderItem{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return out
}
