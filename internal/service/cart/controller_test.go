package cart

import (
	"context"
	"errors"
	"testing"

	"glowcart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubReconciler simulates the remote store with scriptable failures. Its
// snapshot only changes when a mutation is confirmed, mirroring the real
// service's refresh-after-write behavior.
type stubReconciler struct {
	items  []domain.CartItem
	addErr error
	incErr error
	decErr error
	remErr error
}

func (s *stubReconciler) find(productID string) *domain.CartItem {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			return &s.items[i]
		}
	}
	return nil
}

func (s *stubReconciler) AddToCart(_ context.Context, _, productID string) error {
	if s.addErr != nil {
		return s.addErr
	}
	if item := s.find(productID); item != nil {
		item.Quantity++
		return nil
	}
	s.items = append(s.items, domain.CartItem{
		CartLine: domain.CartLine{ID: "line-" + productID, ProductID: productID, Quantity: 1},
		Title:    "Item " + productID,
		Price:    "GH₵25.00",
	})
	return nil
}

func (s *stubReconciler) IncrementQuantity(_ context.Context, _, productID string) error {
	if s.incErr != nil {
		return s.incErr
	}
	item := s.find(productID)
	if item == nil {
		return domain.ErrLineNotFound
	}
	item.Quantity++
	return nil
}

func (s *stubReconciler) DecrementQuantity(_ context.Context, _, productID string) error {
	if s.decErr != nil {
		return s.decErr
	}
	item := s.find(productID)
	if item == nil {
		return domain.ErrLineNotFound
	}
	if item.Quantity <= 1 {
		s.remove(item.ID)
		return nil
	}
	item.Quantity--
	return nil
}

func (s *stubReconciler) RemoveLine(_ context.Context, _, lineID string) error {
	if s.remErr != nil {
		return s.remErr
	}
	if !s.remove(lineID) {
		return domain.ErrLineNotFound
	}
	return nil
}

func (s *stubReconciler) remove(lineID string) bool {
	for i := range s.items {
		if s.items[i].ID == lineID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *stubReconciler) Refresh(_ context.Context, _ string) ([]domain.CartItem, error) {
	return s.Snapshot(""), nil
}

func (s *stubReconciler) Snapshot(_ string) []domain.CartItem {
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func lineView(t *testing.T, views []LineView, productID string) LineView {
	t.Helper()
	for _, v := range views {
		if v.ProductID == productID {
			return v
		}
	}
	t.Fatalf("no view for product %s", productID)
	return LineView{}
}

func TestController_AddThenView(t *testing.T) {
	svc := &stubReconciler{}
	c := NewController(svc, "u1", nil)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, "p1"))

	views, err := c.View(ctx)
	require.NoError(t, err)
	v := lineView(t, views, "p1")
	assert.Equal(t, 1, v.DisplayQuantity)
	assert.False(t, v.Pending)
	assert.True(t, v.ControlsVisible)
}

func TestController_FailedIncrementRollsBackDisplay(t *testing.T) {
	svc := &stubReconciler{}
	c := NewController(svc, "u1", nil)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, "p1"))
	require.NoError(t, c.Increment(ctx, "p1"))

	svc.incErr = errors.New("write timeout")
	err := c.Increment(ctx, "p1")
	require.Error(t, err)

	views, viewErr := c.View(ctx)
	require.NoError(t, viewErr)
	v := lineView(t, views, "p1")
	assert.Equal(t, 2, v.DisplayQuantity, "display returns to the pre-action quantity")
	assert.False(t, v.Pending)
}

func TestController_DecrementAtZeroIsNoOp(t *testing.T) {
	svc := &stubReconciler{}
	c := NewController(svc, "u1", nil)
	ctx := context.Background()

	require.NoError(t, c.Decrement(ctx, "p1"))
	assert.Empty(t, svc.items, "no remote call should have created anything")
}

func TestController_IncrementMissingLineIsIgnored(t *testing.T) {
	svc := &stubReconciler{}
	c := NewController(svc, "u1", nil)

	// Stale controls: the line vanished remotely. The error is swallowed.
	require.NoError(t, c.Increment(context.Background(), "p1"))
}

func TestController_RemoveClearsLine(t *testing.T) {
	svc := &stubReconciler{}
	c := NewController(svc, "u1", nil)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, "p1"))
	views, err := c.View(ctx)
	require.NoError(t, err)
	lineID := lineView(t, views, "p1").ID

	require.NoError(t, c.Remove(ctx, lineID))

	views, err = c.View(ctx)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestController_RevealShowsControlsBeforeAnyLine(t *testing.T) {
	svc := &stubReconciler{}
	c := NewController(svc, "u1", nil)

	c.Reveal("p1")
	// No line exists, so the view has no row for p1; visibility is consulted
	// through the overlay directly for catalog rendering.
	assert.True(t, c.overlay.ControlsVisible("p1", 0))
}

func TestController_DecrementToZeroRemovesRow(t *testing.T) {
	svc := &stubReconciler{}
	c := NewController(svc, "u1", nil)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, "p1"))
	require.NoError(t, c.Decrement(ctx, "p1"))

	views, err := c.View(ctx)
	require.NoError(t, err)
	assert.Empty(t, views, "quantity zero means the line is gone, not shown as 0")
}
