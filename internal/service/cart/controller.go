package cart

import (
	"context"
	"errors"
	"io"
	"log"

	"glowcart/internal/domain"
)

// reconciler is the slice of Service the controller needs; tests substitute
// a stub that simulates remote failures.
type reconciler interface {
	AddToCart(ctx context.Context, userID, productID string) error
	IncrementQuantity(ctx context.Context, userID, productID string) error
	DecrementQuantity(ctx context.Context, userID, productID string) error
	RemoveLine(ctx context.Context, userID, lineID string) error
	Refresh(ctx context.Context, userID string) ([]domain.CartItem, error)
	Snapshot(userID string) []domain.CartItem
}

// Controller drives one user's cart: it wraps every reconciler call in the
// optimistic protocol (record pending op, show anticipated quantity,
// commit or roll back) and exposes the merged view the interface renders.
type Controller struct {
	svc     reconciler
	overlay *Overlay
	userID  string
	logger  *log.Logger
}

// LineView is one cart row as the interface should render it.
type LineView struct {
	domain.CartItem
	DisplayQuantity int  `json:"displayQuantity"`
	Pending         bool `json:"pending"`
	ControlsVisible bool `json:"controlsVisible"`
}

func NewController(svc reconciler, userID string, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Controller{
		svc:     svc,
		overlay: NewOverlay(),
		userID:  userID,
		logger:  logger,
	}
}

// Add runs the add-to-cart action with an optimistic +1.
func (c *Controller) Add(ctx context.Context, productID string) error {
	current := c.canonicalQuantity(productID)
	if !c.overlay.Begin(productID, OpAdd, current+1) {
		return nil
	}
	if err := c.svc.AddToCart(ctx, c.userID, productID); err != nil {
		c.overlay.Fail(productID, err)
		return err
	}
	c.overlay.Succeed(productID)
	return nil
}

// Increment bumps an existing line by one. A missing line is a defensive
// no-op: the controls should not have been rendered.
func (c *Controller) Increment(ctx context.Context, productID string) error {
	current := c.overlay.DisplayQuantity(productID, c.canonicalQuantity(productID))
	if !c.overlay.Begin(productID, OpIncrement, current+1) {
		return nil
	}
	if err := c.svc.IncrementQuantity(ctx, c.userID, productID); err != nil {
		c.overlay.Fail(productID, err)
		if errors.Is(err, domain.ErrLineNotFound) {
			c.logger.Printf("cart: increment for product_id=%s with no line, ignoring", productID)
			return nil
		}
		return err
	}
	c.overlay.Succeed(productID)
	return nil
}

// Decrement lowers an existing line by one. It refuses to run when the
// displayed quantity is already zero, so a negative quantity can never be
// requested.
func (c *Controller) Decrement(ctx context.Context, productID string) error {
	current := c.overlay.DisplayQuantity(productID, c.canonicalQuantity(productID))
	if current <= 0 {
		return nil
	}
	if !c.overlay.Begin(productID, OpDecrement, current-1) {
		return nil
	}
	if err := c.svc.DecrementQuantity(ctx, c.userID, productID); err != nil {
		c.overlay.Fail(productID, err)
		if errors.Is(err, domain.ErrLineNotFound) {
			c.logger.Printf("cart: decrement for product_id=%s with no line, ignoring", productID)
			return nil
		}
		return err
	}
	c.overlay.Succeed(productID)
	return nil
}

// Remove deletes a line outright.
func (c *Controller) Remove(ctx context.Context, lineID string) error {
	productID := c.productOfLine(lineID)
	if productID != "" && !c.overlay.Begin(productID, OpRemove, 0) {
		return nil
	}
	if err := c.svc.RemoveLine(ctx, c.userID, lineID); err != nil {
		if productID != "" {
			c.overlay.Fail(productID, err)
		}
		return err
	}
	if productID != "" {
		c.overlay.Succeed(productID)
	}
	return nil
}

// Reveal shows the cart controls for a product before any line exists.
func (c *Controller) Reveal(productID string) {
	c.overlay.Reveal(productID)
}

// View returns the cart as the interface should render it, refreshing the
// canonical snapshot first when it has not been loaded yet.
func (c *Controller) View(ctx context.Context) ([]LineView, error) {
	items := c.svc.Snapshot(c.userID)
	if items == nil {
		var err error
		items, err = c.svc.Refresh(ctx, c.userID)
		if err != nil {
			return nil, err
		}
	}
	views := make([]LineView, 0, len(items))
	for _, item := range items {
		views = append(views, LineView{
			CartItem:        item,
			DisplayQuantity: c.overlay.DisplayQuantity(item.ProductID, item.Quantity),
			Pending:         c.overlay.Pending(item.ProductID),
			ControlsVisible: c.overlay.ControlsVisible(item.ProductID, item.Quantity),
		})
	}
	return views, nil
}

// Items returns the canonical snapshot without overlay additions, e.g. for
// totals computation.
func (c *Controller) Items(ctx context.Context) ([]domain.CartItem, error) {
	items := c.svc.Snapshot(c.userID)
	if items == nil {
		return c.svc.Refresh(ctx, c.userID)
	}
	return items, nil
}

func (c *Controller) canonicalQuantity(productID string) int {
	for _, item := range c.svc.Snapshot(c.userID) {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

func (c *Controller) productOfLine(lineID string) string {
	for _, item := range c.svc.Snapshot(c.userID) {
		if item.ID == lineID {
			return item.ProductID
		}
	}
	return ""
}
