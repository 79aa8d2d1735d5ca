package httpserver

import (
	"errors"
	"net/http"

	"glowcart/internal/domain"
	cartsvc "glowcart/internal/service/cart"
	"glowcart/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// cartResponse is the merged view the storefront renders: canonical lines
// with the optimistic overlay already applied.
type cartResponse struct {
	Items  []cartsvc.LineView `json:"items"`
	Notice string             `json:"notice,omitempty"`
}

func (h *handlers) getCart(c *gin.Context) {
	ctrl := h.controllerFor(currentUserID(c))
	views, err := ctrl.View(c.Request.Context())
	if err != nil {
		h.logger.Printf("httpserver: load cart error=%v", err)
		respondError(c, http.StatusBadGateway, "Could not load cart")
		return
	}
	c.JSON(http.StatusOK, cartResponse{Items: views})
}

func (h *handlers) cartTotals(c *gin.Context) {
	ctrl := h.controllerFor(currentUserID(c))
	items, err := ctrl.Items(c.Request.Context())
	if err != nil {
		h.logger.Printf("httpserver: cart totals error=%v", err)
		respondError(c, http.StatusBadGateway, "Could not load cart")
		return
	}
	totals := checkout.ComputeTotals(items, h.deps.CheckoutSvc.Rules())
	c.JSON(http.StatusOK, totals)
}

func (h *handlers) addToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}
	ctrl := h.controllerFor(currentUserID(c))
	if err := ctrl.Add(c.Request.Context(), req.ProductID); err != nil {
		h.respondCartError(c, ctrl, err)
		return
	}
	h.respondCart(c, ctrl)
}

func (h *handlers) incrementLine(c *gin.Context) {
	ctrl := h.controllerFor(currentUserID(c))
	if err := ctrl.Increment(c.Request.Context(), c.Param("productID")); err != nil {
		h.respondCartError(c, ctrl, err)
		return
	}
	h.respondCart(c, ctrl)
}

func (h *handlers) decrementLine(c *gin.Context) {
	ctrl := h.controllerFor(currentUserID(c))
	if err := ctrl.Decrement(c.Request.Context(), c.Param("productID")); err != nil {
		h.respondCartError(c, ctrl, err)
		return
	}
	h.respondCart(c, ctrl)
}

// revealControls shows the quantity stepper for a product before any cart
// line exists, so the storefront can swap the buy button immediately.
func (h *handlers) revealControls(c *gin.Context) {
	ctrl := h.controllerFor(currentUserID(c))
	ctrl.Reveal(c.Param("productID"))
	h.respondCart(c, ctrl)
}

func (h *handlers) removeLine(c *gin.Context) {
	ctrl := h.controllerFor(currentUserID(c))
	if err := ctrl.Remove(c.Request.Context(), c.Param("lineID")); err != nil {
		if errors.Is(err, domain.ErrLineNotFound) {
			respondError(c, http.StatusNotFound, "cart line not found")
			return
		}
		h.respondCartError(c, ctrl, err)
		return
	}
	h.respondCart(c, ctrl)
}

func (h *handlers) respondCart(c *gin.Context, ctrl *cartsvc.Controller) {
	views, err := ctrl.View(c.Request.Context())
	if err != nil {
		h.logger.Printf("httpserver: load cart error=%v", err)
		respondError(c, http.StatusBadGateway, "Could not load cart")
		return
	}
	c.JSON(http.StatusOK, cartResponse{Items: views})
}

// respondCartError reports a failed mutation. The overlay has already
// rolled back, so the returned view shows the pre-action quantities along
// with a short notice for the storefront to surface.
func (h *handlers) respondCartError(c *gin.Context, ctrl *cartsvc.Controller, err error) {
	h.logger.Printf("httpserver: cart mutation error=%v", err)
	if errors.Is(err, domain.ErrLineNotFound) {
		respondError(c, http.StatusNotFound, "cart line not found")
		return
	}
	views, viewErr := ctrl.View(c.Request.Context())
	if viewErr != nil {
		respondError(c, http.StatusBadGateway, "Could not update cart")
		return
	}
	c.JSON(http.StatusBadGateway, cartResponse{Items: views, Notice: "Could not update cart"})
}
