package httpserver

import (
	"errors"
	"net/http"

	"glowcart/internal/domain"
	"glowcart/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

func (h *handlers) placeOrder(c *gin.Context) {
	userID := currentUserID(c)
	order, err := h.deps.CheckoutSvc.PlaceOrder(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(c, http.StatusBadRequest, "cart is empty")
		case errors.Is(err, domain.ErrRemoteRead), errors.Is(err, domain.ErrRemoteWrite):
			h.logger.Printf("httpserver: checkout user_id=%s error=%v", userID, err)
			respondError(c, http.StatusBadGateway, "Could not place order")
		default:
			h.logger.Printf("httpserver: checkout user_id=%s error=%v", userID, err)
			respondError(c, http.StatusInternalServerError, "Could not place order")
		}
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *handlers) listOrders(c *gin.Context) {
	orders, err := h.deps.CheckoutSvc.Orders(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.logger.Printf("httpserver: list orders error=%v", err)
		respondError(c, http.StatusBadGateway, "could not load orders")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"results": orders, "total": len(orders)})
}
