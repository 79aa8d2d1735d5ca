package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"glowcart/internal/domain"
	"glowcart/internal/service/analytics"
	"github.com/gin-gonic/gin"
)

func (h *handlers) createProduct(c *gin.Context) {
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}
	created, err := h.deps.ProductSvc.Create(c.Request.Context(), p)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) updateProduct(c *gin.Context) {
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}
	p.ID = c.Param("id")
	updated, err := h.deps.ProductSvc.Update(c.Request.Context(), p)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(c, http.StatusNotFound, "product not found")
			return
		}
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) deleteProduct(c *gin.Context) {
	if err := h.deps.ProductSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(c, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Printf("httpserver: delete product id=%s error=%v", c.Param("id"), err)
		respondError(c, http.StatusInternalServerError, "could not delete product")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) adminOrders(c *gin.Context) {
	orders, err := h.deps.CheckoutSvc.AllOrders(c.Request.Context())
	if err != nil {
		h.logger.Printf("httpserver: admin orders error=%v", err)
		respondError(c, http.StatusBadGateway, "could not load orders")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"results": orders, "total": len(orders)})
}

type orderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *handlers) updateOrderStatus(c *gin.Context) {
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := h.deps.CheckoutSvc.SetStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(c, http.StatusNotFound, "order not found")
			return
		}
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// adminAnalytics derives the dashboard summary from all orders and
// customers. range is a day count bounding the "recent" window.
func (h *handlers) adminAnalytics(c *gin.Context) {
	rangeDays := 30
	if raw := c.Query("range"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, http.StatusBadRequest, "range must be a positive day count")
			return
		}
		rangeDays = n
	}

	ctx := c.Request.Context()
	orders, err := h.deps.CheckoutSvc.AllOrders(ctx)
	if err != nil {
		h.logger.Printf("httpserver: analytics orders error=%v", err)
		respondError(c, http.StatusBadGateway, "could not load orders")
		return
	}
	customers, err := h.deps.CustomerSvc.Profiles(ctx)
	if err != nil {
		h.logger.Printf("httpserver: analytics customers error=%v", err)
		respondError(c, http.StatusBadGateway, "could not load customers")
		return
	}

	c.JSON(http.StatusOK, analytics.Compute(orders, customers, time.Now(), rangeDays))
}
