package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"glowcart/internal/domain"
	"github.com/gin-gonic/gin"
)

func (h *handlers) listProducts(c *gin.Context) {
	ctx := c.Request.Context()
	query := strings.TrimSpace(c.Query("q"))

	var (
		products []domain.Product
		err      error
	)
	if query == "" {
		products, err = h.deps.ProductSvc.List(ctx)
	} else {
		products, err = h.deps.ProductSvc.Search(ctx, query)
	}
	if err != nil {
		h.logger.Printf("httpserver: list products error=%v", err)
		respondError(c, http.StatusBadGateway, "could not load products")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"results": products, "total": len(products)})
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.deps.ProductSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(c, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Printf("httpserver: get product id=%s error=%v", c.Param("id"), err)
		respondError(c, http.StatusBadGateway, "could not load product")
		return
	}
	c.JSON(http.StatusOK, p)
}
