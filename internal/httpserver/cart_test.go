package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"glowcart/internal/domain"
	"glowcart/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

func authedRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer token")
	return req
}

func decodeCart(t *testing.T, body []byte) cartResponse {
	t.Helper()
	var resp cartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode cart response: %v body=%s", err, body)
	}
	return resp
}

func TestCartFlow_AddIncrementDecrement(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cart := newStubCartService()
	router, err := buildRouter(logDiscard(), nil, testDeps(cart, nil))
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/cart/items", `{"productId":"p1"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	resp := decodeCart(t, rec.Body.Bytes())
	if len(resp.Items) != 1 || resp.Items[0].DisplayQuantity != 1 {
		t.Fatalf("unexpected cart after add: %+v", resp.Items)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/cart/items/p1/increment", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("increment: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	resp = decodeCart(t, rec.Body.Bytes())
	if resp.Items[0].DisplayQuantity != 2 {
		t.Fatalf("expected quantity 2, got %d", resp.Items[0].DisplayQuantity)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/cart/items/p1/decrement", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("decrement: expected 200, got %d", rec.Code)
	}
	resp = decodeCart(t, rec.Body.Bytes())
	if resp.Items[0].DisplayQuantity != 1 {
		t.Fatalf("expected quantity 1, got %d", resp.Items[0].DisplayQuantity)
	}

	// Decrement at 1 deletes the line; no zero-quantity row shows up.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/cart/items/p1/decrement", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("final decrement: expected 200, got %d", rec.Code)
	}
	resp = decodeCart(t, rec.Body.Bytes())
	if len(resp.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", resp.Items)
	}
}

func TestCart_RequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, testDeps(nil, nil))
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAddToCart_RemoteFailureReturnsNotice(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cart := newStubCartService()
	cart.addErr = errors.New("connection reset")
	router, err := buildRouter(logDiscard(), nil, testDeps(cart, nil))
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/cart/items", `{"productId":"p1"}`))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d body=%s", rec.Code, rec.Body.String())
	}
	resp := decodeCart(t, rec.Body.Bytes())
	if resp.Notice != "Could not update cart" {
		t.Fatalf("expected rollback notice, got %q", resp.Notice)
	}
	if len(resp.Items) != 0 {
		t.Fatalf("expected rolled-back empty cart, got %+v", resp.Items)
	}
}

func TestRemoveLine_UnknownLine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, testDeps(nil, nil))
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/cart/lines/nope", ""))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCartTotals(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cart := newStubCartService()
	cart.items["u1"] = []domain.CartItem{
		{CartLine: domain.CartLine{ID: "l1", UserID: "u1", ProductID: "p1", Quantity: 2}, Title: "Lipstick", Price: "GH₵25.00"},
	}
	router, err := buildRouter(logDiscard(), nil, testDeps(cart, nil))
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/cart/totals", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{`"subtotal":"50.00"`, `"tax":"4.00"`, `"shipping":"15"`, `"total":"69.00"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %s: %s", want, body)
		}
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps(nil, func(d *Deps) {
		d.CheckoutSvc = &stubCheckoutService{placeErr: checkout.ErrEmptyCart}
	})
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/checkout", ""))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}
