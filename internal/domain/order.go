package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses as persisted.
const (
	OrderStatusPending   = "pending"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order is a placed order with its line snapshots and the totals that were
// in effect at checkout time.
type Order struct {
	ID          string          `json:"id"`
	UserID      string          `json:"-"`
	Items       []OrderItem     `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Shipping    decimal.Decimal `json:"shipping"`
	Tax         decimal.Decimal `json:"tax"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// OrderItem freezes the product display fields and quantity of one cart
// line at the moment the order was placed.
type OrderItem struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
}
