package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

// Order lifecycle states. An order is created as pending and moves to
// confirmed on explicit confirmation; the remaining transitions are driven by
// fulfilment.
const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is an immutable snapshot created once at checkout submission.
// Items, totals and the selected address/delivery/payment entries are copies
// taken at creation time, not live references.
type Order struct {
	ID                uuid.UUID      `json:"id"`
	OrderNumber       string         `json:"orderNumber"`
	Items             []LineItem     `json:"items"`
	Subtotal          float64        `json:"subtotal"`
	Tax               float64        `json:"tax"`
	DeliveryFee       float64        `json:"deliveryFee"`
	Discount          float64        `json:"discount"`
	Total             float64        `json:"total"`
	Address           Address        `json:"address"`
	DeliveryMethod    DeliveryMethod `json:"deliveryMethod"`
	PaymentMethod     PaymentMethod  `json:"paymentMethod"`
	PromoCode         *string        `json:"promoCode,omitempty"`
	Status            OrderStatus    `json:"status"`
	EstimatedDelivery time.Time      `json:"estimatedDelivery"`
	CreatedAt         time.Time      `json:"createdAt"`
}

// SessionRequest represents the request payload for opening a checkout session.
type SessionRequest struct {
	CustomerID string     `json:"customerId"`
	Items      []LineItem `json:"items"`
	PromoCode  *string    `json:"promoCode,omitempty"`
}

// SelectionRequest represents the request payload for a checkout selection.
type SelectionRequest struct {
	ID string `json:"id"`
}
