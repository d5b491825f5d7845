package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the enumerated order lifecycle state.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusReturned  OrderStatus = "returned"
)

// orderTransitions encodes the legal lifecycle:
// pending -> confirmed -> shipped -> delivered, cancellation from
// pending/confirmed, returns only after delivery.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusDelivered: {OrderStatusReturned},
	OrderStatusCancelled: {},
	OrderStatusReturned:  {},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo reports whether the lifecycle permits moving from s
// to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentStatus tracks payment settlement independent of fulfilment.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Order is a placed order. A nil UserID means a guest order. The
// shipping address is an embedded snapshot, not a live reference, so
// later address edits never rewrite order history. OrderNumber is
// assigned at creation and never changes.
type Order struct {
	ID                string           `json:"id"`
	UserID            *string          `json:"userId,omitempty"`
	OrderNumber       string           `json:"orderNumber"`
	Status            OrderStatus      `json:"status"`
	Total             decimal.Decimal  `json:"total"`
	Subtotal          decimal.Decimal  `json:"subtotal"`
	Tax               decimal.Decimal  `json:"tax"`
	Shipping          decimal.Decimal  `json:"shipping"`
	Discount          decimal.Decimal  `json:"discount"`
	PaymentMethod     *string          `json:"paymentMethod,omitempty"`
	PaymentStatus     PaymentStatus    `json:"paymentStatus"`
	ShippingAddress   json.RawMessage  `json:"shippingAddress"`
	TrackingNumber    *string          `json:"trackingNumber,omitempty"`
	EstimatedDelivery *time.Time       `json:"estimatedDelivery,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// OrderItem freezes the unit price at purchase time. Price is never
// recomputed from the live product.
type OrderItem struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"orderId"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Size      *string         `json:"size,omitempty"`
	Color     *string         `json:"color,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// OrderItemWithProduct joins an order line with its product record.
type OrderItemWithProduct struct {
	OrderItem
	Product Product `json:"product"`
}

// OrderWithItems is the order detail view.
type OrderWithItems struct {
	Order
	Items []OrderItemWithProduct `json:"items"`
}
