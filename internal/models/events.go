package models

import "time"

// Event types
const (
	EventTypeOrderCreated         = "ORDER_CREATED"
	EventTypeOrderStatusChanged   = "ORDER_STATUS_CHANGED"
	EventTypePaymentStatusChanged = "PAYMENT_STATUS_CHANGED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCreatedEvent is published when a checkout finalizes an order.
type OrderCreatedEvent struct {
	BaseEvent
	OrderID     int64               `json:"order_id"`
	UserID      int64               `json:"user_id"`
	TotalAmount int64               `json:"total_amount"`
	Items       []OrderLineItemData `json:"items"`
}

// OrderStatusChangedEvent is published after a fulfillment status update.
type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID int64       `json:"order_id"`
	UserID  int64       `json:"user_id"`
	From    OrderStatus `json:"from"`
	To      OrderStatus `json:"to"`
}

// PaymentStatusChangedEvent is published after a payment status update.
type PaymentStatusChangedEvent struct {
	BaseEvent
	OrderID int64         `json:"order_id"`
	UserID  int64         `json:"user_id"`
	Amount  int64         `json:"amount"`
	From    PaymentStatus `json:"from"`
	To      PaymentStatus `json:"to"`
}

// OrderLineItemData represents line item data in events
type OrderLineItemData struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	Price     int64 `json:"price"`
}
