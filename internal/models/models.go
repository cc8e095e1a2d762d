package models

import "time"

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentStatus is the payment state of an order, independent of fulfillment.
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// StatusColor is the badge color an admin UI renders for a status.
type StatusColor string

const (
	ColorWarning   StatusColor = "warning"
	ColorInfo      StatusColor = "info"
	ColorSuccess   StatusColor = "success"
	ColorDanger    StatusColor = "danger"
	ColorSecondary StatusColor = "secondary"
)

// Valid reports whether s is one of the persisted status values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Valid reports whether p is one of the persisted payment status values.
func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentStatusUnpaid, PaymentStatusPaid:
		return true
	}
	return false
}

// Color maps a status to its badge color. The default arm is unreachable for
// rows that satisfy the status invariant.
func (s OrderStatus) Color() StatusColor {
	switch s {
	case OrderStatusPending:
		return ColorWarning
	case OrderStatusProcessing:
		return ColorInfo
	case OrderStatusCompleted:
		return ColorSuccess
	case OrderStatusCancelled:
		return ColorDanger
	default:
		return ColorSecondary
	}
}

// User is a purchaser identity. The core only reads it.
type User struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// UserRef is the minimal user projection attached to orders.
type UserRef struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}

// Product is a catalog item. Prices are fixed-point cents.
type Product struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Price       int64     `db:"price" json:"price"`
	Category    string    `db:"category" json:"category"`
	Image       string    `db:"image" json:"image"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ProductRef is the minimal product projection attached to line items.
type ProductRef struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Price int64  `db:"price" json:"price"`
}

// Order is one customer purchase transaction. TotalAmount is cents.
type Order struct {
	ID              int64         `db:"id" json:"id"`
	UserID          int64         `db:"user_id" json:"user_id"`
	TotalAmount     int64         `db:"total_amount" json:"total_amount"`
	Status          OrderStatus   `db:"status" json:"status"`
	PaymentStatus   PaymentStatus `db:"payment_status" json:"payment_status"`
	ShippingAddress string        `db:"shipping_address" json:"shipping_address"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`

	// Populated only when the basic-relations shape is requested.
	User  *UserRef        `db:"-" json:"user,omitempty"`
	Items []OrderLineItem `db:"-" json:"items,omitempty"`
}

// StatusColor returns the badge color for the order's current status.
func (o *Order) StatusColor() StatusColor {
	return o.Status.Color()
}

// OrderLineItem joins an order to a product. Price is the product price
// snapshot taken at order time; it never tracks the live product price.
type OrderLineItem struct {
	ID        int64 `db:"id" json:"id"`
	OrderID   int64 `db:"order_id" json:"order_id"`
	ProductID int64 `db:"product_id" json:"product_id"`
	Quantity  int   `db:"quantity" json:"quantity"`
	Price     int64 `db:"price" json:"price"`

	Product *ProductRef `db:"-" json:"product,omitempty"`
}

// ChatMessage is one persisted customer-support message. Clients poll for
// rows newer than the last id they saw.
type ChatMessage struct {
	ID        int64      `db:"id" json:"id"`
	UserID    int64      `db:"user_id" json:"user_id"`
	AdminID   *int64     `db:"admin_id" json:"admin_id,omitempty"`
	Body      string     `db:"body" json:"body"`
	FromAdmin bool       `db:"from_admin" json:"from_admin"`
	ReadAt    *time.Time `db:"read_at" json:"read_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// Notification is one admin feed entry.
type Notification struct {
	ID        int64      `db:"id" json:"id"`
	AdminID   int64      `db:"admin_id" json:"admin_id"`
	Kind      string     `db:"kind" json:"kind"`
	Body      string     `db:"body" json:"body"`
	OrderID   *int64     `db:"order_id" json:"order_id,omitempty"`
	ReadAt    *time.Time `db:"read_at" json:"read_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// Notification kinds
const (
	NotificationOrderPlaced   = "order_placed"
	NotificationStatusChanged = "status_changed"
	NotificationOrderPaid     = "order_paid"
)
