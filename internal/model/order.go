package model

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStore defines persistence operations for orders.
type OrderStore interface {
	// Create stores the order together with its items atomically.
	Create(ctx context.Context, order Order, items []OrderItem) (Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error
	List(ctx context.Context) ([]Order, error)
	ListItems(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error)
}

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ShippingAddress is collected at checkout and stored with the order.
type ShippingAddress struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// Order is a placed order.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem is one line of an order with the price paid.
type OrderItem struct {
	ID              uuid.UUID       `json:"id"`
	OrderID         uuid.UUID       `json:"order_id"`
	ProductID       uuid.UUID       `json:"product_id"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	ProductName     string          `json:"product_name,omitempty"`
	ProductImageURL *string         `json:"product_image_url,omitempty"`
}

// OrderDetails is an order with its items.
type OrderDetails struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}
