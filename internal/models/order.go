package models

import (
	"time"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusAccepted   OrderStatus = "accepted"
	OrderStatusAssembling OrderStatus = "assembling"
	OrderStatusInTransit  OrderStatus = "in_transit"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the order status is one of the known values
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusAssembling,
		OrderStatusInTransit, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo enforces the order lifecycle:
// pending → accepted → assembling → in_transit → delivered, with
// cancellation allowed from any non-terminal state.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if next == OrderStatusCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case OrderStatusPending:
		return next == OrderStatusAccepted
	case OrderStatusAccepted:
		return next == OrderStatusAssembling
	case OrderStatusAssembling:
		return next == OrderStatusInTransit
	case OrderStatusInTransit:
		return next == OrderStatusDelivered
	default:
		return false
	}
}

// Order represents a restaurant's standing request for goods
type Order struct {
	ID           int         `json:"id" db:"id"`
	RestaurantID int         `json:"restaurant" db:"restaurant_id"`
	DeliveryDate time.Time   `json:"delivery_date" db:"delivery_date"`
	Status       OrderStatus `json:"status" db:"status"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	Items        []OrderItem `json:"items"`
}

// TotalSnapshotValue sums quantity × unit_price_snapshot over the items
func (o *Order) TotalSnapshotValue() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Quantity * item.UnitPriceSnapshot
	}
	return total
}

// OrderItem is a line item. The price snapshot is frozen at creation time
// and immune to later product price changes.
type OrderItem struct {
	ID                int     `json:"id" db:"id"`
	OrderID           int     `json:"order_id" db:"order_id"`
	ProductID         int     `json:"product" db:"product_id"`
	Quantity          float64 `json:"quantity" db:"quantity"`
	UnitPriceSnapshot float64 `json:"unit_price_snapshot" db:"unit_price_snapshot"`
}

// CreateOrderRequest represents an order with its nested line items,
// created atomically.
type CreateOrderRequest struct {
	RestaurantID int                      `json:"restaurant"`
	DeliveryDate string                   `json:"delivery_date" binding:"required"` // YYYY-MM-DD
	Items        []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateOrderItemRequest is a line item in an order creation payload
type CreateOrderItemRequest struct {
	ProductID int     `json:"product" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
}

// UpdateOrderRequest represents a partial order update
type UpdateOrderRequest struct {
	DeliveryDate *string      `json:"delivery_date,omitempty"`
	Status       *OrderStatus `json:"status,omitempty"`
}

// Offer is a supplier's priced, time-bound bid against a specific order
type Offer struct {
	ID          int       `json:"id" db:"id"`
	OrderID     int       `json:"order" db:"order_id"`
	SupplierID  int       `json:"supplier" db:"supplier_id"`
	Price       float64   `json:"price" db:"price"`
	DeliveryETA time.Time `json:"delivery_eta" db:"delivery_eta"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CreateOfferRequest represents the payload for bidding on an order
type CreateOfferRequest struct {
	OrderID     int     `json:"order" binding:"required"`
	SupplierID  int     `json:"supplier"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	DeliveryETA string  `json:"delivery_eta" binding:"required"` // YYYY-MM-DD
}
