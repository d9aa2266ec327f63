package models

import (
	"fmt"
	"time"
)

// PreOrderStatus represents the status of a pre-order reservation
type PreOrderStatus string

const (
	PreOrderStatusReserved  PreOrderStatus = "reserved"
	PreOrderStatusConfirmed PreOrderStatus = "confirmed"
	PreOrderStatusFulfilled PreOrderStatus = "fulfilled"
	PreOrderStatusCancelled PreOrderStatus = "cancelled"
)

// IsValid checks if the pre-order status is one of the known values
func (s PreOrderStatus) IsValid() bool {
	switch s {
	case PreOrderStatusReserved, PreOrderStatusConfirmed,
		PreOrderStatusFulfilled, PreOrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed
func (s PreOrderStatus) IsTerminal() bool {
	return s == PreOrderStatusFulfilled || s == PreOrderStatusCancelled
}

// CanTransitionTo enforces reserved → confirmed → fulfilled, with
// cancellation allowed from any non-terminal state.
func (s PreOrderStatus) CanTransitionTo(next PreOrderStatus) bool {
	if next == PreOrderStatusCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case PreOrderStatusReserved:
		return next == PreOrderStatusConfirmed
	case PreOrderStatusConfirmed:
		return next == PreOrderStatusFulfilled
	default:
		return false
	}
}

// PreOrder is a reservation against a product's future availability window
type PreOrder struct {
	ID           int            `json:"id" db:"id"`
	RestaurantID int            `json:"restaurant" db:"restaurant_id"`
	SupplierID   int            `json:"supplier" db:"supplier_id"`
	ProductID    int            `json:"product" db:"product_id"`
	Quantity     float64        `json:"quantity" db:"quantity"`
	DeliveryDate time.Time      `json:"delivery_date" db:"delivery_date"`
	Status       PreOrderStatus `json:"status" db:"status"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

// CreatePreOrderRequest represents the payload for reserving future availability
type CreatePreOrderRequest struct {
	RestaurantID int     `json:"restaurant"`
	SupplierID   int     `json:"supplier" binding:"required"`
	ProductID    int     `json:"product" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"required,gt=0"`
	DeliveryDate string  `json:"delivery_date" binding:"required"` // YYYY-MM-DD
}

// UpdatePreOrderRequest represents a partial pre-order update
type UpdatePreOrderRequest struct {
	DeliveryDate *string         `json:"delivery_date,omitempty"`
	Quantity     *float64        `json:"quantity,omitempty"`
	Status       *PreOrderStatus `json:"status,omitempty"`
}

// CalendarEventType distinguishes order deliveries from pre-order deliveries
type CalendarEventType string

const (
	EventTypeOrder    CalendarEventType = "order"
	EventTypePreOrder CalendarEventType = "preorder"
)

// IsValid checks if the event type is one of the known values
func (t CalendarEventType) IsValid() bool {
	return t == EventTypeOrder || t == EventTypePreOrder
}

// CalendarEventStatus represents the status of a scheduled delivery
type CalendarEventStatus string

const (
	EventStatusScheduled CalendarEventStatus = "scheduled"
	EventStatusCompleted CalendarEventStatus = "completed"
	EventStatusCancelled CalendarEventStatus = "cancelled"
)

// IsValid checks if the event status is one of the known values
func (s CalendarEventStatus) IsValid() bool {
	switch s {
	case EventStatusScheduled, EventStatusCompleted, EventStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo enforces scheduled → completed | cancelled
func (s CalendarEventStatus) CanTransitionTo(next CalendarEventStatus) bool {
	return s == EventStatusScheduled &&
		(next == EventStatusCompleted || next == EventStatusCancelled)
}

// CalendarEvent is a scheduled delivery tied to either an order or a
// pre-order, never both.
type CalendarEvent struct {
	ID           int                 `json:"id" db:"id"`
	Date         time.Time           `json:"date" db:"date"`
	RestaurantID *int                `json:"restaurant,omitempty" db:"restaurant_id"`
	SupplierID   *int                `json:"supplier,omitempty" db:"supplier_id"`
	OrderID      *int                `json:"order,omitempty" db:"order_id"`
	PreOrderID   *int                `json:"preorder,omitempty" db:"preorder_id"`
	EventType    CalendarEventType   `json:"event_type" db:"event_type"`
	Status       CalendarEventStatus `json:"status" db:"status"`
}

// ValidateLinks checks that exactly the reference matching event_type is set
func (e *CalendarEvent) ValidateLinks() error {
	if !e.EventType.IsValid() {
		return fmt.Errorf("invalid event_type %q", e.EventType)
	}
	switch e.EventType {
	case EventTypeOrder:
		if e.OrderID == nil || e.PreOrderID != nil {
			return fmt.Errorf("event_type %q requires order and no preorder", e.EventType)
		}
	case EventTypePreOrder:
		if e.PreOrderID == nil || e.OrderID != nil {
			return fmt.Errorf("event_type %q requires preorder and no order", e.EventType)
		}
	}
	return nil
}

// CreateCalendarEventRequest represents the payload for scheduling a delivery
type CreateCalendarEventRequest struct {
	Date         string  `json:"date" binding:"required"` // YYYY-MM-DD
	RestaurantID *int    `json:"restaurant,omitempty"`
	SupplierID   *int    `json:"supplier,omitempty"`
	OrderID      *int    `json:"order,omitempty"`
	PreOrderID   *int    `json:"preorder,omitempty"`
	EventType    string  `json:"event_type" binding:"required"`
	Status       *string `json:"status,omitempty"`
}

// UpdateCalendarEventRequest represents a partial event update
type UpdateCalendarEventRequest struct {
	Date   *string              `json:"date,omitempty"`
	Status *CalendarEventStatus `json:"status,omitempty"`
}

// Review is a rating one user leaves for another. Either side of a deal can
// review the other.
type Review struct {
	ID         int       `json:"id" db:"id"`
	ReviewerID string    `json:"reviewer" db:"reviewer_id"`
	TargetID   string    `json:"target" db:"target_id"`
	Rating     int       `json:"rating" db:"rating"`
	Comment    string    `json:"comment" db:"comment"`
	ImageURL   *string   `json:"image,omitempty" db:"image_url"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// CreateReviewRequest represents the payload for leaving a review
type CreateReviewRequest struct {
	TargetID string  `json:"target" binding:"required"`
	Rating   int     `json:"rating" binding:"required,min=1,max=5"`
	Comment  string  `json:"comment"`
	ImageURL *string `json:"image,omitempty"`
}

// FavoritePartner is a restaurant's bookmark of a partner account
type FavoritePartner struct {
	ID            int       `json:"id" db:"id"`
	RestaurantID  int       `json:"restaurant" db:"restaurant_id"`
	PartnerUserID string    `json:"partner_user" db:"partner_user_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// CreateFavoriteRequest represents the payload for bookmarking a partner
type CreateFavoriteRequest struct {
	RestaurantID  int    `json:"restaurant"`
	PartnerUserID string `json:"partner_user" binding:"required"`
}

// SubscriptionPlan is a priced feature tier
type SubscriptionPlan struct {
	ID       int                    `json:"id" db:"id"`
	Name     string                 `json:"name" db:"name"`
	Price    float64                `json:"price" db:"price"`
	Features map[string]interface{} `json:"features" db:"features"`
}

// UserSubscription links a user to a plan for an active window. A null
// end_date means open-ended.
type UserSubscription struct {
	ID        int        `json:"id" db:"id"`
	UserID    string     `json:"user" db:"user_id"`
	PlanID    int        `json:"plan" db:"plan_id"`
	StartDate time.Time  `json:"start_date" db:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty" db:"end_date"`
	Active    bool       `json:"active" db:"active"`
}

// CreateSubscriptionRequest represents the payload for subscribing to a plan
type CreateSubscriptionRequest struct {
	PlanID  int     `json:"plan" binding:"required"`
	EndDate *string `json:"end_date,omitempty"` // YYYY-MM-DD
}

// CreatePlanRequest represents the payload for defining a subscription plan
type CreatePlanRequest struct {
	Name     string                 `json:"name" binding:"required"`
	Price    float64                `json:"price"`
	Features map[string]interface{} `json:"features"`
}
