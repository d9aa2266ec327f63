package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karloviurii-cpu/restockhub-mvp/internal/models"
)

// GetOrders handles GET /api/orders. Restaurants see their own orders;
// suppliers and admins see all open demand.
func (h *Handler) GetOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var restaurantID *int
	if !IsAdmin(c) && !hasFlag(c, "is_supplier") {
		profile, err := h.db.GetRestaurantProfileByUserID(ctx, CallerID(c))
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "No restaurant profile for this account"})
			return
		}
		restaurantID = &profile.ID
	} else if explicit, ok := intQuery(c, "restaurant"); !ok {
		return
	} else if explicit != nil {
		restaurantID = explicit
	}

	orders, err := h.db.ListOrders(ctx, restaurantID)
	if err != nil {
		log.Printf("Error querying orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}
	order, err := h.db.GetOrder(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// CreateOrder handles POST /api/orders. The order and all its line items
// are created in a single transaction; unit prices are snapshotted from
// the products at this moment.
func (h *Handler) CreateOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	deliveryDate, err := parseDate(req.DeliveryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery_date, expected YYYY-MM-DD"})
		return
	}

	restaurant, err := h.restaurantForCaller(c, ctx, req.RestaurantID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No restaurant profile for this account"})
		return
	}

	order, err := h.db.CreateOrder(ctx, restaurant.ID, deliveryDate, req.Items)
	if err != nil {
		log.Printf("Failed to create order: %v", err)
		respondDBError(c, err, "Failed to create order")
		return
	}
	c.JSON(http.StatusCreated, order)
}

// checkOrderOwnership loads the order and verifies the caller may write it
func (h *Handler) checkOrderOwnership(c *gin.Context, ctx context.Context, orderID int) (*models.Order, bool) {
	order, err := h.db.GetOrder(ctx, orderID)
	if err != nil {
		respondDBError(c, err, "Failed to fetch order")
		return nil, false
	}
	if IsAdmin(c) {
		return order, true
	}
	profile, err := h.db.GetRestaurantProfileByUserID(ctx, CallerID(c))
	if err != nil || profile.ID != order.RestaurantID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Order belongs to another restaurant"})
		return nil, false
	}
	return order, true
}

// UpdateOrder handles PATCH /api/orders/:id. Status changes must follow
// the order lifecycle; out-of-sequence moves are rejected.
func (h *Handler) UpdateOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}

	var req models.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	order, ok := h.checkOrderOwnership(c, ctx, id)
	if !ok {
		return
	}

	if req.Status != nil {
		if !req.Status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
			return
		}
		if !order.Status.CanTransitionTo(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid status transition from " + string(order.Status) + " to " + string(*req.Status),
			})
			return
		}
		if err := h.db.UpdateOrderStatus(ctx, id, *req.Status); err != nil {
			respondDBError(c, err, "Failed to update order")
			return
		}
	}

	if req.DeliveryDate != nil {
		deliveryDate, err := parseDate(*req.DeliveryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery_date, expected YYYY-MM-DD"})
			return
		}
		if err := h.db.UpdateOrderDeliveryDate(ctx, id, deliveryDate); err != nil {
			respondDBError(c, err, "Failed to update order")
			return
		}
	}

	updated, err := h.db.GetOrder(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch order")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteOrder handles DELETE /api/orders/:id
func (h *Handler) DeleteOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, ok := h.checkOrderOwnership(c, ctx, id); !ok {
		return
	}

	if err := h.db.DeleteOrder(ctx, id); err != nil {
		respondDBError(c, err, "Failed to delete order")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Message: "Order deleted"})
}
