package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karloviurii-cpu/restockhub-mvp/internal/models"
)

// GetPreOrders handles GET /api/preorders
func (h *Handler) GetPreOrders(c *gin.Context) {
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

	preorders, err := h.db.ListPreOrders(ctx, restaurantID)
	if err != nil {
		log.Printf("Error querying preorders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch preorders"})
		return
	}
	if preorders == nil {
		preorders = []models.PreOrder{}
	}
	c.JSON(http.StatusOK, preorders)
}

// GetPreOrder handles GET /api/preorders/:id
func (h *Handler) GetPreOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}
	preorder, err := h.db.GetPreOrder(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch preorder")
		return
	}
	c.JSON(http.StatusOK, preorder)
}

// CreatePreOrder handles POST /api/preorders. Reservations start in the
// "reserved" state.
func (h *Handler) CreatePreOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var req models.CreatePreOrderRequest
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

	preorder, err := h.db.CreatePreOrder(ctx, restaurant.ID, req, deliveryDate)
	if err != nil {
		log.Printf("Failed to create preorder: %v", err)
		respondDBError(c, err, "Failed to create preorder")
		return
	}
	c.JSON(http.StatusCreated, preorder)
}

// UpdatePreOrder handles PATCH /api/preorders/:id with lifecycle checks
func (h *Handler) UpdatePreOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}

	var req models.UpdatePreOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	preorder, err := h.db.GetPreOrder(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch preorder")
		return
	}
	if !IsAdmin(c) {
		profile, err := h.db.GetRestaurantProfileByUserID(ctx, CallerID(c))
		if err != nil || profile.ID != preorder.RestaurantID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Preorder belongs to another restaurant"})
			return
		}
	}

	if req.Status != nil {
		if !req.Status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown preorder status"})
			return
		}
		if !preorder.Status.CanTransitionTo(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid status transition from " + string(preorder.Status) + " to " + string(*req.Status),
			})
			return
		}
	}

	var deliveryDate *time.Time
	if req.DeliveryDate != nil {
		t, err := parseDate(*req.DeliveryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery_date, expected YYYY-MM-DD"})
			return
		}
		deliveryDate = &t
	}

	if err := h.db.UpdatePreOrder(ctx, id, req.Status, req.Quantity, deliveryDate); err != nil {
		respondDBError(c, err, "Failed to update preorder")
		return
	}

	updated, err := h.db.GetPreOrder(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch preorder")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeletePreOrder handles DELETE /api/preorders/:id
func (h *Handler) DeletePreOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}

	preorder, err := h.db.GetPreOrder(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch preorder")
		return
	}
	if !IsAdmin(c) {
		profile, err := h.db.GetRestaurantProfileByUserID(ctx, CallerID(c))
		if err != nil || profile.ID != preorder.RestaurantID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Preorder belongs to another restaurant"})
			return
		}
	}

	if err := h.db.DeletePreOrder(ctx, id); err != nil {
		respondDBError(c, err, "Failed to delete preorder")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Message: "Preorder deleted"})
}
