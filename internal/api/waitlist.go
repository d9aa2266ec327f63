package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karloviurii-cpu/restockhub-mvp/internal/db"
	"github.com/karloviurii-cpu/restockhub-mvp/internal/models"
)

// GetWaitlist handles GET /api/waitlist. Restaurants see their own
// entries; suppliers and admins can filter across all of them.
func (h *Handler) GetWaitlist(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	productID, ok := intQuery(c, "product")
	if !ok {
		return
	}
	notified, ok := boolQuery(c, "notified")
	if !ok {
		return
	}

	filter := db.WaitlistFilter{ProductID: productID, Notified: notified}
	if !IsAdmin(c) && !hasFlag(c, "is_supplier") {
		profile, err := h.db.GetRestaurantProfileByUserID(ctx, CallerID(c))
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "No restaurant profile for this account"})
			return
		}
		filter.RestaurantID = &profile.ID
	} else if explicit, ok := intQuery(c, "restaurant"); !ok {
		return
	} else if explicit != nil {
		filter.RestaurantID = explicit
	}

	entries, err := h.db.ListWaitlist(ctx, filter)
	if err != nil {
		log.Printf("Error querying waitlist: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch waitlist"})
		return
	}
	if entries == nil {
		entries = []models.ProductWaitlist{}
	}
	c.JSON(http.StatusOK, entries)
}

// GetWaitlistEntry handles GET /api/waitlist/:id
func (h *Handler) GetWaitlistEntry(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}
	entry, err := h.db.GetWaitlistEntry(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch waitlist entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// CreateWaitlistEntry handles POST /api/waitlist. The entry is always
// attached to the caller's restaurant profile.
func (h *Handler) CreateWaitlistEntry(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var req models.CreateWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	restaurant, err := h.restaurantForCaller(c, ctx, req.RestaurantID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No restaurant profile for this account"})
		return
	}

	entry, err := h.db.CreateWaitlistEntry(ctx, restaurant.ID, req)
	if err != nil {
		log.Printf("Failed to create waitlist entry: %v", err)
		respondDBError(c, err, "Failed to create waitlist entry")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// UpdateWaitlistEntry handles PATCH /api/waitlist/:id. Only the notified
// flag can change, after an availability alert has gone out.
func (h *Handler) UpdateWaitlistEntry(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}

	var req models.UpdateWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if req.Notified == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No updatable fields provided"})
		return
	}

	if err := h.db.MarkWaitlistNotified(ctx, id, *req.Notified); err != nil {
		respondDBError(c, err, "Failed to update waitlist entry")
		return
	}

	entry, err := h.db.GetWaitlistEntry(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch waitlist entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteWaitlistEntry handles DELETE /api/waitlist/:id
func (h *Handler) DeleteWaitlistEntry(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}

	entry, err := h.db.GetWaitlistEntry(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch waitlist entry")
		return
	}
	if !IsAdmin(c) {
		profile, err := h.db.GetRestaurantProfileByUserID(ctx, CallerID(c))
		if err != nil || entry.RestaurantID != profile.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to delete this waitlist entry"})
			return
		}
	}

	if err := h.db.DeleteWaitlistEntry(ctx, id); err != nil {
		respondDBError(c, err, "Failed to delete waitlist entry")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Message: "Waitlist entry deleted"})
}
