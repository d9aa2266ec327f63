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

// GetCalendarEvents handles GET /api/calendar
func (h *Handler) GetCalendarEvents(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	restaurantID, ok := intQuery(c, "restaurant")
	if !ok {
		return
	}
	supplierID, ok := intQuery(c, "supplier")
	if !ok {
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		date = &t
	}

	events, err := h.db.ListCalendarEvents(ctx, db.CalendarFilter{
		RestaurantID: restaurantID,
		SupplierID:   supplierID,
		EventType:    c.Query("event_type"),
		Status:       c.Query("status"),
		Date:         date,
	})
	if err != nil {
		log.Printf("Error querying calendar events: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch calendar events"})
		return
	}
	if events == nil {
		events = []models.CalendarEvent{}
	}
	c.JSON(http.StatusOK, events)
}

// GetCalendarEvent handles GET /api/calendar/:id
func (h *Handler) GetCalendarEvent(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}
	event, err := h.db.GetCalendarEvent(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch calendar event")
		return
	}
	c.JSON(http.StatusOK, event)
}

// CreateCalendarEvent handles POST /api/calendar. An event references
// exactly one of order/preorder, matching its event_type.
func (h *Handler) CreateCalendarEvent(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var req models.CreateCalendarEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	status := models.EventStatusScheduled
	if req.Status != nil {
		status = models.CalendarEventStatus(*req.Status)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown event status"})
			return
		}
	}

	event := models.CalendarEvent{
		Date:         date,
		RestaurantID: req.RestaurantID,
		SupplierID:   req.SupplierID,
		OrderID:      req.OrderID,
		PreOrderID:   req.PreOrderID,
		EventType:    models.CalendarEventType(req.EventType),
		Status:       status,
	}
	if err := event.ValidateLinks(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.db.CreateCalendarEvent(ctx, event)
	if err != nil {
		log.Printf("Failed to create calendar event: %v", err)
		respondDBError(c, err, "Failed to create calendar event")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateCalendarEvent handles PATCH /api/calendar/:id
func (h *Handler) UpdateCalendarEvent(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}

	var req models.UpdateCalendarEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	event, err := h.db.GetCalendarEvent(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch calendar event")
		return
	}

	if req.Status != nil {
		if !req.Status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown event status"})
			return
		}
		if !event.Status.CanTransitionTo(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid status transition from " + string(event.Status) + " to " + string(*req.Status),
			})
			return
		}
	}

	var date *time.Time
	if req.Date != nil {
		t, err := parseDate(*req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		date = &t
	}

	if err := h.db.UpdateCalendarEvent(ctx, id, date, req.Status); err != nil {
		respondDBError(c, err, "Failed to update calendar event")
		return
	}

	updated, err := h.db.GetCalendarEvent(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch calendar event")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteCalendarEvent handles DELETE /api/calendar/:id
func (h *Handler) DeleteCalendarEvent(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.db.DeleteCalendarEvent(ctx, id); err != nil {
		respondDBError(c, err, "Failed to delete calendar event")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Message: "Calendar event deleted"})
}
