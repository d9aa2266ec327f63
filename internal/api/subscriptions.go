package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karloviurii-cpu/restockhub-mvp/internal/models"
)

// GetPlans handles GET /api/plans. The plan catalog is public.
func (h *Handler) GetPlans(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	plans, err := h.db.ListPlans(ctx)
	if err != nil {
		log.Printf("Error querying plans: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plans"})
		return
	}
	if plans == nil {
		plans = []models.SubscriptionPlan{}
	}
	c.JSON(http.StatusOK, plans)
}

// GetPlan handles GET /api/plans/:id
func (h *Handler) GetPlan(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}
	plan, err := h.db.GetPlan(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// CreatePlan handles POST /api/plans (admin only)
func (h *Handler) CreatePlan(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var req models.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	plan, err := h.db.CreatePlan(ctx, req)
	if err != nil {
		log.Printf("Failed to create plan: %v", err)
		respondDBError(c, err, "Failed to create plan")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// GetSubscriptions handles GET /api/subscriptions. Non-admin callers
// only ever see their own subscriptions.
func (h *Handler) GetSubscriptions(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	userID := CallerID(c)
	if IsAdmin(c) {
		if explicit := c.Query("user"); explicit != "" {
			userID = explicit
		} else {
			userID = ""
		}
	}

	subscriptions, err := h.db.ListSubscriptions(ctx, userID)
	if err != nil {
		log.Printf("Error querying subscriptions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscriptions"})
		return
	}
	if subscriptions == nil {
		subscriptions = []models.UserSubscription{}
	}
	c.JSON(http.StatusOK, subscriptions)
}

// GetSubscription handles GET /api/subscriptions/:id
func (h *Handler) GetSubscription(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}
	subscription, err := h.db.GetSubscription(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch subscription")
		return
	}
	if !IsAdmin(c) && subscription.UserID != CallerID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view this subscription"})
		return
	}
	c.JSON(http.StatusOK, subscription)
}

// CreateSubscription handles POST /api/subscriptions, enrolling the
// caller in a plan starting today.
func (h *Handler) CreateSubscription(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var req models.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if _, err := h.db.GetPlan(ctx, req.PlanID); err != nil {
		respondDBError(c, err, "Failed to fetch plan")
		return
	}

	var endDate *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		t, err := parseDate(*req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date, expected YYYY-MM-DD"})
			return
		}
		endDate = &t
	}

	subscription, err := h.db.CreateSubscription(ctx, CallerID(c), req.PlanID, endDate)
	if err != nil {
		log.Printf("Failed to create subscription: %v", err)
		respondDBError(c, err, "Failed to create subscription")
		return
	}
	c.JSON(http.StatusCreated, subscription)
}

// CancelSubscription handles DELETE /api/subscriptions/:id. Cancelling
// deactivates the subscription and closes its window rather than
// removing the row.
func (h *Handler) CancelSubscription(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}

	subscription, err := h.db.GetSubscription(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch subscription")
		return
	}
	if !IsAdmin(c) && subscription.UserID != CallerID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to cancel this subscription"})
		return
	}

	if err := h.db.CancelSubscription(ctx, id); err != nil {
		respondDBError(c, err, "Failed to cancel subscription")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Message: "Subscription cancelled"})
}
