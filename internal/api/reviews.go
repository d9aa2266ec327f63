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

// GetReviews handles GET /api/reviews
func (h *Handler) GetReviews(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	reviews, err := h.db.ListReviews(ctx, db.ReviewFilter{
		TargetID: c.Query("target"),
		Ordering: c.Query("ordering"),
	})
	if err != nil {
		log.Printf("Error querying reviews: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	c.JSON(http.StatusOK, reviews)
}

// GetReview handles GET /api/reviews/:id
func (h *Handler) GetReview(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}
	review, err := h.db.GetReview(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch review")
		return
	}
	c.JSON(http.StatusOK, review)
}

// CreateReview handles POST /api/reviews. The reviewer is always the
// authenticated caller.
func (h *Handler) CreateReview(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	reviewerID := CallerID(c)
	if req.TargetID == reviewerID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot review yourself"})
		return
	}

	review, err := h.db.CreateReview(ctx, reviewerID, req)
	if err != nil {
		log.Printf("Failed to create review: %v", err)
		respondDBError(c, err, "Failed to create review")
		return
	}
	c.JSON(http.StatusCreated, review)
}

// DeleteReview handles DELETE /api/reviews/:id. Only the author or an
// admin may remove a review.
func (h *Handler) DeleteReview(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}
	review, err := h.db.GetReview(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch review")
		return
	}
	if !IsAdmin(c) && review.ReviewerID != CallerID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to delete this review"})
		return
	}
	if err := h.db.DeleteReview(ctx, id); err != nil {
		respondDBError(c, err, "Failed to delete review")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Message: "Review deleted"})
}
