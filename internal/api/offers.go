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

// GetOffers handles GET /api/offers. Without an explicit ordering, offers
// list best-bid-first: price ascending, ETA breaking ties.
func (h *Handler) GetOffers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	orderID, ok := intQuery(c, "order")
	if !ok {
		return
	}
	supplierID, ok := intQuery(c, "supplier")
	if !ok {
		return
	}

	offers, err := h.db.ListOffers(ctx, db.OfferFilter{
		OrderID:    orderID,
		SupplierID: supplierID,
		Ordering:   c.Query("ordering"),
	})
	if err != nil {
		log.Printf("Error querying offers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch offers"})
		return
	}
	if offers == nil {
		offers = []models.Offer{}
	}
	c.JSON(http.StatusOK, offers)
}

// GetOffer handles GET /api/offers/:id
func (h *Handler) GetOffer(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}
	offer, err := h.db.GetOffer(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch offer")
		return
	}
	c.JSON(http.StatusOK, offer)
}

// CreateOffer handles POST /api/offers (supplier or admin)
func (h *Handler) CreateOffer(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var req models.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	deliveryETA, err := parseDate(req.DeliveryETA)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery_eta, expected YYYY-MM-DD"})
		return
	}

	supplier, err := h.supplierForCaller(c, ctx, req.SupplierID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No supplier profile for this account"})
		return
	}

	offer, err := h.db.CreateOffer(ctx, supplier.ID, req, deliveryETA)
	if err != nil {
		log.Printf("Failed to create offer: %v", err)
		respondDBError(c, err, "Failed to create offer")
		return
	}
	c.JSON(http.StatusCreated, offer)
}

// DeleteOffer handles DELETE /api/offers/:id (owning supplier or admin)
func (h *Handler) DeleteOffer(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}

	offer, err := h.db.GetOffer(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch offer")
		return
	}
	if !IsAdmin(c) {
		supplier, err := h.db.GetSupplierProfileByUserID(ctx, CallerID(c))
		if err != nil || supplier.ID != offer.SupplierID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Offer belongs to another supplier"})
			return
		}
	}

	if err := h.db.DeleteOffer(ctx, id); err != nil {
		respondDBError(c, err, "Failed to delete offer")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Message: "Offer withdrawn"})
}
