package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karloviurii-cpu/restockhub-mvp/internal/models"
)

// GetRestaurantProfiles handles GET /api/restaurants
func (h *Handler) GetRestaurantProfiles(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	profiles, err := h.db.ListRestaurantProfiles(ctx)
	if err != nil {
		log.Printf("Error querying restaurant profiles: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch restaurant profiles"})
		return
	}
	if profiles == nil {
		profiles = []models.RestaurantProfile{}
	}
	c.JSON(http.StatusOK, profiles)
}

// GetRestaurantProfile handles GET /api/restaurants/:id
func (h *Handler) GetRestaurantProfile(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}
	profile, err := h.db.GetRestaurantProfile(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch restaurant profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// CreateRestaurantProfile handles POST /api/restaurants. A user gets at
// most one restaurant profile, tied to their account.
func (h *Handler) CreateRestaurantProfile(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if !hasFlag(c, "is_restaurant") && !IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Restaurant capability required"})
		return
	}

	var req models.CreateRestaurantProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if req.PreferredCurrency != "" && !models.Currency(req.PreferredCurrency).IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported currency"})
		return
	}

	profile, err := h.db.CreateRestaurantProfile(ctx, CallerID(c), req)
	if err != nil {
		log.Printf("Failed to create restaurant profile: %v", err)
		respondDBError(c, err, "Failed to create restaurant profile")
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// GetSupplierProfiles handles GET /api/suppliers
func (h *Handler) GetSupplierProfiles(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	profiles, err := h.db.ListSupplierProfiles(ctx)
	if err != nil {
		log.Printf("Error querying supplier profiles: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch supplier profiles"})
		return
	}
	if profiles == nil {
		profiles = []models.SupplierProfile{}
	}
	c.JSON(http.StatusOK, profiles)
}

// GetSupplierProfile handles GET /api/suppliers/:id
func (h *Handler) GetSupplierProfile(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}
	profile, err := h.db.GetSupplierProfile(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch supplier profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// CreateSupplierProfile handles POST /api/suppliers. Farm details are
// only accepted when the profile is flagged as a farmer.
func (h *Handler) CreateSupplierProfile(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if !hasFlag(c, "is_supplier") && !IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Supplier capability required"})
		return
	}

	var req models.CreateSupplierProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if !req.IsFarmer && (req.FarmName != nil || req.OrganicCertified || req.CertificateURL != nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Farm details require is_farmer"})
		return
	}

	profile, err := h.db.CreateSupplierProfile(ctx, CallerID(c), req)
	if err != nil {
		log.Printf("Failed to create supplier profile: %v", err)
		respondDBError(c, err, "Failed to create supplier profile")
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// VerifySupplier handles PATCH /api/suppliers/:id/verify (admin only)
func (h *Handler) VerifySupplier(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}

	var req struct {
		Verified *bool `json:"verified" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.db.SetSupplierVerified(ctx, id, *req.Verified); err != nil {
		respondDBError(c, err, "Failed to update supplier verification")
		return
	}

	profile, err := h.db.GetSupplierProfile(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch supplier profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}
