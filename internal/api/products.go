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

// GetProducts handles GET /api/products (public)
func (h *Handler) GetProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	verified, ok := boolQuery(c, "supplier_verified")
	if !ok {
		return
	}
	farmer, ok := boolQuery(c, "supplier_is_farmer")
	if !ok {
		return
	}

	filter := db.ProductFilter{
		Category:         c.Query("category"),
		SupplierVerified: verified,
		SupplierFarmer:   farmer,
		Search:           c.Query("search"),
		Ordering:         c.Query("ordering"),
	}

	products, err := h.db.ListProducts(ctx, filter)
	if err != nil {
		log.Printf("Error querying products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /api/products/:id (public)
func (h *Handler) GetProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}
	product, err := h.db.GetProduct(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch product")
		return
	}
	c.JSON(http.StatusOK, product)
}

// parseAvailabilityWindow validates and parses the availability dates.
// The window must not end before it starts.
func parseAvailabilityWindow(from string, to *string) (time.Time, *time.Time, string) {
	availableFrom, err := parseDate(from)
	if err != nil {
		return time.Time{}, nil, "Invalid available_from date, expected YYYY-MM-DD"
	}
	var availableTo *time.Time
	if to != nil && *to != "" {
		t, err := parseDate(*to)
		if err != nil {
			return time.Time{}, nil, "Invalid available_to date, expected YYYY-MM-DD"
		}
		if t.Before(availableFrom) {
			return time.Time{}, nil, "available_to must not precede available_from"
		}
		availableTo = &t
	}
	return availableFrom, availableTo, ""
}

// CreateProduct handles POST /api/products (supplier or admin)
func (h *Handler) CreateProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if req.Currency != "" && !models.Currency(req.Currency).IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported currency"})
		return
	}

	availableFrom, availableTo, msg := parseAvailabilityWindow(req.AvailableFrom, req.AvailableTo)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	supplier, err := h.supplierForCaller(c, ctx, req.SupplierID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No supplier profile for this account"})
		return
	}

	product, err := h.db.CreateProduct(ctx, supplier.ID, req, availableFrom, availableTo)
	if err != nil {
		log.Printf("Failed to create product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// checkProductOwnership loads the product and verifies the caller may write it
func (h *Handler) checkProductOwnership(c *gin.Context, ctx context.Context, productID int) (*models.Product, bool) {
	product, err := h.db.GetProduct(ctx, productID)
	if err != nil {
		respondDBError(c, err, "Failed to fetch product")
		return nil, false
	}
	if IsAdmin(c) {
		return product, true
	}
	supplier, err := h.db.GetSupplierProfileByUserID(ctx, CallerID(c))
	if err != nil || supplier.ID != product.SupplierID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Product belongs to another supplier"})
		return nil, false
	}
	return product, true
}

// UpdateProduct handles PATCH /api/products/:id (owning supplier or admin)
func (h *Handler) UpdateProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if req.Currency != nil && !models.Currency(*req.Currency).IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported currency"})
		return
	}
	// The verified flag is an administratively assigned trust marker
	if req.Verified != nil && !IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins may change verification"})
		return
	}

	current, ok := h.checkProductOwnership(c, ctx, id)
	if !ok {
		return
	}

	// Validate the resulting availability window against current values
	var availableFrom *time.Time
	if req.AvailableFrom != nil {
		t, err := parseDate(*req.AvailableFrom)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid available_from date, expected YYYY-MM-DD"})
			return
		}
		availableFrom = &t
	}
	var availableTo *time.Time
	if req.AvailableTo != nil && *req.AvailableTo != "" {
		t, err := parseDate(*req.AvailableTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid available_to date, expected YYYY-MM-DD"})
			return
		}
		availableTo = &t
	}
	effectiveFrom := current.AvailableFrom
	if availableFrom != nil {
		effectiveFrom = *availableFrom
	}
	effectiveTo := current.AvailableTo
	if req.AvailableTo != nil {
		effectiveTo = availableTo
	}
	if effectiveTo != nil && effectiveTo.Before(effectiveFrom) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "available_to must not precede available_from"})
		return
	}

	if err := h.db.UpdateProduct(ctx, id, req, availableFrom, availableTo); err != nil {
		respondDBError(c, err, "Failed to update product")
		return
	}

	product, err := h.db.GetProduct(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch product")
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/:id. Products referenced by
// order history cannot be removed; their media cascade away on success.
func (h *Handler) DeleteProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, ok := h.checkProductOwnership(c, ctx, id); !ok {
		return
	}

	if err := h.db.DeleteProduct(ctx, id); err != nil {
		respondDBError(c, err, "Failed to delete product")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Message: "Product deleted"})
}
