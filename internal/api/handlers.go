package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karloviurii-cpu/restockhub-mvp/internal/db"
	"github.com/karloviurii-cpu/restockhub-mvp/internal/models"
)

// Handler holds the database connection and provides HTTP handlers
type Handler struct {
	db *db.Database
}

// NewHandler creates a new handler instance
func NewHandler(database *db.Database) *Handler {
	return &Handler{db: database}
}

// Health reports readiness, including database reachability
func (h *Handler) Health(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "Database not initialized",
			Message: "Service starting up; DB unavailable",
		})
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.db.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "Database connection failed",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "restockhub",
		"timestamp": time.Now().UTC(),
	})
}

const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD request field
func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// idParam extracts and validates the numeric :id path segment
func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id format"})
		return 0, false
	}
	return id, true
}

// idFromParam extracts a named numeric path segment
func idFromParam(c *gin.Context, name string) (int, error) {
	return strconv.Atoi(c.Param(name))
}

// boolQuery parses an optional boolean query parameter
func boolQuery(c *gin.Context, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return nil, false
	}
	return &v, true
}

// intQuery parses an optional integer query parameter
func intQuery(c *gin.Context, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return nil, false
	}
	return &v, true
}

// respondDBError translates db sentinel errors into the API error taxonomy
func respondDBError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, db.ErrProtected):
		c.JSON(http.StatusConflict, gin.H{"error": "Row is referenced by other records"})
	case errors.Is(err, db.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "Duplicate entry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// restaurantForCaller resolves the caller's restaurant profile. Admins may
// act on behalf of any restaurant by passing an explicit id.
func (h *Handler) restaurantForCaller(c *gin.Context, ctx context.Context, explicitID int) (*models.RestaurantProfile, error) {
	if explicitID != 0 && IsAdmin(c) {
		return h.db.GetRestaurantProfile(ctx, explicitID)
	}
	return h.db.GetRestaurantProfileByUserID(ctx, CallerID(c))
}

// supplierForCaller resolves the caller's supplier profile, with the same
// admin override as restaurantForCaller.
func (h *Handler) supplierForCaller(c *gin.Context, ctx context.Context, explicitID int) (*models.SupplierProfile, error) {
	if explicitID != 0 && IsAdmin(c) {
		return h.db.GetSupplierProfile(ctx, explicitID)
	}
	return h.db.GetSupplierProfileByUserID(ctx, CallerID(c))
}
