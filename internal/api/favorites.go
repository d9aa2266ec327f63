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

// GetFavorites handles GET /api/favorites. Restaurants see their own
// bookmarks; admins may filter by restaurant or partner.
func (h *Handler) GetFavorites(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	filter := db.FavoriteFilter{PartnerUserID: c.Query("partner")}
	if !IsAdmin(c) {
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

	favorites, err := h.db.ListFavorites(ctx, filter)
	if err != nil {
		log.Printf("Error querying favorites: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}
	if favorites == nil {
		favorites = []models.FavoritePartner{}
	}
	c.JSON(http.StatusOK, favorites)
}

// GetFavorite handles GET /api/favorites/:id
func (h *Handler) GetFavorite(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}
	favorite, err := h.db.GetFavorite(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch favorite")
		return
	}
	c.JSON(http.StatusOK, favorite)
}

// CreateFavorite handles POST /api/favorites. Bookmarking the same
// partner twice returns a conflict.
func (h *Handler) CreateFavorite(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var req models.CreateFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	restaurant, err := h.restaurantForCaller(c, ctx, req.RestaurantID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No restaurant profile for this account"})
		return
	}

	favorite, err := h.db.CreateFavorite(ctx, restaurant.ID, req.PartnerUserID)
	if err != nil {
		log.Printf("Failed to create favorite: %v", err)
		respondDBError(c, err, "Failed to create favorite")
		return
	}
	c.JSON(http.StatusCreated, favorite)
}

// DeleteFavorite handles DELETE /api/favorites/:id
func (h *Handler) DeleteFavorite(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, ok := idParam(c)
	if !ok {
		return
	}

	favorite, err := h.db.GetFavorite(ctx, id)
	if err != nil {
		respondDBError(c, err, "Failed to fetch favorite")
		return
	}
	if !IsAdmin(c) {
		profile, err := h.db.GetRestaurantProfileByUserID(ctx, CallerID(c))
		if err != nil || favorite.RestaurantID != profile.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to delete this favorite"})
			return
		}
	}

	if err := h.db.DeleteFavorite(ctx, id); err != nil {
		respondDBError(c, err, "Failed to delete favorite")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Message: "Favorite deleted"})
}
