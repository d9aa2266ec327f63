package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/karloviurii-cpu/restockhub-mvp/internal/db"
	"github.com/karloviurii-cpu/restockhub-mvp/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Signup handles POST /api-auth/signup
func (h *Handler) Signup(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	// Every account needs at least one marketplace capability; admin is
	// never self-grantable.
	if !req.IsRestaurant && !req.IsSupplier {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Account must be a restaurant, a supplier, or both"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	user, err := h.db.CreateUser(ctx, req, string(hash))
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Username '%s' is already taken", req.Username)})
			return
		}
		log.Printf("Failed to create user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	token, err := generateJWTToken(user)
	if err != nil {
		log.Printf("Failed to generate token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusCreated, models.AuthResponse{Token: token, User: *user})
}

// Login handles POST /api-auth/login
func (h *Handler) Login(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.db.GetUserByUsername(ctx, req.Username)
	if err != nil {
		// Same response for unknown user and wrong password
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := generateJWTToken(user)
	if err != nil {
		log.Printf("Failed to generate token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{Token: token, User: *user})
}

// Logout handles POST /api-auth/logout. Tokens are stateless; the client
// discards its copy and short expirations bound the remaining validity.
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, models.SuccessResponse{Message: "Logged out"})
}

// Me handles GET /api-auth/me
func (h *Handler) Me(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.db.GetUserByID(ctx, CallerID(c))
	if err != nil {
		respondDBError(c, err, "Failed to load account")
		return
	}
	c.JSON(http.StatusOK, user)
}

// generateJWTToken creates an HS256 token carrying the capability flags
func generateJWTToken(user *models.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	expirationMinutes := 30
	if expStr := os.Getenv("JWT_EXPIRATION_MINUTES"); expStr != "" {
		if exp, err := strconv.Atoi(expStr); err == nil {
			expirationMinutes = exp
		}
	}

	claims := jwt.MapClaims{
		"user_id":       user.ID,
		"username":      user.Username,
		"is_restaurant": user.IsRestaurant,
		"is_supplier":   user.IsSupplier,
		"is_admin":      user.IsAdmin,
		"exp":           time.Now().Add(time.Minute * time.Duration(expirationMinutes)).Unix(),
		"iat":           time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
