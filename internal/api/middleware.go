package api

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func setClaims(c *gin.Context, claims jwt.MapClaims) {
	if v, ok := claims["user_id"].(string); ok {
		c.Set("user_id", v)
	}
	if v, ok := claims["username"].(string); ok {
		c.Set("username", v)
	}
	for _, flag := range []string{"is_restaurant", "is_supplier", "is_admin"} {
		if v, ok := claims[flag].(bool); ok {
			c.Set(flag, v)
		}
	}
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET not configured")
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}
	return claims, nil
}

// OptionalAuthMiddleware parses a JWT if present and sets claims into context.
// It never rejects the request; public reads stay public.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			// ignore malformed header in optional mode
			c.Next()
			return
		}
		if claims, err := parseToken(tokenParts[1]); err == nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// AuthMiddleware enforces a valid JWT
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
			c.Abort()
			return
		}
		if os.Getenv("JWT_SECRET") == "" {
			log.Printf("[AuthMiddleware] JWT_SECRET not set")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server not configured"})
			c.Abort()
			return
		}
		claims, err := parseToken(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// SupplierMiddleware requires the supplier capability (or admin) for
// product and offer writes.
func SupplierMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !hasFlag(c, "is_supplier") && !hasFlag(c, "is_admin") {
			c.JSON(http.StatusForbidden, gin.H{"error": "Supplier access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminMiddleware requires the admin capability
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !hasFlag(c, "is_admin") {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func hasFlag(c *gin.Context, flag string) bool {
	v, exists := c.Get(flag)
	if !exists {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IsAdmin returns true if the current context has the admin capability
func IsAdmin(c *gin.Context) bool {
	return hasFlag(c, "is_admin")
}

// CallerID returns the authenticated user id, or empty for anonymous callers
func CallerID(c *gin.Context) string {
	v, exists := c.Get("user_id")
	if !exists {
		return ""
	}
	id, _ := v.(string)
	return id
}
