package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Schema handles GET /api/schema, serving the OpenAPI 3 description of
// the service.
func (h *Handler) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, openAPISchema())
}

// Docs handles GET /api/docs, serving an interactive Swagger UI page
// backed by /api/schema.
func (h *Handler) Docs(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerPage))
}

const swaggerPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>RestockHub API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({url: "/api/schema", dom_id: "#swagger-ui"});
  </script>
</body>
</html>`

func openAPISchema() gin.H {
	bearer := []gin.H{{"bearerAuth": []string{}}}

	collection := func(tag, summary string, secured bool) gin.H {
		ops := gin.H{
			"get":  gin.H{"tags": []string{tag}, "summary": "List " + summary, "responses": listResponses()},
			"post": gin.H{"tags": []string{tag}, "summary": "Create " + summary, "security": bearer, "responses": createResponses()},
		}
		if secured {
			ops["get"].(gin.H)["security"] = bearer
		}
		return ops
	}
	item := func(tag, summary string, patch bool) gin.H {
		ops := gin.H{
			"get":    gin.H{"tags": []string{tag}, "summary": "Retrieve " + summary, "responses": itemResponses()},
			"delete": gin.H{"tags": []string{tag}, "summary": "Delete " + summary, "security": bearer, "responses": itemResponses()},
			"parameters": []gin.H{{
				"name": "id", "in": "path", "required": true,
				"schema": gin.H{"type": "integer"},
			}},
		}
		if patch {
			ops["patch"] = gin.H{"tags": []string{tag}, "summary": "Update " + summary, "security": bearer, "responses": itemResponses()}
		}
		return ops
	}

	return gin.H{
		"openapi": "3.0.3",
		"info": gin.H{
			"title":       "RestockHub API",
			"description": "Marketplace connecting restaurants with suppliers and farmers.",
			"version":     "1.0.0",
		},
		"components": gin.H{
			"securitySchemes": gin.H{
				"bearerAuth": gin.H{"type": "http", "scheme": "bearer", "bearerFormat": "JWT"},
			},
		},
		"paths": gin.H{
			"/api-auth/signup": gin.H{"post": gin.H{"tags": []string{"auth"}, "summary": "Register an account", "responses": createResponses()}},
			"/api-auth/login":  gin.H{"post": gin.H{"tags": []string{"auth"}, "summary": "Obtain a JWT", "responses": itemResponses()}},
			"/api-auth/logout": gin.H{"post": gin.H{"tags": []string{"auth"}, "summary": "Log out", "responses": itemResponses()}},
			"/api-auth/me":     gin.H{"get": gin.H{"tags": []string{"auth"}, "summary": "Current account", "security": bearer, "responses": itemResponses()}},

			"/api/restaurants":      collection("profiles", "restaurant profiles", false),
			"/api/restaurants/{id}": item("profiles", "a restaurant profile", false),
			"/api/suppliers":        collection("profiles", "supplier profiles", false),
			"/api/suppliers/{id}":   item("profiles", "a supplier profile", false),

			"/api/products":            collection("products", "products", false),
			"/api/products/{id}":       item("products", "a product", true),
			"/api/products/{id}/media": gin.H{"post": gin.H{"tags": []string{"products"}, "summary": "Upload product media", "security": bearer, "responses": createResponses()}},

			"/api/orders":      collection("orders", "orders", true),
			"/api/orders/{id}": item("orders", "an order", true),

			"/api/offers":      collection("offers", "offers", true),
			"/api/offers/{id}": item("offers", "an offer", false),

			"/api/preorders":      collection("preorders", "pre-orders", true),
			"/api/preorders/{id}": item("preorders", "a pre-order", true),

			"/api/calendar":      collection("calendar", "calendar events", true),
			"/api/calendar/{id}": item("calendar", "a calendar event", true),

			"/api/reviews":      collection("reviews", "reviews", false),
			"/api/reviews/{id}": item("reviews", "a review", false),

			"/api/waitlist":      collection("waitlist", "waitlist entries", true),
			"/api/waitlist/{id}": item("waitlist", "a waitlist entry", true),

			"/api/favorites":      collection("favorites", "favorite partners", true),
			"/api/favorites/{id}": item("favorites", "a favorite partner", false),

			"/api/plans":              collection("subscriptions", "subscription plans", false),
			"/api/plans/{id}":         gin.H{"get": gin.H{"tags": []string{"subscriptions"}, "summary": "Retrieve a plan", "responses": itemResponses()}, "parameters": []gin.H{{"name": "id", "in": "path", "required": true, "schema": gin.H{"type": "integer"}}}},
			"/api/subscriptions":      collection("subscriptions", "subscriptions", true),
			"/api/subscriptions/{id}": item("subscriptions", "a subscription", false),

			"/health": gin.H{"get": gin.H{"tags": []string{"ops"}, "summary": "Readiness check", "responses": itemResponses()}},
		},
	}
}

func listResponses() gin.H {
	return gin.H{"200": gin.H{"description": "OK"}}
}

func createResponses() gin.H {
	return gin.H{"201": gin.H{"description": "Created"}, "400": gin.H{"description": "Validation error"}}
}

func itemResponses() gin.H {
	return gin.H{"200": gin.H{"description": "OK"}, "404": gin.H{"description": "Not found"}}
}
