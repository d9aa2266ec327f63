package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/karloviurii-cpu/restockhub-mvp/internal/api"
	"github.com/karloviurii-cpu/restockhub-mvp/internal/db"
	"github.com/karloviurii-cpu/restockhub-mvp/internal/logging"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.SetOutput(os.Stdout)
	log.Printf("RestockHub starting (GIT_SHA=%s BUILD_TIME=%s)", os.Getenv("GIT_SHA"), os.Getenv("BUILD_TIME"))

	// Initialize database connection (non-fatal; allow process to start for /live)
	database, err := db.NewDatabaseWithRetry(5, 3*time.Second)
	if err != nil {
		log.Printf("[WARN] Database initialization failed at startup: %v", err)
	}
	if database != nil {
		defer database.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := database.InitSchema(ctx); err != nil {
			log.Printf("[WARN] Schema initialization failed: %v", err)
		}
		cancel()
	}

	handler := api.NewHandler(database)
	router := setupRouter(handler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := router.Run(":" + port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}

func setupRouter(handler *api.Handler) *gin.Engine {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(logging.JSONLogger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Serve uploaded files for local development
	router.Static("/uploads", "./uploads")

	// Health and readiness endpoints
	router.GET("/live", func(c *gin.Context) { c.Status(200) })
	router.GET("/ready", handler.Health)
	router.GET("/health", handler.Health)

	// Session-style auth endpoints
	auth := router.Group("/api-auth")
	{
		auth.POST("/signup", handler.Signup)
		auth.POST("/login", handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", api.AuthMiddleware(), handler.Me)
	}

	v1 := router.Group("/api")
	{
		// Parse JWT if present to expose role info for read endpoints
		v1.Use(api.OptionalAuthMiddleware())

		// API documentation (public)
		v1.GET("/schema", handler.Schema)
		v1.GET("/docs", handler.Docs)

		// Catalog reads (public)
		v1.GET("/products", handler.GetProducts)
		v1.GET("/products/:id", handler.GetProduct)
		v1.GET("/restaurants", handler.GetRestaurantProfiles)
		v1.GET("/restaurants/:id", handler.GetRestaurantProfile)
		v1.GET("/suppliers", handler.GetSupplierProfiles)
		v1.GET("/suppliers/:id", handler.GetSupplierProfile)
		v1.GET("/reviews", handler.GetReviews)
		v1.GET("/reviews/:id", handler.GetReview)
		v1.GET("/plans", handler.GetPlans)
		v1.GET("/plans/:id", handler.GetPlan)

		// Everything below requires a valid token
		authed := v1.Group("")
		authed.Use(api.AuthMiddleware())
		{
			authed.POST("/restaurants", handler.CreateRestaurantProfile)
			authed.POST("/suppliers", handler.CreateSupplierProfile)

			authed.GET("/orders", handler.GetOrders)
			authed.GET("/orders/:id", handler.GetOrder)
			authed.POST("/orders", handler.CreateOrder)
			authed.PATCH("/orders/:id", handler.UpdateOrder)
			authed.DELETE("/orders/:id", handler.DeleteOrder)

			authed.GET("/offers", handler.GetOffers)
			authed.GET("/offers/:id", handler.GetOffer)

			authed.GET("/preorders", handler.GetPreOrders)
			authed.GET("/preorders/:id", handler.GetPreOrder)
			authed.POST("/preorders", handler.CreatePreOrder)
			authed.PATCH("/preorders/:id", handler.UpdatePreOrder)
			authed.DELETE("/preorders/:id", handler.DeletePreOrder)

			authed.GET("/calendar", handler.GetCalendarEvents)
			authed.GET("/calendar/:id", handler.GetCalendarEvent)
			authed.POST("/calendar", handler.CreateCalendarEvent)
			authed.PATCH("/calendar/:id", handler.UpdateCalendarEvent)
			authed.DELETE("/calendar/:id", handler.DeleteCalendarEvent)

			authed.POST("/reviews", handler.CreateReview)
			authed.DELETE("/reviews/:id", handler.DeleteReview)

			authed.GET("/waitlist", handler.GetWaitlist)
			authed.GET("/waitlist/:id", handler.GetWaitlistEntry)
			authed.POST("/waitlist", handler.CreateWaitlistEntry)
			authed.PATCH("/waitlist/:id", handler.UpdateWaitlistEntry)
			authed.DELETE("/waitlist/:id", handler.DeleteWaitlistEntry)

			authed.GET("/favorites", handler.GetFavorites)
			authed.GET("/favorites/:id", handler.GetFavorite)
			authed.POST("/favorites", handler.CreateFavorite)
			authed.DELETE("/favorites/:id", handler.DeleteFavorite)

			authed.GET("/subscriptions", handler.GetSubscriptions)
			authed.GET("/subscriptions/:id", handler.GetSubscription)
			authed.POST("/subscriptions", handler.CreateSubscription)
			authed.DELETE("/subscriptions/:id", handler.CancelSubscription)

			// Supplier-side writes
			supplier := authed.Group("")
			supplier.Use(api.SupplierMiddleware())
			{
				supplier.POST("/products", handler.CreateProduct)
				supplier.PATCH("/products/:id", handler.UpdateProduct)
				supplier.DELETE("/products/:id", handler.DeleteProduct)
				supplier.POST("/products/:id/media", handler.UploadProductMedia)
				supplier.DELETE("/products/:id/media/:media_id", handler.DeleteProductMedia)

				supplier.POST("/offers", handler.CreateOffer)
				supplier.DELETE("/offers/:id", handler.DeleteOffer)
			}

			// Admin-only endpoints
			admin := authed.Group("")
			admin.Use(api.AdminMiddleware())
			{
				admin.PATCH("/suppliers/:id/verify", handler.VerifySupplier)
				admin.POST("/plans", handler.CreatePlan)
			}
		}
	}

	// Root endpoint for basic info
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "restockhub",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	return router
}

// corsMiddleware restricts origins to FRONTEND_ORIGIN when provided
func corsMiddleware() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}
	if origin := os.Getenv("FRONTEND_ORIGIN"); origin != "" {
		cfg.AllowOrigins = []string{origin}
	} else {
		cfg.AllowAllOrigins = true
	}
	return cors.New(cfg)
}
