package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/kungucharles/shereheni-backend/internal/database"
	"github.com/kungucharles/shereheni-backend/internal/handlers"
	"github.com/kungucharles/shereheni-backend/internal/jobs"
	"github.com/kungucharles/shereheni-backend/internal/middleware"
	"github.com/kungucharles/shereheni-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Get underlying SQL DB instance
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Initialize Redis
	if err := services.InitRedis(); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	// Initialize Firebase (optional - will log warning if not configured)
	if err := services.InitFirebase(); err != nil {
		log.Printf("Firebase initialization warning: %v", err)
	}

	// Initialize invoice archive (S3 or local fallback)
	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	// Start the booking expiry sweep
	scheduler := jobs.StartScheduler(db)
	defer scheduler.Stop()

	// Initialize router
	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	// Routes
	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db))
		}

		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		// Public catalogue
		api.GET("/products", handlers.ListProducts(db))
		api.GET("/products/:id", handlers.GetProduct(db))
		api.GET("/products/:id/reviews", handlers.GetProductReviews(db))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// Vendor profile routes
			vendors := protected.Group("/vendors")
			{
				vendors.GET("/profile", handlers.GetProfile(db))
				vendors.PUT("/profile", handlers.UpdateProfile(db))
				vendors.GET("/products", handlers.GetMyProducts(db))
			}

			// Product management routes
			products := protected.Group("/products")
			{
				products.POST("", handlers.CreateProduct(db))
				products.PUT("/:id", handlers.UpdateProduct(db))
			}

			// Coupon routes
			coupons := protected.Group("/coupons")
			{
				coupons.POST("", handlers.CreateCoupon(db))
				coupons.GET("", handlers.ListCoupons(db))
				coupons.POST("/apply", handlers.ApplyCoupon(db))
			}

			// Pricing routes
			pricing := protected.Group("/pricing")
			{
				pricing.POST("/quote", handlers.GetPriceQuote(db))
			}

			// Booking routes
			bookings := protected.Group("/bookings")
			{
				bookings.POST("", handlers.CreateBooking(db, hub))
				bookings.GET("/mine", handlers.GetMyBookings(db))
				bookings.GET("/vendor", handlers.GetVendorBookings(db))
				bookings.GET("/:id/status", handlers.GetBookingStatus(db))
				bookings.POST("/:id/approve", handlers.ApproveBooking(db, hub))
				bookings.POST("/:id/reject", handlers.RejectBooking(db, hub))
			}

			// Payment routes
			payments := protected.Group("/payments")
			{
				payments.POST("/orders", handlers.CreatePaymentOrder(db))
				payments.POST("/verify-advance", handlers.VerifyAdvancePayment(db, hub))
				payments.POST("/verify-remaining", handlers.VerifyRemainingPayment(db, hub))
			}

			// Review routes
			reviews := protected.Group("/reviews")
			{
				reviews.POST("", handlers.CreateReview(db))
				reviews.DELETE("/:bookingId", handlers.DeleteReview(db))
			}

			// Notification routes
			notifications := protected.Group("/notifications")
			{
				notifications.POST("/register-token", handlers.RegisterFCMToken(db))
				notifications.DELETE("/remove-token", handlers.RemoveFCMToken(db))

				// Notification preferences
				notifications.GET("/preferences", handlers.GetNotificationPreferences(db))
				notifications.PUT("/preferences", handlers.UpdateNotificationPreferences(db))
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
