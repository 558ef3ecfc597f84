package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/artisania/marketplace-api/config"
	"github.com/artisania/marketplace-api/controllers"
	"github.com/artisania/marketplace-api/middleware"
	"github.com/artisania/marketplace-api/models"
	"github.com/artisania/marketplace-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Artisania Marketplace API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.ArtisanProfile{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize S3-backed image storage
	if s3Service, err := services.InitS3Service(); err != nil {
		log.Printf("Warning: S3 service unavailable, image uploads disabled: %v", err)
	} else {
		services.InitImageService(s3Service)
	}

	// Initialize Gin router
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	registerRoutes(router)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// registerRoutes wires every API endpoint under /api/v1
func registerRoutes(router *gin.Engine) {
	requireAuth := middleware.RequireAuth()
	optionalAuth := middleware.OptionalAuth()
	requireArtisan := middleware.RequireRole(models.RoleArtisan)
	requireAdmin := middleware.RequireRole(models.RoleAdmin)

	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Authentication
		auth := v1.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
		}

		// Users
		users := v1.Group("/users")
		{
			users.GET("/me", requireAuth, controllers.GetMyProfile)
			users.GET("", requireAuth, requireAdmin, controllers.ListUsers)
			users.GET("/:id", requireAuth, controllers.GetUser)
			users.GET("/:id/orders", requireAuth, controllers.GetUserOrders)
			users.PUT("/:id/deactivate", requireAuth, requireAdmin, controllers.DeactivateUser)
			users.PUT("/:id/activate", requireAuth, requireAdmin, controllers.ActivateUser)
			users.DELETE("/:id", requireAuth, requireAdmin, controllers.DeleteUser)
		}

		// Artisan profiles
		artisans := v1.Group("/artisans")
		{
			artisans.GET("", controllers.ListArtisanProfiles)
			artisans.GET("/:id", controllers.GetArtisanProfile)
			artisans.GET("/user/:userId", controllers.GetArtisanProfileByUser)
			artisans.POST("", requireAuth, requireArtisan, controllers.CreateArtisanProfile)
			artisans.PUT("/:id", requireAuth, controllers.UpdateArtisanProfile)
			artisans.DELETE("/:id", requireAuth, controllers.DeleteArtisanProfile)
		}

		// Categories
		categories := v1.Group("/categories")
		{
			categories.GET("", controllers.ListCategories)
			categories.GET("/:id", controllers.GetCategory)
			categories.GET("/slug/:slug", controllers.GetCategoryBySlug)
			categories.POST("", requireAuth, requireAdmin, controllers.CreateCategory)
			categories.PUT("/:id", requireAuth, requireAdmin, controllers.UpdateCategory)
			categories.DELETE("/:id", requireAuth, requireAdmin, controllers.DeleteCategory)
		}

		// Products
		products := v1.Group("/products")
		{
			products.GET("", controllers.ListProducts)
			products.GET("/featured", controllers.ListFeaturedProducts)
			products.GET("/:id", controllers.GetProduct)
			products.GET("/category/:categoryId", controllers.ListProductsByCategory)
			products.GET("/artisan/:artisanId", controllers.ListProductsByArtisan)
			products.GET("/:id/images", controllers.ListProductImages)
			products.POST("", requireAuth, requireArtisan, controllers.CreateProduct)
			products.POST("/:id/images", requireAuth, controllers.AddProductImage)
			products.PUT("/:id", requireAuth, controllers.UpdateProduct)
			products.PUT("/:id/stock", requireAuth, controllers.UpdateProductStock)
			products.PUT("/:id/featured", requireAuth, requireAdmin, controllers.SetProductFeatured)
			products.DELETE("/:id", requireAuth, controllers.DeleteProduct)
		}

		// Product images addressed by their own id
		productImages := v1.Group("/product-images")
		{
			productImages.PUT("/:id", requireAuth, controllers.UpdateProductImage)
			productImages.PUT("/:id/primary", requireAuth, controllers.SetPrimaryProductImage)
			productImages.DELETE("/:id", requireAuth, controllers.DeleteProductImage)
		}

		// Cart
		cart := v1.Group("/cart", requireAuth)
		{
			cart.GET("", controllers.GetCart)
			cart.DELETE("", controllers.ClearCart)
			cart.POST("/items", controllers.AddToCart)
			cart.PUT("/items/:productId", controllers.UpdateCartItem)
			cart.DELETE("/items/:productId", controllers.RemoveCartItem)
			cart.POST("/items/:productId/sync-price", controllers.SyncCartItemPrice)
			cart.POST("/sync-prices", controllers.SyncCartPrices)
		}

		// Orders
		orders := v1.Group("/orders")
		{
			orders.POST("", optionalAuth, controllers.CreateOrder)
			orders.GET("", requireAuth, requireAdmin, controllers.ListOrders)
			orders.GET("/me", requireAuth, controllers.GetMyOrders)
			orders.GET("/artisan", requireAuth, requireArtisan, controllers.ListArtisanOrders)
			orders.GET("/status/:status", requireAuth, requireAdmin, controllers.ListOrdersByStatus)
			orders.GET("/guest/:email", controllers.ListGuestOrders)
			orders.GET("/:id", requireAuth, controllers.GetOrder)
			orders.GET("/:id/artisan", requireAuth, requireArtisan, controllers.GetArtisanOrder)
			orders.PUT("/:id", requireAuth, requireAdmin, controllers.UpdateOrder)
			orders.PUT("/:id/status", requireAuth, controllers.UpdateOrderStatus)
			orders.PUT("/:id/cancel", requireAuth, controllers.CancelOrder)
			orders.PUT("/items/:itemId/status", requireAuth, requireArtisan, controllers.UpdateOrderItemStatus)
			orders.DELETE("/:id", requireAuth, requireAdmin, controllers.DeleteOrder)
		}

		// File uploads
		v1.POST("/uploads", requireAuth, controllers.UploadImage)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Artisania Marketplace API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
