// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fractora/fractora-backend/internal/config"
	"github.com/fractora/fractora-backend/internal/handlers"
	"github.com/fractora/fractora-backend/internal/ledger"
	"github.com/fractora/fractora-backend/internal/middleware"
	"github.com/fractora/fractora-backend/internal/models"
	"github.com/fractora/fractora-backend/internal/services"
	"github.com/fractora/fractora-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	tokenLedger := ledger.NewGormLedger(db)
	notificationService := services.NewNotificationService(db, cfg)
	storageService, _ := services.NewStorageService(cfg)
	provenanceService := services.NewProvenanceService(db)
	authorizationService := services.NewAuthorizationService(db)

	authService := services.NewAuthService(db, cfg, notificationService)
	assetService := services.NewAssetService(db, tokenLedger, authorizationService, provenanceService)
	paymentService := services.NewPaymentService(db, cfg)
	listingService := services.NewListingService(db, tokenLedger, paymentService, authorizationService, notificationService, provenanceService)
	adminService := services.NewAdminService(db, notificationService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	assetHandler := handlers.NewAssetHandler(assetService, provenanceService, storageService)
	listingHandler := handlers.NewListingHandler(listingService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	portfolioHandler := handlers.NewPortfolioHandler(tokenLedger, assetService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Asset routes
		assets := v1.Group("/assets")
		{
			assets.GET("", middleware.OptionalAuth(), assetHandler.GetAssets)
			assets.GET("/:id", middleware.OptionalAuth(), assetHandler.GetAsset)
			assets.GET("/:id/statistics", assetHandler.GetAssetStatistics)
			assets.GET("/:id/provenance", assetHandler.GetAssetProvenance)
			assets.GET("/:id/provenance/verify", assetHandler.VerifyAssetProvenance)

			// Authenticated routes
			protected := assets.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.GET("/mine", assetHandler.GetMyAssets)
				protected.POST("", middleware.IssuerRequired(), assetHandler.CreateAsset)
				protected.POST("/:id/mint", assetHandler.MintTokens)
				protected.POST("/:id/transfer", assetHandler.TransferTokens)
				protected.POST("/:id/deactivate", assetHandler.DeactivateAsset)
				protected.POST("/upload", middleware.UploadRateLimit(), assetHandler.UploadMedia)
			}
		}

		// Listing routes
		listings := v1.Group("/listings")
		{
			listings.GET("", middleware.OptionalAuth(), listingHandler.GetListings)
			listings.GET("/:id", middleware.OptionalAuth(), listingHandler.GetListing)

			// Authenticated routes
			protected := listings.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.GET("/mine", listingHandler.GetMyListings)
				protected.POST("", listingHandler.CreateListing)
				protected.POST("/:id/purchase", middleware.PurchaseRateLimit(), listingHandler.Purchase)
			}
		}

		// Payment routes
		payments := v1.Group("/payments")
		payments.Use(middleware.AuthRequired())
		{
			payments.POST("/deposits", paymentHandler.CreateDeposit)
			payments.POST("/deposits/confirm", paymentHandler.ConfirmDeposit)
			payments.GET("/balance", paymentHandler.GetBalance)
			payments.GET("/history", paymentHandler.GetPaymentHistory)
		}

		// Portfolio routes
		portfolio := v1.Group("/portfolio")
		portfolio.Use(middleware.AuthRequired())
		{
			portfolio.GET("", portfolioHandler.GetPortfolio)
			portfolio.GET("/assets/:id", portfolioHandler.GetAssetBalance)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/stats", adminHandler.GetPlatformStats)

			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("", adminHandler.GetUsers)
				adminUsers.PUT("/:id/status", adminHandler.UpdateUserStatus)
			}

			adminTransactions := admin.Group("/transactions")
			{
				adminTransactions.GET("", adminHandler.GetTransactions)
			}

			admin.GET("/audit-logs", adminHandler.GetAuditLogs)
		}

		// Search routes
		search := v1.Group("/search")
		{
			search.GET("/assets", middleware.OptionalAuth(), assetHandler.GetAssets)
			search.GET("/listings", middleware.OptionalAuth(), listingHandler.GetListings)
		}

		// Asset type routes
		assetTypes := v1.Group("/asset-types")
		{
			assetTypes.GET("", getAssetTypesHandler)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}

// Helper handlers for simple endpoints
func getAssetTypesHandler(c *gin.Context) {
	assetTypes := []map[string]interface{}{
		{"id": string(models.AssetTypeRealEstate), "name": "Real Estate", "icon": "building"},
		{"id": string(models.AssetTypeArt), "name": "Art", "icon": "palette"},
		{"id": string(models.AssetTypeMusic), "name": "Music", "icon": "music"},
		{"id": string(models.AssetTypeGaming), "name": "Gaming", "icon": "gamepad"},
	}

	utils.SuccessResponse(c, gin.H{
		"asset_types": assetTypes,
	})
}
