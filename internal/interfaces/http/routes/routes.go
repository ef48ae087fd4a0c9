// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/domain/analytics"
	"github.com/your-org/storefront-gateway/internal/domain/cart"
	"github.com/your-org/storefront-gateway/internal/domain/productpage"
	"github.com/your-org/storefront-gateway/internal/domain/recommendations"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-gateway/internal/storefront"
	"gorm.io/gorm"
)

// SetupRoutes wires all /api/v1 routes. The cart service is shared with the
// reconciler, so it is built in main and passed in; the rest of the services
// are built here.
func SetupRoutes(rg *gin.RouterGroup, cfg *config.Config, db *gorm.DB, redisClient *redis.Client, storefrontClient *storefront.Client, cartService *cart.Service, logger *logrus.Logger) {
	recommendationsService := recommendations.NewService(storefrontClient, redisClient, cfg, logger)
	loader := productpage.NewLoader(storefrontClient, recommendationsService)
	analyticsService := analytics.NewService(db, cfg)

	productHandler := handlers.NewProductHandler(loader, recommendationsService, analyticsService, cfg, logger)
	cartHandler := handlers.NewCartHandler(cartService, cfg)
	adminHandler := handlers.NewAdminHandler(analyticsService, cfg)

	// Product page endpoints (public)
	products := rg.Group("/products")
	{
		products.GET("/:handle", productHandler.GetProduct)
		products.GET("/:handle/recommended", productHandler.GetRecommendedProducts)
	}

	// Cart endpoints (guest sessions via cookie)
	cartRoutes := rg.Group("/cart")
	{
		cartRoutes.GET("", cartHandler.GetCart)
		cartRoutes.POST("", cartHandler.SubmitMutation)
		cartRoutes.GET("/count", cartHandler.GetCartCount)
	}

	// Admin endpoints
	admin := rg.Group("/admin")
	{
		// Public token exchange
		admin.POST("/token", adminHandler.IssueToken)

		// Protected admin endpoints
		protected := admin.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		protected.Use(middleware.AdminMiddleware())
		{
			protected.GET("/analytics/product-views", adminHandler.GetProductViews)
		}
	}
}
