// internal/interfaces/http/handlers/product.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/domain/analytics"
	"github.com/your-org/storefront-gateway/internal/domain/productpage"
	"github.com/your-org/storefront-gateway/internal/domain/recommendations"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
)

// ProductHandler handles product page endpoints
type ProductHandler struct {
	loader           *productpage.Loader
	recommendations  *recommendations.Service
	analyticsService *analytics.Service
	config           *config.Config
	logger           *logrus.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(loader *productpage.Loader, recommendationsService *recommendations.Service, analyticsService *analytics.Service, cfg *config.Config, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		loader:           loader,
		recommendations:  recommendationsService,
		analyticsService: analyticsService,
		config:           cfg,
		logger:           logger,
	}
}

// GetProduct handles GET /products/:handle
func (h *ProductHandler) GetProduct(c *gin.Context) {
	handle := c.Param("handle")

	page, err := h.loader.Load(c.Request.Context(), handle, c.Request.URL.RawQuery)
	if err != nil {
		if errors.Is(err, productpage.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}

		// A missing handle is a routing defect, not shopper input; it and
		// platform failures both surface as a generic server error.
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load product",
		})
		return
	}

	h.recordView(c, page)

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    page,
	})
}

// GetRecommendedProducts handles GET /products/:handle/recommended
func (h *ProductHandler) GetRecommendedProducts(c *gin.Context) {
	handle := c.Param("handle")
	if handle == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Product handle is required",
		})
		return
	}

	// Fetch failures degrade to an unavailable section, never an error status
	result := h.recommendations.Get(c.Request.Context(), handle)

	c.JSON(http.StatusOK, gin.H{
		"message": "Recommended products retrieved successfully",
		"data":    productpage.SectionFor(result),
	})
}

// recordView emits a product view event for a successfully loaded page.
// Recording failures never fail the page.
func (h *ProductHandler) recordView(c *gin.Context, page *productpage.Page) {
	event := &analytics.ProductViewEvent{
		ProductID:     page.Analytics.ProductID,
		ProductHandle: page.Analytics.ProductHandle,
		ProductTitle:  page.Analytics.ProductTitle,
		VariantID:     page.Analytics.VariantID,
		VariantTitle:  page.Analytics.VariantTitle,
		PriceCents:    analytics.PriceCents(page.Analytics.Price),
		Currency:      page.Analytics.Currency,
		Quantity:      page.Analytics.Quantity,
		RequestID:     middleware.GetRequestID(c),
	}

	if err := h.analyticsService.RecordProductView(c.Request.Context(), event); err != nil {
		h.logger.WithFields(logrus.Fields{
			"product_handle": event.ProductHandle,
			"request_id":     event.RequestID,
			"error":          err.Error(),
		}).Warn("Failed to record product view")
	}
}
