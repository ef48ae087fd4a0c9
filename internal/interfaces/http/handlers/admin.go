// internal/interfaces/http/handlers/admin.go
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/domain/analytics"
	"github.com/your-org/storefront-gateway/internal/pkg/auth"
)

// AdminHandler handles admin token issuance and analytics readouts
type AdminHandler struct {
	analyticsService *analytics.Service
	keyManager       *auth.KeyManager
	jwtManager       *auth.JWTManager
	config           *config.Config
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(analyticsService *analytics.Service, cfg *config.Config) *AdminHandler {
	return &AdminHandler{
		analyticsService: analyticsService,
		keyManager:       auth.NewKeyManager(cfg),
		jwtManager:       auth.NewJWTManager(cfg),
		config:           cfg,
	}
}

// IssueToken handles POST /admin/token
func (h *AdminHandler) IssueToken(c *gin.Context) {
	var req struct {
		Key string `json:"key" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if h.config.Security.AdminKeyHash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Admin access is not configured",
		})
		return
	}

	if err := h.keyManager.VerifyKey(req.Key, h.config.Security.AdminKeyHash); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid admin key",
		})
		return
	}

	token, err := h.jwtManager.GenerateAdminToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to issue token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Admin token issued successfully",
		"data": gin.H{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   int(h.config.JWT.AccessTokenExpiry.Seconds()),
		},
	})
}

// GetProductViews handles GET /admin/analytics/product-views
func (h *AdminHandler) GetProductViews(c *gin.Context) {
	// Zero since means all time
	var since time.Time
	if sinceParam := c.Query("since"); sinceParam != "" {
		parsed, err := time.Parse(time.RFC3339, sinceParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid since parameter, expected RFC3339 timestamp",
			})
			return
		}
		since = parsed
	}

	limit := 0
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid limit parameter",
			})
			return
		}
		limit = parsed
	}

	stats, err := h.analyticsService.ProductViewStats(c.Request.Context(), since, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve product view stats",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product view stats retrieved successfully",
		"data":    stats,
	})
}
