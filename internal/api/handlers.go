package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cookatlas/backend/internal/database"
	"github.com/cookatlas/backend/internal/middleware"
	"github.com/cookatlas/backend/internal/service"
)

// Version is reported by the health endpoints.
const Version = "v1.0.0"

// Services are the collaborators the handlers call into.
type Services struct {
	Recipes   service.IRecipeService
	Users     service.IUserService
	Bookmarks service.IBookmarkService
	Images    service.IImageService
	Catalog   *service.Catalog
}

// Options tune route behaviour. Nil limiters disable rate limiting.
type Options struct {
	StrictSearch        bool
	ExposeResetLink     bool
	CreationLimiter     *middleware.RateLimiter
	ModificationLimiter *middleware.RateLimiter
}

// HealthCheck reports service status and whether the database answers.
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code, dbStatus := "healthy", http.StatusOK, "up"
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			status, code, dbStatus = "unhealthy", http.StatusServiceUnavailable, "down"
		}
		c.JSON(code, gin.H{
			"status":    status,
			"message":   "CookAtlas API is running",
			"version":   Version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  dbStatus,
		})
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, db *gorm.DB, svc Services, opts Options, logger *zap.Logger) {
	// Health check endpoints (no auth required)
	router.GET("/health", HealthCheck(db))
	router.GET("/api/health", HealthCheck(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	NewRecipeHandler(svc.Recipes, svc.Images, opts.StrictSearch, logger).
		WithRateLimits(opts.CreationLimiter, opts.ModificationLimiter).
		RegisterRoutes(v1)
	NewUserHandler(svc.Users, opts.ExposeResetLink, logger).RegisterRoutes(v1)
	NewBookmarkHandler(svc.Bookmarks, logger).RegisterRoutes(v1)
	if svc.Catalog != nil {
		NewCatalogHandler(svc.Catalog, logger).RegisterRoutes(v1)
	}
}
