package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cookatlas/backend/internal/api"
	"github.com/cookatlas/backend/internal/middleware"
	"github.com/cookatlas/backend/internal/service"
)

// Config carries what the middleware stack needs besides the handlers.
type Config struct {
	CORSOrigins []string
	Tokens      service.ITokenService
	Options     api.Options
}

// SetupRouter configures the middleware stack and application routes
func SetupRouter(db *gorm.DB, svc api.Services, cfg Config, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestIDMiddleware(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.Metrics(),
		middleware.CORS(cfg.CORSOrigins),
		middleware.ErrorHandler(logger),
		middleware.Identify(cfg.Tokens, svc.Users),
	)
	router.NoRoute(middleware.NotFound())

	api.RegisterRoutes(router, db, svc, cfg.Options, logger)
	return router
}
