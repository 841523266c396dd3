package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cookatlas/backend/config"
	"github.com/cookatlas/backend/internal/api"
	"github.com/cookatlas/backend/internal/database"
	"github.com/cookatlas/backend/internal/logging"
	"github.com/cookatlas/backend/internal/middleware"
	"github.com/cookatlas/backend/internal/router"
	"github.com/cookatlas/backend/internal/service"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	db     *gorm.DB
	redis  *redis.Client
	logger *zap.Logger
}

// New wires services and routes on top of an open database. Redis and
// object storage are optional: without them rate limiting stays in process
// and image uploads answer 503.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, logger *zap.Logger) (*Server, error) {
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.SessionTTL)
	email := service.NewEmailService(cfg, logger)
	users := service.NewUserService(db, tokens, email, cfg.FrontendURL, logger)

	recipes, err := service.NewRecipeService(db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create recipe service: %w", err)
	}

	var store service.ObjectStore
	if cfg.S3Bucket != "" {
		s3, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to configure object storage: %w", err)
		}
		store = s3
	} else {
		logger.Warn("S3 bucket not configured, recipe image uploads are disabled")
	}

	redisClient, err := database.NewRedisClient(cfg, logger)
	if err != nil {
		// Continue with in-process rate limiting if Redis is not available
		logger.Warn("Failed to connect to Redis for rate limiting", zap.Error(err))
		redisClient = nil
	}

	opts := api.Options{
		StrictSearch:    cfg.StrictSearch,
		ExposeResetLink: cfg.Environment.IsDevelopment(),
	}
	if cfg.RateLimitCreate > 0 {
		opts.CreationLimiter = middleware.NewRecipeCreationRateLimiter(redisClient, cfg.RateLimitCreate, cfg.RateLimitWindow, logger)
	}
	if cfg.RateLimitModify > 0 {
		opts.ModificationLimiter = middleware.NewRecipeModificationRateLimiter(redisClient, cfg.RateLimitModify, cfg.RateLimitWindow, logger)
	}

	svc := api.Services{
		Recipes:   recipes,
		Users:     users,
		Bookmarks: service.NewBookmarkService(db),
		Images:    service.NewImageService(store, recipes, logger),
		Catalog:   service.NewCatalog(db),
	}

	return &Server{
		cfg: cfg,
		router: router.SetupRouter(db, svc, router.Config{
			CORSOrigins: cfg.CORSOrigins,
			Tokens:      tokens,
			Options:     opts,
		}, logger),
		db:     db,
		redis:  redisClient,
		logger: logger,
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          logging.StdLog(s.logger),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// Close releases Redis; the database belongs to the caller.
func (s *Server) Close() error {
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}
